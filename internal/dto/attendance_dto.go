package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecordAttendanceRequest is the check-in/check-out submission. Latitude and
// longitude are pointers so a missing coordinate fails `required` instead of
// silently binding to 0,0 (a valid location in the Gulf of Guinea).
type RecordAttendanceRequest struct {
	EmployeeID   string `json:"employee_id"   validate:"required,min=1"`
	EmployeeName string `json:"employee_name" validate:"required,min=1"`
	Store        string `json:"store"         validate:"required,min=1"`
	// Action and coordinate bounds are checked in the service so bad values
	// map to the invalid_input kind rather than a field-level validation
	// response.
	Action string `json:"action" validate:"required"`
	Latitude  *float64 `json:"latitude"  validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecordAttendanceResponse struct {
	RecordID  string `json:"record_id"`
	Timestamp string `json:"timestamp"`
	// Address is omitted when reverse geocoding was unavailable
	Address string `json:"address,omitempty"`
}

type AttendanceRecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Store        string  `json:"store"`
	Action       string  `json:"action"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address,omitempty"`
	RecordedAt   string  `json:"recorded_at"`
}

// AttendanceStatsResponse is today's headcount summary.
type AttendanceStatsResponse struct {
	Date       string `json:"date"`
	CheckIns   int64  `json:"check_ins"`
	CheckOuts  int64  `json:"check_outs"`
	NowWorking int64  `json:"now_working"`
}
