package handler

import (
	"net/http"

	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct{ svc service.AttendanceService }

func NewAttendanceHandler(svc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// Record godoc
// @Summary 출퇴근 기록 (체크인/체크아웃)
// @Tags attendance
// @Accept json
// @Produce json
// @Param body body dto.RecordAttendanceRequest true "출퇴근 정보"
// @Success 201 {object} dto.RecordAttendanceResponse
// @Failure 400 {object} apierror.Error
// @Failure 500 {object} apierror.Error
// @Router /attendance [post]
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req dto.RecordAttendanceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Record(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns attendance records, filterable by ?employee_id= and
// ?date=YYYY-MM-DD.
func (h *AttendanceHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), c.Query("employee_id"), c.Query("date"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// TodayStats returns today's check-in/check-out headcount.
func (h *AttendanceHandler) TodayStats(c *gin.Context) {
	stats, err := h.svc.TodayStats(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
