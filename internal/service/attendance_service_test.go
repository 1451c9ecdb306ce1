package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"
	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubAttendanceRepo struct {
	records []model.AttendanceRecord
	failing bool
}

func (r *stubAttendanceRepo) Create(_ context.Context, rec *model.AttendanceRecord) error {
	if r.failing {
		return errors.New("connection refused")
	}
	rec.ID = uuid.New()
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubAttendanceRepo) ListAll(_ context.Context) ([]model.AttendanceRecord, error) {
	return r.records, nil
}

func (r *stubAttendanceRepo) ListByEmployee(_ context.Context, employeeID string) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubAttendanceRepo) ListRange(_ context.Context, from, to time.Time) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, rec := range r.records {
		if !rec.RecordedAt.Before(from) && rec.RecordedAt.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type stubGeocoder struct {
	address string
	err     error
	calls   int
}

func (g *stubGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (string, error) {
	g.calls++
	return g.address, g.err
}

func ptr(f float64) *float64 { return &f }

func validAttendanceReq(action string) dto.RecordAttendanceRequest {
	return dto.RecordAttendanceRequest{
		EmployeeID:   "emp-1",
		EmployeeName: "김철수",
		Store:        "본점",
		Action:       action,
		Latitude:     ptr(37.5665),
		Longitude:    ptr(126.9780),
	}
}

// ── Record ────────────────────────────────────────────────────────────────────

func TestRecordCheckInWithAddress(t *testing.T) {
	repo := &stubAttendanceRepo{}
	geo := &stubGeocoder{address: "서울특별시 중구 세종대로 110"}
	svc := NewAttendanceService(repo, geo, nil)

	resp, err := svc.Record(context.Background(), validAttendanceReq(model.ActionCheckIn))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RecordID)
	assert.Equal(t, "서울특별시 중구 세종대로 110", resp.Address)

	require.Len(t, repo.records, 1)
	rec := repo.records[0]
	assert.Equal(t, model.ActionCheckIn, rec.Action)
	assert.Equal(t, 37.5665, rec.Latitude)
	assert.WithinDuration(t, time.Now().UTC(), rec.RecordedAt, 5*time.Second)
}

// Geocoding is best-effort: its failure must never block the write.
func TestRecordSucceedsWhenGeocoderDown(t *testing.T) {
	repo := &stubAttendanceRepo{}
	geo := &stubGeocoder{err: errors.New("nominatim timeout")}
	svc := NewAttendanceService(repo, geo, nil)

	resp, err := svc.Record(context.Background(), validAttendanceReq(model.ActionCheckOut))
	require.NoError(t, err)
	assert.Empty(t, resp.Address)

	require.Len(t, repo.records, 1)
	assert.Empty(t, repo.records[0].Address)
}

func TestRecordRejectsOutOfRangeCoordinates(t *testing.T) {
	repo := &stubAttendanceRepo{}
	geo := &stubGeocoder{}
	svc := NewAttendanceService(repo, geo, nil)

	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"latitude above range", 91, 0},
		{"latitude below range", -90.5, 0},
		{"longitude above range", 0, 180.1},
		{"longitude below range", 0, -181},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validAttendanceReq(model.ActionCheckIn)
			req.Latitude = ptr(tc.lat)
			req.Longitude = ptr(tc.lon)

			_, err := svc.Record(context.Background(), req)
			assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
		})
	}
	// Invalid submissions never reach the geocoder or the store
	assert.Zero(t, geo.calls)
	assert.Empty(t, repo.records)
}

func TestRecordRejectsMissingCoordinates(t *testing.T) {
	svc := NewAttendanceService(&stubAttendanceRepo{}, &stubGeocoder{}, nil)

	req := validAttendanceReq(model.ActionCheckIn)
	req.Latitude = nil
	_, err := svc.Record(context.Background(), req)
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
}

func TestRecordRejectsUnknownAction(t *testing.T) {
	svc := NewAttendanceService(&stubAttendanceRepo{}, &stubGeocoder{}, nil)

	_, err := svc.Record(context.Background(), validAttendanceReq("lunch-break"))
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
}

func TestRecordStorageFailureIsUnavailable(t *testing.T) {
	svc := NewAttendanceService(&stubAttendanceRepo{failing: true}, &stubGeocoder{}, nil)

	_, err := svc.Record(context.Background(), validAttendanceReq(model.ActionCheckIn))
	assert.Equal(t, apierror.KindUnavailable, apierror.KindOf(err))
}

// ── List ──────────────────────────────────────────────────────────────────────

func TestListFiltersByDateAndEmployee(t *testing.T) {
	day1 := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	repo := &stubAttendanceRepo{records: []model.AttendanceRecord{
		{ID: uuid.New(), EmployeeID: "emp-1", Action: model.ActionCheckIn, RecordedAt: day1},
		{ID: uuid.New(), EmployeeID: "emp-2", Action: model.ActionCheckIn, RecordedAt: day2},
		{ID: uuid.New(), EmployeeID: "emp-1", Action: model.ActionCheckIn, RecordedAt: day2},
	}}
	svc := NewAttendanceService(repo, &stubGeocoder{}, nil)

	recs, err := svc.List(context.Background(), "", "2026-08-28")
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	recs, err = svc.List(context.Background(), "emp-1", "2026-08-28")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "emp-1", recs[0].EmployeeID)

	recs, err = svc.List(context.Background(), "emp-1", "")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestListRejectsBadDate(t *testing.T) {
	svc := NewAttendanceService(&stubAttendanceRepo{}, &stubGeocoder{}, nil)

	_, err := svc.List(context.Background(), "", "28-08-2026")
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
}

// ── Stats ─────────────────────────────────────────────────────────────────────

func TestTodayStatsCountsWorkingEmployees(t *testing.T) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	repo := &stubAttendanceRepo{records: []model.AttendanceRecord{
		// emp-1 checked in and out — not working
		{EmployeeID: "emp-1", Action: model.ActionCheckIn, RecordedAt: today.Add(9 * time.Hour)},
		{EmployeeID: "emp-1", Action: model.ActionCheckOut, RecordedAt: today.Add(13 * time.Hour)},
		// emp-2 still on shift
		{EmployeeID: "emp-2", Action: model.ActionCheckIn, RecordedAt: today.Add(10 * time.Hour)},
	}}
	svc := NewAttendanceService(repo, &stubGeocoder{}, nil)

	stats, err := svc.TodayStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.CheckIns)
	assert.EqualValues(t, 1, stats.CheckOuts)
	assert.EqualValues(t, 1, stats.NowWorking)
}
