package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"
	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReverseGeocoder resolves coordinates to an address. Implemented by
// infra.Geocoder; stubbed in tests.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

type AttendanceService interface {
	// Record validates and durably appends one check-in/check-out event.
	// Reverse geocoding is best-effort: its failure never blocks the write.
	Record(ctx context.Context, req dto.RecordAttendanceRequest) (*dto.RecordAttendanceResponse, error)
	List(ctx context.Context, employeeID, date string) ([]dto.AttendanceRecordResponse, error)
	TodayStats(ctx context.Context) (*dto.AttendanceStatsResponse, error)
}

type attendanceService struct {
	repo     repository.AttendanceRepository
	geocoder ReverseGeocoder
	rdb      *redis.Client
}

func NewAttendanceService(repo repository.AttendanceRepository, geocoder ReverseGeocoder, rdb *redis.Client) AttendanceService {
	return &attendanceService{repo: repo, geocoder: geocoder, rdb: rdb}
}

func (s *attendanceService) Record(ctx context.Context, req dto.RecordAttendanceRequest) (*dto.RecordAttendanceResponse, error) {
	// Action and bounds are checked here, not in validator tags, so bad
	// values surface as invalid_input.
	if req.Action != model.ActionCheckIn && req.Action != model.ActionCheckOut {
		return nil, apierror.InvalidInput("action must be check-in or check-out")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, apierror.InvalidInput("latitude and longitude are required")
	}
	lat, lon := *req.Latitude, *req.Longitude
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, apierror.InvalidInput("coordinates out of range")
	}

	address, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		// Degrade, don't drop: the record is written without an address.
		log.Warn().Err(err).
			Str("employee_id", req.EmployeeID).
			Msg("reverse geocoding unavailable, recording without address")
		address = ""
	}

	rec := &model.AttendanceRecord{
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Store:        req.Store,
		Action:       req.Action,
		Latitude:     lat,
		Longitude:    lon,
		Address:      address,
		RecordedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, apierror.Unavailable("attendance store unavailable")
	}

	return &dto.RecordAttendanceResponse{
		RecordID:  rec.ID.String(),
		Timestamp: rec.RecordedAt.Format(time.RFC3339),
		Address:   address,
	}, nil
}

func (s *attendanceService) List(ctx context.Context, employeeID, date string) ([]dto.AttendanceRecordResponse, error) {
	var (
		recs []model.AttendanceRecord
		err  error
	)
	switch {
	case date != "":
		day, parseErr := time.Parse("2006-01-02", date)
		if parseErr != nil {
			return nil, apierror.InvalidInput("date must be YYYY-MM-DD")
		}
		recs, err = s.repo.ListRange(ctx, day, day.AddDate(0, 0, 1))
		if err == nil && employeeID != "" {
			filtered := recs[:0]
			for _, r := range recs {
				if r.EmployeeID == employeeID {
					filtered = append(filtered, r)
				}
			}
			recs = filtered
		}
	case employeeID != "":
		recs, err = s.repo.ListByEmployee(ctx, employeeID)
	default:
		recs, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, apierror.Unavailable("attendance store unavailable")
	}

	resp := make([]dto.AttendanceRecordResponse, len(recs))
	for i, r := range recs {
		resp[i] = dto.AttendanceRecordResponse{
			ID:           r.ID.String(),
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			Store:        r.Store,
			Action:       r.Action,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
			Address:      r.Address,
			RecordedAt:   r.RecordedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

const statsCacheTTL = 30 * time.Second

// TodayStats computes today's check-in/check-out headcount. "Now working"
// counts employees whose latest action today is a check-in. Results are
// cached briefly in Redis since the dashboard polls this.
func (s *attendanceService) TodayStats(ctx context.Context) (*dto.AttendanceStatsResponse, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	cacheKey := "attendance:stats:" + today.Format("2006-01-02")

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var stats dto.AttendanceStatsResponse
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	recs, err := s.repo.ListRange(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, apierror.Unavailable("attendance store unavailable")
	}

	stats := &dto.AttendanceStatsResponse{Date: today.Format("2006-01-02")}
	lastAction := make(map[string]string)
	for _, r := range recs {
		switch r.Action {
		case model.ActionCheckIn:
			stats.CheckIns++
		case model.ActionCheckOut:
			stats.CheckOuts++
		}
		lastAction[r.EmployeeID] = r.Action
	}
	for _, action := range lastAction {
		if action == model.ActionCheckIn {
			stats.NowWorking++
		}
	}

	if s.rdb != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, statsCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to cache attendance stats")
			}
		}
	}
	return stats, nil
}
