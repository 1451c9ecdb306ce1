package service

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/apierror"
	"github.com/dsaslb/restaurant-management-system/internal/dto"
	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type PayrollService interface {
	// Summary computes per-employee worked hours and wages for a month
	// (YYYY-MM).
	Summary(ctx context.Context, month string) (*dto.PayrollSummaryResponse, error)
	// ExportXLSX renders the summary as a spreadsheet for download.
	ExportXLSX(ctx context.Context, month string) ([]byte, error)
}

type payrollService struct {
	attendance repository.AttendanceRepository
	contracts  repository.ContractRepository
}

func NewPayrollService(attendance repository.AttendanceRepository, contracts repository.ContractRepository) PayrollService {
	return &payrollService{attendance: attendance, contracts: contracts}
}

func (s *payrollService) Summary(ctx context.Context, month string) (*dto.PayrollSummaryResponse, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, apierror.InvalidInput("month must be YYYY-MM")
	}
	end := start.AddDate(0, 1, 0)

	recs, err := s.attendance.ListRange(ctx, start, end)
	if err != nil {
		return nil, apierror.Unavailable("attendance store unavailable")
	}

	byEmployee := make(map[string][]model.AttendanceRecord)
	for _, r := range recs {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	ids := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	resp := &dto.PayrollSummaryResponse{Month: month, Total: decimal.Zero}
	for _, id := range ids {
		empRecs := byEmployee[id]
		worked, shifts := pairShifts(empRecs)
		hours := decimal.NewFromInt(int64(worked / time.Minute)).
			Div(decimal.NewFromInt(60)).Round(2)

		hourly := decimal.Zero
		if contract, err := s.contracts.FindActiveByEmployee(ctx, id); err == nil {
			hourly = contract.HourlyWage
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unavailable("contract store unavailable")
		}
		wage := hours.Mul(hourly).Round(2)

		resp.Entries = append(resp.Entries, dto.PayrollEntryResponse{
			EmployeeID:  id,
			Name:        empRecs[len(empRecs)-1].EmployeeName,
			Store:       empRecs[len(empRecs)-1].Store,
			HoursWorked: hours,
			HourlyWage:  hourly,
			Wage:        wage,
			Shifts:      shifts,
		})
		resp.Total = resp.Total.Add(wage)
	}
	return resp, nil
}

// pairShifts applies the hours-worked pairing policy: a check-in pairs with
// the earliest later check-out for the same employee on the same calendar
// day. A second check-in before any check-out is treated as a duplicate
// submission and ignored; a check-out with no open check-in that day is
// ignored; an unpaired check-in contributes zero hours. recs must be for a
// single employee, oldest first (as ListRange returns them).
func pairShifts(recs []model.AttendanceRecord) (time.Duration, int) {
	var (
		total   time.Duration
		shifts  int
		openIn  *time.Time
		openDay string
	)
	for _, r := range recs {
		day := r.RecordedAt.Format("2006-01-02")
		if openIn != nil && day != openDay {
			// Day rolled over with no check-out: the open shift is dropped.
			openIn = nil
		}
		switch r.Action {
		case model.ActionCheckIn:
			if openIn == nil {
				t := r.RecordedAt
				openIn = &t
				openDay = day
			}
		case model.ActionCheckOut:
			if openIn != nil {
				total += r.RecordedAt.Sub(*openIn)
				shifts++
				openIn = nil
			}
		}
	}
	return total, shifts
}

func (s *payrollService) ExportXLSX(ctx context.Context, month string) ([]byte, error) {
	summary, err := s.Summary(ctx, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll " + month
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Employee ID", "Name", "Store", "Shifts", "Hours", "Hourly Wage", "Wage"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, e := range summary.Entries {
		values := []interface{}{
			e.EmployeeID, e.Name, e.Store, e.Shifts,
			e.HoursWorked.InexactFloat64(),
			e.HourlyWage.InexactFloat64(),
			e.Wage.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	totalRow := len(summary.Entries) + 2
	cell, _ := excelize.CoordinatesToCellName(6, totalRow)
	f.SetCellValue(sheet, cell, "Total")
	cell, _ = excelize.CoordinatesToCellName(7, totalRow)
	f.SetCellValue(sheet, cell, summary.Total.InexactFloat64())

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apierror.Unavailable("failed to render spreadsheet")
	}
	return buf.Bytes(), nil
}
