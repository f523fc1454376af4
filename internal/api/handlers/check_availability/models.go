package check_availability

import (
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/scheduling"
	checkAvailability "github.com/zeusvenues/Zeus-SchedulingService/internal/usecase/check_availability"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// RecurrenceRequest параметры блочного бронирования в HTTP запросе
type RecurrenceRequest struct {
	StartDate string   `json:"startDate"` // "2025-01-06"
	Weekdays  []string `json:"weekdays"`  // ["monday", "wednesday"]
	EndDate   string   `json:"endDate"`   // "2025-01-19"
}

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	Dates      []string           `json:"dates,omitempty"` // ["2025-01-06"]
	Recurrence *RecurrenceRequest `json:"recurrence,omitempty"`
	StartTime  string             `json:"startTime"` // "18:00"
	EndTime    string             `json:"endTime"`   // "19:00"
}

// ConflictEntryResponse одно конфликтующее бронирование
type ConflictEntryResponse struct {
	ReservationID int64  `json:"reservationId"`
	CustomerName  string `json:"customerName,omitempty"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
}

// ConflictReportResponse конфликты по одной дате
type ConflictReportResponse struct {
	Date      string                  `json:"date"`
	Conflicts []ConflictEntryResponse `json:"conflicts"`
}

// AlternativeSlotResponse один альтернативный слот
type AlternativeSlotResponse struct {
	StartTime          string   `json:"startTime"`
	EndTime            string   `json:"endTime"`
	AvailableDateCount int      `json:"availableDateCount"`
	ConflictDates      []string `json:"conflictDates,omitempty"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available    bool                      `json:"available"`
	VenueID      int64                     `json:"venueId"`
	SpaceID      int64                     `json:"spaceId"`
	Dates        []string                  `json:"dates"`
	OpenTime     string                    `json:"openTime"`
	CloseTime    string                    `json:"closeTime"`
	Conflicts    []ConflictReportResponse  `json:"conflicts"`
	Alternatives []AlternativeSlotResponse `json:"alternatives"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest(venueID, spaceID int64) (*checkAvailability.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		VenueID:   venueID,
		SpaceID:   spaceID,
		StartTime: startTime,
		EndTime:   endTime,
	}

	for _, dateStr := range r.Dates {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Dates = append(req.Dates, date)
	}

	if r.Recurrence != nil {
		recurrence, err := toUseCaseRecurrence(r.Recurrence)
		if err != nil {
			return nil, err
		}
		req.Recurrence = recurrence
	}

	return req, nil
}

func toUseCaseRecurrence(r *RecurrenceRequest) (*checkAvailability.Recurrence, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	weekdays := scheduling.WeekdaySet{}
	for _, name := range r.Weekdays {
		day, err := scheduling.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		weekdays[day] = struct{}{}
	}

	return &checkAvailability.Recurrence{
		StartDate: startDate,
		Weekdays:  weekdays,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	out := &CheckAvailabilityResponse{
		Available:    resp.IsAvailable(),
		VenueID:      resp.VenueID,
		SpaceID:      resp.SpaceID,
		Dates:        formatDates(resp.Dates),
		OpenTime:     resp.OpenTime.String(),
		CloseTime:    resp.CloseTime.String(),
		Conflicts:    []ConflictReportResponse{},
		Alternatives: []AlternativeSlotResponse{},
	}

	for _, report := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, fromConflictReport(report))
	}
	for _, slot := range resp.Alternatives {
		out.Alternatives = append(out.Alternatives, AlternativeSlotResponse{
			StartTime:          slot.StartTime.String(),
			EndTime:            slot.EndTime.String(),
			AvailableDateCount: slot.AvailableDateCount,
			ConflictDates:      formatDates(slot.ConflictDates),
		})
	}

	return out
}

func fromConflictReport(report scheduling.ConflictReport) ConflictReportResponse {
	out := ConflictReportResponse{
		Date:      report.Date.Format(domain.DateFormat),
		Conflicts: make([]ConflictEntryResponse, 0, len(report.Conflicts)),
	}
	for _, entry := range report.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictEntryResponse{
			ReservationID: entry.ReservationID,
			CustomerName:  entry.CustomerName,
			StartTime:     entry.StartTime.String(),
			EndTime:       entry.EndTime.String(),
			Status:        string(entry.Status),
		})
	}
	return out
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, date := range dates {
		out = append(out, date.Format(domain.DateFormat))
	}
	return out
}
