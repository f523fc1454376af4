package check_availability

import (
	"fmt"
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/integrations/venueservice"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	// Либо явные даты, либо параметры повторения
	if len(req.Dates) == 0 && req.Recurrence == nil {
		return fmt.Errorf("%w: dates or recurrence is required", ErrInvalidInput)
	}
	if len(req.Dates) > 0 && req.Recurrence != nil {
		return fmt.Errorf("%w: dates and recurrence are mutually exclusive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	// Валидируем формат времени; некорректный HH:MM - ошибка формата
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.Recurrence != nil {
		if req.Recurrence.StartDate.IsZero() || req.Recurrence.EndDate.IsZero() {
			return fmt.Errorf("%w: recurrence start and end dates are required", ErrInvalidInput)
		}
		window := req.Recurrence.EndDate.Sub(req.Recurrence.StartDate)
		if window > domain.MaxRecurrenceWindowDays*24*time.Hour {
			return fmt.Errorf("%w: window exceeds %d days", ErrRecurrenceTooLong, domain.MaxRecurrenceWindowDays)
		}
	}

	return nil
}

// validateSpaceExists проверяет, что пространство существует на площадке
func validateSpaceExists(venue *venueservice.Venue, spaceID int64) error {
	for _, space := range venue.Spaces {
		if space.ID == spaceID {
			return nil
		}
	}
	return ErrSpaceNotFound
}

// validateDates проверяет каждую дату: не в прошлом и не дальше advanceBookingDays
func validateDates(dates []time.Time, now time.Time, advanceBookingDays int) error {
	for _, date := range dates {
		if isDateInPast(date, now) {
			return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
		}

		if advanceBookingDays == 0 {
			continue
		}

		maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, advanceBookingDays)
		dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

		if dateOnly.After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
		}
	}

	return nil
}

// validateAgainstConfig проверяет длительность и часы работы
func validateAgainstConfig(startTime, endTime types.TimeString, cfg *domain.VenueScheduleConfig) error {
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endMinutes, err := endTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	duration := endMinutes - startMinutes
	if duration < cfg.MinDurationMinutes {
		return fmt.Errorf("%w: %d < %d minutes", ErrDurationTooShort, duration, cfg.MinDurationMinutes)
	}

	if startTime.IsBefore(cfg.OpenTime) || endTime.IsAfter(cfg.CloseTime) {
		return fmt.Errorf("%w: %s-%s is outside %s-%s",
			ErrOutsideOperatingHours, startTime, endTime, cfg.OpenTime, cfg.CloseTime)
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
