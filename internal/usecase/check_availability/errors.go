package check_availability

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("check_availability: venue not found")

	// ErrSpaceNotFound возвращается, когда пространство не найдено на площадке
	ErrSpaceNotFound = errors.New("check_availability: space not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("check_availability: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("check_availability: date is too far in the future")

	// ErrRecurrenceTooLong возвращается, когда период повторения превышает допустимое окно
	ErrRecurrenceTooLong = errors.New("check_availability: recurrence window is too long")

	// ErrDurationTooShort возвращается, когда длительность меньше минимальной
	ErrDurationTooShort = errors.New("check_availability: duration is below the configured minimum")

	// ErrOutsideOperatingHours возвращается, когда запрошенный диапазон выходит за часы работы
	ErrOutsideOperatingHours = errors.New("check_availability: requested range is outside operating hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
