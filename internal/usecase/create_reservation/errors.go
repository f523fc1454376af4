package create_reservation

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_reservation: venue not found")

	// ErrSpaceNotFound возвращается, когда пространство не найдено на площадке
	ErrSpaceNotFound = errors.New("create_reservation: space not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrRecurrenceTooLong возвращается, когда период повторения превышает допустимое окно
	ErrRecurrenceTooLong = errors.New("create_reservation: recurrence window is too long")

	// ErrEmptyRecurrence возвращается, когда разворачивание повторения не дало ни одной даты
	ErrEmptyRecurrence = errors.New("create_reservation: recurrence expands to no dates")

	// ErrDurationTooShort возвращается, когда длительность меньше минимальной
	ErrDurationTooShort = errors.New("create_reservation: duration is below the configured minimum")

	// ErrOutsideOperatingHours возвращается, когда диапазон выходит за часы работы
	ErrOutsideOperatingHours = errors.New("create_reservation: requested range is outside operating hours")

	// ErrSlotConflict возвращается, когда хотя бы одна из дат уже занята
	ErrSlotConflict = errors.New("create_reservation: slot conflicts with existing reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
