package domain

// Default schedule configuration values
const (
	DefaultOpenTime           = "08:00"
	DefaultCloseTime          = "23:00"
	DefaultMinDurationMinutes = 60 // минимальная длительность бронирования
	DefaultGridStepMinutes    = 60 // шаг сетки для подбора альтернативных слотов
	DefaultSuggestionLimit    = 5  // сколько альтернатив показываем пользователю
	DefaultAdvanceBookingDays = 0  // 0 = unlimited
)

// Business validation constants
const (
	MinDurationLowerBound       = 30  // минимально допустимое значение min_duration_minutes
	MaxDurationMinutes          = 720 // 12 hours
	MinGridStepMinutes          = 15
	MaxGridStepMinutes          = 120
	MinSuggestionLimit          = 1
	MaxSuggestionLimit          = 20
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MaxRecurrenceWindowDays     = 366 // блочное бронирование не длиннее года
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, при которых бронирование не занимает пространство
// Используется при фильтрации для проверки конфликтов
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, при которых бронирование занимает пространство
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusPendingPayment,
	StatusPaid,
}
