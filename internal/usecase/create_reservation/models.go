package create_reservation

import (
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/scheduling"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// Recurrence параметры блочного (повторяющегося) бронирования
type Recurrence struct {
	StartDate time.Time             // первый день периода
	Weekdays  scheduling.WeekdaySet // дни недели, по которым повторяется бронирование
	EndDate   time.Time             // последний день (включительно)
}

// Request модель запроса на создание бронирования.
// Либо Dates, либо Recurrence (блочное бронирование).
type Request struct {
	UserID     int64            // ID пользователя
	VenueID    int64            // ID площадки
	SpaceID    int64            // ID пространства
	Dates      []time.Time      // Явный список дат
	Recurrence *Recurrence      // Параметры повторения
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время окончания
	Notes      *string          // Дополнительные заметки (опционально)
}

// CreatedReservation одно созданное бронирование в ответе
type CreatedReservation struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string
}

// Response модель ответа с созданными бронированиями.
// Для блочного бронирования Reservations содержит по записи на каждую дату.
type Response struct {
	UserID       int64
	VenueID      int64
	SpaceID      int64
	BlockID      *string // общий идентификатор для блочного бронирования
	CustomerName string
	Notes        *string
	Reservations []CreatedReservation
	CreatedAt    time.Time
}
