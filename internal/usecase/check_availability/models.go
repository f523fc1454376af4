package check_availability

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

// Request модель запроса на проверку доступности слота.
// Либо Dates, либо Recurrence — блочное бронирование разворачивается
// в конкретные даты внутри usecase.
type Request struct {
	UserID     int64            // ID пользователя (для логирования, не влияет на результат)
	VenueID    int64            // ID площадки
	SpaceID    int64            // ID пространства
	Dates      []time.Time      // Явный список дат (для разового бронирования)
	Recurrence *Recurrence      // Параметры повторения (для блочного бронирования)
	StartTime  types.TimeString // Время начала ("18:00")
	EndTime    types.TimeString // Время окончания ("19:00")
}

// Response модель ответа с конфликтами и альтернативами
type Response struct {
	VenueID      int64
	SpaceID      int64
	Dates        []time.Time                  // Даты, по которым шла проверка (после разворачивания)
	OpenTime     types.TimeString             // Действующие часы работы
	CloseTime    types.TimeString
	Conflicts    []scheduling.ConflictReport  // Пусто = слот свободен на всех датах
	Alternatives []scheduling.AlternativeSlot // Ранжированные альтернативы (только при конфликтах)
}

// IsAvailable возвращает true, если запрошенный слот свободен на всех датах
func (r *Response) IsAvailable() bool {
	return len(r.Conflicts) == 0
}
