package domain

import (
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// ReservationStatus represents the status of a space reservation
type ReservationStatus string

const (
	StatusPending        ReservationStatus = "pending"
	StatusConfirmed      ReservationStatus = "confirmed"
	StatusCancelled      ReservationStatus = "cancelled"
	StatusCompleted      ReservationStatus = "completed"
	StatusPendingPayment ReservationStatus = "pending_payment"
	StatusPaid           ReservationStatus = "paid"
)

// Reservation represents a booked time range on a venue space.
// A block (recurring) booking expands into one Reservation per date,
// all sharing the same BlockID.
type Reservation struct {
	ID      int64
	UserID  int64
	VenueID int64
	SpaceID int64 // the bookable unit conflicts are scoped to

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    ReservationStatus

	BlockID *string // set for reservations created as part of a block booking

	// Denormalized data for history
	CustomerName string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsSpace returns true if the reservation still occupies its space.
// Cancelled reservations release the space and never count as conflicts.
func (r *Reservation) HoldsSpace() bool {
	return r.Status != StatusCancelled
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending ||
		r.Status == StatusConfirmed ||
		r.Status == StatusPendingPayment
}

// CanBeUpdated returns true if the reservation can still be rescheduled
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsSettled returns true once the reservation is paid or completed
func (r *Reservation) IsSettled() bool {
	return r.Status == StatusPaid || r.Status == StatusCompleted
}

// VenueReservationsFilter фильтр для получения бронирований площадки
type VenueReservationsFilter struct {
	VenueID          int64              // Обязательный параметр
	SpaceID          *int64             // Фильтр по пространству (опционально, если nil - все пространства)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *ReservationStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые бронирования
}
