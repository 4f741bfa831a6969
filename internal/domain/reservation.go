package domain

import (
	"time"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/types"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// PaymentStatus represents the payment state of a reservation.
// It is tracked independently of the lifecycle status: a successful payment
// moves a pending reservation to confirmed, but payment transitions never
// reverse a terminal lifecycle state.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Reservation represents a booking of one physical gaming unit
// (a PC station or one console of a given model) at a venue.
type Reservation struct {
	ID           int64
	UserID       int64
	VenueID      int64
	ResourceType ResourceType
	ConsoleModel *string // nil for PC stations
	UnitIndex    int     // 1-based index within the venue's pool for this type/model

	ReservationDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	Status        ReservationStatus
	PaymentStatus PaymentStatus

	// Denormalized pricing data: the rate the unit was booked at.
	// Owner edits to the venue's rates never reprice existing reservations.
	HourlyRate float64
	TotalCost  float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the reservation holds its unit for conflict
// purposes. Only pending and confirmed reservations occupy a time interval.
func (r *Reservation) OccupiesSlot() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if the lifecycle status can no longer change
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled
}

// CanTransitionPayment validates a payment status transition:
// unpaid → paid, paid → refunded, paid → failed.
func CanTransitionPayment(from, to PaymentStatus) bool {
	switch from {
	case PaymentUnpaid:
		return to == PaymentPaid
	case PaymentPaid:
		return to == PaymentRefunded || to == PaymentFailed
	default:
		return false
	}
}

// VenueReservationsFilter фильтр для выборки бронирований заведения
type VenueReservationsFilter struct {
	VenueID         int64              // Обязательный параметр
	ResourceType    *ResourceType      // Фильтр по типу ресурса (опционально)
	ConsoleModel    *string            // Фильтр по модели консоли (опционально)
	Date            *time.Time         // Конкретная дата (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые и отменённые брони
}
