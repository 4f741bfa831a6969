package models

import (
	"errors"
	"time"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе брони
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidPaymentStatus возвращается при некорректном платёжном статусе
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Request модели

// CancelReservationRequest запрос на отмену брони
type CancelReservationRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdatePaymentRequest запрос на изменение платёжного статуса
type UpdatePaymentRequest struct {
	UserID        int64  `json:"userId"`
	PaymentStatus string `json:"paymentStatus"`
}

// GetUserReservationsRequest запрос на получение броней пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetVenueReservationsRequest запрос на получение броней заведения
type GetVenueReservationsRequest struct {
	UserID          int64      `json:"userId"`
	VenueID         int64      `json:"venueId"`
	ResourceType    *string    `json:"resourceType,omitempty"`
	ConsoleModel    *string    `json:"consoleModel,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive"`
}

// ToDomainFilter конвертирует request в domain-фильтр
func (r *GetVenueReservationsRequest) ToDomainFilter() (domain.VenueReservationsFilter, error) {
	filter := domain.VenueReservationsFilter{
		VenueID:         r.VenueID,
		ConsoleModel:    r.ConsoleModel,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.ResourceType != nil {
		rt := domain.ResourceType(*r.ResourceType)
		if !rt.IsValid() {
			return domain.VenueReservationsFilter{}, ErrInvalidStatus
		}
		filter.ResourceType = &rt
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return domain.VenueReservationsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse модель брони для ответов сервиса
type ReservationResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	VenueID      int64   `json:"venueId"`
	ResourceType string  `json:"resourceType"`
	ConsoleModel *string `json:"consoleModel,omitempty"`
	UnitIndex    int     `json:"unitIndex"`

	ReservationDate string `json:"reservationDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	HourlyRate float64 `json:"hourlyRate"`
	TotalCost  float64 `json:"totalCost"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует domain-бронь в response
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                 res.ID,
		UserID:             res.UserID,
		VenueID:            res.VenueID,
		ResourceType:       string(res.ResourceType),
		ConsoleModel:       res.ConsoleModel,
		UnitIndex:          res.UnitIndex,
		ReservationDate:    res.ReservationDate.Format(domain.DateFormat),
		StartTime:          res.StartTime.String(),
		EndTime:            res.EndTime.String(),
		DurationMinutes:    res.DurationMinutes,
		Status:             string(res.Status),
		PaymentStatus:      string(res.PaymentStatus),
		HourlyRate:         res.HourlyRate,
		TotalCost:          res.TotalCost,
		CancellationReason: res.CancellationReason,
		CreatedAt:          res.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          res.UpdatedAt.Format(time.RFC3339),
	}

	if res.CancelledAt != nil {
		s := res.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}

	return resp
}

// FromDomainReservationList конвертирует список domain-броней в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	items := make([]*ReservationResponse, len(reservations))
	for i, res := range reservations {
		items[i] = FromDomainReservation(res)
	}
	return &ReservationListResponse{
		Reservations: items,
		Total:        len(items),
	}
}

// ToDomainReservationStatus конвертирует строку в статус брони
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return domain.ReservationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainPaymentStatus конвертирует строку в платёжный статус
func ToDomainPaymentStatus(s string) (domain.PaymentStatus, error) {
	switch domain.PaymentStatus(s) {
	case domain.PaymentUnpaid, domain.PaymentPaid, domain.PaymentRefunded, domain.PaymentFailed:
		return domain.PaymentStatus(s), nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}
