package create_reservation

import (
	"time"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	createReservation "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/usecase/create_reservation"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	VenueID      int64   `json:"venueId"`
	ResourceType string  `json:"resourceType"`           // "pc" или "console"
	ConsoleModel *string `json:"consoleModel,omitempty"` // модель консоли для типа "console"
	UnitIndex    int     `json:"unitIndex"`
	Date         string  `json:"date"`      // "2025-10-15"
	StartTime    string  `json:"startTime"` // "22:30"
	EndTime      string  `json:"endTime"`   // "01:30" - численно меньше начала для брони через полночь
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	VenueID      int64   `json:"venueId"`
	ResourceType string  `json:"resourceType"`
	ConsoleModel *string `json:"consoleModel,omitempty"`
	UnitIndex    int     `json:"unitIndex"`

	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	HourlyRate float64 `json:"hourlyRate"`
	TotalCost  float64 `json:"totalCost"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ConflictResponse HTTP response для конфликта бронирования:
// запрошенный юнит занят, возвращаем актуальный список свободных
type ConflictResponse struct {
	Message   string `json:"message"`
	UnitIndex int    `json:"unitIndex"`
	FreeUnits []int  `json:"freeUnits"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:       userID,
		VenueID:      r.VenueID,
		ResourceType: domain.ResourceType(r.ResourceType),
		ConsoleModel: r.ConsoleModel,
		UnitIndex:    r.UnitIndex,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		VenueID:         resp.VenueID,
		ResourceType:    string(resp.ResourceType),
		ConsoleModel:    resp.ConsoleModel,
		UnitIndex:       resp.UnitIndex,
		Date:            resp.ReservationDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		HourlyRate:      resp.HourlyRate,
		TotalCost:       resp.TotalCost,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
