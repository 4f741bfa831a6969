package create_reservation

import (
	"time"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	UserID       int64               // ID пользователя
	VenueID      int64               // ID заведения
	ResourceType domain.ResourceType // Тип ресурса ("pc" или "console")
	ConsoleModel *string             // Модель консоли (только для типа "console")
	UnitIndex    int                 // Индекс юнита в пуле, 1..capacity
	Date         time.Time           // Дата бронирования (без времени)
	StartTime    types.TimeString    // Время начала, например "22:30"
	EndTime      types.TimeString    // Время конца; численно меньше начала для брони через полночь
}

// Response модель ответа с созданной бронью
type Response struct {
	ID           int64
	UserID       int64
	VenueID      int64
	ResourceType domain.ResourceType
	ConsoleModel *string
	UnitIndex    int

	ReservationDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int // Вычисленная длительность на нормализованной шкале

	Status        string
	PaymentStatus string

	HourlyRate float64
	TotalCost  float64 // HourlyRate * DurationMinutes / 60

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:              res.ID,
		UserID:          res.UserID,
		VenueID:         res.VenueID,
		ResourceType:    res.ResourceType,
		ConsoleModel:    res.ConsoleModel,
		UnitIndex:       res.UnitIndex,
		ReservationDate: res.ReservationDate,
		StartTime:       res.StartTime,
		EndTime:         res.EndTime,
		DurationMinutes: res.DurationMinutes,
		Status:          string(res.Status),
		PaymentStatus:   string(res.PaymentStatus),
		HourlyRate:      res.HourlyRate,
		TotalCost:       res.TotalCost,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}
