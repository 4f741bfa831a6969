package update_payment

import (
	"context"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	UpdatePayment(ctx context.Context, reservationID int64, req *models.UpdatePaymentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
