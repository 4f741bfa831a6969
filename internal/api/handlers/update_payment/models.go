package update_payment

import (
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/service/reservations/models"
)

// UpdatePaymentRequest HTTP request model
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"` // "paid", "refunded" или "failed"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdatePaymentRequest) ToServiceRequest(userID int64) *models.UpdatePaymentRequest {
	return &models.UpdatePaymentRequest{
		UserID:        userID,
		PaymentStatus: r.PaymentStatus,
	}
}
