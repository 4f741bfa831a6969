package reservations

import (
	"context"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/integrations/venueservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueReservationsFilter) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, reason string) error
	SetPaymentPaid(ctx context.Context, id int64) error
	SetPaymentStatus(ctx context.Context, id int64, expected []domain.PaymentStatus, to domain.PaymentStatus) error
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
