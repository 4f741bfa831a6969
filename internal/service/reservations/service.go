package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	reservationRepo "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/infra/storage/reservation"
	venueClient "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/integrations/venueservice"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/service/reservations/models"
)

// Service сервис простых операций над бронями: чтение, отмена,
// платёжные переходы. Пересчёт доступности здесь не нужен: освобождение
// юнита ни с чем не конфликтует, а условные UPDATE репозитория с
// предусловием по текущему статусу защищают от гонок статусов.
type Service struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
// Пользователь видит только свою бронь, владелец заведения - любую бронь заведения
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, res, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает историю броней пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetVenueReservations получает брони заведения с гибкой фильтрацией
// Доступно только владельцу заведения
func (s *Service) GetVenueReservations(ctx context.Context, req *models.GetVenueReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetVenueReservations: fetching reservations for venue=%d, user=%d", req.VenueID, req.UserID)

	// Проверяем права владельца заведения
	if err := s.checkVenueOwnerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain-фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueReservations: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueReservations: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueReservations: successfully fetched %d reservations for venue=%d", len(reservations), req.VenueID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронь
// Пользователь может отменить свою бронь, владелец заведения - любую бронь заведения
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	// Получаем бронь
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронь
	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, res.Status)
		return ErrCannotCancel
	}

	// Проверяем права: владелец брони либо владелец заведения
	if res.UserID != req.UserID {
		if err := s.checkVenueOwnerAccess(ctx, res.VenueID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
	}

	// Отменяем бронь. Условный UPDATE с предусловием по статусу:
	// параллельная терминализация брони даст ErrPreconditionFailed.
	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrPreconditionFailed):
			s.logger.Warn("Cancel: reservation id=%d already terminal", reservationID)
			return ErrCannotCancel
		default:
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// UpdatePayment выполняет переход платёжного статуса брони.
// Переход unpaid → paid дополнительно переводит pending-бронь в confirmed
// одним условным UPDATE. Платёжные переходы никогда не откатывают
// терминальный статус брони.
func (s *Service) UpdatePayment(ctx context.Context, reservationID int64, req *models.UpdatePaymentRequest) error {
	s.logger.Info("UpdatePayment: reservation id=%d, target=%s, user=%d",
		reservationID, req.PaymentStatus, req.UserID)

	target, err := models.ToDomainPaymentStatus(req.PaymentStatus)
	if err != nil {
		s.logger.Warn("UpdatePayment: invalid payment status=%s", req.PaymentStatus)
		return fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
	}

	// Получаем бронь и проверяем владельца
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdatePayment: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdatePayment: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdatePayment - repository error: %v", ErrInternal, err)
	}

	if res.UserID != req.UserID {
		s.logger.Warn("UpdatePayment: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return ErrAccessDenied
	}

	// Валидируем переход
	if !domain.CanTransitionPayment(res.PaymentStatus, target) {
		s.logger.Warn("UpdatePayment: invalid transition %s -> %s for reservation id=%d",
			res.PaymentStatus, target, reservationID)
		return ErrInvalidPaymentTransition
	}

	switch target {
	case domain.PaymentPaid:
		err = s.reservationRepo.SetPaymentPaid(ctx, reservationID)
	default:
		// refunded и failed достижимы только из paid
		err = s.reservationRepo.SetPaymentStatus(ctx, reservationID,
			[]domain.PaymentStatus{domain.PaymentPaid}, target)
	}

	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrPreconditionFailed):
			// Гонка с параллельным платёжным переходом
			s.logger.Warn("UpdatePayment: payment status of reservation id=%d changed concurrently", reservationID)
			return ErrInvalidPaymentTransition
		default:
			s.logger.Error("UpdatePayment: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: UpdatePayment - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdatePayment: reservation id=%d payment status set to %s", reservationID, target)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к брони:
// владелец брони либо владелец заведения
func (s *Service) checkUserAccess(ctx context.Context, res *domain.Reservation, userID int64) error {
	if res.UserID == userID {
		return nil
	}

	if err := s.checkVenueOwnerAccess(ctx, res.VenueID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkVenueOwnerAccess проверяет, что пользователь - владелец заведения
func (s *Service) checkVenueOwnerAccess(ctx context.Context, venueID int64, userID int64) error {
	venue, err := s.venueClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("checkVenueOwnerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkVenueOwnerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkVenueOwnerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if venue.OwnerID == userID {
		return nil
	}

	s.logger.Warn("checkVenueOwnerAccess: user=%d is not the owner of venue=%d", userID, venueID)
	return ErrAccessDenied
}
