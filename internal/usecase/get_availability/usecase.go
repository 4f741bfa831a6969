package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	venueClient "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/integrations/venueservice"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/timeslot"
)

// UseCase use case для получения свободных юнитов на запрошенный интервал.
//
// Чтение advisory: выполняется ВНЕ транзакции и может устареть между
// показом пользователю и его попыткой создать бронь. Гарантию отсутствия
// двойного бронирования даёт только транзакционный протокол создания,
// этот usecase - витрина.
type UseCase struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: venue=%d, type=%s, date=%s, time=%s-%s",
		req.VenueID, req.ResourceType, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем заведение
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailability: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Находим пул запрошенного типа
	pool := venue.PoolFor(string(req.ResourceType), req.ConsoleModel)
	if pool == nil {
		uc.logger.Warn("GetAvailability: venue id=%d does not offer %s", req.VenueID, req.ResourceType)
		return nil, ErrResourceNotOffered
	}

	// 4. Нормализуем окно и интервал на одну шкалу, проверяем рабочие часы
	window := timeslot.NewWindow(venue.OpeningTime, venue.ClosingTime)
	reqStart, reqEnd := window.Align(req.StartTime.Minutes(), req.EndTime.Minutes())

	if !window.Contains(reqStart, reqEnd) {
		uc.logger.Warn("GetAvailability: interval %s-%s outside operating hours %s",
			req.StartTime, req.EndTime, window)
		return nil, fmt.Errorf("%w: venue is open %s", ErrOutsideOperatingHours, window)
	}

	// 5. Получаем активные брони на дату/тип/модель (без транзакции и блокировок)
	filter := domain.VenueReservationsFilter{
		VenueID:         req.VenueID,
		ResourceType:    &req.ResourceType,
		ConsoleModel:    req.ConsoleModel,
		Date:            &req.Date,
		IncludeInactive: false,
	}

	reservations, err := uc.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Вычисляем свободные юниты
	availability := &domain.Availability{
		FreeUnits: domain.FreeUnits(pool.Capacity, reservations, window, reqStart, reqEnd),
		Capacity:  pool.Capacity,
	}

	uc.logger.Info("GetAvailability: venue=%d, type=%s: %d/%d units free",
		req.VenueID, req.ResourceType, len(availability.FreeUnits), availability.Capacity)

	return &Response{
		VenueID:      req.VenueID,
		ResourceType: req.ResourceType,
		ConsoleModel: req.ConsoleModel,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		FreeUnits:    availability.FreeUnits,
		Capacity:     availability.Capacity,
		FirstFree:    availability.FirstFree(),
	}, nil
}
