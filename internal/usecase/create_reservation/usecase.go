package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	venueClient "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/integrations/venueservice"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/timeslot"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/txmanager"
)

// UseCase use case для создания брони игрового юнита.
//
// Решение «юнит свободен» принимается ВНУТРИ той же сериализуемой
// транзакции, что и вставка брони. Проверка доступности вне транзакции
// с последующей записью — классическая гонка check-then-write, из-за
// которой два клиента могли бы занять один юнит на пересекающееся время.
type UseCase struct {
	reservationRepo ReservationRepository
	venueClient     VenueServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		venueClient:     venueClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, venue=%d, type=%s, unit=%d, date=%s, time=%s-%s",
		req.UserID, req.VenueID, req.ResourceType, req.UnitIndex,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем заведение: рабочие часы, пулы ресурсов, ставки.
	// Ёмкость пула - атрибут на момент запроса: использование только
	// для валидации нового запроса, существующие брони не трогаем.
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateReservation: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateReservation: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Находим пул запрошенного типа и проверяем индекс юнита
	pool := venue.PoolFor(string(req.ResourceType), req.ConsoleModel)
	if pool == nil {
		uc.logger.Warn("CreateReservation: venue id=%d does not offer %s", req.VenueID, req.ResourceType)
		return nil, ErrResourceNotOffered
	}

	if err := validateUnitIndex(pool, req.UnitIndex); err != nil {
		uc.logger.Warn("CreateReservation: unit index out of range: %v", err)
		return nil, err
	}

	// 5. Нормализуем окно заведения и интервал запроса на одну шкалу
	// и проверяем рабочие часы
	window := timeslot.NewWindow(venue.OpeningTime, venue.ClosingTime)
	reqStart, reqEnd := window.Align(req.StartTime.Minutes(), req.EndTime.Minutes())

	if !window.Contains(reqStart, reqEnd) {
		uc.logger.Warn("CreateReservation: interval %s-%s outside operating hours %s",
			req.StartTime, req.EndTime, window)
		return nil, fmt.Errorf("%w: venue is open %s", ErrOutsideOperatingHours, window)
	}

	durationMinutes := reqEnd - reqStart
	if err := validateDuration(durationMinutes); err != nil {
		uc.logger.Warn("CreateReservation: duration validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 6. Атомарный протокол «прочитать занятость - проверить - записать»
	// в сериализуемой транзакции. При конфликте сериализации txManager
	// выполняет функцию заново на свежем снимке, до исчерпания повторов.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Снимок активных броней заведения на дату/тип/модель (FOR UPDATE)
		filter := domain.VenueReservationsFilter{
			VenueID:         req.VenueID,
			ResourceType:    &req.ResourceType,
			ConsoleModel:    req.ConsoleModel,
			Date:            &req.Date,
			IncludeInactive: false, // Только pending и confirmed занимают юниты
		}

		reservations, err := uc.reservationRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 6.2. Вычисляем свободные юниты на запрошенный интервал
		freeUnits := domain.FreeUnits(pool.Capacity, reservations, window, reqStart, reqEnd)

		if !domain.UnitIsFree(freeUnits, req.UnitIndex) {
			uc.logger.Warn("CreateReservation: unit %d taken, free units: %v", req.UnitIndex, freeUnits)
			return &SlotConflictError{UnitIndex: req.UnitIndex, FreeUnits: freeUnits}
		}

		uc.logger.Info("CreateReservation: unit %d free (%d/%d units free)",
			req.UnitIndex, len(freeUnits), pool.Capacity)

		// 6.3. Вставляем бронь в той же транзакции
		res := &domain.Reservation{
			UserID:          req.UserID,
			VenueID:         req.VenueID,
			ResourceType:    req.ResourceType,
			ConsoleModel:    req.ConsoleModel,
			UnitIndex:       req.UnitIndex,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentUnpaid,
			// Денормализация ставки на момент бронирования
			HourlyRate: pool.HourlyRate,
			TotalCost:  pool.HourlyRate * float64(durationMinutes) / 60,
		}

		created, err := uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпание повторов транзакции - отдельный, безопасно
		// повторяемый исход: запрос корректен, проиграна только гонка
		if errors.Is(err, txmanager.ErrRetryLimitExceeded) {
			uc.logger.Warn("CreateReservation: transaction retry limit exceeded: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreContention, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return toResponse(result), nil
}
