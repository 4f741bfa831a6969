// Package maintenance фоновые задачи обслуживания броней.
package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error)
	CompleteFinished(ctx context.Context, cutoffDate time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service запускает по расписанию две задачи:
//   - отмена неоплаченных pending-броней старше платёжного таймаута
//     (занятый, но не оплаченный юнит возвращается в пул);
//   - перевод подтверждённых броней в completed спустя сутки после даты
//     брони (сутки запаса покрывают брони, конец которых за полночью).
type Service struct {
	repo             ReservationRepository
	logger           Logger
	cron             *cron.Cron
	paymentTimeout   time.Duration
	expireSchedule   string
	completeSchedule string
}

// NewService создает сервис обслуживания.
// expireSchedule и completeSchedule - cron-выражения (поддерживаются
// дескрипторы вида "@every 5m").
func NewService(
	repo ReservationRepository,
	paymentTimeout time.Duration,
	expireSchedule string,
	completeSchedule string,
	logger Logger,
) *Service {
	return &Service{
		repo:             repo,
		logger:           logger,
		cron:             cron.New(),
		paymentTimeout:   paymentTimeout,
		expireSchedule:   expireSchedule,
		completeSchedule: completeSchedule,
	}
}

// Start регистрирует задачи и запускает планировщик
func (s *Service) Start() error {
	if _, err := s.cron.AddFunc(s.expireSchedule, s.runExpireStalePending); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(s.completeSchedule, s.runCompleteFinished); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Maintenance: scheduler started (expire=%q, complete=%q, payment timeout=%s)",
		s.expireSchedule, s.completeSchedule, s.paymentTimeout)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Maintenance: scheduler stopped")
}

func (s *Service) runExpireStalePending() {
	cutoff := time.Now().Add(-s.paymentTimeout)

	count, err := s.repo.ExpireStalePending(context.Background(), cutoff)
	if err != nil {
		s.logger.Error("Maintenance: failed to expire stale pending reservations: %v", err)
		return
	}

	if count > 0 {
		s.logger.Info("Maintenance: cancelled %d unpaid pending reservations older than %s", count, s.paymentTimeout)
	}
}

func (s *Service) runCompleteFinished() {
	now := time.Now()
	// Сутки запаса: завершаем только брони с датой минимум на день раньше
	cutoffDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	count, err := s.repo.CompleteFinished(context.Background(), cutoffDate)
	if err != nil {
		s.logger.Error("Maintenance: failed to complete finished reservations: %v", err)
		return
	}

	if count > 0 {
		s.logger.Info("Maintenance: marked %d reservations as completed", count)
	}
}
