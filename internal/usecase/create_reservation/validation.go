package create_reservation

import (
	"fmt"
	"time"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/integrations/venueservice"
)

// validateRequest валидирует форму запроса: идентификаторы, формат
// времени и нижнюю границу индекса юнита. Верхняя граница индекса
// зависит от текущей ёмкости пула и проверяется после загрузки заведения.
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if !req.ResourceType.IsValid() {
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidInput, req.ResourceType)
	}

	if req.ResourceType == domain.ResourceConsole && req.ConsoleModel == nil {
		return fmt.Errorf("%w: consoleModel is required for console reservations", ErrInvalidInput)
	}

	if req.UnitIndex < 1 {
		return fmt.Errorf("%w: unitIndex must be at least 1", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateUnitIndex проверяет индекс юнита против текущей ёмкости пула
func validateUnitIndex(pool *venueservice.ResourcePool, unitIndex int) error {
	if unitIndex > pool.Capacity {
		return fmt.Errorf("%w: unit %d, capacity %d", ErrUnitIndexOutOfRange, unitIndex, pool.Capacity)
	}
	return nil
}

// validateDuration проверяет вычисленную длительность брони
func validateDuration(durationMinutes int) error {
	if durationMinutes < domain.MinReservationMinutes {
		return fmt.Errorf("%w: minimum reservation is %d minutes", ErrInvalidInput, domain.MinReservationMinutes)
	}
	if durationMinutes > domain.MaxReservationMinutes {
		return fmt.Errorf("%w: maximum reservation is %d minutes", ErrInvalidInput, domain.MaxReservationMinutes)
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
