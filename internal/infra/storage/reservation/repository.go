package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/psqlbuilder"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/txmanager"
)

var reservationColumns = []string{
	"id",
	"user_id",
	"venue_id",
	"resource_type",
	"console_model",
	"unit_index",
	"reservation_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"payment_status",
	"hourly_rate",
	"total_cost",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями игровых юнитов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь.
// Если в контексте передана активная транзакция, использует её —
// протокол создания брони обязан выполнять вставку в той же транзакции,
// что и чтение занятости, иначе возникает гонка check-then-write.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"venue_id",
			"resource_type",
			"console_model",
			"unit_index",
			"reservation_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"payment_status",
			"hourly_rate",
			"total_cost",
		).
		Values(
			res.UserID,
			res.VenueID,
			res.ResourceType,
			res.ConsoleModel,
			res.UnitIndex,
			res.ReservationDate,
			res.StartTime,
			res.EndTime,
			res.DurationMinutes,
			res.Status,
			res.PaymentStatus,
			res.HourlyRate,
			res.TotalCost,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByUserID получает список броней пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("reservation_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByVenueWithFilter получает брони заведения с гибкой фильтрацией.
//
// Выборка на конкретную дату (filter.Date) с активной транзакцией в
// контексте блокируется через FOR UPDATE — это снимок занятости, который
// читает протокол создания брони. Вне транзакции тот же вызов отдаёт
// advisory-снимок для отображения доступности: он может устареть между
// чтением и последующей попыткой создать бронь, и это допустимо.
//
// Порядок результата фиксирован ORDER BY независимо от возможностей
// хранилища: детерминированную сортировку выполняет сервис, а не клиенты.
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueReservationsFilter) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.ResourceType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_type": *filter.ResourceType})
	}

	if filter.ConsoleModel != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"console_model": *filter.ConsoleModel})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": *filter.Date})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Определяем сортировку в зависимости от фильтра
	if filter.Date != nil {
		// Для конкретной даты сортируем по юниту и времени начала
		selectBuilder = selectBuilder.OrderBy("unit_index ASC, start_time ASC")
	} else {
		// Для периода или всех броней сортируем по дате и времени (сначала новые)
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	// Внутри транзакции выборка на конкретную дату блокируется FOR UPDATE
	// (снимок занятости для протокола создания брони)
	if txmanager.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// UpdateStatusConditional обновляет статус брони при условии, что текущий
// статус входит в expected. Возвращает ErrPreconditionFailed, если бронь
// существует, но её статус уже изменился.
func (r *Repository) UpdateStatusConditional(ctx context.Context, id int64, expected []domain.ReservationStatus, to domain.ReservationStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	expectedStrings := make([]string, len(expected))
	for i, s := range expected {
		expectedStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expectedStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusConditional - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusConditional - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusConditional - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.notFoundOrPrecondition(ctx, id)
	}

	return nil
}

// SetPaymentPaid отмечает оплату брони одним условным UPDATE:
// payment_status unpaid → paid, и если бронь всё ещё pending — она
// одновременно переводится в confirmed. Успешная оплата никогда не
// откатывает терминальный статус — CASE не трогает другие статусы.
func (r *Repository) SetPaymentPaid(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("payment_status", domain.PaymentPaid).
		Set("status", squirrel.Expr("CASE WHEN status = ? THEN ? ELSE status END",
			string(domain.StatusPending), string(domain.StatusConfirmed))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"payment_status": domain.PaymentUnpaid}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.notFoundOrPrecondition(ctx, id)
	}

	return nil
}

// SetPaymentStatus обновляет платёжный статус при условии, что текущий
// входит в expected (refunded и failed достижимы только из paid)
func (r *Repository) SetPaymentStatus(ctx context.Context, id int64, expected []domain.PaymentStatus, to domain.PaymentStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	expectedStrings := make([]string, len(expected))
	for i, s := range expected {
		expectedStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("reservations").
		Set("payment_status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"payment_status": expectedStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.notFoundOrPrecondition(ctx, id)
	}

	return nil
}

// Cancel отменяет бронь с указанием причины. Условие по статусу
// гарантирует, что терминальная бронь не будет отменена повторно.
// Освобождение юнита ни с чем не конфликтует, пересчёт доступности
// здесь не нужен.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	cancellable := []string{string(domain.StatusPending), string(domain.StatusConfirmed)}

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": cancellable}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.notFoundOrPrecondition(ctx, id)
	}

	return nil
}

// ExpireStalePending отменяет неоплаченные pending-брони, созданные
// раньше cutoff. Используется фоновой задачей обслуживания.
func (r *Repository) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", "payment timeout").
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Eq{"payment_status": domain.PaymentUnpaid}).
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStalePending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStalePending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStalePending - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CompleteFinished переводит в completed подтверждённые брони с датой
// раньше cutoffDate. Сутки запаса относительно текущей даты покрывают
// брони, конец которых перешёл за полночь.
func (r *Repository) CompleteFinished(ctx context.Context, cutoffDate time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"reservation_date": cutoffDate}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteFinished - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteFinished - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteFinished - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// notFoundOrPrecondition различает "бронь не существует" и "бронь
// существует, но условие по статусу не выполнено"
func (r *Repository) notFoundOrPrecondition(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return ErrReservationNotFound
	}
	return ErrPreconditionFailed
}

// scanReservation сканирует одну строку в бронь
func (r *Repository) scanReservation(row *sql.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.VenueID,
		&res.ResourceType,
		&res.ConsoleModel,
		&res.UnitIndex,
		&res.ReservationDate,
		&res.StartTime,
		&res.EndTime,
		&res.DurationMinutes,
		&res.Status,
		&res.PaymentStatus,
		&res.HourlyRate,
		&res.TotalCost,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс броней
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.VenueID,
			&res.ResourceType,
			&res.ConsoleModel,
			&res.UnitIndex,
			&res.ReservationDate,
			&res.StartTime,
			&res.EndTime,
			&res.DurationMinutes,
			&res.Status,
			&res.PaymentStatus,
			&res.HourlyRate,
			&res.TotalCost,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
