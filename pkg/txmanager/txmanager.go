// Package txmanager управление транзакциями PostgreSQL.
//
// Сериализуемые транзакции с ограниченным числом повторов при конфликтах
// сериализации. Проигравшая конкурентная транзакция получает от PostgreSQL
// SQLSTATE 40001 (serialization_failure) или 40P01 (deadlock_detected) —
// такие ошибки безопасно повторять целиком, функция fn выполняется заново
// на свежем снимке данных.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// maxAttempts ограничение на число попыток выполнить транзакцию.
// Повторы без задержки: детектор конфликтов PostgreSQL уже сериализует
// конкурентов, дополнительный backoff ничего не даёт.
const maxAttempts = 3

var (
	// ErrRetryLimitExceeded возвращается после исчерпания повторов
	// на конфликтах сериализации. Вызывающая сторона может безопасно
	// повторить операцию целиком.
	ErrRetryLimitExceeded = errors.New("txmanager: serialization retry limit exceeded")

	// ErrBeginTx возвращается при ошибке открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке коммита транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TransactionManager выполняет функции внутри транзакций *sql.DB
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в обычной транзакции (READ COMMITTED), без повторов
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// При конфликте сериализации fn выполняется заново, до maxAttempts раз.
// fn обязана быть идемпотентной до коммита: все её эффекты должны
// ограничиваться переданным контекстом транзакции.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.run(ctx, opts, fn)
		if err == nil {
			return nil
		}

		if !isSerializationFailure(err) {
			return err
		}

		if attempt == maxAttempts {
			return fmt.Errorf("%w: %d attempts: %v", ErrRetryLimitExceeded, maxAttempts, err)
		}
	}

	return ErrRetryLimitExceeded
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	if err := fn(contextWithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// isSerializationFailure проверяет, что ошибка — конфликт сериализации
// или deadlock PostgreSQL (SQLSTATE 40001 / 40P01)
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
