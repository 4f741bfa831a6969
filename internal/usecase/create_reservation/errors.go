package create_reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrVenueNotFound возвращается, когда заведение не найдено
	ErrVenueNotFound = errors.New("create_reservation: venue not found")

	// ErrResourceNotOffered возвращается, когда заведение не предлагает
	// запрошенный тип ресурса или модель консоли
	ErrResourceNotOffered = errors.New("create_reservation: resource type is not offered at this venue")

	// ErrUnitIndexOutOfRange возвращается, когда индекс юнита вне
	// диапазона [1, capacity] текущей ёмкости пула
	ErrUnitIndexOutOfRange = errors.New("create_reservation: unit index is out of range")

	// ErrOutsideOperatingHours возвращается, когда запрошенный интервал
	// выходит за рабочие часы заведения
	ErrOutsideOperatingHours = errors.New("create_reservation: requested time is outside operating hours")

	// ErrUnitNotAvailable возвращается, когда запрошенный юнит занят
	// на пересекающийся интервал. Конкретные детали несёт SlotConflictError.
	ErrUnitNotAvailable = errors.New("create_reservation: unit is not available")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrStoreContention возвращается после исчерпания повторов транзакции
	// на конфликтах сериализации. Запрос корректен, его можно повторить.
	ErrStoreContention = errors.New("create_reservation: store contention, safe to retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// SlotConflictError возвращается, когда запрошенный юнит уже занят на
// пересекающийся интервал. Несёт запрошенный индекс и список свободных
// на момент транзакции юнитов — вызывающая сторона может сразу предложить
// альтернативу без повторного запроса доступности.
type SlotConflictError struct {
	UnitIndex int
	FreeUnits []int
}

// Error возвращает текст ошибки
func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: unit %d is taken, free units: %v", ErrUnitNotAvailable, e.UnitIndex, e.FreeUnits)
}

// Unwrap позволяет обнаруживать конфликт через errors.Is(err, ErrUnitNotAvailable)
func (e *SlotConflictError) Unwrap() error {
	return ErrUnitNotAvailable
}
