package get_availability

import "errors"

var (
	// ErrVenueNotFound возвращается, когда заведение не найдено
	ErrVenueNotFound = errors.New("venue not found")

	// ErrResourceNotOffered возвращается, когда заведение не предлагает
	// запрошенный тип ресурса или модель консоли
	ErrResourceNotOffered = errors.New("resource type is not offered at this venue")

	// ErrOutsideOperatingHours возвращается, когда запрошенный интервал
	// выходит за рабочие часы заведения
	ErrOutsideOperatingHours = errors.New("requested time is outside operating hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
