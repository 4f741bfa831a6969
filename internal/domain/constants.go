package domain

// ResourceType тип физического игрового ресурса
type ResourceType string

const (
	ResourcePC      ResourceType = "pc"
	ResourceConsole ResourceType = "console"
)

// IsValid проверяет, что тип ресурса известен системе
func (t ResourceType) IsValid() bool {
	return t == ResourcePC || t == ResourceConsole
}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinReservationMinutes       = 30
	MaxReservationMinutes       = 12 * 60
	MaxCancellationReasonLength = 500
)

// ActiveStatuses статусы броней, занимающих ресурс при расчёте доступности
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы броней, не участвующих в расчёте доступности
var InactiveStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
}
