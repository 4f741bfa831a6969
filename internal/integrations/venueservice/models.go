package venueservice

// Venue модель заведения из VenueService
type Venue struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	OwnerID     int64          `json:"owner_id"`
	OpeningTime string         `json:"opening_time"` // "HH:MM", может быть позже ClosingTime (работа через полночь)
	ClosingTime string         `json:"closing_time"` // "HH:MM"
	Pools       []ResourcePool `json:"resource_pools"`
}

// ResourcePool пул одинаковых игровых юнитов одного типа.
// Отдельные юниты не являются сущностями VenueService: это неявные
// слоты с индексами 1..Capacity, валидируемые на момент запроса.
type ResourcePool struct {
	ResourceType string  `json:"resource_type"`           // "pc" или "console"
	ConsoleModel *string `json:"console_model,omitempty"` // модель консоли, nil для ПК
	Capacity     int     `json:"capacity"`
	HourlyRate   float64 `json:"hourly_rate"`
}

// PoolFor возвращает пул для указанного типа ресурса и модели консоли.
// Для типа "pc" модель игнорируется. Возвращает nil, если заведение
// не предлагает такой пул.
func (v *Venue) PoolFor(resourceType string, consoleModel *string) *ResourcePool {
	for i := range v.Pools {
		pool := &v.Pools[i]
		if pool.ResourceType != resourceType {
			continue
		}
		if resourceType == "pc" {
			return pool
		}
		if equalModel(pool.ConsoleModel, consoleModel) {
			return pool
		}
	}
	return nil
}

func equalModel(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
