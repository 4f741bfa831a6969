package get_availability

import (
	"time"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/types"
)

// Request модель запроса доступности: те же ключевые поля, что и при
// создании брони, но без индекса юнита
type Request struct {
	VenueID      int64
	ResourceType domain.ResourceType
	ConsoleModel *string
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
}

// Response модель ответа со свободными юнитами
type Response struct {
	VenueID      int64
	ResourceType domain.ResourceType
	ConsoleModel *string
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString

	FreeUnits []int // Индексы свободных юнитов по возрастанию
	Capacity  int   // Текущая ёмкость пула
	FirstFree int   // Наименьший свободный индекс, 0 если всё занято
}
