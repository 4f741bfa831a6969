package get_availability

import (
	"time"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	getAvailability "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/usecase/get_availability"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VenueID      int64   `json:"venueId"`
	ResourceType string  `json:"resourceType"`
	ConsoleModel *string `json:"consoleModel,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`

	FreeUnits []int `json:"freeUnits"`
	Capacity  int   `json:"capacity"`
	FirstFree int   `json:"firstFree"` // 0, если свободных юнитов нет
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(venueID int64, resourceType string, consoleModel *string, dateStr, startStr, endStr string) (*getAvailability.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		VenueID:      venueID,
		ResourceType: domain.ResourceType(resourceType),
		ConsoleModel: consoleModel,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		VenueID:      resp.VenueID,
		ResourceType: string(resp.ResourceType),
		ConsoleModel: resp.ConsoleModel,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		FreeUnits:    resp.FreeUnits,
		Capacity:     resp.Capacity,
		FirstFree:    resp.FirstFree,
	}
}
