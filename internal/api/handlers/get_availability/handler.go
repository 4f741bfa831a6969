package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers"
	getAvailability "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/usecase/get_availability"
)

const (
	msgInvalidVenueID     = "некорректный ID заведения"
	msgMissingType        = "тип ресурса обязателен"
	msgMissingDate        = "дата обязательна"
	msgMissingTime        = "время начала и конца обязательно"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgVenueNotFound      = "заведение не найдено"
	msgResourceNotOffered = "заведение не предлагает выбранный тип ресурса"
	msgOutsideHours       = "запрошенное время вне рабочих часов заведения"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/availability
// Query params: type (required), model (для консолей), date (required, YYYY-MM-DD),
// startTime и endTime (required, HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем venueId из URL
	venueIDStr := vars["venueId"]
	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Извлекаем query параметры
	query := r.URL.Query()

	resourceType := query.Get("type")
	if resourceType == "" {
		h.logger.Warn("GET /venues/{id}/availability - Missing resource type: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingType)
		return
	}

	var consoleModel *string
	if model := query.Get("model"); model != "" {
		consoleModel = &model
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/availability - Missing date: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	startStr := query.Get("startTime")
	endStr := query.Get("endTime")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /venues/{id}/availability - Missing time range: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	// Формируем запрос к use case (с парсингом даты и времени)
	useCaseReq, err := ToUseCaseRequest(venueID, resourceType, consoleModel, dateStr, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid date or time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailability.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/availability - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getAvailability.ErrResourceNotOffered):
			h.logger.Warn("GET /venues/{id}/availability - Resource not offered: venue_id=%d, type=%s", venueID, resourceType)
			handlers.RespondNotFound(w, msgResourceNotOffered)

		case errors.Is(err, getAvailability.ErrOutsideOperatingHours):
			h.logger.Warn("GET /venues/{id}/availability - Outside operating hours: venue_id=%d, time=%s-%s",
				venueID, startStr, endStr)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/availability - Invalid input: venue_id=%d: %v", venueID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /venues/{id}/availability - Failed to get availability: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /venues/{id}/availability - Availability calculated: venue_id=%d, free=%d/%d",
		venueID, len(result.FreeUnits), result.Capacity)
	handlers.RespondJSON(w, http.StatusOK, response)
}
