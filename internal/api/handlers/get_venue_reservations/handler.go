package get_venue_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/middleware"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/domain"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/service/reservations"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/service/reservations/models"
)

const (
	msgInvalidVenueID = "некорректный ID заведения"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVenueNotFound  = "заведение не найдено"
	msgAccessDenied   = "доступ запрещен"
	msgInvalidFilter  = "некорректные параметры фильтра"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/reservations
// Query params (все опциональны): type, model, startDate, endDate, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/reservations - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Формируем запрос к сервису из query параметров
	serviceReq := &models.GetVenueReservationsRequest{
		UserID:  userID,
		VenueID: venueID,
	}

	query := r.URL.Query()

	if resourceType := query.Get("type"); resourceType != "" {
		serviceReq.ResourceType = &resourceType
	}

	if model := query.Get("model"); model != "" {
		serviceReq.ConsoleModel = &model
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/reservations - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/reservations - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		serviceReq.Status = &status
	}

	if includeInactive := query.Get("includeInactive"); includeInactive == "true" {
		serviceReq.IncludeInactive = true
	}

	// Вызываем сервис
	result, err := h.service.GetVenueReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/reservations - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /venues/{id}/reservations - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/reservations - Invalid filter: venue_id=%d: %v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /venues/{id}/reservations - Failed to get reservations: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/reservations - Fetched %d reservations: venue_id=%d", result.Total, venueID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
