package create_reservation

import (
	"errors"
	"net/http"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/handlers"
	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/api/middleware"
	createReservation "github.com/MohitSAGAR11/Xperience-Gaming-sub002/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgVenueNotFound      = "заведение не найдено"
	msgResourceNotOffered = "заведение не предлагает выбранный тип ресурса"
	msgUnitOutOfRange     = "номер места вне диапазона ёмкости заведения"
	msgOutsideHours       = "запрошенное время вне рабочих часов заведения"
	msgUnitTaken          = "выбранное место занято на это время"
	msgInvalidDate        = "некорректная дата бронирования"
	msgStoreContention    = "сервис перегружен, повторите попытку"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		var conflict *createReservation.SlotConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /reservations - Unit taken: user_id=%d, venue_id=%d, unit=%d, free=%v",
				userID, req.VenueID, conflict.UnitIndex, conflict.FreeUnits)
			handlers.RespondJSON(w, http.StatusConflict, &ConflictResponse{
				Message:   msgUnitTaken,
				UnitIndex: conflict.UnitIndex,
				FreeUnits: conflict.FreeUnits,
			})

		case errors.Is(err, createReservation.ErrVenueNotFound):
			h.logger.Warn("POST /reservations - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createReservation.ErrResourceNotOffered):
			h.logger.Warn("POST /reservations - Resource not offered: venue_id=%d, type=%s", req.VenueID, req.ResourceType)
			handlers.RespondNotFound(w, msgResourceNotOffered)

		case errors.Is(err, createReservation.ErrUnitIndexOutOfRange):
			h.logger.Warn("POST /reservations - Unit index out of range: venue_id=%d, unit=%d", req.VenueID, req.UnitIndex)
			handlers.RespondBadRequest(w, msgUnitOutOfRange)

		case errors.Is(err, createReservation.ErrOutsideOperatingHours):
			h.logger.Warn("POST /reservations - Outside operating hours: venue_id=%d, time=%s-%s",
				req.VenueID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid reservation date: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, venue_id=%d: %v", userID, req.VenueID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createReservation.ErrStoreContention):
			// Запрос корректен, проиграна гонка на уровне хранилища -
			// клиент может безопасно повторить
			h.logger.Warn("POST /reservations - Store contention: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreContention)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, venue_id=%d",
		result.ID, userID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
