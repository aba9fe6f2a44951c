package create_hold

import (
	"errors"
	"net/http"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
	createHold "github.com/akimovs/TRS-TableService/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты и времени, ожидается ISO8601"
	msgNoAvailability     = "нет свободных столов на выбранное время"
	msgConflict           = "столы только что заняли, выберите другое время"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /holds - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /holds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createHold.ErrNoAvailability):
			h.logger.Info("POST /holds - No availability: party=%d at %s", req.PartySize, req.DateTime)
			handlers.RespondNotFound(w, msgNoAvailability)

		case errors.Is(err, createHold.ErrConflict):
			h.logger.Info("POST /holds - Conflict: party=%d at %s", req.PartySize, req.DateTime)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		default:
			h.logger.Error("POST /holds - Failed to create hold: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds - Hold created: booking_id=%d", result.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
