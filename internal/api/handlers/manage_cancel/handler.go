package manage_cancel

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
	bookingsService "github.com/akimovs/TRS-TableService/internal/service/bookings"
)

const (
	msgInvalidToken  = "некорректный токен управления бронированием"
	msgTokenNotFound = "бронирование по токену не найдено"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/manage/{token}/cancel
// Self-service отмена гостем по токену из письма. Идемпотентна.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	if err := h.service.CancelByManageToken(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /manage/{token}/cancel - Unknown token")
			handlers.RespondNotFound(w, msgTokenNotFound)
		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidToken)
		default:
			h.logger.Error("POST /manage/{token}/cancel - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /manage/{token}/cancel - Cancelled by manage token")
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
