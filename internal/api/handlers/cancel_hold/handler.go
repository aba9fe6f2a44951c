package cancel_hold

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
	bookingsService "github.com/akimovs/TRS-TableService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgAlreadyConfirmed = "бронирование уже подтверждено, отмена доступна по персональной ссылке"
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

// Handle POST /api/v1/holds/{bookingId}/cancel
// Отмена идемпотентна: повторный вызов для уже отмененного бронирования
// тоже отвечает 200. Подтвержденная бронь по этому маршруту не отменяется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /holds/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Cancel(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /holds/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsService.ErrAlreadyConfirmed):
			h.logger.Warn("POST /holds/{id}/cancel - Booking already confirmed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyConfirmed)
		default:
			h.logger.Error("POST /holds/{id}/cancel - Failed to cancel: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holds/{id}/cancel - Cancelled: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
