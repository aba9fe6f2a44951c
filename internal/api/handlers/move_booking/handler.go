package move_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
	moveBooking "github.com/akimovs/TRS-TableService/internal/usecase/move_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты и времени, ожидается ISO8601"
	msgBookingNotFound    = "бронирование не найдено"
	msgTableNotFound      = "стол не найден или неактивен"
	msgAlreadyProcessed   = "бронирование уже завершено или отменено"
	msgCapacityExceeded   = "вместимость стола меньше размера компании"
	msgConflict           = "стол занят в выбранное время"
)

type Handler struct {
	useCase MoveBookingUseCase
	logger  Logger
}

func NewHandler(useCase MoveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /admin/bookings/{id}/move - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/move - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, moveBooking.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings/{id}/move - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, moveBooking.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/move - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, moveBooking.ErrTableNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/move - Table not found: table_id=%d", req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, moveBooking.ErrAlreadyProcessed):
			h.logger.Info("POST /admin/bookings/{id}/move - Already processed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyProcessed)

		case errors.Is(err, moveBooking.ErrCapacityExceeded):
			h.logger.Info("POST /admin/bookings/{id}/move - Capacity exceeded: booking_id=%d, table_id=%d", bookingID, req.TableID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, moveBooking.ErrConflict):
			h.logger.Info("POST /admin/bookings/{id}/move - Conflict: booking_id=%d, table_id=%d", bookingID, req.TableID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		default:
			h.logger.Error("POST /admin/bookings/{id}/move - Failed to move: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/move - Moved: booking_id=%d, table_id=%d", bookingID, result.TableID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
