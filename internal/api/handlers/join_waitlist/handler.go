package join_waitlist

import (
	"errors"
	"net/http"
	"time"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
	"github.com/akimovs/TRS-TableService/internal/domain"
	waitlistService "github.com/akimovs/TRS-TableService/internal/service/waitlist"
	"github.com/akimovs/TRS-TableService/internal/service/waitlist/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

// Request HTTP запрос на постановку в лист ожидания
type Request struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	PartySize int     `json:"partySize"`
	Area      *string `json:"area,omitempty"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
}

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /waitlist - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Join(r.Context(), &models.JoinRequest{
		Date:      date,
		PartySize: req.PartySize,
		Area:      req.Area,
		Email:     req.Email,
		Name:      req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /waitlist - Failed to join: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Entry created: id=%d, date=%s", result.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
