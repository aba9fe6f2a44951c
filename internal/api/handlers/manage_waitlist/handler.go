package manage_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
	waitlistService "github.com/akimovs/TRS-TableService/internal/service/waitlist"
)

const (
	msgInvalidEntryID = "некорректный ID записи листа ожидания"
	msgEntryNotFound  = "запись листа ожидания не найдена"
)

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

// HandleList GET /api/v1/admin/waitlist
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListOpen(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/waitlist - Failed to list entries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCancel POST /api/v1/admin/waitlist/{entryId}/cancel
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	entryID, err := strconv.ParseInt(mux.Vars(r)["entryId"], 10, 64)
	if err != nil || entryID <= 0 {
		h.logger.Warn("POST /admin/waitlist/{id}/cancel - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	if err := h.service.Cancel(r.Context(), entryID); err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrEntryNotFound):
			h.logger.Warn("POST /admin/waitlist/{id}/cancel - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)
		default:
			h.logger.Error("POST /admin/waitlist/{id}/cancel - Failed to cancel: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/waitlist/{id}/cancel - Cancelled: entry_id=%d", entryID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
