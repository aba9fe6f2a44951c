package manage_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
	settingsService "github.com/akimovs/TRS-TableService/internal/service/settings"
	"github.com/akimovs/TRS-TableService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBlackoutID  = "некорректный ID блэкаута"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGetRule GET /api/v1/admin/settings/rule
func (h *Handler) HandleGetRule(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetRule(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings/rule - Failed to get rule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdateRule PUT /api/v1/admin/settings/rule
func (h *Handler) HandleUpdateRule(w http.ResponseWriter, r *http.Request) {
	var req models.RuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings/rule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateRule(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/settings/rule", err)
		return
	}

	h.logger.Info("PUT /admin/settings/rule - Rule updated: seat=%d, interval=%d",
		result.SeatDurationMinutes, result.SlotIntervalMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGetHours GET /api/v1/admin/settings/hours
func (h *Handler) HandleGetHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetHours(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings/hours - Failed to get hours: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleReplaceHours PUT /api/v1/admin/settings/hours
func (h *Handler) HandleReplaceHours(w http.ResponseWriter, r *http.Request) {
	var req models.HoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceHours(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/settings/hours", err)
		return
	}

	h.logger.Info("PUT /admin/settings/hours - Schedule replaced: %d entries", len(result.Hours))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpsertSpecialHours PUT /api/v1/admin/settings/special-hours
func (h *Handler) HandleUpsertSpecialHours(w http.ResponseWriter, r *http.Request) {
	var req SpecialHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings/special-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /admin/settings/special-hours - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.UpsertSpecialHours(r.Context(), serviceReq); err != nil {
		h.respondServiceError(w, "PUT /admin/settings/special-hours", err)
		return
	}

	h.logger.Info("PUT /admin/settings/special-hours - Saved: date=%s, closed=%v", req.Date, req.Closed)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleCreateBlackout POST /api/v1/admin/settings/blackouts
func (h *Handler) HandleCreateBlackout(w http.ResponseWriter, r *http.Request) {
	var req models.BlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/settings/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBlackout(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/settings/blackouts", err)
		return
	}

	h.logger.Info("POST /admin/settings/blackouts - Blackout created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleDeleteBlackout DELETE /api/v1/admin/settings/blackouts/{blackoutId}
func (h *Handler) HandleDeleteBlackout(w http.ResponseWriter, r *http.Request) {
	blackoutID, err := strconv.ParseInt(mux.Vars(r)["blackoutId"], 10, 64)
	if err != nil || blackoutID <= 0 {
		h.logger.Warn("DELETE /admin/settings/blackouts/{id} - Invalid blackout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlackoutID)
		return
	}

	if err := h.service.DeleteBlackout(r.Context(), blackoutID); err != nil {
		h.respondServiceError(w, "DELETE /admin/settings/blackouts/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/settings/blackouts/{id} - Deleted: id=%d", blackoutID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// respondServiceError единое отображение ошибок сервиса настроек в HTTP статусы
func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, settingsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - Service error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
