package manage_tables

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
	tablesService "github.com/akimovs/TRS-TableService/internal/service/tables"
	"github.com/akimovs/TRS-TableService/internal/service/tables/models"
)

const (
	msgInvalidTableID     = "некорректный ID стола"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTableNotFound      = "стол не найден"
	msgTableCodeTaken     = "стол с таким кодом уже существует"
	msgTableInUse         = "у стола есть будущие бронирования"
)

type Handler struct {
	service TablesService
	logger  Logger
}

func NewHandler(service TablesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/tables
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/tables", err)
		return
	}

	h.logger.Info("POST /admin/tables - Table created: id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/admin/tables
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/tables - Failed to list tables: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PATCH /api/v1/admin/tables/{tableId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tableID, ok := h.tableID(w, r, "PATCH /admin/tables/{id}")
	if !ok {
		return
	}

	var req models.UpdateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/tables/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), tableID, &req)
	if err != nil {
		h.respondServiceError(w, "PATCH /admin/tables/{id}", err)
		return
	}

	h.logger.Info("PATCH /admin/tables/{id} - Table updated: id=%d", tableID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeactivate POST /api/v1/admin/tables/{tableId}/deactivate
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	tableID, ok := h.tableID(w, r, "POST /admin/tables/{id}/deactivate")
	if !ok {
		return
	}

	if err := h.service.Deactivate(r.Context(), tableID); err != nil {
		h.respondServiceError(w, "POST /admin/tables/{id}/deactivate", err)
		return
	}

	h.logger.Info("POST /admin/tables/{id}/deactivate - Table deactivated: id=%d", tableID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleActivate POST /api/v1/admin/tables/{tableId}/activate
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	tableID, ok := h.tableID(w, r, "POST /admin/tables/{id}/activate")
	if !ok {
		return
	}

	if err := h.service.Activate(r.Context(), tableID); err != nil {
		h.respondServiceError(w, "POST /admin/tables/{id}/activate", err)
		return
	}

	h.logger.Info("POST /admin/tables/{id}/activate - Table activated: id=%d", tableID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleDelete DELETE /api/v1/admin/tables/{tableId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tableID, ok := h.tableID(w, r, "DELETE /admin/tables/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), tableID); err != nil {
		h.respondServiceError(w, "DELETE /admin/tables/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/tables/{id} - Table deleted: id=%d", tableID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// tableID извлекает и валидирует ID стола из пути
func (h *Handler) tableID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	tableID, err := strconv.ParseInt(mux.Vars(r)["tableId"], 10, 64)
	if err != nil || tableID <= 0 {
		h.logger.Warn("%s - Invalid table ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return 0, false
	}
	return tableID, true
}

// respondServiceError единое отображение ошибок сервиса столов в HTTP статусы
func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, tablesService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, tablesService.ErrTableNotFound):
		h.logger.Warn("%s - Table not found: %v", op, err)
		handlers.RespondNotFound(w, msgTableNotFound)

	case errors.Is(err, tablesService.ErrTableCodeTaken):
		h.logger.Warn("%s - Table code taken: %v", op, err)
		handlers.RespondError(w, http.StatusConflict, msgTableCodeTaken)

	case errors.Is(err, tablesService.ErrTableInUse):
		h.logger.Warn("%s - Table in use: %v", op, err)
		handlers.RespondError(w, http.StatusConflict, msgTableInUse)

	default:
		h.logger.Error("%s - Service error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
