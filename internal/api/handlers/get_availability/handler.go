package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/akimovs/TRS-TableService/internal/api/handlers"
	"github.com/akimovs/TRS-TableService/internal/domain"
	getAvailability "github.com/akimovs/TRS-TableService/internal/usecase/get_availability"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParty = "некорректный размер партии"
	msgInvalidArea  = "неизвестная зона зала"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&party=N&area=indoor
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	party, err := strconv.Atoi(query.Get("party"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid party %q: %v", query.Get("party"), err)
		handlers.RespondBadRequest(w, msgInvalidParty)
		return
	}

	req := &getAvailability.Request{
		Date:      date,
		PartySize: party,
	}

	if areaStr := query.Get("area"); areaStr != "" {
		area := domain.Area(areaStr)
		if !area.IsValid() {
			h.logger.Warn("GET /availability - Invalid area %q", areaStr)
			handlers.RespondBadRequest(w, msgInvalidArea)
			return
		}
		req.Area = &area
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParty)
		default:
			h.logger.Error("GET /availability - Failed to get slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, dateStr))
}
