package create_hold

import (
	"fmt"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request, now time.Time) error {
	if req.AppointmentAt.IsZero() {
		return fmt.Errorf("%w: appointment time is required", ErrInvalidInput)
	}

	if req.AppointmentAt.Before(now) {
		return fmt.Errorf("%w: appointment time is in the past", ErrInvalidInput)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: party size must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	if req.Area != nil && !req.Area.IsValid() {
		return fmt.Errorf("%w: unknown area %q", ErrInvalidInput, *req.Area)
	}

	return nil
}
