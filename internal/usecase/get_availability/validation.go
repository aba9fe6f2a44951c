package get_availability

import (
	"fmt"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
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
