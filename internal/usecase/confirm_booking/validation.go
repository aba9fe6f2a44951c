package confirm_booking

import (
	"fmt"
	"strings"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Surname) == "" {
		return fmt.Errorf("%w: surname is required", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}

	if !req.ConsentPrivacy {
		return fmt.Errorf("%w: privacy consent is required", ErrInvalidInput)
	}

	return nil
}
