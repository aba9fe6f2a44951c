package move_booking

import (
	"fmt"
	"time"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request, now time.Time) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	if req.TableID <= 0 {
		return fmt.Errorf("%w: table id is required", ErrInvalidInput)
	}

	if req.AppointmentAt.IsZero() {
		return fmt.Errorf("%w: appointment time is required", ErrInvalidInput)
	}

	if req.AppointmentAt.Before(now) {
		return fmt.Errorf("%w: appointment time is in the past", ErrInvalidInput)
	}

	return nil
}
