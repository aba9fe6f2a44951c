package domain

import "time"

// Customer is a guest identity keyed by email, created or updated on
// booking confirmation
type Customer struct {
	ID      int64
	Email   string
	Name    string
	Surname string
	Phone   *string

	ConsentMarketing bool
	ConsentProfiling bool
	ConsentPrivacy   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
