package models

import (
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// BookingResponse представление бронирования для внешних слоев
type BookingResponse struct {
	ID            int64      `json:"id"`
	AppointmentAt time.Time  `json:"appointmentAt"`
	PartySize     int        `json:"partySize"`
	Area          *string    `json:"area,omitempty"`
	Status        string     `json:"status"`
	HoldExpiresAt *time.Time `json:"holdExpiresAt,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	TableIDs      []int64    `json:"tableIds"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID,
		AppointmentAt: b.AppointmentAt,
		PartySize:     b.PartySize,
		Status:        string(b.Status),
		HoldExpiresAt: b.HoldExpiresAt,
		Notes:         b.Notes,
		TableIDs:      make([]int64, 0, len(b.Allocations)),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.Area != nil {
		area := string(*b.Area)
		resp.Area = &area
	}

	for _, a := range b.Allocations {
		resp.TableIDs = append(resp.TableIDs, a.TableID)
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]*BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}
	return resp
}
