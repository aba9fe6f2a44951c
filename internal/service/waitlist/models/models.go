package models

import (
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// JoinRequest запрос на постановку в лист ожидания
type JoinRequest struct {
	Date      time.Time `json:"date"`
	PartySize int       `json:"partySize"`
	Area      *string   `json:"area,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
}

// EntryResponse представление записи листа ожидания
type EntryResponse struct {
	ID         int64      `json:"id"`
	Date       time.Time  `json:"date"`
	PartySize  int        `json:"partySize"`
	Area       *string    `json:"area,omitempty"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
}

// EntryListResponse список записей листа ожидания
type EntryListResponse struct {
	Entries []*EntryResponse `json:"entries"`
}

// FromDomainEntry конвертирует domain модель в response
func FromDomainEntry(e *domain.WaitlistEntry) *EntryResponse {
	resp := &EntryResponse{
		ID:         e.ID,
		Date:       e.Date,
		PartySize:  e.PartySize,
		Email:      e.Email,
		Name:       e.Name,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		NotifiedAt: e.NotifiedAt,
	}

	if e.Area != nil {
		area := string(*e.Area)
		resp.Area = &area
	}

	return resp
}

// FromDomainEntryList конвертирует список domain моделей в response
func FromDomainEntryList(entries []*domain.WaitlistEntry) *EntryListResponse {
	resp := &EntryListResponse{
		Entries: make([]*EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, FromDomainEntry(e))
	}
	return resp
}
