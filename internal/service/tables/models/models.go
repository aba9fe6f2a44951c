package models

import (
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// CreateTableRequest запрос на создание стола
type CreateTableRequest struct {
	Code       string  `json:"code"`
	Capacity   int     `json:"capacity"`
	Area       string  `json:"area"`
	MergeGroup *string `json:"mergeGroup,omitempty"`
}

// UpdateTableRequest запрос на обновление стола
type UpdateTableRequest struct {
	Code       *string `json:"code,omitempty"`
	Capacity   *int    `json:"capacity,omitempty"`
	Area       *string `json:"area,omitempty"`
	MergeGroup *string `json:"mergeGroup,omitempty"`
}

// TableResponse представление стола
type TableResponse struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Capacity   int       `json:"capacity"`
	Area       string    `json:"area"`
	MergeGroup *string   `json:"mergeGroup,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableListResponse список столов
type TableListResponse struct {
	Tables []*TableResponse `json:"tables"`
}

// FromDomainTable конвертирует domain модель в response
func FromDomainTable(t *domain.Table) *TableResponse {
	return &TableResponse{
		ID:         t.ID,
		Code:       t.Code,
		Capacity:   t.Capacity,
		Area:       string(t.Area),
		MergeGroup: t.MergeGroup,
		Active:     t.Active,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// FromDomainTableList конвертирует список domain моделей в response
func FromDomainTableList(tables []*domain.Table) *TableListResponse {
	resp := &TableListResponse{
		Tables: make([]*TableResponse, 0, len(tables)),
	}
	for _, t := range tables {
		resp.Tables = append(resp.Tables, FromDomainTable(t))
	}
	return resp
}
