package dto

import (
	"time"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// UploadImportInput archivo de pedidos ya leído por el handler.
type UploadImportInput struct {
	FileName string
	Country  string
	Content  []byte
}

// ImportResponse salida de una importación del historial.
type ImportResponse struct {
	ID          int64                 `json:"id"`
	Country     string                `json:"country"`
	Currency    string                `json:"currency"`
	FileName    string                `json:"file_name"`
	DisplayName string                `json:"display_name"`
	Label       string                `json:"label"`
	Notes       string                `json:"notes"`
	Active      bool                  `json:"active"`
	Stats       entity.AggregateStats `json:"stats"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ImportListResponse historial completo, más reciente primero.
type ImportListResponse struct {
	Items    []ImportResponse `json:"items"`
	ActiveID int64            `json:"active_id"`
}

// UpdateImportRequest renombrar o anotar una importación. Campos nil no cambian.
type UpdateImportRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=200"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}
