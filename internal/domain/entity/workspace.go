package entity

import "time"

// Workspace representa el negocio de un dropshipper (tenant). Agrupa productos,
// importaciones y configuración.
type Workspace struct {
	ID             string
	OwnerName      string // nombre del perfil
	BusinessName   string // empresa
	ActiveImportID int64  // 0 = ninguna importación seleccionada
	Status         string // active, suspended
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasActiveImport indica si hay una importación seleccionada.
func (w *Workspace) HasActiveImport() bool {
	return w.ActiveImportID > 0
}
