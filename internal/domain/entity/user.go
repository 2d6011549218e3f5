package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner   = "owner"   // acceso total al espacio de trabajo
	RoleAnalyst = "analyst" // solo lectura de configuración; no elimina
)

// User representa un usuario del sistema (pertenece a un Workspace).
type User struct {
	ID           string
	WorkspaceID  string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner, analyst
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles soportados.
func IsValidRole(role string) bool {
	return role == RoleOwner || role == RoleAnalyst
}
