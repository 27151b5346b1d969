package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleLogistics = "logistics"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, logistics
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
