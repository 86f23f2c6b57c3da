package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin        = "admin"        // administrador: compras, despachos, ajustes
	RoleAlmacen      = "almacen"      // almacenista: recepciones y despachos
	RoleDepartamento = "departamento" // usuario de departamento: solicitudes
)

// User representa un usuario del sistema (terminal de departamento o administración).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Name         string
	Role         string // admin, almacen, departamento
	Department   string // departamento al que pertenece (vacío para admin)
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
