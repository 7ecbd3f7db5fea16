package entity

import "time"

// Roles de usuario dentro del almacén.
const (
	RolSupervisor = "supervisor"
	RolOperador   = "operador"
)

// Usuario es la referencia mínima a un operador. La identidad y las credenciales
// viven en el servicio de identidad; aquí solo se valida existencia y actividad.
type Usuario struct {
	ID       string
	Nombre   string
	Email    string
	Rol      string
	Activo   bool
	CreadoEn time.Time
}
