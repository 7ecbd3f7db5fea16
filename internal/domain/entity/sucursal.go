package entity

import "time"

// Sucursal representa la ubicación física a la que pertenecen las operaciones.
type Sucursal struct {
	ID            string
	Nombre        string
	Direccion     string
	CreadoEn      time.Time
	ActualizadoEn time.Time
}
