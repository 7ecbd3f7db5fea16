package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrOverQuantity      = errors.New("cantidad procesada excede la solicitada")
	ErrAlreadyChained    = errors.New("la operación ya tiene una operación siguiente")
	ErrPermissionDenied  = errors.New("acción no autorizada para el usuario")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrDuplicate         = errors.New("recurso duplicado")
)
