package repository

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// UsuarioRepository lectura mínima de operadores (la identidad vive en otro servicio).
type UsuarioRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
}
