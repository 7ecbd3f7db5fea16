package repository

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// SucursalRepository define el puerto de persistencia para Sucursal (DIP).
type SucursalRepository interface {
	Create(ctx context.Context, sucursal *entity.Sucursal) error
	GetByID(ctx context.Context, id string) (*entity.Sucursal, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sucursal, error)
}
