package repository

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// FiltrosOperacion criterios de búsqueda para listados de operaciones.
type FiltrosOperacion struct {
	SucursalID string
	Tipo       string
	Estado     string
	AsignadoA  string
	Limit      int
	Offset     int
}

// OperacionRepository define el puerto de persistencia para Operacion (DIP).
type OperacionRepository interface {
	Create(ctx context.Context, op *entity.Operacion) error
	GetByID(ctx context.Context, id string) (*entity.Operacion, error)
	// GetByIDForUpdate bloquea la fila de la operación (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Operacion, error)
	Update(ctx context.Context, op *entity.Operacion) error
	List(ctx context.Context, filtros FiltrosOperacion) ([]*entity.Operacion, error)
	// SiguienteConsecutivo avanza la secuencia de folios y devuelve el nuevo valor.
	SiguienteConsecutivo(ctx context.Context) (int64, error)
}

// OperacionItemRepository define el puerto de persistencia para OperacionItem.
type OperacionItemRepository interface {
	CreateBatch(ctx context.Context, items []*entity.OperacionItem) error
	GetByID(ctx context.Context, id string) (*entity.OperacionItem, error)
	Update(ctx context.Context, item *entity.OperacionItem) error
	ListByOperacion(ctx context.Context, operacionID string) ([]entity.OperacionItem, error)
	// CancelarPendientes marca como cancelados todos los ítems no procesados de la operación.
	CancelarPendientes(ctx context.Context, operacionID string) (int, error)
}
