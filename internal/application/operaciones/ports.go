package operaciones

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para cada mutación del motor: el lock de la
// fila de la operación, la recomputación de totales y el encadenamiento confirman o
// revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		opRepo repository.OperacionRepository,
		itemRepo repository.OperacionItemRepository,
	) error) error
}
