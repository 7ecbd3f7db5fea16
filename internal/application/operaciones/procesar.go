package operaciones

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// ProcesarItem registra avance incremental sobre una línea. En una sola transacción:
// bloquea la fila de la operación padre, revalida el guard de estado, acumula la
// cantidad (rechazando con ErrOverQuantity si excede la solicitada) y recomputa los
// totales y el estado `parcial` del padre. Nunca completa la operación: el cierre
// es siempre un Completar explícito para que el operador revise antes de cerrar.
func (uc *OperacionUseCase) ProcesarItem(ctx context.Context, itemID string, cantidad decimal.Decimal, ubicacionID string) (*dto.OperacionItemResponse, error) {
	if !cantidad.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser positiva: %w", domain.ErrInvalidInput)
	}

	var item *entity.OperacionItem
	err := uc.txRunner.Run(ctx, func(opRepo repository.OperacionRepository, itemRepo repository.OperacionItemRepository) error {
		// Primera lectura solo para conocer la operación padre
		previo, err := itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if previo == nil {
			return fmt.Errorf("ítem %s: %w", itemID, domain.ErrNotFound)
		}

		op, err := opRepo.GetByIDForUpdate(ctx, previo.OperacionID)
		if err != nil {
			return err
		}
		if op == nil {
			return fmt.Errorf("operación %s: %w", previo.OperacionID, domain.ErrNotFound)
		}
		// Guard revalidado con el lock tomado: otro request pudo cerrar la operación
		if !op.PuedeProcesarItems() {
			return fmt.Errorf("operación %s en estado %s: %w", op.ID, op.Estado, domain.ErrInvalidTransition)
		}

		// Releer el ítem ya bajo el lock del padre para no perder escrituras concurrentes
		item, err = itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("ítem %s: %w", itemID, domain.ErrNotFound)
		}
		if item.Estado == entity.ItemCancelado {
			return fmt.Errorf("ítem %s cancelado: %w", itemID, domain.ErrInvalidTransition)
		}
		if !item.AcumularProcesado(cantidad, ubicacionID) {
			return fmt.Errorf("ítem %s: procesado %s + %s > solicitado %s: %w",
				itemID, item.CantidadProcesada, cantidad, item.CantidadSolicitada, domain.ErrOverQuantity)
		}
		item.ActualizadoEn = time.Now()
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		return uc.recomputarPadre(ctx, op, opRepo, itemRepo)
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ProcesarLote procesa varias líneas reportando éxito o error por línea.
// El lote no es atómico a propósito: refleja el cumplimiento parcial del dominio.
func (uc *OperacionUseCase) ProcesarLote(ctx context.Context, in dto.ProcesarLoteRequest) []dto.ItemResultado {
	resultados := make([]dto.ItemResultado, 0, len(in.Items))
	for _, linea := range in.Items {
		item, err := uc.ProcesarItem(ctx, linea.ItemID, linea.Cantidad, linea.UbicacionDestinoID)
		if err != nil {
			resultados = append(resultados, dto.ItemResultado{ItemID: linea.ItemID, OK: false, Error: err.Error()})
			continue
		}
		resultados = append(resultados, dto.ItemResultado{ItemID: linea.ItemID, OK: true, Item: item})
	}
	return resultados
}

// CancelarItem marca una línea como cancelada y la excluye de los totales del padre.
// Cancelar todas las líneas restantes NO cancela la operación: eso sigue siendo una
// acción explícita de Cancelar sobre la operación.
func (uc *OperacionUseCase) CancelarItem(ctx context.Context, itemID string) (*dto.OperacionItemResponse, error) {
	var item *entity.OperacionItem
	err := uc.txRunner.Run(ctx, func(opRepo repository.OperacionRepository, itemRepo repository.OperacionItemRepository) error {
		previo, err := itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if previo == nil {
			return fmt.Errorf("ítem %s: %w", itemID, domain.ErrNotFound)
		}

		op, err := opRepo.GetByIDForUpdate(ctx, previo.OperacionID)
		if err != nil {
			return err
		}
		if op == nil {
			return fmt.Errorf("operación %s: %w", previo.OperacionID, domain.ErrNotFound)
		}
		if op.EsTerminal() {
			return fmt.Errorf("operación %s en estado %s: %w", op.ID, op.Estado, domain.ErrInvalidTransition)
		}

		item, err = itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("ítem %s: %w", itemID, domain.ErrNotFound)
		}
		if item.Estado == entity.ItemCancelado {
			// Reintento tolerado: cancelar un ítem ya cancelado no es error
			return nil
		}
		item.Estado = entity.ItemCancelado
		item.ActualizadoEn = time.Now()
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		return uc.recomputarPadre(ctx, op, opRepo, itemRepo)
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// recomputarPadre recarga los ítems, recalcula los totales denormalizados y deriva
// el estado de avance. Debe llamarse con la fila del padre bloqueada.
func (uc *OperacionUseCase) recomputarPadre(
	ctx context.Context,
	op *entity.Operacion,
	opRepo repository.OperacionRepository,
	itemRepo repository.OperacionItemRepository,
) error {
	items, err := itemRepo.ListByOperacion(ctx, op.ID)
	if err != nil {
		return err
	}
	op.Items = items
	op.RecomputarTotales()
	op.DerivarEstadoAvance()
	op.ActualizadoEn = time.Now()
	return opRepo.Update(ctx, op)
}
