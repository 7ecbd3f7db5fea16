package operaciones

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	domops "github.com/jhoicas/Operaciones-api/internal/domain/operaciones"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// Completar cierra la operación y, si su tipo tiene etapa sucesora, crea la siguiente
// operación en borrador sembrada con las cantidades PROCESADAS (lo efectivamente
// cumplido, no lo solicitado). Todo ocurre en una transacción: lock de la fila,
// revalidación del guard, escritura del estado y chequeo de idempotencia del enlace
// operacion_siguiente_id, cerrando la ventana de carrera de dos Completar simultáneos.
// Un segundo Completar sobre una operación ya completada devuelve el mismo sucesor
// en vez de crear un duplicado.
func (uc *OperacionUseCase) Completar(ctx context.Context, id string, forzar bool) (*dto.OperacionResponse, error) {
	var op *entity.Operacion
	err := uc.txRunner.Run(ctx, func(opRepo repository.OperacionRepository, itemRepo repository.OperacionItemRepository) error {
		var err error
		op, err = opRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if op == nil {
			return fmt.Errorf("operación %s: %w", id, domain.ErrNotFound)
		}
		if op.Estado == entity.EstadoCompletada {
			// Reintento: devolver el estado actual con el sucesor existente
			op.Items, err = itemRepo.ListByOperacion(ctx, op.ID)
			return err
		}
		if !op.PuedeCompletar() {
			return fmt.Errorf("completar en estado %s: %w", op.Estado, domain.ErrInvalidTransition)
		}

		items, err := itemRepo.ListByOperacion(ctx, op.ID)
		if err != nil {
			return err
		}
		op.Items = items
		op.RecomputarTotales()
		if !op.TodosProcesados() && !forzar {
			return fmt.Errorf("operación %s con ítems pendientes, use forzar para cierre explícito: %w",
				op.ID, domain.ErrInvalidTransition)
		}

		op.Estado = entity.EstadoCompletada
		op.ActualizadoEn = time.Now()

		if err := uc.encadenar(ctx, op, opRepo, itemRepo); err != nil {
			return err
		}
		return opRepo.Update(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return toOperacionResponse(op, true), nil
}

// encadenar materializa la etapa sucesora según la tabla fija de tipos. Idempotente:
// si operacion_siguiente_id ya está poblado no hace nada. Solo avanza las líneas con
// cantidad procesada positiva; las unidades serializadas pasan 1:1 a la siguiente etapa.
// Debe llamarse con la fila de la operación bloqueada, antes del Update del padre.
func (uc *OperacionUseCase) encadenar(
	ctx context.Context,
	op *entity.Operacion,
	opRepo repository.OperacionRepository,
	itemRepo repository.OperacionItemRepository,
) error {
	if op.OperacionSiguienteID != nil {
		return nil
	}
	tipoSiguiente, ok := domops.Siguiente(op.TipoOperacion)
	if !ok {
		return nil
	}

	now := time.Now()
	sucesor := &entity.Operacion{
		ID:                  uuid.New().String(),
		TipoOperacion:       tipoSiguiente,
		Estado:              entity.EstadoBorrador,
		SucursalID:          op.SucursalID,
		OrigenTipo:          op.OrigenTipo,
		OrigenID:            op.OrigenID,
		TotalProcesados:     decimal.Zero,
		OperacionAnteriorID: &op.ID,
		CreadoEn:            now,
		ActualizadoEn:       now,
	}

	var itemsSucesor []*entity.OperacionItem
	for i := range op.Items {
		src := &op.Items[i]
		if src.Estado == entity.ItemCancelado || !src.CantidadProcesada.GreaterThan(decimal.Zero) {
			continue
		}
		itemsSucesor = append(itemsSucesor, &entity.OperacionItem{
			ID:                 uuid.New().String(),
			OperacionID:        sucesor.ID,
			ProductoID:         src.ProductoID,
			VarianteID:         src.VarianteID,
			NumeroSerieID:      src.NumeroSerieID,
			CantidadSolicitada: src.CantidadProcesada, // avanza solo lo cumplido
			CantidadProcesada:  decimal.Zero,
			Estado:             entity.ItemPendiente,
			CreadoEn:           now,
			ActualizadoEn:      now,
		})
	}
	if len(itemsSucesor) == 0 {
		// Cierre forzado sin nada procesado: no hay mercancía que avanzar
		return nil
	}
	sucesor.TotalItems = len(itemsSucesor)

	consecutivo, err := opRepo.SiguienteConsecutivo(ctx)
	if err != nil {
		return err
	}
	sucesor.Folio = domops.Folio(tipoSiguiente, consecutivo)

	if err := opRepo.Create(ctx, sucesor); err != nil {
		return err
	}
	if err := itemRepo.CreateBatch(ctx, itemsSucesor); err != nil {
		return err
	}
	op.OperacionSiguienteID = &sucesor.ID
	return nil
}

// Cancelar marca la operación como cancelada con motivo obligatorio y cancela en
// cascada sus ítems pendientes, en una sola transacción. Es tolerante a reintentos:
// cancelar una operación ya cancelada es un no-op exitoso. Nunca crea sucesor.
func (uc *OperacionUseCase) Cancelar(ctx context.Context, id, motivo string) (*dto.OperacionResponse, error) {
	if motivo == "" {
		return nil, fmt.Errorf("motivo requerido: %w", domain.ErrInvalidInput)
	}

	var op *entity.Operacion
	err := uc.txRunner.Run(ctx, func(opRepo repository.OperacionRepository, itemRepo repository.OperacionItemRepository) error {
		var err error
		op, err = opRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if op == nil {
			return fmt.Errorf("operación %s: %w", id, domain.ErrNotFound)
		}
		if op.Estado == entity.EstadoCancelada {
			// Reintento tolerado
			op.Items, err = itemRepo.ListByOperacion(ctx, op.ID)
			return err
		}
		if !op.PuedeCancelar() {
			return fmt.Errorf("cancelar en estado %s: %w", op.Estado, domain.ErrInvalidTransition)
		}

		if _, err := itemRepo.CancelarPendientes(ctx, op.ID); err != nil {
			return err
		}
		items, err := itemRepo.ListByOperacion(ctx, op.ID)
		if err != nil {
			return err
		}
		op.Items = items
		op.RecomputarTotales()
		op.Estado = entity.EstadoCancelada
		op.MotivoCancelacion = &motivo
		op.ActualizadoEn = time.Now()
		return opRepo.Update(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return toOperacionResponse(op, true), nil
}
