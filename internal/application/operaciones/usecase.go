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

// OperacionUseCase orquesta el ciclo de vida de las operaciones de almacén:
// creación, asignación, avance por ítems, cierre con encadenamiento y cancelación.
// Toda mutación corre dentro del TxRunner con la fila de la operación bloqueada
// (SELECT FOR UPDATE) y los guards revalidados después de adquirir el lock.
type OperacionUseCase struct {
	txRunner     TxRunner
	opRepo       repository.OperacionRepository
	itemRepo     repository.OperacionItemRepository
	sucursalRepo repository.SucursalRepository
	usuarioRepo  repository.UsuarioRepository
}

// NewOperacionUseCase construye el caso de uso.
func NewOperacionUseCase(
	txRunner TxRunner,
	opRepo repository.OperacionRepository,
	itemRepo repository.OperacionItemRepository,
	sucursalRepo repository.SucursalRepository,
	usuarioRepo repository.UsuarioRepository,
) *OperacionUseCase {
	return &OperacionUseCase{
		txRunner:     txRunner,
		opRepo:       opRepo,
		itemRepo:     itemRepo,
		sucursalRepo: sucursalRepo,
		usuarioRepo:  usuarioRepo,
	}
}

// Crear valida tipo, sucursal e ítems y crea la operación en borrador con su folio.
// Folio, operación e ítems se insertan en una sola transacción.
func (uc *OperacionUseCase) Crear(ctx context.Context, in dto.CrearOperacionRequest) (*dto.OperacionResponse, error) {
	if !entity.TipoOperacionValido(in.TipoOperacion) {
		return nil, fmt.Errorf("tipo de operación %q: %w", in.TipoOperacion, domain.ErrInvalidInput)
	}
	if in.SucursalID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductoID == "" || !it.CantidadSolicitada.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("ítem con cantidad no positiva: %w", domain.ErrInvalidInput)
		}
	}
	sucursal, err := uc.sucursalRepo.GetByID(ctx, in.SucursalID)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, fmt.Errorf("sucursal %s: %w", in.SucursalID, domain.ErrNotFound)
	}

	now := time.Now()
	op := &entity.Operacion{
		ID:              uuid.New().String(),
		TipoOperacion:   in.TipoOperacion,
		Estado:          entity.EstadoBorrador,
		SucursalID:      in.SucursalID,
		OrigenTipo:      in.OrigenTipo,
		OrigenID:        in.OrigenID,
		TotalItems:      len(in.Items),
		TotalProcesados: decimal.Zero,
		CreadoEn:        now,
		ActualizadoEn:   now,
	}
	items := make([]*entity.OperacionItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.OperacionItem{
			ID:                 uuid.New().String(),
			OperacionID:        op.ID,
			ProductoID:         it.ProductoID,
			VarianteID:         it.VarianteID,
			NumeroSerieID:      it.NumeroSerieID,
			CantidadSolicitada: it.CantidadSolicitada,
			CantidadProcesada:  decimal.Zero,
			Estado:             entity.ItemPendiente,
			CreadoEn:           now,
			ActualizadoEn:      now,
		})
	}

	err = uc.txRunner.Run(ctx, func(opRepo repository.OperacionRepository, itemRepo repository.OperacionItemRepository) error {
		consecutivo, err := opRepo.SiguienteConsecutivo(ctx)
		if err != nil {
			return err
		}
		op.Folio = domops.Folio(op.TipoOperacion, consecutivo)
		if err := opRepo.Create(ctx, op); err != nil {
			return err
		}
		return itemRepo.CreateBatch(ctx, items)
	})
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		op.Items = append(op.Items, *it)
	}
	return toOperacionResponse(op, true), nil
}

// Actualizar modifica campos editables de una operación no terminal.
func (uc *OperacionUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarOperacionRequest) (*dto.OperacionResponse, error) {
	var op *entity.Operacion
	err := uc.txRunner.Run(ctx, func(opRepo repository.OperacionRepository, _ repository.OperacionItemRepository) error {
		var err error
		op, err = opRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrNotFound
		}
		if op.EsTerminal() {
			return fmt.Errorf("operación %s en estado %s: %w", op.ID, op.Estado, domain.ErrInvalidTransition)
		}
		if in.SucursalID != nil {
			sucursal, err := uc.sucursalRepo.GetByID(ctx, *in.SucursalID)
			if err != nil {
				return err
			}
			if sucursal == nil {
				return fmt.Errorf("sucursal %s: %w", *in.SucursalID, domain.ErrNotFound)
			}
			op.SucursalID = *in.SucursalID
		}
		if in.OrigenTipo != nil {
			op.OrigenTipo = *in.OrigenTipo
		}
		if in.OrigenID != nil {
			op.OrigenID = *in.OrigenID
		}
		op.ActualizadoEn = time.Now()
		return opRepo.Update(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return toOperacionResponse(op, false), nil
}

// Asignar asigna (o reasigna) un operador. Solo antes de iniciar el trabajo:
// una operación en_proceso o posterior rechaza la asignación.
func (uc *OperacionUseCase) Asignar(ctx context.Context, id, usuarioID string) (*dto.OperacionResponse, error) {
	if usuarioID == "" {
		return nil, domain.ErrInvalidInput
	}
	usuario, err := uc.usuarioRepo.GetByID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if usuario == nil || !usuario.Activo {
		return nil, fmt.Errorf("usuario %s: %w", usuarioID, domain.ErrNotFound)
	}

	var op *entity.Operacion
	err = uc.txRunner.Run(ctx, func(opRepo repository.OperacionRepository, _ repository.OperacionItemRepository) error {
		op, err = opRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrNotFound
		}
		if !op.PuedeAsignar() {
			return fmt.Errorf("asignar en estado %s: %w", op.Estado, domain.ErrInvalidTransition)
		}
		op.AsignadoA = &usuario.ID
		op.Estado = entity.EstadoAsignada
		op.ActualizadoEn = time.Now()
		return opRepo.Update(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return toOperacionResponse(op, false), nil
}

// Iniciar pasa la operación a en_proceso.
func (uc *OperacionUseCase) Iniciar(ctx context.Context, id string) (*dto.OperacionResponse, error) {
	var op *entity.Operacion
	err := uc.txRunner.Run(ctx, func(opRepo repository.OperacionRepository, _ repository.OperacionItemRepository) error {
		var err error
		op, err = opRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrNotFound
		}
		if !op.PuedeIniciar() {
			return fmt.Errorf("iniciar en estado %s: %w", op.Estado, domain.ErrInvalidTransition)
		}
		op.Estado = entity.EstadoEnProceso
		op.ActualizadoEn = time.Now()
		return opRepo.Update(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	return toOperacionResponse(op, false), nil
}

// Listar devuelve operaciones según filtros (sin ítems).
func (uc *OperacionUseCase) Listar(ctx context.Context, in dto.ListarOperacionesRequest) ([]dto.OperacionResponse, error) {
	in.DefaultPage()
	ops, err := uc.opRepo.List(ctx, repository.FiltrosOperacion{
		SucursalID: in.SucursalID,
		Tipo:       in.Tipo,
		Estado:     in.Estado,
		AsignadoA:  in.AsignadoA,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OperacionResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, *toOperacionResponse(op, false))
	}
	return out, nil
}

// ObtenerPorID devuelve la operación con sus ítems.
func (uc *OperacionUseCase) ObtenerPorID(ctx context.Context, id string) (*dto.OperacionResponse, error) {
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByOperacion(ctx, id)
	if err != nil {
		return nil, err
	}
	op.Items = items
	return toOperacionResponse(op, true), nil
}

// ObtenerCadena devuelve la cadena completa a la que pertenece la operación,
// recorriendo los enlaces anterior/siguiente desde la cabeza hasta la cola.
func (uc *OperacionUseCase) ObtenerCadena(ctx context.Context, id string) ([]dto.OperacionResponse, error) {
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	// Retroceder hasta la cabeza de la cadena
	head := op
	visitados := map[string]bool{op.ID: true}
	for head.OperacionAnteriorID != nil {
		prev, err := uc.opRepo.GetByID(ctx, *head.OperacionAnteriorID)
		if err != nil {
			return nil, err
		}
		if prev == nil || visitados[prev.ID] {
			break
		}
		visitados[prev.ID] = true
		head = prev
	}
	// Avanzar hasta la cola acumulando
	var cadena []dto.OperacionResponse
	actual := head
	for actual != nil {
		cadena = append(cadena, *toOperacionResponse(actual, false))
		if actual.OperacionSiguienteID == nil {
			break
		}
		sig, err := uc.opRepo.GetByID(ctx, *actual.OperacionSiguienteID)
		if err != nil {
			return nil, err
		}
		if sig != nil && visitados[sig.ID] {
			break
		}
		if sig != nil {
			visitados[sig.ID] = true
		}
		actual = sig
	}
	return cadena, nil
}

func toItemResponse(it *entity.OperacionItem) *dto.OperacionItemResponse {
	return &dto.OperacionItemResponse{
		ID:                 it.ID,
		OperacionID:        it.OperacionID,
		ProductoID:         it.ProductoID,
		VarianteID:         it.VarianteID,
		NumeroSerieID:      it.NumeroSerieID,
		CantidadSolicitada: it.CantidadSolicitada,
		CantidadProcesada:  it.CantidadProcesada,
		UbicacionDestinoID: it.UbicacionDestinoID,
		Estado:             it.Estado,
	}
}

func toOperacionResponse(op *entity.Operacion, conItems bool) *dto.OperacionResponse {
	resp := &dto.OperacionResponse{
		ID:                   op.ID,
		Folio:                op.Folio,
		TipoOperacion:        op.TipoOperacion,
		Estado:               op.Estado,
		SucursalID:           op.SucursalID,
		OrigenTipo:           op.OrigenTipo,
		OrigenID:             op.OrigenID,
		AsignadoA:            op.AsignadoA,
		TotalItems:           op.TotalItems,
		TotalProcesados:      op.TotalProcesados,
		OperacionAnteriorID:  op.OperacionAnteriorID,
		OperacionSiguienteID: op.OperacionSiguienteID,
		MotivoCancelacion:    op.MotivoCancelacion,
		CreadoEn:             op.CreadoEn,
		ActualizadoEn:        op.ActualizadoEn,
	}
	if conItems {
		for i := range op.Items {
			resp.Items = append(resp.Items, *toItemResponse(&op.Items[i]))
		}
	}
	return resp
}
