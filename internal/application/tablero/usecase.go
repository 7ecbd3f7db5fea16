package tablero

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// Cuántas operaciones completadas entran en el tablero kanban.
const limiteCompletadasKanban = 10

// TableroUseCase proyecciones de solo lectura sobre las operaciones de una sucursal:
// tablero kanban, pendientes por tipo y estadísticas. Se recomputan en cada consulta
// a partir del estado persistido; no hay caché mutable ni locks.
type TableroUseCase struct {
	repo repository.TableroRepository
}

// NewTableroUseCase construye el caso de uso.
func NewTableroUseCase(repo repository.TableroRepository) *TableroUseCase {
	return &TableroUseCase{repo: repo}
}

// ResumenKanban agrupa las operaciones de la sucursal por estado. El bucket de
// completadas se acota a las más recientes para no desbordar el payload.
func (uc *TableroUseCase) ResumenKanban(ctx context.Context, sucursalID string) (*dto.KanbanResponse, error) {
	if sucursalID == "" {
		return nil, domain.ErrInvalidInput
	}
	ops, err := uc.repo.OperacionesKanban(ctx, sucursalID, limiteCompletadasKanban)
	if err != nil {
		return nil, err
	}
	columnas := map[string][]dto.OperacionResponse{
		entity.EstadoBorrador:   {},
		entity.EstadoAsignada:   {},
		entity.EstadoEnProceso:  {},
		entity.EstadoParcial:    {},
		entity.EstadoCompletada: {},
	}
	for _, op := range ops {
		columnas[op.Estado] = append(columnas[op.Estado], dto.OperacionResponse{
			ID:                   op.ID,
			Folio:                op.Folio,
			TipoOperacion:        op.TipoOperacion,
			Estado:               op.Estado,
			SucursalID:           op.SucursalID,
			AsignadoA:            op.AsignadoA,
			TotalItems:           op.TotalItems,
			TotalProcesados:      op.TotalProcesados,
			OperacionAnteriorID:  op.OperacionAnteriorID,
			OperacionSiguienteID: op.OperacionSiguienteID,
			CreadoEn:             op.CreadoEn,
			ActualizadoEn:        op.ActualizadoEn,
		})
	}
	return &dto.KanbanResponse{SucursalID: sucursalID, Columnas: columnas}, nil
}

// Pendientes cuenta las operaciones no terminales de la sucursal agrupadas por tipo.
func (uc *TableroUseCase) Pendientes(ctx context.Context, sucursalID string) (*dto.PendientesResponse, error) {
	if sucursalID == "" {
		return nil, domain.ErrInvalidInput
	}
	conteos, err := uc.repo.PendientesPorTipo(ctx, sucursalID)
	if err != nil {
		return nil, err
	}
	porTipo := make(map[string]int, len(conteos))
	total := 0
	for _, c := range conteos {
		porTipo[c.Tipo] = c.Total
		total += c.Total
	}
	return &dto.PendientesResponse{SucursalID: sucursalID, PorTipo: porTipo, Total: total}, nil
}

// Estadisticas calcula conteos por estado, ratio procesado/solicitado y throughput
// de completadas sobre una ventana de días (mínimo 1).
func (uc *TableroUseCase) Estadisticas(ctx context.Context, sucursalID string, dias int) (*dto.EstadisticasResponse, error) {
	if sucursalID == "" {
		return nil, domain.ErrInvalidInput
	}
	if dias <= 0 {
		dias = 7
	}
	desde := time.Now().AddDate(0, 0, -dias)
	result, err := uc.repo.Estadisticas(ctx, sucursalID, desde)
	if err != nil {
		return nil, err
	}

	porEstado := make(map[string]int, len(result.PorEstado))
	for _, c := range result.PorEstado {
		porEstado[c.Estado] = c.Total
	}
	ratio := decimal.Zero
	if result.TotalSolicitado.GreaterThan(decimal.Zero) {
		ratio = result.TotalProcesado.Div(result.TotalSolicitado).Round(4)
	}
	porDia := decimal.NewFromInt(int64(result.CompletadasEnVentana)).
		Div(decimal.NewFromInt(int64(dias))).Round(2)

	return &dto.EstadisticasResponse{
		SucursalID:         sucursalID,
		VentanaDias:        dias,
		PorEstado:          porEstado,
		TotalSolicitado:    result.TotalSolicitado,
		TotalProcesado:     result.TotalProcesado,
		RatioProcesado:     ratio,
		CompletadasVentana: result.CompletadasEnVentana,
		CompletadasPorDia:  porDia,
	}, nil
}
