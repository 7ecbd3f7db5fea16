package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// ConteoPorEstado total de operaciones en un estado.
type ConteoPorEstado struct {
	Estado string
	Total  int
}

// PendientePorTipo total de operaciones no terminales de un tipo.
type PendientePorTipo struct {
	Tipo  string
	Total int
}

// EstadisticasResult agregados crudos para el cálculo de estadísticas.
type EstadisticasResult struct {
	PorEstado            []ConteoPorEstado
	TotalSolicitado      decimal.Decimal // suma de cantidades solicitadas (ítems no cancelados)
	TotalProcesado       decimal.Decimal
	CompletadasEnVentana int
}

// TableroRepository consultas de solo lectura para las proyecciones del tablero.
// Nunca toman el lock de la operación: leen un snapshot consistente.
type TableroRepository interface {
	// OperacionesKanban devuelve las operaciones de la sucursal agrupables por estado.
	// El bucket de completadas se acota a las limiteCompletadas más recientes.
	OperacionesKanban(ctx context.Context, sucursalID string, limiteCompletadas int) ([]*entity.Operacion, error)
	PendientesPorTipo(ctx context.Context, sucursalID string) ([]PendientePorTipo, error)
	Estadisticas(ctx context.Context, sucursalID string, desde time.Time) (*EstadisticasResult, error)
}
