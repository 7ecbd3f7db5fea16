package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.TableroRepository = (*TableroRepo)(nil)

// TableroRepo consultas de solo lectura para las proyecciones del tablero.
// Siempre corre contra el pool: las proyecciones leen un snapshot consistente
// y nunca toman el lock de la operación.
type TableroRepo struct {
	pool *pgxpool.Pool
}

// NewTableroRepository construye el adaptador del tablero.
func NewTableroRepository(pool *pgxpool.Pool) *TableroRepo {
	return &TableroRepo{pool: pool}
}

// OperacionesKanban devuelve todas las operaciones vivas de la sucursal más las
// completadas más recientes (limitadas para acotar el payload del tablero).
func (r *TableroRepo) OperacionesKanban(ctx context.Context, sucursalID string, limiteCompletadas int) ([]*entity.Operacion, error) {
	query := `
		(SELECT ` + operacionColumns + `
		 FROM operaciones
		 WHERE sucursal_id = $1 AND estado NOT IN ($2, $3))
		UNION ALL
		(SELECT ` + operacionColumns + `
		 FROM operaciones
		 WHERE sucursal_id = $1 AND estado = $2
		 ORDER BY actualizado_en DESC
		 LIMIT $4)
		ORDER BY creado_en DESC`
	rows, err := r.pool.Query(ctx, query,
		sucursalID, entity.EstadoCompletada, entity.EstadoCancelada, limiteCompletadas)
	if err != nil {
		return nil, fmt.Errorf("tablero.OperacionesKanban: %w", err)
	}
	defer rows.Close()

	var ops []*entity.Operacion
	for rows.Next() {
		op, err := scanOperacion(rows)
		if err != nil {
			return nil, fmt.Errorf("tablero.OperacionesKanban scan: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tablero.OperacionesKanban: %w", err)
	}
	return ops, nil
}

// PendientesPorTipo cuenta operaciones no terminales de la sucursal agrupadas por tipo.
func (r *TableroRepo) PendientesPorTipo(ctx context.Context, sucursalID string) ([]repository.PendientePorTipo, error) {
	const query = `
		SELECT tipo_operacion, COUNT(*)
		FROM operaciones
		WHERE sucursal_id = $1 AND estado NOT IN ($2, $3)
		GROUP BY tipo_operacion
		ORDER BY tipo_operacion`
	rows, err := r.pool.Query(ctx, query, sucursalID, entity.EstadoCompletada, entity.EstadoCancelada)
	if err != nil {
		return nil, fmt.Errorf("tablero.PendientesPorTipo: %w", err)
	}
	defer rows.Close()

	var out []repository.PendientePorTipo
	for rows.Next() {
		var p repository.PendientePorTipo
		if err := rows.Scan(&p.Tipo, &p.Total); err != nil {
			return nil, fmt.Errorf("tablero.PendientesPorTipo scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tablero.PendientesPorTipo: %w", err)
	}
	return out, nil
}

// Estadisticas agrega conteos por estado, cantidades solicitadas/procesadas de ítems
// no cancelados y las completadas dentro de la ventana.
func (r *TableroRepo) Estadisticas(ctx context.Context, sucursalID string, desde time.Time) (*repository.EstadisticasResult, error) {
	result := &repository.EstadisticasResult{}

	const porEstado = `
		SELECT estado, COUNT(*)
		FROM operaciones
		WHERE sucursal_id = $1
		GROUP BY estado`
	rows, err := r.pool.Query(ctx, porEstado, sucursalID)
	if err != nil {
		return nil, fmt.Errorf("tablero.Estadisticas por estado: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c repository.ConteoPorEstado
		if err := rows.Scan(&c.Estado, &c.Total); err != nil {
			return nil, fmt.Errorf("tablero.Estadisticas scan estado: %w", err)
		}
		result.PorEstado = append(result.PorEstado, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tablero.Estadisticas por estado: %w", err)
	}

	const cantidades = `
		SELECT COALESCE(SUM(i.cantidad_solicitada), 0), COALESCE(SUM(i.cantidad_procesada), 0)
		FROM operacion_items i
		JOIN operaciones o ON o.id = i.operacion_id
		WHERE o.sucursal_id = $1 AND i.estado <> $2`
	err = r.pool.QueryRow(ctx, cantidades, sucursalID, entity.ItemCancelado).
		Scan(&result.TotalSolicitado, &result.TotalProcesado)
	if err != nil {
		return nil, fmt.Errorf("tablero.Estadisticas cantidades: %w", err)
	}

	const completadas = `
		SELECT COUNT(*)
		FROM operaciones
		WHERE sucursal_id = $1 AND estado = $2 AND actualizado_en >= $3`
	err = r.pool.QueryRow(ctx, completadas, sucursalID, entity.EstadoCompletada, desde).
		Scan(&result.CompletadasEnVentana)
	if err != nil {
		return nil, fmt.Errorf("tablero.Estadisticas completadas: %w", err)
	}
	return result, nil
}
