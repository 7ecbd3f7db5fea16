package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.OperacionItemRepository = (*OperacionItemRepo)(nil)

// OperacionItemRepo implementación de OperacionItemRepository sobre PostgreSQL (usable con pool o tx).
type OperacionItemRepo struct {
	q Querier
}

// NewOperacionItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperacionItemRepository(q Querier) *OperacionItemRepo {
	return &OperacionItemRepo{q: q}
}

const itemColumns = `id, operacion_id, producto_id, variante_id, numero_serie_id,
	cantidad_solicitada, cantidad_procesada, ubicacion_destino_id, estado, creado_en, actualizado_en`

func scanItem(row pgx.Row) (*entity.OperacionItem, error) {
	var it entity.OperacionItem
	err := row.Scan(
		&it.ID, &it.OperacionID, &it.ProductoID, &it.VarianteID, &it.NumeroSerieID,
		&it.CantidadSolicitada, &it.CantidadProcesada, &it.UbicacionDestinoID,
		&it.Estado, &it.CreadoEn, &it.ActualizadoEn,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// CreateBatch inserta las líneas de una operación.
func (r *OperacionItemRepo) CreateBatch(ctx context.Context, items []*entity.OperacionItem) error {
	query := `
		INSERT INTO operacion_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, it.OperacionID, it.ProductoID, it.VarianteID, it.NumeroSerieID,
			it.CantidadSolicitada, it.CantidadProcesada, it.UbicacionDestinoID,
			it.Estado, it.CreadoEn, it.ActualizadoEn,
		)
		if err != nil {
			return fmt.Errorf("create operacion item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una línea por ID. Devuelve nil si no existe.
func (r *OperacionItemRepo) GetByID(ctx context.Context, id string) (*entity.OperacionItem, error) {
	query := `SELECT ` + itemColumns + ` FROM operacion_items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operacion item: %w", err)
	}
	return it, nil
}

// Update persiste los campos mutables de la línea.
func (r *OperacionItemRepo) Update(ctx context.Context, item *entity.OperacionItem) error {
	query := `
		UPDATE operacion_items SET
			cantidad_procesada = $2, ubicacion_destino_id = $3, estado = $4, actualizado_en = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.CantidadProcesada, item.UbicacionDestinoID, item.Estado, item.ActualizadoEn,
	)
	if err != nil {
		return fmt.Errorf("update operacion item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOperacion devuelve las líneas de una operación en orden de creación.
func (r *OperacionItemRepo) ListByOperacion(ctx context.Context, operacionID string) ([]entity.OperacionItem, error) {
	query := `SELECT ` + itemColumns + ` FROM operacion_items WHERE operacion_id = $1 ORDER BY creado_en, id`
	rows, err := r.q.Query(ctx, query, operacionID)
	if err != nil {
		return nil, fmt.Errorf("list operacion items: %w", err)
	}
	defer rows.Close()

	var items []entity.OperacionItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operacion item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list operacion items: %w", err)
	}
	return items, nil
}

// CancelarPendientes marca como cancelados todos los ítems pendientes de la operación.
func (r *OperacionItemRepo) CancelarPendientes(ctx context.Context, operacionID string) (int, error) {
	query := `
		UPDATE operacion_items SET estado = $3, actualizado_en = $4
		WHERE operacion_id = $1 AND estado = $2`
	tag, err := r.q.Exec(ctx, query, operacionID, entity.ItemPendiente, entity.ItemCancelado, time.Now())
	if err != nil {
		return 0, fmt.Errorf("cancelar items pendientes: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
