package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.OperacionRepository = (*OperacionRepo)(nil)

// OperacionRepo implementación de OperacionRepository sobre PostgreSQL (usable con pool o tx).
type OperacionRepo struct {
	q Querier
}

// NewOperacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperacionRepository(q Querier) *OperacionRepo {
	return &OperacionRepo{q: q}
}

const operacionColumns = `id, folio, tipo_operacion, estado, sucursal_id, origen_tipo, origen_id,
	asignado_a, total_items, total_procesados, operacion_anterior_id, operacion_siguiente_id,
	motivo_cancelacion, creado_en, actualizado_en`

func scanOperacion(row pgx.Row) (*entity.Operacion, error) {
	var o entity.Operacion
	err := row.Scan(
		&o.ID, &o.Folio, &o.TipoOperacion, &o.Estado, &o.SucursalID, &o.OrigenTipo, &o.OrigenID,
		&o.AsignadoA, &o.TotalItems, &o.TotalProcesados, &o.OperacionAnteriorID, &o.OperacionSiguienteID,
		&o.MotivoCancelacion, &o.CreadoEn, &o.ActualizadoEn,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste una operación nueva.
func (r *OperacionRepo) Create(ctx context.Context, op *entity.Operacion) error {
	query := `
		INSERT INTO operaciones (` + operacionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		op.ID, op.Folio, op.TipoOperacion, op.Estado, op.SucursalID, op.OrigenTipo, op.OrigenID,
		op.AsignadoA, op.TotalItems, op.TotalProcesados, op.OperacionAnteriorID, op.OperacionSiguienteID,
		op.MotivoCancelacion, op.CreadoEn, op.ActualizadoEn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create operacion: %w", err)
	}
	return nil
}

// GetByID obtiene una operación por ID. Devuelve nil si no existe.
func (r *OperacionRepo) GetByID(ctx context.Context, id string) (*entity.Operacion, error) {
	query := `SELECT ` + operacionColumns + ` FROM operaciones WHERE id = $1`
	op, err := scanOperacion(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operacion: %w", err)
	}
	return op, nil
}

// GetByIDForUpdate obtiene la operación y bloquea la fila (SELECT FOR UPDATE).
// Es el lock de contención del motor: toda mutación de la operación o sus ítems
// lo toma antes de revalidar guards y recomputar totales.
func (r *OperacionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Operacion, error) {
	query := `SELECT ` + operacionColumns + ` FROM operaciones WHERE id = $1 FOR UPDATE`
	op, err := scanOperacion(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operacion for update: %w", err)
	}
	return op, nil
}

// Update persiste los campos mutables de la operación.
func (r *OperacionRepo) Update(ctx context.Context, op *entity.Operacion) error {
	query := `
		UPDATE operaciones SET
			estado = $2, sucursal_id = $3, origen_tipo = $4, origen_id = $5, asignado_a = $6,
			total_items = $7, total_procesados = $8, operacion_siguiente_id = $9,
			motivo_cancelacion = $10, actualizado_en = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		op.ID, op.Estado, op.SucursalID, op.OrigenTipo, op.OrigenID, op.AsignadoA,
		op.TotalItems, op.TotalProcesados, op.OperacionSiguienteID,
		op.MotivoCancelacion, op.ActualizadoEn,
	)
	if err != nil {
		return fmt.Errorf("update operacion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve operaciones según filtros, más recientes primero.
func (r *OperacionRepo) List(ctx context.Context, filtros repository.FiltrosOperacion) ([]*entity.Operacion, error) {
	var where []string
	var args []any
	add := func(cond, value string) {
		if value != "" {
			args = append(args, value)
			where = append(where, fmt.Sprintf(cond, len(args)))
		}
	}
	add("sucursal_id = $%d", filtros.SucursalID)
	add("tipo_operacion = $%d", filtros.Tipo)
	add("estado = $%d", filtros.Estado)
	add("asignado_a = $%d", filtros.AsignadoA)

	query := `SELECT ` + operacionColumns + ` FROM operaciones`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filtros.Limit)
	query += fmt.Sprintf(" ORDER BY creado_en DESC LIMIT $%d", len(args))
	args = append(args, filtros.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operaciones: %w", err)
	}
	defer rows.Close()

	var ops []*entity.Operacion
	for rows.Next() {
		op, err := scanOperacion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operacion: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list operaciones: %w", err)
	}
	return ops, nil
}

// SiguienteConsecutivo avanza la secuencia de folios y devuelve el nuevo valor.
func (r *OperacionRepo) SiguienteConsecutivo(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('operaciones_folio_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("siguiente consecutivo de folio: %w", err)
	}
	return n, nil
}
