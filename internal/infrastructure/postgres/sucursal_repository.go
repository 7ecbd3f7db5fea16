package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.SucursalRepository = (*SucursalRepo)(nil)

// SucursalRepo implementación de SucursalRepository sobre PostgreSQL.
type SucursalRepo struct {
	q Querier
}

// NewSucursalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSucursalRepository(q Querier) *SucursalRepo {
	return &SucursalRepo{q: q}
}

// Create persiste una sucursal.
func (r *SucursalRepo) Create(ctx context.Context, s *entity.Sucursal) error {
	query := `
		INSERT INTO sucursales (id, nombre, direccion, creado_en, actualizado_en)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Nombre, s.Direccion, s.CreadoEn, s.ActualizadoEn)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sucursal: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID. Devuelve nil si no existe.
func (r *SucursalRepo) GetByID(ctx context.Context, id string) (*entity.Sucursal, error) {
	query := `SELECT id, nombre, direccion, creado_en, actualizado_en FROM sucursales WHERE id = $1`
	var s entity.Sucursal
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Nombre, &s.Direccion, &s.CreadoEn, &s.ActualizadoEn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sucursal: %w", err)
	}
	return &s, nil
}

// List devuelve sucursales paginadas.
func (r *SucursalRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sucursal, error) {
	query := `
		SELECT id, nombre, direccion, creado_en, actualizado_en
		FROM sucursales ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sucursales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sucursal
	for rows.Next() {
		var s entity.Sucursal
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Direccion, &s.CreadoEn, &s.ActualizadoEn); err != nil {
			return nil, fmt.Errorf("scan sucursal: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sucursales: %w", err)
	}
	return out, nil
}
