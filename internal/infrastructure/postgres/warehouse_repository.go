package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para almacenes.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `warehouse_id, name, location, contact, created_at, updated_at`

// Create persiste un nuevo almacén y asigna el ID generado.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (name, location, contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING warehouse_id`
	err := r.q.QueryRow(context.Background(), query,
		w.Name, w.Location, w.Contact, w.CreatedAt, w.UpdatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene un almacén por ID; nil si no existe.
func (r *WarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE warehouse_id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.Name, &w.Location, &w.Contact, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza un almacén existente.
func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, location = $3, contact = $4, updated_at = $5
		WHERE warehouse_id = $1`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.Name, w.Location, w.Contact, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// Delete elimina un almacén. Inventario asociado hace saltar la FK y se
// devuelve domain.ErrConflict; nunca se borra en cascada.
func (r *WarehouseRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE warehouse_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el almacén tiene inventario asociado", domain.ErrConflict)
		}
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

// List lista almacenes con paginación.
func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + `
		FROM warehouses ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanList(r.q.Query(context.Background(), query, limit, offset))
}

// SearchByName busca por nombre (coincidencia parcial).
func (r *WarehouseRepo) SearchByName(name string, limit, offset int) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + `
		FROM warehouses WHERE name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(r.q.Query(context.Background(), query, name, limit, offset))
}

// SearchByLocation busca por ubicación (coincidencia parcial).
func (r *WarehouseRepo) SearchByLocation(location string, limit, offset int) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + `
		FROM warehouses WHERE location ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(r.q.Query(context.Background(), query, location, limit, offset))
}

func (r *WarehouseRepo) scanList(rows pgx.Rows, err error) ([]*entity.Warehouse, error) {
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Location, &w.Contact, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
