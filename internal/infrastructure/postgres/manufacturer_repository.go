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

var _ repository.ManufacturerRepository = (*ManufacturerRepo)(nil)

// ManufacturerRepo implementación del puerto ManufacturerRepository sobre PostgreSQL.
type ManufacturerRepo struct {
	q Querier
}

// NewManufacturerRepository construye el adaptador de persistencia para fabricantes.
func NewManufacturerRepository(q Querier) *ManufacturerRepo {
	return &ManufacturerRepo{q: q}
}

const manufacturerColumns = `manufacturer_id, company_name, location, contact, email, created_at, updated_at`

// Create persiste un nuevo fabricante y asigna el ID generado.
func (r *ManufacturerRepo) Create(m *entity.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (company_name, location, contact, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING manufacturer_id`
	err := r.q.QueryRow(context.Background(), query,
		m.CompanyName, m.Location, m.Contact, m.Email, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert manufacturer: %w", err)
	}
	return nil
}

// GetByID obtiene un fabricante por ID; nil si no existe.
func (r *ManufacturerRepo) GetByID(id int64) (*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + ` FROM manufacturers WHERE manufacturer_id = $1`
	var m entity.Manufacturer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.CompanyName, &m.Location, &m.Contact, &m.Email, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturer: %w", err)
	}
	return &m, nil
}

// Update actualiza un fabricante existente.
func (r *ManufacturerRepo) Update(m *entity.Manufacturer) error {
	query := `
		UPDATE manufacturers
		SET company_name = $2, location = $3, contact = $4, email = $5, updated_at = $6
		WHERE manufacturer_id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CompanyName, m.Location, m.Contact, m.Email, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update manufacturer: %w", err)
	}
	return nil
}

// Delete elimina un fabricante. Productos asociados hacen saltar la FK y se
// devuelve domain.ErrConflict.
func (r *ManufacturerRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM manufacturers WHERE manufacturer_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el fabricante tiene productos asociados", domain.ErrConflict)
		}
		return fmt.Errorf("delete manufacturer: %w", err)
	}
	return nil
}

// List lista fabricantes con paginación.
func (r *ManufacturerRepo) List(limit, offset int) ([]*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + `
		FROM manufacturers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanList(r.q.Query(context.Background(), query, limit, offset))
}

// SearchByCompanyName busca por nombre de empresa (coincidencia parcial).
func (r *ManufacturerRepo) SearchByCompanyName(companyName string, limit, offset int) ([]*entity.Manufacturer, error) {
	return r.searchByColumn("company_name", companyName, limit, offset)
}

// SearchByEmail busca por email (coincidencia parcial).
func (r *ManufacturerRepo) SearchByEmail(email string, limit, offset int) ([]*entity.Manufacturer, error) {
	return r.searchByColumn("email", email, limit, offset)
}

// SearchByContact busca por contacto (coincidencia parcial).
func (r *ManufacturerRepo) SearchByContact(contact string, limit, offset int) ([]*entity.Manufacturer, error) {
	return r.searchByColumn("contact", contact, limit, offset)
}

// SearchByLocation busca por ubicación (coincidencia parcial).
func (r *ManufacturerRepo) SearchByLocation(location string, limit, offset int) ([]*entity.Manufacturer, error) {
	return r.searchByColumn("location", location, limit, offset)
}

// searchByColumn arma el ILIKE sobre una columna fija; column nunca viene del
// usuario, solo de los wrappers de arriba.
func (r *ManufacturerRepo) searchByColumn(column, term string, limit, offset int) ([]*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + `
		FROM manufacturers WHERE ` + column + ` ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(r.q.Query(context.Background(), query, term, limit, offset))
}

func (r *ManufacturerRepo) scanList(rows pgx.Rows, err error) ([]*entity.Manufacturer, error) {
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Manufacturer
	for rows.Next() {
		var m entity.Manufacturer
		if err := rows.Scan(&m.ID, &m.CompanyName, &m.Location, &m.Contact, &m.Email, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan manufacturer: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
