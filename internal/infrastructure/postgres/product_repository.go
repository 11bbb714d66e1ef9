package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.product_id, p.name, p.price, p.description, p.manufacturer_id,
	       m.company_name, p.created_at, p.updated_at
	FROM products p
	JOIN manufacturers m ON m.manufacturer_id = p.manufacturer_id`

// Create persiste un nuevo producto y asigna el ID generado.
// La clave única (nombre, precio, fabricante) se traduce a domain.ErrDuplicate.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (name, price, description, manufacturer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING product_id`
	err := r.q.QueryRow(context.Background(), query,
		p.Name, p.Price, p.Description, p.ManufacturerID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un producto con ese nombre, precio y fabricante", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: fabricante inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := productSelect + ` WHERE p.product_id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.ManufacturerID,
		&p.ManufacturerName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. La clave única se traduce igual que en Create.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, description = $4, manufacturer_id = $5, updated_at = $6
		WHERE product_id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Price, p.Description, p.ManufacturerID, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un producto con ese nombre, precio y fabricante", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: fabricante inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto. Inventario asociado hace saltar la FK y se
// devuelve domain.ErrConflict.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el producto tiene inventario asociado", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := productSelect + ` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
	return r.scanList(r.q.Query(context.Background(), query, limit, offset))
}

// SearchByName busca por nombre de producto (coincidencia parcial).
func (r *ProductRepo) SearchByName(name string, limit, offset int) ([]*entity.Product, error) {
	query := productSelect + `
		WHERE p.name ILIKE '%' || $1 || '%'
		ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(r.q.Query(context.Background(), query, name, limit, offset))
}

// SearchByManufacturerName busca por nombre del fabricante (coincidencia parcial).
func (r *ProductRepo) SearchByManufacturerName(companyName string, limit, offset int) ([]*entity.Product, error) {
	query := productSelect + `
		WHERE m.company_name ILIKE '%' || $1 || '%'
		ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(r.q.Query(context.Background(), query, companyName, limit, offset))
}

// SearchByPriceRange busca productos con precio dentro del rango [min, max].
func (r *ProductRepo) SearchByPriceRange(min, max decimal.Decimal, limit, offset int) ([]*entity.Product, error) {
	query := productSelect + `
		WHERE p.price >= $1 AND p.price <= $2
		ORDER BY p.price ASC LIMIT $3 OFFSET $4`
	return r.scanList(r.q.Query(context.Background(), query, min, max, limit, offset))
}

func (r *ProductRepo) scanList(rows pgx.Rows, err error) ([]*entity.Product, error) {
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ManufacturerID,
			&p.ManufacturerName, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
