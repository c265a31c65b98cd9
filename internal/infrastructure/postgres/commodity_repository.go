package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/agrovida/farm-ledger/internal/domain"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
	"github.com/agrovida/farm-ledger/internal/domain/repository"
)

var _ repository.CommodityRepository = (*CommodityRepo)(nil)

// CommodityRepo implementación del catálogo de productos sobre PostgreSQL.
type CommodityRepo struct {
	q Querier
}

// NewCommodityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCommodityRepository(q Querier) *CommodityRepo {
	return &CommodityRepo{q: q}
}

// Create persiste un producto del catálogo.
func (r *CommodityRepo) Create(c *entity.Commodity) error {
	query := `
		INSERT INTO commodities (id, name, category, default_unit, perishable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, nullable(c.Category), nullable(c.DefaultUnit), c.Perishable,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert commodity", err)
	}
	return nil
}

// GetByID obtiene un producto por id. Devuelve nil, nil si no existe.
func (r *CommodityRepo) GetByID(id string) (*entity.Commodity, error) {
	query := `
		SELECT id, name, category, default_unit, perishable, created_at, updated_at
		FROM commodities WHERE id = $1`
	var c entity.Commodity
	var category, defaultUnit *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &category, &defaultUnit, &c.Perishable, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get commodity", err)
	}
	c.Category = deref(category)
	c.DefaultUnit = deref(defaultUnit)
	return &c, nil
}

// Exists chequeo de existencia puro (lo único que el ledger consume).
func (r *CommodityRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM commodities WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, storeErr("commodity exists", err)
	}
	return exists, nil
}

// List lista el catálogo con paginación.
func (r *CommodityRepo) List(limit, offset int) ([]*entity.Commodity, error) {
	query := `
		SELECT id, name, category, default_unit, perishable, created_at, updated_at
		FROM commodities ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, storeErr("list commodities", err)
	}
	defer rows.Close()
	var list []*entity.Commodity
	for rows.Next() {
		var c entity.Commodity
		var category, defaultUnit *string
		if err := rows.Scan(&c.ID, &c.Name, &category, &defaultUnit, &c.Perishable, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, storeErr("scan commodity", err)
		}
		c.Category = deref(category)
		c.DefaultUnit = deref(defaultUnit)
		list = append(list, &c)
	}
	return list, rows.Err()
}
