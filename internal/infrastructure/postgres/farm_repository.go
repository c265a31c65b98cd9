package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/agrovida/farm-ledger/internal/domain"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
	"github.com/agrovida/farm-ledger/internal/domain/repository"
)

var _ repository.FarmRepository = (*FarmRepo)(nil)

// FarmRepo implementación del directorio de fincas sobre PostgreSQL.
type FarmRepo struct {
	q Querier
}

// NewFarmRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFarmRepository(q Querier) *FarmRepo {
	return &FarmRepo{q: q}
}

// Create persiste una finca.
func (r *FarmRepo) Create(f *entity.Farm) error {
	query := `
		INSERT INTO farms (id, organization_id, name, region, area_hectares, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.OrganizationID, f.Name, nullable(f.Region), f.AreaHectares,
		f.Status, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert farm", err)
	}
	return nil
}

// GetByID obtiene una finca por id. Devuelve nil, nil si no existe.
func (r *FarmRepo) GetByID(id string) (*entity.Farm, error) {
	query := `
		SELECT id, organization_id, name, region, area_hectares, status, created_at, updated_at
		FROM farms WHERE id = $1`
	var f entity.Farm
	var region *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.OrganizationID, &f.Name, &region, &f.AreaHectares, &f.Status,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get farm", err)
	}
	f.Region = deref(region)
	return &f, nil
}

// BelongsToOrg chequeo de pertenencia de la finca al tenant (lo único que el
// ledger consume).
func (r *FarmRepo) BelongsToOrg(farmID, organizationID string) (bool, error) {
	var belongs bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM farms WHERE id = $1 AND organization_id = $2)`,
		farmID, organizationID).Scan(&belongs)
	if err != nil {
		return false, storeErr("farm belongs to org", err)
	}
	return belongs, nil
}

// ListByOrganization lista las fincas de un tenant.
func (r *FarmRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Farm, error) {
	query := `
		SELECT id, organization_id, name, region, area_hectares, status, created_at, updated_at
		FROM farms WHERE organization_id = $1
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, storeErr("list farms", err)
	}
	defer rows.Close()
	var list []*entity.Farm
	for rows.Next() {
		var f entity.Farm
		var region *string
		if err := rows.Scan(&f.ID, &f.OrganizationID, &f.Name, &region, &f.AreaHectares,
			&f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, storeErr("scan farm", err)
		}
		f.Region = deref(region)
		list = append(list, &f)
	}
	return list, rows.Err()
}
