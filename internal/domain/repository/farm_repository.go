package repository

import "github.com/agrovida/farm-ledger/internal/domain/entity"

// FarmRepository define el puerto del directorio de fincas.
// El ledger solo usa BelongsToOrg (chequeo de pertenencia al tenant).
type FarmRepository interface {
	Create(farm *entity.Farm) error
	GetByID(id string) (*entity.Farm, error)
	BelongsToOrg(farmID, organizationID string) (bool, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Farm, error)
}
