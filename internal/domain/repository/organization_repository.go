package repository

import "github.com/agrovida/farm-ledger/internal/domain/entity"

// OrganizationRepository define el puerto de persistencia de organizaciones (tenants).
type OrganizationRepository interface {
	Create(org *entity.Organization) error
	GetByID(id string) (*entity.Organization, error)
	List(limit, offset int) ([]*entity.Organization, error)
}
