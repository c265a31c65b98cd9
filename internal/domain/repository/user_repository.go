package repository

import "github.com/agrovida/farm-ledger/internal/domain/entity"

// UserRepository define el puerto de persistencia de usuarios (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndOrg(email, organizationID string) (*entity.User, error)
}
