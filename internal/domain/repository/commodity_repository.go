package repository

import "github.com/agrovida/farm-ledger/internal/domain/entity"

// CommodityRepository define el puerto del catálogo de productos.
// El ledger solo usa Exists; el resto es CRUD del catálogo.
type CommodityRepository interface {
	Create(commodity *entity.Commodity) error
	GetByID(id string) (*entity.Commodity, error)
	Exists(id string) (bool, error)
	List(limit, offset int) ([]*entity.Commodity, error)
}
