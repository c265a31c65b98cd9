package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrovida/farm-ledger/internal/application/dto"
	"github.com/agrovida/farm-ledger/internal/domain"
	"github.com/agrovida/farm-ledger/internal/domain/entity"
	"github.com/agrovida/farm-ledger/internal/domain/repository"
)

// CatalogUseCase CRUD del directorio que el ledger consulta: organizaciones
// (tenants), catálogo de productos y fincas. Sin lógica de inventario.
type CatalogUseCase struct {
	orgRepo       repository.OrganizationRepository
	commodityRepo repository.CommodityRepository
	farmRepo      repository.FarmRepository
}

// NewCatalogUseCase construye el caso de uso de catálogo/directorio.
func NewCatalogUseCase(
	orgRepo repository.OrganizationRepository,
	commodityRepo repository.CommodityRepository,
	farmRepo repository.FarmRepository,
) *CatalogUseCase {
	return &CatalogUseCase{orgRepo: orgRepo, commodityRepo: commodityRepo, farmRepo: farmRepo}
}

// CreateOrganization registra un tenant nuevo.
func (uc *CatalogUseCase) CreateOrganization(in dto.CreateOrganizationRequest) (*entity.Organization, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.orgRepo.Create(org); err != nil {
		return nil, err
	}
	return org, nil
}

// GetOrganization obtiene un tenant por id.
func (uc *CatalogUseCase) GetOrganization(id string) (*entity.Organization, error) {
	org, err := uc.orgRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return org, nil
}

// ListOrganizations lista tenants con paginación.
func (uc *CatalogUseCase) ListOrganizations(limit, offset int) ([]*entity.Organization, error) {
	return uc.orgRepo.List(limit, offset)
}

// CreateCommodity registra un producto en el catálogo.
func (uc *CatalogUseCase) CreateCommodity(in dto.CreateCommodityRequest) (*entity.Commodity, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Commodity{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    in.Category,
		DefaultUnit: in.DefaultUnit,
		Perishable:  in.Perishable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.commodityRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCommodity obtiene un producto del catálogo por id.
func (uc *CatalogUseCase) GetCommodity(id string) (*entity.Commodity, error) {
	c, err := uc.commodityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// ListCommodities lista el catálogo con paginación.
func (uc *CatalogUseCase) ListCommodities(limit, offset int) ([]*entity.Commodity, error) {
	return uc.commodityRepo.List(limit, offset)
}

// CreateFarm registra una finca de la organización.
func (uc *CatalogUseCase) CreateFarm(organizationID string, in dto.CreateFarmRequest) (*entity.Farm, error) {
	if organizationID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	f := &entity.Farm{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Region:         in.Region,
		AreaHectares:   in.AreaHectares,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.farmRepo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetFarm obtiene una finca por id, verificando que pertenezca a la organización.
func (uc *CatalogUseCase) GetFarm(organizationID, id string) (*entity.Farm, error) {
	f, err := uc.farmRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if f.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return f, nil
}

// ListFarms lista las fincas de una organización.
func (uc *CatalogUseCase) ListFarms(organizationID string, limit, offset int) ([]*entity.Farm, error) {
	return uc.farmRepo.ListByOrganization(organizationID, limit, offset)
}
