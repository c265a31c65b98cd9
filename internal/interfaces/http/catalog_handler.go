package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrovida/farm-ledger/internal/application/catalog"
	"github.com/agrovida/farm-ledger/internal/application/dto"
)

// CatalogHandler maneja organizaciones, productos y fincas.
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateOrganization godoc
// @Summary      Registrar organización (tenant)
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrganizationRequest  true  "name"
// @Success      201   {object}  entity.Organization
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *CatalogHandler) CreateOrganization(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	org, err := h.uc.CreateOrganization(in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(org)
}

// GetOrganization godoc
// @Summary      Consultar organización
// @Tags         catalog
// @Produce      json
// @Param        id  path  string  true  "organization id"
// @Success      200  {object}  entity.Organization
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id} [get]
func (h *CatalogHandler) GetOrganization(c *fiber.Ctx) error {
	org, err := h.uc.GetOrganization(c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(org)
}

// ListOrganizations godoc
// @Summary      Listar organizaciones
// @Tags         catalog
// @Produce      json
// @Param        limit   query  int  false  "límite"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  entity.Organization
// @Router       /api/organizations [get]
func (h *CatalogHandler) ListOrganizations(c *fiber.Ctx) error {
	orgs, err := h.uc.ListOrganizations(c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(orgs)
}

// CreateCommodity godoc
// @Summary      Registrar producto en el catálogo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCommodityRequest  true  "name, default_unit"
// @Success      201   {object}  entity.Commodity
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/commodities [post]
func (h *CatalogHandler) CreateCommodity(c *fiber.Ctx) error {
	var in dto.CreateCommodityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	com, err := h.uc.CreateCommodity(in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(com)
}

// GetCommodity godoc
// @Summary      Consultar producto del catálogo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "commodity id"
// @Success      200  {object}  entity.Commodity
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/commodities/{id} [get]
func (h *CatalogHandler) GetCommodity(c *fiber.Ctx) error {
	com, err := h.uc.GetCommodity(c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(com)
}

// ListCommodities godoc
// @Summary      Listar catálogo de productos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "límite"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  entity.Commodity
// @Router       /api/commodities [get]
func (h *CatalogHandler) ListCommodities(c *fiber.Ctx) error {
	coms, err := h.uc.ListCommodities(c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(coms)
}

// CreateFarm godoc
// @Summary      Registrar finca de la organización
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFarmRequest  true  "name, region"
// @Success      201   {object}  entity.Farm
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/farms [post]
func (h *CatalogHandler) CreateFarm(c *fiber.Ctx) error {
	var in dto.CreateFarmRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	farm, err := h.uc.CreateFarm(GetOrganizationID(c), in)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(farm)
}

// GetFarm godoc
// @Summary      Consultar finca de la organización
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "farm id"
// @Success      200  {object}  entity.Farm
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/farms/{id} [get]
func (h *CatalogHandler) GetFarm(c *fiber.Ctx) error {
	farm, err := h.uc.GetFarm(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(farm)
}

// ListFarms godoc
// @Summary      Listar fincas de la organización
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "límite"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  entity.Farm
// @Router       /api/farms [get]
func (h *CatalogHandler) ListFarms(c *fiber.Ctx) error {
	farms, err := h.uc.ListFarms(GetOrganizationID(c), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(farms)
}
