package dto

// CreateOrganizationRequest body para POST /api/organizations.
type CreateOrganizationRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CreateCommodityRequest body para POST /api/commodities.
type CreateCommodityRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	DefaultUnit string `json:"default_unit,omitempty"`
	Perishable  bool   `json:"perishable,omitempty"`
}

// CreateFarmRequest body para POST /api/farms.
type CreateFarmRequest struct {
	Name         string  `json:"name"`
	Region       string  `json:"region,omitempty"`
	AreaHectares float64 `json:"area_hectares,omitempty"`
}
