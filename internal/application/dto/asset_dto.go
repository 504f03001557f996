package dto

import "github.com/shopspring/decimal"

// CreateAssetRequest body para POST /api/assets.
// Las fechas van como "YYYY-MM-DD".
type CreateAssetRequest struct {
	CategoryID   string  `json:"category_id"`
	DepartmentID *string `json:"department_id,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`

	Quantity    int  `json:"quantity"`
	MinQuantity *int `json:"min_quantity,omitempty"`
	MaxQuantity *int `json:"max_quantity,omitempty"`

	PurchasePrice    *decimal.Decimal `json:"purchase_price,omitempty"`
	CurrentValue     *decimal.Decimal `json:"current_value,omitempty"`
	DepreciationRate *decimal.Decimal `json:"depreciation_rate,omitempty"`
	PurchaseDate     *string          `json:"purchase_date,omitempty"`

	ExpectedLifespanMonths *int    `json:"expected_lifespan_months,omitempty"`
	RetirementDate         *string `json:"retirement_date,omitempty"`
	WarrantyExpiryDate     *string `json:"warranty_expiry_date,omitempty"`

	RequiresLicense bool   `json:"requires_license,omitempty"`
	LicenseDetails  string `json:"license_details,omitempty"`

	RequiresCalibration       bool    `json:"requires_calibration,omitempty"`
	LastCalibrationDate       *string `json:"last_calibration_date,omitempty"`
	NextCalibrationDate       *string `json:"next_calibration_date,omitempty"`
	CalibrationIntervalMonths *int    `json:"calibration_interval_months,omitempty"`
}

// UpdateAssetRequest body para PUT /api/assets/:id. Campos nil se dejan como están.
type UpdateAssetRequest struct {
	CategoryID   *string `json:"category_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`

	Quantity    *int `json:"quantity,omitempty"`
	MinQuantity *int `json:"min_quantity,omitempty"`
	MaxQuantity *int `json:"max_quantity,omitempty"`

	PurchasePrice    *decimal.Decimal `json:"purchase_price,omitempty"`
	CurrentValue     *decimal.Decimal `json:"current_value,omitempty"`
	DepreciationRate *decimal.Decimal `json:"depreciation_rate,omitempty"`
	PurchaseDate     *string          `json:"purchase_date,omitempty"`

	RetirementDate     *string `json:"retirement_date,omitempty"`
	WarrantyExpiryDate *string `json:"warranty_expiry_date,omitempty"`
}

// AssetResponse respuesta de activo con la reconciliación de cantidades derivada.
// Los conteos nunca se persisten: se recalculan desde las unidades en cada lectura.
type AssetResponse struct {
	ID           string  `json:"id"`
	CategoryID   string  `json:"category_id"`
	DepartmentID *string `json:"department_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`

	Quantity    int  `json:"quantity"`
	MinQuantity *int `json:"min_quantity,omitempty"`
	MaxQuantity *int `json:"max_quantity,omitempty"`

	QuantityAvailable   int `json:"quantity_available"`
	QuantityInUse       int `json:"quantity_in_use"`
	QuantityMaintenance int `json:"quantity_maintenance"`
	QuantityRetired     int `json:"quantity_retired"`
	QuantityDisposed    int `json:"quantity_disposed"`

	IsLowStock  bool `json:"is_low_stock"`
	IsOverStock bool `json:"is_over_stock"`

	PurchasePrice    *decimal.Decimal `json:"purchase_price,omitempty"`
	CurrentValue     *decimal.Decimal `json:"current_value,omitempty"`
	DepreciationRate *decimal.Decimal `json:"depreciation_rate,omitempty"`
	PurchaseDate     *string          `json:"purchase_date,omitempty"`
	DepreciatedValue *decimal.Decimal `json:"depreciated_value,omitempty"`

	RetirementDate     *string `json:"retirement_date,omitempty"`
	WarrantyExpiryDate *string `json:"warranty_expiry_date,omitempty"`
	IsUnderWarranty    bool    `json:"is_under_warranty"`
	IsCalibrationDue   bool    `json:"is_calibration_due"`
	IsNearingRetirement bool   `json:"is_nearing_retirement"`

	RequiresLicense     bool   `json:"requires_license"`
	LicenseDetails      string `json:"license_details,omitempty"`
	RequiresCalibration bool   `json:"requires_calibration"`
}

// AssetListResponse listado paginado de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
