package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset representa un tipo de activo del catálogo. Quantity es la cantidad declarada
// (techo de capacidad): el número de unidades serializadas nunca puede excederla.
// Los conteos por estado no se persisten; se derivan de las unidades en cada lectura.
type Asset struct {
	ID           string
	CategoryID   string
	DepartmentID *string // departamento propietario (puede no estar asignado)
	Name         string
	Description  string

	Quantity    int  // techo declarado
	MinQuantity *int // umbral de stock bajo
	MaxQuantity *int // umbral de sobre-stock (se compara contra Quantity, no contra unidades vivas)

	PurchasePrice    *decimal.Decimal
	CurrentValue     *decimal.Decimal
	DepreciationRate *decimal.Decimal // % anual
	PurchaseDate     *time.Time

	ExpectedLifespanMonths *int
	RetirementDate         *time.Time
	WarrantyExpiryDate     *time.Time

	RequiresLicense bool
	LicenseDetails  string

	RequiresCalibration       bool
	LastCalibrationDate       *time.Time
	NextCalibrationDate       *time.Time
	CalibrationIntervalMonths *int

	// TagSequence es el contador durable por activo para generar asset tags.
	// No retrocede al borrar unidades, así los tags no colisionan.
	TagSequence int

	CreatedAt time.Time
	UpdatedAt time.Time
}
