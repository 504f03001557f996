// Package catalog contiene servicios de dominio puros del catálogo de activos:
// reconciliación de cantidades por estado y cálculos financieros derivados.
// Nada de esto se persiste; cada lectura recalcula desde las unidades vivas.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// QuantitySummary agrupa los conteos de unidades por estado para un activo.
type QuantitySummary struct {
	Available   int
	InUse       int
	Maintenance int
	Retired     int
	Disposed    int
}

// Total suma todos los conteos.
func (s QuantitySummary) Total() int {
	return s.Available + s.InUse + s.Maintenance + s.Retired + s.Disposed
}

// SummaryFromCounts arma el resumen a partir del GROUP BY status del repositorio.
func SummaryFromCounts(counts map[string]int) QuantitySummary {
	return QuantitySummary{
		Available:   counts[entity.SerialStatusAvailable],
		InUse:       counts[entity.SerialStatusInUse],
		Maintenance: counts[entity.SerialStatusMaintenance],
		Retired:     counts[entity.SerialStatusRetired],
		Disposed:    counts[entity.SerialStatusDisposed],
	}
}

// IsLowStock indica stock bajo: min_quantity definido y disponibles <= min_quantity.
func IsLowStock(a *entity.Asset, available int) bool {
	if a.MinQuantity == nil {
		return false
	}
	return available <= *a.MinQuantity
}

// IsOverStock indica sobre-stock: max_quantity definido y la cantidad DECLARADA >= max_quantity.
// Ojo: compara el techo declarado, no las unidades vivas (asimetría intencional con IsLowStock).
func IsOverStock(a *entity.Asset) bool {
	if a.MaxQuantity == nil {
		return false
	}
	return a.Quantity >= *a.MaxQuantity
}

// DepreciatedValue calcula el valor depreciado lineal:
// precio - precio * (tasa/100) * años transcurridos, con piso en 0.
// Devuelve nil si falta precio, tasa o fecha de compra.
func DepreciatedValue(a *entity.Asset, now time.Time) *decimal.Decimal {
	if a.PurchasePrice == nil || a.DepreciationRate == nil || a.PurchaseDate == nil {
		return nil
	}
	years := yearsBetween(*a.PurchaseDate, now)
	amount := a.PurchasePrice.
		Mul(a.DepreciationRate.Div(decimal.NewFromInt(100))).
		Mul(decimal.NewFromInt(int64(years)))
	value := a.PurchasePrice.Sub(amount)
	if value.IsNegative() {
		value = decimal.Zero
	}
	value = value.Round(2)
	return &value
}

// IsUnderWarranty indica si la garantía sigue vigente.
func IsUnderWarranty(a *entity.Asset, now time.Time) bool {
	if a.WarrantyExpiryDate == nil {
		return false
	}
	return !now.After(*a.WarrantyExpiryDate)
}

// IsCalibrationDue indica si la calibración está vencida.
func IsCalibrationDue(a *entity.Asset, now time.Time) bool {
	if !a.RequiresCalibration || a.NextCalibrationDate == nil {
		return false
	}
	return !now.Before(*a.NextCalibrationDate)
}

// IsNearingRetirement indica si el retiro del activo está a 3 meses o menos.
func IsNearingRetirement(a *entity.Asset, now time.Time) bool {
	if a.RetirementDate == nil {
		return false
	}
	if now.After(*a.RetirementDate) {
		return false
	}
	return !now.AddDate(0, 3, 0).Before(*a.RetirementDate)
}

// yearsBetween años calendario completos entre from y to (0 si to < from).
func yearsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}
