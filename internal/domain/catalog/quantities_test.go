package catalog_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/domain/catalog"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func TestSummaryFromCounts(t *testing.T) {
	s := catalog.SummaryFromCounts(map[string]int{
		entity.SerialStatusAvailable:   3,
		entity.SerialStatusInUse:       2,
		entity.SerialStatusMaintenance: 1,
	})
	assert.Equal(t, 3, s.Available)
	assert.Equal(t, 2, s.InUse)
	assert.Equal(t, 1, s.Maintenance)
	assert.Equal(t, 0, s.Retired)
	assert.Equal(t, 6, s.Total())
}

// Stock bajo compara las unidades DISPONIBLES contra min_quantity.
func TestIsLowStock_ComparaDisponibles(t *testing.T) {
	a := &entity.Asset{Quantity: 10, MinQuantity: intPtr(2)}
	assert.True(t, catalog.IsLowStock(a, 2), "disponibles == min es stock bajo")
	assert.True(t, catalog.IsLowStock(a, 1))
	assert.False(t, catalog.IsLowStock(a, 3))
	assert.False(t, catalog.IsLowStock(&entity.Asset{Quantity: 10}, 0), "sin umbral nunca hay stock bajo")
}

// Sobre-stock compara la cantidad DECLARADA contra max_quantity, no las unidades vivas.
// La asimetría con IsLowStock es intencional.
func TestIsOverStock_ComparaCantidadDeclarada(t *testing.T) {
	a := &entity.Asset{Quantity: 10, MaxQuantity: intPtr(10)}
	assert.True(t, catalog.IsOverStock(a), "declarada == max es sobre-stock")
	a.Quantity = 9
	assert.False(t, catalog.IsOverStock(a))
	assert.False(t, catalog.IsOverStock(&entity.Asset{Quantity: 100}), "sin umbral nunca hay sobre-stock")
}

func TestDepreciatedValue_Lineal(t *testing.T) {
	a := &entity.Asset{
		PurchasePrice:    decPtr("1000"),
		DepreciationRate: decPtr("10"), // 10% anual
		PurchaseDate:     datePtr("2021-06-15"),
	}
	// 2 años completos al 2023-06-20: 1000 - 1000*0.10*2 = 800
	got := catalog.DepreciatedValue(a, date("2023-06-20"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.RequireFromString("800")), "got %s", got)
}

// El valor depreciado tiene piso en cero: nunca negativo.
func TestDepreciatedValue_PisoEnCero(t *testing.T) {
	a := &entity.Asset{
		PurchasePrice:    decPtr("1000"),
		DepreciationRate: decPtr("50"),
		PurchaseDate:     datePtr("2018-01-01"),
	}
	got := catalog.DepreciatedValue(a, date("2024-01-02"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.Zero), "6 años al 50%% anual satura en 0, got %s", got)
}

// Sin precio, tasa o fecha de compra no hay cálculo.
func TestDepreciatedValue_DatosIncompletos(t *testing.T) {
	assert.Nil(t, catalog.DepreciatedValue(&entity.Asset{PurchasePrice: decPtr("100")}, date("2024-01-01")))
	assert.Nil(t, catalog.DepreciatedValue(&entity.Asset{DepreciationRate: decPtr("10")}, date("2024-01-01")))
}

// Antes del primer aniversario no se deprecia nada.
func TestDepreciatedValue_AntesDelAniversario(t *testing.T) {
	a := &entity.Asset{
		PurchasePrice:    decPtr("500"),
		DepreciationRate: decPtr("20"),
		PurchaseDate:     datePtr("2023-06-15"),
	}
	got := catalog.DepreciatedValue(a, date("2024-06-14"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.RequireFromString("500")))
}

func TestIsUnderWarranty(t *testing.T) {
	a := &entity.Asset{WarrantyExpiryDate: datePtr("2024-06-01")}
	assert.True(t, catalog.IsUnderWarranty(a, date("2024-06-01")), "el día del vencimiento sigue vigente")
	assert.False(t, catalog.IsUnderWarranty(a, date("2024-06-02")))
	assert.False(t, catalog.IsUnderWarranty(&entity.Asset{}, date("2024-01-01")))
}

func TestIsCalibrationDue(t *testing.T) {
	a := &entity.Asset{RequiresCalibration: true, NextCalibrationDate: datePtr("2024-03-01")}
	assert.True(t, catalog.IsCalibrationDue(a, date("2024-03-01")))
	assert.False(t, catalog.IsCalibrationDue(a, date("2024-02-29")))

	sinCal := &entity.Asset{NextCalibrationDate: datePtr("2020-01-01")}
	assert.False(t, catalog.IsCalibrationDue(sinCal, date("2024-01-01")),
		"sin requires_calibration nunca está vencida")
}

func TestIsNearingRetirement(t *testing.T) {
	a := &entity.Asset{RetirementDate: datePtr("2024-06-01")}
	assert.True(t, catalog.IsNearingRetirement(a, date("2024-03-15")), "dentro de los 3 meses")
	assert.False(t, catalog.IsNearingRetirement(a, date("2024-02-15")), "a más de 3 meses")
	assert.False(t, catalog.IsNearingRetirement(a, date("2024-06-02")), "ya retirado no es 'próximo'")
}
