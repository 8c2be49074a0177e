package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDiscount
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDiscount_Porcentaje(t *testing.T) {
	// 10% de 1000 = 100 → queda 900
	got := pricing.ApplyDiscount(dec("1000"), pricing.ModePercent, dec("10"))
	assert.True(t, dec("900").Equal(got), "esperado 900, obtenido %s", got)
}

func TestApplyDiscount_PorcentajeRedondeaHalfUp(t *testing.T) {
	// 15% de 1250 = 187.5 → redondea a 188 → queda 1062
	got := pricing.ApplyDiscount(dec("1250"), pricing.ModePercent, dec("15"))
	assert.True(t, dec("1062").Equal(got), "esperado 1062, obtenido %s", got)
}

func TestApplyDiscount_Fijo(t *testing.T) {
	got := pricing.ApplyDiscount(dec("1000"), pricing.ModeFixed, dec("250"))
	assert.True(t, dec("750").Equal(got))
}

func TestApplyDiscount_FijoMayorQueMonto_AcotaACero(t *testing.T) {
	// Un descuento fijo mayor al monto nunca deja total negativo.
	got := pricing.ApplyDiscount(dec("100"), pricing.ModeFixed, dec("500"))
	assert.True(t, got.Equal(decimal.Zero), "esperado 0, obtenido %s", got)
}

func TestApplyDiscount_ValorNegativo_SeIgnora(t *testing.T) {
	// Un valor negativo no puede convertir el descuento en recargo.
	got := pricing.ApplyDiscount(dec("1000"), pricing.ModeFixed, dec("-50"))
	assert.True(t, dec("1000").Equal(got))
}

func TestApplyDiscount_ModeNone_Identidad(t *testing.T) {
	got := pricing.ApplyDiscount(dec("1234"), pricing.ModeNone, dec("99"))
	assert.True(t, dec("1234").Equal(got))
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyTax
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyTax_Porcentaje(t *testing.T) {
	// IVA 19% sobre 1000 = 190 → total 1190
	got := pricing.ApplyTax(dec("1000"), pricing.ModePercent, dec("19"))
	assert.True(t, dec("1190").Equal(got))
}

func TestApplyTax_PorcentajeRedondeaHalfUp(t *testing.T) {
	// 19% de 450 = 85.5 → 86 → total 536
	got := pricing.ApplyTax(dec("450"), pricing.ModePercent, dec("19"))
	assert.True(t, dec("536").Equal(got))
}

func TestApplyTax_ValorNegativo_NoResta(t *testing.T) {
	// Los impuestos solo suman.
	got := pricing.ApplyTax(dec("1000"), pricing.ModeFixed, dec("-100"))
	assert.True(t, dec("1000").Equal(got))
}

func TestApplyTax_ModeNone_Identidad(t *testing.T) {
	got := pricing.ApplyTax(dec("777"), pricing.ModeNone, dec("19"))
	assert.True(t, dec("777").Equal(got))
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeOrder_SinAjustes(t *testing.T) {
	lines := []pricing.LineInput{
		{Quantity: 2, UnitPrice: dec("5000"), DiscountMode: pricing.ModeNone},
		{Quantity: 1, UnitPrice: dec("3000"), DiscountMode: pricing.ModeNone},
	}
	out, err := pricing.ComputeOrder(lines, pricing.ModeNone, decimal.Zero, pricing.ModeNone, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, dec("13000").Equal(out.Subtotal))
	assert.True(t, out.DiscountTotal.Equal(decimal.Zero))
	assert.True(t, out.TaxTotal.Equal(decimal.Zero))
	assert.True(t, dec("13000").Equal(out.Total))
}

func TestComputeOrder_DescuentoLineaLuegoOrdenLuegoImpuesto(t *testing.T) {
	// Línea: 2 x 5000 = 10000, 10% línea → 9000
	// Orden: descuento fijo 1000 → 8000
	// IVA 19% → 8000 + 1520 = 9520
	lines := []pricing.LineInput{
		{Quantity: 2, UnitPrice: dec("5000"), DiscountMode: pricing.ModePercent, DiscountValue: dec("10")},
	}
	out, err := pricing.ComputeOrder(lines, pricing.ModeFixed, dec("1000"), pricing.ModePercent, dec("19"))
	require.NoError(t, err)

	require.Len(t, out.Lines, 1)
	assert.True(t, dec("10000").Equal(out.Lines[0].Subtotal))
	assert.True(t, dec("9000").Equal(out.Lines[0].Total))
	assert.True(t, dec("9000").Equal(out.Subtotal))
	assert.True(t, dec("1000").Equal(out.DiscountTotal))
	assert.True(t, dec("1520").Equal(out.TaxTotal))
	assert.True(t, dec("9520").Equal(out.Total))
}

func TestComputeOrder_DescuentoOrdenMayorQueSubtotal(t *testing.T) {
	lines := []pricing.LineInput{
		{Quantity: 1, UnitPrice: dec("500"), DiscountMode: pricing.ModeNone},
	}
	out, err := pricing.ComputeOrder(lines, pricing.ModeFixed, dec("9999"), pricing.ModeNone, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, dec("500").Equal(out.DiscountTotal), "el descuento se acota al subtotal")
	assert.True(t, out.Total.Equal(decimal.Zero))
}

func TestComputeOrder_CantidadInvalida(t *testing.T) {
	lines := []pricing.LineInput{
		{Quantity: 0, UnitPrice: dec("500"), DiscountMode: pricing.ModeNone},
	}
	_, err := pricing.ComputeOrder(lines, pricing.ModeNone, decimal.Zero, pricing.ModeNone, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeOrder_ModoInvalido(t *testing.T) {
	_, err := pricing.ComputeOrder(nil, "mitad", decimal.Zero, pricing.ModeNone, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeOrder_Determinista(t *testing.T) {
	lines := []pricing.LineInput{
		{Quantity: 3, UnitPrice: dec("3333"), DiscountMode: pricing.ModePercent, DiscountValue: dec("7")},
		{Quantity: 7, UnitPrice: dec("111"), DiscountMode: pricing.ModeFixed, DiscountValue: dec("13")},
	}
	a, err := pricing.ComputeOrder(lines, pricing.ModePercent, dec("5"), pricing.ModePercent, dec("19"))
	require.NoError(t, err)
	b, err := pricing.ComputeOrder(lines, pricing.ModePercent, dec("5"), pricing.ModePercent, dec("19"))
	require.NoError(t, err)

	assert.True(t, a.Total.Equal(b.Total), "mismo input debe producir el mismo total")
	assert.True(t, a.TaxTotal.Equal(b.TaxTotal))
	assert.True(t, a.DiscountTotal.Equal(b.DiscountTotal))
}

// ──────────────────────────────────────────────────────────────────────────────
// WeightedAverageCost
// ──────────────────────────────────────────────────────────────────────────────

func TestWeightedAverageCost(t *testing.T) {
	// (10 * 100 + 5 * 130) / 15 = 1650 / 15 = 110
	got := pricing.WeightedAverageCost(10, dec("100"), 5, dec("130"))
	assert.True(t, dec("110").Equal(got), "esperado 110, obtenido %s", got)
}

func TestWeightedAverageCost_StockCero(t *testing.T) {
	// Sin stock previo, el costo promedio es el costo de entrada.
	got := pricing.WeightedAverageCost(0, decimal.Zero, 4, dec("250"))
	assert.True(t, dec("250").Equal(got))
}

func TestWeightedAverageCost_SumaCero(t *testing.T) {
	got := pricing.WeightedAverageCost(0, dec("100"), 0, dec("200"))
	assert.True(t, got.Equal(decimal.Zero))
}

func TestWeightedAverageCost_RedondeaADosDecimales(t *testing.T) {
	// (3 * 100 + 3 * 101) / 6 = 603/6 = 100.5
	got := pricing.WeightedAverageCost(3, dec("100"), 3, dec("101"))
	assert.True(t, dec("100.5").Equal(got))
}
