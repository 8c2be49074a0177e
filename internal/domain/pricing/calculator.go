// Package pricing implementa el cálculo de descuentos e impuestos
// (servicio de dominio puro, sin efectos secundarios).
//
// Todos los montos se manejan en unidades monetarias enteras: el redondeo es
// "half up" al entero (Round(0) de shopspring/decimal redondea half away from
// zero, equivalente para montos no negativos).
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/taller-api/internal/domain"
)

// Modos de descuento/impuesto.
const (
	ModeNone    = "none"
	ModePercent = "percent"
	ModeFixed   = "fixed"
)

var oneHundred = decimal.NewFromInt(100)

// ValidMode indica si el modo es uno de los tres soportados.
func ValidMode(mode string) bool {
	return mode == ModeNone || mode == ModePercent || mode == ModeFixed
}

// adjustment calcula el monto del ajuste según el modo, redondeado al entero.
func adjustment(amount decimal.Decimal, mode string, value decimal.Decimal) decimal.Decimal {
	switch mode {
	case ModePercent:
		return amount.Mul(value).Div(oneHundred).Round(0)
	case ModeFixed:
		return value.Round(0)
	default:
		return decimal.Zero
	}
}

// ApplyDiscount devuelve amount menos el descuento, acotado a [0, amount].
func ApplyDiscount(amount decimal.Decimal, mode string, value decimal.Decimal) decimal.Decimal {
	disc := adjustment(amount, mode, value)
	if disc.LessThan(decimal.Zero) {
		disc = decimal.Zero
	}
	if disc.GreaterThan(amount) {
		disc = amount
	}
	return amount.Sub(disc)
}

// ApplyTax devuelve amount más el impuesto (los impuestos suman, nunca restan).
func ApplyTax(amount decimal.Decimal, mode string, value decimal.Decimal) decimal.Decimal {
	tax := adjustment(amount, mode, value)
	if tax.LessThan(decimal.Zero) {
		tax = decimal.Zero
	}
	return amount.Add(tax)
}

// LineInput es una línea de orden antes de calcular montos.
type LineInput struct {
	Quantity      int64
	UnitPrice     decimal.Decimal
	DiscountMode  string
	DiscountValue decimal.Decimal
}

// LineAmounts montos calculados de una línea.
type LineAmounts struct {
	Subtotal decimal.Decimal // Quantity * UnitPrice
	Total    decimal.Decimal // Subtotal menos descuento de línea
}

// OrderAmounts montos calculados de la orden completa.
type OrderAmounts struct {
	Lines         []LineAmounts
	Subtotal      decimal.Decimal // suma de totales de línea
	DiscountTotal decimal.Decimal // descuento aplicado a nivel de orden
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
}

// ComputeOrder aplica primero el descuento por línea, luego el descuento de la
// orden sobre la suma de líneas, y por último el impuesto sobre el total ya
// descontado. Determinista y reproducible bit a bit.
func ComputeOrder(lines []LineInput, discountMode string, discountValue decimal.Decimal, taxMode string, taxValue decimal.Decimal) (*OrderAmounts, error) {
	if !ValidMode(discountMode) || !ValidMode(taxMode) {
		return nil, domain.ErrInvalidInput
	}
	out := &OrderAmounts{Lines: make([]LineAmounts, 0, len(lines))}
	subtotal := decimal.Zero
	for _, ln := range lines {
		if ln.Quantity <= 0 || ln.UnitPrice.LessThan(decimal.Zero) || !ValidMode(ln.DiscountMode) {
			return nil, domain.ErrInvalidInput
		}
		lineSubtotal := decimal.NewFromInt(ln.Quantity).Mul(ln.UnitPrice).Round(0)
		lineTotal := ApplyDiscount(lineSubtotal, ln.DiscountMode, ln.DiscountValue)
		out.Lines = append(out.Lines, LineAmounts{Subtotal: lineSubtotal, Total: lineTotal})
		subtotal = subtotal.Add(lineTotal)
	}
	out.Subtotal = subtotal

	afterDiscount := ApplyDiscount(subtotal, discountMode, discountValue)
	out.DiscountTotal = subtotal.Sub(afterDiscount)

	total := ApplyTax(afterDiscount, taxMode, taxValue)
	out.TaxTotal = total.Sub(afterDiscount)
	out.Total = total
	return out, nil
}
