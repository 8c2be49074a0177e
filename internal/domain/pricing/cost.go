package pricing

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa el costo promedio ponderado.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(currentQty int64, currentCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	cur := decimal.NewFromInt(currentQty)
	in := decimal.NewFromInt(inQty)
	sum := cur.Add(in)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := cur.Mul(currentCost).Add(in.Mul(inCost))
	return num.Div(sum).Round(2)
}
