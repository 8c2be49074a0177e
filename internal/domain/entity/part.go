package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del almacén del taller.
// Stock se muta exclusivamente a través del libro de movimientos (ledger);
// ningún caso de uso escribe Stock sin registrar el movimiento en la misma transacción.
type Part struct {
	ID           string
	SKU          string // código único del repuesto
	Name         string
	Description  string
	Stock        int64 // unidades actuales, nunca negativo
	MinimalStock int64 // umbral para el reporte de stock bajo
	Price        decimal.Decimal // precio de venta (unidades monetarias enteras)
	Cost         decimal.Decimal // costo promedio ponderado
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
