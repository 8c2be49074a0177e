package reporting

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// UseCase rollups de solo lectura sobre órdenes y ledger. Las lecturas no
// requieren serialización con los escritores.
type UseCase struct {
	reportRepo repository.ReportRepository
	partRepo   repository.PartRepository
	movRepo    repository.StockMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(reportRepo repository.ReportRepository, partRepo repository.PartRepository, movRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo, partRepo: partRepo, movRepo: movRepo}
}

// SalesSummary agrega las órdenes de venta cumplidas en el rango.
func (uc *UseCase) SalesSummary(from, to time.Time) (*repository.OrderSummary, error) {
	return uc.reportRepo.SalesSummary(from, to)
}

// PurchasesSummary agrega compras y órdenes de compra recibidas en el rango.
func (uc *UseCase) PurchasesSummary(from, to time.Time) (*repository.OrderSummary, error) {
	return uc.reportRepo.PurchasesSummary(from, to)
}

// TopPartsSold repuestos más vendidos en el rango.
func (uc *UseCase) TopPartsSold(from, to time.Time, limit int) ([]*repository.TopPart, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.reportRepo.TopPartsSold(from, to, limit)
}

// LowStockParts repuestos en o por debajo de su stock mínimo.
func (uc *UseCase) LowStockParts() ([]*entity.Part, error) {
	return uc.partRepo.ListLowStock()
}

// ExportMovementsCSV escribe el ledger filtrado como CSV en w.
func (uc *UseCase) ExportMovementsCSV(w io.Writer, filter repository.MovementFilter) error {
	if filter.Limit <= 0 {
		filter.Limit = 1000
	}
	movements, err := uc.movRepo.List(filter)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "part_id", "type", "quantity", "before_stock", "after_stock", "order_kind", "order_id", "notes", "created_at", "created_by"}); err != nil {
		return err
	}
	for _, m := range movements {
		record := []string{
			m.ID,
			m.PartID,
			m.Type,
			strconv.FormatInt(m.Quantity, 10),
			strconv.FormatInt(m.BeforeStock, 10),
			strconv.FormatInt(m.AfterStock, 10),
			m.OrderKind,
			m.OrderID,
			m.Notes,
			m.CreatedAt.Format(time.RFC3339),
			m.CreatedBy,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
