package orders

import (
	"context"

	"github.com/jcastano/taller-api/internal/domain"
	"github.com/jcastano/taller-api/internal/domain/entity"
	"github.com/jcastano/taller-api/internal/domain/repository"
)

// InvoicePDFGenerator genera la representación en PDF de una orden de venta
// cumplida (puerto implementado en infrastructure/pdf con Maroto).
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, order *entity.Order, customer *entity.Customer, parts map[string]*entity.Part) ([]byte, error)
}

// PDFUseCase genera el PDF de la factura de una orden de venta.
type PDFUseCase struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	partRepo     repository.PartRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	partRepo repository.PartRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{orderRepo: orderRepo, customerRepo: customerRepo, partRepo: partRepo, generator: generator}
}

// GenerateSalesInvoice genera el PDF. Solo aplica a órdenes de venta cumplidas.
// Devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *PDFUseCase) GenerateSalesInvoice(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if order.Kind != entity.OrderKindSalesOrder || order.Status != entity.OrderStatusFulfilled {
		return nil, "", domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(order.CounterpartyID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}
	parts := make(map[string]*entity.Part, len(order.Details))
	for _, det := range order.Details {
		if _, ok := parts[det.PartID]; ok {
			continue
		}
		part, err := uc.partRepo.GetByID(det.PartID)
		if err != nil {
			return nil, "", err
		}
		if part == nil {
			return nil, "", domain.ErrNotFound
		}
		parts[det.PartID] = part
	}
	pdf, err := uc.generator.GenerateInvoicePDF(ctx, order, customer, parts)
	if err != nil {
		return nil, "", err
	}
	return pdf, "factura-" + order.Number + ".pdf", nil
}
