package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// RequestItemForPDF línea de la solicitud enriquecida para el PDF.
type RequestItemForPDF struct {
	SKU           string
	ProductName   string
	WarehouseName string
	Quantity      int64
	Status        string // PENDING o INCOME
	UnitPrice     *decimal.Decimal
	TotalPrice    *decimal.Decimal
}

// RequestPDFGenerator puerto del generador de la hoja de pedido.
type RequestPDFGenerator interface {
	GenerateRequestPDF(ctx context.Context, req *entity.Request, items []RequestItemForPDF) ([]byte, error)
}

// SheetUseCase genera la hoja de pedido (PDF) de una solicitud de compra.
type SheetUseCase struct {
	requestRepo   repository.RequestRepository
	txRepo        repository.TransactionRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	generator     RequestPDFGenerator
}

// NewSheetUseCase construye el caso de uso inyectando sus dependencias.
func NewSheetUseCase(
	requestRepo repository.RequestRepository,
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	generator RequestPDFGenerator,
) *SheetUseCase {
	return &SheetUseCase{
		requestRepo:   requestRepo,
		txRepo:        txRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
	}
}

// DownloadRequestPDF recupera la solicitud con sus líneas, resuelve nombres
// de producto y bodega y genera la hoja de pedido.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la solicitud no existe.
func (uc *SheetUseCase) DownloadRequestPDF(ctx context.Context, requestID string) (pdfBytes []byte, filename string, err error) {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener solicitud: %w", err)
	}
	if req == nil {
		return nil, "", domain.ErrNotFound
	}

	txs, err := uc.txRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	// Cache local de nombres: las solicitudes suelen repetir producto/bodega.
	productNames := map[string][2]string{} // id → (sku, name)
	warehouseNames := map[string]string{}

	items := make([]RequestItemForPDF, 0, len(txs))
	for _, tx := range txs {
		pn, ok := productNames[tx.ProductID]
		if !ok {
			product, err := uc.productRepo.GetByID(ctx, tx.ProductID)
			if err != nil {
				return nil, "", fmt.Errorf("pdf: obtener producto: %w", err)
			}
			if product != nil {
				pn = [2]string{product.SKU, product.Name}
			} else {
				pn = [2]string{"?", tx.ProductID}
			}
			productNames[tx.ProductID] = pn
		}
		wn, ok := warehouseNames[tx.WarehouseID]
		if !ok {
			warehouse, err := uc.warehouseRepo.GetByID(ctx, tx.WarehouseID)
			if err != nil {
				return nil, "", fmt.Errorf("pdf: obtener bodega: %w", err)
			}
			if warehouse != nil {
				wn = warehouse.Name
			} else {
				wn = tx.WarehouseID
			}
			warehouseNames[tx.WarehouseID] = wn
		}
		items = append(items, RequestItemForPDF{
			SKU:           pn[0],
			ProductName:   pn[1],
			WarehouseName: wn,
			Quantity:      tx.Quantity,
			Status:        tx.Type,
			UnitPrice:     tx.UnitPrice,
			TotalPrice:    tx.TotalPrice,
		})
	}

	pdfBytes, err = uc.generator.GenerateRequestPDF(ctx, req, items)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar hoja de pedido: %w", err)
	}
	filename = fmt.Sprintf("solicitud-%s.pdf", req.ID[:8])
	return pdfBytes, filename, nil
}
