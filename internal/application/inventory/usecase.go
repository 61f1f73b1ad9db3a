// Package inventory expone las consultas de stock derivado: el stock nunca
// se guarda, se calcula sumando las transacciones del ledger por tipo
// (INCOME suma, OUTCOME e INSTALL restan, PENDING no cuenta).
package inventory

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// StockUseCase consultas de solo lectura sobre el ledger.
type StockUseCase struct {
	txRepo repository.TransactionRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRepo repository.TransactionRepository) *StockUseCase {
	return &StockUseCase{txRepo: txRepo}
}

// OnHand devuelve el stock derivado de un par producto/bodega.
// Sin transacciones para el par, el stock es 0.
func (uc *StockUseCase) OnHand(ctx context.Context, productID, warehouseID string) (*dto.OnHandResponse, error) {
	if productID == "" {
		return nil, domain.NewValidationError("product_id", "es requerido")
	}
	if warehouseID == "" {
		return nil, domain.NewValidationError("warehouse_id", "es requerido")
	}
	qty, err := uc.txRepo.OnHand(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return &dto.OnHandResponse{ProductID: productID, WarehouseID: warehouseID, OnHand: qty}, nil
}

// OnHandBatch devuelve el stock derivado de un conjunto de pares en una sola
// agregación agrupada (lo usan las vistas Kanban para evitar N+1).
// Pares sin transacciones aparecen con stock 0.
func (uc *StockUseCase) OnHandBatch(ctx context.Context, in dto.OnHandBatchRequest) ([]dto.OnHandResponse, error) {
	if len(in.Pairs) == 0 {
		return nil, domain.NewValidationError("pairs", "se requiere al menos un par producto/bodega")
	}
	keys := make([]repository.StockKey, 0, len(in.Pairs))
	for _, p := range in.Pairs {
		if p.ProductID == "" || p.WarehouseID == "" {
			return nil, domain.NewValidationError("pairs", "product_id y warehouse_id son requeridos en todos los pares")
		}
		keys = append(keys, repository.StockKey{ProductID: p.ProductID, WarehouseID: p.WarehouseID})
	}
	byKey, err := uc.txRepo.OnHandBatch(ctx, keys)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OnHandResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, dto.OnHandResponse{
			ProductID:   k.ProductID,
			WarehouseID: k.WarehouseID,
			OnHand:      byKey[k], // ausencia en el mapa = 0
		})
	}
	return out, nil
}

// LowStock devuelve los productos activos cuyo stock derivado está por
// debajo de su punto de reorden. warehouseID vacío = stock global.
func (uc *StockUseCase) LowStock(ctx context.Context, warehouseID string) ([]dto.LowStockItemResponse, error) {
	items, err := uc.txRepo.BelowReorderPoint(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LowStockItemResponse{
			ProductID:    item.ProductID,
			SKU:          item.SKU,
			ProductName:  item.ProductName,
			OnHand:       item.OnHand,
			ReorderPoint: item.ReorderPoint,
			Deficit:      item.ReorderPoint - item.OnHand,
		})
	}
	return out, nil
}

// ListMovements lista transacciones del ledger por producto o bodega con
// rango de fechas y paginación.
func (uc *StockUseCase) ListMovements(ctx context.Context, f repository.TransactionFilter) ([]dto.TransactionResponse, error) {
	if f.ProductID == "" && f.WarehouseID == "" {
		return nil, domain.NewValidationError("filter", "se requiere product_id o warehouse_id")
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := uc.txRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, dto.TransactionResponse{
			ID:          tx.ID,
			ProductID:   tx.ProductID,
			WarehouseID: tx.WarehouseID,
			LocationID:  tx.LocationID,
			Type:        tx.Type,
			Quantity:    tx.Quantity,
			UnitPrice:   tx.UnitPrice,
			TotalPrice:  tx.TotalPrice,
			Date:        tx.Date,
			UserID:      tx.UserID,
			Description: tx.Description,
			RequestID:   tx.RequestID,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return out, nil
}
