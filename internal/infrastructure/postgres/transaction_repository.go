package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// onHandExpr agregación del stock derivado: INCOME suma, OUTCOME e INSTALL
// restan, PENDING aporta 0. Es la única definición de "stock" del sistema.
const onHandExpr = `COALESCE(SUM(CASE type
		WHEN 'INCOME'  THEN quantity
		WHEN 'OUTCOME' THEN -quantity
		WHEN 'INSTALL' THEN -quantity
		ELSE 0 END), 0)`

const txColumns = `id, product_id, warehouse_id, location_id, type, quantity,
		unit_price, total_price, date, user_id, description, request_id, created_at, updated_at`

// TransactionRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción del ledger.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions
			(id, product_id, warehouse_id, location_id, type, quantity, unit_price, total_price, date, user_id, description, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	description := (*string)(nil)
	if tx.Description != "" {
		description = &tx.Description
	}
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.ProductID, tx.WarehouseID, tx.LocationID, tx.Type, tx.Quantity,
		tx.UnitPrice, tx.TotalPrice, tx.Date, tx.UserID, description, tx.RequestID, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID. (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM inventory_transactions WHERE id = $1`
	tx, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// ListByRequest lista las transacciones de una solicitud en orden de creación.
func (r *TransactionRepo) ListByRequest(ctx context.Context, requestID string) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM inventory_transactions
		WHERE request_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list by request: %w", err)
	}
	return collectTransactions(rows)
}

// List lista transacciones filtradas por producto y/o bodega con rango de fechas.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM inventory_transactions WHERE 1=1`
	var args []any
	pos := 1
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, f.WarehouseID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return collectTransactions(rows)
}

// DeletePendingByRequest borra las líneas PENDING de una solicitud. Solo se
// usa durante el reemplazo completo de líneas en Draft; las filas de otros
// tipos jamás se borran.
func (r *TransactionRepo) DeletePendingByRequest(ctx context.Context, requestID string) error {
	query := `DELETE FROM inventory_transactions WHERE request_id = $1 AND type = 'PENDING'`
	if _, err := r.q.Exec(ctx, query, requestID); err != nil {
		return fmt.Errorf("delete pending by request: %w", err)
	}
	return nil
}

// MarkPendingAsIncome convierte todas las PENDING de la solicitud en INCOME
// en un solo UPDATE: o cambian todas o ninguna.
func (r *TransactionRepo) MarkPendingAsIncome(ctx context.Context, requestID string, at time.Time) (int64, error) {
	query := `
		UPDATE inventory_transactions
		SET type = 'INCOME', updated_at = $2
		WHERE request_id = $1 AND type = 'PENDING'`
	tag, err := r.q.Exec(ctx, query, requestID, at)
	if err != nil {
		return 0, fmt.Errorf("mark pending as income: %w", err)
	}
	return tag.RowsAffected(), nil
}

// OnHand calcula el stock derivado de un par producto/bodega con una sola
// agregación. Sin filas para el par devuelve 0.
func (r *TransactionRepo) OnHand(ctx context.Context, productID, warehouseID string) (int64, error) {
	query := `SELECT ` + onHandExpr + ` FROM inventory_transactions
		WHERE product_id = $1 AND warehouse_id = $2`
	var qty int64
	if err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(&qty); err != nil {
		return 0, fmt.Errorf("on hand: %w", err)
	}
	return qty, nil
}

// OnHandBatch calcula el stock derivado de varios pares en UNA consulta
// agrupada (row-value IN), nunca con una ida y vuelta por par. Los pares sin
// filas no aparecen en el resultado: el caller los interpreta como 0.
func (r *TransactionRepo) OnHandBatch(ctx context.Context, keys []repository.StockKey) (map[repository.StockKey]int64, error) {
	result := make(map[repository.StockKey]int64, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	placeholders := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)*2)
	pos := 1
	for _, k := range keys {
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d)", pos, pos+1))
		args = append(args, k.ProductID, k.WarehouseID)
		pos += 2
	}

	query := `
		SELECT product_id, warehouse_id, ` + onHandExpr + `
		FROM inventory_transactions
		WHERE (product_id, warehouse_id) IN (` + strings.Join(placeholders, ", ") + `)
		GROUP BY product_id, warehouse_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("on hand batch: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k repository.StockKey
		var qty int64
		if err := rows.Scan(&k.ProductID, &k.WarehouseID, &qty); err != nil {
			return nil, fmt.Errorf("scan on hand batch: %w", err)
		}
		result[k] = qty
	}
	return result, rows.Err()
}

// BelowReorderPoint devuelve productos activos cuyo stock derivado (por
// bodega o global) es menor que su punto de reorden, ordenados por déficit
// descendente (mayor quiebre primero).
func (r *TransactionRepo) BelowReorderPoint(ctx context.Context, warehouseID string) ([]repository.LowStockItem, error) {
	var (
		query string
		args  []any
	)
	if warehouseID != "" {
		query = `
			SELECT p.id, p.sku, p.name, COALESCE(s.on_hand, 0), p.reorder_point
			FROM products p
			LEFT JOIN (
				SELECT product_id, ` + onHandExpr + ` AS on_hand
				FROM inventory_transactions
				WHERE warehouse_id = $1
				GROUP BY product_id
			) s ON s.product_id = p.id
			WHERE p.active AND p.reorder_point > 0
			  AND COALESCE(s.on_hand, 0) < p.reorder_point
			ORDER BY (p.reorder_point - COALESCE(s.on_hand, 0)) DESC`
		args = []any{warehouseID}
	} else {
		query = `
			SELECT p.id, p.sku, p.name, COALESCE(s.on_hand, 0), p.reorder_point
			FROM products p
			LEFT JOIN (
				SELECT product_id, ` + onHandExpr + ` AS on_hand
				FROM inventory_transactions
				GROUP BY product_id
			) s ON s.product_id = p.id
			WHERE p.active AND p.reorder_point > 0
			  AND COALESCE(s.on_hand, 0) < p.reorder_point
			ORDER BY (p.reorder_point - COALESCE(s.on_hand, 0)) DESC`
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("below reorder point: %w", err)
	}
	defer rows.Close()

	var items []repository.LowStockItem
	for rows.Next() {
		var item repository.LowStockItem
		if err := rows.Scan(&item.ProductID, &item.SKU, &item.ProductName, &item.OnHand, &item.ReorderPoint); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// scanTransaction escanea una fila completa del ledger.
func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var tx entity.InventoryTransaction
	var description *string
	err := row.Scan(
		&tx.ID, &tx.ProductID, &tx.WarehouseID, &tx.LocationID, &tx.Type, &tx.Quantity,
		&tx.UnitPrice, &tx.TotalPrice, &tx.Date, &tx.UserID, &description, &tx.RequestID,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		tx.Description = *description
	}
	return &tx, nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.InventoryTransaction, error) {
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}
