package inventory_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ledgerFake implementa el repositorio del ledger sobre un slice en memoria,
// derivando el stock con la misma regla de signos que la agregación SQL.
type ledgerFake struct {
	txs      []*entity.InventoryTransaction
	lowStock []repository.LowStockItem
	listed   []*entity.InventoryTransaction
}

func (f *ledgerFake) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	f.txs = append(f.txs, tx)
	return nil
}

func (f *ledgerFake) GetByID(context.Context, string) (*entity.InventoryTransaction, error) {
	return nil, nil
}

func (f *ledgerFake) ListByRequest(context.Context, string) ([]*entity.InventoryTransaction, error) {
	return nil, nil
}

func (f *ledgerFake) List(context.Context, repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	return f.listed, nil
}

func (f *ledgerFake) DeletePendingByRequest(context.Context, string) error { return nil }

func (f *ledgerFake) MarkPendingAsIncome(context.Context, string, time.Time) (int64, error) {
	return 0, nil
}

func (f *ledgerFake) OnHand(_ context.Context, productID, warehouseID string) (int64, error) {
	var sum int64
	for _, tx := range f.txs {
		if tx.ProductID != productID || tx.WarehouseID != warehouseID {
			continue
		}
		switch tx.Type {
		case entity.TxTypeIncome:
			sum += tx.Quantity
		case entity.TxTypeOutcome, entity.TxTypeInstall:
			sum -= tx.Quantity
		}
	}
	return sum, nil
}

func (f *ledgerFake) OnHandBatch(ctx context.Context, keys []repository.StockKey) (map[repository.StockKey]int64, error) {
	out := map[repository.StockKey]int64{}
	for _, k := range keys {
		n, _ := f.OnHand(ctx, k.ProductID, k.WarehouseID)
		if n != 0 {
			out[k] = n
		}
	}
	return out, nil
}

func (f *ledgerFake) BelowReorderPoint(context.Context, string) ([]repository.LowStockItem, error) {
	return f.lowStock, nil
}

func tx(productID, warehouseID, typ string, qty int64) *entity.InventoryTransaction {
	return &entity.InventoryTransaction{
		ProductID: productID, WarehouseID: warehouseID, Type: typ, Quantity: qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────

func TestOnHand_SumaPorTipo(t *testing.T) {
	ledger := &ledgerFake{txs: []*entity.InventoryTransaction{
		tx("p1", "w1", entity.TxTypeIncome, 10),
		tx("p1", "w1", entity.TxTypeIncome, 5),
		tx("p1", "w1", entity.TxTypeOutcome, 3),
		tx("p1", "w1", entity.TxTypeInstall, 2),
		tx("p1", "w1", entity.TxTypePending, 100), // no cuenta
		tx("p1", "w2", entity.TxTypeIncome, 50),   // otra bodega
		tx("p2", "w1", entity.TxTypeIncome, 7),    // otro producto
	}}
	uc := inventory.NewStockUseCase(ledger)

	out, err := uc.OnHand(context.Background(), "p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.OnHand, "10+5-3-2 = 10; PENDING no suma")
}

func TestOnHand_IndependienteDelOrden(t *testing.T) {
	base := []*entity.InventoryTransaction{
		tx("p1", "w1", entity.TxTypeIncome, 10),
		tx("p1", "w1", entity.TxTypeOutcome, 4),
		tx("p1", "w1", entity.TxTypeIncome, 6),
		tx("p1", "w1", entity.TxTypeInstall, 1),
		tx("p1", "w1", entity.TxTypePending, 9),
	}

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]*entity.InventoryTransaction, len(base))
		copy(shuffled, base)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		uc := inventory.NewStockUseCase(&ledgerFake{txs: shuffled})
		out, err := uc.OnHand(context.Background(), "p1", "w1")
		require.NoError(t, err)
		assert.Equal(t, int64(11), out.OnHand, "la suma no depende del orden de las filas")
	}
}

func TestOnHand_SinFilas_EsCero(t *testing.T) {
	uc := inventory.NewStockUseCase(&ledgerFake{})
	out, err := uc.OnHand(context.Background(), "p1", "w1")
	require.NoError(t, err)
	assert.Zero(t, out.OnHand)
}

func TestOnHand_ValidaParametros(t *testing.T) {
	uc := inventory.NewStockUseCase(&ledgerFake{})

	_, err := uc.OnHand(context.Background(), "", "w1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.OnHand(context.Background(), "p1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOnHandBatch_ParesAusentesSonCero(t *testing.T) {
	ledger := &ledgerFake{txs: []*entity.InventoryTransaction{
		tx("p1", "w1", entity.TxTypeIncome, 8),
	}}
	uc := inventory.NewStockUseCase(ledger)

	out, err := uc.OnHandBatch(context.Background(), dto.OnHandBatchRequest{
		Pairs: []dto.StockPairRequest{
			{ProductID: "p1", WarehouseID: "w1"},
			{ProductID: "p1", WarehouseID: "w9"}, // sin movimientos
			{ProductID: "px", WarehouseID: "w1"}, // producto desconocido
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 3, "cada par pedido aparece en la respuesta")

	assert.Equal(t, int64(8), out[0].OnHand)
	assert.Zero(t, out[1].OnHand, "par sin filas debe reportar 0, no faltar")
	assert.Zero(t, out[2].OnHand)
}

func TestOnHandBatch_Validacion(t *testing.T) {
	uc := inventory.NewStockUseCase(&ledgerFake{})

	_, err := uc.OnHandBatch(context.Background(), dto.OnHandBatchRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.OnHandBatch(context.Background(), dto.OnHandBatchRequest{
		Pairs: []dto.StockPairRequest{{ProductID: "p1"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLowStock_CalculaDeficit(t *testing.T) {
	ledger := &ledgerFake{lowStock: []repository.LowStockItem{
		{ProductID: "p1", SKU: "CBL-01", ProductName: "Cable UTP", OnHand: 2, ReorderPoint: 10},
		{ProductID: "p2", SKU: "CNT-02", ProductName: "Conector", OnHand: 0, ReorderPoint: 5},
	}}
	uc := inventory.NewStockUseCase(ledger)

	out, err := uc.LowStock(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(8), out[0].Deficit)
	assert.Equal(t, int64(5), out[1].Deficit)
}

func TestListMovements_RequiereFiltro(t *testing.T) {
	uc := inventory.NewStockUseCase(&ledgerFake{})

	_, err := uc.ListMovements(context.Background(), repository.TransactionFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListMovements(context.Background(), repository.TransactionFilter{ProductID: "p1"})
	assert.NoError(t, err)
}
