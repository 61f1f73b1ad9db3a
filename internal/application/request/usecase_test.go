package request_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	apprequest "github.com/jhoicas/Compras-api/internal/application/request"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore guarda el estado; fakeTxRunner ejecuta el callback sobre un CLON
// del store y solo copia el clon de vuelta si el callback termina sin error.
// Así el test verifica la atomicidad igual que lo haría Commit/Rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	requests map[string]*entity.Request
	txs      []*entity.InventoryTransaction
	history  []*entity.RequestHistory
}

func newMemStore() *memStore {
	return &memStore{requests: map[string]*entity.Request{}}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, r := range s.requests {
		cp := *r
		c.requests[id] = &cp
	}
	for _, tx := range s.txs {
		cp := *tx
		c.txs = append(c.txs, &cp)
	}
	for _, h := range s.history {
		cp := *h
		c.history = append(c.history, &cp)
	}
	return c
}

// ── TransactionRepository fake ────────────────────────────────────────────────

type memTxRepo struct{ s *memStore }

func (r *memTxRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	cp := *tx
	r.s.txs = append(r.s.txs, &cp)
	return nil
}

func (r *memTxRepo) GetByID(_ context.Context, id string) (*entity.InventoryTransaction, error) {
	for _, tx := range r.s.txs {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTxRepo) ListByRequest(_ context.Context, requestID string) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range r.s.txs {
		if tx.RequestID != nil && *tx.RequestID == requestID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTxRepo) List(_ context.Context, _ repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	return nil, nil
}

func (r *memTxRepo) DeletePendingByRequest(_ context.Context, requestID string) error {
	kept := r.s.txs[:0]
	for _, tx := range r.s.txs {
		if tx.Type == entity.TxTypePending && tx.RequestID != nil && *tx.RequestID == requestID {
			continue
		}
		kept = append(kept, tx)
	}
	r.s.txs = kept
	return nil
}

func (r *memTxRepo) MarkPendingAsIncome(_ context.Context, requestID string, at time.Time) (int64, error) {
	var n int64
	for _, tx := range r.s.txs {
		if tx.Type == entity.TxTypePending && tx.RequestID != nil && *tx.RequestID == requestID {
			tx.Type = entity.TxTypeIncome
			t := at
			tx.UpdatedAt = &t
			n++
		}
	}
	return n, nil
}

func (r *memTxRepo) OnHand(_ context.Context, productID, warehouseID string) (int64, error) {
	var sum int64
	for _, tx := range r.s.txs {
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

func (r *memTxRepo) OnHandBatch(ctx context.Context, keys []repository.StockKey) (map[repository.StockKey]int64, error) {
	out := map[repository.StockKey]int64{}
	for _, k := range keys {
		n, _ := r.OnHand(ctx, k.ProductID, k.WarehouseID)
		if n != 0 {
			out[k] = n
		}
	}
	return out, nil
}

func (r *memTxRepo) BelowReorderPoint(_ context.Context, _ string) ([]repository.LowStockItem, error) {
	return nil, nil
}

// ── RequestRepository fake ────────────────────────────────────────────────────

type memRequestRepo struct{ s *memStore }

func (r *memRequestRepo) Create(_ context.Context, req *entity.Request) error {
	cp := *req
	r.s.requests[req.ID] = &cp
	return nil
}

func (r *memRequestRepo) GetByID(_ context.Context, id string) (*entity.Request, error) {
	req, ok := r.s.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *memRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Request, error) {
	return r.GetByID(ctx, id)
}

func (r *memRequestRepo) UpdateStatus(_ context.Context, id string, status entity.RequestStatus, approvedBy *string, at time.Time) error {
	req, ok := r.s.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	if approvedBy != nil {
		v := *approvedBy
		req.ApprovedBy = &v
	}
	t := at
	req.UpdatedAt = &t
	return nil
}

func (r *memRequestRepo) UpdateInfo(_ context.Context, id, title, description string, at time.Time) error {
	req, ok := r.s.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Title = title
	req.Description = description
	t := at
	req.UpdatedAt = &t
	return nil
}

func (r *memRequestRepo) List(_ context.Context, status *entity.RequestStatus, limit, offset int) ([]*entity.Request, error) {
	var all []*entity.Request
	for _, req := range r.s.requests {
		if status != nil && req.Status != *status {
			continue
		}
		cp := *req
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memRequestRepo) Count(_ context.Context, status *entity.RequestStatus) (int64, error) {
	var total int64
	for _, req := range r.s.requests {
		if status != nil && req.Status != *status {
			continue
		}
		total++
	}
	return total, nil
}

// ── RequestHistoryRepository fake ─────────────────────────────────────────────

type memHistoryRepo struct {
	s       *memStore
	failure error // si no es nil, Create falla (para probar rollback)
}

func (r *memHistoryRepo) Create(_ context.Context, h *entity.RequestHistory) error {
	if r.failure != nil {
		return r.failure
	}
	cp := *h
	r.s.history = append(r.s.history, &cp)
	return nil
}

func (r *memHistoryRepo) ListByRequest(_ context.Context, requestID string) ([]*entity.RequestHistory, error) {
	var out []*entity.RequestHistory
	for _, h := range r.s.history {
		if h.RequestID == requestID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── TxRunner fake (commit por intercambio de clon) ────────────────────────────

type fakeTxRunner struct {
	s              *memStore
	historyFailure error
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	requestRepo repository.RequestRepository,
	historyRepo repository.RequestHistoryRepository,
) error) error {
	clone := f.s.clone()
	err := fn(
		&memTxRepo{s: clone},
		&memRequestRepo{s: clone},
		&memHistoryRepo{s: clone, failure: f.historyFailure},
	)
	if err != nil {
		return err // rollback: el clon se descarta
	}
	*f.s = *clone
	return nil
}

// ── Catálogo y notifier fakes ─────────────────────────────────────────────────

type memCatalogRepo struct{ ids map[string]bool }

func (r *memCatalogRepo) has(id string) bool { return r.ids[id] }

type memProductRepo struct{ memCatalogRepo }

func (r *memProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (r *memProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (r *memProductRepo) List(context.Context, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if !r.has(id) {
		return nil, nil
	}
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id, Active: true}, nil
}

type memWarehouseRepo struct{ memCatalogRepo }

func (r *memWarehouseRepo) Create(context.Context, *entity.Warehouse) error { return nil }
func (r *memWarehouseRepo) Update(context.Context, *entity.Warehouse) error { return nil }
func (r *memWarehouseRepo) List(context.Context, int, int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if !r.has(id) {
		return nil, nil
	}
	return &entity.Warehouse{ID: id, Name: "Bodega " + id, Active: true}, nil
}

type memLocationRepo struct{ memCatalogRepo }

func (r *memLocationRepo) Create(context.Context, *entity.Location) error { return nil }
func (r *memLocationRepo) Update(context.Context, *entity.Location) error { return nil }
func (r *memLocationRepo) ListByWarehouse(context.Context, string, int, int) ([]*entity.Location, error) {
	return nil, nil
}
func (r *memLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	if !r.has(id) {
		return nil, nil
	}
	return &entity.Location{ID: id, Name: "Ubicación " + id, Active: true}, nil
}

type recordingNotifier struct {
	calls   int
	failure error
}

func (n *recordingNotifier) Notify(context.Context, string, string, string) error {
	n.calls++
	return n.failure
}

// ── Armado del caso de uso bajo prueba ────────────────────────────────────────

type fixture struct {
	store    *memStore
	runner   *fakeTxRunner
	notifier *recordingNotifier
	txRepo   *memTxRepo
	uc       *apprequest.UseCase
}

func newFixture() *fixture {
	store := newMemStore()
	runner := &fakeTxRunner{s: store}
	notifier := &recordingNotifier{}
	txRepo := &memTxRepo{s: store}

	uc := apprequest.NewUseCase(
		runner,
		&memRequestRepo{s: store},
		txRepo,
		&memHistoryRepo{s: store},
		&memProductRepo{memCatalogRepo{ids: map[string]bool{"p1": true, "p2": true}}},
		&memWarehouseRepo{memCatalogRepo{ids: map[string]bool{"w1": true}}},
		&memLocationRepo{memCatalogRepo{ids: map[string]bool{"l1": true}}},
		notifier,
	)
	return &fixture{store: store, runner: runner, notifier: notifier, txRepo: txRepo, uc: uc}
}

func twoItems() []dto.RequestItemInput {
	price := decimal.NewFromInt(2500)
	return []dto.RequestItemInput{
		{ProductID: "p1", WarehouseID: "w1", Quantity: 3, UnitPrice: &price},
		{ProductID: "p2", WarehouseID: "w1", Quantity: 5},
	}
}

func createDraft(t *testing.T, f *fixture) string {
	t.Helper()
	out, err := f.uc.Create(context.Background(), "user-1", dto.CreateRequestRequest{
		Title: "Reposición de cables",
		Items: twoItems(),
	})
	require.NoError(t, err)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DraftConLineasPendientes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.uc.Create(ctx, "user-1", dto.CreateRequestRequest{
		Title:       "Reposición de cables",
		Description: "cables UTP para la bodega central",
		Items:       twoItems(),
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusDraft), out.Status)
	assert.Equal(t, "user-1", out.CreatedBy)
	require.Len(t, out.Items, 2)
	for _, item := range out.Items {
		assert.Equal(t, entity.TxTypePending, item.Type)
	}

	// TotalPrice = UnitPrice × Quantity solo en la línea con precio.
	require.NotNil(t, out.Items[0].TotalPrice)
	assert.True(t, out.Items[0].TotalPrice.Equal(decimal.NewFromInt(7500)),
		"3 × 2500 = 7500, obtuvo %s", out.Items[0].TotalPrice)
	assert.Nil(t, out.Items[1].TotalPrice)

	// Historial inicial y notificación al creador.
	require.Len(t, f.store.history, 1)
	assert.Equal(t, "Solicitud creada", f.store.history[0].Comment)
	assert.Equal(t, 1, f.notifier.calls)

	// Las líneas PENDING no afectan el stock derivado.
	onHand, err := f.txRepo.OnHand(ctx, "p1", "w1")
	require.NoError(t, err)
	assert.Zero(t, onHand)
}

func TestCreate_ValidacionDeLineas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		in    dto.CreateRequestRequest
		field string
	}{
		{
			name:  "sin título",
			in:    dto.CreateRequestRequest{Items: twoItems()},
			field: "title",
		},
		{
			name:  "sin líneas",
			in:    dto.CreateRequestRequest{Title: "x"},
			field: "items",
		},
		{
			name: "cantidad cero",
			in: dto.CreateRequestRequest{Title: "x", Items: []dto.RequestItemInput{
				{ProductID: "p1", WarehouseID: "w1", Quantity: 0},
			}},
			field: "items[0].quantity",
		},
		{
			name: "producto inexistente",
			in: dto.CreateRequestRequest{Title: "x", Items: []dto.RequestItemInput{
				{ProductID: "nope", WarehouseID: "w1", Quantity: 1},
			}},
			field: "items[0].product_id",
		},
		{
			name: "bodega inexistente",
			in: dto.CreateRequestRequest{Title: "x", Items: []dto.RequestItemInput{
				{ProductID: "p1", WarehouseID: "nope", Quantity: 1},
			}},
			field: "items[0].warehouse_id",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, "user-1", c.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, c.field, verr.Field)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}

	// Nada quedó persistido.
	assert.Empty(t, f.store.requests)
	assert.Empty(t, f.store.txs)
}

func TestSubmit_DesdeDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	out, err := f.uc.Submit(ctx, id, "user-1", "listo para revisión")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusSubmitted), out.Status)

	// Creación + transición = 2 filas de historial.
	require.Len(t, f.store.history, 2)
	last := f.store.history[1]
	assert.Equal(t, entity.StatusDraft, last.OldStatus)
	assert.Equal(t, entity.StatusSubmitted, last.NewStatus)
	assert.Equal(t, "listo para revisión", last.Comment)
}

func TestSubmit_Repetido_NoDejaRastro(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	_, err := f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err)
	historyBefore := len(f.store.history)

	_, err = f.uc.Submit(ctx, id, "user-1", "")
	var terr *domain.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, string(entity.StatusSubmitted), terr.Current)

	// La transición fallida no escribe historial ni cambia el estado.
	assert.Len(t, f.store.history, historyBefore)
	assert.Equal(t, entity.StatusSubmitted, f.store.requests[id].Status)
}

func TestApprove_FijaApprovedBy(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	_, err := f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err)

	out, err := f.uc.Approve(ctx, id, "comprador-9", "presupuesto ok")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusApproved), out.Status)
	require.NotNil(t, out.ApprovedBy)
	assert.Equal(t, "comprador-9", *out.ApprovedBy)
}

func TestMarkItemsReceived_FlipeaPendientesYSubeStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	_, err := f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, id, "comprador-9", "")
	require.NoError(t, err)

	out, err := f.uc.MarkItemsReceived(ctx, id, "bodeguero-2", "llegó el pedido")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusItemsReceived), out.Status)

	// Todas las líneas quedaron como INCOME.
	for _, item := range out.Items {
		assert.Equal(t, entity.TxTypeIncome, item.Type)
	}

	// Ahora sí el stock derivado refleja las cantidades.
	onHand, err := f.txRepo.OnHand(ctx, "p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), onHand)
	onHand, err = f.txRepo.OnHand(ctx, "p2", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), onHand)
}

func TestUpdate_ReemplazaTodasLasLineas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	newPrice := decimal.NewFromInt(100)
	out, err := f.uc.Update(ctx, "user-1", id, dto.UpdateRequestRequest{
		Title: "Reposición ajustada",
		Items: []dto.RequestItemInput{
			{ProductID: "p1", WarehouseID: "w1", Quantity: 10, UnitPrice: &newPrice},
			{ProductID: "p2", WarehouseID: "w1", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Reposición ajustada", out.Title)
	// Las 2 líneas anteriores se borraron; quedan exactamente las 2 nuevas.
	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(10), out.Items[0].Quantity)
	assert.Len(t, f.store.txs, 2)
}

func TestUpdate_FueraDeDraft_Falla(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	_, err := f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, "user-1", id, dto.UpdateRequestRequest{
		Title: "demasiado tarde",
		Items: twoItems(),
	})
	var terr *domain.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "update", terr.Action)

	// Las líneas originales siguen intactas.
	assert.Len(t, f.store.txs, 2)
	assert.Equal(t, "Reposición de cables", f.store.requests[id].Title)
}

func TestAddItem_SegunEstado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	// En Draft se puede.
	loc := "l1"
	out, err := f.uc.AddItem(ctx, "user-1", id, dto.RequestItemInput{
		ProductID: "p1", WarehouseID: "w1", LocationID: &loc, Quantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TxTypePending, out.Type)
	assert.Len(t, f.store.txs, 3)

	// Tras recibir los ítems, ya no.
	_, err = f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, id, "comprador-9", "")
	require.NoError(t, err)
	_, err = f.uc.MarkItemsReceived(ctx, id, "bodeguero-2", "")
	require.NoError(t, err)

	_, err = f.uc.AddItem(ctx, "user-1", id, dto.RequestItemInput{
		ProductID: "p1", WarehouseID: "w1", Quantity: 1,
	})
	var terr *domain.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "add_item", terr.Action)
	assert.Len(t, f.store.txs, 3)
}

func TestCancel_EsTerminal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	out, err := f.uc.Cancel(ctx, id, "user-1", "ya no se necesita")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusCancelled), out.Status)

	// Desde un estado terminal ninguna acción procede.
	_, err = f.uc.Submit(ctx, id, "user-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.Cancel(ctx, id, "user-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReject_DesdeSubmitted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	_, err := f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err)

	out, err := f.uc.Reject(ctx, id, "comprador-9", "sin presupuesto")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusRejected), out.Status)
	assert.Nil(t, out.ApprovedBy, "reject no debe fijar approved_by")
}

func TestCreate_FalloEnHistorial_NoDejaNada(t *testing.T) {
	f := newFixture()
	f.runner.historyFailure = errors.New("disco lleno")

	_, err := f.uc.Create(context.Background(), "user-1", dto.CreateRequestRequest{
		Title: "no debería quedar",
		Items: twoItems(),
	})
	require.Error(t, err)

	// Rollback total: ni solicitud, ni líneas, ni historial, ni notificación.
	assert.Empty(t, f.store.requests)
	assert.Empty(t, f.store.txs)
	assert.Empty(t, f.store.history)
	assert.Zero(t, f.notifier.calls)
}

func TestMarkItemsReceived_FalloEnHistorial_NoConvierteNada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	_, err := f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, id, "comprador-9", "")
	require.NoError(t, err)
	historyBefore := len(f.store.history)
	notifiesBefore := f.notifier.calls

	f.runner.historyFailure = errors.New("disco lleno")
	_, err = f.uc.MarkItemsReceived(ctx, id, "bodeguero-2", "llegó el pedido")
	require.Error(t, err)

	// Rollback total: ninguna línea se convirtió, el historial y el estado
	// quedaron como antes y no se notificó a nadie.
	for _, tx := range f.store.txs {
		assert.Equal(t, entity.TxTypePending, tx.Type)
	}
	assert.Len(t, f.store.history, historyBefore)
	assert.Equal(t, entity.StatusApproved, f.store.requests[id].Status)
	assert.Equal(t, notifiesBefore, f.notifier.calls)

	// El stock derivado tampoco se movió.
	onHand, err := f.txRepo.OnHand(ctx, "p1", "w1")
	require.NoError(t, err)
	assert.Zero(t, onHand)
}

func TestList_TotalEsConteoGlobal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		createDraft(t, f)
	}
	id := createDraft(t, f)
	_, err := f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err)

	// Total cuenta todas las filas que cumplen el filtro, no la página.
	out, err := f.uc.List(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Total)
	assert.Len(t, out.Requests, 2)

	out, err = f.uc.List(ctx, string(entity.StatusDraft), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Len(t, out.Requests, 1)
}

func TestNotify_FalloNoAfectaLaTransicion(t *testing.T) {
	f := newFixture()
	f.notifier.failure = errors.New("smtp caído")
	ctx := context.Background()

	id := createDraft(t, f)
	out, err := f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err, "el fallo del notifier no debe propagar")
	assert.Equal(t, string(entity.StatusSubmitted), out.Status)
	assert.Equal(t, 2, f.notifier.calls, "se intentó notificar en create y submit")
}

func TestGetByID_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.uc.GetByID(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistory_OrdenDeTransiciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := createDraft(t, f)

	_, err := f.uc.Submit(ctx, id, "user-1", "")
	require.NoError(t, err)
	_, err = f.uc.Approve(ctx, id, "comprador-9", "")
	require.NoError(t, err)

	history, err := f.uc.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, string(entity.StatusDraft), history[0].NewStatus)
	assert.Equal(t, string(entity.StatusSubmitted), history[1].NewStatus)
	assert.Equal(t, string(entity.StatusApproved), history[2].NewStatus)
}
