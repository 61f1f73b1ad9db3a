package request

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/internal/domain/workflow"
)

// UseCase orquesta el ciclo de vida de las solicitudes de compra: creación
// con líneas, reemplazo de líneas, alta de líneas y todas las transiciones
// de estado. Cada operación multi-fila corre dentro de TxRunner.Run
// (Commit/Rollback); la notificación al creador se emite después del commit.
type UseCase struct {
	txRunner      TxRunner
	requestRepo   repository.RequestRepository
	txRepo        repository.TransactionRepository
	historyRepo   repository.RequestHistoryRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
	notifier      Notifier
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	requestRepo repository.RequestRepository,
	txRepo repository.TransactionRepository,
	historyRepo repository.RequestHistoryRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	locationRepo repository.LocationRepository,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		requestRepo:   requestRepo,
		txRepo:        txRepo,
		historyRepo:   historyRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		notifier:      notifier,
	}
}

// Create crea una solicitud en Draft con al menos una línea. Cada línea se
// valida (producto/bodega/ubicación existen, cantidad > 0) y se materializa
// como transacción PENDING; todo dentro de una sola transacción de BD,
// junto con el registro inicial del historial.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	if in.Title == "" {
		return nil, domain.NewValidationError("title", "es requerido")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "la solicitud requiere al menos una línea")
	}
	if err := uc.validateItems(ctx, in.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	req := &entity.Request{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Status:      entity.StatusDraft,
		CreatedBy:   actorID,
		CreatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		requestRepo repository.RequestRepository,
		historyRepo repository.RequestHistoryRepository,
	) error {
		if err := requestRepo.Create(ctx, req); err != nil {
			return err
		}
		for _, item := range in.Items {
			if err := txRepo.Create(ctx, buildPendingTx(req.ID, actorID, item, now)); err != nil {
				return err
			}
		}
		return historyRepo.Create(ctx, &entity.RequestHistory{
			ID:        uuid.New().String(),
			RequestID: req.ID,
			OldStatus: entity.StatusDraft,
			NewStatus: entity.StatusDraft,
			Comment:   "Solicitud creada",
			ChangedBy: actorID,
			ChangedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, req, "Solicitud creada", fmt.Sprintf("La solicitud %q fue creada con %d líneas", req.Title, len(in.Items)))

	return uc.GetByID(ctx, req.ID)
}

// Update reemplaza título, descripción y TODAS las líneas PENDING de una
// solicitud en Draft (se borran las existentes y se insertan las nuevas,
// atómicamente). Desde cualquier otro estado falla con error de transición.
func (uc *UseCase) Update(ctx context.Context, actorID, requestID string, in dto.UpdateRequestRequest) (*dto.RequestResponse, error) {
	if in.Title == "" {
		return nil, domain.NewValidationError("title", "es requerido")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "la solicitud requiere al menos una línea")
	}
	if err := uc.validateItems(ctx, in.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		requestRepo repository.RequestRepository,
		historyRepo repository.RequestHistoryRepository,
	) error {
		req, err := requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.StatusDraft {
			return &domain.TransitionError{Current: string(req.Status), Action: "update"}
		}
		if err := requestRepo.UpdateInfo(ctx, requestID, in.Title, in.Description, now); err != nil {
			return err
		}
		if err := txRepo.DeletePendingByRequest(ctx, requestID); err != nil {
			return err
		}
		for _, item := range in.Items {
			if err := txRepo.Create(ctx, buildPendingTx(requestID, actorID, item, now)); err != nil {
				return err
			}
		}
		return historyRepo.Create(ctx, &entity.RequestHistory{
			ID:        uuid.New().String(),
			RequestID: requestID,
			OldStatus: entity.StatusDraft,
			NewStatus: entity.StatusDraft,
			Comment:   "Solicitud actualizada",
			ChangedBy: actorID,
			ChangedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, requestID)
}

// AddItem agrega una línea PENDING a una solicitud en Draft, Submitted,
// Approved o InProgress. No cambia el estado de la solicitud.
func (uc *UseCase) AddItem(ctx context.Context, actorID, requestID string, in dto.RequestItemInput) (*dto.TransactionResponse, error) {
	if err := uc.validateItems(ctx, []dto.RequestItemInput{in}); err != nil {
		return nil, err
	}

	now := time.Now()
	tx := buildPendingTx(requestID, actorID, in, now)

	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		requestRepo repository.RequestRepository,
		_ repository.RequestHistoryRepository,
	) error {
		req, err := requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !workflow.CanModifyItems(req.Status) {
			return &domain.TransitionError{Current: string(req.Status), Action: "add_item"}
		}
		return txRepo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	out := toTransactionResponse(tx)
	return &out, nil
}

// Submit pasa la solicitud de Draft a Submitted.
func (uc *UseCase) Submit(ctx context.Context, requestID, actorID, comment string) (*dto.RequestResponse, error) {
	return uc.transition(ctx, requestID, actorID, comment, workflow.ActionSubmit, nil)
}

// Approve pasa la solicitud de Submitted a Approved y fija ApprovedBy.
func (uc *UseCase) Approve(ctx context.Context, requestID, actorID, comment string) (*dto.RequestResponse, error) {
	return uc.transition(ctx, requestID, actorID, comment, workflow.ActionApprove, nil)
}

// MarkItemsReceived convierte todas las líneas PENDING de la solicitud en
// INCOME (aquí es donde sube el stock derivado) y registra el historial,
// todo o nada dentro de la misma transacción.
func (uc *UseCase) MarkItemsReceived(ctx context.Context, requestID, actorID, comment string) (*dto.RequestResponse, error) {
	return uc.transition(ctx, requestID, actorID, comment, workflow.ActionReceive,
		func(ctx context.Context, txRepo repository.TransactionRepository, now time.Time) error {
			flipped, err := txRepo.MarkPendingAsIncome(ctx, requestID, now)
			if err != nil {
				return err
			}
			log.Debug().Str("request_id", requestID).Int64("flipped", flipped).Msg("líneas pendientes convertidas a ingreso")
			return nil
		})
}

// MarkItemsInstalled pasa la solicitud a ItemsInstalled (sin efecto en el ledger).
func (uc *UseCase) MarkItemsInstalled(ctx context.Context, requestID, actorID, comment string) (*dto.RequestResponse, error) {
	return uc.transition(ctx, requestID, actorID, comment, workflow.ActionInstall, nil)
}

// Complete cierra la solicitud como exitosa (estado terminal).
func (uc *UseCase) Complete(ctx context.Context, requestID, actorID, comment string) (*dto.RequestResponse, error) {
	return uc.transition(ctx, requestID, actorID, comment, workflow.ActionComplete, nil)
}

// Cancel aborta la solicitud (estado terminal).
func (uc *UseCase) Cancel(ctx context.Context, requestID, actorID, comment string) (*dto.RequestResponse, error) {
	return uc.transition(ctx, requestID, actorID, comment, workflow.ActionCancel, nil)
}

// Reject rechaza una solicitud Submitted (estado terminal).
func (uc *UseCase) Reject(ctx context.Context, requestID, actorID, comment string) (*dto.RequestResponse, error) {
	return uc.transition(ctx, requestID, actorID, comment, workflow.ActionReject, nil)
}

// GetByID devuelve la solicitud con sus líneas. (nil, ErrNotFound) si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.RequestResponse, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.txRepo.ListByRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toRequestResponse(req)
	out.Items = make([]dto.TransactionResponse, 0, len(items))
	for _, item := range items {
		out.Items = append(out.Items, toTransactionResponse(item))
	}
	return out, nil
}

// List lista solicitudes con filtro opcional de estado y paginación.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) (*dto.RequestListResponse, error) {
	var st *entity.RequestStatus
	if status != "" {
		s := entity.RequestStatus(status)
		st = &s
	}
	list, err := uc.requestRepo.List(ctx, st, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.requestRepo.Count(ctx, st)
	if err != nil {
		return nil, err
	}
	out := &dto.RequestListResponse{
		Total:    total,
		Requests: make([]dto.RequestResponse, 0, len(list)),
	}
	for _, req := range list {
		out.Requests = append(out.Requests, *toRequestResponse(req))
	}
	return out, nil
}

// History devuelve el historial de transiciones de una solicitud.
func (uc *UseCase) History(ctx context.Context, requestID string) ([]dto.RequestHistoryResponse, error) {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.historyRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequestHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.RequestHistoryResponse{
			ID:        h.ID,
			RequestID: h.RequestID,
			OldStatus: string(h.OldStatus),
			NewStatus: string(h.NewStatus),
			Comment:   h.Comment,
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
		})
	}
	return out, nil
}

// transition aplica una acción del workflow: bloquea la fila de la solicitud,
// consulta la tabla central de transiciones, ejecuta el efecto sobre el
// ledger (si lo hay), actualiza el estado y registra el historial — todo en
// una sola transacción de BD. Tras el commit notifica al creador (best-effort).
func (uc *UseCase) transition(
	ctx context.Context,
	requestID, actorID, comment string,
	action workflow.Action,
	effect func(ctx context.Context, txRepo repository.TransactionRepository, now time.Time) error,
) (*dto.RequestResponse, error) {
	now := time.Now()
	var old, next entity.RequestStatus
	var creator string

	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		requestRepo repository.RequestRepository,
		historyRepo repository.RequestHistoryRepository,
	) error {
		req, err := requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		old = req.Status
		creator = req.CreatedBy

		next, err = workflow.Next(req.Status, action)
		if err != nil {
			return err
		}

		if effect != nil {
			if err := effect(ctx, txRepo, now); err != nil {
				return err
			}
		}

		var approvedBy *string
		if action == workflow.ActionApprove {
			approvedBy = &actorID
		}
		if err := requestRepo.UpdateStatus(ctx, requestID, next, approvedBy, now); err != nil {
			return err
		}
		return historyRepo.Create(ctx, &entity.RequestHistory{
			ID:        uuid.New().String(),
			RequestID: requestID,
			OldStatus: old,
			NewStatus: next,
			Comment:   comment,
			ChangedBy: actorID,
			ChangedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, &entity.Request{ID: requestID, CreatedBy: creator},
		"Solicitud actualizada",
		fmt.Sprintf("La solicitud pasó de %s a %s", old, next))

	return uc.GetByID(ctx, requestID)
}

// notify envía la notificación al creador. Best-effort: un fallo se registra
// en el log y se descarta, nunca afecta la transición ya confirmada.
func (uc *UseCase) notify(ctx context.Context, req *entity.Request, title, message string) {
	if uc.notifier == nil || req.CreatedBy == "" {
		return
	}
	if err := uc.notifier.Notify(ctx, req.CreatedBy, title, message); err != nil {
		log.Warn().Err(err).
			Str("request_id", req.ID).
			Str("user_id", req.CreatedBy).
			Msg("no se pudo notificar al creador de la solicitud")
	}
}

// validateItems valida cada línea: cantidad positiva y existencia de
// producto, bodega y (si viene) ubicación. Retorna ValidationError con el
// campo y el id ofensivo.
func (uc *UseCase) validateItems(ctx context.Context, items []dto.RequestItemInput) error {
	for i, item := range items {
		if item.Quantity <= 0 {
			return domain.NewValidationError(
				fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
		if item.UnitPrice != nil && item.UnitPrice.LessThan(decimal.Zero) {
			return domain.NewValidationError(
				fmt.Sprintf("items[%d].unit_price", i), "no puede ser negativo")
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewValidationError(
				fmt.Sprintf("items[%d].product_id", i),
				fmt.Sprintf("producto %s no existe", item.ProductID))
		}
		warehouse, err := uc.warehouseRepo.GetByID(ctx, item.WarehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.NewValidationError(
				fmt.Sprintf("items[%d].warehouse_id", i),
				fmt.Sprintf("bodega %s no existe", item.WarehouseID))
		}
		if item.LocationID != nil {
			location, err := uc.locationRepo.GetByID(ctx, *item.LocationID)
			if err != nil {
				return err
			}
			if location == nil {
				return domain.NewValidationError(
					fmt.Sprintf("items[%d].location_id", i),
					fmt.Sprintf("ubicación %s no existe", *item.LocationID))
			}
		}
	}
	return nil
}

// buildPendingTx materializa una línea como transacción PENDING del ledger.
// TotalPrice = UnitPrice × Quantity solo cuando hay precio unitario.
func buildPendingTx(requestID, actorID string, item dto.RequestItemInput, now time.Time) *entity.InventoryTransaction {
	var totalPrice *decimal.Decimal
	if item.UnitPrice != nil {
		t := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		totalPrice = &t
	}
	reqID := requestID
	return &entity.InventoryTransaction{
		ID:          uuid.New().String(),
		ProductID:   item.ProductID,
		WarehouseID: item.WarehouseID,
		LocationID:  item.LocationID,
		Type:        entity.TxTypePending,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  totalPrice,
		Date:        now,
		UserID:      actorID,
		Description: item.Description,
		RequestID:   &reqID,
		CreatedAt:   now,
	}
}

func toRequestResponse(req *entity.Request) *dto.RequestResponse {
	return &dto.RequestResponse{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      string(req.Status),
		CreatedBy:   req.CreatedBy,
		ApprovedBy:  req.ApprovedBy,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}

func toTransactionResponse(tx *entity.InventoryTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
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
	}
}
