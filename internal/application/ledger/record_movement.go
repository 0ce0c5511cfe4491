package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	"github.com/jhoicas/FlotaStock-api/internal/domain"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/ledger"
	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

// RegisterMovementUseCase registra eventos del libro de forma transaccional.
// Los guards de cobertura (disponible, pendiente, reservado, en-bodega) se
// evalúan releyendo el libro dentro de la misma transacción del append.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	now      Clock
}

// NewRegisterMovementUseCase construye el caso de uso. clock nil usa time.Now.
func NewRegisterMovementUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, clock Clock) *RegisterMovementUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &RegisterMovementUseCase{txRunner: txRunner, itemRepo: itemRepo, now: clock}
}

// MovementInput entrada interna ya tipada para registrar un movimiento.
type MovementInput struct {
	CompanyID  string
	UserEmail  string
	Code       string
	Type       string
	Qty        decimal.Decimal
	JobID      string
	TS         time.Time
	ReturnDate *time.Time
	ETA        *time.Time
	SourceID   string
	Status     string
	Reason     string
	Location   string
	Notes      string
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
// Las fechas de texto se interpretan con el parser flexible del libro; una
// fecha ilegible se descarta en silencio (queda ausente, nunca un error 500).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(
	ctx context.Context,
	companyID, userEmail string,
	in dto.RegisterMovementRequest,
) (*entity.MovementEvent, error) {
	input := MovementInput{
		CompanyID: companyID,
		UserEmail: userEmail,
		Code:      in.Code,
		Type:      in.Type,
		Qty:       in.Qty,
		JobID:     in.JobID,
		SourceID:  in.SourceID,
		Status:    in.Status,
		Reason:    in.Reason,
		Location:  in.Location,
		Notes:     in.Notes,
	}
	if ts, ok := ledger.ParseWhen(in.TS); ok {
		input.TS = ts
	}
	if due, ok := ledger.ParseWhen(in.ReturnDate); ok {
		input.ReturnDate = &due
	}
	if eta, ok := ledger.ParseWhen(in.ETA); ok {
		input.ETA = &eta
	}
	return uc.RegisterMovement(ctx, input)
}

// RegisterMovement valida la entrada, verifica cobertura dentro de una
// transacción y agrega el evento al libro. El evento creado es definitivo:
// no existe edición ni borrado individual posterior.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.MovementEvent, error) {
	if input.Code == "" || !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if !input.Qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	// El ítem debe existir en el catálogo de la empresa.
	item, err := uc.itemRepo.GetByCompanyAndCode(input.CompanyID, input.Code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	jobID := ledger.NormalizeJobID(input.JobID)
	ts := input.TS
	if ts.IsZero() {
		ts = now
	}

	event := &entity.MovementEvent{
		ID:         uuid.New().String(),
		CompanyID:  input.CompanyID,
		Code:       input.Code,
		Type:       input.Type,
		Qty:        input.Qty,
		JobID:      jobID,
		TS:         ts,
		ReturnDate: input.ReturnDate,
		ETA:        input.ETA,
		SourceID:   input.SourceID,
		Status:     input.Status,
		Reason:     input.Reason,
		Location:   input.Location,
		Notes:      input.Notes,
		UserEmail:  input.UserEmail,
		CreatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(eventRepo repository.MovementEventRepository) error {
		history, err := eventRepo.ListByCode(input.CompanyID, input.Code)
		if err != nil {
			return err
		}
		if err := uc.checkCoverage(event, history, now); err != nil {
			return err
		}
		return eventRepo.Create(event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// BulkClear elimina todos los eventos de un tipo para la empresa. Es la
// única vía de borrado del libro y está reservada al rol admin en la capa
// HTTP. Devuelve cuántos eventos se eliminaron.
func (uc *RegisterMovementUseCase) BulkClear(ctx context.Context, companyID, movementType string) (int64, error) {
	if !entity.ValidMovementType(movementType) {
		return 0, domain.ErrInvalidInput
	}
	var deleted int64
	err := uc.txRunner.Run(ctx, func(eventRepo repository.MovementEventRepository) error {
		n, err := eventRepo.DeleteByType(companyID, movementType)
		deleted = n
		return err
	})
	return deleted, err
}

// checkCoverage guards de cobertura por tipo, contra el libro releído en tx.
// Entradas y órdenes nunca se rechazan por saldo.
func (uc *RegisterMovementUseCase) checkCoverage(event *entity.MovementEvent, history []*entity.MovementEvent, now time.Time) error {
	switch event.Type {
	case entity.MovementTypeIn, entity.MovementTypeOrdered:
		return nil

	case entity.MovementTypeOut, entity.MovementTypeReserve:
		if event.Qty.GreaterThan(uc.available(event, history, now)) {
			return domain.ErrInsufficientStock
		}

	case entity.MovementTypeConsume:
		if event.Qty.GreaterThan(uc.onHand(event, history, now)) {
			return domain.ErrInsufficientStock
		}

	case entity.MovementTypeReturn:
		// La devolución valida contra el pendiente crudo del par (código,
		// obra): una devolución jamás deja el pendiente en negativo.
		outstanding := ledger.OutstandingFor(history, event.Code, event.JobID)
		if event.Qty.GreaterThan(outstanding) {
			return domain.ErrReturnExceedsOutstanding
		}

	case entity.MovementTypeReserveRelease:
		reserved := ledger.ReservedFor(history, event.Code, event.JobID)
		if event.Qty.GreaterThan(reserved) {
			return domain.ErrReserveExceedsReserved
		}
	}
	return nil
}

func (uc *RegisterMovementUseCase) available(event *entity.MovementEvent, history []*entity.MovementEvent, now time.Time) decimal.Decimal {
	balances := ledger.AggregateStockMap(history, ledger.NewSnapshot(now, nil, nil))
	if bal := balances[event.Code]; bal != nil {
		return bal.Available
	}
	return decimal.Zero
}

func (uc *RegisterMovementUseCase) onHand(event *entity.MovementEvent, history []*entity.MovementEvent, now time.Time) decimal.Decimal {
	balances := ledger.AggregateStockMap(history, ledger.NewSnapshot(now, nil, nil))
	if bal := balances[event.Code]; bal != nil {
		return bal.OnHand
	}
	return decimal.Zero
}
