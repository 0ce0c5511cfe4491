package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/ledger"
	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

// QueryUseCase vistas derivadas del libro: stock, vencidos, por llegar y
// listado de movimientos. Cada consulta pliega los eventos al momento de la
// llamada; ningún saldo se lee de un contador persistido.
type QueryUseCase struct {
	eventRepo repository.MovementEventRepository
	itemRepo  repository.ItemRepository
	jobRepo   repository.JobRepository
	now       Clock
}

// NewQueryUseCase construye el caso de uso. clock nil usa time.Now.
func NewQueryUseCase(
	eventRepo repository.MovementEventRepository,
	itemRepo repository.ItemRepository,
	jobRepo repository.JobRepository,
	clock Clock,
) *QueryUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &QueryUseCase{eventRepo: eventRepo, itemRepo: itemRepo, jobRepo: jobRepo, now: clock}
}

// GetStock vista de saldos por ítem de la empresa. Con code no vacío devuelve
// solo ese ítem.
func (uc *QueryUseCase) GetStock(companyID, code string) (*dto.StockListResponse, error) {
	now := uc.now()
	events, snap, err := uc.loadLedger(companyID, now)
	if err != nil {
		return nil, err
	}

	balances := ledger.AggregateStock(events, snap)
	rows := make([]dto.StockRowDTO, 0, len(balances))
	for _, bal := range balances {
		if code != "" && bal.Code != code {
			continue
		}
		row := dto.StockRowDTO{
			Code:         bal.Code,
			Name:         snap.ItemName(bal.Code),
			Available:    bal.Available,
			CheckedOut:   bal.CheckedOut,
			Reserved:     decimal.Max(decimal.Zero, bal.ReserveQty),
			OnHand:       bal.OnHand,
			LowStock:     bal.LowStock,
			LastLocation: bal.LastLocation,
		}
		if it := snap.Item(bal.Code); it != nil {
			row.Category = it.Category
		}
		if !bal.LastMoveTS.IsZero() {
			ts := bal.LastMoveTS
			row.LastMoveTS = &ts
		}
		for jobID, usage := range bal.Jobs {
			row.Jobs = append(row.Jobs, dto.JobUsageDTO{JobID: jobID, Out: usage.Out, Reserved: usage.Reserved})
		}
		sort.Slice(row.Jobs, func(i, j int) bool { return row.Jobs[i].JobID < row.Jobs[j].JobID })
		rows = append(rows, row)
	}
	return &dto.StockListResponse{Items: rows, AsOf: now}, nil
}

// GetOverdue préstamos con fecha comprometida vencida, el más atrasado primero.
func (uc *QueryUseCase) GetOverdue(companyID string) (*dto.OverdueListResponse, error) {
	now := uc.now()
	events, snap, err := uc.loadLedger(companyID, now)
	if err != nil {
		return nil, err
	}

	overdue := ledger.BuildOverdueRows(events, now)
	rows := make([]dto.OverdueRowDTO, 0, len(overdue))
	for _, o := range overdue {
		rows = append(rows, dto.OverdueRowDTO{
			Code:        o.Code,
			Name:        snap.ItemName(o.Code),
			JobID:       o.JobID,
			Outstanding: o.Outstanding,
			DueDate:     o.MinDue,
			DaysLate:    o.DaysLate,
			LastOutTS:   o.LastOutTS,
		})
	}
	return &dto.OverdueListResponse{Items: rows, AsOf: now}, nil
}

// GetIncoming órdenes con saldo pendiente de recibir, por urgencia de ETA.
func (uc *QueryUseCase) GetIncoming(companyID string) (*dto.IncomingListResponse, error) {
	now := uc.now()
	events, snap, err := uc.loadLedger(companyID, now)
	if err != nil {
		return nil, err
	}

	incoming := ledger.BuildIncomingRows(events, now)
	rows := make([]dto.IncomingRowDTO, 0, len(incoming))
	for _, in := range incoming {
		rows = append(rows, dto.IncomingRowDTO{
			SourceID:    in.SourceID,
			Code:        in.Code,
			Name:        snap.ItemName(in.Code),
			JobID:       in.JobID,
			Ordered:     in.Ordered,
			CheckedIn:   in.CheckedIn,
			InferredQty: in.InferredQty,
			OpenQty:     in.OpenQty,
			ETA:         in.ETA,
			Late:        in.Late,
		})
	}
	return &dto.IncomingListResponse{Items: rows, AsOf: now}, nil
}

// ListMovements listado paginado con filtros de código, obra, tipo y rango.
func (uc *QueryUseCase) ListMovements(companyID string, in dto.ListMovementsRequest) (*dto.MovementListResponse, error) {
	if in.Limit <= 0 {
		in.Limit = 50
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	filter := repository.EventFilter{
		Code:   in.Code,
		JobID:  ledger.NormalizeJobID(in.JobID),
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.Type != "" {
		filter.Types = []string{in.Type}
	}
	if from, ok := ledger.ParseWhen(in.From); ok {
		filter.From = &from
	}
	if to, ok := ledger.ParseWhen(in.To); ok {
		filter.To = &to
	}

	events, err := uc.eventRepo.ListByCompany(companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.eventRepo.CountByCompany(companyID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementEventResponse, 0, len(events))
	for _, ev := range events {
		items = append(items, EventToResponse(ev))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: int(total)},
	}, nil
}

// loadLedger trae eventos, catálogo y obras de la empresa y congela el
// contexto de reconciliación.
func (uc *QueryUseCase) loadLedger(companyID string, now time.Time) ([]*entity.MovementEvent, *ledger.Snapshot, error) {
	events, err := uc.eventRepo.ListByCompany(companyID, repository.EventFilter{})
	if err != nil {
		return nil, nil, err
	}
	items, err := uc.itemRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, nil, err
	}
	jobs, err := uc.jobRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, nil, err
	}
	return events, ledger.NewSnapshot(now, items, jobs), nil
}

// EventToResponse mapea un evento del libro a su DTO de respuesta.
func EventToResponse(ev *entity.MovementEvent) dto.MovementEventResponse {
	return dto.MovementEventResponse{
		ID:         ev.ID,
		CompanyID:  ev.CompanyID,
		Code:       ev.Code,
		Type:       ev.Type,
		Qty:        ev.Qty,
		JobID:      ev.JobID,
		TS:         ev.TS,
		ReturnDate: ev.ReturnDate,
		ETA:        ev.ETA,
		SourceID:   ev.SourceID,
		Status:     ev.Status,
		Reason:     ev.Reason,
		Location:   ev.Location,
		Notes:      ev.Notes,
		UserEmail:  ev.UserEmail,
		CreatedAt:  ev.CreatedAt,
	}
}
