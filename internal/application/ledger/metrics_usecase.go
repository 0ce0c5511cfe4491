package ledger

import (
	"fmt"
	"time"

	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/ledger"
	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

// MetricsUseCase arma el tablero de KPIs operativos de la empresa.
//
// Fuente de datos: eventos, conteos físicos y catálogo; el cálculo completo
// es el motor puro del dominio (ComputeMetrics), así que este caso de uso
// solo carga insumos y traduce el resultado a DTO.
type MetricsUseCase struct {
	eventRepo repository.MovementEventRepository
	countRepo repository.CountSnapshotRepository
	itemRepo  repository.ItemRepository
	now       Clock

	windowDays int
}

// NewMetricsUseCase construye el caso de uso. windowDays <= 0 usa el default
// del motor (30 días); clock nil usa time.Now.
func NewMetricsUseCase(
	eventRepo repository.MovementEventRepository,
	countRepo repository.CountSnapshotRepository,
	itemRepo repository.ItemRepository,
	clock Clock,
	windowDays int,
) *MetricsUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &MetricsUseCase{
		eventRepo:  eventRepo,
		countRepo:  countRepo,
		itemRepo:   itemRepo,
		now:        clock,
		windowDays: windowDays,
	}
}

// GetMetrics calcula el tablero para la empresa indicada. windowDays > 0
// sobreescribe la ventana configurada para esta llamada.
//
// Tres cargas en paralelo:
//  1. eventos del libro
//  2. conteos físicos
//  3. catálogo de ítems
func (uc *MetricsUseCase) GetMetrics(companyID string, windowDays int) (*dto.MetricsResponse, error) {
	now := uc.now()
	if windowDays <= 0 {
		windowDays = uc.windowDays
	}

	type eventsResult struct {
		events []*entity.MovementEvent
		err    error
	}
	type countsResult struct {
		counts []*entity.CountSnapshot
		err    error
	}
	type itemsResult struct {
		items []*entity.Item
		err   error
	}

	eventsCh := make(chan eventsResult, 1)
	countsCh := make(chan countsResult, 1)
	itemsCh := make(chan itemsResult, 1)

	go func() {
		events, err := uc.eventRepo.ListByCompany(companyID, repository.EventFilter{})
		eventsCh <- eventsResult{events, err}
	}()
	go func() {
		counts, err := uc.countRepo.ListByCompany(companyID, nil, nil, 0, 0)
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		items, err := uc.itemRepo.ListByCompany(companyID, 0, 0)
		itemsCh <- itemsResult{items, err}
	}()

	events := <-eventsCh
	counts := <-countsCh
	items := <-itemsCh

	if events.err != nil {
		return nil, fmt.Errorf("métricas: eventos: %w", events.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("métricas: conteos: %w", counts.err)
	}
	if items.err != nil {
		return nil, fmt.Errorf("métricas: catálogo: %w", items.err)
	}

	m := ledger.ComputeMetrics(events.events, counts.counts, items.items, now, windowDays)

	slow := make([]dto.SlowMoverDTO, 0, len(m.SlowMovers))
	for _, s := range m.SlowMovers {
		slow = append(slow, dto.SlowMoverDTO{
			Code:      s.Code,
			Name:      s.Name,
			Moves:     s.Moves,
			Available: s.Available,
		})
	}

	return &dto.MetricsResponse{
		WindowDays:       m.WindowDays,
		AsOf:             m.AsOf,
		Accuracy:         m.Accuracy,
		DiscrepancyValue: m.DiscrepancyValue,
		AdjustmentRate:   m.AdjustmentRate,
		InventoryValue:   m.InventoryValue,
		ValueTrend7d:     m.ValueTrend7d,
		Turnover:         m.Turnover,
		DaysOnHand:       m.DaysOnHand,
		FillRate:         m.FillRate,
		OnTimeRate:       m.OnTimeRate,
		SlowMovers:       slow,
		Concentration80:  m.Concentration80,
	}, nil
}
