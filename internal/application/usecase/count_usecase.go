package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	"github.com/jhoicas/FlotaStock-api/internal/domain"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/ledger"
	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

// CountUseCase registra conteos físicos y los lista. Un conteo es una
// observación puntual: nunca modifica el libro de eventos, solo alimenta las
// métricas de exactitud.
type CountUseCase struct {
	countRepo repository.CountSnapshotRepository
	itemRepo  repository.ItemRepository
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(countRepo repository.CountSnapshotRepository, itemRepo repository.ItemRepository) *CountUseCase {
	return &CountUseCase{countRepo: countRepo, itemRepo: itemRepo}
}

// Create registra un conteo físico de un ítem del catálogo. Un conteo en
// cero es válido (estante vacío); una cantidad negativa no.
func (uc *CountUseCase) Create(companyID, userEmail string, in dto.CreateCountRequest) (*dto.CountResponse, error) {
	if in.Code == "" || in.CountedQty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByCompanyAndCode(companyID, in.Code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	countedAt := now
	if ts, ok := ledger.ParseWhen(in.CountedAt); ok {
		countedAt = ts
	}
	count := &entity.CountSnapshot{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Code:       in.Code,
		CountedQty: in.CountedQty,
		CountedAt:  countedAt,
		UserEmail:  userEmail,
		CreatedAt:  now,
	}
	if err := uc.countRepo.Create(count); err != nil {
		return nil, err
	}
	return entityToCountResponse(count), nil
}

// List lista conteos de la empresa, opcionalmente de un solo código.
func (uc *CountUseCase) List(companyID, code string, limit, offset int) (*dto.CountListResponse, error) {
	var (
		list []*entity.CountSnapshot
		err  error
	)
	if code != "" {
		list, err = uc.countRepo.ListByCode(companyID, code, limit, offset)
	} else {
		list, err = uc.countRepo.ListByCompany(companyID, nil, nil, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.CountResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCountResponse(c))
	}
	return &dto.CountListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToCountResponse(c *entity.CountSnapshot) *dto.CountResponse {
	if c == nil {
		return nil
	}
	return &dto.CountResponse{
		ID:         c.ID,
		CompanyID:  c.CompanyID,
		Code:       c.Code,
		CountedQty: c.CountedQty,
		CountedAt:  c.CountedAt,
		UserEmail:  c.UserEmail,
		CreatedAt:  c.CreatedAt,
	}
}
