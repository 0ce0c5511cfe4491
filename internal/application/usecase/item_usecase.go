package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FlotaStock-api/internal/application/dto"
	"github.com/jhoicas/FlotaStock-api/internal/domain"
	"github.com/jhoicas/FlotaStock-api/internal/domain/entity"
	"github.com/jhoicas/FlotaStock-api/internal/domain/repository"
)

// ItemUseCase aplica reglas de negocio para el catálogo de ítems.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso con el puerto de persistencia.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un ítem. Devuelve domain.ErrDuplicate si el código ya existe
// en la empresa.
func (uc *ItemUseCase) Create(companyID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndCode(companyID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Code:          in.Code,
		Name:          in.Name,
		Category:      in.Category,
		UnitPrice:     in.UnitPrice,
		MinStock:      in.MinStock,
		LowStockAlert: in.LowStockAlert,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return entityToItemResponse(item), nil
}

// GetByCode obtiene un ítem por código dentro de la empresa.
func (uc *ItemUseCase) GetByCode(companyID, code string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByCompanyAndCode(companyID, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return entityToItemResponse(item), nil
}

// Update actualiza campos del ítem (solo los presentes en el request).
// El código nunca cambia: los eventos del libro lo referencian.
func (uc *ItemUseCase) Update(companyID, code string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByCompanyAndCode(companyID, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	}
	if in.MinStock != nil {
		item.MinStock = *in.MinStock
	}
	if in.LowStockAlert != nil {
		item.LowStockAlert = *in.LowStockAlert
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return entityToItemResponse(item), nil
}

// List lista ítems con paginación; con query busca por código o nombre,
// insensible a mayúsculas y acentos.
func (uc *ItemUseCase) List(companyID, query string, limit, offset int) (*dto.ItemListResponse, error) {
	var (
		list []*entity.Item
		err  error
	)
	if query != "" {
		list, err = uc.repo.Search(companyID, query, limit, offset)
	} else {
		list, err = uc.repo.ListByCompany(companyID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *entityToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un ítem del catálogo. El historial de eventos del ítem se
// conserva: la reconciliación lo reporta como "Desconocido".
func (uc *ItemUseCase) Delete(companyID, code string) error {
	item, err := uc.repo.GetByCompanyAndCode(companyID, code)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(item.ID)
}

func entityToItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            it.ID,
		CompanyID:     it.CompanyID,
		Code:          it.Code,
		Name:          it.Name,
		Category:      it.Category,
		UnitPrice:     it.UnitPrice,
		MinStock:      it.MinStock,
		LowStockAlert: it.LowStockAlert,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
