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

// JobUseCase aplica reglas de negocio para obras.
type JobUseCase struct {
	repo repository.JobRepository
}

// NewJobUseCase construye el caso de uso con el puerto de persistencia.
func NewJobUseCase(repo repository.JobRepository) *JobUseCase {
	return &JobUseCase{repo: repo}
}

// Create crea una obra. El código debe sobrevivir la normalización: un
// centinela como "general" no es una obra real. Devuelve domain.ErrDuplicate
// si el código ya existe en la empresa.
func (uc *JobUseCase) Create(companyID string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	code := ledger.NormalizeJobID(in.Code)
	if code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndCode(companyID, code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.JobStatusOpen
	}
	job := &entity.Job{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      code,
		Name:      in.Name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if start, ok := ledger.ParseWhen(in.StartDate); ok {
		job.StartDate = &start
	}
	if end, ok := ledger.ParseWhen(in.EndDate); ok {
		job.EndDate = &end
	}
	if err := uc.repo.Create(job); err != nil {
		return nil, err
	}
	return entityToJobResponse(job), nil
}

// GetByCode obtiene una obra por código dentro de la empresa.
func (uc *JobUseCase) GetByCode(companyID, code string) (*dto.JobResponse, error) {
	job, err := uc.repo.GetByCompanyAndCode(companyID, ledger.NormalizeJobID(code))
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return entityToJobResponse(job), nil
}

// Update actualiza campos de la obra (solo los presentes en el request).
// Cerrar una obra libera sus asignaciones activas en la vista de stock.
func (uc *JobUseCase) Update(companyID, code string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := uc.repo.GetByCompanyAndCode(companyID, ledger.NormalizeJobID(code))
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		job.Name = *in.Name
	}
	if in.Status != nil {
		job.Status = *in.Status
	}
	if in.StartDate != nil {
		if start, ok := ledger.ParseWhen(*in.StartDate); ok {
			job.StartDate = &start
		} else {
			job.StartDate = nil
		}
	}
	if in.EndDate != nil {
		if end, ok := ledger.ParseWhen(*in.EndDate); ok {
			job.EndDate = &end
		} else {
			job.EndDate = nil
		}
	}
	job.UpdatedAt = time.Now()
	if err := uc.repo.Update(job); err != nil {
		return nil, err
	}
	return entityToJobResponse(job), nil
}

// List lista obras con paginación.
func (uc *JobUseCase) List(companyID string, limit, offset int) (*dto.JobListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.JobResponse, 0, len(list))
	for _, j := range list {
		items = append(items, *entityToJobResponse(j))
	}
	return &dto.JobListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una obra. Los eventos que la referencian se conservan.
func (uc *JobUseCase) Delete(companyID, code string) error {
	job, err := uc.repo.GetByCompanyAndCode(companyID, ledger.NormalizeJobID(code))
	if err != nil {
		return err
	}
	if job == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(job.ID)
}

func entityToJobResponse(j *entity.Job) *dto.JobResponse {
	if j == nil {
		return nil
	}
	return &dto.JobResponse{
		ID:        j.ID,
		CompanyID: j.CompanyID,
		Code:      j.Code,
		Name:      j.Name,
		Status:    j.Status,
		Closed:    j.Closed(),
		StartDate: j.StartDate,
		EndDate:   j.EndDate,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
