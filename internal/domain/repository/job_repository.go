package repository

import "github.com/jhoicas/FlotaStock-api/internal/domain/entity"

// JobRepository define el puerto de persistencia para Job (DIP).
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	GetByCompanyAndCode(companyID, code string) (*entity.Job, error)
	Update(job *entity.Job) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Job, error)
	Delete(id string) error
}
