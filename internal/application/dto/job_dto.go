package dto

import "time"

// CreateJobRequest entrada para crear una obra.
type CreateJobRequest struct {
	Code      string `json:"code" validate:"required,min=1,max=100"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Status    string `json:"status" validate:"omitempty,max=50"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// UpdateJobRequest entrada para actualizar una obra (campos opcionales).
type UpdateJobRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Status    *string `json:"status" validate:"omitempty,max=50"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// JobResponse salida de una obra.
type JobResponse struct {
	ID        string     `json:"id"`
	CompanyID string     `json:"company_id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Closed    bool       `json:"closed"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// JobListResponse lista paginada de obras.
type JobListResponse struct {
	Items []JobResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
