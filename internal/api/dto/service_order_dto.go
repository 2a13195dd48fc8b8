package dto

import "time"

// ServiceOrderRequest payload for create and update.
type ServiceOrderRequest struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description *string `json:"description"`
	ProjectID   int64   `json:"project_id" validate:"required,gt=0"`
	IsApproved  bool    `json:"is_approved"`
}

// ServiceOrderResponse includes the project name from the joined read.
type ServiceOrderResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	ProjectID   int64     `json:"project_id"`
	ProjectName string    `json:"project_name"`
	IsApproved  bool      `json:"is_approved"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}
