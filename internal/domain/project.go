package domain

import "time"

// Project is a unit of work that owns service orders.
type Project struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
