package domain

import "time"

// ServiceOrder is a task belonging to exactly one project. ProjectName is
// populated by joined reads only; it is not a stored column.
type ServiceOrder struct {
	ID          int64
	Name        string
	Category    string
	Description *string
	ProjectID   int64
	IsApproved  bool
	CreatedDate time.Time
	UpdatedDate time.Time
	ProjectName string
}
