package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// ServiceAssignment is a seat on a service. Unassign flips IsActive to
// false so the historical trail stays queryable; rows are never removed.
type ServiceAssignment struct {
	bun.BaseModel `bun:"table:service_assignment"`

	BasicEntity
	ServiceID  *int       `json:"service_id" bun:"service_id"`
	EmployeeID *string    `json:"employee_id" bun:"employee_id"`
	AssignedAt *time.Time `json:"assigned_at" bun:"assigned_at"`
	IsActive   *bool      `json:"is_active" bun:"is_active"`
}
