package attendance

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	Reason     *string
	Resolved   *bool
	EmployeeID *string
}

type GetListResponse struct {
	ID                int       `json:"id"`
	EmployeeID        *string   `json:"employee_id"`
	Fullname          *string   `json:"full_name"`
	Reason            *string   `json:"reason"`
	Description       *string   `json:"description"`
	IsResolved        *bool     `json:"is_resolved"`
	DocumentRequestID *int      `json:"document_request_id"`
	CreatedAt         time.Time `json:"created_at"`
}

type GetDetailByIdResponse struct {
	ID                int        `json:"id"`
	EmployeeID        *string    `json:"employee_id"`
	Fullname          *string    `json:"full_name"`
	Reason            *string    `json:"reason"`
	Description       *string    `json:"description"`
	IsResolved        *bool      `json:"is_resolved"`
	DocumentRequestID *int       `json:"document_request_id"`
	RequestType       *string    `json:"request_type"`
	RequestCompleted  *time.Time `json:"request_completed_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

type CreateRequest struct {
	EmployeeID  *string `json:"employee_id" form:"employee_id"`
	Reason      *string `json:"reason" form:"reason"`
	Description *string `json:"description" form:"description"`
	// RequestType is derived from Reason by the workflow, never bound
	// from the request body.
	RequestType *string `json:"-" form:"-"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID                int       `json:"id" bun:"-"`
	EmployeeID        *string   `json:"employee_id" bun:"employee_id"`
	Reason            *string   `json:"reason" bun:"reason"`
	Description       *string   `json:"description" bun:"description"`
	IsResolved        bool      `json:"is_resolved" bun:"is_resolved"`
	DocumentRequestID *int      `json:"document_request_id" bun:"document_request_id"`
	CreatedAt         time.Time `json:"created_at" bun:"created_at"`
	CreatedBy         int       `json:"-" bun:"created_by"`

	Request RequestResponse `json:"document_request" bun:"-"`
}

type RequestResponse struct {
	bun.BaseModel `bun:"table:document_request"`

	ID           int       `json:"id" bun:"-"`
	EmployeeID   *string   `json:"employee_id" bun:"employee_id"`
	Type         *string   `json:"type" bun:"type"`
	AttendanceID int       `json:"attendance_id" bun:"attendance_id"`
	CreatedAt    time.Time `json:"created_at" bun:"created_at"`
	CreatedBy    int       `json:"-" bun:"created_by"`
}
