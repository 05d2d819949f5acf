package workflow

import (
	"context"
	"time"

	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/repository/postgres/attendance"
	"hrportal/backend/internal/repository/postgres/request"
)

type Attendance interface {
	CreateWithRequest(ctx context.Context, request attendance.CreateRequest) (attendance.CreateResponse, error)
}

type DocumentRequest interface {
	GetById(ctx context.Context, id int) (entity.DocumentRequest, error)
	Fulfill(ctx context.Context, request request.FulfillRequest) (request.FulfillResponse, error)
}

// Event is what leaves the workflow when a request is born or
// completed. Subscribers (bots, dashboards) get it as JSON.
type Event struct {
	Name         string    `json:"event"`
	RequestID    int       `json:"request_id"`
	AttendanceID int       `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	Type         string    `json:"type"`
	OccurredAt   time.Time `json:"occurred_at"`
}

const (
	EventRequestCreated   = "document_request.created"
	EventRequestFulfilled = "document_request.fulfilled"
)

// Notifier delivery is best effort: implementations log failures and
// never propagate them, the workflow result stands either way.
type Notifier interface {
	Publish(ctx context.Context, event Event)
}
