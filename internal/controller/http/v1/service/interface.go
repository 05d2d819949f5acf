package service

import (
	"context"

	"hrportal/backend/internal/repository/postgres/service"
)

type Service interface {
	GetList(ctx context.Context, filter service.Filter) ([]service.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (service.GetDetailByIdResponse, error)
	Create(ctx context.Context, request service.CreateRequest) (service.CreateResponse, error)
	Update(ctx context.Context, request service.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	Assign(ctx context.Context, request service.AssignRequest) (service.AssignOutcome, error)
	Unassign(ctx context.Context, serviceID int, employeeID string) error
	GetAssignmentList(ctx context.Context, filter service.AssignmentFilter) ([]service.AssignmentListResponse, error)
}
