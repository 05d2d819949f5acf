package attendance

import (
	"context"

	"hrportal/backend/internal/repository/postgres/attendance"
	"hrportal/backend/internal/workflow"
)

type Attendance interface {
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (attendance.GetDetailByIdResponse, error)
	Delete(ctx context.Context, id int) error
}

type Workflow interface {
	SubmitAbsence(ctx context.Context, request workflow.SubmitAbsenceRequest) (attendance.CreateResponse, error)
}
