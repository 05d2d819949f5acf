package request

import (
	"context"

	"hrportal/backend/internal/repository/postgres/request"
)

type DocumentRequest interface {
	GetList(ctx context.Context, filter request.Filter) ([]request.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (request.GetDetailByIdResponse, error)
	MarkCompleted(ctx context.Context, id int) (request.FulfillResponse, error)
}

type Workflow interface {
	FulfillDocumentRequest(ctx context.Context, request request.FulfillRequest) (request.FulfillResponse, error)
}
