package transport

import (
	"context"

	"hrportal/backend/internal/repository/postgres/transport"
)

type Transport interface {
	GetList(ctx context.Context, filter transport.Filter) ([]transport.GetListResponse, int, error)
	Upsert(ctx context.Context, request transport.UpsertRequest) (transport.UpsertResponse, error)
	Delete(ctx context.Context, id int) error
}
