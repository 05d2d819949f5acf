package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Attendance, error) {
	var detail entity.Attendance

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Attendance{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return detail, err
}

// CreateWithRequest persists the absence and its document request as one
// unit: the attendance row, the request row bound to it, and the
// back-reference on the attendance all land in the same transaction.
func (r Repository) CreateWithRequest(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	// Employees submit for themselves; only admins pick the employee.
	if claims.Role != auth.RoleAdmin {
		request.EmployeeID = &claims.EmployeeID
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "Reason", "RequestType"); err != nil {
		return CreateResponse{}, err
	}

	var response CreateResponse

	response.EmployeeID = request.EmployeeID
	response.Reason = request.Reason
	response.Description = request.Description
	response.IsResolved = false
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	response.Request.EmployeeID = request.EmployeeID
	response.Request.Type = request.RequestType
	response.Request.CreatedAt = response.CreatedAt
	response.Request.CreatedBy = claims.UserId

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
			return errors.Wrap(err, "creating attendance")
		}

		response.Request.AttendanceID = response.ID
		if _, err := tx.NewInsert().Model(&response.Request).Returning("id").Exec(ctx, &response.Request.ID); err != nil {
			return errors.Wrap(err, "creating document request")
		}

		if _, err := tx.NewUpdate().Table("attendance").
			Where("id = ?", response.ID).
			Set("document_request_id = ?", response.Request.ID).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "linking document request")
		}

		response.DocumentRequestID = &response.Request.ID
		return nil
	})
	if err != nil {
		return CreateResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				a.deleted_at IS NULL
			`

	// Employees only see their own absences.
	if claims.Role != auth.RoleAdmin {
		filter.EmployeeID = &claims.EmployeeID
	}
	if filter.EmployeeID != nil {
		employeeID := strings.Replace(*filter.EmployeeID, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND a.employee_id = '%s'`, employeeID)
	}
	if filter.Reason != nil {
		reason := strings.Replace(*filter.Reason, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND a.reason = '%s'`, reason)
	}
	if filter.Resolved != nil {
		whereQuery += fmt.Sprintf(` AND a.is_resolved = %t`, *filter.Resolved)
	}

	orderQuery := "ORDER BY a.created_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.employee_id,
			concat(u.first_name, ' ', u.last_name),
			a.reason,
			a.description,
			a.is_resolved,
			a.document_request_id,
			a.created_at
		FROM attendance a
		LEFT JOIN users u ON a.employee_id = u.employee_id AND u.deleted_at IS NULL

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse

		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.Fullname,
			&detail.Reason,
			&detail.Description,
			&detail.IsResolved,
			&detail.DocumentRequestID,
			&detail.CreatedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM attendance a
		%s
	`, whereQuery)

	countRows, err := r.QueryContext(ctx, countQuery)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance count"), http.StatusInternalServerError)
	}

	count := 0

	for countRows.Next() {
		if err = countRows.Scan(&count); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
		}
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.employee_id,
			concat(u.first_name, ' ', u.last_name),
			a.reason,
			a.description,
			a.is_resolved,
			a.document_request_id,
			d.type,
			d.completed_at,
			a.created_at
		FROM attendance a
		LEFT JOIN users u ON a.employee_id = u.employee_id AND u.deleted_at IS NULL
		LEFT JOIN document_request d ON d.attendance_id = a.id
		WHERE a.deleted_at IS NULL AND a.id = %d
	`, id)

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.EmployeeID,
		&detail.Fullname,
		&detail.Reason,
		&detail.Description,
		&detail.IsResolved,
		&detail.DocumentRequestID,
		&detail.RequestType,
		&detail.RequestCompleted,
		&detail.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance detail"), http.StatusInternalServerError)
	}

	if claims.Role != auth.RoleAdmin && (detail.EmployeeID == nil || *detail.EmployeeID != claims.EmployeeID) {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return detail, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "attendance", id)
}
