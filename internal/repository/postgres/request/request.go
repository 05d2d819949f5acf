// Package request owns document requests and the completion unit: the
// request, its attendance, and the transport blackout commit or roll
// back together.
package request

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
	"hrportal/backend/internal/repository/postgres/transport"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.DocumentRequest, error) {
	var detail entity.DocumentRequest

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.DocumentRequest{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.DocumentRequest{}, web.NewRequestError(errors.Wrap(err, "selecting document request"), http.StatusInternalServerError)
	}

	return detail, nil
}

// Fulfill completes the request and everything hanging off it in one
// transaction: completion timestamp, file and date fields, attendance
// resolution, and the blackout sweep when a range was supplied. The
// guarded UPDATE makes double completion a conflict, not an overwrite.
func (r Repository) Fulfill(ctx context.Context, req FulfillRequest) (FulfillResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return FulfillResponse{}, err
	}

	detail, err := r.GetById(ctx, req.ID)
	if err != nil {
		return FulfillResponse{}, err
	}

	// Employees complete their own requests; admins anyone's.
	if claims.Role != auth.RoleAdmin && (detail.EmployeeID == nil || *detail.EmployeeID != claims.EmployeeID) {
		return FulfillResponse{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	if detail.CompletedAt != nil {
		return FulfillResponse{}, web.NewRequestError(postgres.ErrAlreadyCompleted, http.StatusConflict)
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(req.StartDate.Time) {
		return FulfillResponse{}, web.NewRequestError(postgres.ErrInvalidDateRange, http.StatusBadRequest)
	}

	response := FulfillResponse{
		ID:           detail.ID,
		EmployeeID:   *detail.EmployeeID,
		Type:         *detail.Type,
		AttendanceID: *detail.AttendanceID,
		CompletedAt:  time.Now(),
	}

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewUpdate().Table("document_request").
			Where("id = ? AND completed_at IS NULL AND deleted_at IS NULL", req.ID)
		q.Set("completed_at = ?", response.CompletedAt)
		q.Set("updated_at = ?", response.CompletedAt)
		q.Set("updated_by = ?", claims.UserId)
		if req.UploadedFilePath != nil {
			q.Set("uploaded_file_path = ?", req.UploadedFilePath)
			q.Set("uploaded_file_name = ?", req.UploadedFileName)
		}
		if req.StartDate != nil {
			q.Set("start_date = ?", req.StartDate.Time)
		}
		if req.EndDate != nil {
			q.Set("end_date = ?", req.EndDate.Time)
		}

		result, err := q.Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "completing document request")
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "reading rows affected")
		}
		if rows == 0 {
			// Lost the race with another fulfiller.
			return postgres.ErrAlreadyCompleted
		}

		if _, err := tx.NewUpdate().Table("attendance").
			Where("id = ? AND deleted_at IS NULL", *detail.AttendanceID).
			Set("is_resolved = true").
			Set("updated_at = ?", response.CompletedAt).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "resolving attendance")
		}

		if req.StartDate != nil && req.EndDate != nil {
			days, err := transport.ApplyBlackout(ctx, tx, claims, *detail.EmployeeID, req.StartDate.Time, req.EndDate.Time)
			if err != nil {
				return err
			}
			response.BlackoutDays = days
		}

		return nil
	})
	if errors.Is(err, postgres.ErrAlreadyCompleted) {
		return FulfillResponse{}, web.NewRequestError(postgres.ErrAlreadyCompleted, http.StatusConflict)
	}
	if err != nil {
		return FulfillResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	return response, nil
}

// MarkCompleted is the admin path: completes the request and resolves
// the attendance without touching transport.
func (r Repository) MarkCompleted(ctx context.Context, id int) (FulfillResponse, error) {
	return r.Fulfill(ctx, FulfillRequest{ID: id})
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				d.deleted_at IS NULL
			`

	if claims.Role != auth.RoleAdmin {
		filter.EmployeeID = &claims.EmployeeID
	}
	if filter.EmployeeID != nil {
		employeeID := strings.Replace(*filter.EmployeeID, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND d.employee_id = '%s'`, employeeID)
	}
	if filter.Type != nil {
		requestType := strings.Replace(*filter.Type, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND d.type = '%s'`, requestType)
	}
	if filter.Status != nil {
		switch *filter.Status {
		case "incomplete":
			whereQuery += ` AND d.completed_at IS NULL`
		case "completed":
			whereQuery += ` AND d.completed_at IS NOT NULL`
		}
	}
	if filter.From != nil {
		whereQuery += fmt.Sprintf(` AND d.created_at >= '%s'`, filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		whereQuery += fmt.Sprintf(` AND d.created_at < '%s'::date + 1`, filter.To.Format("2006-01-02"))
	}
	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND
			(d.uploaded_file_name ilike '%s' OR u.first_name ilike '%s' OR u.last_name ilike '%s')`,
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	orderQuery := "ORDER BY d.created_at desc"

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
			d.id,
			d.employee_id,
			concat(u.first_name, ' ', u.last_name),
			d.type,
			d.attendance_id,
			d.start_date,
			d.end_date,
			d.uploaded_file_name,
			d.created_at,
			d.completed_at
		FROM document_request d
		LEFT JOIN users u ON d.employee_id = u.employee_id AND u.deleted_at IS NULL

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting document requests"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var startString, endString *string

		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.Fullname,
			&detail.Type,
			&detail.AttendanceID,
			&startString,
			&endString,
			&detail.UploadedFileName,
			&detail.CreatedAt,
			&detail.CompletedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning document request list"), http.StatusBadRequest)
		}

		if detail.StartDate, err = parseDay(startString); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting start_date"), http.StatusBadRequest)
		}
		if detail.EndDate, err = parseDay(endString); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting end_date"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(d.id)
		FROM document_request d
		LEFT JOIN users u ON d.employee_id = u.employee_id AND u.deleted_at IS NULL
		%s
	`, whereQuery)

	countRows, err := r.QueryContext(ctx, countQuery)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting document request count"), http.StatusInternalServerError)
	}

	count := 0

	for countRows.Next() {
		if err = countRows.Scan(&count); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning document request count"), http.StatusInternalServerError)
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
			d.id,
			d.employee_id,
			concat(u.first_name, ' ', u.last_name),
			d.type,
			d.attendance_id,
			a.reason,
			d.start_date,
			d.end_date,
			d.uploaded_file_path,
			d.uploaded_file_name,
			d.created_at,
			d.completed_at
		FROM document_request d
		LEFT JOIN users u ON d.employee_id = u.employee_id AND u.deleted_at IS NULL
		LEFT JOIN attendance a ON a.id = d.attendance_id
		WHERE d.deleted_at IS NULL AND d.id = %d
	`, id)

	var detail GetDetailByIdResponse
	var startString, endString *string

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.EmployeeID,
		&detail.Fullname,
		&detail.Type,
		&detail.AttendanceID,
		&detail.AttendanceReason,
		&startString,
		&endString,
		&detail.UploadedFilePath,
		&detail.UploadedFileName,
		&detail.CreatedAt,
		&detail.CompletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting document request detail"), http.StatusInternalServerError)
	}

	if detail.StartDate, err = parseDay(startString); err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting start_date"), http.StatusBadRequest)
	}
	if detail.EndDate, err = parseDay(endString); err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting end_date"), http.StatusBadRequest)
	}

	if claims.Role != auth.RoleAdmin && (detail.EmployeeID == nil || *detail.EmployeeID != claims.EmployeeID) {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return detail, nil
}

func parseDay(value *string) (*date.Date, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := date.ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
