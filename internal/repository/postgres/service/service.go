// Package service manages shuttle routes and the seats on them. Assign
// is the only writer that races with itself: two admins filling the
// same route at once. It plans against a snapshot, re-checks the
// snapshot inside the transaction, and retries a bounded number of
// times before giving up with a conflict.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const assignRetries = 3

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Service, error) {
	var detail entity.Service

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Service{}, web.NewRequestError(postgres.ErrServiceNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Service{}, web.NewRequestError(errors.Wrap(err, "selecting service"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				s.deleted_at IS NULL
			`

	if filter.Active != nil {
		whereQuery += fmt.Sprintf(` AND s.is_active = %t`, *filter.Active)
	}
	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND
			(s.name ilike '%s' OR s.plate_number ilike '%s' OR s.start_point ilike '%s' OR s.end_point ilike '%s')`,
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	orderQuery := "ORDER BY s.created_at desc"

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
			s.id,
			s.name,
			s.start_point,
			s.end_point,
			s.start_time,
			s.plate_number,
			s.seat_count,
			s.fuel_type,
			s.brand,
			s.model,
			s.is_active,
			count(a.id) FILTER (WHERE a.is_active AND a.deleted_at IS NULL)
		FROM service s
		LEFT JOIN service_assignment a ON a.service_id = s.id
		%s
		GROUP BY s.id
		%s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting service list"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse

		if err = rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.StartPoint,
			&detail.EndPoint,
			&detail.StartTime,
			&detail.PlateNumber,
			&detail.SeatCount,
			&detail.FuelType,
			&detail.Brand,
			&detail.Model,
			&detail.IsActive,
			&detail.AssignedCount); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning service list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(s.id)
		FROM service s
		%s
	`, whereQuery)

	countRows, err := r.QueryContext(ctx, countQuery)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting service count"), http.StatusInternalServerError)
	}

	count := 0

	for countRows.Next() {
		if err = countRows.Scan(&count); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning service count"), http.StatusInternalServerError)
		}
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	row, err := r.GetById(ctx, id)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	detail := GetDetailByIdResponse{
		ID:          row.ID,
		Name:        row.Name,
		StartPoint:  row.StartPoint,
		EndPoint:    row.EndPoint,
		StartTime:   row.StartTime,
		PlateNumber: row.PlateNumber,
		SeatCount:   row.SeatCount,
		FuelType:    row.FuelType,
		Brand:       row.Brand,
		Model:       row.Model,
		IsActive:    row.IsActive,
		Assignments: []AssignmentResponse{},
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.employee_id,
			concat(u.first_name, ' ', u.last_name),
			a.assigned_at
		FROM service_assignment a
		LEFT JOIN users u ON u.employee_id = a.employee_id AND u.deleted_at IS NULL
		WHERE a.service_id = %d AND a.is_active AND a.deleted_at IS NULL
		ORDER BY a.assigned_at
	`, id)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting service assignments"), http.StatusInternalServerError)
	}

	for rows.Next() {
		var assignment AssignmentResponse
		if err = rows.Scan(
			&assignment.ID,
			&assignment.EmployeeID,
			&assignment.Fullname,
			&assignment.AssignedAt); err != nil {
			return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "scanning service assignments"), http.StatusBadRequest)
		}
		detail.Assignments = append(detail.Assignments, assignment)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "StartPoint", "EndPoint"); err != nil {
		return CreateResponse{}, err
	}

	active := true
	row := entity.Service{
		Name:        request.Name,
		StartPoint:  request.StartPoint,
		EndPoint:    request.EndPoint,
		StartTime:   request.StartTime,
		PlateNumber: request.PlateNumber,
		SeatCount:   request.SeatCount,
		FuelType:    request.FuelType,
		Brand:       request.Brand,
		Model:       request.Model,
		IsActive:    &active,
	}
	now := time.Now()
	row.CreatedAt = &now
	row.CreatedBy = &claims.UserId

	_, err = r.NewInsert().Model(&row).Returning("id").Exec(ctx)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating service"), http.StatusBadRequest)
	}

	return CreateResponse{
		ID:          row.ID,
		Name:        row.Name,
		StartPoint:  row.StartPoint,
		EndPoint:    row.EndPoint,
		StartTime:   row.StartTime,
		PlateNumber: row.PlateNumber,
		SeatCount:   row.SeatCount,
		FuelType:    row.FuelType,
		Brand:       row.Brand,
		Model:       row.Model,
		IsActive:    row.IsActive,
	}, nil
}

func (r Repository) Update(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	if _, err := r.GetById(ctx, request.ID); err != nil {
		return err
	}

	q := r.NewUpdate().Table("service").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.StartPoint != nil {
		q.Set("start_point = ?", request.StartPoint)
	}
	if request.EndPoint != nil {
		q.Set("end_point = ?", request.EndPoint)
	}
	if request.StartTime != nil {
		q.Set("start_time = ?", request.StartTime)
	}
	if request.PlateNumber != nil {
		q.Set("plate_number = ?", request.PlateNumber)
	}
	if request.SeatCount != nil {
		q.Set("seat_count = ?", request.SeatCount)
	}
	if request.FuelType != nil {
		q.Set("fuel_type = ?", request.FuelType)
	}
	if request.Brand != nil {
		q.Set("brand = ?", request.Brand)
	}
	if request.Model != nil {
		q.Set("model = ?", request.Model)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", request.IsActive)
	}

	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err := q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating service"), http.StatusBadRequest)
	}

	return nil
}

// Delete soft-deletes the service and deactivates every seat on it, in
// one transaction so a rider never points at a vanished route.
func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if _, err := r.GetById(ctx, id); err != nil {
		return err
	}

	now := time.Now()

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Table("service").
			Where("id = ? AND deleted_at IS NULL", id).
			Set("deleted_at = ?", now).
			Set("deleted_by = ?", claims.UserId).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "deleting service")
		}

		if _, err := tx.NewUpdate().Table("service_assignment").
			Where("service_id = ? AND is_active AND deleted_at IS NULL", id).
			Set("is_active = false").
			Set("updated_at = ?", now).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "deactivating service assignments")
		}

		return nil
	})
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return nil
}

// Assign fills the selected employees onto the service. The plan is
// built from a snapshot, then the snapshot is re-checked inside the
// transaction; if another assigner moved first the unique index or the
// re-check aborts the attempt and we replan, up to assignRetries times.
func (r Repository) Assign(ctx context.Context, request AssignRequest) (AssignOutcome, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return AssignOutcome{}, err
	}

	if len(request.EmployeeIDs) == 0 {
		return AssignOutcome{}, web.NewRequestError(postgres.ErrNoEmployeesSelected, http.StatusBadRequest)
	}

	row, err := r.GetById(ctx, request.ServiceID)
	if err != nil {
		return AssignOutcome{}, err
	}

	seatCount := 14
	if row.SeatCount != nil {
		seatCount = *row.SeatCount
	}

	for attempt := 0; attempt < assignRetries; attempt++ {
		outcome, err := r.tryAssign(ctx, claims.UserId, request, seatCount)
		if err == nil {
			outcome.ServiceID = request.ServiceID
			return outcome, nil
		}
		if !isRetryable(err) {
			return AssignOutcome{}, web.NewRequestError(err, http.StatusInternalServerError)
		}
	}

	return AssignOutcome{}, web.NewRequestError(postgres.ErrConcurrencyConflict, http.StatusConflict)
}

func (r Repository) tryAssign(ctx context.Context, userID int, request AssignRequest, seatCount int) (AssignOutcome, error) {
	onService, busyElsewhere, activeCount, err := r.seatSnapshot(ctx, r.DB, request.ServiceID, request.EmployeeIDs)
	if err != nil {
		return AssignOutcome{}, err
	}

	seatsLeft := seatCount - activeCount
	if seatsLeft < 0 {
		seatsLeft = 0
	}

	outcome := planAssignment(request.EmployeeIDs, onService, busyElsewhere, seatsLeft)
	if len(outcome.Assigned) == 0 {
		return outcome, nil
	}

	// Serializable, so two assigners filling the same service from
	// disjoint employee sets cannot both pass the recount: the loser
	// gets SQLSTATE 40001 and replans.
	err = r.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
		txOnService, txBusy, txCount, err := r.seatSnapshot(ctx, tx, request.ServiceID, request.EmployeeIDs)
		if err != nil {
			return err
		}

		// The world moved between planning and committing: replan.
		if txCount != activeCount {
			return errTxStale
		}
		for _, employeeID := range outcome.Assigned {
			if txOnService[employeeID] || txBusy[employeeID] {
				return errTxStale
			}
		}

		now := time.Now()
		active := true

		rows := make([]entity.ServiceAssignment, 0, len(outcome.Assigned))
		for i := range outcome.Assigned {
			assignment := entity.ServiceAssignment{
				ServiceID:  &request.ServiceID,
				EmployeeID: &outcome.Assigned[i],
				AssignedAt: &now,
				IsActive:   &active,
			}
			assignment.CreatedAt = &now
			assignment.CreatedBy = &userID
			rows = append(rows, assignment)
		}

		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return AssignOutcome{}, err
	}

	return outcome, nil
}

// seatSnapshot reads, through db (the pool or an open tx), who of the
// candidates already rides this service, who rides another one, and how
// many seats are taken.
func (r Repository) seatSnapshot(ctx context.Context, db bun.IDB, serviceID int, candidates []string) (map[string]bool, map[string]bool, int, error) {
	onService := map[string]bool{}
	busyElsewhere := map[string]bool{}

	var rows []entity.ServiceAssignment

	err := db.NewSelect().Model(&rows).
		Where("employee_id IN (?) AND is_active AND deleted_at IS NULL", bun.In(candidates)).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, 0, errors.Wrap(err, "selecting active assignments")
	}

	for _, row := range rows {
		if row.EmployeeID == nil || row.ServiceID == nil {
			continue
		}
		if *row.ServiceID == serviceID {
			onService[*row.EmployeeID] = true
		} else {
			busyElsewhere[*row.EmployeeID] = true
		}
	}

	activeCount, err := db.NewSelect().Table("service_assignment").
		Where("service_id = ? AND is_active AND deleted_at IS NULL", serviceID).
		Count(ctx)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "counting active assignments")
	}

	return onService, busyElsewhere, activeCount, nil
}

// GetAssignmentList is the who-rides-what read model, ordered by service
// then employee.
func (r Repository) GetAssignmentList(ctx context.Context, filter AssignmentFilter) ([]AssignmentListResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	whereQuery := `
			WHERE
				a.is_active AND a.deleted_at IS NULL
			`

	if filter.ServiceID != nil {
		whereQuery += fmt.Sprintf(` AND a.service_id = %d`, *filter.ServiceID)
	}
	if filter.EmployeeID != nil {
		employeeID := strings.Replace(*filter.EmployeeID, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND a.employee_id = '%s'`, employeeID)
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.service_id,
			s.name,
			a.employee_id,
			concat(u.first_name, ' ', u.last_name),
			a.assigned_at
		FROM service_assignment a
		LEFT JOIN service s ON s.id = a.service_id AND s.deleted_at IS NULL
		LEFT JOIN users u ON u.employee_id = a.employee_id AND u.deleted_at IS NULL
		%s
		ORDER BY a.service_id, a.employee_id
	`, whereQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting assignment list"), http.StatusInternalServerError)
	}

	var list []AssignmentListResponse

	for rows.Next() {
		var detail AssignmentListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.ServiceID,
			&detail.ServiceName,
			&detail.EmployeeID,
			&detail.Fullname,
			&detail.AssignedAt); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning assignment list"), http.StatusBadRequest)
		}
		list = append(list, detail)
	}

	return list, nil
}

// Unassign frees the employee's seat on the service. Missing active
// seat is a 404, not a silent no-op.
func (r Repository) Unassign(ctx context.Context, serviceID int, employeeID string) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	result, err := r.NewUpdate().Table("service_assignment").
		Where("service_id = ? AND employee_id = ? AND is_active AND deleted_at IS NULL", serviceID, employeeID).
		Set("is_active = false").
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "unassigning employee"), http.StatusInternalServerError)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reading rows affected"), http.StatusInternalServerError)
	}
	if rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

var errTxStale = errors.New("assignment snapshot is stale")

// isRetryable covers the stale re-check plus the database backstops:
// the one-active-seat unique index (23505) and serialization failures
// (40001).
func isRetryable(err error) bool {
	if errors.Is(err, errTxStale) {
		return true
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		code := pgErr.Field('C')
		return code == "23505" || code == "40001"
	}
	return false
}
