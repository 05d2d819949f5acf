// Package transport owns the daily transport rows and the blackout sweep
// that forces them off for the span of a completed document request.
package transport

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/pkg/repository/postgresql"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// BlackoutNote marks rows written by the sweep rather than the employee.
const BlackoutNote = "automatic: leave/report coverage"

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// DatesInRange expands an inclusive date range into calendar days,
// normalized to midnight UTC. An inverted range yields nothing.
func DatesInRange(start, end time.Time) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	if end.Before(start) {
		return nil
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

type blackoutRow struct {
	bun.BaseModel `bun:"table:transport"`

	EmployeeID string    `bun:"employee_id"`
	TravelDate time.Time `bun:"travel_date"`
	WillUse    bool      `bun:"will_use"`
	Notes      string    `bun:"notes"`
	CreatedAt  time.Time `bun:"created_at"`
	CreatedBy  int       `bun:"created_by"`
}

// ApplyBlackout upserts one will_use=false row per day of the inclusive
// range on the caller's transaction. Existing rows are forced off and
// their notes overwritten with the automatic marker; the sweep never
// turns a day back on, so overlapping applications are idempotent. The
// unique (employee_id, travel_date) index keeps it at one row per day.
func ApplyBlackout(ctx context.Context, idb bun.IDB, claims auth.Claims, employeeID string, start, end time.Time) (int, error) {
	dates := DatesInRange(start, end)

	for _, day := range dates {
		row := blackoutRow{
			EmployeeID: employeeID,
			TravelDate: day,
			WillUse:    false,
			Notes:      BlackoutNote,
			CreatedAt:  time.Now(),
			CreatedBy:  claims.UserId,
		}

		_, err := idb.NewInsert().Model(&row).
			On("CONFLICT (employee_id, travel_date) WHERE deleted_at IS NULL DO UPDATE").
			Set("will_use = EXCLUDED.will_use").
			Set("notes = EXCLUDED.notes").
			Set("updated_at = now()").
			Exec(ctx)
		if err != nil {
			return 0, errors.Wrapf(err, "blackout upsert for %s", day.Format("2006-01-02"))
		}
	}

	return len(dates), nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
			WHERE
				t.deleted_at IS NULL
			`

	if claims.Role != auth.RoleAdmin {
		filter.EmployeeID = &claims.EmployeeID
	}
	if filter.EmployeeID != nil {
		employeeID := strings.Replace(*filter.EmployeeID, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND t.employee_id = '%s'`, employeeID)
	}
	if filter.From != nil {
		whereQuery += fmt.Sprintf(` AND t.travel_date >= '%s'`, filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		whereQuery += fmt.Sprintf(` AND t.travel_date <= '%s'`, filter.To.Format("2006-01-02"))
	}

	orderQuery := "ORDER BY t.travel_date desc"

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
			t.id,
			t.employee_id,
			t.travel_date,
			t.from_point,
			t.to_point,
			t.will_use,
			t.notes
		FROM transport t

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting transport"), http.StatusInternalServerError)
	}

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var travelDayString string

		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&travelDayString,
			&detail.FromPoint,
			&detail.ToPoint,
			&detail.WillUse,
			&detail.Notes); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning transport list"), http.StatusBadRequest)
		}

		travelDate, err := parseDay(travelDayString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting travel_date"), http.StatusBadRequest)
		}
		detail.TravelDate = travelDate

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(t.id)
		FROM transport t
		%s
	`, whereQuery)

	countRows, err := r.QueryContext(ctx, countQuery)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting transport count"), http.StatusInternalServerError)
	}

	count := 0

	for countRows.Next() {
		if err = countRows.Scan(&count); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning transport count"), http.StatusInternalServerError)
		}
	}

	return list, count, nil
}

// Upsert writes the employee's own row for a day: the daily record is
// created on first touch and updated after that.
func (r Repository) Upsert(ctx context.Context, request UpsertRequest) (UpsertResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return UpsertResponse{}, err
	}

	if err := r.ValidateStruct(&request, "TravelDate"); err != nil {
		return UpsertResponse{}, err
	}

	willUse := true
	if request.WillUse != nil {
		willUse = *request.WillUse
	}

	// A day swept off for an approved leave stays off.
	if willUse {
		var notes *string
		err = r.NewSelect().Table("transport").Column("notes").
			Where("employee_id = ? AND travel_date = ? AND deleted_at IS NULL", claims.EmployeeID, request.TravelDate.Time).
			Scan(ctx, &notes)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return UpsertResponse{}, web.NewRequestError(errors.Wrap(err, "checking existing transport row"), http.StatusInternalServerError)
		}
		if blackoutLocked(notes) {
			return UpsertResponse{}, web.NewRequestError(errors.New("travel date is blocked by an approved leave"), http.StatusBadRequest)
		}
	}

	row := struct {
		bun.BaseModel `bun:"table:transport"`

		EmployeeID string    `bun:"employee_id"`
		TravelDate time.Time `bun:"travel_date"`
		FromPoint  *string   `bun:"from_point"`
		ToPoint    *string   `bun:"to_point"`
		WillUse    bool      `bun:"will_use"`
		Notes      *string   `bun:"notes"`
		CreatedAt  time.Time `bun:"created_at"`
		CreatedBy  int       `bun:"created_by"`
	}{
		EmployeeID: claims.EmployeeID,
		TravelDate: request.TravelDate.Time,
		FromPoint:  request.FromPoint,
		ToPoint:    request.ToPoint,
		WillUse:    willUse,
		Notes:      request.Notes,
		CreatedAt:  time.Now(),
		CreatedBy:  claims.UserId,
	}

	_, err = r.NewInsert().Model(&row).
		On("CONFLICT (employee_id, travel_date) WHERE deleted_at IS NULL DO UPDATE").
		Set("from_point = EXCLUDED.from_point").
		Set("to_point = EXCLUDED.to_point").
		Set("will_use = EXCLUDED.will_use").
		Set("notes = EXCLUDED.notes").
		Set("updated_at = now()").
		Exec(ctx)
	if err != nil {
		return UpsertResponse{}, web.NewRequestError(errors.Wrap(err, "upserting transport row"), http.StatusBadRequest)
	}

	return UpsertResponse{
		EmployeeID: claims.EmployeeID,
		TravelDate: request.TravelDate,
		WillUse:    willUse,
	}, nil
}

// Delete removes a daily row. Employees can only drop their own.
func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if claims.Role == auth.RoleAdmin {
		return r.DeleteRow(ctx, "transport", id)
	}

	q := r.NewUpdate().Table("transport").
		Where("deleted_at IS NULL AND id = ? AND employee_id = ?", id, claims.EmployeeID)
	q.Set("deleted_at = ?", time.Now())
	q.Set("deleted_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting transport row"), http.StatusInternalServerError)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reading rows affected"), http.StatusInternalServerError)
	}
	if rows == 0 {
		return web.NewRequestError(errors.New("row not found"), http.StatusNotFound)
	}

	return nil
}

// blackoutLocked reports whether the existing row was written by the
// sweep; employees cannot turn such a day back on.
func blackoutLocked(notes *string) bool {
	return notes != nil && *notes == BlackoutNote
}

func parseDay(value string) (*date.Date, error) {
	parsed, err := date.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
