// Package workflow ties absences to the documents they demand. An
// absence submission always opens a document request; fulfilling the
// request closes the absence and, when a date range is known, blocks
// the employee's shuttle days for it.
package workflow

import (
	"context"
	"net/http"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/repository/postgres"
	"hrportal/backend/internal/repository/postgres/attendance"
	"hrportal/backend/internal/repository/postgres/request"

	"github.com/pkg/errors"
)

const maxDescriptionLength = 1000

type Workflow struct {
	attendance Attendance
	request    DocumentRequest
	notifier   Notifier
}

func New(attendance Attendance, request DocumentRequest, notifier Notifier) *Workflow {
	return &Workflow{
		attendance: attendance,
		request:    request,
		notifier:   notifier,
	}
}

// RequestTypeFor maps the absence reason to the document that proves
// it: a report absence needs a medical report, everything else is
// covered by the leave form.
func RequestTypeFor(reason string) string {
	if reason == entity.ReasonReport {
		return entity.RequestMedicalReport
	}
	return entity.RequestAnnualLeave
}

func ValidReason(reason string) bool {
	for _, known := range entity.Reasons {
		if reason == known {
			return true
		}
	}
	return false
}

type SubmitAbsenceRequest struct {
	EmployeeID  *string `json:"employee_id" form:"employee_id"`
	Reason      *string `json:"reason" form:"reason"`
	Description *string `json:"description" form:"description"`
}

func (w *Workflow) SubmitAbsence(ctx context.Context, req SubmitAbsenceRequest) (attendance.CreateResponse, error) {
	if req.Reason == nil || !ValidReason(*req.Reason) {
		return attendance.CreateResponse{}, web.NewRequestError(postgres.ErrInvalidReason, http.StatusBadRequest)
	}
	if req.Description != nil && len(*req.Description) > maxDescriptionLength {
		return attendance.CreateResponse{}, web.NewRequestError(errors.New("description exceeds 1000 characters"), http.StatusBadRequest)
	}

	requestType := RequestTypeFor(*req.Reason)

	created, err := w.attendance.CreateWithRequest(ctx, attendance.CreateRequest{
		EmployeeID:  req.EmployeeID,
		Reason:      req.Reason,
		Description: req.Description,
		RequestType: &requestType,
	})
	if err != nil {
		return attendance.CreateResponse{}, err
	}

	w.notifier.Publish(ctx, Event{
		Name:         EventRequestCreated,
		RequestID:    created.Request.ID,
		AttendanceID: created.ID,
		EmployeeID:   stringValue(created.EmployeeID),
		Type:         requestType,
		OccurredAt:   created.CreatedAt,
	})

	return created, nil
}

// FulfillDocumentRequest checks the evidence against the request type
// before handing over to storage. A medical report needs the document
// itself and takes an optional sick-leave range; annual leave needs the
// range and nothing else.
func (w *Workflow) FulfillDocumentRequest(ctx context.Context, req request.FulfillRequest) (request.FulfillResponse, error) {
	detail, err := w.request.GetById(ctx, req.ID)
	if err != nil {
		return request.FulfillResponse{}, err
	}

	// Completing twice is a no-op refused up front; the guarded update
	// in storage still backstops the race between two fulfillers.
	if detail.CompletedAt != nil {
		return request.FulfillResponse{}, web.NewRequestError(postgres.ErrAlreadyCompleted, http.StatusConflict)
	}

	switch stringValue(detail.Type) {
	case entity.RequestMedicalReport:
		if req.UploadedFilePath == nil {
			return request.FulfillResponse{}, web.NewRequestError(errors.New("uploaded document is required for a medical report"), http.StatusBadRequest)
		}
		// One end of the range without the other tells us nothing.
		if (req.StartDate == nil) != (req.EndDate == nil) {
			return request.FulfillResponse{}, web.NewRequestError(postgres.ErrInvalidDateRange, http.StatusBadRequest)
		}
	case entity.RequestAnnualLeave:
		if req.StartDate == nil || req.EndDate == nil {
			return request.FulfillResponse{}, web.NewRequestError(postgres.ErrInvalidDateRange, http.StatusBadRequest)
		}
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(req.StartDate.Time) {
		return request.FulfillResponse{}, web.NewRequestError(postgres.ErrInvalidDateRange, http.StatusBadRequest)
	}

	fulfilled, err := w.request.Fulfill(ctx, req)
	if err != nil {
		return request.FulfillResponse{}, err
	}

	w.notifier.Publish(ctx, Event{
		Name:         EventRequestFulfilled,
		RequestID:    fulfilled.ID,
		AttendanceID: fulfilled.AttendanceID,
		EmployeeID:   fulfilled.EmployeeID,
		Type:         fulfilled.Type,
		OccurredAt:   fulfilled.CompletedAt,
	})

	return fulfilled, nil
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
