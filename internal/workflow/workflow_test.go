package workflow

import (
	"context"
	"net/http"
	"testing"
	"time"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/entity"
	"hrportal/backend/internal/repository/postgres"
	"hrportal/backend/internal/repository/postgres/attendance"
	"hrportal/backend/internal/repository/postgres/request"

	"github.com/Azure/go-autorest/autorest/date"
)

type fakeAttendance struct {
	created []attendance.CreateRequest
}

func (f *fakeAttendance) CreateWithRequest(ctx context.Context, req attendance.CreateRequest) (attendance.CreateResponse, error) {
	f.created = append(f.created, req)

	response := attendance.CreateResponse{
		ID:         1,
		EmployeeID: req.EmployeeID,
		Reason:     req.Reason,
		CreatedAt:  time.Now(),
	}
	response.Request.ID = 10
	response.Request.EmployeeID = req.EmployeeID
	response.Request.Type = req.RequestType
	response.Request.AttendanceID = 1
	return response, nil
}

type fakeRequest struct {
	detail    entity.DocumentRequest
	fulfilled []request.FulfillRequest
}

func (f *fakeRequest) GetById(ctx context.Context, id int) (entity.DocumentRequest, error) {
	return f.detail, nil
}

func (f *fakeRequest) Fulfill(ctx context.Context, req request.FulfillRequest) (request.FulfillResponse, error) {
	f.fulfilled = append(f.fulfilled, req)

	employeeID := ""
	if f.detail.EmployeeID != nil {
		employeeID = *f.detail.EmployeeID
	}
	requestType := ""
	if f.detail.Type != nil {
		requestType = *f.detail.Type
	}
	return request.FulfillResponse{
		ID:          req.ID,
		EmployeeID:  employeeID,
		Type:        requestType,
		CompletedAt: time.Now(),
	}, nil
}

type fakeNotifier struct {
	events []Event
}

func (f *fakeNotifier) Publish(ctx context.Context, event Event) {
	f.events = append(f.events, event)
}

func newTestRequest(requestType string) *fakeRequest {
	employeeID := "E100"
	attendanceID := 1
	return &fakeRequest{
		detail: entity.DocumentRequest{
			EmployeeID:   &employeeID,
			Type:         &requestType,
			AttendanceID: &attendanceID,
		},
	}
}

func strptr(s string) *string { return &s }

func dateptr(y int, m time.Month, d int) *date.Date {
	parsed := date.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
	return &parsed
}

func TestRequestTypeForReason(t *testing.T) {
	cases := map[string]string{
		entity.ReasonReport:      entity.RequestMedicalReport,
		entity.ReasonAnnualLeave: entity.RequestAnnualLeave,
		entity.ReasonBereavement: entity.RequestAnnualLeave,
		entity.ReasonBirth:       entity.RequestAnnualLeave,
		entity.ReasonExcuse:      entity.RequestAnnualLeave,
	}

	for reason, want := range cases {
		if got := RequestTypeFor(reason); got != want {
			t.Fatalf("reason %s: expected %s, got %s", reason, want, got)
		}
	}
}

func TestSubmitAbsenceRejectsUnknownReason(t *testing.T) {
	w := New(&fakeAttendance{}, newTestRequest(entity.RequestAnnualLeave), &fakeNotifier{})

	_, err := w.SubmitAbsence(context.Background(), SubmitAbsenceRequest{
		EmployeeID: strptr("E100"),
		Reason:     strptr("VACATION"),
	})
	if err == nil {
		t.Fatal("expected an error for unknown reason")
	}

	webErr, ok := web.IsRequestError(err)
	if !ok {
		t.Fatalf("expected a request error, got %v", err)
	}
	if webErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", webErr.Status)
	}
	if webErr.Err != postgres.ErrInvalidReason {
		t.Fatalf("expected ErrInvalidReason, got %v", webErr.Err)
	}
}

func TestSubmitAbsenceRejectsLongDescription(t *testing.T) {
	w := New(&fakeAttendance{}, newTestRequest(entity.RequestAnnualLeave), &fakeNotifier{})

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'x'
	}
	description := string(long)

	_, err := w.SubmitAbsence(context.Background(), SubmitAbsenceRequest{
		EmployeeID:  strptr("E100"),
		Reason:      strptr(entity.ReasonExcuse),
		Description: &description,
	})
	if err == nil {
		t.Fatal("expected an error for oversized description")
	}
}

func TestSubmitAbsenceDerivesRequestType(t *testing.T) {
	fa := &fakeAttendance{}
	fn := &fakeNotifier{}
	w := New(fa, newTestRequest(entity.RequestAnnualLeave), fn)

	_, err := w.SubmitAbsence(context.Background(), SubmitAbsenceRequest{
		EmployeeID: strptr("E100"),
		Reason:     strptr(entity.ReasonReport),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fa.created) != 1 {
		t.Fatalf("expected 1 create call, got %d", len(fa.created))
	}
	if got := *fa.created[0].RequestType; got != entity.RequestMedicalReport {
		t.Fatalf("expected MEDICAL_REPORT, got %s", got)
	}

	if len(fn.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(fn.events))
	}
	if fn.events[0].Name != EventRequestCreated {
		t.Fatalf("expected created event, got %s", fn.events[0].Name)
	}
}

func TestFulfillAnnualLeaveRequiresRange(t *testing.T) {
	fr := newTestRequest(entity.RequestAnnualLeave)
	w := New(&fakeAttendance{}, fr, &fakeNotifier{})

	_, err := w.FulfillDocumentRequest(context.Background(), request.FulfillRequest{
		ID:        10,
		StartDate: dateptr(2026, time.March, 10),
	})
	if err == nil {
		t.Fatal("expected an error for missing end date")
	}

	webErr, ok := web.IsRequestError(err)
	if !ok || webErr.Err != postgres.ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if len(fr.fulfilled) != 0 {
		t.Fatal("storage must not be touched on validation failure")
	}
}

func TestFulfillMedicalReportRequiresDocument(t *testing.T) {
	fr := newTestRequest(entity.RequestMedicalReport)
	w := New(&fakeAttendance{}, fr, &fakeNotifier{})

	_, err := w.FulfillDocumentRequest(context.Background(), request.FulfillRequest{ID: 10})
	if err == nil {
		t.Fatal("expected an error for missing document")
	}
	if len(fr.fulfilled) != 0 {
		t.Fatal("storage must not be touched on validation failure")
	}
}

func TestFulfillMedicalReportHalfOpenRangeRejected(t *testing.T) {
	fr := newTestRequest(entity.RequestMedicalReport)
	w := New(&fakeAttendance{}, fr, &fakeNotifier{})

	path := "statics/documents/report.pdf"
	_, err := w.FulfillDocumentRequest(context.Background(), request.FulfillRequest{
		ID:               10,
		UploadedFilePath: &path,
		EndDate:          dateptr(2026, time.March, 12),
	})
	if err == nil {
		t.Fatal("expected an error for half-open range")
	}

	webErr, ok := web.IsRequestError(err)
	if !ok || webErr.Err != postgres.ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestFulfillRejectsInvertedRange(t *testing.T) {
	fr := newTestRequest(entity.RequestAnnualLeave)
	w := New(&fakeAttendance{}, fr, &fakeNotifier{})

	_, err := w.FulfillDocumentRequest(context.Background(), request.FulfillRequest{
		ID:        10,
		StartDate: dateptr(2026, time.March, 12),
		EndDate:   dateptr(2026, time.March, 10),
	})
	if err == nil {
		t.Fatal("expected an error for inverted range")
	}
}

func TestFulfillCompletedRequestRejected(t *testing.T) {
	fr := newTestRequest(entity.RequestAnnualLeave)
	done := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	fr.detail.CompletedAt = &done

	fn := &fakeNotifier{}
	w := New(&fakeAttendance{}, fr, fn)

	_, err := w.FulfillDocumentRequest(context.Background(), request.FulfillRequest{
		ID:        10,
		StartDate: dateptr(2026, time.March, 10),
		EndDate:   dateptr(2026, time.March, 12),
	})
	if err == nil {
		t.Fatal("expected an error for a completed request")
	}

	webErr, ok := web.IsRequestError(err)
	if !ok {
		t.Fatalf("expected a request error, got %v", err)
	}
	if webErr.Status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", webErr.Status)
	}
	if webErr.Err != postgres.ErrAlreadyCompleted {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", webErr.Err)
	}
	if len(fr.fulfilled) != 0 {
		t.Fatal("storage must not be touched for a completed request")
	}
	if len(fn.events) != 0 {
		t.Fatal("no event may be published for a completed request")
	}
}

func TestFulfillAnnualLeavePublishesEvent(t *testing.T) {
	fr := newTestRequest(entity.RequestAnnualLeave)
	fn := &fakeNotifier{}
	w := New(&fakeAttendance{}, fr, fn)

	response, err := w.FulfillDocumentRequest(context.Background(), request.FulfillRequest{
		ID:        10,
		StartDate: dateptr(2026, time.March, 10),
		EndDate:   dateptr(2026, time.March, 12),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.ID != 10 {
		t.Fatalf("expected response for request 10, got %d", response.ID)
	}

	if len(fn.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(fn.events))
	}
	if fn.events[0].Name != EventRequestFulfilled {
		t.Fatalf("expected fulfilled event, got %s", fn.events[0].Name)
	}
	if fn.events[0].EmployeeID != "E100" {
		t.Fatalf("expected employee E100 on event, got %s", fn.events[0].EmployeeID)
	}
}
