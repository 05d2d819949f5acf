package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Document request types, derived from the triggering absence reason.
const (
	RequestMedicalReport = "MEDICAL_REPORT"
	RequestAnnualLeave   = "ANNUAL_LEAVE"
)

type DocumentRequest struct {
	bun.BaseModel `bun:"table:document_request"`

	BasicEntity
	EmployeeID       *string    `json:"employee_id" bun:"employee_id"`
	Type             *string    `json:"type" bun:"type"`
	AttendanceID     *int       `json:"attendance_id" bun:"attendance_id"`
	StartDate        *time.Time `json:"start_date" bun:"start_date"`
	EndDate          *time.Time `json:"end_date" bun:"end_date"`
	UploadedFilePath *string    `json:"uploaded_file_path" bun:"uploaded_file_path"`
	UploadedFileName *string    `json:"uploaded_file_name" bun:"uploaded_file_name"`
	CompletedAt      *time.Time `json:"completed_at" bun:"completed_at"`
}
