package request

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	Type       *string
	Status     *string // all | incomplete | completed
	From       *date.Date
	To         *date.Date
	Search     *string
	EmployeeID *string
}

type GetListResponse struct {
	ID               int        `json:"id"`
	EmployeeID       *string    `json:"employee_id"`
	Fullname         *string    `json:"full_name"`
	Type             *string    `json:"type"`
	AttendanceID     int        `json:"attendance_id"`
	StartDate        *date.Date `json:"start_date"`
	EndDate          *date.Date `json:"end_date"`
	UploadedFileName *string    `json:"uploaded_file_name"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

type GetDetailByIdResponse struct {
	ID               int        `json:"id"`
	EmployeeID       *string    `json:"employee_id"`
	Fullname         *string    `json:"full_name"`
	Type             *string    `json:"type"`
	AttendanceID     int        `json:"attendance_id"`
	AttendanceReason *string    `json:"attendance_reason"`
	StartDate        *date.Date `json:"start_date"`
	EndDate          *date.Date `json:"end_date"`
	UploadedFilePath *string    `json:"uploaded_file_path"`
	UploadedFileName *string    `json:"uploaded_file_name"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

type FulfillRequest struct {
	ID               int
	UploadedFilePath *string
	UploadedFileName *string
	StartDate        *date.Date
	EndDate          *date.Date
}

type FulfillResponse struct {
	ID           int       `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Type         string    `json:"type"`
	AttendanceID int       `json:"attendance_id"`
	CompletedAt  time.Time `json:"completed_at"`
	BlackoutDays int       `json:"blackout_days"`
}
