package entity

import (
	"github.com/uptrace/bun"
)

// Absence reasons. Report is the only reason that asks for a medical
// report upload; every other reason is covered by the leave form.
const (
	ReasonAnnualLeave = "ANNUAL_LEAVE"
	ReasonReport      = "REPORT"
	ReasonBereavement = "BEREAVEMENT"
	ReasonBirth       = "BIRTH"
	ReasonExcuse      = "EXCUSE"
)

// Reasons lists every accepted absence reason.
var Reasons = []string{
	ReasonAnnualLeave,
	ReasonReport,
	ReasonBereavement,
	ReasonBirth,
	ReasonExcuse,
}

type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	EmployeeID        *string `json:"employee_id" bun:"employee_id"`
	Reason            *string `json:"reason" bun:"reason"`
	Description       *string `json:"description" bun:"description"`
	IsResolved        *bool   `json:"is_resolved" bun:"is_resolved"`
	DocumentRequestID *int    `json:"document_request_id" bun:"document_request_id"`
}
