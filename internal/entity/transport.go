package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// One transport row per employee per travel day.
type Transport struct {
	bun.BaseModel `bun:"table:transport"`

	BasicEntity
	EmployeeID *string    `json:"employee_id" bun:"employee_id"`
	TravelDate *time.Time `json:"travel_date" bun:"travel_date"`
	FromPoint  *string    `json:"from_point" bun:"from_point"`
	ToPoint    *string    `json:"to_point" bun:"to_point"`
	WillUse    *bool      `json:"will_use" bun:"will_use"`
	Notes      *string    `json:"notes" bun:"notes"`
}
