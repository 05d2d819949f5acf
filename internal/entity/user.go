package entity

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	EmployeeID    *string `json:"employee_id"   bun:"employee_id"`
	FirstName     *string `json:"first_name"    bun:"first_name"`
	LastName      *string `json:"last_name"     bun:"last_name"`
	Password      *string `json:"password"      bun:"password"`
	Role          *string `json:"role"          bun:"role"`
	UsesTransport *bool   `json:"uses_transport" bun:"uses_transport"`
	HasCompanyCar *bool   `json:"has_company_car" bun:"has_company_car"`
}
