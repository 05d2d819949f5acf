package user

import (
	"time"

	"github.com/uptrace/bun"
)

type SignInRequest struct {
	EmployeeID string `json:"employee_id" form:"employee_id"`
	Password   string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type Filter struct {
	Limit         *int
	Offset        *int
	Page          *int
	Search        *string
	UsesTransport *bool
}

type GetListResponse struct {
	ID            int     `json:"id"`
	EmployeeID    *string `json:"employee_id"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Role          *string `json:"role"`
	UsesTransport *bool   `json:"uses_transport"`
	HasCompanyCar *bool   `json:"has_company_car"`
}

type CreateRequest struct {
	EmployeeID    *string `json:"employee_id" form:"employee_id"`
	FirstName     *string `json:"first_name" form:"first_name"`
	LastName      *string `json:"last_name" form:"last_name"`
	Password      *string `json:"password" form:"password"`
	Role          *string `json:"role" form:"role"`
	UsesTransport *bool   `json:"uses_transport" form:"uses_transport"`
	HasCompanyCar *bool   `json:"has_company_car" form:"has_company_car"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID            int       `json:"id" bun:"-"`
	EmployeeID    *string   `json:"employee_id" bun:"employee_id"`
	FirstName     *string   `json:"first_name" bun:"first_name"`
	LastName      *string   `json:"last_name" bun:"last_name"`
	Password      *string   `json:"-" bun:"password"`
	Role          *string   `json:"role" bun:"role"`
	UsesTransport *bool     `json:"uses_transport" bun:"uses_transport"`
	HasCompanyCar *bool     `json:"has_company_car" bun:"has_company_car"`
	CreatedAt     time.Time `json:"created_at" bun:"created_at"`
	CreatedBy     int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID            int     `json:"id" form:"id"`
	EmployeeID    *string `json:"employee_id" form:"employee_id"`
	FirstName     *string `json:"first_name" form:"first_name"`
	LastName      *string `json:"last_name" form:"last_name"`
	Password      *string `json:"password" form:"password"`
	Role          *string `json:"role" form:"role"`
	UsesTransport *bool   `json:"uses_transport" form:"uses_transport"`
	HasCompanyCar *bool   `json:"has_company_car" form:"has_company_car"`
}
