package transport

import (
	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	From       *date.Date
	To         *date.Date
	EmployeeID *string
}

type GetListResponse struct {
	ID         int        `json:"id"`
	EmployeeID *string    `json:"employee_id"`
	TravelDate *date.Date `json:"travel_date"`
	FromPoint  *string    `json:"from_point"`
	ToPoint    *string    `json:"to_point"`
	WillUse    *bool      `json:"will_use"`
	Notes      *string    `json:"notes"`
}

type UpsertRequest struct {
	TravelDate *date.Date `json:"travel_date" form:"travel_date"`
	FromPoint  *string    `json:"from_point" form:"from_point"`
	ToPoint    *string    `json:"to_point" form:"to_point"`
	WillUse    *bool      `json:"will_use" form:"will_use"`
	Notes      *string    `json:"notes" form:"notes"`
}

type UpsertResponse struct {
	EmployeeID string     `json:"employee_id"`
	TravelDate *date.Date `json:"travel_date"`
	WillUse    bool       `json:"will_use"`
}
