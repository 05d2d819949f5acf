package service

import (
	"time"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Active *bool
	Search *string
}

type GetListResponse struct {
	ID            int     `json:"id"`
	Name          *string `json:"name"`
	StartPoint    *string `json:"start_point"`
	EndPoint      *string `json:"end_point"`
	StartTime     *string `json:"start_time"`
	PlateNumber   *string `json:"plate_number"`
	SeatCount     *int    `json:"seat_count"`
	FuelType      *string `json:"fuel_type"`
	Brand         *string `json:"brand"`
	Model         *string `json:"model"`
	IsActive      *bool   `json:"is_active"`
	AssignedCount int     `json:"assigned_count"`
}

type GetDetailByIdResponse struct {
	ID          int                  `json:"id"`
	Name        *string              `json:"name"`
	StartPoint  *string              `json:"start_point"`
	EndPoint    *string              `json:"end_point"`
	StartTime   *string              `json:"start_time"`
	PlateNumber *string              `json:"plate_number"`
	SeatCount   *int                 `json:"seat_count"`
	FuelType    *string              `json:"fuel_type"`
	Brand       *string              `json:"brand"`
	Model       *string              `json:"model"`
	IsActive    *bool                `json:"is_active"`
	Assignments []AssignmentResponse `json:"assignments"`
}

type AssignmentResponse struct {
	ID         int        `json:"id"`
	EmployeeID *string    `json:"employee_id"`
	Fullname   *string    `json:"fullname"`
	AssignedAt *time.Time `json:"assigned_at"`
}

type AssignmentFilter struct {
	ServiceID  *int
	EmployeeID *string
}

type AssignmentListResponse struct {
	ID          int        `json:"id"`
	ServiceID   *int       `json:"service_id"`
	ServiceName *string    `json:"service_name"`
	EmployeeID  *string    `json:"employee_id"`
	Fullname    *string    `json:"fullname"`
	AssignedAt  *time.Time `json:"assigned_at"`
}

type CreateRequest struct {
	Name        *string `json:"name" form:"name"`
	StartPoint  *string `json:"start_point" form:"start_point"`
	EndPoint    *string `json:"end_point" form:"end_point"`
	StartTime   *string `json:"start_time" form:"start_time"`
	PlateNumber *string `json:"plate_number" form:"plate_number"`
	SeatCount   *int    `json:"seat_count" form:"seat_count" validate:"omitempty,min=1,max=100"`
	FuelType    *string `json:"fuel_type" form:"fuel_type"`
	Brand       *string `json:"brand" form:"brand"`
	Model       *string `json:"model" form:"model"`
}

type CreateResponse struct {
	ID          int     `json:"id"`
	Name        *string `json:"name"`
	StartPoint  *string `json:"start_point"`
	EndPoint    *string `json:"end_point"`
	StartTime   *string `json:"start_time"`
	PlateNumber *string `json:"plate_number"`
	SeatCount   *int    `json:"seat_count"`
	FuelType    *string `json:"fuel_type"`
	Brand       *string `json:"brand"`
	Model       *string `json:"model"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateRequest struct {
	ID          int     `json:"id" form:"id"`
	Name        *string `json:"name" form:"name"`
	StartPoint  *string `json:"start_point" form:"start_point"`
	EndPoint    *string `json:"end_point" form:"end_point"`
	StartTime   *string `json:"start_time" form:"start_time"`
	PlateNumber *string `json:"plate_number" form:"plate_number"`
	SeatCount   *int    `json:"seat_count" form:"seat_count" validate:"omitempty,min=1,max=100"`
	FuelType    *string `json:"fuel_type" form:"fuel_type"`
	Brand       *string `json:"brand" form:"brand"`
	Model       *string `json:"model" form:"model"`
	IsActive    *bool   `json:"is_active" form:"is_active"`
}

type AssignRequest struct {
	ServiceID   int      `json:"-"`
	EmployeeIDs []string `json:"employee_ids" form:"employee_ids"`
}

// AssignOutcome reports what happened to every selected employee:
// assigned, already riding this service, riding another service, or
// turned away because the seats ran out.
type AssignOutcome struct {
	ServiceID        int      `json:"service_id"`
	Assigned         []string `json:"assigned"`
	AlreadyOnService []string `json:"already_on_service"`
	BusyElsewhere    []string `json:"busy_elsewhere"`
	OverCapacity     []string `json:"over_capacity"`
	SeatsLeft        int      `json:"seats_left"`
}
