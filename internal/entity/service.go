package entity

import (
	"github.com/uptrace/bun"
)

type Service struct {
	bun.BaseModel `bun:"table:service"`

	BasicEntity
	Name        *string `json:"name" bun:"name"`
	StartPoint  *string `json:"start_point" bun:"start_point"`
	EndPoint    *string `json:"end_point" bun:"end_point"`
	StartTime   *string `json:"start_time" bun:"start_time"`
	PlateNumber *string `json:"plate_number" bun:"plate_number"`
	SeatCount   *int    `json:"seat_count" bun:"seat_count"`
	FuelType    *string `json:"fuel_type" bun:"fuel_type"`
	Brand       *string `json:"brand" bun:"brand"`
	Model       *string `json:"model" bun:"model"`
	IsActive    *bool   `json:"is_active" bun:"is_active"`
}
