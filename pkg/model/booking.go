package model

import (
	"time"
)

type Booking struct {
	ID            int       `json:"id,omitempty" validate:"omitempty,gt=0"`
	CarID         int       `json:"car_id" validate:"required,gt=0"`
	CustomerName  string    `json:"customer_name" validate:"required,min=1"`
	CustomerEmail string    `json:"customer_email" validate:"required,email"`
	StartDatetime time.Time `json:"start_datetime" validate:"required"`
	EndDatetime   time.Time `json:"end_datetime" validate:"required"`
}

func (b *Booking) EntityID() int      { return b.ID }
func (b *Booking) SetEntityID(id int) { b.ID = id }

// Overlaps reports whether the booking's half-open interval [start, end)
// intersects the given one. Touching endpoints do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartDatetime.Before(end) && b.EndDatetime.After(start)
}
