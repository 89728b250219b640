package model

// CarStatus is the closed set of operational states a car can be in.
type CarStatus string

const (
	StatusAvailable   CarStatus = "available"
	StatusMaintenance CarStatus = "maintenance"
)

// IsValid reports whether s is one of the known statuses.
func (s CarStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance:
		return true
	}
	return false
}

type Car struct {
	ID         int       `json:"id,omitempty" validate:"omitempty,gt=0"`
	Brand      string    `json:"brand" validate:"required,min=1"`
	Model      string    `json:"model" validate:"required,min=1"`
	Year       int       `json:"year" validate:"required,gt=1900"`
	Color      string    `json:"color" validate:"required,min=1"`
	DailyPrice float64   `json:"daily_price" validate:"required,gt=0"`
	VIN        string    `json:"vin" validate:"required,len=17"`
	Status     CarStatus `json:"status" validate:"omitempty,oneof=available maintenance"`
	DealerID   int       `json:"dealer_id" validate:"required,gt=0"`
}

func (c *Car) EntityID() int      { return c.ID }
func (c *Car) SetEntityID(id int) { c.ID = id }

// CarUpdate is a partial update payload. Nil fields are left untouched on the
// existing record, including fields whose zero value would otherwise be valid.
type CarUpdate struct {
	Brand      *string    `json:"brand,omitempty" validate:"omitempty,min=1"`
	Model      *string    `json:"model,omitempty" validate:"omitempty,min=1"`
	Year       *int       `json:"year,omitempty" validate:"omitempty,gt=1900"`
	Color      *string    `json:"color,omitempty" validate:"omitempty,min=1"`
	DailyPrice *float64   `json:"daily_price,omitempty" validate:"omitempty,gt=0"`
	VIN        *string    `json:"vin,omitempty" validate:"omitempty,len=17"`
	Status     *CarStatus `json:"status,omitempty" validate:"omitempty,oneof=available maintenance"`
	DealerID   *int       `json:"dealer_id,omitempty" validate:"omitempty,gt=0"`
}
