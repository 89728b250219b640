package model

type Dealer struct {
	ID       int    `json:"id,omitempty" validate:"omitempty,gt=0"`
	Name     string `json:"name" validate:"required,min=1"`
	Location string `json:"location,omitempty" validate:"omitempty"`
}

func (d *Dealer) EntityID() int      { return d.ID }
func (d *Dealer) SetEntityID(id int) { d.ID = id }
