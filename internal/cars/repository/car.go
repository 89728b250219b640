package repository

import (
	"context"

	carserrors "dealership/internal/cars/errors"
	"dealership/pkg/model"
	"dealership/pkg/store"
)

type CarRepository interface {
	Create(ctx context.Context, car *model.Car) (*model.Car, error)
	FindByID(ctx context.Context, id int) (*model.Car, error)
	FindAll(ctx context.Context) ([]*model.Car, error)
	Update(ctx context.Context, id int, car *model.Car) (*model.Car, error)
	Delete(ctx context.Context, id int) error
	FindByVIN(ctx context.Context, vin string) (*model.Car, error)
}

type memoryCarRepository struct {
	db *store.Store[*model.Car]
}

func NewMemoryCarRepository(db *store.Store[*model.Car]) CarRepository {
	return &memoryCarRepository{db: db}
}

func (r *memoryCarRepository) Create(_ context.Context, car *model.Car) (*model.Car, error) {
	return r.db.Create(car)
}

func (r *memoryCarRepository) FindByID(_ context.Context, id int) (*model.Car, error) {
	car, ok := r.db.Get(id)
	if !ok {
		return nil, carserrors.ErrNotFound
	}
	return car, nil
}

func (r *memoryCarRepository) FindAll(_ context.Context) ([]*model.Car, error) {
	return r.db.List(), nil
}

func (r *memoryCarRepository) Update(_ context.Context, id int, car *model.Car) (*model.Car, error) {
	updated, ok := r.db.Update(id, car)
	if !ok {
		return nil, carserrors.ErrNotFound
	}
	return updated, nil
}

func (r *memoryCarRepository) Delete(_ context.Context, id int) error {
	if !r.db.Delete(id) {
		return carserrors.ErrNotFound
	}
	return nil
}

// FindByVIN scans the collection for an exact VIN match and returns the first
// hit. The fleet is bounded per dealer, so a linear scan is fine here.
func (r *memoryCarRepository) FindByVIN(_ context.Context, vin string) (*model.Car, error) {
	for _, car := range r.db.List() {
		if car.VIN == vin {
			return car, nil
		}
	}
	return nil, carserrors.ErrNotFound
}
