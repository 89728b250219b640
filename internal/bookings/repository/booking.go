package repository

import (
	"context"
	"time"

	bookingserrors "dealership/internal/bookings/errors"
	"dealership/pkg/model"
	"dealership/pkg/store"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, id int) (*model.Booking, error)
	FindAll(ctx context.Context) ([]*model.Booking, error)
	Delete(ctx context.Context, id int) error
	FindByCar(ctx context.Context, carID int) ([]*model.Booking, error)
	FindByRange(ctx context.Context, start, end *time.Time) ([]*model.Booking, error)
	FindByCarAndRange(ctx context.Context, carID int, start, end *time.Time) ([]*model.Booking, error)
	HasConflict(ctx context.Context, carID int, start, end time.Time, excludeID int) (bool, error)
}

type memoryBookingRepository struct {
	db *store.Store[*model.Booking]
}

func NewMemoryBookingRepository(db *store.Store[*model.Booking]) BookingRepository {
	return &memoryBookingRepository{db: db}
}

func (r *memoryBookingRepository) Create(_ context.Context, booking *model.Booking) (*model.Booking, error) {
	return r.db.Create(booking)
}

func (r *memoryBookingRepository) FindByID(_ context.Context, id int) (*model.Booking, error) {
	booking, ok := r.db.Get(id)
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return booking, nil
}

func (r *memoryBookingRepository) FindAll(_ context.Context) ([]*model.Booking, error) {
	return r.db.List(), nil
}

func (r *memoryBookingRepository) Delete(_ context.Context, id int) error {
	if !r.db.Delete(id) {
		return bookingserrors.ErrNotFound
	}
	return nil
}

func (r *memoryBookingRepository) FindByCar(_ context.Context, carID int) ([]*model.Booking, error) {
	matched := []*model.Booking{}
	for _, booking := range r.db.List() {
		if booking.CarID == carID {
			matched = append(matched, booking)
		}
	}
	return matched, nil
}

// FindByRange filters bookings by an optional datetime range. With both bounds
// given it is an overlap filter on the half-open interval [start, end); with
// only start it keeps bookings starting on or after it; with only end it keeps
// bookings ending on or before it; with neither it returns everything.
func (r *memoryBookingRepository) FindByRange(_ context.Context, start, end *time.Time) ([]*model.Booking, error) {
	bookings := r.db.List()
	if start == nil && end == nil {
		return bookings, nil
	}

	matched := []*model.Booking{}
	for _, booking := range bookings {
		switch {
		case start != nil && end != nil:
			if booking.Overlaps(*start, *end) {
				matched = append(matched, booking)
			}
		case start != nil:
			if !booking.StartDatetime.Before(*start) {
				matched = append(matched, booking)
			}
		default:
			if !booking.EndDatetime.After(*end) {
				matched = append(matched, booking)
			}
		}
	}
	return matched, nil
}

// FindByCarAndRange intersects the car filter and the range filter by booking
// identity; a booking qualifies only when both predicates match it.
func (r *memoryBookingRepository) FindByCarAndRange(ctx context.Context, carID int, start, end *time.Time) ([]*model.Booking, error) {
	byCar, err := r.FindByCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	byRange, err := r.FindByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rangeIDs := make(map[int]struct{}, len(byRange))
	for _, booking := range byRange {
		rangeIDs[booking.ID] = struct{}{}
	}

	matched := []*model.Booking{}
	for _, booking := range byCar {
		if _, ok := rangeIDs[booking.ID]; ok {
			matched = append(matched, booking)
		}
	}
	return matched, nil
}

// HasConflict reports whether any booking for carID overlaps [start, end).
// Touching endpoints are not a conflict. excludeID skips one booking, for
// checks made on behalf of an existing record; pass 0 to check them all.
func (r *memoryBookingRepository) HasConflict(ctx context.Context, carID int, start, end time.Time, excludeID int) (bool, error) {
	carBookings, err := r.FindByCar(ctx, carID)
	if err != nil {
		return false, err
	}

	for _, booking := range carBookings {
		if excludeID != 0 && booking.ID == excludeID {
			continue
		}
		if booking.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}
