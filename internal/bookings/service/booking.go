package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "dealership/internal/bookings/errors"
	"dealership/internal/bookings/repository"
	"dealership/internal/bookings/validator"
	carserrors "dealership/internal/cars/errors"
	carsrepo "dealership/internal/cars/repository"
	"dealership/pkg/config"
	apperrors "dealership/pkg/errors"
	"dealership/pkg/model"
	"dealership/pkg/store"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, id int) (*model.Booking, error)
	List(ctx context.Context, carID *int, start, end *time.Time) ([]*model.Booking, error)
	Delete(ctx context.Context, id int) error
	FindAvailableCars(ctx context.Context, start, end time.Time) ([]*model.Car, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	carRepo   carsrepo.CarRepository
	validator *validator.BookingValidator
	cfg       *config.Config

	// mu serializes the conflict check and the insert. Check-then-insert is
	// two store calls, so without this a concurrent pair of requests for the
	// same interval could both pass the check.
	mu sync.Mutex
}

func NewBookingService(
	repo repository.BookingRepository,
	carRepo carsrepo.CarRepository,
	bookingValidator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		carRepo:   carRepo,
		validator: bookingValidator,
		cfg:       cfg,
	}
}

// Create validates the payload, then confirms the car exists, is available,
// and has no overlapping booking before inserting. Structural validation runs
// first: a malformed payload fails as such even when the car is also missing.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	car, err := s.carRepo.FindByID(ctx, booking.CarID)
	if err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Car", booking.CarID)
		}
		return nil, apperrors.Internal("Failed to check car existence", err)
	}

	switch car.Status {
	case model.StatusAvailable:
	case model.StatusMaintenance:
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Car with id %d is not available (status: %s)", car.ID, car.Status,
		))
	default:
		return nil, apperrors.Internal(fmt.Sprintf("car %d has unknown status %q", car.ID, car.Status), nil)
	}

	conflict, err := s.repo.HasConflict(ctx, booking.CarID, booking.StartDatetime, booking.EndDatetime, 0)
	if err != nil {
		return nil, apperrors.Internal("Failed to check booking conflicts", err)
	}
	if conflict {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Car with id %d is already booked for the selected time period", booking.CarID,
		))
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperrors.Conflict(fmt.Sprintf("Booking with id %d already exists", booking.ID))
		}
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", created.ID,
		"car_id", created.CarID,
		"start_datetime", created.StartDatetime,
		"end_datetime", created.EndDatetime,
	)
	return created, nil
}

func (s *bookingService) GetByID(ctx context.Context, id int) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

// List composes the optional car filter and the optional datetime range
// filter. When both are present the result must satisfy both predicates.
func (s *bookingService) List(ctx context.Context, carID *int, start, end *time.Time) ([]*model.Booking, error) {
	var bookings []*model.Booking
	var err error

	switch {
	case carID != nil && (start != nil || end != nil):
		bookings, err = s.repo.FindByCarAndRange(ctx, *carID, start, end)
	case carID != nil:
		bookings, err = s.repo.FindByCar(ctx, *carID)
	default:
		bookings, err = s.repo.FindByRange(ctx, start, end)
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// Delete cancels a booking, removing the record entirely and freeing its
// interval immediately. A booking that has already started is still
// cancellable.
func (s *bookingService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking cancelled successfully", "id", id)
	return nil
}

// FindAvailableCars returns, in catalog order, every car that is in the
// available status and has no booking overlapping [start, end).
func (s *bookingService) FindAvailableCars(ctx context.Context, start, end time.Time) ([]*model.Car, error) {
	if !end.After(start) {
		return nil, apperrors.Validation("end_datetime must be after start_datetime", nil)
	}

	cars, err := s.carRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve cars", err)
	}

	available := []*model.Car{}
	for _, car := range cars {
		switch car.Status {
		case model.StatusAvailable:
		case model.StatusMaintenance:
			continue
		default:
			continue
		}

		conflict, err := s.repo.HasConflict(ctx, car.ID, start, end, 0)
		if err != nil {
			return nil, apperrors.Internal("Failed to check booking conflicts", err)
		}
		if !conflict {
			available = append(available, car)
		}
	}
	return available, nil
}
