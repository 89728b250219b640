package service

import (
	"context"
	"errors"
	"fmt"

	bookingsrepo "dealership/internal/bookings/repository"
	carserrors "dealership/internal/cars/errors"
	"dealership/internal/cars/repository"
	"dealership/internal/cars/validator"
	dealerserrors "dealership/internal/dealers/errors"
	dealersrepo "dealership/internal/dealers/repository"
	"dealership/pkg/config"
	apperrors "dealership/pkg/errors"
	"dealership/pkg/model"
	"dealership/pkg/store"
)

type CarService interface {
	Create(ctx context.Context, car *model.Car) (*model.Car, error)
	GetByID(ctx context.Context, id int) (*model.Car, error)
	GetAll(ctx context.Context) ([]*model.Car, error)
	Update(ctx context.Context, id int, updates *model.CarUpdate) (*model.Car, error)
	Delete(ctx context.Context, id int) error
}

type carService struct {
	repo        repository.CarRepository
	dealerRepo  dealersrepo.DealerRepository
	bookingRepo bookingsrepo.BookingRepository
	validator   *validator.CarValidator
	cfg         *config.Config
}

func NewCarService(
	repo repository.CarRepository,
	dealerRepo dealersrepo.DealerRepository,
	bookingRepo bookingsrepo.BookingRepository,
	carValidator *validator.CarValidator,
	cfg *config.Config,
) CarService {
	return &carService{
		repo:        repo,
		dealerRepo:  dealerRepo,
		bookingRepo: bookingRepo,
		validator:   carValidator,
		cfg:         cfg,
	}
}

func (s *carService) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	if car.Status == "" {
		car.Status = model.StatusAvailable
	}

	if err := s.validator.Validate(car); err != nil {
		s.cfg.Log.Warn("Car validation failed", "error", err)
		return nil, apperrors.Validation("Car validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.dealerRepo.FindByID(ctx, car.DealerID); err != nil {
		if errors.Is(err, dealerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Dealer", car.DealerID)
		}
		return nil, apperrors.Internal("Failed to check dealer existence", err)
	}

	if err := s.ensureVINUnique(ctx, car.VIN); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, car)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperrors.Conflict(fmt.Sprintf("Car with id %d already exists", car.ID))
		}
		return nil, apperrors.Internal("Failed to create car", err)
	}

	s.cfg.Log.Info("Car created successfully",
		"id", created.ID,
		"vin", created.VIN,
		"dealer_id", created.DealerID,
	)
	return created, nil
}

func (s *carService) GetByID(ctx context.Context, id int) (*model.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Car", id)
		}
		return nil, apperrors.Internal("Failed to retrieve car", err)
	}
	return car, nil
}

func (s *carService) GetAll(ctx context.Context) ([]*model.Car, error) {
	cars, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve cars", err)
	}
	return cars, nil
}

// Update applies a partial payload over the existing record. Only fields
// present in the payload change; referential checks run only for the fields
// being changed.
func (s *carService) Update(ctx context.Context, id int, updates *model.CarUpdate) (*model.Car, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Car", id)
		}
		return nil, apperrors.Internal("Failed to check car existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Car update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	if updates.DealerID != nil && *updates.DealerID != existing.DealerID {
		if _, err := s.dealerRepo.FindByID(ctx, *updates.DealerID); err != nil {
			if errors.Is(err, dealerserrors.ErrNotFound) {
				return nil, apperrors.NotFoundWithID("Dealer", *updates.DealerID)
			}
			return nil, apperrors.Internal("Failed to check dealer existence", err)
		}
	}

	if updates.VIN != nil && *updates.VIN != existing.VIN {
		if err := s.ensureVINUnique(ctx, *updates.VIN); err != nil {
			return nil, err
		}
	}

	merged := s.mergeCarUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Car validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Car validation failed", map[string]any{"error": err.Error()})
	}

	updated, err := s.repo.Update(ctx, id, merged)
	if err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Car", id)
		}
		return nil, apperrors.Internal("Failed to update car", err)
	}

	s.cfg.Log.Info("Car updated successfully", "id", id)
	return updated, nil
}

// Delete refuses to remove a car that any booking references, past or future.
func (s *carService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Car", id)
		}
		return apperrors.Internal("Failed to check car existence", err)
	}

	bookings, err := s.bookingRepo.FindByCar(ctx, id)
	if err != nil {
		return apperrors.Internal("Failed to check car bookings", err)
	}
	if len(bookings) > 0 {
		return apperrors.Conflict(fmt.Sprintf(
			"Cannot delete car with id %d: it has %d active booking(s)", id, len(bookings),
		))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Car", id)
		}
		return apperrors.Internal("Failed to delete car", err)
	}

	s.cfg.Log.Info("Car deleted successfully", "id", id)
	return nil
}

func (s *carService) ensureVINUnique(ctx context.Context, vin string) error {
	_, err := s.repo.FindByVIN(ctx, vin)
	if err == nil {
		return apperrors.Conflict(fmt.Sprintf("Car with VIN %s already exists", vin))
	}
	if !errors.Is(err, carserrors.ErrNotFound) {
		return apperrors.Internal("Failed to check VIN uniqueness", err)
	}
	return nil
}

func (s *carService) mergeCarUpdates(existing *model.Car, updates *model.CarUpdate) *model.Car {
	merged := *existing

	if updates.Brand != nil {
		merged.Brand = *updates.Brand
	}
	if updates.Model != nil {
		merged.Model = *updates.Model
	}
	if updates.Year != nil {
		merged.Year = *updates.Year
	}
	if updates.Color != nil {
		merged.Color = *updates.Color
	}
	if updates.DailyPrice != nil {
		merged.DailyPrice = *updates.DailyPrice
	}
	if updates.VIN != nil {
		merged.VIN = *updates.VIN
	}
	if updates.Status != nil {
		merged.Status = *updates.Status
	}
	if updates.DealerID != nil {
		merged.DealerID = *updates.DealerID
	}

	return &merged
}
