package service

import (
	"context"
	"errors"

	dealerserrors "dealership/internal/dealers/errors"
	"dealership/internal/dealers/repository"
	"dealership/pkg/config"
	apperrors "dealership/pkg/errors"
	"dealership/pkg/model"
	"dealership/pkg/store"

	"github.com/go-playground/validator/v10"
)

type DealerService interface {
	Create(ctx context.Context, dealer *model.Dealer) (*model.Dealer, error)
	GetByID(ctx context.Context, id int) (*model.Dealer, error)
	GetAll(ctx context.Context) ([]*model.Dealer, error)
	EnsureSeeded(ctx context.Context) error
}

type dealerService struct {
	repo     repository.DealerRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewDealerService(repo repository.DealerRepository, cfg *config.Config) DealerService {
	return &dealerService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *dealerService) Create(ctx context.Context, dealer *model.Dealer) (*model.Dealer, error) {
	if err := s.validate.Struct(dealer); err != nil {
		s.cfg.Log.Warn("Dealer validation failed", "error", err)
		return nil, apperrors.Validation("Dealer validation failed", map[string]any{"error": err.Error()})
	}

	created, err := s.repo.Create(ctx, dealer)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperrors.Conflict("Dealer with this id already exists")
		}
		return nil, apperrors.Internal("Failed to create dealer", err)
	}

	s.cfg.Log.Info("Dealer created successfully", "id", created.ID, "name", created.Name)
	return created, nil
}

func (s *dealerService) GetByID(ctx context.Context, id int) (*model.Dealer, error) {
	dealer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dealerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Dealer", id)
		}
		return nil, apperrors.Internal("Failed to retrieve dealer", err)
	}
	return dealer, nil
}

func (s *dealerService) GetAll(ctx context.Context) ([]*model.Dealer, error) {
	dealers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve dealers", err)
	}
	return dealers, nil
}

// EnsureSeeded creates the configured initial dealer when the collection is
// empty. Runs once at process start; a populated collection is left alone.
func (s *dealerService) EnsureSeeded(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return apperrors.Internal("Failed to count dealers", err)
	}
	if count > 0 {
		return nil
	}

	seeded, err := s.repo.Create(ctx, &model.Dealer{
		Name:     s.cfg.SeedDealerName,
		Location: s.cfg.SeedDealerLocation,
	})
	if err != nil {
		return apperrors.Internal("Failed to seed initial dealer", err)
	}

	s.cfg.Log.Info("Seeded initial dealer", "id", seeded.ID, "name", seeded.Name)
	return nil
}
