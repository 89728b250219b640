package repository

import (
	"context"

	dealerserrors "dealership/internal/dealers/errors"
	"dealership/pkg/model"
	"dealership/pkg/store"
)

type DealerRepository interface {
	Create(ctx context.Context, dealer *model.Dealer) (*model.Dealer, error)
	FindByID(ctx context.Context, id int) (*model.Dealer, error)
	FindAll(ctx context.Context) ([]*model.Dealer, error)
	Count(ctx context.Context) (int, error)
}

type memoryDealerRepository struct {
	db *store.Store[*model.Dealer]
}

func NewMemoryDealerRepository(db *store.Store[*model.Dealer]) DealerRepository {
	return &memoryDealerRepository{db: db}
}

func (r *memoryDealerRepository) Create(_ context.Context, dealer *model.Dealer) (*model.Dealer, error) {
	return r.db.Create(dealer)
}

func (r *memoryDealerRepository) FindByID(_ context.Context, id int) (*model.Dealer, error) {
	dealer, ok := r.db.Get(id)
	if !ok {
		return nil, dealerserrors.ErrNotFound
	}
	return dealer, nil
}

func (r *memoryDealerRepository) FindAll(_ context.Context) ([]*model.Dealer, error) {
	return r.db.List(), nil
}

func (r *memoryDealerRepository) Count(_ context.Context) (int, error) {
	return r.db.Len(), nil
}
