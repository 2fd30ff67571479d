package services

import (
	"context"
	"fmt"

	"cajachica/internal/core"
)

type FundStore interface {
	CreateFund(ctx context.Context, f core.Fund) (int64, error)
	UpdateFund(ctx context.Context, f core.Fund) error
	DeleteFund(ctx context.Context, id int64) error
	GetFund(ctx context.Context, id int64) (core.Fund, error)
	ListFunds(ctx context.Context) ([]core.Fund, error)
}

// FundService manages pool replenishments.
type FundService struct {
	store FundStore
}

func NewFundService(store FundStore) *FundService {
	return &FundService{store: store}
}

func (s *FundService) CreateFund(ctx context.Context, f core.Fund) (int64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.CreateFund(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("save fund: %w", err)
	}
	return id, nil
}

func (s *FundService) UpdateFund(ctx context.Context, f core.Fund) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateFund(ctx, f); err != nil {
		return fmt.Errorf("update fund: %w", err)
	}
	return nil
}

func (s *FundService) DeleteFund(ctx context.Context, id int64) error {
	return s.store.DeleteFund(ctx, id)
}

func (s *FundService) GetFund(ctx context.Context, id int64) (core.Fund, error) {
	return s.store.GetFund(ctx, id)
}

func (s *FundService) ListFunds(ctx context.Context) ([]core.Fund, error) {
	return s.store.ListFunds(ctx)
}
