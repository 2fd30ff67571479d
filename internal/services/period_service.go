package services

import (
	"context"
	"errors"
	"fmt"

	"cajachica/internal/core"
	"cajachica/internal/storage"
)

// ErrActivePeriodExists is returned when a month already carries an active
// custom period other than the one being edited.
var ErrActivePeriodExists = errors.New("an active custom period already exists for this month")

type PeriodStore interface {
	core.PeriodLookup
	HasOtherActivePeriod(ctx context.Context, year, month int, exceptID int64) (bool, error)
	CreatePeriod(ctx context.Context, p core.CustomPeriod) (int64, error)
	UpdatePeriod(ctx context.Context, p core.CustomPeriod) error
	DeactivatePeriod(ctx context.Context, id int64) error
	ListPeriods(ctx context.Context) ([]core.CustomPeriod, error)
}

// PeriodService manages custom period overrides and exposes month resolution.
type PeriodService struct {
	store    PeriodStore
	resolver *core.PeriodResolver
}

func NewPeriodService(store PeriodStore) *PeriodService {
	return &PeriodService{
		store:    store,
		resolver: core.NewPeriodResolver(store),
	}
}

// MonthLimits resolves the bounds for a "YYYY-MM" key, honoring any active
// override and degrading to natural calendar bounds on lookup failure.
func (s *PeriodService) MonthLimits(ctx context.Context, yearMonth string) (core.MonthLimits, error) {
	return s.resolver.MonthLimitsFromString(ctx, yearMonth)
}

func (s *PeriodService) HasCustomPeriod(ctx context.Context, year, month int) bool {
	return s.resolver.HasCustomPeriod(ctx, year, month)
}

func (s *PeriodService) CreatePeriod(ctx context.Context, p core.CustomPeriod) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.Active {
		if err := s.checkNoOtherActive(ctx, p.Year, p.Month, 0); err != nil {
			return 0, err
		}
	}
	id, err := s.store.CreatePeriod(ctx, p)
	if errors.Is(err, storage.ErrDuplicate) {
		// The partial unique index caught a concurrent writer.
		return 0, ErrActivePeriodExists
	}
	if err != nil {
		return 0, fmt.Errorf("save period: %w", err)
	}
	return id, nil
}

func (s *PeriodService) UpdatePeriod(ctx context.Context, p core.CustomPeriod) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Active {
		// The row being edited may keep its own slot.
		if err := s.checkNoOtherActive(ctx, p.Year, p.Month, p.ID); err != nil {
			return err
		}
	}
	err := s.store.UpdatePeriod(ctx, p)
	if errors.Is(err, storage.ErrDuplicate) {
		return ErrActivePeriodExists
	}
	if err != nil {
		return fmt.Errorf("update period: %w", err)
	}
	return nil
}

func (s *PeriodService) DeactivatePeriod(ctx context.Context, id int64) error {
	return s.store.DeactivatePeriod(ctx, id)
}

func (s *PeriodService) ListPeriods(ctx context.Context) ([]core.CustomPeriod, error) {
	return s.store.ListPeriods(ctx)
}

func (s *PeriodService) checkNoOtherActive(ctx context.Context, year, month int, exceptID int64) error {
	exists, err := s.store.HasOtherActivePeriod(ctx, year, month, exceptID)
	if err != nil {
		return fmt.Errorf("check active period: %w", err)
	}
	if exists {
		return ErrActivePeriodExists
	}
	return nil
}
