package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wordbank/internal/model"
	"wordbank/internal/provider"
	"wordbank/internal/repository"
)

// Tunables control the refresh controller thresholds.
type Tunables struct {
	Capacity      int64
	EvictionBatch int
	RefreshBatch  int
	StaleWindow   time.Duration
}

func DefaultTunables() Tunables {
	return Tunables{
		Capacity:      1000,
		EvictionBatch: 100,
		RefreshBatch:  100,
		StaleWindow:   24 * time.Hour,
	}
}

// Generator produces a batch of drafts. Generate must always return exactly
// n drafts; the provider chain satisfies this by construction.
type Generator interface {
	Generate(ctx context.Context, n int) []model.Draft
	HasProviders() bool
}

// Notifier delivers best-effort operational alerts.
type Notifier interface {
	Notify(ctx context.Context, msg string)
}

// RefreshService decides when stored content is evicted and regenerated.
type RefreshService struct {
	repo     *repository.CategoryRepository
	gen      Generator
	tun      Tunables
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewRefreshService(repo *repository.CategoryRepository, gen Generator, tun Tunables, notifier Notifier, log *zap.Logger) *RefreshService {
	return &RefreshService{
		repo:     repo,
		gen:      gen,
		tun:      tun,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the staleness clock.
func (s *RefreshService) WithClock(now func() time.Time) *RefreshService {
	s.now = now
	return s
}

// EnsureFresh evicts over-capacity records and regenerates stale content.
// Both checks are evaluated against the same pre-call snapshot and fire
// independently, so one call can insert up to two refresh batches. Provider
// problems never surface here; only store errors do.
//
// Concurrent calls are deliberately not serialized: two callers can observe
// the same snapshot and both generate, and the resulting duplicate names
// collapse into skipped conflicts at insert time.
func (s *RefreshService) EnsureFresh(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	latest, err := s.repo.LatestCreatedAt(ctx)
	if err != nil {
		return fmt.Errorf("latest created at: %w", err)
	}

	if count > s.tun.Capacity {
		ids, err := s.repo.SampleRandomIDs(ctx, s.tun.EvictionBatch)
		if err != nil {
			return fmt.Errorf("sample eviction ids: %w", err)
		}
		if err := s.repo.DeleteByIDs(ctx, ids); err != nil {
			return fmt.Errorf("evict categories: %w", err)
		}
		s.log.Info("evicted categories over capacity",
			zap.Int64("count", count),
			zap.Int("deleted", len(ids)))
		if err := s.insertBatch(ctx); err != nil {
			return err
		}
	}

	if latest == nil || s.now().Sub(*latest) >= s.tun.StaleWindow {
		if err := s.insertBatch(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *RefreshService) insertBatch(ctx context.Context) error {
	drafts := s.gen.Generate(ctx, s.tun.RefreshBatch)
	s.alertIfDegraded(ctx, drafts)

	inserted, skipped, err := s.repo.InsertBatch(ctx, drafts)
	if err != nil {
		return fmt.Errorf("insert generated batch: %w", err)
	}
	s.log.Info("inserted generated categories",
		zap.Int64("inserted", inserted),
		zap.Int64("skipped", skipped))
	return nil
}

// alertIfDegraded notifies the operator when configured providers all failed
// and the batch came from the local generator instead.
func (s *RefreshService) alertIfDegraded(ctx context.Context, drafts []model.Draft) {
	if s.notifier == nil || !s.gen.HasProviders() || len(drafts) == 0 {
		return
	}
	if drafts[0].Source != provider.SourceFallback {
		return
	}
	s.notifier.Notify(ctx, fmt.Sprintf(
		"wordbank: all generation providers failed, served %d fallback categories", len(drafts)))
}
