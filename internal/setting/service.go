package setting

import (
	"context"
	"strings"
	"time"

	"hangwa-be/internal/logger"
	"hangwa-be/internal/pricing"

	"go.uber.org/zap"
)

// SnapshotCache holds the full settings map between writes.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context) (map[string]string, bool, error)
	SetSnapshot(ctx context.Context, snapshot map[string]string, ttl time.Duration) error
	InvalidateSnapshot(ctx context.Context) error
}

type Service interface {
	List(ctx context.Context) ([]*Setting, error)
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, input UpsertInput) (*Setting, error)
	Snapshot(ctx context.Context) (pricing.Snapshot, error)
}

type service struct {
	repo  Repository
	cache SnapshotCache
	ttl   time.Duration
}

// NewService builds the settings service. cache may be nil, in which case every
// snapshot is read from the database.
func NewService(repo Repository, cache SnapshotCache, ttl time.Duration) Service {
	return &service{repo: repo, cache: cache, ttl: ttl}
}

func (s *service) List(ctx context.Context) ([]*Setting, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, key string) (*Setting, error) {
	return s.repo.Get(ctx, strings.TrimSpace(key))
}

func (s *service) Upsert(ctx context.Context, input UpsertInput) (*Setting, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Upsert"),
		zap.String("key", input.Key),
	)

	input.Key = strings.TrimSpace(input.Key)
	if input.Key == "" {
		return nil, ErrKeyRequired
	}
	input.Value = strings.TrimSpace(input.Value)

	saved, err := s.repo.Upsert(ctx, input)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateSnapshot(ctx); err != nil {
			log.Warn("failed to invalidate settings cache", zap.Error(err))
		}
	}

	log.Info("setting updated", zap.String("value", saved.Value))
	return saved, nil
}

// Snapshot returns every setting as a key/value map for pricing. A cache
// failure falls through to the database.
func (s *service) Snapshot(ctx context.Context) (pricing.Snapshot, error) {
	log := logger.FromCtx(ctx)

	if s.cache != nil {
		cached, ok, err := s.cache.GetSnapshot(ctx)
		if err != nil {
			log.Warn("settings cache read failed", zap.Error(err))
		}
		if ok {
			return pricing.Snapshot(cached), nil
		}
	}

	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make(pricing.Snapshot, len(settings))
	for _, st := range settings {
		snapshot[st.Key] = st.Value
	}

	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, snapshot, s.ttl); err != nil {
			log.Warn("settings cache write failed", zap.Error(err))
		}
	}

	return snapshot, nil
}
