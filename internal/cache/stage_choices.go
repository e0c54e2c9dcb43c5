package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/repository"
)

const stageKeyPrefix = "offboarding:stages:"

// StageRepository caches the per-process stage lists that back stage choice
// fields. Writes go to the wrapped repository and drop the cached list of the
// affected process. Redis failures degrade to uncached reads.
type StageRepository struct {
	repository.StageRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStageRepository wraps inner with a Redis read-through cache. A nil client
// or a zero ttl disables caching.
func NewStageRepository(inner repository.StageRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *StageRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StageRepository{StageRepository: inner, client: client, ttl: ttl, logger: logger}
}

func stageKey(offboardingID string) string {
	return stageKeyPrefix + offboardingID
}

func (r *StageRepository) enabled() bool {
	return r.client != nil && r.ttl > 0
}

// ListByOffboarding serves the stage list from Redis when present.
func (r *StageRepository) ListByOffboarding(ctx context.Context, offboardingID string) ([]domain.Stage, error) {
	if !r.enabled() || offboardingID == "" {
		return r.StageRepository.ListByOffboarding(ctx, offboardingID)
	}

	key := stageKey(offboardingID)
	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var stages []domain.Stage
		if err := json.Unmarshal(raw, &stages); err == nil {
			return stages, nil
		}
		r.logger.Warn("discarding undecodable stage cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("stage cache read failed", zap.String("key", key), zap.Error(err))
	}

	stages, err := r.StageRepository.ListByOffboarding(ctx, offboardingID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(stages); err == nil {
		if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.Warn("stage cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return stages, nil
}

// Create stores the stage and invalidates its process's cached list.
func (r *StageRepository) Create(ctx context.Context, stage *domain.Stage) error {
	if err := r.StageRepository.Create(ctx, stage); err != nil {
		return err
	}
	r.invalidate(ctx, stage.OffboardingID)
	return nil
}

// Update stores the stage and invalidates its process's cached list.
func (r *StageRepository) Update(ctx context.Context, stage *domain.Stage) error {
	if err := r.StageRepository.Update(ctx, stage); err != nil {
		return err
	}
	r.invalidate(ctx, stage.OffboardingID)
	return nil
}

func (r *StageRepository) invalidate(ctx context.Context, offboardingID string) {
	if !r.enabled() || offboardingID == "" {
		return
	}
	if err := r.client.Del(ctx, stageKey(offboardingID)).Err(); err != nil {
		r.logger.Warn("stage cache invalidation failed", zap.String("offboarding_id", offboardingID), zap.Error(err))
	}
}
