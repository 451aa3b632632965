package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rackwise/rackwise/internal/catalog/repository"
	"github.com/redis/go-redis/v9"
)

const (
	capacityCacheKey = "rackwise:capacity:summary"
	capacityCacheTTL = 5 * time.Minute
)

// CapacityService serves the per-vendor catalog summary backing the
// capacity dashboard. Results are cached in redis; imports and deletes
// invalidate.
type CapacityService struct {
	basketRepo *repository.BasketRepository
	rdb        *redis.Client
}

func NewCapacityService(basketRepo *repository.BasketRepository, rdb *redis.Client) *CapacityService {
	return &CapacityService{basketRepo: basketRepo, rdb: rdb}
}

// Summary returns model/configuration counts and net spend per vendor.
func (s *CapacityService) Summary(ctx context.Context) ([]repository.VendorStat, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, capacityCacheKey).Bytes(); err == nil {
			var stats []repository.VendorStat
			if json.Unmarshal(cached, &stats) == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.basketRepo.VendorStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.rdb.Set(ctx, capacityCacheKey, data, capacityCacheTTL)
		}
	}
	return stats, nil
}

// Invalidate drops the cached summary. Safe without redis.
func (s *CapacityService) Invalidate(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, capacityCacheKey)
	}
}
