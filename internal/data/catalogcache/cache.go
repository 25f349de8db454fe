// Package catalogcache keeps a read-through copy of the activity catalog in redis.
// Entries are keyed by the catalog version, so any catalog write makes old entries
// unreachable and they simply expire.
package catalogcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	learningrepo "github.com/yungbote/studygroup-backend/internal/data/repos/learning"
	types "github.com/yungbote/studygroup-backend/internal/domain"
	"github.com/yungbote/studygroup-backend/internal/observability"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

var ErrMiss = errors.New("catalog cache miss")

const (
	breakerName   = "catalog-cache"
	defaultPrefix = "studygroup:catalog:"
	defaultTTL    = 10 * time.Minute
	loadTimeout   = 15 * time.Second
)

// Backend is the byte store behind the cache.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisBackend struct {
	rdb *goredis.Client
}

func NewRedisBackend(rdb *goredis.Client) Backend {
	return &redisBackend{rdb: rdb}
}

func (b *redisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrMiss
	}
	return raw, err
}

func (b *redisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.rdb.Set(ctx, key, value, ttl).Err()
}

// Catalog loads the full activity catalog with ordered subtopics.
type Catalog interface {
	List(ctx context.Context) ([]*types.Activity, error)
}

type Config struct {
	Prefix string
	TTL    time.Duration
}

type cache struct {
	repo    learningrepo.CatalogRepo
	backend Backend
	cb      *gobreaker.CircuitBreaker[[]byte]
	group   singleflight.Group
	metrics *observability.Metrics
	log     *logger.Logger
	prefix  string
	ttl     time.Duration
}

// New returns a Catalog reading through backend. A nil backend reads the
// database on every call.
func New(repo learningrepo.CatalogRepo, backend Backend, metrics *observability.Metrics, baseLog *logger.Logger, cfg Config) Catalog {
	c := &cache{
		repo:    repo,
		backend: backend,
		metrics: metrics,
		log:     baseLog.With("service", "CatalogCache"),
		prefix:  cfg.Prefix,
		ttl:     cfg.TTL,
	}
	if c.prefix == "" {
		c.prefix = defaultPrefix
	}
	if c.ttl <= 0 {
		c.ttl = defaultTTL
	}
	metrics.SetBreakerState(breakerName, 0)
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrMiss)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			c.metrics.SetBreakerState(name, stateValue(to))
			c.metrics.IncBreakerTransition(name, from.String(), to.String())
		},
	})
	return c
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (c *cache) List(ctx context.Context) ([]*types.Activity, error) {
	if c.backend == nil {
		c.metrics.IncCatalogCache("bypass")
		return c.repo.ListWithSubtopics(ctx, nil)
	}

	version, err := c.repo.Version(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog version: %w", err)
	}
	key := c.prefix + version.Key()

	// The shared load outlives any single caller; each caller still gives up on its own ctx.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return c.load(lctx, key)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*types.Activity), nil
	}
}

func (c *cache) load(ctx context.Context, key string) ([]*types.Activity, error) {
	raw, err := c.cb.Execute(func() ([]byte, error) {
		return c.backend.Get(ctx, key)
	})
	switch {
	case err == nil:
		var out []*types.Activity
		jerr := json.Unmarshal(raw, &out)
		if jerr == nil {
			c.metrics.IncCatalogCache("hit")
			return out, nil
		}
		c.log.Warn("catalog cache entry unreadable; reloading", "key", key, "error", jerr)
		c.metrics.IncCatalogCache("error")
	case errors.Is(err, ErrMiss):
		c.metrics.IncCatalogCache("miss")
	default:
		c.log.Warn("catalog cache read failed; using database", "key", key, "error", err)
		c.metrics.IncCatalogCache("error")
	}

	out, err := c.repo.ListWithSubtopics(ctx, nil)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// store is best effort; a failed write only costs the next reader a database trip.
func (c *cache) store(ctx context.Context, key string, activities []*types.Activity) {
	raw, err := json.Marshal(activities)
	if err != nil {
		c.log.Warn("catalog cache encode failed", "error", err)
		return
	}
	if _, err := c.cb.Execute(func() ([]byte, error) {
		return nil, c.backend.Set(ctx, key, raw, c.ttl)
	}); err != nil {
		c.log.Warn("catalog cache write failed", "key", key, "error", err)
	}
}
