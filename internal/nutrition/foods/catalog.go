package foods

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/dietplan/internal/telemetry/metrics"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
)

const (
	megabyte           = 1024 * 1024
	DefaultCacheSizeMB = 16
	DefaultCacheTTL    = 10 * time.Minute
)

type foodsRepo interface {
	Search(ctx context.Context, params SearchParams) ([]Food, error)
	Get(ctx context.Context, id int, userID string) (*Food, error)
	Add(ctx context.Context, food Food) (*Food, error)
	Update(ctx context.Context, food Food, userID string) error
	Delete(ctx context.Context, id int, userID string) error
}

// Catalog puts a search cache in front of the foods repo. Any custom food
// write drops the whole cache.
type Catalog struct {
	repo     foodsRepo
	cache    *freecache.Cache
	cacheTTL time.Duration
	metrics  *metrics.Manager
}

func NewCatalog(repo foodsRepo, cacheSizeMB int, cacheTTL time.Duration, metricsManager *metrics.Manager) *Catalog {
	if cacheSizeMB <= 0 {
		cacheSizeMB = DefaultCacheSizeMB
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Catalog{
		repo:     repo,
		cache:    freecache.NewCache(cacheSizeMB * megabyte),
		cacheTTL: cacheTTL,
		metrics:  metricsManager,
	}
}

func searchCacheKey(p SearchParams) []byte {
	return []byte(fmt.Sprintf("search::%s::%s::%s::%d",
		strings.ToLower(strings.TrimSpace(p.Query)), p.Category, p.UserID, p.Limit))
}

func (c *Catalog) Search(ctx context.Context, params SearchParams) (_ []Food, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.foods.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	params = params.normalized()
	cacheKey := searchCacheKey(params)
	if cached, err := c.cache.Get(cacheKey); err == nil {
		var foods []Food
		if err := json.Unmarshal(cached, &foods); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			c.metrics.CounterFoodSearches.WithLabelValues("hit").Inc()
			return foods, nil
		} else {
			log.Errorf("failed to unmarshal cached food search %s: %s", cacheKey, err)
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))
	c.metrics.CounterFoodSearches.WithLabelValues("miss").Inc()

	foods, err := c.repo.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	if foods == nil {
		foods = []Food{}
	}

	foodsJson, err := json.Marshal(foods)
	if err != nil {
		log.Errorf("failed to marshal food search results: %s", err)
		return foods, nil
	}
	if err := c.cache.Set(cacheKey, foodsJson, int(c.cacheTTL.Seconds())); err != nil {
		log.Errorf("failed to cache food search %s: %s", cacheKey, err)
	}

	return foods, nil
}

// Get returns a public food, or a custom one if userID created it.
func (c *Catalog) Get(ctx context.Context, id int, userID string) (*Food, error) {
	return c.repo.Get(ctx, id, userID)
}

// AddCustom stores a food owned by userID.
func (c *Catalog) AddCustom(ctx context.Context, food Food, userID string) (*Food, error) {
	food.ID = 0
	food.IsCustom = true
	food.CreatedBy = userID
	if food.CreatedAt.IsZero() {
		food.CreatedAt = time.Now()
	}

	added, err := c.repo.Add(ctx, food)
	if err != nil {
		return nil, err
	}
	c.cache.Clear()
	return added, nil
}

func (c *Catalog) UpdateCustom(ctx context.Context, food Food, userID string) error {
	if err := c.repo.Update(ctx, food, userID); err != nil {
		return err
	}
	c.cache.Clear()
	return nil
}

func (c *Catalog) DeleteCustom(ctx context.Context, id int, userID string) error {
	if err := c.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	c.cache.Clear()
	return nil
}
