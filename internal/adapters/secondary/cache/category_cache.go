package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

const (
	categoryKeyPrefix = "category:name:"
	categoryListKey   = "category:all"
)

// DTO interne pour sérialiser sans polluer le Domain avec des tags JSON
type categoryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryCache est un décorateur read-through devant le CategoryRepository.
// Une catégorie ne change jamais de nom : pas d'invalidation unitaire, seulement un TTL.
// Redis indisponible => on retombe sur le repo (le cache est best effort).
type CategoryCache struct {
	next   ports.CategoryRepository
	client *redis.Client
	ttl    time.Duration
}

func NewCategoryCache(next ports.CategoryRepository, client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CategoryCache{next: next, client: client, ttl: ttl}
}

func (c *CategoryCache) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	key := categoryKeyPrefix + name

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var dto categoryDTO
		if err := json.Unmarshal(raw, &dto); err == nil {
			return dto.toDomain(), nil
		}
		slog.WarnContext(ctx, "Corrupted category cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "Category cache read failed", "key", key, "error", err)
	}

	category, err := c.next.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	c.store(ctx, category)
	return category, nil
}

func (c *CategoryCache) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created, err := c.next.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	c.store(ctx, created)

	// La liste complète n'est plus à jour
	if err := c.client.Del(ctx, categoryListKey).Err(); err != nil {
		slog.WarnContext(ctx, "Category list invalidation failed", "error", err)
	}
	return created, nil
}

func (c *CategoryCache) FindAll(ctx context.Context) ([]*domain.Category, error) {
	raw, err := c.client.Get(ctx, categoryListKey).Bytes()
	if err == nil {
		var dtos []categoryDTO
		if err := json.Unmarshal(raw, &dtos); err == nil {
			out := make([]*domain.Category, len(dtos))
			for i := range dtos {
				out[i] = dtos[i].toDomain()
			}
			return out, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "Category cache read failed", "key", categoryListKey, "error", err)
	}

	categories, err := c.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]categoryDTO, len(categories))
	for i, cat := range categories {
		dtos[i] = fromDomain(cat)
	}
	c.set(ctx, categoryListKey, dtos)
	return categories, nil
}

func (c *CategoryCache) store(ctx context.Context, category *domain.Category) {
	c.set(ctx, categoryKeyPrefix+category.Name, fromDomain(category))
}

func (c *CategoryCache) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.WarnContext(ctx, "Category cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "Category cache write failed", "key", key, "error", fmt.Errorf("redis set: %w", err))
	}
}

func fromDomain(c *domain.Category) categoryDTO {
	return categoryDTO{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func (d categoryDTO) toDomain() *domain.Category {
	return &domain.Category{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt}
}
