package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

// countingRepo compte les appels pour vérifier les hits/miss du cache.
type countingRepo struct {
	categories map[string]*domain.Category
	findCalls  int
	listCalls  int
	err        error
}

func (r *countingRepo) FindAll(ctx context.Context) ([]*domain.Category, error) {
	r.listCalls++
	out := []*domain.Category{}
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, r.err
}

func (r *countingRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	r.findCalls++
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.categories[name]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (r *countingRepo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	r.categories[c.Name] = c
	return c, nil
}

func setup(t *testing.T) (*CategoryCache, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &countingRepo{categories: map[string]*domain.Category{
		"Tech": {ID: "c1", Name: "Tech", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	return NewCategoryCache(repo, client, time.Minute), repo, mr
}

func TestCategoryCache_FindByName_ReadThrough(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := setup(t)

	first, err := c.FindByName(ctx, "Tech")
	require.NoError(t, err)
	second, err := c.FindByName(ctx, "Tech")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.findCalls)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.True(t, mr.Exists(categoryKeyPrefix+"Tech"))
	assert.Equal(t, time.Minute, mr.TTL(categoryKeyPrefix+"Tech"))
}

func TestCategoryCache_MissIsNotCached(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := setup(t)

	_, err := c.FindByName(ctx, "Poetry")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	_, err = c.FindByName(ctx, "Poetry")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	assert.Equal(t, 2, repo.findCalls)
	assert.False(t, mr.Exists(categoryKeyPrefix+"Poetry"))
}

func TestCategoryCache_RedisDownFallsBackToRepo(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := setup(t)
	mr.Close()

	got, err := c.FindByName(ctx, "Tech")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, 1, repo.findCalls)
}

func TestCategoryCache_CreateInvalidatesList(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := setup(t)

	list, err := c.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = c.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	_, err = c.Create(ctx, &domain.Category{ID: "c2", Name: "Art"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(categoryListKey))
	assert.True(t, mr.Exists(categoryKeyPrefix+"Art"))

	list, err = c.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestCategoryCache_RepoErrorPropagates(t *testing.T) {
	c, repo, _ := setup(t)
	repo.err = errors.New("db down")

	_, err := c.FindByName(context.Background(), "Tech")
	assert.EqualError(t, err, "db down")
}
