package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seedUser(s *memStore, id, first, last string, prefs ...string) {
	s.users[id] = &domain.User{ID: id, FirstName: first, LastName: last, Email: id + "@test.io", Phone: id, ArticlePreferences: prefs}
}

// seedArticle : minutes = ancienneté (plus grand = plus ancien)
func seedArticle(s *memStore, id, owner, category string, status domain.ArticleStatus, minutesAgo int) *domain.Article {
	a := &domain.Article{
		ID:           id,
		OwnerID:      owner,
		CategoryName: category,
		Title:        "title " + id,
		Status:       status,
		Tags:         []string{},
		LikedBy:      []string{},
		DislikedBy:   []string{},
		BlockedBy:    []string{},
		CreatedAt:    baseTime.Add(-time.Duration(minutesAgo) * time.Minute),
	}
	s.articles[id] = a
	return a
}

func newFeedFixture() (*memStore, *FeedService, *InteractionService) {
	store := newMemStore()
	return store, NewFeedService(store, memUsers{store}), NewInteractionService(store, &recordingPublisher{})
}

func ids(entries []domain.FeedEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func allFeed(viewer string, page, size int) domain.FeedRequest {
	return domain.FeedRequest{ViewerID: viewer, Mode: domain.FeedModeAll, Page: page, PageSize: size}
}

func TestGetFeed_AllMode(t *testing.T) {
	ctx := context.Background()
	store, feed, _ := newFeedFixture()
	seedUser(store, "author", "Ada", "Lovelace")
	seedUser(store, "viewer", "Bob", "")
	seedArticle(store, "new", "author", "Tech", domain.StatusPublished, 1)
	seedArticle(store, "old", "author", "Tech", domain.StatusPublished, 10)
	seedArticle(store, "draft", "author", "Tech", domain.StatusDraft, 0)

	entries, err := feed.GetFeed(ctx, allFeed("viewer", 1, 9))
	require.NoError(t, err)

	assert.Equal(t, []string{"new", "old"}, ids(entries))
	assert.Equal(t, "Ada Lovelace", entries[0].AuthorName)
	assert.Equal(t, "author", entries[0].AuthorID)
}

// Scénario : A (like) et B (aucun avis) -> B passe devant.
func TestGetFeed_InteractedArticlesGoLast(t *testing.T) {
	ctx := context.Background()
	store, feed, interactions := newFeedFixture()
	seedUser(store, "author", "Ada", "Lovelace")
	seedArticle(store, "A", "author", "Tech", domain.StatusPublished, 1)
	seedArticle(store, "B", "author", "Tech", domain.StatusPublished, 2)

	require.NoError(t, interactions.Like(ctx, "A", "viewer"))

	entries, err := feed.GetFeed(ctx, allFeed("viewer", 1, 9))
	require.NoError(t, err)

	require.Equal(t, []string{"B", "A"}, ids(entries))
	assert.True(t, entries[1].UserLiked)
	assert.Equal(t, 1, entries[1].LikeCount)
	assert.False(t, entries[0].UserLiked)
}

func TestGetFeed_BlockedArticleDisappearsOnlyForBlocker(t *testing.T) {
	ctx := context.Background()
	store, feed, interactions := newFeedFixture()
	seedUser(store, "author", "Ada", "Lovelace")
	seedArticle(store, "C", "author", "Tech", domain.StatusPublished, 1)

	require.NoError(t, interactions.Block(ctx, "C", "viewer"))

	entries, err := feed.GetFeed(ctx, allFeed("viewer", 1, 9))
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = feed.GetFeed(ctx, allFeed("other", 1, 9))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].BlockCount)
}

func TestGetFeed_PreferencesMode(t *testing.T) {
	ctx := context.Background()
	store, feed, _ := newFeedFixture()
	seedUser(store, "author", "Ada", "Lovelace")
	seedUser(store, "viewer", "Bob", "B", "Science")
	seedArticle(store, "tech", "author", "Tech", domain.StatusPublished, 1)
	seedArticle(store, "sci", "author", "Science", domain.StatusPublished, 2)

	entries, err := feed.GetFeed(ctx, domain.FeedRequest{ViewerID: "viewer", Mode: domain.FeedModePreferences, Page: 1, PageSize: 9})
	require.NoError(t, err)
	assert.Equal(t, []string{"sci"}, ids(entries))
}

func TestGetFeed_PreferencesModeErrors(t *testing.T) {
	ctx := context.Background()
	store, feed, _ := newFeedFixture()
	seedUser(store, "nopref", "No", "Pref")
	seedUser(store, "pref", "Has", "Pref", "Poetry")
	seedArticle(store, "tech", "nopref", "Tech", domain.StatusPublished, 1)

	req := domain.FeedRequest{Mode: domain.FeedModePreferences, Page: 1, PageSize: 9}

	t.Run("no preferences is invalid state", func(t *testing.T) {
		req.ViewerID = "nopref"
		_, err := feed.GetFeed(ctx, req)
		assert.ErrorIs(t, err, domain.ErrPreferencesNotFound)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("unknown viewer is not found", func(t *testing.T) {
		req.ViewerID = "ghost"
		_, err := feed.GetFeed(ctx, req)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("preferences without matches give an empty page", func(t *testing.T) {
		req.ViewerID = "pref"
		entries, err := feed.GetFeed(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestGetFeed_PaginationCoversEveryArticleOnce(t *testing.T) {
	ctx := context.Background()
	store, feed, interactions := newFeedFixture()
	seedUser(store, "author", "Ada", "Lovelace")
	for i := 0; i < 23; i++ {
		// Même horodatage pour certains : le départage par id doit rester stable
		seedArticle(store, fmt.Sprintf("a%02d", i), "author", "Tech", domain.StatusPublished, i/3)
	}
	require.NoError(t, interactions.Like(ctx, "a05", "viewer"))
	require.NoError(t, interactions.Dislike(ctx, "a17", "viewer"))

	seen := map[string]int{}
	for page := 1; page <= 4; page++ {
		entries, err := feed.GetFeed(ctx, allFeed("viewer", page, 9))
		require.NoError(t, err)
		for _, e := range entries {
			seen[e.ID]++
		}
	}

	assert.Len(t, seen, 23)
	for id, n := range seen {
		assert.Equal(t, 1, n, "article %s", id)
	}
}

func TestGetFeed_PageBeyondEnd(t *testing.T) {
	store, feed, _ := newFeedFixture()
	seedUser(store, "author", "Ada", "Lovelace")
	seedArticle(store, "only", "author", "Tech", domain.StatusPublished, 1)

	entries, err := feed.GetFeed(context.Background(), allFeed("viewer", 5, 9))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetFeed_SkipsUnresolvedOwner(t *testing.T) {
	store, feed, _ := newFeedFixture()
	seedUser(store, "author", "Ada", "Lovelace")
	seedArticle(store, "orphan", "deleted-user", "Tech", domain.StatusPublished, 1)
	seedArticle(store, "ok", "author", "Tech", domain.StatusPublished, 2)

	entries, err := feed.GetFeed(context.Background(), allFeed("viewer", 1, 9))
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, ids(entries))
}

func TestGetFeed_InvalidRequest(t *testing.T) {
	_, feed, _ := newFeedFixture()

	_, err := feed.GetFeed(context.Background(), allFeed("viewer", 0, 9))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = feed.GetFeed(context.Background(), domain.FeedRequest{ViewerID: "v", Mode: "x", Page: 1, PageSize: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidFeedMode)
}
