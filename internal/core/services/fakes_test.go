package services

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

// memStore joue le rôle du catalogue + des utilisateurs, avec la même sémantique
// que Postgres : filtre, tri (created_at DESC, id DESC), offset/limit, toggles atomiques.
type memStore struct {
	mu         sync.Mutex
	articles   map[string]*domain.Article
	users      map[string]*domain.User
	categories map[string]*domain.Category
	saveErr    error
}

func newMemStore() *memStore {
	return &memStore{
		articles:   map[string]*domain.Article{},
		users:      map[string]*domain.User{},
		categories: map[string]*domain.Category{},
	}
}

func cloneArticle(a *domain.Article) *domain.Article {
	c := *a
	c.Tags = slices.Clone(a.Tags)
	c.LikedBy = slices.Clone(a.LikedBy)
	c.DislikedBy = slices.Clone(a.DislikedBy)
	c.BlockedBy = slices.Clone(a.BlockedBy)
	return &c
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.ArticlePreferences = slices.Clone(u.ArticlePreferences)
	return &c
}

// --- ArticleRepository ---

func (m *memStore) Save(ctx context.Context, a *domain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.articles[a.ID] = cloneArticle(a)
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

func (m *memStore) Update(ctx context.Context, a *domain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.articles[a.ID]
	if !ok {
		return domain.ErrArticleNotFound
	}
	next := cloneArticle(a)
	// Les ensembles ne passent jamais par Update
	next.LikedBy, next.DislikedBy, next.BlockedBy = cur.LikedBy, cur.DislikedBy, cur.BlockedBy
	m.articles[a.ID] = next
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(m.articles, id)
	return nil
}

func (m *memStore) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Article
	for _, a := range m.sorted() {
		if a.OwnerID == ownerID {
			out = append(out, cloneArticle(a))
		}
	}
	return window(out, skip, limit), nil
}

func (m *memStore) FindPublishedExcludingBlocker(ctx context.Context, viewerID string, skip, limit int) ([]*domain.FeedRecord, error) {
	return m.feed(viewerID, nil, skip, limit), nil
}

func (m *memStore) FindPublishedByCategoriesExcludingBlocker(ctx context.Context, viewerID string, categories []string, skip, limit int) ([]*domain.FeedRecord, error) {
	return m.feed(viewerID, categories, skip, limit), nil
}

func (m *memStore) feed(viewerID string, categories []string, skip, limit int) []*domain.FeedRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.FeedRecord
	for _, a := range m.sorted() {
		if !a.IsPublished() || slices.Contains(a.BlockedBy, viewerID) {
			continue
		}
		if categories != nil && !slices.Contains(categories, a.CategoryName) {
			continue
		}
		rec := &domain.FeedRecord{Article: cloneArticle(a)}
		if u, ok := m.users[a.OwnerID]; ok {
			rec.Author = &domain.AuthorIdentity{FirstName: u.FirstName, LastName: u.LastName, ProfileImageURL: u.ProfileImageURL}
		}
		out = append(out, rec)
	}
	return window(out, skip, limit)
}

func (m *memStore) AddToLikedRemoveFromDisliked(ctx context.Context, articleID, userID string) error {
	return m.mutate(articleID, func(a *domain.Article) {
		a.LikedBy = addToSet(a.LikedBy, userID)
		a.DislikedBy = removeFromSet(a.DislikedBy, userID)
	})
}

func (m *memStore) AddToDislikedRemoveFromLiked(ctx context.Context, articleID, userID string) error {
	return m.mutate(articleID, func(a *domain.Article) {
		a.DislikedBy = addToSet(a.DislikedBy, userID)
		a.LikedBy = removeFromSet(a.LikedBy, userID)
	})
}

func (m *memStore) AddToBlocked(ctx context.Context, articleID, userID string) error {
	return m.mutate(articleID, func(a *domain.Article) {
		a.BlockedBy = addToSet(a.BlockedBy, userID)
	})
}

func (m *memStore) mutate(articleID string, fn func(a *domain.Article)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.articles[articleID]
	if !ok {
		return domain.ErrArticleNotFound
	}
	fn(a)
	return nil
}

// sorted : created_at DESC, id DESC (appelant détient le verrou)
func (m *memStore) sorted() []*domain.Article {
	out := make([]*domain.Article, 0, len(m.articles))
	for _, a := range m.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func window[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func addToSet(set []string, v string) []string {
	if slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}

func removeFromSet(set []string, v string) []string {
	return slices.DeleteFunc(set, func(s string) bool { return s == v })
}

// --- UserRepository (vue utilisateurs du même store) ---

type memUsers struct{ *memStore }

func (m memUsers) Save(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
		if existing.Phone == u.Phone {
			return domain.ErrPhoneAlreadyExists
		}
	}
	m.users[u.ID] = cloneUser(u)
	return nil
}

func (m memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.ID == id })
}

func (m memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Email == email })
}

func (m memUsers) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Phone == phone })
}

func (m memUsers) UpdateProfile(ctx context.Context, u *domain.User) error {
	return m.mutate(u.ID, func(stored *domain.User) {
		stored.FirstName, stored.LastName, stored.Phone = u.FirstName, u.LastName, u.Phone
		stored.DateOfBirth = u.DateOfBirth
		stored.UpdatedAt = u.UpdatedAt
	})
}

func (m memUsers) UpdatePreferences(ctx context.Context, id string, prefs []string, at time.Time) error {
	return m.mutate(id, func(stored *domain.User) {
		stored.ArticlePreferences = slices.Clone(prefs)
		stored.UpdatedAt = at
	})
}

func (m memUsers) UpdateProfileImage(ctx context.Context, id, url string, at time.Time) error {
	return m.mutate(id, func(stored *domain.User) {
		stored.ProfileImageURL = url
		stored.UpdatedAt = at
	})
}

func (m memUsers) UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error {
	return m.mutate(id, func(stored *domain.User) {
		stored.PasswordHash = hash
		stored.UpdatedAt = at
	})
}

// mutate : écriture ciblée sur la ligne stockée, comme le fait Postgres.
func (m memUsers) mutate(id string, apply func(stored *domain.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	apply(stored)
	return nil
}

func (m memUsers) FindPreferencesByUserID(ctx context.Context, id string) ([]string, error) {
	u, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.ArticlePreferences, nil
}

func (m memUsers) find(match func(u *domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// --- CategoryRepository ---

type memCategories struct {
	*memStore
	creates int
}

func (m *memCategories) FindAll(ctx context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Category{}
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.categories[name]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *memCategories) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.categories[c.Name]; ok {
		return existing, nil
	}
	m.creates++
	m.categories[c.Name] = c
	return c, nil
}

// --- Autres ports ---

type recordingPublisher struct {
	mu           sync.Mutex
	published    []string
	deleted      []string
	interactions []domain.InteractionEvent
	err          error
}

func (p *recordingPublisher) PublishArticlePublished(ctx context.Context, a *domain.Article) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, a.ID)
	return p.err
}

func (p *recordingPublisher) PublishArticleDeleted(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, id)
	return p.err
}

func (p *recordingPublisher) PublishInteraction(ctx context.Context, e domain.InteractionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interactions = append(p.interactions, e)
	return p.err
}

type fakeMedia struct {
	folders []string
	err     error
}

func (f *fakeMedia) Upload(ctx context.Context, folder string, file domain.MediaFile) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.folders = append(f.folders, folder)
	return "https://cdn.test/" + folder + "/" + file.Filename, nil
}

type stripTags struct{}

func (stripTags) Sanitize(s string) string {
	return strings.ReplaceAll(s, "<script>", "")
}

// plainHasher : "hashed:" + mot de passe
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) Compare(hash, p string) error {
	if !strings.HasPrefix(hash, "hashed:") {
		return errors.New("malformed hash")
	}
	if hash != "hashed:"+p {
		return ports.ErrPasswordMismatch
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateTokens(u *domain.User) (string, string, error) {
	return "access:" + u.ID, "refresh:" + u.ID, nil
}

func (fakeTokens) GenerateAccessToken(u *domain.User) (string, error) {
	return "access:" + u.ID, nil
}

func (fakeTokens) Validate(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "access:")
	if !ok {
		return "", errors.New("bad token")
	}
	return id, nil
}

func (fakeTokens) ValidateRefresh(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "refresh:")
	if !ok {
		return "", errors.New("bad token")
	}
	return id, nil
}
