package rest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

type MockFeedService struct{ mock.Mock }

func (m *MockFeedService) GetFeed(ctx context.Context, req domain.FeedRequest) ([]domain.FeedEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedEntry), args.Error(1)
}

type MockInteractionService struct{ mock.Mock }

func (m *MockInteractionService) Like(ctx context.Context, articleID, userID string) error {
	return m.Called(ctx, articleID, userID).Error(0)
}

func (m *MockInteractionService) Dislike(ctx context.Context, articleID, userID string) error {
	return m.Called(ctx, articleID, userID).Error(0)
}

func (m *MockInteractionService) Block(ctx context.Context, articleID, userID string) error {
	return m.Called(ctx, articleID, userID).Error(0)
}

type MockArticleService struct{ mock.Mock }

func (m *MockArticleService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockArticleService) ResolveOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockArticleService) SaveDraft(ctx context.Context, cmd ports.CreateArticleCmd) (*domain.Article, error) {
	return m.article(m.Called(ctx, cmd))
}

func (m *MockArticleService) Publish(ctx context.Context, cmd ports.CreateArticleCmd) (*domain.Article, error) {
	return m.article(m.Called(ctx, cmd))
}

func (m *MockArticleService) GetArticle(ctx context.Context, articleID, viewerID string) (*domain.Article, error) {
	return m.article(m.Called(ctx, articleID, viewerID))
}

func (m *MockArticleService) ListMyArticles(ctx context.Context, ownerID string, page, pageSize int) ([]*domain.Article, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Article), args.Error(1)
}

func (m *MockArticleService) UpdateArticle(ctx context.Context, cmd ports.UpdateArticleCmd) (*domain.Article, error) {
	return m.article(m.Called(ctx, cmd))
}

func (m *MockArticleService) DeleteArticle(ctx context.Context, articleID, ownerID string) error {
	return m.Called(ctx, articleID, ownerID).Error(0)
}

func (m *MockArticleService) article(args mock.Arguments) (*domain.Article, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

type MockIdentityService struct{ mock.Mock }

func (m *MockIdentityService) Register(ctx context.Context, cmd ports.RegisterCmd) (*ports.AuthResponse, error) {
	return m.auth(m.Called(ctx, cmd))
}

func (m *MockIdentityService) Login(ctx context.Context, cmd ports.LoginCmd) (*ports.AuthResponse, error) {
	return m.auth(m.Called(ctx, cmd))
}

func (m *MockIdentityService) RefreshToken(ctx context.Context, refreshToken string) (*ports.AuthResponse, error) {
	return m.auth(m.Called(ctx, refreshToken))
}

func (m *MockIdentityService) ValidateToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityService) auth(args mock.Arguments) (*ports.AuthResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.AuthResponse), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return m.user(m.Called(ctx, userID))
}

func (m *MockUserService) UpdateProfile(ctx context.Context, cmd ports.UpdateProfileCmd) (*domain.User, error) {
	return m.user(m.Called(ctx, cmd))
}

func (m *MockUserService) UpdatePreferences(ctx context.Context, actorID, userID string, prefs []string) (*domain.User, error) {
	return m.user(m.Called(ctx, actorID, userID, prefs))
}

func (m *MockUserService) UpdateProfilePhoto(ctx context.Context, actorID, userID string, file domain.MediaFile) (*domain.User, error) {
	return m.user(m.Called(ctx, actorID, userID, file))
}

func (m *MockUserService) ChangePassword(ctx context.Context, cmd ports.ChangePasswordCmd) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockUserService) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
