package ports

import (
	"context"
	"time"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

// --- INPUTS (Command Pattern) ---
// Une struct par opération : création et mise à jour n'ont pas la même forme.

type CreateArticleCmd struct {
	OwnerID      string
	Title        string
	Description  string
	Content      string
	CategoryName string
	Tags         []string
	Image        *domain.MediaFile // optionnel
}

type UpdateArticleCmd struct {
	ArticleID    string
	OwnerID      string
	Title        *string // nil = pas de changement
	Description  *string
	Content      *string
	CategoryName *string
	Tags         []string // nil = pas de changement
	Status       *domain.ArticleStatus
	Image        *domain.MediaFile
}

type RegisterCmd struct {
	FirstName            string
	LastName             string
	Email                string
	Phone                string
	DateOfBirth          time.Time
	Password             string
	PasswordConfirmation string
	ArticlePreferences   []string
}

type LoginCmd struct {
	Identifier string // email ou téléphone
	Password   string
}

type UpdateProfileCmd struct {
	ActorID string
	UserID  string
	Patch   domain.ProfilePatch
}

type ChangePasswordCmd struct {
	ActorID     string
	UserID      string
	OldPassword string
	NewPassword string
}

// --- OUTPUTS ---

type AuthResponse struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// --- PORTS PRIMAIRES (Driving) ---

type FeedService interface {
	GetFeed(ctx context.Context, req domain.FeedRequest) ([]domain.FeedEntry, error)
}

type InteractionService interface {
	Like(ctx context.Context, articleID, userID string) error
	Dislike(ctx context.Context, articleID, userID string) error
	Block(ctx context.Context, articleID, userID string) error
}

type ArticleService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ResolveOrCreateCategory(ctx context.Context, name string) (*domain.Category, error)

	SaveDraft(ctx context.Context, cmd CreateArticleCmd) (*domain.Article, error)
	Publish(ctx context.Context, cmd CreateArticleCmd) (*domain.Article, error)
	GetArticle(ctx context.Context, articleID, viewerID string) (*domain.Article, error)
	ListMyArticles(ctx context.Context, ownerID string, page, pageSize int) ([]*domain.Article, error)
	UpdateArticle(ctx context.Context, cmd UpdateArticleCmd) (*domain.Article, error)
	DeleteArticle(ctx context.Context, articleID, ownerID string) error
}

type IdentityService interface {
	Register(ctx context.Context, cmd RegisterCmd) (*AuthResponse, error)
	Login(ctx context.Context, cmd LoginCmd) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (string, error)
}

type UserService interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, cmd UpdateProfileCmd) (*domain.User, error)
	UpdatePreferences(ctx context.Context, actorID, userID string, prefs []string) (*domain.User, error)
	UpdateProfilePhoto(ctx context.Context, actorID, userID string, file domain.MediaFile) (*domain.User, error)
	ChangePassword(ctx context.Context, cmd ChangePasswordCmd) error
}
