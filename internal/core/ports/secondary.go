package ports

import (
	"context"
	"errors"
	"time"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

// --- PERSISTANCE (DB) ---

// ArticleRepository : catalogue d'articles + ensembles d'interaction embarqués.
type ArticleRepository interface {
	Save(ctx context.Context, article *domain.Article) error
	FindByID(ctx context.Context, articleID string) (*domain.Article, error)
	// Update ne touche jamais aux ensembles d'interaction.
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, articleID string) error
	ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Article, error)

	// Lecture du feed : filtrage + tri + pagination poussés dans le store.
	FindPublishedExcludingBlocker(ctx context.Context, viewerID string, skip, limit int) ([]*domain.FeedRecord, error)
	FindPublishedByCategoriesExcludingBlocker(ctx context.Context, viewerID string, categories []string, skip, limit int) ([]*domain.FeedRecord, error)

	// Toggles : chacun est UNE mise à jour atomique (ajout + retrait dans la même instruction).
	AddToLikedRemoveFromDisliked(ctx context.Context, articleID, userID string) error
	AddToDislikedRemoveFromLiked(ctx context.Context, articleID, userID string) error
	AddToBlocked(ctx context.Context, articleID, userID string) error
}

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	// Une écriture ciblée par opération : deux mises à jour concurrentes
	// de colonnes différentes ne s'écrasent pas.
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePreferences(ctx context.Context, userID string, prefs []string, at time.Time) error
	UpdateProfileImage(ctx context.Context, userID, url string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error
	FindPreferencesByUserID(ctx context.Context, userID string) ([]string, error)
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*domain.Category, error)
	// FindByName retourne domain.ErrCategoryNotFound si absent.
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

// --- MESSAGERIE (BROKER) ---

type EventPublisher interface {
	PublishArticlePublished(ctx context.Context, article *domain.Article) error
	PublishArticleDeleted(ctx context.Context, articleID string) error
	PublishInteraction(ctx context.Context, event domain.InteractionEvent) error
}

// --- MEDIA ---

// MediaStore pousse un binaire et retourne son URL publique.
type MediaStore interface {
	Upload(ctx context.Context, folder string, file domain.MediaFile) (string, error)
}

// --- SÉCURITÉ (CRYPTO) ---

// ContentSanitizer nettoie le HTML saisi par l'auteur avant stockage.
type ContentSanitizer interface {
	Sanitize(content string) string
}

// ErrPasswordMismatch : seul échec de Compare qui signifie "mauvais mot de passe".
// Toute autre erreur (hash illisible, etc.) est une panne.
var ErrPasswordMismatch = errors.New("password does not match")

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenProvider interface {
	GenerateTokens(user *domain.User) (access string, refresh string, err error)
	GenerateAccessToken(user *domain.User) (string, error)
	Validate(token string) (userID string, err error)
	ValidateRefresh(token string) (userID string, err error)
}
