package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

func ParseArticleStatus(s string) (ArticleStatus, error) {
	switch ArticleStatus(s) {
	case StatusDraft, StatusPublished:
		return ArticleStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Article : les ensembles d'interaction sont embarqués dans le même enregistrement,
// un toggle = une seule mise à jour atomique sur une seule ligne.
// Les compteurs ne sont jamais stockés, ils dérivent de la taille des ensembles.
type Article struct {
	ID           string
	OwnerID      string
	CategoryID   string
	CategoryName string
	Title        string
	Description  string
	Content      string
	ImageURL     string
	Tags         []string
	Status       ArticleStatus
	LikedBy      []string
	DislikedBy   []string
	BlockedBy    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ArticleContent regroupe les champs éditables par l'auteur.
type ArticleContent struct {
	Title       string
	Description string
	Content     string
	Tags        []string
}

// NewArticle est la factory : ID généré ici, pas en DB.
func NewArticle(ownerID string, category *Category, content ArticleContent, status ArticleStatus, imageURL string) (*Article, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, InvalidInput("owner id is required")
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if _, err := ParseArticleStatus(string(status)); err != nil {
		return nil, err
	}
	if err := content.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Article{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Title:        strings.TrimSpace(content.Title),
		Description:  strings.TrimSpace(content.Description),
		Content:      content.Content,
		ImageURL:     imageURL,
		Tags:         NormalizeTags(content.Tags),
		Status:       status,
		LikedBy:      []string{},
		DislikedBy:   []string{},
		BlockedBy:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (c ArticleContent) validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return InvalidInput("title is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		return InvalidInput("description is required")
	}
	if strings.TrimSpace(c.Content) == "" {
		return InvalidInput("content is required")
	}
	return nil
}

// --- COMPORTEMENTS ---

func (a *Article) IsOwnedBy(userID string) bool { return a.OwnerID == userID }

func (a *Article) IsPublished() bool { return a.Status == StatusPublished }

// VisibleTo : un brouillon n'est visible que par son auteur.
func (a *Article) VisibleTo(viewerID string) bool {
	return a.IsPublished() || a.IsOwnedBy(viewerID)
}

func (a *Article) LikeCount() int    { return len(a.LikedBy) }
func (a *Article) DislikeCount() int { return len(a.DislikedBy) }
func (a *Article) BlockCount() int   { return len(a.BlockedBy) }

func (a *Article) LikedByUser(userID string) bool    { return slices.Contains(a.LikedBy, userID) }
func (a *Article) DislikedByUser(userID string) bool { return slices.Contains(a.DislikedBy, userID) }
func (a *Article) BlockedByUser(userID string) bool  { return slices.Contains(a.BlockedBy, userID) }

// Edit applique une modification de contenu (seul l'auteur, vérifié par le service).
func (a *Article) Edit(content ArticleContent) error {
	if err := content.validate(); err != nil {
		return err
	}
	a.Title = strings.TrimSpace(content.Title)
	a.Description = strings.TrimSpace(content.Description)
	a.Content = content.Content
	a.Tags = NormalizeTags(content.Tags)
	a.touch()
	return nil
}

func (a *Article) MoveToCategory(category *Category) {
	a.CategoryID = category.ID
	a.CategoryName = category.Name
	a.touch()
}

func (a *Article) SetStatus(status ArticleStatus) {
	a.Status = status
	a.touch()
}

func (a *Article) SetImage(url string) {
	a.ImageURL = url
	a.touch()
}

func (a *Article) touch() {
	a.UpdatedAt = time.Now().UTC()
}

// NormalizeTags : sémantique d'ensemble, ordre de première apparition conservé.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
