package domain

import (
	"math"
	"time"
)

type FeedMode string

const (
	FeedModeAll         FeedMode = "all"
	FeedModePreferences FeedMode = "preferences"
)

const (
	DefaultPageSize = 9
	MaxPageSize     = 100
)

// FeedRequest encapsule les critères de recherche
type FeedRequest struct {
	ViewerID string
	Mode     FeedMode
	Page     int // commence à 1
	PageSize int
}

func (r FeedRequest) Validate() error {
	switch r.Mode {
	case FeedModeAll, FeedModePreferences:
	default:
		return ErrInvalidFeedMode
	}
	if _, err := PageOffset(r.Page, r.PageSize); err != nil {
		return err
	}
	if r.Mode == FeedModePreferences && r.ViewerID == "" {
		return ErrUserNotFound
	}
	return nil
}

// Offset : nombre d'enregistrements à sauter (après filtrage et tri par le store).
// Suppose une requête validée.
func (r FeedRequest) Offset() int {
	offset, _ := PageOffset(r.Page, r.PageSize)
	return offset
}

// PageOffset calcule (page-1)*pageSize. Une page dont l'offset déborde d'un int
// est rejetée au lieu de devenir un OFFSET négatif côté store.
func PageOffset(page, pageSize int) (int, error) {
	if page < 1 || pageSize <= 0 {
		return 0, ErrInvalidPagination
	}
	if page-1 > math.MaxInt/pageSize {
		return 0, ErrInvalidPagination
	}
	return (page - 1) * pageSize, nil
}

// AuthorIdentity : champs d'affichage de l'auteur, joints par le store.
type AuthorIdentity struct {
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// FeedRecord est ce que renvoie le catalogue : l'article + l'auteur joint.
// Author == nil quand le propriétaire n'a pas pu être résolu.
type FeedRecord struct {
	Article *Article
	Author  *AuthorIdentity
}

// FeedEntry : vue dérivée, reconstruite à chaque requête, jamais mise en cache.
type FeedEntry struct {
	ID           string
	Title        string
	Description  string
	Content      string
	ImageURL     string
	Tags         []string
	Status       ArticleStatus
	CategoryName string
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	UserLiked    bool
	UserDisliked bool
	LikeCount    int
	DislikeCount int
	BlockCount   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewFeedEntry(a *Article, author AuthorIdentity, viewerID string) FeedEntry {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return FeedEntry{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Content:      a.Content,
		ImageURL:     a.ImageURL,
		Tags:         tags,
		Status:       a.Status,
		CategoryName: a.CategoryName,
		AuthorID:     a.OwnerID,
		AuthorName:   JoinName(author.FirstName, author.LastName),
		AuthorAvatar: author.ProfileImageURL,
		UserLiked:    viewerID != "" && a.LikedByUser(viewerID),
		UserDisliked: viewerID != "" && a.DislikedByUser(viewerID),
		LikeCount:    a.LikeCount(),
		DislikeCount: a.DislikeCount(),
		BlockCount:   a.BlockCount(),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (e FeedEntry) Interacted() bool {
	return e.UserLiked || e.UserDisliked
}

// PartitionByInteraction : partition stable, les articles sans avis du lecteur passent devant.
// L'ordre relatif à l'intérieur de chaque groupe reste celui du catalogue.
func PartitionByInteraction(entries []FeedEntry) []FeedEntry {
	out := make([]FeedEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Interacted() {
			out = append(out, e)
		}
	}
	for _, e := range entries {
		if e.Interacted() {
			out = append(out, e)
		}
	}
	return out
}
