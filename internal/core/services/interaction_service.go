package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

// InteractionService applique like / dislike / block.
// L'exclusion mutuelle like/dislike est garantie par le repository (une seule instruction).
type InteractionService struct {
	repo      ports.ArticleRepository
	publisher ports.EventPublisher
}

func NewInteractionService(repo ports.ArticleRepository, pub ports.EventPublisher) *InteractionService {
	return &InteractionService{repo: repo, publisher: pub}
}

func (s *InteractionService) Like(ctx context.Context, articleID, userID string) error {
	return s.apply(ctx, domain.InteractionLike, articleID, userID, s.repo.AddToLikedRemoveFromDisliked)
}

func (s *InteractionService) Dislike(ctx context.Context, articleID, userID string) error {
	return s.apply(ctx, domain.InteractionDislike, articleID, userID, s.repo.AddToDislikedRemoveFromLiked)
}

// Block est monotone : pas d'opération inverse.
func (s *InteractionService) Block(ctx context.Context, articleID, userID string) error {
	return s.apply(ctx, domain.InteractionBlock, articleID, userID, s.repo.AddToBlocked)
}

func (s *InteractionService) apply(
	ctx context.Context,
	kind domain.InteractionKind,
	articleID, userID string,
	mutate func(ctx context.Context, articleID, userID string) error,
) error {
	articleID, userID = strings.TrimSpace(articleID), strings.TrimSpace(userID)
	if articleID == "" || userID == "" {
		return domain.ErrMissingIdentifiers
	}

	if err := mutate(ctx, articleID, userID); err != nil {
		return err
	}

	// Publication best effort : la donnée est déjà sauvée.
	event := domain.InteractionEvent{
		ArticleID:  articleID,
		UserID:     userID,
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishInteraction(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish interaction event",
			"article_id", articleID, "kind", kind, "error", err)
	}
	return nil
}
