package services

import (
	"context"
	"log/slog"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

// FeedService assemble le feed d'un lecteur. Lecture seule, aucun verrou.
type FeedService struct {
	articles ports.ArticleRepository
	users    ports.UserRepository
}

func NewFeedService(articles ports.ArticleRepository, users ports.UserRepository) *FeedService {
	return &FeedService{articles: articles, users: users}
}

func (s *FeedService) GetFeed(ctx context.Context, req domain.FeedRequest) ([]domain.FeedEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. Sélection (filtre + tri + pagination côté store)
	records, err := s.selectRecords(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. Jointure auteur + drapeaux du lecteur
	entries := make([]domain.FeedEntry, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.Article == nil {
			continue
		}
		if rec.Author == nil {
			// Intégrité cassée : le feed est best-effort, on saute l'enregistrement.
			slog.WarnContext(ctx, "Skipping feed record with unresolved owner",
				"article_id", rec.Article.ID, "owner_id", rec.Article.OwnerID)
			continue
		}
		entries = append(entries, domain.NewFeedEntry(rec.Article, *rec.Author, req.ViewerID))
	}

	// 3. Ordre intra-page : non-interagis d'abord
	return domain.PartitionByInteraction(entries), nil
}

func (s *FeedService) selectRecords(ctx context.Context, req domain.FeedRequest) ([]*domain.FeedRecord, error) {
	if req.Mode == domain.FeedModeAll {
		return s.articles.FindPublishedExcludingBlocker(ctx, req.ViewerID, req.Offset(), req.PageSize)
	}

	prefs, err := s.users.FindPreferencesByUserID(ctx, req.ViewerID)
	if err != nil {
		return nil, err
	}
	prefs = domain.NormalizePreferences(prefs)
	if len(prefs) == 0 {
		return nil, domain.ErrPreferencesNotFound
	}
	return s.articles.FindPublishedByCategoriesExcludingBlocker(ctx, req.ViewerID, prefs, req.Offset(), req.PageSize)
}
