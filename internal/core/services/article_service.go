package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

const articleImagesFolder = "article_images"

type ArticleService struct {
	articles   ports.ArticleRepository
	categories ports.CategoryRepository
	media      ports.MediaStore
	sanitizer  ports.ContentSanitizer
	publisher  ports.EventPublisher
}

func NewArticleService(
	articles ports.ArticleRepository,
	categories ports.CategoryRepository,
	media ports.MediaStore,
	sanitizer ports.ContentSanitizer,
	pub ports.EventPublisher,
) *ArticleService {
	return &ArticleService{
		articles:   articles,
		categories: categories,
		media:      media,
		sanitizer:  sanitizer,
		publisher:  pub,
	}
}

// --- CATÉGORIES ---

func (s *ArticleService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.FindAll(ctx)
}

// ResolveOrCreateCategory : lookup exact par nom, création si absent.
// La course sur la première création est absorbée par la contrainte UNIQUE du store.
func (s *ArticleService) ResolveOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = domain.NormalizeCategoryName(name)
	if name == "" {
		return nil, domain.ErrEmptyCategoryName
	}

	category, err := s.categories.FindByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	category, err = domain.NewCategory(name)
	if err != nil {
		return nil, err
	}
	return s.categories.Create(ctx, category)
}

// --- ÉCRITURE ---

func (s *ArticleService) SaveDraft(ctx context.Context, cmd ports.CreateArticleCmd) (*domain.Article, error) {
	return s.create(ctx, cmd, domain.StatusDraft)
}

func (s *ArticleService) Publish(ctx context.Context, cmd ports.CreateArticleCmd) (*domain.Article, error) {
	return s.create(ctx, cmd, domain.StatusPublished)
}

func (s *ArticleService) create(ctx context.Context, cmd ports.CreateArticleCmd, status domain.ArticleStatus) (*domain.Article, error) {
	// 1. Catégorie (résolue par nom)
	category, err := s.ResolveOrCreateCategory(ctx, cmd.CategoryName)
	if err != nil {
		return nil, err
	}

	// 2. Image optionnelle
	imageURL, err := s.uploadImage(ctx, cmd.Image)
	if err != nil {
		return nil, err
	}

	// 3. Agrégat (validation des invariants dans la factory)
	article, err := domain.NewArticle(cmd.OwnerID, category, domain.ArticleContent{
		Title:       cmd.Title,
		Description: cmd.Description,
		Content:     s.sanitizer.Sanitize(cmd.Content),
		Tags:        cmd.Tags,
	}, status, imageURL)
	if err != nil {
		return nil, err
	}

	// 4. Persistance
	if err := s.articles.Save(ctx, article); err != nil {
		return nil, err
	}

	if article.IsPublished() {
		s.announcePublished(ctx, article)
	}
	return article, nil
}

func (s *ArticleService) UpdateArticle(ctx context.Context, cmd ports.UpdateArticleCmd) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, cmd.ArticleID)
	if err != nil {
		return nil, err
	}
	if !article.IsOwnedBy(cmd.OwnerID) {
		return nil, domain.ErrNotOwner
	}
	wasPublished := article.IsPublished()

	content := domain.ArticleContent{
		Title:       article.Title,
		Description: article.Description,
		Content:     article.Content,
		Tags:        article.Tags,
	}
	if cmd.Title != nil {
		content.Title = *cmd.Title
	}
	if cmd.Description != nil {
		content.Description = *cmd.Description
	}
	if cmd.Content != nil {
		content.Content = s.sanitizer.Sanitize(*cmd.Content)
	}
	if cmd.Tags != nil {
		content.Tags = cmd.Tags
	}
	if err := article.Edit(content); err != nil {
		return nil, err
	}

	if cmd.CategoryName != nil && domain.NormalizeCategoryName(*cmd.CategoryName) != article.CategoryName {
		category, err := s.ResolveOrCreateCategory(ctx, *cmd.CategoryName)
		if err != nil {
			return nil, err
		}
		article.MoveToCategory(category)
	}

	if cmd.Status != nil {
		status, err := domain.ParseArticleStatus(string(*cmd.Status))
		if err != nil {
			return nil, err
		}
		article.SetStatus(status)
	}

	if cmd.Image != nil {
		url, err := s.uploadImage(ctx, cmd.Image)
		if err != nil {
			return nil, err
		}
		article.SetImage(url)
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}

	if !wasPublished && article.IsPublished() {
		s.announcePublished(ctx, article)
	}
	return article, nil
}

func (s *ArticleService) DeleteArticle(ctx context.Context, articleID, ownerID string) error {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return err
	}
	if !article.IsOwnedBy(ownerID) {
		return domain.ErrNotOwner
	}

	if err := s.articles.Delete(ctx, articleID); err != nil {
		return err
	}

	if err := s.publisher.PublishArticleDeleted(ctx, articleID); err != nil {
		slog.WarnContext(ctx, "Failed to publish article deleted event", "article_id", articleID, "error", err)
	}
	return nil
}

// --- LECTURE ---

func (s *ArticleService) GetArticle(ctx context.Context, articleID, viewerID string) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	// Un brouillon d'un autre auteur n'existe pas pour le lecteur.
	if !article.VisibleTo(viewerID) {
		return nil, domain.ErrArticleNotFound
	}
	return article, nil
}

func (s *ArticleService) ListMyArticles(ctx context.Context, ownerID string, page, pageSize int) ([]*domain.Article, error) {
	offset, err := domain.PageOffset(page, pageSize)
	if err != nil {
		return nil, err
	}
	return s.articles.ListByOwner(ctx, ownerID, offset, pageSize)
}

// --- HELPERS ---

func (s *ArticleService) uploadImage(ctx context.Context, file *domain.MediaFile) (string, error) {
	if file == nil {
		return "", nil
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", domain.ErrInvalidImage
	}
	url, err := s.media.Upload(ctx, articleImagesFolder, *file)
	if err != nil {
		return "", fmt.Errorf("upload article image: %w", err)
	}
	return url, nil
}

func (s *ArticleService) announcePublished(ctx context.Context, article *domain.Article) {
	if err := s.publisher.PublishArticlePublished(ctx, article); err != nil {
		slog.WarnContext(ctx, "Failed to publish article event", "article_id", article.ID, "error", err)
	}
}
