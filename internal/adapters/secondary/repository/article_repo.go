package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

const articleColumns = `a.id, a.owner_id, a.category_id, a.category_name, a.title, a.description, a.content,
	a.image_url, a.tags, a.status, a.liked_by, a.disliked_by, a.blocked_by, a.created_at, a.updated_at`

// Requête du feed : l'auteur est joint par owner_id ~ users.id (LEFT JOIN :
// un auteur manquant donne des colonnes NULL, le service décide quoi en faire).
const feedSelect = `
	SELECT ` + articleColumns + `,
		u.id, u.first_name, u.last_name, u.profile_image_url
	FROM articles a
	LEFT JOIN users u ON u.id = a.owner_id
	WHERE a.status = 'published'
	  AND NOT ($1 = ANY(a.blocked_by))`

// Tri du catalogue : plus récent d'abord, id en départage pour une pagination stable.
const feedOrder = `
	ORDER BY a.created_at DESC, a.id DESC`

type ArticleRepo struct {
	db DB
}

func NewArticleRepo(db DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// Save : insertion simple, ensembles d'interaction vides.
func (r *ArticleRepo) Save(ctx context.Context, a *domain.Article) error {
	q := `
		INSERT INTO articles (id, owner_id, category_id, category_name, title, description, content,
			image_url, tags, status, liked_by, disliked_by, blocked_by, created_at, updated_at)
		VALUES (@id, @owner_id, @category_id, @category_name, @title, @description, @content,
			@image_url, @tags, @status, '{}', '{}', '{}', @created_at, @updated_at)
	`
	args := pgx.NamedArgs{
		"id":            a.ID,
		"owner_id":      a.OwnerID,
		"category_id":   a.CategoryID,
		"category_name": a.CategoryName,
		"title":         a.Title,
		"description":   a.Description,
		"content":       a.Content,
		"image_url":     nullableString(a.ImageURL),
		"tags":          nonNil(a.Tags),
		"status":        string(a.Status),
		"created_at":    a.CreatedAt,
		"updated_at":    a.UpdatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return storageErr("save article", err)
	}
	return nil
}

func (r *ArticleRepo) FindByID(ctx context.Context, articleID string) (*domain.Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles a WHERE a.id = $1`

	a, err := scanArticle(r.db.QueryRow(ctx, q, articleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, storageErr("find article", err)
	}
	return a, nil
}

// Update : champs éditables uniquement. Les ensembles d'interaction ne passent
// jamais par ici pour ne pas écraser un toggle concurrent.
func (r *ArticleRepo) Update(ctx context.Context, a *domain.Article) error {
	q := `
		UPDATE articles
		SET title = @title, description = @description, content = @content, tags = @tags,
			category_id = @category_id, category_name = @category_name, image_url = @image_url,
			status = @status, updated_at = @updated_at
		WHERE id = @id
	`
	args := pgx.NamedArgs{
		"id":            a.ID,
		"title":         a.Title,
		"description":   a.Description,
		"content":       a.Content,
		"tags":          nonNil(a.Tags),
		"category_id":   a.CategoryID,
		"category_name": a.CategoryName,
		"image_url":     nullableString(a.ImageURL),
		"status":        string(a.Status),
		"updated_at":    a.UpdatedAt,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return storageErr("update article", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepo) Delete(ctx context.Context, articleID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, articleID)
	if err != nil {
		return storageErr("delete article", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// ListByOwner : brouillons + publiés de l'auteur, plus récents d'abord.
func (r *ArticleRepo) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Article, error) {
	q := `SELECT ` + articleColumns + `
		FROM articles a
		WHERE a.owner_id = $1
		ORDER BY a.created_at DESC, a.id DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, q, ownerID, skip, limit)
	if err != nil {
		return nil, storageErr("list articles by owner", err)
	}
	defer rows.Close()

	articles := []*domain.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, storageErr("scan article", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list articles by owner", err)
	}
	return articles, nil
}

// --- FEED ---

func (r *ArticleRepo) FindPublishedExcludingBlocker(ctx context.Context, viewerID string, skip, limit int) ([]*domain.FeedRecord, error) {
	q := feedSelect + feedOrder + `
	OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, q, viewerID, skip, limit)
	if err != nil {
		return nil, storageErr("find published articles", err)
	}
	return collectFeedRecords(rows)
}

func (r *ArticleRepo) FindPublishedByCategoriesExcludingBlocker(ctx context.Context, viewerID string, categories []string, skip, limit int) ([]*domain.FeedRecord, error) {
	q := feedSelect + `
	  AND a.category_name = ANY($2)` + feedOrder + `
	OFFSET $3 LIMIT $4`

	rows, err := r.db.Query(ctx, q, viewerID, categories, skip, limit)
	if err != nil {
		return nil, storageErr("find published articles by categories", err)
	}
	return collectFeedRecords(rows)
}

// --- TOGGLES ---
// Une seule instruction UPDATE par toggle : Postgres verrouille la ligne, réévalue
// les tableaux sur la dernière version et applique ajout + retrait ensemble.
// Aucun état intermédiaire n'est visible et deux likes concurrents ne se perdent pas.

const likeSQL = `
	UPDATE articles
	SET liked_by = CASE WHEN $2 = ANY(liked_by) THEN liked_by ELSE array_append(liked_by, $2) END,
		disliked_by = array_remove(disliked_by, $2)
	WHERE id = $1`

const dislikeSQL = `
	UPDATE articles
	SET disliked_by = CASE WHEN $2 = ANY(disliked_by) THEN disliked_by ELSE array_append(disliked_by, $2) END,
		liked_by = array_remove(liked_by, $2)
	WHERE id = $1`

const blockSQL = `
	UPDATE articles
	SET blocked_by = CASE WHEN $2 = ANY(blocked_by) THEN blocked_by ELSE array_append(blocked_by, $2) END
	WHERE id = $1`

func (r *ArticleRepo) AddToLikedRemoveFromDisliked(ctx context.Context, articleID, userID string) error {
	return r.toggle(ctx, "like article", likeSQL, articleID, userID)
}

func (r *ArticleRepo) AddToDislikedRemoveFromLiked(ctx context.Context, articleID, userID string) error {
	return r.toggle(ctx, "dislike article", dislikeSQL, articleID, userID)
}

func (r *ArticleRepo) AddToBlocked(ctx context.Context, articleID, userID string) error {
	return r.toggle(ctx, "block article", blockSQL, articleID, userID)
}

func (r *ArticleRepo) toggle(ctx context.Context, op, q, articleID, userID string) error {
	tag, err := r.db.Exec(ctx, q, articleID, userID)
	if err != nil {
		return storageErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// --- HELPERS ---

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var (
		a        domain.Article
		imageURL *string
		status   string
	)
	err := row.Scan(
		&a.ID, &a.OwnerID, &a.CategoryID, &a.CategoryName, &a.Title, &a.Description, &a.Content,
		&imageURL, &a.Tags, &status, &a.LikedBy, &a.DislikedBy, &a.BlockedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ImageURL = derefString(imageURL)
	a.Status = domain.ArticleStatus(status)
	a.Tags = nonNil(a.Tags)
	a.LikedBy = nonNil(a.LikedBy)
	a.DislikedBy = nonNil(a.DislikedBy)
	a.BlockedBy = nonNil(a.BlockedBy)
	return &a, nil
}

func collectFeedRecords(rows pgx.Rows) ([]*domain.FeedRecord, error) {
	defer rows.Close()

	records := []*domain.FeedRecord{}
	for rows.Next() {
		var (
			a                             domain.Article
			imageURL                      *string
			status                        string
			authorID, firstName, lastName *string
			avatar                        *string
			createdAt, updatedAt          time.Time
		)
		err := rows.Scan(
			&a.ID, &a.OwnerID, &a.CategoryID, &a.CategoryName, &a.Title, &a.Description, &a.Content,
			&imageURL, &a.Tags, &status, &a.LikedBy, &a.DislikedBy, &a.BlockedBy, &createdAt, &updatedAt,
			&authorID, &firstName, &lastName, &avatar,
		)
		if err != nil {
			return nil, storageErr("scan feed record", err)
		}
		a.ImageURL = derefString(imageURL)
		a.Status = domain.ArticleStatus(status)
		a.CreatedAt, a.UpdatedAt = createdAt, updatedAt
		a.Tags = nonNil(a.Tags)
		a.LikedBy = nonNil(a.LikedBy)
		a.DislikedBy = nonNil(a.DislikedBy)
		a.BlockedBy = nonNil(a.BlockedBy)

		rec := &domain.FeedRecord{Article: &a}
		if authorID != nil {
			rec.Author = &domain.AuthorIdentity{
				FirstName:       derefString(firstName),
				LastName:        derefString(lastName),
				ProfileImageURL: derefString(avatar),
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate feed records", err)
	}
	return records, nil
}
