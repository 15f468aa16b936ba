package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

type CategoryRepo struct {
	db DB
}

func NewCategoryRepo(db DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) FindAll(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, storageErr("list categories", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, storageErr("scan category", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list categories", err)
	}
	return categories, nil
}

// FindByName : correspondance exacte (sensible à la casse).
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM categories WHERE name = $1`, name).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, storageErr("find category", err)
	}
	return &c, nil
}

// Create est idempotent : si une requête concurrente a créé le même nom entre-temps,
// le ON CONFLICT renvoie la ligne existante au lieu d'une erreur.
func (r *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	q := `
		INSERT INTO categories (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT categories_name_key DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`
	var c domain.Category
	err := r.db.QueryRow(ctx, q, category.ID, category.Name, category.CreatedAt).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, storageErr("create category", err)
	}
	return &c, nil
}
