package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category : le nom est l'identité métier (unique, comparaison exacte).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func NewCategory(name string) (*Category, error) {
	name = NormalizeCategoryName(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	return &Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NormalizeCategoryName retire les espaces autour, la casse est conservée.
func NormalizeCategoryName(name string) string {
	return strings.TrimSpace(name)
}
