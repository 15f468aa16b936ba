package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

const userColumns = `id, first_name, last_name, email, phone, password_hash, profile_image_url,
	date_of_birth, article_preferences, role, status, created_at, updated_at`

type UserRepo struct {
	db DB
}

func NewUserRepo(db DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Save(ctx context.Context, u *domain.User) error {
	q := `
		INSERT INTO users (id, first_name, last_name, email, phone, password_hash, profile_image_url,
			date_of_birth, article_preferences, role, status, created_at, updated_at)
		VALUES (@id, @first_name, @last_name, @email, @phone, @password_hash, @profile_image_url,
			@date_of_birth, @article_preferences, @role, @status, @created_at, @updated_at)
	`
	args := pgx.NamedArgs{
		"id":                  u.ID,
		"first_name":          u.FirstName,
		"last_name":           u.LastName,
		"email":               u.Email,
		"phone":               u.Phone,
		"password_hash":       u.PasswordHash,
		"profile_image_url":   nullableString(u.ProfileImageURL),
		"date_of_birth":       nullableTime(u.DateOfBirth),
		"article_preferences": nonNil(u.ArticlePreferences),
		"role":                string(u.Role),
		"status":              string(u.Status),
		"created_at":          u.CreatedAt,
		"updated_at":          u.UpdatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return r.handleError("save user", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getOne(ctx, "get user by phone", `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}

// UpdateProfile : identité affichée uniquement (nom, téléphone, date de naissance).
func (r *UserRepo) UpdateProfile(ctx context.Context, u *domain.User) error {
	q := `
		UPDATE users
		SET first_name = @first_name, last_name = @last_name, phone = @phone,
			date_of_birth = @date_of_birth, updated_at = @updated_at
		WHERE id = @id
	`
	args := pgx.NamedArgs{
		"id":            u.ID,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"phone":         u.Phone,
		"date_of_birth": nullableTime(u.DateOfBirth),
		"updated_at":    u.UpdatedAt,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return r.handleError("update profile", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) UpdatePreferences(ctx context.Context, userID string, prefs []string, at time.Time) error {
	return r.updateColumn(ctx, "update preferences",
		`UPDATE users SET article_preferences = $2, updated_at = $3 WHERE id = $1`, userID, nonNil(prefs), at)
}

func (r *UserRepo) UpdateProfileImage(ctx context.Context, userID, url string, at time.Time) error {
	return r.updateColumn(ctx, "update profile image",
		`UPDATE users SET profile_image_url = $2, updated_at = $3 WHERE id = $1`, userID, nullableString(url), at)
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error {
	return r.updateColumn(ctx, "update password",
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, userID, hash, at)
}

// FindPreferencesByUserID : index des préférences (lecture ciblée, pas tout le profil).
func (r *UserRepo) FindPreferencesByUserID(ctx context.Context, userID string) ([]string, error) {
	var prefs []string
	err := r.db.QueryRow(ctx, `SELECT article_preferences FROM users WHERE id = $1`, userID).Scan(&prefs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageErr("find preferences", err)
	}
	return nonNil(prefs), nil
}

// --- HELPERS ---

func (r *UserRepo) updateColumn(ctx context.Context, op, q, userID string, value any, at time.Time) error {
	tag, err := r.db.Exec(ctx, q, userID, value, at)
	if err != nil {
		return storageErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, op, q string, arg string) (*domain.User, error) {
	var (
		u           domain.User
		avatar      *string
		dateOfBirth *time.Time
		role        string
		status      string
	)
	err := r.db.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash, &avatar,
		&dateOfBirth, &u.ArticlePreferences, &role, &status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound // Traduction technique -> Domaine
		}
		return nil, storageErr(op, err)
	}

	u.ProfileImageURL = derefString(avatar)
	if dateOfBirth != nil {
		u.DateOfBirth = *dateOfBirth
	}
	u.ArticlePreferences = nonNil(u.ArticlePreferences)
	u.Role = domain.UserRole(role)
	u.Status = domain.UserStatus(status)
	return &u, nil
}

// handleError traduit les codes d'erreur PostgreSQL en erreurs du Domaine
func (r *UserRepo) handleError(op string, err error) error {
	switch {
	case isUniqueViolation(err, "users_email_key"):
		return domain.ErrEmailAlreadyExists
	case isUniqueViolation(err, "users_phone_key"):
		return domain.ErrPhoneAlreadyExists
	}
	return storageErr(op, err)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
