package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

// --- ENTITÉ ---

type User struct {
	ID                 string
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	PasswordHash       string
	ProfileImageURL    string
	DateOfBirth        time.Time
	ArticlePreferences []string
	Role               UserRole
	Status             UserStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUserParams évite une signature à rallonge pour la factory.
type NewUserParams struct {
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	PasswordHash       string
	DateOfBirth        time.Time
	ArticlePreferences []string
}

// NewUser crée une instance valide (ID + validation des invariants).
func NewUser(p NewUserParams) (*User, error) {
	if err := validateEmail(p.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return nil, InvalidInput("first name and last name are required")
	}
	if strings.TrimSpace(p.Phone) == "" {
		return nil, InvalidInput("phone is required")
	}

	now := time.Now().UTC()
	return &User{
		ID:                 uuid.NewString(),
		FirstName:          strings.TrimSpace(p.FirstName),
		LastName:           strings.TrimSpace(p.LastName),
		Email:              strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:              strings.TrimSpace(p.Phone),
		PasswordHash:       p.PasswordHash,
		DateOfBirth:        p.DateOfBirth,
		ArticlePreferences: NormalizePreferences(p.ArticlePreferences),
		Role:               RoleUser,
		Status:             UserActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// --- COMPORTEMENTS ---

// ProfilePatch : nil = champ inchangé.
type ProfilePatch struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	DateOfBirth *time.Time
}

// ApplyProfile retourne true si quelque chose a changé.
func (u *User) ApplyProfile(p ProfilePatch) bool {
	changed := false
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) != "" {
		u.FirstName = strings.TrimSpace(*p.FirstName)
		changed = true
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) != "" {
		u.LastName = strings.TrimSpace(*p.LastName)
		changed = true
	}
	if p.Phone != nil && strings.TrimSpace(*p.Phone) != "" {
		u.Phone = strings.TrimSpace(*p.Phone)
		changed = true
	}
	if p.DateOfBirth != nil && !p.DateOfBirth.IsZero() {
		u.DateOfBirth = *p.DateOfBirth
		changed = true
	}
	if changed {
		u.touch()
	}
	return changed
}

func (u *User) SetPreferences(prefs []string) {
	u.ArticlePreferences = NormalizePreferences(prefs)
	u.touch()
}

func (u *User) SetProfileImage(url string) {
	u.ProfileImageURL = url
	u.touch()
}

func (u *User) UpdatePassword(newHash string) {
	u.PasswordHash = newHash
	u.touch()
}

// DisplayName : prénom + nom, sans espace parasite si l'un des deux manque.
func (u *User) DisplayName() string {
	return JoinName(u.FirstName, u.LastName)
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}

// NormalizePreferences : trim, suppression des vides et doublons, ordre d'affichage conservé.
func NormalizePreferences(prefs []string) []string {
	out := make([]string, 0, len(prefs))
	seen := make(map[string]struct{}, len(prefs))
	for _, p := range prefs {
		p = NormalizeCategoryName(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func JoinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}
