package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

const minPasswordLength = 6

// IdentityService implémente ports.IdentityService (Primary Port).
// Il produit l'identité vérifiée consommée par le reste du système.
type IdentityService struct {
	repo          ports.UserRepository
	hasher        ports.PasswordHasher
	tokenProvider ports.TokenProvider
}

func NewIdentityService(repo ports.UserRepository, hasher ports.PasswordHasher, token ports.TokenProvider) *IdentityService {
	return &IdentityService{
		repo:          repo,
		hasher:        hasher,
		tokenProvider: token,
	}
}

// --- AUTHENTIFICATION ---

func (s *IdentityService) Register(ctx context.Context, cmd ports.RegisterCmd) (*ports.AuthResponse, error) {
	if cmd.Password != cmd.PasswordConfirmation {
		return nil, domain.ErrPasswordMismatch
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	// 1. Fail Fast : unicité email / téléphone.
	// La contrainte UNIQUE de la DB reste la sécurité ultime (race condition).
	if err := s.ensureAbsent(ctx, s.repo.GetByEmail, strings.ToLower(strings.TrimSpace(cmd.Email)), domain.ErrEmailAlreadyExists); err != nil {
		return nil, err
	}
	if err := s.ensureAbsent(ctx, s.repo.GetByPhone, strings.TrimSpace(cmd.Phone), domain.ErrPhoneAlreadyExists); err != nil {
		return nil, err
	}

	// 2. Hachage
	hashedPassword, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Agrégat
	user, err := domain.NewUser(domain.NewUserParams{
		FirstName:          cmd.FirstName,
		LastName:           cmd.LastName,
		Email:              cmd.Email,
		Phone:              cmd.Phone,
		PasswordHash:       hashedPassword,
		DateOfBirth:        cmd.DateOfBirth,
		ArticlePreferences: cmd.ArticlePreferences,
	})
	if err != nil {
		return nil, err
	}

	// 4. Persistance
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *IdentityService) Login(ctx context.Context, cmd ports.LoginCmd) (*ports.AuthResponse, error) {
	identifier := strings.TrimSpace(cmd.Identifier)

	// L'identifiant est un email ou un téléphone.
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(identifier))
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.repo.GetByPhone(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// On ne dit pas si c'est l'identifiant ou le mot de passe qui est faux.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, cmd.Password); err != nil {
		if errors.Is(err, ports.ErrPasswordMismatch) {
			return nil, domain.ErrInvalidCredentials
		}
		// Hash stocké illisible : panne, pas un échec d'authentification.
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return s.issue(user)
}

func (s *IdentityService) RefreshToken(ctx context.Context, refreshToken string) (*ports.AuthResponse, error) {
	userID, err := s.tokenProvider.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	access, err := s.tokenProvider.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("refresh token gen failed: %w", err)
	}
	return &ports.AuthResponse{User: user, AccessToken: access}, nil
}

func (s *IdentityService) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := s.tokenProvider.Validate(token)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	return userID, nil
}

// --- HELPERS ---

func (s *IdentityService) issue(user *domain.User) (*ports.AuthResponse, error) {
	access, refresh, err := s.tokenProvider.GenerateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}
	return &ports.AuthResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *IdentityService) ensureAbsent(
	ctx context.Context,
	lookup func(ctx context.Context, key string) (*domain.User, error),
	key string,
	conflict error,
) error {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return conflict
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return err
	}
}
