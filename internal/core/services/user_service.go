package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

const profilePhotosFolder = "profile_photos"

type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	media  ports.MediaStore
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, media ports.MediaStore) *UserService {
	return &UserService{repo: repo, hasher: hasher, media: media}
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, cmd ports.UpdateProfileCmd) (*domain.User, error) {
	user, err := s.loadOwn(ctx, cmd.ActorID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	// Persister uniquement si nécessaire
	if user.ApplyProfile(cmd.Patch) {
		if err := s.repo.UpdateProfile(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, actorID, userID string, prefs []string) (*domain.User, error) {
	user, err := s.loadOwn(ctx, actorID, userID)
	if err != nil {
		return nil, err
	}

	user.SetPreferences(prefs)
	if err := s.repo.UpdatePreferences(ctx, user.ID, user.ArticlePreferences, user.UpdatedAt); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfilePhoto(ctx context.Context, actorID, userID string, file domain.MediaFile) (*domain.User, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return nil, domain.ErrInvalidImage
	}

	user, err := s.loadOwn(ctx, actorID, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.media.Upload(ctx, profilePhotosFolder, file)
	if err != nil {
		return nil, fmt.Errorf("upload profile photo: %w", err)
	}

	user.SetProfileImage(url)
	if err := s.repo.UpdateProfileImage(ctx, user.ID, user.ProfileImageURL, user.UpdatedAt); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, cmd ports.ChangePasswordCmd) error {
	if len(cmd.NewPassword) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	user, err := s.loadOwn(ctx, cmd.ActorID, cmd.UserID)
	if err != nil {
		return err
	}

	// Vérifier l'ancien mot de passe
	if err := s.hasher.Compare(user.PasswordHash, cmd.OldPassword); err != nil {
		if errors.Is(err, ports.ErrPasswordMismatch) {
			return fmt.Errorf("old password incorrect: %w", domain.ErrInvalidCredentials)
		}
		return fmt.Errorf("compare password: %w", err)
	}

	newHash, err := s.hasher.Hash(cmd.NewPassword)
	if err != nil {
		return err
	}

	user.UpdatePassword(newHash)
	return s.repo.UpdatePasswordHash(ctx, user.ID, user.PasswordHash, user.UpdatedAt)
}

// loadOwn : un utilisateur ne modifie que son propre compte.
func (s *UserService) loadOwn(ctx context.Context, actorID, userID string) (*domain.User, error) {
	if actorID == "" || actorID != userID {
		return nil, domain.ErrForbidden
	}
	return s.repo.GetByID(ctx, userID)
}
