package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

// GET /user/me
func (s *Server) Me(c echo.Context) error {
	user, err := s.svc.Users.GetUser(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// PATCH /user/profile/:userId
func (s *Server) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := domain.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, *req.DateOfBirth)
		if err != nil {
			return domain.InvalidInput("dateOfBirth must match the format 2006-01-02")
		}
		patch.DateOfBirth = &dob
	}

	user, err := s.svc.Users.UpdateProfile(c.Request().Context(), ports.UpdateProfileCmd{
		ActorID: currentUser(c),
		UserID:  c.Param("userId"),
		Patch:   patch,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// PATCH /user/preferences/:userId
func (s *Server) UpdatePreferences(c echo.Context) error {
	var req PreferencesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := s.svc.Users.UpdatePreferences(c.Request().Context(), currentUser(c), c.Param("userId"), req.ArticlePreferences)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// PUT /user/password/:userId
func (s *Server) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	err := s.svc.Users.ChangePassword(c.Request().Context(), ports.ChangePasswordCmd{
		ActorID:     currentUser(c),
		UserID:      c.Param("userId"),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated"})
}

// POST /user/profile-photo/:userId (multipart, champ `photo`)
func (s *Server) UpdateProfilePhoto(c echo.Context) error {
	photo, closePhoto, err := openUpload(c, "photo")
	if err != nil {
		return err
	}
	defer closePhoto()
	if photo == nil {
		return domain.InvalidInput("photo is required")
	}

	user, err := s.svc.Users.UpdateProfilePhoto(c.Request().Context(), currentUser(c), c.Param("userId"), *photo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
