package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

const refreshCookieName = "refreshToken"

// POST /auth/register
func (s *Server) RegisterUser(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(time.DateOnly, req.DateOfBirth)
		if err != nil {
			return domain.InvalidInput("dateOfBirth must match the format 2006-01-02")
		}
		dob = parsed
	}

	res, err := s.svc.Identity.Register(c.Request().Context(), ports.RegisterCmd{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Phone:                req.Phone,
		DateOfBirth:          dob,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		ArticlePreferences:   req.ArticlePreferences,
	})
	if err != nil {
		return err
	}

	s.setRefreshCookie(c, res.RefreshToken)
	return c.JSON(http.StatusCreated, toAuthResponse(res))
}

// POST /auth/login
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := s.svc.Identity.Login(c.Request().Context(), ports.LoginCmd{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	s.setRefreshCookie(c, res.RefreshToken)
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// POST /auth/logout : tokens stateless, on efface seulement le cookie.
func (s *Server) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: s.sameSite(),
	})
	return c.NoContent(http.StatusNoContent)
}

// POST /auth/refresh-token : cookie en priorité, corps JSON sinon (clients non-navigateur).
func (s *Server) RefreshToken(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req RefreshRequest
		if err := c.Bind(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token not found")
	}

	res, err := s.svc.Identity.RefreshToken(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

func (s *Server) setRefreshCookie(c echo.Context, token string) {
	if token == "" {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: s.sameSite(),
	})
}

// SameSite=None exige Secure ; en local on retombe sur Lax.
func (s *Server) sameSite() http.SameSite {
	if s.opts.SecureCookie {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func toAuthResponse(res *ports.AuthResponse) AuthResponse {
	return AuthResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         toUserResponse(res.User),
	}
}
