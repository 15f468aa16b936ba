package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

// PUT /articles/:id/like
func (s *Server) Like(c echo.Context) error {
	return s.interact(c, domain.InteractionLike, s.svc.Interactions.Like, "Article liked")
}

// PUT /articles/:id/dislike
func (s *Server) Dislike(c echo.Context) error {
	return s.interact(c, domain.InteractionDislike, s.svc.Interactions.Dislike, "Article disliked")
}

// PUT /articles/:id/block
func (s *Server) Block(c echo.Context) error {
	return s.interact(c, domain.InteractionBlock, s.svc.Interactions.Block, "Article blocked")
}

func (s *Server) interact(
	c echo.Context,
	kind domain.InteractionKind,
	toggle func(ctx context.Context, articleID, userID string) error,
	message string,
) error {
	err := toggle(c.Request().Context(), c.Param("id"), currentUser(c))
	if err != nil {
		InteractionsTotal.WithLabelValues(string(kind), "error").Inc()
		return err
	}
	InteractionsTotal.WithLabelValues(string(kind), "ok").Inc()
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}
