package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

// GET /articles?page&pageSize
func (s *Server) GetFeed(c echo.Context) error {
	return s.feed(c, domain.FeedModeAll)
}

// GET /articles/preferences?page&pageSize
func (s *Server) GetPreferenceFeed(c echo.Context) error {
	return s.feed(c, domain.FeedModePreferences)
}

func (s *Server) feed(c echo.Context, mode domain.FeedMode) error {
	page, pageSize, err := parsePagination(c)
	if err != nil {
		return err
	}

	entries, err := s.svc.Feed.GetFeed(c.Request().Context(), domain.FeedRequest{
		ViewerID: currentUser(c),
		Mode:     mode,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	resp := FeedResponse{
		Articles: make([]FeedEntryResponse, len(entries)),
		Page:     page,
		PageSize: pageSize,
	}
	for i, e := range entries {
		resp.Articles[i] = toFeedEntryResponse(e)
	}
	return c.JSON(http.StatusOK, resp)
}

// parsePagination : défauts page=1, pageSize=9, pageSize plafonné à 100.
// Les valeurs < 1 sont transmises telles quelles, le service les rejette.
func parsePagination(c echo.Context) (int, int, error) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := intQuery(c, "pageSize", domain.DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	return page, pageSize, nil
}

func intQuery(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrInvalidPagination
	}
	return v, nil
}
