package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhinavnt/article-hub/internal/core/domain"
	"github.com/abhinavnt/article-hub/internal/core/ports"
)

// --- CATÉGORIES ---

// GET /articles/categories
func (s *Server) ListCategories(c echo.Context) error {
	categories, err := s.svc.Articles.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		resp[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusOK, resp)
}

// POST /articles/categories
func (s *Server) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := s.svc.Articles.ResolveOrCreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// --- CRÉATION ---

// POST /articles/draft
func (s *Server) SaveDraft(c echo.Context) error {
	return s.createArticle(c, s.svc.Articles.SaveDraft)
}

// POST /articles/publish
func (s *Server) Publish(c echo.Context) error {
	return s.createArticle(c, s.svc.Articles.Publish)
}

type createFunc func(ctx context.Context, cmd ports.CreateArticleCmd) (*domain.Article, error)

func (s *Server) createArticle(c echo.Context, create createFunc) error {
	req, image, closeImage, err := readCreateRequest(c)
	if err != nil {
		return err
	}
	defer closeImage()

	article, err := create(c.Request().Context(), ports.CreateArticleCmd{
		OwnerID:      currentUser(c),
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		CategoryName: req.Category,
		Tags:         req.Tags,
		Image:        image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ArticleCreatedResponse{ID: article.ID, Title: article.Title})
}

func readCreateRequest(c echo.Context) (*CreateArticleRequest, *domain.MediaFile, func(), error) {
	noop := func() {}
	req := &CreateArticleRequest{}

	if !isMultipart(c) {
		if err := bindAndValidate(c, req); err != nil {
			return nil, nil, noop, err
		}
		return req, nil, noop, nil
	}

	tags, err := parseTags(c.FormValue("tags"))
	if err != nil {
		return nil, nil, noop, err
	}
	req.Title = c.FormValue("title")
	req.Description = c.FormValue("description")
	req.Content = c.FormValue("content")
	req.Category = c.FormValue("category")
	req.Tags = tags
	if err := c.Validate(req); err != nil {
		return nil, nil, noop, err
	}

	image, closeImage, err := openUpload(c, "image")
	if err != nil {
		return nil, nil, noop, err
	}
	return req, image, closeImage, nil
}

// --- LECTURE ---

// GET /articles/:id
func (s *Server) GetArticle(c echo.Context) error {
	article, err := s.svc.Articles.GetArticle(c.Request().Context(), c.Param("id"), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// GET /articles/mine?page&pageSize
func (s *Server) ListMyArticles(c echo.Context) error {
	page, pageSize, err := parsePagination(c)
	if err != nil {
		return err
	}
	articles, err := s.svc.Articles.ListMyArticles(c.Request().Context(), currentUser(c), page, pageSize)
	if err != nil {
		return err
	}
	resp := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		resp[i] = toArticleResponse(a)
	}
	return c.JSON(http.StatusOK, resp)
}

// --- MISE À JOUR / SUPPRESSION ---

// PATCH /articles/:id
func (s *Server) UpdateArticle(c echo.Context) error {
	cmd, closeImage, err := readUpdateCommand(c)
	if err != nil {
		return err
	}
	defer closeImage()

	article, err := s.svc.Articles.UpdateArticle(c.Request().Context(), *cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

func readUpdateCommand(c echo.Context) (*ports.UpdateArticleCmd, func(), error) {
	noop := func() {}
	req := &UpdateArticleRequest{}
	var image *domain.MediaFile
	closeImage := noop

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, noop, domain.InvalidInput("invalid multipart form")
		}
		req.Title = formValue(form, "title")
		req.Description = formValue(form, "description")
		req.Content = formValue(form, "content")
		req.Category = formValue(form, "category")
		req.Status = formValue(form, "status")
		if raw := formValue(form, "tags"); raw != nil {
			if req.Tags, err = parseTags(*raw); err != nil {
				return nil, noop, err
			}
		}
		if err := c.Validate(req); err != nil {
			return nil, noop, err
		}
		if image, closeImage, err = openUpload(c, "image"); err != nil {
			return nil, noop, err
		}
	} else if err := bindAndValidate(c, req); err != nil {
		return nil, noop, err
	}

	cmd := &ports.UpdateArticleCmd{
		ArticleID:    c.Param("id"),
		OwnerID:      currentUser(c),
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		CategoryName: req.Category,
		Tags:         req.Tags,
		Image:        image,
	}
	if req.Status != nil {
		status, err := domain.ParseArticleStatus(*req.Status)
		if err != nil {
			closeImage()
			return nil, noop, err
		}
		cmd.Status = &status
	}
	return cmd, closeImage, nil
}

// DELETE /articles/:id
func (s *Server) DeleteArticle(c echo.Context) error {
	if err := s.svc.Articles.DeleteArticle(c.Request().Context(), c.Param("id"), currentUser(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- HELPERS ---

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return domain.InvalidInput("invalid request body")
	}
	return c.Validate(req)
}
