package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/abhinavnt/article-hub/internal/core/ports"
)

// Services regroupe les ports primaires exposés en HTTP.
type Services struct {
	Feed         ports.FeedService
	Interactions ports.InteractionService
	Articles     ports.ArticleService
	Identity     ports.IdentityService
	Users        ports.UserService
}

type Options struct {
	ServiceName  string
	SecureCookie bool // false en local (pas de HTTPS)
	BodyLimit    string
}

type Server struct {
	svc  Services
	opts Options
}

func NewServer(svc Services, opts Options) *Server {
	if opts.ServiceName == "" {
		opts.ServiceName = "article-hub"
	}
	if opts.BodyLimit == "" {
		opts.BodyLimit = "10M" // images
	}
	return &Server{svc: svc, opts: opts}
}

// NewEcho construit l'instance echo complète (middlewares + routes).
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(s.opts.BodyLimit))
	e.Use(otelecho.Middleware(s.opts.ServiceName))
	e.Use(Metrics())

	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	// Ops
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	requireAuth := RequireAuth(s.svc.Identity)

	// Auth (public)
	auth := e.Group("/auth")
	auth.POST("/register", s.RegisterUser)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.POST("/refresh-token", s.RefreshToken)

	// Catégories (public : le formulaire d'inscription en a besoin pour les préférences)
	e.GET("/articles/categories", s.ListCategories)

	// Articles (protégé)
	articles := e.Group("/articles", requireAuth)
	articles.GET("", s.GetFeed)
	articles.GET("/preferences", s.GetPreferenceFeed)
	articles.GET("/mine", s.ListMyArticles)
	articles.POST("/categories", s.CreateCategory)
	articles.POST("/draft", s.SaveDraft)
	articles.POST("/publish", s.Publish)
	articles.GET("/:id", s.GetArticle)
	articles.PATCH("/:id", s.UpdateArticle)
	articles.DELETE("/:id", s.DeleteArticle)
	articles.PUT("/:id/like", s.Like)
	articles.PUT("/:id/dislike", s.Dislike)
	articles.PUT("/:id/block", s.Block)

	// Utilisateur (protégé)
	user := e.Group("/user", requireAuth)
	user.GET("/me", s.Me)
	user.PATCH("/profile/:userId", s.UpdateProfile)
	user.PATCH("/preferences/:userId", s.UpdatePreferences)
	user.PUT("/password/:userId", s.ChangePassword)
	user.POST("/profile-photo/:userId", s.UpdateProfilePhoto)
}
