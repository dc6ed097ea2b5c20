package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/farellandr/fyyur/config"
	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/handlers"
	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/logger"
	"github.com/farellandr/fyyur/internal/middleware"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/farellandr/fyyur/internal/validation"
	"github.com/farellandr/fyyur/internal/views"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoriesCachePrefix namespaces cached GET /categories responses.
const CategoriesCachePrefix = "trivia:categories"

// Options are the dependencies shared by both routers. Redis and Publisher
// may be nil.
type Options struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    *zap.Logger
	Redis     *redis.Client
	Publisher events.Publisher
}

func newEngine(opts Options, htmlErrors bool) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(ginzap.Ginzap(log, time.RFC3339, true))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		if htmlErrors {
			helpers.RenderError(c, http.StatusInternalServerError)
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "")
	}))
	r.Use(middleware.MetricsMiddleware(opts.Config.App))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}

func useShared(r *gin.Engine, opts Options) {
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	r.Use(middleware.DatabaseMiddleware(opts.DB))
	r.Use(middleware.SettingsMiddleware(middleware.Settings{
		UploadDir: opts.Config.UploadDir,
		JWTSecret: opts.Config.JWTSecret,
	}))
	r.Use(middleware.PublisherMiddleware(publisher))
}

// NewFyyurRouter builds the HTML listing site.
func NewFyyurRouter(opts Options) (*gin.Engine, error) {
	r, err := newEngine(opts, true)
	if err != nil {
		return nil, err
	}

	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	useShared(r, opts)
	r.Static(helpers.UploadRoute, opts.Config.UploadDir)

	r.NoRoute(handlers.NotFoundPage)
	r.NoMethod(handlers.MethodNotAllowedPage)

	r.GET("/", handlers.Home)

	venues := r.Group("/venues")
	{
		venues.GET("", handlers.ListVenues)
		venues.POST("/search", handlers.SearchVenues)
		venues.GET("/create", handlers.CreateVenueForm)
		venues.POST("/create", handlers.CreateVenueSubmission)
		venues.GET("/:id", handlers.GetVenue)
		venues.DELETE("/:id", handlers.DeleteVenue)
		venues.GET("/:id/edit", handlers.EditVenueForm)
		venues.POST("/:id/edit", handlers.EditVenueSubmission)
	}

	artists := r.Group("/artists")
	{
		artists.GET("", handlers.ListArtists)
		artists.POST("/search", handlers.SearchArtists)
		artists.GET("/create", handlers.CreateArtistForm)
		artists.POST("/create", handlers.CreateArtistSubmission)
		artists.GET("/:id", handlers.GetArtist)
		artists.DELETE("/:id", handlers.DeleteArtist)
		artists.GET("/:id/edit", handlers.EditArtistForm)
		artists.POST("/:id/edit", handlers.EditArtistSubmission)
	}

	shows := r.Group("/shows")
	{
		shows.GET("", handlers.ListShows)
		shows.GET("/create", handlers.CreateShowForm)
		shows.POST("/create", handlers.CreateShowSubmission)
	}

	return r, nil
}

// NewTriviaRouter builds the JSON quiz API.
func NewTriviaRouter(opts Options) (*gin.Engine, error) {
	r, err := newEngine(opts, false)
	if err != nil {
		return nil, err
	}

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))
	useShared(r, opts)

	r.NoRoute(func(c *gin.Context) {
		helpers.RespondWithError(c, http.StatusNotFound, "")
	})
	r.NoMethod(func(c *gin.Context) {
		helpers.RespondWithError(c, http.StatusMethodNotAllowed, "")
	})

	cfg := opts.Config
	authorize := func(roles ...string) []gin.HandlerFunc {
		if !cfg.TriviaRequireAuth {
			return nil
		}
		chain := []gin.HandlerFunc{middleware.JWTAuthMiddleware(cfg.JWTSecret)}
		if len(roles) > 0 {
			chain = append(chain, middleware.RequireRole(roles...))
		}
		return chain
	}

	r.GET("/categories", middleware.CacheMiddleware(opts.Redis, CategoriesCachePrefix, cfg.CacheTTL), handlers.ListCategories)
	r.GET("/categories/:id/questions", handlers.GetCategoryQuestions)

	r.GET("/questions", handlers.ListQuestions)
	r.POST("/questions", append(authorize(), handlers.CreateQuestion)...)
	r.POST("/questions/search", handlers.SearchQuestions)
	r.DELETE("/questions/:id", append(authorize(models.RoleAdmin), handlers.DeleteQuestion)...)

	r.POST("/quizzes", handlers.PlayQuiz)

	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/admins", middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.RequireRole(models.RoleAdmin), handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.GET("/me", middleware.JWTAuthMiddleware(cfg.JWTSecret), handlers.GetProfile)
	}

	return r, nil
}

// Start runs app ("fyyur" or "trivia") until the listener fails.
func Start(app string) error {
	cfg, err := config.LoadConfig(app)
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	log := logger.NewLogger(cfg.LogLevel, zap.String("app", cfg.App))
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	opts := Options{Config: cfg, DB: db, Logger: log}

	if cfg.RabbitMQURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Warn("event publishing disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			opts.Publisher = publisher
		}
	}

	var r *gin.Engine
	switch app {
	case config.AppFyyur:
		r, err = NewFyyurRouter(opts)
	case config.AppTrivia:
		if rdb := config.NewRedisClient(cfg); rdb != nil {
			defer rdb.Close()
			opts.Redis = rdb
		} else if cfg.RedisAddr != "" {
			log.Warn("redis unreachable, response cache disabled", zap.String("addr", cfg.RedisAddr))
		}
		r, err = NewTriviaRouter(opts)
	}
	if err != nil {
		return err
	}

	log.Info("starting server", zap.String("app", app), zap.String("port", cfg.Port))
	return r.Run(":" + cfg.Port)
}
