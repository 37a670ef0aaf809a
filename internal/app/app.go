package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizdeck_backend/internal/config"
	"quizdeck_backend/internal/controller"
	"quizdeck_backend/internal/repository"
	"quizdeck_backend/internal/service"
	"quizdeck_backend/pkg/logger"
	"quizdeck_backend/pkg/monitoring"
	"quizdeck_backend/pkg/security"
	"quizdeck_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	services *services
}

type repositories struct {
	collection *repository.CollectionRepository
	attempt    *repository.AttemptRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	quiz       *service.QuizService
	attempt    *service.AttemptService
	extraction *service.ExtractionService
	backup     *service.BackupService
}

type controllers struct {
	auth       *controller.AuthController
	quiz       *controller.QuizController
	attempt    *controller.AttemptController
	extraction *controller.ExtractionController
	backup     *controller.BackupController
	health     *controller.HealthController
}

func (a *App) initRepositories(cfg *config.Config) *repositories {
	return &repositories{
		collection: repository.NewCollectionRepository(cfg.Data.Dir),
		attempt:    repository.NewAttemptRepository(cfg.Data.Dir),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(cfg)
	s.quiz = service.NewQuizService(repos.collection, s.storage)
	s.attempt = service.NewAttemptService(repos.attempt)
	s.extraction = service.NewExtractionService(service.NewAIService(cfg.AI))
	s.backup = service.NewBackupService(s.quiz, s.storage)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		quiz:       controller.NewQuizController(s.quiz, s.attempt),
		attempt:    controller.NewAttemptController(s.attempt),
		extraction: controller.NewExtractionController(s.extraction),
		backup:     controller.NewBackupController(s.backup),
		health:     controller.NewHealthController(a.Config),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}

	repos := app.initRepositories(cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quizdeck", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
