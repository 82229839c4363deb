package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "movie-i18n/docs"
	"movie-i18n/internal/cache"
	"movie-i18n/internal/config"
	"movie-i18n/internal/database"
	"movie-i18n/internal/handlers"
	"movie-i18n/internal/i18n"
	"movie-i18n/internal/middleware"
	"movie-i18n/internal/repository"
	"movie-i18n/internal/routes"
	"movie-i18n/internal/services"
	"movie-i18n/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title Movie i18n API
// @version 1.0
// @description Movie catalog API with per-language titles and overviews, TMDB sync in several languages, translation analytics and artwork uploads
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

func main() {
	// Load environment variables
	loadEnvFile()

	// Setup logger
	log := setupLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	fallbacks, err := cfg.Fallbacks()
	if err != nil {
		log.Fatalf("Failed to load language fallbacks: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	catalog, err := i18n.Setup(db.DB, fallbacks, log)
	if err != nil {
		log.Fatalf("Failed to register translated models: %v", err)
	}

	languageCache, err := cache.NewLanguageCache(cfg.Redis, log)
	if err != nil {
		log.WithError(err).Warn("Language cache unavailable, continuing without it")
		languageCache = nil
	}
	defer func() {
		if err := languageCache.Close(); err != nil {
			log.Errorf("Error closing language cache: %v", err)
		}
	}()

	storage, err := services.NewStorageService(context.Background(), &cfg.MinIO, log)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	movieRepo := repository.NewMovieRepository(db, catalog.Movies)
	genreRepo := repository.NewGenreRepository(db, catalog.Genres)
	langRepo := repository.NewLanguageRepository(db)
	languageService := services.NewLanguageService(langRepo, movieRepo, languageCache, fallbacks, log)
	movieService := services.NewMovieService(movieRepo, genreRepo, languageService, storage, cfg, log)

	app := fiber.New(fiber.Config{
		AppName:               "Movie i18n API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app, cfg)

	app.Get("/health", healthCheckHandler(db, languageCache))

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Setup API routes
	routes.Setup(app, routes.Handlers{
		Movies:    handlers.NewMovieHandler(movieService, log),
		Languages: handlers.NewLanguageHandler(languageService, log),
		Upload:    handlers.NewUploadHandler(storage, log),
	})

	// Graceful shutdown
	go gracefulShutdown(app, log)

	log.WithFields(logrus.Fields{
		"port":             cfg.Server.Port,
		"default_language": fallbacks.Default,
		"models":           catalog.Registry.Models(),
	}).Info("Movie i18n API starting")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Logger middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization, X-Request-ID",
		ExposeHeaders:    "Content-Language",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}))

	// Request language for translated attributes
	app.Use(middleware.Language(cfg.I18n.DefaultLanguage, cfg.I18n.Languages))
}

func healthCheckHandler(db *database.Database, languageCache *cache.LanguageCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
		}

		cacheStatus := "disabled"
		if languageCache.Enabled() {
			cacheStatus = "enabled"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "movie-i18n",
			"version":   "1.0.0",
			"database":  dbStatus,
			"cache":     cacheStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := utils.StatusFromError(err)

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		}).Error("Request error")

		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"code":    code,
			"message": err.Error(),
		})
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	execDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(execDir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("Could not load environment file %s: %v", envFile, err)

		defaultEnvFile := filepath.Join(execDir, "envs", ".env")
		if err := godotenv.Load(defaultEnvFile); err != nil {
			log.Warnf("Could not load default environment file: %v", err)
		} else {
			log.Infof("Environment loaded from default file %s", defaultEnvFile)
		}
	} else {
		log.Infof("Environment loaded from file %s", envFile)
	}
}
