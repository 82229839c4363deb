package routes

import (
	"movie-i18n/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Movies    *handlers.MovieHandler
	Languages *handlers.LanguageHandler
	// Upload is nil when object storage is not configured.
	Upload *handlers.UploadHandler
}

func Setup(app *fiber.App, h Handlers) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Movie routes - static paths first so they are not taken for an :id
	movies := v1.Group("/movies")
	{
		movies.Get("/", h.Movies.GetAllMovies)
		movies.Get("/search", h.Movies.SearchMovies)
		movies.Get("/translated", h.Movies.GetTranslatedMovies)
		movies.Get("/:id", h.Movies.GetMovieByID)
		movies.Post("/", h.Movies.CreateMovie)
		movies.Put("/:id", h.Movies.UpdateMovie)
		movies.Delete("/:id", h.Movies.DeleteMovie)
		movies.Get("/:id/translations/:attribute", h.Movies.GetTranslations)
		movies.Put("/:id/translations/:attribute", h.Movies.SetTranslations)
	}

	languages := v1.Group("/languages")
	{
		languages.Get("/", h.Languages.GetLanguages)
		languages.Get("/:code", h.Languages.GetLanguage)
	}

	// Sync routes - TMDB synchronization
	sync := v1.Group("/sync")
	{
		sync.Post("/movies", h.Movies.SyncMoviesFromTMDB)
		sync.Get("/last-log", h.Movies.GetLastSyncLog)
	}

	// Dashboard routes - Analytics and statistics
	dashboard := v1.Group("/dashboard")
	{
		dashboard.Get("/stats", h.Movies.GetDashboardStats)
	}

	// Chart routes - Visualization data
	charts := v1.Group("/charts")
	{
		charts.Get("/translations", h.Movies.GetTranslationChartData)
	}

	if h.Upload != nil {
		upload := v1.Group("/upload")
		{
			upload.Get("/presign", h.Upload.GetPresignedURL)
		}
	}
}
