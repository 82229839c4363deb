package handlers

import (
	"strconv"
	"strings"

	"movie-i18n/internal/repository"
	"movie-i18n/internal/services"
	"movie-i18n/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service services.MovieService
	logger  *logrus.Logger
}

func NewMovieHandler(service services.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllMovies godoc
// @Summary Get all movies
// @Description Get list of all movies with pagination, search, sorting, and date range filter. Titles are resolved for the request language.
// @Tags movies
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by original title or translated title/overview"
// @Param languages query string false "Comma separated languages the search is restricted to (e.g. en,fr)"
// @Param sort_by query string false "Sort by field (id, original_title, release_date, vote_average, popularity, created_at, updated_at)" default(updated_at)
// @Param order query string false "Sort order (ASC/DESC)" default(DESC)
// @Param start_date query string false "Filter by start date (YYYY-MM-DD)"
// @Param end_date query string false "Filter by end date (YYYY-MM-DD)"
// @Param lang query string false "Response language (overrides Accept-Language)"
// @Success 200 {object} utils.StandardResponse{data=[]services.MovieView} "List of movies"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	ctx := c.UserContext()

	params := repository.ListParams{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 20),
		Search:    c.Query("search", ""),
		Languages: queryLanguages(c, "languages"),
		SortBy:    c.Query("sort_by", "updated_at"),
		Order:     c.Query("order", "DESC"),
		StartDate: c.Query("start_date", ""),
		EndDate:   c.Query("end_date", ""),
	}

	params.Normalize()

	movies, total, err := h.service.GetAllMovies(ctx, params)
	if err != nil {
		return h.fail(c, err, "Failed to retrieve movies")
	}

	meta := utils.CreatePaginationMeta(params.Page, params.Limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies, meta)
}

// GetMovieByID godoc
// @Summary Get movie by ID
// @Description Get a single movie by its ID with title and overview in the request language
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param lang query string false "Response language (overrides Accept-Language)"
// @Success 200 {object} utils.StandardResponse{data=services.MovieView} "Movie details"
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	movie, err := h.service.GetMovieByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, "Failed to retrieve movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie retrieved successfully", movie)
}

// CreateMovie godoc
// @Summary Create a new movie
// @Description Create a new movie entry. Title and overview are stored in the request language, translations in their own languages.
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie request object"
// @Success 201 {object} utils.StandardResponse{data=services.MovieView} "Movie created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 409 {object} utils.StandardResponse "Movie already exists"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c *fiber.Ctx) error {
	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.ErrorWithDataResponse(c, fiber.StatusBadRequest, "Invalid movie", err)
	}

	movie, err := h.service.CreateMovie(c.UserContext(), req.toInput())
	if err != nil {
		return h.fail(c, err, "Failed to create movie")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie created successfully", movie)
}

// UpdateMovie godoc
// @Summary Update a movie
// @Description Update an existing movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieRequest true "Movie request object"
// @Success 200 {object} utils.StandardResponse{data=services.MovieView} "Movie updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return utils.ErrorWithDataResponse(c, fiber.StatusBadRequest, "Invalid movie", err)
	}

	movie, err := h.service.UpdateMovie(c.UserContext(), id, req.toInput())
	if err != nil {
		return h.fail(c, err, "Failed to update movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie updated successfully", movie)
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Description Delete a movie and all of its translations
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie deleted successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	if err := h.service.DeleteMovie(c.UserContext(), id); err != nil {
		return h.fail(c, err, "Failed to delete movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie deleted successfully", nil)
}

// GetTranslations godoc
// @Summary Get translations of an attribute
// @Description Get every stored value of a translated attribute keyed by language
// @Tags translations
// @Produce json
// @Param id path int true "Movie ID"
// @Param attribute path string true "Translated attribute (title, overview)"
// @Success 200 {object} utils.StandardResponse{data=map[string]string} "Translations"
// @Failure 400 {object} utils.StandardResponse "Unknown attribute"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id}/translations/{attribute} [get]
func (h *MovieHandler) GetTranslations(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	translations, err := h.service.GetTranslations(c.UserContext(), id, c.Params("attribute"))
	if err != nil {
		return h.fail(c, err, "Failed to retrieve translations")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Translations retrieved successfully", translations)
}

// SetTranslations godoc
// @Summary Set translations of an attribute
// @Description Store one value of a translated attribute per language
// @Tags translations
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param attribute path string true "Translated attribute (title, overview)"
// @Param translations body TranslationsRequest true "Values keyed by language, e.g. {\"fr\": \"Combat secret\"}"
// @Success 200 {object} utils.StandardResponse{data=map[string]string} "Translations saved"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id}/translations/{attribute} [put]
func (h *MovieHandler) SetTranslations(c *fiber.Ctx) error {
	id, err := movieID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	var req TranslationsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Validate(req); err != nil {
		return utils.ErrorWithDataResponse(c, fiber.StatusBadRequest, "Invalid translations", err)
	}

	translations, err := h.service.SetTranslations(c.UserContext(), id, c.Params("attribute"), req)
	if err != nil {
		return h.fail(c, err, "Failed to save translations")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Translations saved successfully", translations)
}

// SearchMovies godoc
// @Summary Find movies by translated title
// @Description Find movies whose title equals the given value in one of the languages. Defaults to the fallback languages of the default language.
// @Tags translations
// @Produce json
// @Param title query string true "Exact translated title"
// @Param languages query string false "Comma separated languages (e.g. en,fr)"
// @Success 200 {object} utils.StandardResponse{data=[]services.MovieView} "Matching movies"
// @Failure 400 {object} utils.StandardResponse "Missing title"
// @Router /movies/search [get]
func (h *MovieHandler) SearchMovies(c *fiber.Ctx) error {
	movies, err := h.service.SearchByTitle(c.UserContext(), c.Query("title"), queryLanguages(c, "languages")...)
	if err != nil {
		return h.fail(c, err, "Failed to search movies")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies)
}

// GetTranslatedMovies godoc
// @Summary List movies translated into languages
// @Description List movies having a translation in one of the languages, with only those translations loaded. Defaults to every translated language.
// @Tags translations
// @Produce json
// @Param languages query string false "Comma separated languages (e.g. en,fr)"
// @Success 200 {object} utils.StandardResponse{data=[]services.MovieView} "Translated movies"
// @Router /movies/translated [get]
func (h *MovieHandler) GetTranslatedMovies(c *fiber.Ctx) error {
	movies, err := h.service.GetTranslatedMovies(c.UserContext(), queryLanguages(c, "languages")...)
	if err != nil {
		return h.fail(c, err, "Failed to retrieve translated movies")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies)
}

// SyncMoviesFromTMDB godoc
// @Summary Sync movies from TMDB
// @Description Fetch and sync popular movies from TMDB API in every configured TMDB language
// @Tags sync
// @Accept json
// @Produce json
// @Param pages query int false "Number of pages to sync (1-10)" default(1)
// @Success 200 {object} utils.StandardResponse{data=models.SyncLog} "Sync completed successfully"
// @Failure 500 {object} utils.StandardResponse "Sync failed"
// @Router /sync/movies [post]
func (h *MovieHandler) SyncMoviesFromTMDB(c *fiber.Ctx) error {
	pages := c.QueryInt("pages", 1)

	h.logger.WithField("pages", pages).Info("Starting TMDB sync")

	syncLog, err := h.service.SyncMoviesFromTMDB(c.UserContext(), pages)
	if err != nil {
		h.logger.WithError(err).Error("Failed to sync movies from TMDB")
		return utils.ErrorWithDataResponse(c, fiber.StatusInternalServerError, "Failed to sync movies", syncLog)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movies synced successfully", syncLog)
}

// GetDashboardStats godoc
// @Summary Get dashboard statistics
// @Description Get dashboard analytics including translation totals
// @Tags dashboard
// @Accept json
// @Produce json
// @Success 200 {object} utils.StandardResponse{data=services.DashboardView} "Dashboard statistics"
// @Failure 500 {object} utils.StandardResponse "Failed to retrieve statistics"
// @Router /dashboard/stats [get]
func (h *MovieHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return h.fail(c, err, "Failed to retrieve dashboard statistics")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Dashboard statistics retrieved successfully", stats)
}

// GetLastSyncLog godoc
// @Summary Get last sync log
// @Description Get the most recent sync operation log
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} utils.StandardResponse{data=models.SyncLog} "Last sync log"
// @Failure 500 {object} utils.StandardResponse "Failed to retrieve sync log"
// @Router /sync/last-log [get]
func (h *MovieHandler) GetLastSyncLog(c *fiber.Ctx) error {
	syncLog, err := h.service.GetLastSyncLog(c.UserContext())
	if err != nil {
		return h.fail(c, err, "Failed to retrieve last sync log")
	}

	if syncLog == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, "No sync log found", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Last sync log retrieved successfully", syncLog)
}

// GetTranslationChartData godoc
// @Summary Get translation coverage chart data
// @Description Get the number of movie translations per language for pie chart visualization
// @Tags charts
// @Accept json
// @Produce json
// @Success 200 {object} utils.StandardResponse{data=[]models.PieChartData} "Pie chart data"
// @Failure 500 {object} utils.StandardResponse "Failed to retrieve chart data"
// @Router /charts/translations [get]
func (h *MovieHandler) GetTranslationChartData(c *fiber.Ctx) error {
	data, err := h.service.GetTranslationCoverage(c.UserContext())
	if err != nil {
		return h.fail(c, err, "Failed to retrieve chart data")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Chart data retrieved successfully", data)
}

// fail renders err. Server errors are logged and hidden behind message.
func (h *MovieHandler) fail(c *fiber.Ctx, err error, message string) error {
	code := utils.StatusFromError(err)
	if code >= fiber.StatusInternalServerError {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error(message)
		return utils.ErrorResponse(c, code, message)
	}
	return utils.ErrorResponse(c, code, err.Error())
}

func movieID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// queryLanguages splits a comma separated query parameter.
func queryLanguages(c *fiber.Ctx, key string) []string {
	var codes []string
	for code := range strings.SplitSeq(c.Query(key), ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
