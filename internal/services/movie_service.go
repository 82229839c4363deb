package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movie-i18n/internal/config"
	"movie-i18n/internal/globalize"
	"movie-i18n/internal/i18n"
	"movie-i18n/internal/models"
	"movie-i18n/internal/repository"

	"github.com/sirupsen/logrus"
)

// TranslationInput carries the translated attributes of one language.
type TranslationInput struct {
	Title    string `json:"title" example:"Combat secret"`
	Overview string `json:"overview"`
}

// MovieInput is a movie write. Title and Overview target the request
// language; Translations target explicit languages.
type MovieInput struct {
	Movie            models.Movie
	OriginalLanguage string
	Title            string
	Overview         string
	Translations     map[string]TranslationInput
}

func (in MovieInput) hasTitle() bool {
	if in.Title != "" {
		return true
	}
	for _, t := range in.Translations {
		if t.Title != "" {
			return true
		}
	}
	return false
}

type MovieService interface {
	// CRUD operations
	CreateMovie(ctx context.Context, input MovieInput) (*MovieView, error)
	UpdateMovie(ctx context.Context, id uint, input MovieInput) (*MovieView, error)
	DeleteMovie(ctx context.Context, id uint) error
	GetMovieByID(ctx context.Context, id uint) (*MovieView, error)
	GetAllMovies(ctx context.Context, params repository.ListParams) ([]MovieView, int64, error)

	// Translation operations
	GetTranslations(ctx context.Context, id uint, attribute string) (map[string]any, error)
	SetTranslations(ctx context.Context, id uint, attribute string, values map[string]string) (map[string]any, error)
	SearchByTitle(ctx context.Context, title string, languages ...string) ([]MovieView, error)
	GetTranslatedMovies(ctx context.Context, languages ...string) ([]MovieView, error)

	// Sync operations
	SyncMoviesFromTMDB(ctx context.Context, pages int) (*models.SyncLog, error)
	GetLastSyncLog(ctx context.Context) (*models.SyncLog, error)

	// Dashboard operations
	GetDashboardStats(ctx context.Context) (*DashboardView, error)
	GetTranslationCoverage(ctx context.Context) ([]models.PieChartData, error)
}

type movieService struct {
	repo       repository.MovieRepository
	genreRepo  repository.GenreRepository
	languages  LanguageService
	storage    FileStorage
	present    presenter
	config     *config.Config
	logger     *logrus.Logger
	httpClient *http.Client
}

// NewMovieService wires the movie use cases. storage may be nil, in which
// case replaced artwork is left in place.
func NewMovieService(repo repository.MovieRepository, genreRepo repository.GenreRepository, languages LanguageService, storage FileStorage, cfg *config.Config, logger *logrus.Logger) MovieService {
	return &movieService{
		repo:      repo,
		genreRepo: genreRepo,
		languages: languages,
		storage:   storage,
		present:   presenter{movies: repo, genres: genreRepo},
		config:    cfg,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: cfg.TMDB.HTTPTimeout,
		},
	}
}

func (s *movieService) CreateMovie(ctx context.Context, input MovieInput) (*MovieView, error) {
	if !input.hasTitle() {
		return nil, fmt.Errorf("%w: movie title is required", globalize.ErrValidation)
	}

	// Check if movie with same TMDB ID already exists
	if input.Movie.TMDBID > 0 {
		existing, err := s.repo.FindByTMDBID(ctx, input.Movie.TMDBID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing movie: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("movie with TMDB ID %d: %w", input.Movie.TMDBID, ErrConflict)
		}
	}

	movie := input.Movie
	movie.ID = 0
	if err := s.setOriginalLanguage(ctx, &movie, input.OriginalLanguage); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	if err := s.saveTranslations(ctx, &movie, input); err != nil {
		return nil, err
	}

	return s.GetMovieByID(ctx, movie.ID)
}

func (s *movieService) UpdateMovie(ctx context.Context, id uint, input MovieInput) (*MovieView, error) {
	existing, err := s.findMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	movie := input.Movie
	// Delete old artwork from storage when it is being replaced
	if movie.PosterPath != "" && movie.PosterPath != existing.PosterPath {
		s.deleteArtwork(ctx, existing.PosterPath)
	}
	if movie.BackdropPath != "" && movie.BackdropPath != existing.BackdropPath {
		s.deleteArtwork(ctx, existing.BackdropPath)
	}

	movie.ID = id
	movie.CreatedAt = existing.CreatedAt
	movie.TMDBID = existing.TMDBID // Don't allow changing TMDB ID
	movie.Genres = existing.Genres
	movie.LanguageID = existing.LanguageID
	if err := s.setOriginalLanguage(ctx, &movie, input.OriginalLanguage); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	movie.Translations = existing.Translations
	if err := s.saveTranslations(ctx, &movie, input); err != nil {
		return nil, err
	}

	return s.GetMovieByID(ctx, id)
}

func (s *movieService) DeleteMovie(ctx context.Context, id uint) error {
	existing, err := s.findMovie(ctx, id)
	if err != nil {
		return err
	}

	s.deleteArtwork(ctx, existing.PosterPath)
	s.deleteArtwork(ctx, existing.BackdropPath)

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	s.languages.Invalidate(ctx)
	return nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id uint) (*MovieView, error) {
	movie, err := s.findMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	view, err := s.present.movie(ctx, movie)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *movieService) GetAllMovies(ctx context.Context, params repository.ListParams) ([]MovieView, int64, error) {
	params.Normalize()

	movies, total, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	views, err := s.present.moviesOf(ctx, movies)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// GetTranslations returns every stored value of attribute keyed by language.
func (s *movieService) GetTranslations(ctx context.Context, id uint, attribute string) (map[string]any, error) {
	movie, err := s.findMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.Bind(movie).Translations(ctx, attribute)
}

// SetTranslations writes one value of attribute per language and returns the
// resulting translations.
func (s *movieService) SetTranslations(ctx context.Context, id uint, attribute string, values map[string]string) (map[string]any, error) {
	movie, err := s.findMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	stashed := make(map[string]any, len(values))
	for code, value := range values {
		stashed[code] = value
	}

	instance := s.repo.Bind(movie)
	if err := instance.SetTranslations(ctx, attribute, stashed); err != nil {
		return nil, err
	}
	if err := s.repo.SaveTranslations(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to save translations: %w", err)
	}
	s.languages.Invalidate(ctx)

	return instance.Translations(ctx, attribute)
}

// SearchByTitle finds movies whose title equals title in one of languages.
// Without languages the fallback sequence of the request language is searched.
func (s *movieService) SearchByTitle(ctx context.Context, title string, languages ...string) ([]MovieView, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", globalize.ErrValidation)
	}

	movies, err := s.repo.FindByTranslatedAttribute(ctx, "title", title, languages...)
	if err != nil {
		return nil, err
	}
	return s.present.moviesOf(ctx, movies)
}

// GetTranslatedMovies lists movies translated into any of languages.
func (s *movieService) GetTranslatedMovies(ctx context.Context, languages ...string) ([]MovieView, error) {
	movies, err := s.repo.WithTranslations(ctx, languages...)
	if err != nil {
		return nil, err
	}
	return s.present.moviesOf(ctx, movies)
}

func (s *movieService) SyncMoviesFromTMDB(ctx context.Context, pages int) (*models.SyncLog, error) {
	syncLog := &models.SyncLog{
		SyncType:  "manual",
		Status:    "failed",
		Languages: strings.Join(s.config.TMDB.Languages, ","),
		SyncedAt:  time.Now().UTC(),
	}

	// Validate pages
	if pages < 1 {
		pages = 1
	}
	if pages > 10 {
		pages = 10 // Limit to prevent too many API calls
	}

	seen := make(map[int]bool)
	defer s.languages.Invalidate(ctx)

	for _, tmdbLanguage := range s.config.TMDB.Languages {
		language, locale := i18n.BaseAndRegion(tmdbLanguage)
		if _, err := s.languages.EnsureLanguage(ctx, language); err != nil {
			syncLog.ErrorMessage = fmt.Sprintf("failed to register language %s: %s", language, err.Error())
			_ = s.repo.CreateSyncLog(ctx, syncLog)
			return syncLog, err
		}

		genreNames := s.fetchGenreNames(ctx, tmdbLanguage, language)

		for page := 1; page <= pages; page++ {
			s.logger.WithFields(logrus.Fields{
				"page":     page,
				"language": tmdbLanguage,
			}).Info("Fetching TMDB popular movies")

			movies, err := s.fetchPopularMoviesFromTMDB(ctx, tmdbLanguage, page)
			if err != nil {
				syncLog.ErrorMessage = fmt.Sprintf("failed to fetch %s page %d: %s", tmdbLanguage, page, err.Error())
				_ = s.repo.CreateSyncLog(ctx, syncLog)
				return syncLog, err
			}

			for _, tmdbMovie := range movies {
				created, err := s.upsertFromTMDB(ctx, tmdbMovie, language, locale, genreNames)
				if err != nil {
					s.logger.WithError(err).WithFields(logrus.Fields{
						"tmdb_id":  tmdbMovie.ID,
						"language": language,
					}).Error("Error syncing movie")
					continue
				}

				syncLog.TranslationsWritten++
				switch {
				case created:
					syncLog.MoviesAdded++
				case !seen[tmdbMovie.ID]:
					syncLog.MoviesUpdated++
				}
				seen[tmdbMovie.ID] = true
			}
		}
	}

	syncLog.Status = "success"
	_ = s.repo.CreateSyncLog(ctx, syncLog)

	s.logger.WithFields(logrus.Fields{
		"movies_added":         syncLog.MoviesAdded,
		"movies_updated":       syncLog.MoviesUpdated,
		"translations_written": syncLog.TranslationsWritten,
	}).Info("Sync completed")

	return syncLog, nil
}

// upsertFromTMDB stores the movie and its translation in language. It
// reports whether the movie row was created.
func (s *movieService) upsertFromTMDB(ctx context.Context, tmdbMovie models.TMDBMovieResponse, language, locale string, genreNames map[int]string) (bool, error) {
	movie := &models.Movie{
		TMDBID:        tmdbMovie.ID,
		OriginalTitle: tmdbMovie.OriginalTitle,
		ReleaseDate:   tmdbMovie.ReleaseDate,
		PosterPath:    tmdbMovie.PosterPath,
		BackdropPath:  tmdbMovie.BackdropPath,
		VoteAverage:   tmdbMovie.VoteAverage,
		VoteCount:     tmdbMovie.VoteCount,
		Popularity:    tmdbMovie.Popularity,
		Adult:         tmdbMovie.Adult,
	}
	if err := s.setOriginalLanguage(ctx, movie, tmdbMovie.OriginalLanguage); err != nil {
		return false, err
	}

	// Get or create genres
	for _, genreID := range tmdbMovie.GenreIDs {
		genre, err := s.genreRepo.FindOrCreate(ctx, genreID, language, genreNames[genreID])
		if err != nil {
			s.logger.WithError(err).WithField("genre_id", genreID).Error("Error creating genre")
			continue
		}
		movie.Genres = append(movie.Genres, models.Genre{ID: genre.ID, TMDBID: genre.TMDBID})
	}

	existing, err := s.repo.FindByTMDBID(ctx, movie.TMDBID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing movie: %w", err)
	}

	created := existing == nil
	if created {
		if err := s.repo.Create(ctx, movie); err != nil {
			return false, fmt.Errorf("failed to create movie: %w", err)
		}
	} else {
		movie.ID = existing.ID
		movie.CreatedAt = existing.CreatedAt
		if err := s.repo.Update(ctx, movie); err != nil {
			return false, fmt.Errorf("failed to update movie: %w", err)
		}
		movie.Translations = existing.Translations
	}

	instance := s.repo.Bind(movie)
	if err := instance.SetIn(ctx, language, "title", tmdbMovie.Title); err != nil {
		return false, err
	}
	if tmdbMovie.Overview != "" {
		if err := instance.SetIn(ctx, language, "overview", tmdbMovie.Overview); err != nil {
			return false, err
		}
	}
	if locale != "" {
		instance.SetLocale(language, locale)
	}
	if err := s.repo.SaveTranslations(ctx, instance); err != nil {
		return false, fmt.Errorf("failed to save translations: %w", err)
	}

	return created, nil
}

func (s *movieService) fetchPopularMoviesFromTMDB(ctx context.Context, tmdbLanguage string, page int) ([]models.TMDBMovieResponse, error) {
	var tmdbResponse models.TMDBPopularMoviesResponse
	if err := s.getTMDB(ctx, "/movie/popular", url.Values{
		"language": {tmdbLanguage},
		"page":     {strconv.Itoa(page)},
	}, &tmdbResponse); err != nil {
		return nil, err
	}
	return tmdbResponse.Results, nil
}

// fetchGenreNames returns TMDB's genre names in tmdbLanguage. On failure the
// built-in English names are used for English and no names otherwise.
func (s *movieService) fetchGenreNames(ctx context.Context, tmdbLanguage, language string) map[int]string {
	var list models.TMDBGenreListResponse
	err := s.getTMDB(ctx, "/genre/movie/list", url.Values{"language": {tmdbLanguage}}, &list)
	if err == nil {
		names := make(map[int]string, len(list.Genres))
		for _, genre := range list.Genres {
			names[genre.ID] = genre.Name
		}
		return names
	}

	s.logger.WithError(err).WithField("language", tmdbLanguage).Warn("Failed to fetch TMDB genre list")
	if language == "en" {
		return englishGenreNames
	}
	return nil
}

func (s *movieService) getTMDB(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("api_key", s.config.TMDB.APIKey)
	endpoint := strings.TrimSuffix(s.config.TMDB.BaseURL, "/") + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch from TMDB: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}

var englishGenreNames = map[int]string{
	28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 14: "Fantasy", 36: "History",
	27: "Horror", 10402: "Music", 9648: "Mystery", 10749: "Romance", 878: "Science Fiction",
	10770: "TV Movie", 53: "Thriller", 10752: "War", 37: "Western",
}

func (s *movieService) GetDashboardStats(ctx context.Context) (*DashboardView, error) {
	stats, err := s.repo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	topRated, err := s.present.moviesOf(ctx, stats.TopRatedMovies)
	if err != nil {
		return nil, err
	}
	popular, err := s.present.moviesOf(ctx, stats.MostPopular)
	if err != nil {
		return nil, err
	}

	return &DashboardView{
		DashboardStats: stats,
		TopRatedMovies: topRated,
		MostPopular:    popular,
	}, nil
}

func (s *movieService) GetLastSyncLog(ctx context.Context) (*models.SyncLog, error) {
	return s.repo.GetLastSyncLog(ctx)
}

// GetTranslationCoverage returns the number of movie translations per language
func (s *movieService) GetTranslationCoverage(ctx context.Context) ([]models.PieChartData, error) {
	return s.repo.GetTranslationCoverage(ctx)
}

func (s *movieService) findMovie(ctx context.Context, id uint) (*models.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie with ID %d: %w", id, ErrNotFound)
	}
	return movie, nil
}

func (s *movieService) setOriginalLanguage(ctx context.Context, movie *models.Movie, code string) error {
	if code == "" {
		return nil
	}
	language, err := s.languages.EnsureLanguage(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to register language %q: %w", code, err)
	}
	movie.LanguageID = &language.ID
	movie.Language = nil
	return nil
}

// saveTranslations applies explicit translations first, then the request
// language values on top.
func (s *movieService) saveTranslations(ctx context.Context, movie *models.Movie, input MovieInput) error {
	instance := s.repo.Bind(movie)

	for code, t := range input.Translations {
		if t.Title != "" {
			if err := instance.SetIn(ctx, code, "title", t.Title); err != nil {
				return err
			}
		}
		if t.Overview != "" {
			if err := instance.SetIn(ctx, code, "overview", t.Overview); err != nil {
				return err
			}
		}
	}
	if input.Title != "" {
		if err := instance.Set(ctx, "title", input.Title); err != nil {
			return err
		}
	}
	if input.Overview != "" {
		if err := instance.Set(ctx, "overview", input.Overview); err != nil {
			return err
		}
	}

	if !instance.Stash().Dirty() {
		return nil
	}
	if err := s.repo.SaveTranslations(ctx, instance); err != nil {
		return fmt.Errorf("failed to save translations: %w", err)
	}
	s.languages.Invalidate(ctx)
	return nil
}

func (s *movieService) deleteArtwork(ctx context.Context, rawURL string) {
	if s.storage == nil || rawURL == "" {
		return
	}
	if _, err := s.storage.DeleteByURL(ctx, rawURL); err != nil {
		s.logger.WithError(err).WithField("url", rawURL).Warn("Failed to delete artwork from storage")
	}
}
