package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"movie-i18n/internal/cache"
	"movie-i18n/internal/config"
	"movie-i18n/internal/database"
	"movie-i18n/internal/globalize"
	"movie-i18n/internal/i18n"
	"movie-i18n/internal/models"
	"movie-i18n/internal/repository"
	"movie-i18n/internal/services"
)

type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) DeleteByURL(_ context.Context, rawURL string) (bool, error) {
	if _, ok := services.ObjectKeyFromURL("posters", rawURL); !ok {
		return false, nil
	}
	f.deleted = append(f.deleted, rawURL)
	return true, nil
}

type fixture struct {
	movies    services.MovieService
	languages services.LanguageService
	storage   *fakeStorage
}

func setup(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		QueryTimeout:    5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	fallbacks := globalize.NewFallbacks("en", map[string][]string{"fr-CA": {"fr"}})
	catalog, err := i18n.Setup(db.DB, fallbacks, log)
	require.NoError(t, err)

	languageCache, err := cache.NewLanguageCache(config.RedisConfig{}, log)
	require.NoError(t, err)

	if cfg == nil {
		cfg = &config.Config{}
	}

	movieRepo := repository.NewMovieRepository(db, catalog.Movies)
	genreRepo := repository.NewGenreRepository(db, catalog.Genres)
	languages := services.NewLanguageService(repository.NewLanguageRepository(db), movieRepo, languageCache, fallbacks, log)
	storage := &fakeStorage{}

	return &fixture{
		movies:    services.NewMovieService(movieRepo, genreRepo, languages, storage, cfg, log),
		languages: languages,
		storage:   storage,
	}
}

func inLanguage(code string) context.Context {
	return globalize.WithLanguage(context.Background(), code)
}

func TestCreateMovieResolvesRequestLanguage(t *testing.T) {
	f := setup(t, nil)

	created, err := f.movies.CreateMovie(inLanguage("fr"), services.MovieInput{
		Movie:            models.Movie{TMDBID: 550, OriginalTitle: "Fight Club"},
		OriginalLanguage: "en",
		Title:            "Combat secret",
		Translations: map[string]services.TranslationInput{
			"en": {Title: "Fight Club", Overview: "An insomniac office worker..."},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Combat secret", created.Title)
	assert.Equal(t, "fr", created.Language)
	assert.Equal(t, []string{"en", "fr"}, created.Languages)
	require.NotNil(t, created.Original)
	assert.Equal(t, "English", created.Original.Name)

	tests := []struct {
		language string
		title    string
		overview string
		resolved string
	}{
		{language: "en", title: "Fight Club", overview: "An insomniac office worker...", resolved: "en"},
		{language: "fr", title: "Combat secret", resolved: "fr"},
		{language: "fr-CA", title: "Combat secret", resolved: "fr"},
		{language: "de", title: "Fight Club", overview: "An insomniac office worker...", resolved: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			view, err := f.movies.GetMovieByID(inLanguage(tt.language), created.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.title, view.Title)
			assert.Equal(t, tt.overview, view.Overview)
			assert.Equal(t, tt.resolved, view.Language)
		})
	}
}

func TestCreateMovieValidation(t *testing.T) {
	f := setup(t, nil)
	ctx := inLanguage("en")

	_, err := f.movies.CreateMovie(ctx, services.MovieInput{Movie: models.Movie{TMDBID: 1}})
	assert.ErrorIs(t, err, globalize.ErrValidation)

	_, err = f.movies.CreateMovie(ctx, services.MovieInput{Movie: models.Movie{TMDBID: 1}, Title: "One"})
	require.NoError(t, err)

	_, err = f.movies.CreateMovie(ctx, services.MovieInput{Movie: models.Movie{TMDBID: 1}, Title: "Again"})
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = f.movies.GetMovieByID(ctx, 404)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestMovieTranslationsRoundTrip(t *testing.T) {
	f := setup(t, nil)
	ctx := inLanguage("en")

	movie, err := f.movies.CreateMovie(ctx, services.MovieInput{Movie: models.Movie{TMDBID: 13}, Title: "Forrest Gump"})
	require.NoError(t, err)

	saved, err := f.movies.SetTranslations(ctx, movie.ID, "title", map[string]string{"fr": "Forrest Gump (VF)", "de-de": "Forrest Gump (DE)"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"en": "Forrest Gump", "fr": "Forrest Gump (VF)", "de-DE": "Forrest Gump (DE)"}, saved)

	loaded, err := f.movies.GetTranslations(ctx, movie.ID, "title")
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	_, err = f.movies.GetTranslations(ctx, movie.ID, "tagline")
	assert.ErrorIs(t, err, globalize.ErrConfiguration)

	_, err = f.movies.SetTranslations(ctx, 404, "title", map[string]string{"fr": "x"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	found, err := f.movies.SearchByTitle(ctx, "Forrest Gump (VF)", "fr")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Forrest Gump", found[0].Title)

	found, err = f.movies.SearchByTitle(ctx, "Forrest Gump (VF)", "en")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = f.movies.SearchByTitle(ctx, " ")
	assert.ErrorIs(t, err, globalize.ErrValidation)

	translated, err := f.movies.GetTranslatedMovies(inLanguage("de-DE"), "de-DE")
	require.NoError(t, err)
	require.Len(t, translated, 1)
	assert.Equal(t, "Forrest Gump (DE)", translated[0].Title)

	summary, err := f.languages.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"de-DE", "en", "fr"}, summary.TranslatedLanguages)
	assert.Equal(t, "en", summary.DefaultLanguage)
}

func TestSearchByTitleFollowsRequestLanguage(t *testing.T) {
	f := setup(t, nil)

	_, err := f.movies.CreateMovie(inLanguage("fr"), services.MovieInput{
		Movie: models.Movie{TMDBID: 550, OriginalTitle: "Fight Club"},
		Title: "Combat secret",
		Translations: map[string]services.TranslationInput{
			"en": {Title: "Fight Club"},
		},
	})
	require.NoError(t, err)

	tests := []struct {
		language string
		title    string
		found    int
	}{
		{language: "fr", title: "Combat secret", found: 1},
		{language: "fr-CA", title: "Combat secret", found: 1},
		{language: "fr", title: "Fight Club", found: 1},
		{language: "de", title: "Combat secret", found: 0},
		{language: "en", title: "Fight Club", found: 1},
	}

	for _, tt := range tests {
		t.Run(tt.language+" "+tt.title, func(t *testing.T) {
			found, err := f.movies.SearchByTitle(inLanguage(tt.language), tt.title)
			require.NoError(t, err)
			assert.Len(t, found, tt.found)
		})
	}
}

func TestUpdateAndDeleteMovieCleanUpArtwork(t *testing.T) {
	f := setup(t, nil)
	ctx := inLanguage("en")

	oldPoster := "http://localhost:9000/posters/old_1234.jpg"
	movie, err := f.movies.CreateMovie(ctx, services.MovieInput{
		Movie: models.Movie{TMDBID: 7, PosterPath: oldPoster, BackdropPath: "/tmdb-backdrop.jpg"},
		Title: "Se7en",
	})
	require.NoError(t, err)

	newPoster := "http://localhost:9000/posters/new_5678.jpg"
	updated, err := f.movies.UpdateMovie(ctx, movie.ID, services.MovieInput{
		Movie:    models.Movie{TMDBID: 999, PosterPath: newPoster, VoteAverage: 8.6},
		Overview: "Two detectives...",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.TMDBID)
	assert.Equal(t, "Se7en", updated.Title)
	assert.Equal(t, "Two detectives...", updated.Overview)
	assert.Equal(t, []string{oldPoster}, f.storage.deleted)

	require.NoError(t, f.movies.DeleteMovie(ctx, movie.ID))
	assert.Equal(t, []string{oldPoster, newPoster}, f.storage.deleted)

	_, err = f.movies.GetMovieByID(ctx, movie.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, f.movies.DeleteMovie(ctx, movie.ID), services.ErrNotFound)
}

func newTMDBServer(t *testing.T) *httptest.Server {
	t.Helper()

	titles := map[string]string{"en-US": "Fight Club", "fr-FR": "Fight Club (VF)"}
	genres := map[string]string{"en-US": "Drama", "fr-FR": "Drame"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		language := r.URL.Query().Get("language")

		var body any
		switch r.URL.Path {
		case "/genre/movie/list":
			body = models.TMDBGenreListResponse{Genres: []models.TMDBGenre{{ID: 18, Name: genres[language]}}}
		case "/movie/popular":
			body = models.TMDBPopularMoviesResponse{
				Page: 1,
				Results: []models.TMDBMovieResponse{{
					ID:               550,
					Title:            titles[language],
					OriginalTitle:    "Fight Club",
					Overview:         "Overview " + language,
					VoteAverage:      8.4,
					VoteCount:        26280,
					OriginalLanguage: "en",
					GenreIDs:         []int{18},
				}},
				TotalPages: 1,
			}
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSyncMoviesFromTMDBStoresEveryLanguage(t *testing.T) {
	server := newTMDBServer(t)
	f := setup(t, &config.Config{TMDB: config.TMDBConfig{
		APIKey:      "test-key",
		BaseURL:     server.URL,
		HTTPTimeout: 5 * time.Second,
		Languages:   []string{"en-US", "fr-FR"},
	}})

	syncLog, err := f.movies.SyncMoviesFromTMDB(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "success", syncLog.Status)
	assert.Equal(t, "en-US,fr-FR", syncLog.Languages)
	assert.Equal(t, 1, syncLog.MoviesAdded)
	assert.Equal(t, 0, syncLog.MoviesUpdated)
	assert.Equal(t, 2, syncLog.TranslationsWritten)

	movies, total, err := f.movies.GetAllMovies(inLanguage("fr"), repository.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, movies, 1)
	assert.Equal(t, "Fight Club (VF)", movies[0].Title)
	assert.Equal(t, "Overview fr-FR", movies[0].Overview)
	require.Len(t, movies[0].Genres, 1)
	assert.Equal(t, "Drame", movies[0].Genres[0].Name)

	summary, err := f.languages.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, summary.TranslatedLanguages)
	assert.Equal(t, []string{"en-US", "fr-FR"}, summary.TranslatedLocales)
	require.Len(t, summary.Translated, 2)
	assert.Equal(t, "English", summary.Translated[0].Name)
	assert.Equal(t, "French", summary.Translated[1].Name)

	coverage, err := f.movies.GetTranslationCoverage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.PieChartData{
		{Label: "English", Value: 1, Code: "en"},
		{Label: "French", Value: 1, Code: "fr"},
	}, coverage)

	again, err := f.movies.SyncMoviesFromTMDB(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, again.MoviesAdded)
	assert.Equal(t, 1, again.MoviesUpdated)

	last, err := f.movies.GetLastSyncLog(context.Background())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "success", last.Status)

	stats, err := f.movies.GetDashboardStats(inLanguage("fr"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalMovies)
	require.Len(t, stats.MostPopular, 1)
	assert.Equal(t, "Fight Club (VF)", stats.MostPopular[0].Title)
}

func TestSyncMoviesFromTMDBRecordsFailure(t *testing.T) {
	server := newTMDBServer(t)
	f := setup(t, &config.Config{TMDB: config.TMDBConfig{
		APIKey:      "wrong-key",
		BaseURL:     server.URL,
		HTTPTimeout: 5 * time.Second,
		Languages:   []string{"en-US"},
	}})

	syncLog, err := f.movies.SyncMoviesFromTMDB(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "failed", syncLog.Status)
	assert.Contains(t, syncLog.ErrorMessage, "status 401")
}
