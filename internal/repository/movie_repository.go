package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"movie-i18n/internal/database"
	"movie-i18n/internal/globalize"
	"movie-i18n/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieTranslations is the registered translation model for movies.
type MovieTranslations = globalize.Model[*models.MovieTranslation]

// MovieInstance binds a movie to its translations.
type MovieInstance = globalize.Instance[*models.MovieTranslation]

type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Languages globalize.LanguageSet
	SortBy    string
	Order     string
	StartDate string
	EndDate   string
}

// Normalize clamps paging to page >= 1 and 1 <= limit <= 100.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

type MovieRepository interface {
	// CRUD operations
	Create(ctx context.Context, movie *models.Movie) error
	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Movie, error)
	FindByTMDBID(ctx context.Context, tmdbID int) (*models.Movie, error)
	FindAll(ctx context.Context, params ListParams) ([]models.Movie, int64, error)

	// Translation operations
	Bind(movie *models.Movie) *MovieInstance
	SaveTranslations(ctx context.Context, instance *MovieInstance) error
	WithTranslations(ctx context.Context, languages ...string) ([]models.Movie, error)
	FindByTranslatedAttribute(ctx context.Context, name string, value any, languages ...string) ([]models.Movie, error)
	TranslatedLanguages(ctx context.Context) ([]string, error)
	TranslatedLocales(ctx context.Context) ([]string, error)

	// Dashboard operations
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	GetTranslationCoverage(ctx context.Context) ([]models.PieChartData, error)

	// Sync log operations
	CreateSyncLog(ctx context.Context, log *models.SyncLog) error
	GetLastSyncLog(ctx context.Context) (*models.SyncLog, error)
}

type movieRepository struct {
	db           *database.Database
	translations *MovieTranslations
	timeout      time.Duration
}

func NewMovieRepository(db *database.Database, translations *MovieTranslations) MovieRepository {
	return &movieRepository{
		db:           db,
		translations: translations,
		timeout:      db.GetQueryTimeout(),
	}
}

func (r *movieRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *movieRepository) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Language").Preload("Genres.Translations").Preload("Translations")
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit("Genres.*").Create(movie).Error
}

// Update saves the movie columns and genre links. Translations are written
// through SaveTranslations.
func (r *movieRepository) Update(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(movie).Error; err != nil {
			return err
		}
		return tx.Model(movie).Association("Genres").Replace(movie.Genres)
	})
}

func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		movie := &models.Movie{ID: id}
		if err := tx.Model(movie).Association("Genres").Clear(); err != nil {
			return err
		}
		if err := r.translations.DeleteFor(tx, id); err != nil {
			return err
		}
		return tx.Delete(movie).Error
	})
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).Scopes(r.preload).First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) FindByTMDBID(ctx context.Context, tmdbID int) (*models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).Preload("Translations").Where("tmdb_id = ?", tmdbID).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, params ListParams) ([]models.Movie, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.Movie
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Movie{})

	// Search the original title and the translations in the requested languages
	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		translated := r.db.WithContext(ctx).
			Model(&models.MovieTranslation{}).
			Select("movie_id").
			Where("LOWER(title) LIKE ? OR LOWER(overview) LIKE ?", pattern, pattern)
		if len(params.Languages) > 0 {
			translated = translated.Scopes(r.translations.WithLanguages(params.Languages...))
		}
		query = query.Where("LOWER(movies.original_title) LIKE ? OR movies.id IN (?)", pattern, translated)
	}

	if params.StartDate != "" {
		query = query.Where("release_date >= ?", params.StartDate)
	}
	if params.EndDate != "" {
		query = query.Where("release_date <= ?", params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	validSortFields := map[string]bool{
		"id": true, "original_title": true, "release_date": true, "vote_average": true,
		"popularity": true, "created_at": true, "updated_at": true,
	}
	sortBy := params.SortBy
	if !validSortFields[sortBy] {
		sortBy = "updated_at"
	}
	query = query.Order(clause.OrderByColumn{
		Column: clause.Column{Table: "movies", Name: sortBy},
		Desc:   !strings.EqualFold(params.Order, "asc"),
	})

	offset := (params.Page - 1) * params.Limit
	if err := query.Scopes(r.preload).Offset(offset).Limit(params.Limit).Find(&movies).Error; err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (r *movieRepository) Bind(movie *models.Movie) *MovieInstance {
	return r.translations.Bind(movie.ID, movie.Translations)
}

func (r *movieRepository) SaveTranslations(ctx context.Context, instance *MovieInstance) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return instance.Save(r.db.WithContext(ctx))
}

func (r *movieRepository) WithTranslations(ctx context.Context, languages ...string) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	db := r.db.WithContext(ctx)
	scope, err := r.translations.WithTranslations(db, languages...)
	if err != nil {
		return nil, err
	}

	var movies []models.Movie
	if err := db.Scopes(scope).Order("movies.id").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) FindByTranslatedAttribute(ctx context.Context, name string, value any, languages ...string) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	scope, err := r.translations.WithTranslatedAttribute(ctx, name, value, languages...)
	if err != nil {
		return nil, err
	}

	var movies []models.Movie
	err = r.db.WithContext(ctx).Scopes(scope, r.preload).Order("movies.id").Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) TranslatedLanguages(ctx context.Context) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.translations.TranslatedLanguages(r.db.WithContext(ctx))
}

func (r *movieRepository) TranslatedLocales(ctx context.Context) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.translations.TranslatedLocales(r.db.WithContext(ctx))
}

func (r *movieRepository) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stats models.DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Movie{}).Count(&stats.TotalMovies).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.MovieTranslation{}).Count(&stats.TotalTranslations).Error; err != nil {
		return nil, err
	}

	languages, err := r.translations.TranslatedLanguages(db)
	if err != nil {
		return nil, err
	}
	stats.TranslatedLanguages = languages

	if stats.TotalMovies > 0 {
		if err := db.Model(&models.Movie{}).
			Select("COALESCE(AVG(vote_average), 0)").
			Scan(&stats.AverageRating).Error; err != nil {
			return nil, err
		}
	}

	var lastSync models.SyncLog
	if err := db.Model(&models.SyncLog{}).Order("synced_at DESC").First(&lastSync).Error; err == nil {
		stats.LastSyncTime = &lastSync.SyncedAt
	}

	if err := db.Scopes(r.preload).
		Where("vote_count > ?", 100).
		Order("vote_average DESC, vote_count DESC").
		Limit(10).
		Find(&stats.TopRatedMovies).Error; err != nil {
		return nil, err
	}

	if err := db.Scopes(r.preload).
		Order("popularity DESC").
		Limit(10).
		Find(&stats.MostPopular).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetTranslationCoverage counts movie translations per language.
func (r *movieRepository) GetTranslationCoverage(ctx context.Context) ([]models.PieChartData, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var results []models.PieChartData

	err := r.db.WithContext(ctx).Model(&models.MovieTranslation{}).
		Select("COALESCE(languages.name, movie_translations.language) as label, movie_translations.language as code, COUNT(movie_translations.id) as value").
		Joins("LEFT JOIN languages ON languages.code = movie_translations.language").
		Group("languages.name, movie_translations.language").
		Order("value DESC, code").
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *movieRepository) CreateSyncLog(ctx context.Context, log *models.SyncLog) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(log).Error
}

func (r *movieRepository) GetLastSyncLog(ctx context.Context) (*models.SyncLog, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var log models.SyncLog
	err := r.db.WithContext(ctx).Order("synced_at DESC").First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
