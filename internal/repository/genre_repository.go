package repository

import (
	"context"
	"errors"
	"time"

	"movie-i18n/internal/database"
	"movie-i18n/internal/globalize"
	"movie-i18n/internal/models"

	"gorm.io/gorm"
)

// GenreTranslations is the registered translation model for genres.
type GenreTranslations = globalize.Model[*models.GenreTranslation]

// GenreInstance binds a genre to its translations.
type GenreInstance = globalize.Instance[*models.GenreTranslation]

type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	FindByTMDBID(ctx context.Context, tmdbID int) (*models.Genre, error)
	FindOrCreate(ctx context.Context, tmdbID int, language, name string) (*models.Genre, error)
	FindAll(ctx context.Context, languages ...string) ([]models.Genre, error)
	FindByName(ctx context.Context, name string, languages ...string) ([]models.Genre, error)
	Bind(genre *models.Genre) *GenreInstance
}

type genreRepository struct {
	db           *database.Database
	translations *GenreTranslations
	timeout      time.Duration
}

func NewGenreRepository(db *database.Database, translations *GenreTranslations) GenreRepository {
	return &genreRepository{
		db:           db,
		translations: translations,
		timeout:      db.GetQueryTimeout(),
	}
}

func (r *genreRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *genreRepository) FindByTMDBID(ctx context.Context, tmdbID int) (*models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genre models.Genre
	err := r.db.WithContext(ctx).Preload("Translations").Where("tmdb_id = ?", tmdbID).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

// FindOrCreate returns the genre for tmdbID and makes sure it carries name in
// language. An existing translation in that language is updated.
func (r *genreRepository) FindOrCreate(ctx context.Context, tmdbID int, language, name string) (*models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genre models.Genre
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tmdb_id = ?", tmdbID).FirstOrCreate(&genre, models.Genre{TMDBID: tmdbID}).Error; err != nil {
			return err
		}
		if name == "" {
			return tx.Preload("Translations").First(&genre, genre.ID).Error
		}

		records, err := r.translations.Translations(tx, genre.ID)
		if err != nil {
			return err
		}
		instance := r.translations.Bind(genre.ID, records)
		if err := instance.SetIn(ctx, language, "name", name); err != nil {
			return err
		}
		if err := instance.Save(tx); err != nil {
			return err
		}
		genre.Translations = instance.Records()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindAll(ctx context.Context, languages ...string) ([]models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	db := r.db.WithContext(ctx)
	query := db.Preload("Translations")
	if len(languages) > 0 {
		scope, err := r.translations.WithTranslations(db, languages...)
		if err != nil {
			return nil, err
		}
		query = db.Scopes(scope)
	}

	var genres []models.Genre
	err := query.Order("genres.id").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) FindByName(ctx context.Context, name string, languages ...string) ([]models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	scope, err := r.translations.WithTranslatedAttribute(ctx, "name", name, languages...)
	if err != nil {
		return nil, err
	}

	var genres []models.Genre
	err = r.db.WithContext(ctx).Scopes(scope).Preload("Translations").Order("genres.id").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) Bind(genre *models.Genre) *GenreInstance {
	return r.translations.Bind(genre.ID, genre.Translations)
}
