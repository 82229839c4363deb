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

// LanguageRepository stores the language table. Every code argument is
// normalized before it reaches the database, so "pt-br" and "PT-BR" name the
// same row.
type LanguageRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Language, error)
	FindByCodes(ctx context.Context, codes ...string) ([]models.Language, error)
	FindOrCreate(ctx context.Context, language models.Language) (*models.Language, error)
	FindAll(ctx context.Context) ([]models.Language, error)
}

type languageRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewLanguageRepository(db *database.Database) LanguageRepository {
	return &languageRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *languageRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// byCodes keeps the rows whose code is one of codes.
func byCodes(codes ...string) func(*gorm.DB) *gorm.DB {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		if code = globalize.NormalizeCode(code); code != "" {
			normalized = append(normalized, code)
		}
	}
	return func(db *gorm.DB) *gorm.DB {
		if len(normalized) == 1 {
			return db.Where("code = ?", normalized[0])
		}
		return db.Where("code IN ?", normalized)
	}
}

func (r *languageRepository) FindByCode(ctx context.Context, code string) (*models.Language, error) {
	if globalize.NormalizeCode(code) == "" {
		return nil, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var language models.Language
	err := r.db.WithContext(ctx).Scopes(byCodes(code)).First(&language).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &language, nil
}

// FindByCodes returns the known languages among codes, ordered by code.
// Unknown codes are skipped.
func (r *languageRepository) FindByCodes(ctx context.Context, codes ...string) ([]models.Language, error) {
	languages := []models.Language{}
	if len(codes) == 0 {
		return languages, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Scopes(byCodes(codes...)).Order("code").Find(&languages).Error
	return languages, err
}

// FindOrCreate matches on the normalized code only. The names of language
// are used when the row has to be inserted and never overwrite a stored row.
func (r *languageRepository) FindOrCreate(ctx context.Context, language models.Language) (*models.Language, error) {
	language.Code = globalize.NormalizeCode(language.Code)
	if language.Code == "" {
		return nil, errors.New("language code is required")
	}
	if language.Name == "" {
		language.Name = language.Code
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var found models.Language
	err := r.db.WithContext(ctx).
		Attrs(models.Language{Name: language.Name, NativeName: language.NativeName}).
		FirstOrCreate(&found, models.Language{Code: language.Code}).Error
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *languageRepository) FindAll(ctx context.Context) ([]models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var languages []models.Language
	err := r.db.WithContext(ctx).Order("code").Find(&languages).Error
	return languages, err
}
