package services

import (
	"context"
	"fmt"

	"movie-i18n/internal/cache"
	"movie-i18n/internal/globalize"
	"movie-i18n/internal/i18n"
	"movie-i18n/internal/models"
	"movie-i18n/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	movieLanguagesKey = "movie:languages"
	movieLocalesKey   = "movie:locales"
)

type LanguageService interface {
	EnsureLanguage(ctx context.Context, code string) (*models.Language, error)
	GetLanguageByCode(ctx context.Context, code string) (*models.Language, error)
	GetSummary(ctx context.Context) (*models.LanguageSummary, error)
	TranslatedLanguages(ctx context.Context) ([]string, error)
	// Invalidate forgets cached translation languages after writes.
	Invalidate(ctx context.Context)
}

type languageService struct {
	repo      repository.LanguageRepository
	movieRepo repository.MovieRepository
	cache     *cache.LanguageCache
	fallbacks globalize.Fallbacks
	logger    *logrus.Logger
}

func NewLanguageService(repo repository.LanguageRepository, movieRepo repository.MovieRepository, languageCache *cache.LanguageCache, fallbacks globalize.Fallbacks, logger *logrus.Logger) LanguageService {
	return &languageService{
		repo:      repo,
		movieRepo: movieRepo,
		cache:     languageCache,
		fallbacks: fallbacks,
		logger:    logger,
	}
}

// EnsureLanguage returns the language row for code, creating it with
// English and native display names when missing.
func (s *languageService) EnsureLanguage(ctx context.Context, code string) (*models.Language, error) {
	code = globalize.NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: language code is required", globalize.ErrValidation)
	}

	name, native := i18n.DisplayNames(code)
	return s.repo.FindOrCreate(ctx, models.Language{Code: code, Name: name, NativeName: native})
}

func (s *languageService) GetLanguageByCode(ctx context.Context, code string) (*models.Language, error) {
	language, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if language == nil {
		return nil, fmt.Errorf("language %q: %w", code, ErrNotFound)
	}
	return language, nil
}

func (s *languageService) GetSummary(ctx context.Context) (*models.LanguageSummary, error) {
	languages, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}

	translated, err := s.TranslatedLanguages(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByCodes(ctx, translated...)
	if err != nil {
		return nil, fmt.Errorf("failed to load translated languages: %w", err)
	}

	locales, err := s.cache.Remember(ctx, movieLocalesKey, s.movieRepo.TranslatedLocales)
	if err != nil {
		return nil, fmt.Errorf("failed to list translated locales: %w", err)
	}

	return &models.LanguageSummary{
		Languages:           languages,
		TranslatedLanguages: translated,
		Translated:          rows,
		TranslatedLocales:   locales,
		DefaultLanguage:     s.fallbacks.Default,
	}, nil
}

func (s *languageService) TranslatedLanguages(ctx context.Context) ([]string, error) {
	codes, err := s.cache.Remember(ctx, movieLanguagesKey, s.movieRepo.TranslatedLanguages)
	if err != nil {
		return nil, fmt.Errorf("failed to list translated languages: %w", err)
	}
	return codes, nil
}

func (s *languageService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, movieLanguagesKey, movieLocalesKey); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate language cache")
	}
}
