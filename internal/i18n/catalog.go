// Package i18n registers the catalog's translatable models.
package i18n

import (
	"fmt"

	"movie-i18n/internal/globalize"
	"movie-i18n/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	MovieModel = "movie"
	GenreModel = "genre"
)

type Catalog struct {
	Registry *globalize.Registry
	Movies   *globalize.Model[*models.MovieTranslation]
	Genres   *globalize.Model[*models.GenreTranslation]
}

func Setup(db *gorm.DB, fallbacks globalize.Fallbacks, log logrus.FieldLogger) (*Catalog, error) {
	registry := globalize.NewRegistry(db, fallbacks, log)

	movies, err := globalize.Register(registry, globalize.Definition[*models.MovieTranslation]{
		Name:           MovieModel,
		Owner:          &models.Movie{},
		NewTranslation: func() *models.MovieTranslation { return &models.MovieTranslation{} },
		ForeignKey:     "MovieID",
		Association:    "Translations",
		Attributes:     []string{"title", "overview"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register movie translations: %w", err)
	}

	genres, err := globalize.Register(registry, globalize.Definition[*models.GenreTranslation]{
		Name:           GenreModel,
		Owner:          &models.Genre{},
		NewTranslation: func() *models.GenreTranslation { return &models.GenreTranslation{} },
		ForeignKey:     "GenreID",
		Association:    "Translations",
		Attributes:     []string{"name"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register genre translations: %w", err)
	}

	return &Catalog{
		Registry: registry,
		Movies:   movies,
		Genres:   genres,
	}, nil
}
