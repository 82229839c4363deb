package i18n_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"movie-i18n/internal/globalize"
	"movie-i18n/internal/i18n"
	"movie-i18n/internal/models"
)

func TestSetup(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:TestSetup?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	catalog, err := i18n.Setup(db, globalize.NewFallbacks("en", nil), logrus.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"genre", "movie"}, catalog.Registry.Models())
	assert.Equal(t, []string{"title", "overview"}, catalog.Movies.Attributes())
	assert.Equal(t, []string{"name"}, catalog.Genres.Attributes())
	assert.Equal(t, "movie_translations", catalog.Movies.TableName())

	movies, err := globalize.Lookup[*models.MovieTranslation](catalog.Registry, i18n.MovieModel)
	require.NoError(t, err)
	assert.Same(t, catalog.Movies, movies)

	_, err = globalize.Lookup[*models.MovieTranslation](catalog.Registry, i18n.GenreModel)
	assert.ErrorIs(t, err, globalize.ErrConfiguration)
}

func TestDisplayNames(t *testing.T) {
	t.Parallel()

	name, native := i18n.DisplayNames("fr")
	assert.Equal(t, "French", name)
	assert.Equal(t, "français", native)

	name, native = i18n.DisplayNames("not a code")
	assert.Equal(t, "not a code", name)
	assert.Equal(t, "not a code", native)
}

func TestBaseAndRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code   string
		base   string
		locale string
	}{
		{code: "fr-FR", base: "fr", locale: "fr-FR"},
		{code: "en-us", base: "en", locale: "en-US"},
		{code: "de", base: "de", locale: ""},
		{code: "???", base: "???", locale: ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			base, locale := i18n.BaseAndRegion(tt.code)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.locale, locale)
		})
	}
}
