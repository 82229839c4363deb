package globalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-i18n/internal/globalize"
)

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "en", want: "en"},
		{in: " fr ", want: "fr"},
		{in: "en-us", want: "en-US"},
		{in: "pt_br", want: "pt-BR"},
		{in: "", want: ""},
		{in: "not a tag", want: "not a tag"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, globalize.NormalizeCode(tt.in))
		})
	}
}

func TestTranslationLocale(t *testing.T) {
	t.Parallel()

	var tr globalize.Translation
	assert.Equal(t, "", tr.LocaleCode(), "blank locale stays blank")

	tr.SetLocale("fr-ca")
	assert.Equal(t, "fr-CA", tr.Locale)
	assert.Equal(t, "fr-CA", tr.LocaleCode())

	tr.SetLanguage("EN")
	assert.Equal(t, "en", tr.LanguageCode())
}

func TestValidateTranslation(t *testing.T) {
	t.Parallel()

	tr := globalize.Translation{Language: "en"}
	assert.NoError(t, globalize.ValidateTranslation(uint(1), &tr))

	err := globalize.ValidateTranslation(uint(0), &tr)
	require.Error(t, err)
	assert.ErrorIs(t, err, globalize.ErrValidation)
	assert.Contains(t, err.Error(), "owner")

	err = globalize.ValidateTranslation(uint(1), &globalize.Translation{})
	assert.ErrorIs(t, err, globalize.ErrValidation)
	assert.Contains(t, err.Error(), "language")
}

func TestSaveWithoutOwnerFails(t *testing.T) {
	db := newTestDB(t)

	rec := translation("en", "Orphan")
	err := db.Create(rec).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, globalize.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&postTranslation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOneTranslationPerOwnerAndLanguage(t *testing.T) {
	db := newTestDB(t)
	p := createPost(t, db, "unique")
	createTranslation(t, db, p.ID, "en", "First")

	dup := translation("en", "Second")
	dup.PostID = p.ID
	assert.Error(t, db.Create(dup).Error)
}
