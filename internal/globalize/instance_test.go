package globalize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-i18n/internal/globalize"
)

func inLanguage(code string) context.Context {
	return globalize.WithLanguage(context.Background(), code)
}

func TestInstanceGetFallsBack(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", map[string][]string{"fr-CA": {"fr"}}))

	p := createPost(t, db, "fallback")
	en := createTranslation(t, db, p.ID, "en", "Hello")
	fr := createTranslation(t, db, p.ID, "fr", "Bonjour")
	inst := m.Bind(p.ID, []*postTranslation{en, fr})

	title, err := inst.GetString(inLanguage("fr-CA"), "title")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", title)

	value, language, found, err := inst.Lookup(inLanguage("de"), "title")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "en", language)
	assert.Equal(t, "Hello", value)

	title, err = inst.GetString(context.Background(), "title")
	require.NoError(t, err)
	assert.Equal(t, "Hello", title, "default language without context")

	rec, ok := inst.Resolve(inLanguage("fr"))
	require.True(t, ok)
	assert.Same(t, fr, rec)
}

func TestInstanceGetWithoutTranslationReturnsBlank(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))
	inst := m.Bind(uint(1), nil)

	value, language, found, err := inst.Lookup(inLanguage("fr"), "title")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, language)
	assert.Equal(t, "", value)
}

func TestInstanceGetIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))
	inst := m.Bind(uint(1), []*postTranslation{translation("en", "Hello")})

	ctx := inLanguage("en")
	first, err := inst.Get(ctx, "title")
	require.NoError(t, err)
	second, err := inst.Get(ctx, "title")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInstanceStashTakesPrecedence(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))

	persisted := translation("en", "Persisted")
	persisted.Body = "Body"
	inst := m.Bind(uint(1), []*postTranslation{persisted})

	ctx := inLanguage("en")
	require.NoError(t, inst.Set(ctx, "title", "X"))

	title, err := inst.Get(ctx, "title")
	require.NoError(t, err)
	assert.Equal(t, "X", title)
	assert.Equal(t, "Persisted", persisted.Title, "record is untouched until save")

	body, err := inst.Get(ctx, "body")
	require.NoError(t, err)
	assert.Equal(t, "Body", body, "stash overrides the attribute only")
}

func TestInstanceTranslationsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))
	inst := m.Bind(uint(1), nil)

	ctx := context.Background()
	require.NoError(t, inst.SetTranslations(ctx, "title", map[string]any{"en": "Hi", "fr": "Salut"}))

	all, err := inst.Translations(ctx, "title")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"en": "Hi", "fr": "Salut"}, all)
	assert.Equal(t, []string{"en", "fr"}, inst.Languages())
}

func TestInstanceTranslationsMergesPersistedAndStashed(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))
	inst := m.Bind(uint(1), []*postTranslation{translation("en", "Hello"), translation("de", "Hallo")})

	ctx := context.Background()
	require.NoError(t, inst.SetIn(ctx, "en", "title", "Hi"))
	require.NoError(t, inst.SetIn(ctx, "fr", "title", "Salut"))

	all, err := inst.Translations(ctx, "title")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"en": "Hi", "de": "Hallo", "fr": "Salut"}, all)
}

func TestInstanceUnknownAttribute(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))
	inst := m.Bind(uint(1), nil)
	ctx := inLanguage("en")

	_, err := inst.Get(ctx, "slug")
	assert.ErrorIs(t, err, globalize.ErrConfiguration)

	err = inst.Set(ctx, "slug", "x")
	assert.ErrorIs(t, err, globalize.ErrConfiguration)

	_, err = inst.Translations(ctx, "slug")
	assert.ErrorIs(t, err, globalize.ErrConfiguration)

	var cfgErr *globalize.ConfigError
	require.ErrorAs(t, inst.SetTranslations(ctx, "slug", map[string]any{"en": "x"}), &cfgErr)
	assert.Equal(t, "post", cfgErr.Model)
	assert.Equal(t, "slug", cfgErr.Attribute)
}

func TestInstanceSetWithoutLanguage(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.Fallbacks{})
	inst := m.Bind(uint(1), nil)

	err := inst.Set(context.Background(), "title", "x")
	assert.ErrorIs(t, err, globalize.ErrConfiguration)
}

func TestInstanceSave(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))

	p := createPost(t, db, "save")
	existing := createTranslation(t, db, p.ID, "en", "Hello")
	inst := m.Bind(p.ID, []*postTranslation{existing})

	ctx := context.Background()
	require.NoError(t, inst.SetTranslations(ctx, "title", map[string]any{"en": "Hi", "fr": "Salut"}))
	require.NoError(t, inst.SetIn(ctx, "fr", "body", "Corps"))
	inst.SetLocale("fr", "fr-ca")
	require.NoError(t, inst.Save(db))

	assert.False(t, inst.Stash().Dirty())
	assert.Len(t, inst.Records(), 2)

	stored, err := m.Translations(db, p.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "en", stored[0].LanguageCode())
	assert.Equal(t, "Hi", stored[0].Title)
	assert.Equal(t, existing.ID, stored[0].ID)
	assert.Equal(t, "fr", stored[1].LanguageCode())
	assert.Equal(t, "Salut", stored[1].Title)
	assert.Equal(t, "Corps", stored[1].Body)
	assert.Equal(t, "fr-CA", stored[1].LocaleCode())

	title, err := inst.Get(inLanguage("fr"), "title")
	require.NoError(t, err)
	assert.Equal(t, "Salut", title)
}

func TestInstanceSaveWithoutOwnerFails(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))
	inst := m.Bind(uint(0), nil)

	require.NoError(t, inst.Set(inLanguage("en"), "title", "Orphan"))
	err := inst.Save(db)
	assert.ErrorIs(t, err, globalize.ErrValidation)
	assert.True(t, inst.Stash().Dirty(), "stash survives a failed save")

	p := createPost(t, db, "owner")
	inst.SetOwner(p.ID)
	require.NoError(t, inst.Save(db))

	rec, ok, err := m.Find(db, p.ID, globalize.LanguageSet{"en"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Orphan", rec.Title)
}

func TestInstanceSetInRejectsValuesTheFieldCannotHold(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))
	inst := m.Bind(uint(1), []*postTranslation{translation("en", "Hello")})
	ctx := context.Background()

	err := inst.SetIn(ctx, "fr", "title", struct{ X int }{1})
	assert.ErrorIs(t, err, globalize.ErrValidation)
	assert.False(t, inst.Stash().Dirty())

	err = inst.SetTranslations(ctx, "title", map[string]any{"de": "Hallo", "fr": []int{1}})
	assert.ErrorIs(t, err, globalize.ErrValidation)
	assert.True(t, inst.Stash().Contains("de", "title"))
	assert.False(t, inst.Stash().Contains("fr", "title"))

	require.NoError(t, inst.SetIn(ctx, "fr", "title", nil))
}

func TestInstanceFailedSaveRestoresRecords(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))

	p := createPost(t, db, "rollback")
	en := createTranslation(t, db, p.ID, "en", "Hello")
	createTranslation(t, db, p.ID, "fr", "Bonjour")
	inst := m.Bind(p.ID, []*postTranslation{en})
	ctx := context.Background()

	require.NoError(t, inst.SetIn(ctx, "en", "title", "Hi"))
	require.NoError(t, inst.SetIn(ctx, "fr", "title", "Salut"))
	require.Error(t, inst.Save(db), "fr is stored but not bound, so inserting it again fails")

	require.Len(t, inst.Records(), 1)
	assert.Equal(t, "Hello", inst.Records()[0].Title)
	assert.True(t, inst.Stash().Dirty())

	stored, err := m.Translations(db, p.ID, "en")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Hello", stored[0].Title)

	title, err := inst.Get(inLanguage("en"), "title")
	require.NoError(t, err)
	assert.Equal(t, "Hi", title, "stashed value survives the failed save")
}

func TestDeleteFor(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))

	a := createPost(t, db, "a")
	b := createPost(t, db, "b")
	createTranslation(t, db, a.ID, "en", "A")
	createTranslation(t, db, a.ID, "fr", "A")
	createTranslation(t, db, b.ID, "en", "B")

	require.NoError(t, m.DeleteFor(db, a.ID))

	languages, err := m.TranslatedLanguages(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, languages)

	records, err := m.Translations(db, b.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
