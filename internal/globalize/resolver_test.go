package globalize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-i18n/internal/globalize"
)

func TestResolveReturnsFirstMatchInOrder(t *testing.T) {
	t.Parallel()

	records := []*postTranslation{
		translation("b", "B"),
		translation("a", "A"),
	}

	rec, ok := globalize.Resolve(records, globalize.LanguageSet{"c", "a", "b"})
	require.True(t, ok)
	assert.Equal(t, "A", rec.Title)

	_, ok = globalize.Resolve(records, globalize.LanguageSet{"c", "d"})
	assert.False(t, ok)

	_, ok = globalize.Resolve(records, nil)
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))

	p := createPost(t, db, "find")
	createTranslation(t, db, p.ID, "en", "Hello")
	createTranslation(t, db, p.ID, "fr", "Bonjour")

	rec, ok, err := m.Find(db, p.ID, globalize.LanguageSet{"de", "fr", "en"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Bonjour", rec.Title)

	_, ok, err = m.Find(db, p.ID, globalize.LanguageSet{"it"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = m.Find(db, p.ID+1, globalize.LanguageSet{"en"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithTranslations(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))

	a := createPost(t, db, "a")
	b := createPost(t, db, "b")
	createPost(t, db, "untranslated")
	createTranslation(t, db, a.ID, "en", "A en")
	createTranslation(t, db, a.ID, "fr", "A fr")
	createTranslation(t, db, b.ID, "de", "B de")

	scope, err := m.WithTranslations(db, "fr")
	require.NoError(t, err)

	var posts []post
	require.NoError(t, db.Scopes(scope).Order("posts.id").Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, a.ID, posts[0].ID)
	require.Len(t, posts[0].Translations, 1)
	assert.Equal(t, "A fr", posts[0].Translations[0].Title)

	scope, err = m.WithTranslations(db)
	require.NoError(t, err)

	posts = nil
	require.NoError(t, db.Scopes(scope).Order("posts.id").Find(&posts).Error)
	assert.Equal(t, []uint{a.ID, b.ID}, postIDs(posts))
	assert.Len(t, posts[0].Translations, 2)
	assert.Len(t, posts[1].Translations, 1)
}

func TestWithTranslatedAttribute(t *testing.T) {
	db := newTestDB(t)
	m := newPostModel(t, db, globalize.NewFallbacks("en", nil))

	english := createPost(t, db, "english")
	french := createPost(t, db, "french")
	other := createPost(t, db, "other")
	createTranslation(t, db, english.ID, "en", "Hi")
	createTranslation(t, db, french.ID, "en", "Hello")
	createTranslation(t, db, french.ID, "fr", "Hi")
	createTranslation(t, db, other.ID, "en", "Hello")
	ctx := context.Background()

	scope, err := m.WithTranslatedAttribute(ctx, "title", "Hi", "en")
	require.NoError(t, err)

	var posts []post
	require.NoError(t, db.Scopes(scope).Order("posts.id").Find(&posts).Error)
	assert.Equal(t, []uint{english.ID}, postIDs(posts))

	scope, err = m.WithTranslatedAttribute(ctx, "Title", "Hi", "en", "fr")
	require.NoError(t, err)

	posts = nil
	require.NoError(t, db.Scopes(scope).Order("posts.id").Find(&posts).Error)
	assert.Equal(t, []uint{english.ID, french.ID}, postIDs(posts))

	tests := []struct {
		name   string
		ctx    context.Context
		expect []uint
	}{
		{name: "no active language", ctx: ctx, expect: []uint{english.ID}},
		{name: "active french", ctx: globalize.WithLanguage(ctx, "fr"), expect: []uint{english.ID, french.ID}},
		{name: "active regional french", ctx: globalize.WithLanguage(ctx, "fr-CA"), expect: []uint{english.ID, french.ID}},
		{name: "active german", ctx: globalize.WithLanguage(ctx, "de"), expect: []uint{english.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := m.WithTranslatedAttribute(tt.ctx, "title", "Hi")
			require.NoError(t, err)

			var found []post
			require.NoError(t, db.Scopes(scope).Order("posts.id").Find(&found).Error)
			assert.Equal(t, tt.expect, postIDs(found))
		})
	}

	_, err = m.WithTranslatedAttribute(ctx, "slug", "english")
	assert.ErrorIs(t, err, globalize.ErrConfiguration)
}
