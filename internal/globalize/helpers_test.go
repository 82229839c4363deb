package globalize_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"movie-i18n/internal/globalize"
)

type post struct {
	ID           uint `gorm:"primaryKey"`
	Slug         string
	Translations []*postTranslation `gorm:"foreignKey:PostID"`
}

type postTranslation struct {
	globalize.Translation
	PostID uint   `gorm:"not null;index:,unique,composite:owner_language"`
	Title  string `gorm:"index"`
	Body   string `gorm:"type:text"`
}

func (t *postTranslation) BeforeSave(*gorm.DB) error {
	return globalize.ValidateTranslation(t.PostID, &t.Translation)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&post{}, &postTranslation{}))
	return db
}

func postDefinition() globalize.Definition[*postTranslation] {
	return globalize.Definition[*postTranslation]{
		Name:           "post",
		Owner:          &post{},
		NewTranslation: func() *postTranslation { return &postTranslation{} },
		ForeignKey:     "PostID",
		Association:    "Translations",
		Attributes:     []string{"title", "body"},
	}
}

func newPostModel(t *testing.T, db *gorm.DB, fallbacks globalize.Fallbacks) *globalize.Model[*postTranslation] {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	registry := globalize.NewRegistry(db, fallbacks, log)

	m, err := globalize.Register(registry, postDefinition())
	require.NoError(t, err)
	return m
}

func createPost(t *testing.T, db *gorm.DB, slug string) *post {
	t.Helper()
	p := &post{Slug: slug}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createTranslation(t *testing.T, db *gorm.DB, postID uint, language, title string) *postTranslation {
	t.Helper()
	rec := &postTranslation{PostID: postID, Title: title}
	rec.SetLanguage(language)
	require.NoError(t, db.Create(rec).Error)
	return rec
}

func translation(language, title string) *postTranslation {
	rec := &postTranslation{Title: title}
	rec.SetLanguage(language)
	return rec
}

func postIDs(posts []post) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
