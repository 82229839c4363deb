package models

import (
	"time"

	"movie-i18n/internal/globalize"

	"gorm.io/gorm"
)

type Genre struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	TMDBID       int                 `gorm:"uniqueIndex;not null" json:"tmdb_id"`
	Translations []*GenreTranslation `gorm:"foreignKey:GenreID" json:"translations,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func (Genre) TableName() string {
	return "genres"
}

type GenreTranslation struct {
	globalize.Translation
	GenreID uint   `gorm:"not null;index:,unique,composite:owner_language" json:"genre_id"`
	Name    string `gorm:"not null;index" json:"name"`
}

func (GenreTranslation) TableName() string {
	return "genre_translations"
}

func (t *GenreTranslation) BeforeSave(*gorm.DB) error {
	return globalize.ValidateTranslation(t.GenreID, &t.Translation)
}
