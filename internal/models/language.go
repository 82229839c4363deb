package models

import "time"

// Language is a known language code with display names. Translation rows
// reference languages by code, not by ID.
type Language struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Code       string    `gorm:"uniqueIndex;not null;size:16" json:"code"` // BCP 47 code (e.g., 'en', 'pt-BR')
	Name       string    `gorm:"not null" json:"name"`                     // English name (e.g., 'Indonesian')
	NativeName string    `json:"native_name"`                              // Self name (e.g., 'Indonesia')
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Language) TableName() string {
	return "languages"
}

// LanguageSummary lists the languages known to the catalog.
type LanguageSummary struct {
	Languages           []Language `json:"languages"`
	TranslatedLanguages []string   `json:"translated_languages"`
	Translated          []Language `json:"translated"` // rows of TranslatedLanguages known to the table
	TranslatedLocales   []string   `json:"translated_locales"`
	DefaultLanguage     string     `json:"default_language"`
}
