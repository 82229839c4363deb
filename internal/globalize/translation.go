package globalize

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"
)

// Record is implemented by every translation model. Embedding Translation
// provides all four methods on the pointer type.
type Record interface {
	LanguageCode() string
	LocaleCode() string
	SetLanguage(code string)
	SetLocale(code string)
}

// Translation holds the columns shared by all translation tables. The owning
// model's translation type embeds it next to its foreign key, which must carry
// the same composite index tag so that (owner, language) stays unique.
type Translation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Language  string    `gorm:"not null;size:16;index:,unique,composite:owner_language" json:"language"`
	Locale    string    `gorm:"size:35;index" json:"locale,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t Translation) LanguageCode() string {
	return t.Language
}

// LocaleCode returns the stored locale. A blank locale stays blank.
func (t Translation) LocaleCode() string {
	return strings.TrimSpace(t.Locale)
}

func (t *Translation) SetLanguage(code string) {
	t.Language = NormalizeCode(code)
}

func (t *Translation) SetLocale(code string) {
	t.Locale = NormalizeCode(code)
}

// ValidateTranslation checks the presence of the owner reference and the
// language. Translation models call it from their BeforeSave hook.
func ValidateTranslation(owner any, t *Translation) error {
	err := validation.Errors{
		"owner":    validation.Validate(owner, validation.Required),
		"language": validation.Validate(t.Language, validation.Required),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// NormalizeCode returns the canonical BCP 47 form of a language or locale
// code ("en-us" becomes "en-US"). Codes that do not parse are returned trimmed.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	return tag.String()
}

func normalizeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		out = append(out, NormalizeCode(code))
	}
	return out
}
