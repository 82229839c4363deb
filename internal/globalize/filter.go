package globalize

import (
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// codePredicate matches column against codes. A single code is compared
// with "=", several codes with "IN"; both forms select the same rows.
func codePredicate(column clause.Column, codes []string) clause.Expression {
	codes = normalizeCodes(codes)
	if len(codes) == 1 {
		return clause.Eq{Column: column, Value: codes[0]}
	}
	values := make([]any, len(codes))
	for i, code := range codes {
		values[i] = code
	}
	return clause.IN{Column: column, Values: values}
}

// WithLanguages restricts a translation query to the given languages.
func (m *Model[T]) WithLanguages(languages ...string) func(*gorm.DB) *gorm.DB {
	expr := codePredicate(m.column(m.language), languages)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(expr)
	}
}

// WithLocales restricts a translation query to the given locales.
func (m *Model[T]) WithLocales(locales ...string) func(*gorm.DB) *gorm.DB {
	expr := codePredicate(m.column(m.locale), locales)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(expr)
	}
}

// TranslatedLanguages returns the distinct languages of the translation
// table, ascending, after applying scopes.
func (m *Model[T]) TranslatedLanguages(db *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]string, error) {
	return m.distinct(db, m.column(m.language), scopes)
}

// TranslatedLocales returns the distinct non-blank locales of the translation
// table, ascending, after applying scopes.
func (m *Model[T]) TranslatedLocales(db *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]string, error) {
	col := m.column(m.locale)
	scopes = append(slices.Clone(scopes), func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Neq{Column: col, Value: ""})
	})
	return m.distinct(db, col, scopes)
}

func (m *Model[T]) distinct(db *gorm.DB, col clause.Column, scopes []func(*gorm.DB) *gorm.DB) ([]string, error) {
	var codes []string
	err := db.Model(m.newRecord()).
		Scopes(scopes...).
		Distinct(col.Name).
		Order(clause.OrderByColumn{Column: clause.Column{Name: col.Name}}).
		Pluck(col.Name, &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// FilterLanguages returns the records whose language is one of languages,
// preserving their order.
func FilterLanguages[T Record](records []T, languages ...string) []T {
	codes := normalizeCodes(languages)
	return slices.DeleteFunc(slices.Clone(records), func(rec T) bool {
		return !slices.Contains(codes, rec.LanguageCode())
	})
}

// FilterLocales returns the records whose locale is one of locales.
func FilterLocales[T Record](records []T, locales ...string) []T {
	codes := normalizeCodes(locales)
	return slices.DeleteFunc(slices.Clone(records), func(rec T) bool {
		return !slices.Contains(codes, rec.LocaleCode())
	})
}

// TranslatedLanguages returns the distinct languages of records, ascending.
func TranslatedLanguages[T Record](records []T) []string {
	return distinctCodes(records, func(rec T) string { return rec.LanguageCode() })
}

// TranslatedLocales returns the distinct non-blank locales of records, ascending.
func TranslatedLocales[T Record](records []T) []string {
	return distinctCodes(records, func(rec T) string { return rec.LocaleCode() })
}

func distinctCodes[T Record](records []T, code func(T) string) []string {
	codes := make([]string, 0, len(records))
	for _, rec := range records {
		if c := code(rec); c != "" {
			codes = append(codes, c)
		}
	}
	slices.Sort(codes)
	return slices.Compact(codes)
}
