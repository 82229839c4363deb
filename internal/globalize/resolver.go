package globalize

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resolve returns the record for the first language of languages that has
// one. The boolean is false when no language matches.
func Resolve[T Record](records []T, languages LanguageSet) (T, bool) {
	for _, code := range languages {
		code = NormalizeCode(code)
		for _, rec := range records {
			if rec.LanguageCode() == code {
				return rec, true
			}
		}
	}
	var zero T
	return zero, false
}

// Find loads the translations of owner in languages with a single query and
// resolves them in order. A missing translation is not an error.
func (m *Model[T]) Find(db *gorm.DB, owner any, languages LanguageSet) (T, bool, error) {
	var zero T
	if len(languages) == 0 {
		return zero, false, nil
	}

	records, err := m.Translations(db, owner, languages...)
	if err != nil {
		return zero, false, err
	}

	rec, ok := Resolve(records, languages)
	return rec, ok, nil
}

// WithTranslations returns a scope for owner queries that keeps owners having
// a translation in languages and preloads those translations. Without
// languages every translated language is used.
func (m *Model[T]) WithTranslations(db *gorm.DB, languages ...string) (func(*gorm.DB) *gorm.DB, error) {
	if len(languages) == 0 {
		var err error
		if languages, err = m.TranslatedLanguages(db); err != nil {
			return nil, err
		}
	}

	filter := m.WithLanguages(languages...)
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Preload(m.association, filter).Where(m.ownerIn(tx, filter))
	}, nil
}

// WithTranslatedAttribute returns a scope for owner queries that keeps owners
// having a translation in languages whose attribute name equals value. Without
// languages the fallback sequence of the active language of ctx is used.
func (m *Model[T]) WithTranslatedAttribute(ctx context.Context, name string, value any, languages ...string) (func(*gorm.DB) *gorm.DB, error) {
	acc, err := m.attribute(name)
	if err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		languages = m.fallbacks.For(m.fallbacks.Active(ctx))
	}

	col := clause.Column{Table: m.translation.Table, Name: acc.column}
	match := func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: col, Value: value})
	}
	filter := m.WithLanguages(languages...)

	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(m.ownerIn(tx, filter, match))
	}, nil
}

// ownerIn builds "owners.id IN (SELECT owner_id FROM translations WHERE ...)".
func (m *Model[T]) ownerIn(tx *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) clause.Expression {
	sub := tx.Session(&gorm.Session{NewDB: true}).
		Model(m.newRecord()).
		Select(m.column(m.foreignKey).Name)
	for _, scope := range scopes {
		sub = scope(sub)
	}

	return clause.Expr{
		SQL:  "? IN (?)",
		Vars: []any{clause.Column{Table: m.owner.Table, Name: m.ownerKey.DBName}, sub},
	}
}
