package globalize

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Definition declares a translatable owner and its companion translation model.
type Definition[T Record] struct {
	// Name identifies the model in the registry, e.g. "movie".
	Name string
	// Owner is a pointer to a zero owner value, e.g. &models.Movie{}.
	Owner any
	// NewTranslation returns a new, empty translation record.
	NewTranslation func() T
	// ForeignKey is the translation column (or field) referencing the owner.
	ForeignKey string
	// Association is the owner's has-many field holding the translations.
	Association string
	// Attributes are the translated columns (or fields) of the translation model.
	Attributes []string
}

type accessor[T Record] struct {
	column string
	read   func(ctx context.Context, rec T) any
	write  func(ctx context.Context, rec T, value any) error
	blank  any
}

// Model is a registered translatable model. It is immutable after registration
// and safe for concurrent use.
type Model[T Record] struct {
	name        string
	newRecord   func() T
	fallbacks   Fallbacks
	owner       *schema.Schema
	ownerKey    *schema.Field
	translation *schema.Schema
	foreignKey  *schema.Field
	language    *schema.Field
	locale      *schema.Field
	association string
	attributes  []string
	accessors   map[string]*accessor[T]
}

func newModel[T Record](db *gorm.DB, fallbacks Fallbacks, def Definition[T]) (*Model[T], error) {
	switch {
	case def.Name == "":
		return nil, configError("", "", "model name is required")
	case def.Owner == nil:
		return nil, configError(def.Name, "", "owner model is required")
	case def.NewTranslation == nil:
		return nil, configError(def.Name, "", "no translation model configured")
	case len(def.Attributes) == 0:
		return nil, configError(def.Name, "", "no translated attributes declared")
	}

	owner, err := parseSchema(db, def.Owner)
	if err != nil {
		return nil, configError(def.Name, "", fmt.Sprintf("parse owner: %v", err))
	}
	if owner.PrioritizedPrimaryField == nil {
		return nil, configError(def.Name, "", "owner has no primary key")
	}

	translation, err := parseSchema(db, def.NewTranslation())
	if err != nil {
		return nil, configError(def.Name, "", fmt.Sprintf("parse translation: %v", err))
	}

	rel, ok := owner.Relationships.Relations[def.Association]
	if !ok || rel.FieldSchema == nil || rel.FieldSchema.Table != translation.Table {
		return nil, configError(def.Name, def.Association, "owner has no association to "+translation.Table)
	}

	m := &Model[T]{
		name:        def.Name,
		newRecord:   def.NewTranslation,
		fallbacks:   fallbacks,
		owner:       owner,
		ownerKey:    owner.PrioritizedPrimaryField,
		translation: translation,
		foreignKey:  translation.LookUpField(def.ForeignKey),
		language:    translation.LookUpField("Language"),
		locale:      translation.LookUpField("Locale"),
		association: def.Association,
		accessors:   make(map[string]*accessor[T], len(def.Attributes)),
	}
	if m.foreignKey == nil {
		return nil, configError(def.Name, def.ForeignKey, "foreign key is not a column of "+translation.Table)
	}
	if m.language == nil || m.locale == nil {
		return nil, configError(def.Name, "", translation.Table+" does not embed globalize.Translation")
	}

	for _, name := range def.Attributes {
		field := translation.LookUpField(name)
		if field == nil {
			return nil, configError(def.Name, name, "not a column of "+translation.Table)
		}
		if m.reserved(field) {
			return nil, configError(def.Name, name, "reserved column cannot be translated")
		}
		if _, dup := m.accessors[field.DBName]; dup {
			return nil, configError(def.Name, name, "declared twice")
		}
		m.accessors[field.DBName] = newAccessor[T](field)
		m.attributes = append(m.attributes, field.DBName)
	}

	return m, nil
}

func parseSchema(db *gorm.DB, model any) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, err
	}
	return stmt.Schema, nil
}

func newAccessor[T Record](field *schema.Field) *accessor[T] {
	return &accessor[T]{
		column: field.DBName,
		read: func(ctx context.Context, rec T) any {
			value, _ := field.ValueOf(ctx, reflect.Indirect(reflect.ValueOf(rec)))
			return value
		},
		write: func(ctx context.Context, rec T, value any) error {
			return field.Set(ctx, reflect.Indirect(reflect.ValueOf(rec)), value)
		},
		blank: reflect.Zero(field.FieldType).Interface(),
	}
}

func (m *Model[T]) reserved(field *schema.Field) bool {
	return field.PrimaryKey ||
		field == m.foreignKey ||
		field == m.language ||
		field == m.locale ||
		field.AutoCreateTime != 0 ||
		field.AutoUpdateTime != 0
}

func (m *Model[T]) Name() string {
	return m.name
}

// Attributes returns the translated column names in declaration order.
func (m *Model[T]) Attributes() []string {
	return slices.Clone(m.attributes)
}

// Translated reports whether name (column or field name) is a translated attribute.
func (m *Model[T]) Translated(name string) bool {
	_, err := m.attribute(name)
	return err == nil
}

func (m *Model[T]) Fallbacks() Fallbacks {
	return m.fallbacks
}

// TableName returns the translation table name.
func (m *Model[T]) TableName() string {
	return m.translation.Table
}

func (m *Model[T]) attribute(name string) (*accessor[T], error) {
	if acc, ok := m.accessors[name]; ok {
		return acc, nil
	}
	if field := m.translation.LookUpField(name); field != nil {
		if acc, ok := m.accessors[field.DBName]; ok {
			return acc, nil
		}
	}
	return nil, configError(m.name, name, "not a translated attribute")
}

func (m *Model[T]) column(field *schema.Field) clause.Column {
	return clause.Column{Table: m.translation.Table, Name: field.DBName}
}

// New returns an unsaved translation record for owner in language.
func (m *Model[T]) New(ctx context.Context, owner any, language string) (T, error) {
	rec := m.newRecord()
	rec.SetLanguage(language)
	if err := m.foreignKey.Set(ctx, reflect.Indirect(reflect.ValueOf(rec)), owner); err != nil {
		var zero T
		return zero, fmt.Errorf("set %s owner: %w", m.name, err)
	}
	return rec, nil
}

// OwnerOf returns the owner reference held by rec.
func (m *Model[T]) OwnerOf(ctx context.Context, rec T) any {
	value, _ := m.foreignKey.ValueOf(ctx, reflect.Indirect(reflect.ValueOf(rec)))
	return value
}

// Value reads the translated attribute name from rec.
func (m *Model[T]) Value(ctx context.Context, rec T, name string) (any, error) {
	acc, err := m.attribute(name)
	if err != nil {
		return nil, err
	}
	return acc.read(ctx, rec), nil
}

// SetValue writes the translated attribute name on rec without saving it.
func (m *Model[T]) SetValue(ctx context.Context, rec T, name string, value any) error {
	acc, err := m.attribute(name)
	if err != nil {
		return err
	}
	return acc.write(ctx, rec, value)
}

// ForOwner restricts a translation query to the records of owner.
func (m *Model[T]) ForOwner(owner any) func(*gorm.DB) *gorm.DB {
	col := m.column(m.foreignKey)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: col, Value: owner})
	}
}

// Translations loads the records of owner, optionally restricted to languages.
func (m *Model[T]) Translations(db *gorm.DB, owner any, languages ...string) ([]T, error) {
	query := db.Model(m.newRecord()).Scopes(m.ForOwner(owner))
	if len(languages) > 0 {
		query = query.Scopes(m.WithLanguages(languages...))
	}

	var records []T
	if err := query.Order(clause.OrderByColumn{Column: m.column(m.language)}).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteFor removes every translation of owner.
func (m *Model[T]) DeleteFor(db *gorm.DB, owner any) error {
	return db.Scopes(m.ForOwner(owner)).Delete(m.newRecord()).Error
}

// Bind wraps an owner and its loaded translations for attribute access.
func (m *Model[T]) Bind(owner any, records []T) *Instance[T] {
	return &Instance[T]{
		model:   m,
		owner:   owner,
		records: records,
		stash:   NewStash(),
		locales: make(map[string]string),
	}
}
