package globalize

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"gorm.io/gorm"
)

// Instance gives attribute access to one owner and its translations. Writes
// go to a stash and reach the database on Save. An Instance belongs to a
// single unit of work and must not be shared between goroutines.
type Instance[T Record] struct {
	model   *Model[T]
	owner   any
	records []T
	stash   *Stash
	locales map[string]string
}

func (i *Instance[T]) Owner() any {
	return i.owner
}

// SetOwner sets the owner reference used for records created by Save, e.g.
// once a new owner row has its primary key.
func (i *Instance[T]) SetOwner(owner any) {
	i.owner = owner
}

// Records returns the persisted translation records.
func (i *Instance[T]) Records() []T {
	return i.records
}

func (i *Instance[T]) Stash() *Stash {
	return i.stash
}

// Languages returns every language with persisted or stashed values, ascending.
func (i *Instance[T]) Languages() []string {
	codes := TranslatedLanguages(i.records)
	codes = append(codes, i.stash.Languages()...)
	slices.Sort(codes)
	return slices.Compact(codes)
}

// Resolve returns the persisted record for the active language's fallback sequence.
func (i *Instance[T]) Resolve(ctx context.Context) (T, bool) {
	return Resolve(i.records, i.sequence(ctx))
}

// Lookup resolves name for the active language and reports which language
// supplied the value. When no language has a value it returns the
// attribute's zero value and found is false.
func (i *Instance[T]) Lookup(ctx context.Context, name string) (value any, language string, found bool, err error) {
	acc, err := i.model.attribute(name)
	if err != nil {
		return nil, "", false, err
	}

	for _, code := range i.sequence(ctx) {
		if v, ok := i.stash.Read(code, acc.column); ok {
			return v, code, true, nil
		}
		if rec, ok := i.record(code); ok {
			return acc.read(ctx, rec), code, true, nil
		}
	}
	return acc.blank, "", false, nil
}

// Get returns the value of name for the active language with fallbacks.
func (i *Instance[T]) Get(ctx context.Context, name string) (any, error) {
	value, _, _, err := i.Lookup(ctx, name)
	return value, err
}

// GetString is Get for text attributes.
func (i *Instance[T]) GetString(ctx context.Context, name string) (string, error) {
	value, err := i.Get(ctx, name)
	if err != nil {
		return "", err
	}
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case *string:
		if v == nil {
			return "", nil
		}
		return *v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Set stashes value for name in the active language.
func (i *Instance[T]) Set(ctx context.Context, name string, value any) error {
	code := i.model.fallbacks.Active(ctx)
	if code == "" {
		return configError(i.model.name, name, "no active language and no default language")
	}
	return i.SetIn(ctx, code, name, value)
}

// SetIn stashes value for name in language. A value the attribute's field
// cannot hold is rejected with ErrValidation and is not stashed.
func (i *Instance[T]) SetIn(ctx context.Context, language, name string, value any) error {
	acc, err := i.model.attribute(name)
	if err != nil {
		return err
	}
	code := NormalizeCode(language)
	if code == "" {
		return configError(i.model.name, name, "blank language")
	}
	if err := acc.write(ctx, i.model.newRecord(), value); err != nil {
		return fmt.Errorf("%w: %s.%s in %s: %v", ErrValidation, i.model.name, name, code, err)
	}
	i.stash.Write(code, acc.column, value)
	return nil
}

// Translations maps every language holding a value for name to that value.
// Stashed values replace persisted ones.
func (i *Instance[T]) Translations(ctx context.Context, name string) (map[string]any, error) {
	acc, err := i.model.attribute(name)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(i.records))
	for _, rec := range i.records {
		out[rec.LanguageCode()] = acc.read(ctx, rec)
	}
	for _, code := range i.stash.Languages() {
		if v, ok := i.stash.Read(code, acc.column); ok {
			out[code] = v
		}
	}
	return out, nil
}

// SetTranslations stashes one value of name per language.
func (i *Instance[T]) SetTranslations(ctx context.Context, name string, values map[string]any) error {
	for _, code := range slices.Sorted(maps.Keys(values)) {
		if err := i.SetIn(ctx, code, name, values[code]); err != nil {
			return err
		}
	}
	return nil
}

// SetLocale records the regional locale to store with the language's record.
func (i *Instance[T]) SetLocale(language, locale string) {
	i.locales[NormalizeCode(language)] = NormalizeCode(locale)
}

// Save writes stashed values into translation records, creating missing
// ones, in a single transaction. The stash is cleared on success. On failure
// the bound records are restored to their state before Save.
func (i *Instance[T]) Save(db *gorm.DB) error {
	pending := append(i.stash.Languages(), slices.Collect(maps.Keys(i.locales))...)
	slices.Sort(pending)
	pending = slices.Compact(pending)
	if len(pending) == 0 {
		return nil
	}

	ctx := db.Statement.Context
	var created []T
	var restore []func()
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, code := range pending {
			rec, ok := i.record(code)
			if ok {
				restore = append(restore, snapshot(rec))
			} else {
				var err error
				if rec, err = i.model.New(ctx, i.owner, code); err != nil {
					return err
				}
				created = append(created, rec)
			}
			for name, value := range i.stash.Attributes(code) {
				if err := i.model.SetValue(ctx, rec, name, value); err != nil {
					return fmt.Errorf("set %s.%s: %w", i.model.name, name, err)
				}
			}
			if locale, ok := i.locales[code]; ok {
				rec.SetLocale(locale)
			}
			if err := tx.Save(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, undo := range restore {
			undo()
		}
		return err
	}

	i.records = append(i.records, created...)
	i.stash.Clear()
	clear(i.locales)
	return nil
}

func (i *Instance[T]) sequence(ctx context.Context) LanguageSet {
	return i.model.fallbacks.For(i.model.fallbacks.Active(ctx))
}

func (i *Instance[T]) record(code string) (T, bool) {
	for _, rec := range i.records {
		if rec.LanguageCode() == code {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// snapshot copies the struct behind rec and returns a func that puts the
// copy back.
func snapshot[T Record](rec T) func() {
	v := reflect.ValueOf(rec)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return func() {}
	}
	elem := v.Elem()
	saved := reflect.New(elem.Type()).Elem()
	saved.Set(elem)
	return func() { elem.Set(saved) }
}
