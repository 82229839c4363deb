package globalize

import (
	"maps"
	"slices"
)

// Stash buffers attribute values per language until they are saved.
type Stash struct {
	values map[string]map[string]any
}

func NewStash() *Stash {
	return &Stash{values: make(map[string]map[string]any)}
}

func (s *Stash) Write(language, name string, value any) {
	attrs, ok := s.values[language]
	if !ok {
		attrs = make(map[string]any)
		s.values[language] = attrs
	}
	attrs[name] = value
}

func (s *Stash) Read(language, name string) (any, bool) {
	value, ok := s.values[language][name]
	return value, ok
}

func (s *Stash) Contains(language, name string) bool {
	_, ok := s.values[language][name]
	return ok
}

// Languages returns the stashed languages in ascending order.
func (s *Stash) Languages() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Attributes returns a copy of the values stashed for language.
func (s *Stash) Attributes(language string) map[string]any {
	return maps.Clone(s.values[language])
}

func (s *Stash) Dirty() bool {
	return len(s.values) > 0
}

func (s *Stash) Clear() {
	clear(s.values)
}
