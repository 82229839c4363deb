package globalize

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type registered interface {
	Name() string
	Attributes() []string
	Translated(name string) bool
	TableName() string
}

// Registry holds the translatable models of an application. Models are
// registered once at startup and looked up by name afterwards.
type Registry struct {
	mu        sync.RWMutex
	db        *gorm.DB
	fallbacks Fallbacks
	logger    logrus.FieldLogger
	models    map[string]registered
}

func NewRegistry(db *gorm.DB, fallbacks Fallbacks, logger logrus.FieldLogger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Registry{
		db:        db,
		fallbacks: fallbacks,
		logger:    logger,
		models:    make(map[string]registered),
	}
}

// Register validates def against the gorm schemas of its owner and
// translation models. Any mismatch is reported as a configuration error.
func Register[T Record](r *Registry, def Definition[T]) (*Model[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.models[def.Name]; exists {
		return nil, configError(def.Name, "", "already registered")
	}

	m, err := newModel(r.db, r.fallbacks, def)
	if err != nil {
		return nil, err
	}
	r.models[def.Name] = m

	r.logger.WithFields(logrus.Fields{
		"model":      m.name,
		"table":      m.translation.Table,
		"attributes": m.attributes,
	}).Debug("Registered translated model")

	return m, nil
}

// Lookup returns the model registered under name.
func Lookup[T Record](r *Registry, name string) (*Model[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.models[name]
	if !ok {
		return nil, configError(name, "", "no translation model configured")
	}
	m, ok := entry.(*Model[T])
	if !ok {
		var zero T
		return nil, configError(name, "", fmt.Sprintf("registered with a translation type other than %T", zero))
	}
	return m, nil
}

// Translated reports whether attribute is translated on the named model.
func (r *Registry) Translated(model, attribute string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.models[model]
	return ok && entry.Translated(attribute)
}

// Models returns the registered model names in ascending order.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.models))
}

func (r *Registry) Fallbacks() Fallbacks {
	return r.fallbacks
}
