package widget

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/rules"
)

// RenderFunc writes the markup for a control into buf.
type RenderFunc func(buf *bytes.Buffer, ctx RenderContext) error

// RenderContext carries everything resolved for a control before its
// component renders: derived name and id, the model value and the merged
// attributes (validation rules first, caller attributes on top).
type RenderContext struct {
	Kind          Kind
	Model         model.FormModel
	Attribute     string
	AttributeName string
	Name          string
	ID            string
	Value         any
	Attributes    html.Attributes
	Settings      Settings
}

// Descriptor bundles a component renderer with the metadata the control
// pipeline needs before calling it.
type Descriptor struct {
	Name   string
	Render RenderFunc
	// Rules selects which validation rules become HTML attributes.
	Rules rules.Capability
	// SkipRequired drops the required attribute, e.g. for hidden inputs.
	SkipRequired bool
	// Placeholder copies the model placeholder when none is configured.
	Placeholder bool
	// Accept validates the model value; nil accepts anything.
	Accept func(value any, settings *Settings) bool
	// Expect describes accepted values in ValueError messages.
	Expect string
}

// Registry tracks component descriptors keyed by kind. Callers can register
// new kinds or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Clone returns a copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register associates a descriptor with the provided kind. Existing entries
// are replaced.
func (r *Registry) Register(kind Kind, descriptor Descriptor) error {
	name := normalize(string(kind))
	if name == "" {
		return fmt.Errorf("widget: component kind is required")
	}
	if descriptor.Render == nil {
		return fmt.Errorf("widget: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = descriptor
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(kind Kind, descriptor Descriptor) {
	if err := r.Register(kind, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by kind.
func (r *Registry) Descriptor(kind Kind) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(string(kind))]
	return descriptor, ok
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind Kind) bool {
	_, ok := r.Descriptor(kind)
	return ok
}

// Names returns the registered kinds sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the shared registry used by controls that were not
// given one through WithRegistry. Registering on it affects every control.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewDefaultRegistry()
	})
	return defaultRegistry
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
