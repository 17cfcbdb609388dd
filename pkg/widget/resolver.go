package widget

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/htmlform"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/rules"
)

// Matcher decides whether a kind should render the attribute.
type Matcher func(m model.FormModel, attribute string) bool

type matcherRule struct {
	kind     Kind
	priority int
	match    Matcher
	order    int
}

// Resolver picks a control kind for model attributes using registered
// matchers. Higher priority wins; ties fall back to registration order.
// Attributes nothing matches resolve to text.
type Resolver struct {
	mu    sync.RWMutex
	rules []matcherRule
}

// NewResolver constructs a resolver with the built-in matchers registered.
func NewResolver() *Resolver {
	r := &Resolver{}
	r.registerBuiltins()
	return r
}

// Register adds a matcher for kind. Nil matchers and empty kinds are ignored.
func (r *Resolver) Register(kind Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil || strings.TrimSpace(string(kind)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, matcherRule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for attribute.
func (r *Resolver) Resolve(m model.FormModel, attribute string) Kind {
	if r == nil || m == nil {
		return KindText
	}
	if name, err := htmlform.AttributeName(attribute); err == nil {
		attribute = name
	}
	r.mu.RLock()
	ordered := append([]matcherRule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].priority == ordered[j].priority {
			return ordered[i].order < ordered[j].order
		}
		return ordered[i].priority > ordered[j].priority
	})
	for _, entry := range ordered {
		if entry.match(m, attribute) {
			return entry.kind
		}
	}
	return KindText
}

// Control resolves the kind and builds the control in one step.
func (r *Resolver) Control(m model.FormModel, attribute string, options ...Option) Control {
	return New(r.Resolve(m, attribute), m, attribute, options...)
}

func (r *Resolver) registerBuiltins() {
	r.Register(KindEmail, 90, func(m model.FormModel, attribute string) bool {
		return rules.Has(m.Rules(attribute), rules.NameEmail)
	})
	r.Register(KindURL, 80, func(m model.FormModel, attribute string) bool {
		return rules.Has(m.Rules(attribute), rules.NameURL)
	})
	r.Register(KindNumber, 70, func(m model.FormModel, attribute string) bool {
		return rules.Has(m.Rules(attribute), rules.NameNumber)
	})
	r.Register(KindCheckbox, 60, func(m model.FormModel, attribute string) bool {
		_, ok := m.AttributeValue(attribute).(bool)
		return ok
	})
	r.Register(KindPassword, 50, func(_ model.FormModel, attribute string) bool {
		return strings.Contains(strings.ToLower(attribute), "password")
	})
}
