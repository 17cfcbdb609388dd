package model

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/rules"
)

// Attribute describes one model attribute.
type Attribute struct {
	Name        string
	Label       string
	Hint        string
	Placeholder string
	Value       any
	Rules       []rules.Rule
}

// Option configures a Form at construction time.
type Option func(*Form)

// WithAttribute declares an attribute. Redeclaring a name replaces it while
// keeping its original position.
func WithAttribute(attribute Attribute) Option {
	return func(f *Form) {
		f.define(attribute)
	}
}

// WithLabeler overrides the function used for attributes without a label.
func WithLabeler(labeler func(string) string) Option {
	return func(f *Form) {
		if labeler != nil {
			f.labeler = labeler
		}
	}
}

// WithErrors shares an existing error collection with the form.
func WithErrors(errs *Errors) Option {
	return func(f *Form) {
		if errs != nil {
			f.errors = errs
		}
	}
}

// Form is a map-backed FormModel. Attribute values may be updated through Set
// or Load; metadata is fixed at construction.
type Form struct {
	name    string
	mu      sync.RWMutex
	attrs   map[string]*Attribute
	order   []string
	labeler func(string) string
	errors  *Errors
}

var _ FormModel = (*Form)(nil)

// New constructs a Form scoped under name.
func New(name string, options ...Option) *Form {
	form := &Form{
		name:    strings.TrimSpace(name),
		attrs:   make(map[string]*Attribute),
		labeler: DefaultLabeler,
		errors:  NewErrors(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(form)
		}
	}
	return form
}

func (f *Form) define(attribute Attribute) {
	name := strings.TrimSpace(attribute.Name)
	if name == "" {
		return
	}
	attribute.Name = name
	attribute.Rules = append([]rules.Rule(nil), attribute.Rules...)
	if _, exists := f.attrs[name]; !exists {
		f.order = append(f.order, name)
	}
	f.attrs[name] = &attribute
}

// FormName implements FormModel.
func (f *Form) FormName() string {
	return f.name
}

// Attributes returns the declared attribute names in declaration order.
func (f *Form) Attributes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.order...)
}

// Attribute returns a copy of the declaration for name.
func (f *Form) Attribute(name string) (Attribute, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	attr, ok := f.attrs[name]
	if !ok {
		return Attribute{}, false
	}
	return *attr, true
}

// HasAttribute implements FormModel. Dotted paths are resolved through nested
// form models.
func (f *Form) HasAttribute(attribute string) bool {
	attr, rest, nested := f.lookup(attribute)
	if attr == nil {
		return false
	}
	if rest == "" {
		return true
	}
	return nested != nil && nested.HasAttribute(rest)
}

// AttributeValue implements FormModel.
func (f *Form) AttributeValue(attribute string) any {
	attr, rest, nested := f.lookup(attribute)
	switch {
	case attr == nil:
		return nil
	case rest == "":
		f.mu.RLock()
		defer f.mu.RUnlock()
		return attr.Value
	case nested != nil:
		return nested.AttributeValue(rest)
	default:
		return nil
	}
}

// AttributeLabel implements FormModel.
func (f *Form) AttributeLabel(attribute string) string {
	attr, rest, nested := f.lookup(attribute)
	if nested != nil && rest != "" {
		return nested.AttributeLabel(rest)
	}
	if attr != nil && attr.Label != "" {
		return attr.Label
	}
	return f.labeler(attribute)
}

// AttributeHint implements FormModel.
func (f *Form) AttributeHint(attribute string) string {
	attr, rest, nested := f.lookup(attribute)
	if nested != nil && rest != "" {
		return nested.AttributeHint(rest)
	}
	if attr == nil {
		return ""
	}
	return attr.Hint
}

// AttributePlaceholder implements FormModel.
func (f *Form) AttributePlaceholder(attribute string) string {
	attr, rest, nested := f.lookup(attribute)
	if nested != nil && rest != "" {
		return nested.AttributePlaceholder(rest)
	}
	if attr == nil {
		return ""
	}
	return attr.Placeholder
}

// Rules implements FormModel.
func (f *Form) Rules(attribute string) []rules.Rule {
	attr, rest, nested := f.lookup(attribute)
	if nested != nil && rest != "" {
		return nested.Rules(rest)
	}
	if attr == nil {
		return nil
	}
	return append([]rules.Rule(nil), attr.Rules...)
}

// Errors implements FormModel.
func (f *Form) Errors() *Errors {
	return f.errors
}

// Set stores value on attribute. Dotted paths are only settable when the
// nested model is a *Form.
func (f *Form) Set(attribute string, value any) error {
	attr, rest, nested := f.lookup(attribute)
	if attr == nil {
		return fmt.Errorf("model: attribute %q is not defined on %q", attribute, f.name)
	}
	if rest != "" {
		inner, ok := nested.(*Form)
		if !ok {
			return fmt.Errorf("model: attribute %q does not reference a settable nested form", attribute)
		}
		return inner.Set(rest, value)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	attr.Value = value
	return nil
}

// Value returns the attribute value, mirroring AttributeValue.
func (f *Form) Value(attribute string) any {
	return f.AttributeValue(attribute)
}

// Values returns a snapshot of top-level attribute values.
func (f *Form) Values() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]any, len(f.order))
	for _, name := range f.order {
		out[name] = f.attrs[name].Value
	}
	return out
}

// Load populates attribute values from submitted request values. With a form
// name, keys are read as Name[attribute]; otherwise the bare attribute name is
// used. Only attribute[] keys become []string; a repeated plain key keeps its
// last value, so a checked checkbox overrides its hidden uncheck input. It
// reports whether any attribute was loaded.
func (f *Form) Load(values url.Values) (bool, error) {
	if len(values) == 0 {
		return false, nil
	}
	loaded := false
	for _, name := range f.Attributes() {
		key := name
		if f.name != "" {
			key = f.name + "[" + name + "]"
		}

		var value any
		if list, ok := values[key+"[]"]; ok {
			value = append([]string(nil), list...)
		} else if list, ok := values[key]; ok {
			value = ""
			if len(list) > 0 {
				value = list[len(list)-1]
			}
		} else {
			continue
		}
		if err := f.Set(name, value); err != nil {
			return loaded, err
		}
		loaded = true
	}
	return loaded, nil
}

// LoadErrors maps a server error payload onto the form's error collection.
func (f *Form) LoadErrors(payload map[string][]string) {
	f.errors.Apply(MapErrorPayload(f.name, f.Attributes(), payload))
}

func (f *Form) lookup(attribute string) (*Attribute, string, FormModel) {
	attribute = strings.TrimSpace(attribute)
	if attribute == "" {
		return nil, "", nil
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if attr, ok := f.attrs[attribute]; ok {
		return attr, "", nil
	}
	head, rest, found := strings.Cut(attribute, ".")
	if !found {
		return nil, "", nil
	}
	attr, ok := f.attrs[head]
	if !ok {
		return nil, "", nil
	}
	nested, _ := attr.Value.(FormModel)
	return attr, rest, nested
}
