package model

import (
	"strings"
	"sync"
)

// Errors collects validation messages per attribute plus form-level messages.
// All methods are safe on a nil receiver and for concurrent use.
type Errors struct {
	mu        sync.RWMutex
	byAttr    map[string][]string
	order     []string
	form      []string
	validated bool
}

// NewErrors returns an empty error collection.
func NewErrors() *Errors {
	return &Errors{byAttr: make(map[string][]string)}
}

// Add appends message to attribute. Empty messages are ignored.
func (e *Errors) Add(attribute, message string) {
	if e == nil {
		return
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	attribute = strings.TrimSpace(attribute)
	if attribute == "" {
		e.AddForm(message)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.byAttr == nil {
		e.byAttr = make(map[string][]string)
	}
	if _, exists := e.byAttr[attribute]; !exists {
		e.order = append(e.order, attribute)
	}
	e.byAttr[attribute] = append(e.byAttr[attribute], message)
}

// AddForm appends a message not tied to any attribute.
func (e *Errors) AddForm(message string) {
	if e == nil {
		return
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = append(e.form, message)
}

// All returns every message recorded for attribute.
func (e *Errors) All(attribute string) []string {
	if e == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.byAttr[attribute]...)
}

// First returns the first message for attribute or "".
func (e *Errors) First(attribute string) string {
	if e == nil {
		return ""
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if messages := e.byAttr[attribute]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// Has reports whether attribute has errors. An empty attribute checks the
// whole collection, form-level messages included.
func (e *Errors) Has(attribute string) bool {
	if e == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if attribute == "" {
		return len(e.order) > 0 || len(e.form) > 0
	}
	return len(e.byAttr[attribute]) > 0
}

// Attributes lists attributes with errors in the order they were first added.
func (e *Errors) Attributes() []string {
	if e == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.order...)
}

// Form returns form-level messages.
func (e *Errors) Form() []string {
	if e == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.form...)
}

// Summary flattens messages for display. With showAll every message is
// returned, otherwise only the first per attribute. When only is non-empty the
// summary is restricted to those attributes and form-level messages are
// skipped.
func (e *Errors) Summary(showAll bool, only ...string) []string {
	if e == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []string
	attributes := e.order
	if len(only) > 0 {
		attributes = only
	} else {
		out = append(out, e.form...)
	}
	for _, attribute := range attributes {
		messages := e.byAttr[attribute]
		if len(messages) == 0 {
			continue
		}
		if showAll {
			out = append(out, messages...)
			continue
		}
		out = append(out, messages[0])
	}
	return out
}

// Clear removes messages for attribute, or everything when attribute is "".
func (e *Errors) Clear(attribute string) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if attribute == "" {
		e.byAttr = make(map[string][]string)
		e.order = nil
		e.form = nil
		return
	}
	if _, ok := e.byAttr[attribute]; !ok {
		return
	}
	delete(e.byAttr, attribute)
	for idx, name := range e.order {
		if name == attribute {
			e.order = append(e.order[:idx:idx], e.order[idx+1:]...)
			break
		}
	}
}

// Validated reports whether a validator has processed the model, which lets
// fields decorate inputs without errors as valid.
func (e *Errors) Validated() bool {
	if e == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.validated
}

// SetValidated records whether validation ran.
func (e *Errors) SetValidated(validated bool) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.validated = validated
}

// Apply merges a mapped error payload into the collection.
func (e *Errors) Apply(mapping ErrorMapping) {
	if e == nil {
		return
	}
	for _, attribute := range mapping.order() {
		for _, message := range mapping.Fields[attribute] {
			e.Add(attribute, message)
		}
	}
	for _, message := range mapping.Form {
		e.AddForm(message)
	}
}
