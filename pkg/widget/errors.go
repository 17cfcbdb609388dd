package widget

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is matched by every ValueError.
	ErrInvalidValue = errors.New("widget: invalid attribute value")
	// ErrNoModel is returned when a model-bound widget has no form model.
	ErrNoModel = errors.New("widget: form model is required")
)

// ValueError reports a model value the widget cannot represent, such as a
// slice bound to a text input.
type ValueError struct {
	Kind      Kind
	Attribute string
	Expected  string
	Value     any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("widget: %s widget for %q must be %s, got %T", e.Kind, e.Attribute, e.Expected, e.Value)
}

// Is lets errors.Is match ErrInvalidValue.
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
