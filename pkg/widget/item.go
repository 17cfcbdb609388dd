package widget

import (
	"sort"

	"github.com/goliatone/go-formfields/pkg/html"
)

// Item is a list or select option. Items with Options render as an optgroup
// labelled Label.
type Item struct {
	Value      string          `json:"value" yaml:"value"`
	Label      string          `json:"label" yaml:"label"`
	Attributes html.Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Options    []Item          `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsGroup reports whether the item renders as an optgroup.
func (i Item) IsGroup() bool {
	return len(i.Options) > 0
}

// NewItem builds a plain option.
func NewItem(value, label string) Item {
	return Item{Value: value, Label: label}
}

// Group builds an optgroup.
func Group(label string, options ...Item) Item {
	return Item{Label: label, Options: append([]Item(nil), options...)}
}

// ItemsFromMap converts value=>label pairs into items sorted by value.
func ItemsFromMap(values map[string]string) []Item {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	items := make([]Item, 0, len(keys))
	for _, key := range keys {
		items = append(items, Item{Value: key, Label: values[key]})
	}
	return items
}

// ItemContext is passed to an ItemFormatter for each list entry.
type ItemContext struct {
	Index   int
	Item    Item
	Type    string
	Name    string
	Checked bool
	Encode  bool
	// Attributes are the resolved input attributes for the entry.
	Attributes html.Attributes
}

// ItemFormatter renders one list entry.
type ItemFormatter func(ctx ItemContext) string
