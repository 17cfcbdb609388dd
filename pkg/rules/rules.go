// Package rules declares validation rules attached to form model attributes.
// Rules are descriptive only: widgets read them to derive HTML5 validation
// attributes, evaluating them is left to a validator.
package rules

const (
	NameRequired = "required"
	NameLength   = "length"
	NamePattern  = "pattern"
	NameNumber   = "number"
	NameURL      = "url"
	NameEmail    = "email"
)

// Rule is implemented by every declarative rule.
type Rule interface {
	RuleName() string
}

// Required marks an attribute as mandatory.
type Required struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

func (Required) RuleName() string { return NameRequired }

// HasLength bounds the length of a string value. Zero means unbounded.
type HasLength struct {
	Min int `json:"min,omitempty" yaml:"min,omitempty"`
	Max int `json:"max,omitempty" yaml:"max,omitempty"`
}

func (HasLength) RuleName() string { return NameLength }

// MatchRegularExpression requires the value to match Pattern, or not to
// match it when Not is set.
type MatchRegularExpression struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Not     bool   `json:"not,omitempty" yaml:"not,omitempty"`
}

func (MatchRegularExpression) RuleName() string { return NamePattern }

// Number restricts the value to a numeric range.
type Number struct {
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	IntegerOnly bool     `json:"integerOnly,omitempty" yaml:"integerOnly,omitempty"`
}

func (Number) RuleName() string { return NameNumber }

// URL requires an absolute URL using one of ValidSchemes.
type URL struct {
	ValidSchemes []string `json:"validSchemes,omitempty" yaml:"validSchemes,omitempty"`
}

func (URL) RuleName() string { return NameURL }

// Schemes returns the configured schemes or the http/https default.
func (u URL) Schemes() []string {
	if len(u.ValidSchemes) == 0 {
		return []string{"http", "https"}
	}
	return u.ValidSchemes
}

// Email requires an email address.
type Email struct{}

func (Email) RuleName() string { return NameEmail }

// Bound returns a pointer to v, handy when declaring Number limits.
func Bound(v float64) *float64 {
	return &v
}

// Has reports whether set contains a rule with the given name.
func Has(set []Rule, name string) bool {
	for _, rule := range set {
		if rule != nil && rule.RuleName() == name {
			return true
		}
	}
	return false
}
