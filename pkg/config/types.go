package config

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/field"
	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/rules"
	"github.com/goliatone/go-formfields/pkg/widget"
)

// FormDefinition describes a whole form: where it submits, which preset
// decorates its fields and the fields themselves in render order.
type FormDefinition struct {
	// Name is the key the definition was declared under.
	Name string `json:"-" yaml:"-"`
	// FormName scopes input names, e.g. "LoginForm" gives LoginForm[login].
	FormName string               `json:"formName,omitempty" yaml:"formName,omitempty"`
	Action   string               `json:"action,omitempty" yaml:"action,omitempty"`
	Method   string               `json:"method,omitempty" yaml:"method,omitempty"`
	Preset   string               `json:"preset,omitempty" yaml:"preset,omitempty"`
	Theme    string               `json:"theme,omitempty" yaml:"theme,omitempty"`
	Variant  string               `json:"variant,omitempty" yaml:"variant,omitempty"`
	Submit   string               `json:"submit,omitempty" yaml:"submit,omitempty"`
	Summary  bool                 `json:"summary,omitempty" yaml:"summary,omitempty"`
	Hidden   []widget.HiddenField `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Fields   []FieldDefinition    `json:"fields" yaml:"fields"`
	// Source is the file the definition was loaded from.
	Source string `json:"-" yaml:"-"`
}

// FieldDefinition describes one attribute and the widget rendering it.
type FieldDefinition struct {
	Attribute   string          `json:"attribute" yaml:"attribute"`
	Widget      string          `json:"widget,omitempty" yaml:"widget,omitempty"`
	Label       string          `json:"label,omitempty" yaml:"label,omitempty"`
	Hint        string          `json:"hint,omitempty" yaml:"hint,omitempty"`
	Placeholder string          `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Value       any             `json:"value,omitempty" yaml:"value,omitempty"`
	Rules       RuleSet         `json:"rules,omitempty" yaml:"rules,omitempty"`
	Items       []widget.Item   `json:"items,omitempty" yaml:"items,omitempty"`
	Prompt      *widget.Item    `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Multiple    bool            `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Attributes  html.Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// RuleSet is the declarative rule block of a field.
type RuleSet struct {
	Required  bool     `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength int      `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength int      `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Integer   bool     `json:"integer,omitempty" yaml:"integer,omitempty"`
	Email     bool     `json:"email,omitempty" yaml:"email,omitempty"`
	URL       bool     `json:"url,omitempty" yaml:"url,omitempty"`
	Schemes   []string `json:"schemes,omitempty" yaml:"schemes,omitempty"`
}

// Rules converts the block into rule values.
func (r RuleSet) Rules() []rules.Rule {
	var out []rules.Rule
	if r.Required {
		out = append(out, rules.Required{})
	}
	if r.MinLength > 0 || r.MaxLength > 0 {
		out = append(out, rules.HasLength{Min: r.MinLength, Max: r.MaxLength})
	}
	if strings.TrimSpace(r.Pattern) != "" {
		out = append(out, rules.MatchRegularExpression{Pattern: r.Pattern})
	}
	if r.Min != nil || r.Max != nil || r.Integer {
		out = append(out, rules.Number{Min: r.Min, Max: r.Max, IntegerOnly: r.Integer})
	}
	if r.Email {
		out = append(out, rules.Email{})
	}
	if r.URL || len(r.Schemes) > 0 {
		out = append(out, rules.URL{ValidSchemes: append([]string(nil), r.Schemes...)})
	}
	return out
}

// Kind returns the widget kind, "" when the resolver should decide.
func (f FieldDefinition) Kind() widget.Kind {
	return widget.Kind(strings.ToLower(strings.TrimSpace(f.Widget)))
}

// Options converts the presentation settings into widget options.
func (f FieldDefinition) Options() []widget.Option {
	var opts []widget.Option
	if len(f.Items) > 0 {
		opts = append(opts, widget.WithItems(f.Items...))
	}
	if f.Prompt != nil {
		opts = append(opts, widget.WithPrompt(f.Prompt.Label, f.Prompt.Value))
	}
	if f.Multiple {
		opts = append(opts, widget.WithMultiple())
	}
	if len(f.Attributes) > 0 {
		opts = append(opts, widget.WithAttributes(f.Attributes))
	}
	return opts
}

// ModelAttribute converts the definition into a model attribute.
func (f FieldDefinition) ModelAttribute() model.Attribute {
	return model.Attribute{
		Name:        strings.TrimSpace(f.Attribute),
		Label:       f.Label,
		Hint:        f.Hint,
		Placeholder: f.Placeholder,
		Value:       f.Value,
		Rules:       f.Rules.Rules(),
	}
}

// Model builds a form model holding the definition's attributes and default
// values.
func (d FormDefinition) Model(options ...model.Option) *model.Form {
	opts := make([]model.Option, 0, len(d.Fields)+len(options))
	for _, def := range d.Fields {
		opts = append(opts, model.WithAttribute(def.ModelAttribute()))
	}
	opts = append(opts, options...)
	return model.New(d.FormName, opts...)
}

// Attributes lists the field attributes in declaration order.
func (d FormDefinition) Attributes() []string {
	out := make([]string, 0, len(d.Fields))
	for _, def := range d.Fields {
		out = append(out, strings.TrimSpace(def.Attribute))
	}
	return out
}

// Field returns the definition for attribute.
func (d FormDefinition) Field(attribute string) (FieldDefinition, bool) {
	for _, def := range d.Fields {
		if strings.TrimSpace(def.Attribute) == attribute {
			return def, true
		}
	}
	return FieldDefinition{}, false
}

// Preset is a named field configuration.
type Preset = field.Config
