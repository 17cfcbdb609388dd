package field

import "strings"

// DefaultTemplate lays out the parts of a field, one per line. Lines left
// empty by missing parts are dropped.
const DefaultTemplate = "{label}\n{input}\n{hint}\n{error}"

// Config controls how a field wraps and decorates its parts. The zero value
// of each string means "not configured"; Merge lets presets layer on top of
// each other.
type Config struct {
	Template       string `json:"template,omitempty" yaml:"template,omitempty"`
	ContainerTag   string `json:"containerTag,omitempty" yaml:"containerTag,omitempty"`
	ContainerClass string `json:"containerClass,omitempty" yaml:"containerClass,omitempty"`
	LabelClass     string `json:"labelClass,omitempty" yaml:"labelClass,omitempty"`
	InputClass     string `json:"inputClass,omitempty" yaml:"inputClass,omitempty"`
	HintClass      string `json:"hintClass,omitempty" yaml:"hintClass,omitempty"`
	HintTag        string `json:"hintTag,omitempty" yaml:"hintTag,omitempty"`
	ErrorClass     string `json:"errorClass,omitempty" yaml:"errorClass,omitempty"`
	ErrorTag       string `json:"errorTag,omitempty" yaml:"errorTag,omitempty"`
	InvalidClass   string `json:"invalidClass,omitempty" yaml:"invalidClass,omitempty"`
	ValidClass     string `json:"validClass,omitempty" yaml:"validClass,omitempty"`

	// InputClasses replaces InputClass for specific widget kinds, e.g.
	// "select" or "checkbox".
	InputClasses map[string]string `json:"inputClasses,omitempty" yaml:"inputClasses,omitempty"`

	// AriaDescribedBy links the input to its hint through aria-describedby.
	AriaDescribedBy *bool `json:"ariaDescribedBy,omitempty" yaml:"ariaDescribedBy,omitempty"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	enabled := true
	return Config{
		Template:        DefaultTemplate,
		ContainerTag:    "div",
		HintTag:         "div",
		ErrorTag:        "div",
		AriaDescribedBy: &enabled,
	}
}

// Merge returns c with every configured value of other applied on top.
func (c Config) Merge(other Config) Config {
	override := func(dst *string, src string) {
		if strings.TrimSpace(src) != "" {
			*dst = src
		}
	}
	override(&c.Template, other.Template)
	override(&c.ContainerTag, other.ContainerTag)
	override(&c.ContainerClass, other.ContainerClass)
	override(&c.LabelClass, other.LabelClass)
	override(&c.InputClass, other.InputClass)
	override(&c.HintClass, other.HintClass)
	override(&c.HintTag, other.HintTag)
	override(&c.ErrorClass, other.ErrorClass)
	override(&c.ErrorTag, other.ErrorTag)
	override(&c.InvalidClass, other.InvalidClass)
	override(&c.ValidClass, other.ValidClass)
	if len(other.InputClasses) > 0 {
		merged := make(map[string]string, len(c.InputClasses)+len(other.InputClasses))
		for kind, class := range c.InputClasses {
			merged[kind] = class
		}
		for kind, class := range other.InputClasses {
			merged[strings.ToLower(strings.TrimSpace(kind))] = class
		}
		c.InputClasses = merged
	}
	if other.AriaDescribedBy != nil {
		value := *other.AriaDescribedBy
		c.AriaDescribedBy = &value
	}
	return c
}

func (c Config) describedBy() bool {
	return c.AriaDescribedBy == nil || *c.AriaDescribedBy
}

// containerTag treats "none" as an explicit request for no wrapper, since an
// empty value means "inherit" when merging.
func (c Config) containerTag() string {
	tag := strings.TrimSpace(c.ContainerTag)
	if strings.EqualFold(tag, "none") {
		return ""
	}
	return tag
}

// InputClassFor returns the input class for a widget kind.
func (c Config) InputClassFor(kind string) string {
	if class, ok := c.InputClasses[kind]; ok {
		return class
	}
	return c.InputClass
}

func (c Config) template() string {
	if c.Template == "" {
		return DefaultTemplate
	}
	return c.Template
}
