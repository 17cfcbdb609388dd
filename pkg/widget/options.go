package widget

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/html"
)

// Option configures a widget. Options never mutate a rendered widget: With
// returns a copy carrying the extra options.
type Option func(*Settings)

// Settings is the resolved option set handed to component renderers. Custom
// components registered on a Registry read the fields they care about.
type Settings struct {
	Attributes html.Attributes

	ID     *string
	Name   *string
	For    *string
	Encode bool

	// Checkbox and radio options.
	Value           any
	UncheckValue    *string
	NoUncheck       bool
	Label           *string
	LabelAttributes html.Attributes
	EnclosedByLabel *bool

	// List and select options.
	Items               []Item
	ItemAttributes      html.Attributes
	Separator           *string
	ItemFormatter       ItemFormatter
	ContainerTag        *string
	ContainerAttributes html.Attributes
	Prompt              *Item
	UnselectValue       *string
	Multiple            bool

	// Label, hint, error and summary options.
	Tag            *string
	Message        *string
	Header         *string
	Footer         *string
	ShowAllErrors  bool
	OnlyAttributes []string
	ListAttributes html.Attributes

	// Form options.
	HiddenFields []HiddenField

	Registry *Registry
}

func newSettings(options []Option) Settings {
	settings := Settings{
		Attributes: html.Attributes{},
		Encode:     true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&settings)
		}
	}
	return settings
}

func cloneOptions(base []Option, extra []Option) []Option {
	out := make([]Option, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}

func stringPtr(value string) *string {
	return &value
}

func valueOr(ptr *string, fallback string) string {
	if ptr == nil {
		return fallback
	}
	return *ptr
}

// WithAttributes merges attrs into the widget attributes; classes accumulate.
func WithAttributes(attrs html.Attributes) Option {
	return func(s *Settings) {
		s.Attributes = s.Attributes.Merge(attrs)
	}
}

// WithAttr sets a single attribute.
func WithAttr(name string, value any) Option {
	return func(s *Settings) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if name == "class" {
			s.Attributes = s.Attributes.Merge(html.Attributes{"class": value})
			return
		}
		s.Attributes = s.Attributes.With(name, value)
	}
}

// WithClass appends CSS classes.
func WithClass(classes ...string) Option {
	return func(s *Settings) {
		s.Attributes = html.AddClass(s.Attributes, classes...)
	}
}

// WithID overrides the derived element id.
func WithID(id string) Option {
	return func(s *Settings) {
		s.ID = stringPtr(id)
	}
}

// WithoutID suppresses the id attribute.
func WithoutID() Option {
	return WithID("")
}

// WithName overrides the derived input name.
func WithName(name string) Option {
	return func(s *Settings) {
		s.Name = stringPtr(name)
	}
}

// WithFor overrides the label target id.
func WithFor(id string) Option {
	return func(s *Settings) {
		s.For = stringPtr(id)
	}
}

// WithPlaceholder sets the placeholder attribute, overriding the model.
func WithPlaceholder(text string) Option {
	return WithAttr("placeholder", text)
}

// WithAutofocus sets the autofocus attribute.
func WithAutofocus() Option {
	return WithAttr("autofocus", true)
}

// WithDisabled sets the disabled attribute.
func WithDisabled() Option {
	return WithAttr("disabled", true)
}

// WithReadOnly sets the readonly attribute.
func WithReadOnly() Option {
	return WithAttr("readonly", true)
}

// WithRequired forces the required attribute regardless of model rules.
func WithRequired() Option {
	return WithAttr("required", true)
}

// WithEncode toggles HTML encoding of labels, hints and messages. Disabled
// encoding still sanitises the markup.
func WithEncode(encode bool) Option {
	return func(s *Settings) {
		s.Encode = encode
	}
}

// WithValue sets the value submitted by a checkbox or radio when checked.
func WithValue(value any) Option {
	return func(s *Settings) {
		s.Value = value
	}
}

// WithUncheckValue emits a hidden input submitting value when the control is
// left unchecked or nothing is selected.
func WithUncheckValue(value string) Option {
	return func(s *Settings) {
		s.UncheckValue = stringPtr(value)
		s.NoUncheck = false
	}
}

// WithoutUncheck drops the hidden uncheck input.
func WithoutUncheck() Option {
	return func(s *Settings) {
		s.UncheckValue = nil
		s.NoUncheck = true
	}
}

// WithLabel overrides the label text taken from the model.
func WithLabel(text string) Option {
	return func(s *Settings) {
		s.Label = stringPtr(text)
	}
}

// WithLabelAttributes sets attributes on the label element.
func WithLabelAttributes(attrs html.Attributes) Option {
	return func(s *Settings) {
		s.LabelAttributes = s.LabelAttributes.Merge(attrs)
	}
}

// WithEnclosedByLabel controls whether a checkbox or radio is wrapped in its
// own label.
func WithEnclosedByLabel(enclosed bool) Option {
	return func(s *Settings) {
		s.EnclosedByLabel = &enclosed
	}
}

// WithItems sets the options of lists and selects.
func WithItems(items ...Item) Option {
	return func(s *Settings) {
		s.Items = append([]Item(nil), items...)
	}
}

// WithItemAttributes applies attrs to every list input.
func WithItemAttributes(attrs html.Attributes) Option {
	return func(s *Settings) {
		s.ItemAttributes = s.ItemAttributes.Merge(attrs)
	}
}

// WithSeparator sets the markup placed between list items.
func WithSeparator(separator string) Option {
	return func(s *Settings) {
		s.Separator = stringPtr(separator)
	}
}

// WithItemFormatter replaces the default list item markup.
func WithItemFormatter(formatter ItemFormatter) Option {
	return func(s *Settings) {
		s.ItemFormatter = formatter
	}
}

// WithContainer sets the tag and attributes wrapping list items. An empty tag
// renders the items unwrapped.
func WithContainer(tag string, attrs html.Attributes) Option {
	return func(s *Settings) {
		s.ContainerTag = stringPtr(strings.TrimSpace(tag))
		s.ContainerAttributes = s.ContainerAttributes.Merge(attrs)
	}
}

// WithPrompt prepends a placeholder option to a select.
func WithPrompt(label, value string) Option {
	return func(s *Settings) {
		s.Prompt = &Item{Value: value, Label: label}
	}
}

// WithUnselectValue emits a hidden input submitted when a select has no
// selection.
func WithUnselectValue(value string) Option {
	return func(s *Settings) {
		s.UnselectValue = stringPtr(value)
	}
}

// WithMultiple allows multiple selections.
func WithMultiple() Option {
	return func(s *Settings) {
		s.Multiple = true
	}
}

// WithSize sets the visible rows of a select.
func WithSize(size int) Option {
	return WithAttr("size", size)
}

// WithRegistry renders controls through a custom component registry.
func WithRegistry(registry *Registry) Option {
	return func(s *Settings) {
		s.Registry = registry
	}
}

// WithTag sets the wrapper tag of hints, errors and summaries.
func WithTag(tag string) Option {
	return func(s *Settings) {
		s.Tag = stringPtr(strings.TrimSpace(tag))
	}
}

// WithMessage overrides hint or error content.
func WithMessage(message string) Option {
	return func(s *Settings) {
		s.Message = stringPtr(message)
	}
}

// WithHeader sets the error summary header.
func WithHeader(header string) Option {
	return func(s *Settings) {
		s.Header = stringPtr(header)
	}
}

// WithFooter sets the error summary footer.
func WithFooter(footer string) Option {
	return func(s *Settings) {
		s.Footer = stringPtr(footer)
	}
}

// WithShowAllErrors lists every message rather than the first per attribute.
func WithShowAllErrors() Option {
	return func(s *Settings) {
		s.ShowAllErrors = true
	}
}

// WithOnlyAttributes restricts an error summary to the given attributes.
func WithOnlyAttributes(attributes ...string) Option {
	return func(s *Settings) {
		s.OnlyAttributes = append([]string(nil), attributes...)
	}
}

// WithListAttributes sets attributes on the error summary list.
func WithListAttributes(attrs html.Attributes) Option {
	return func(s *Settings) {
		s.ListAttributes = s.ListAttributes.Merge(attrs)
	}
}

// WithHiddenFields appends hidden inputs emitted after the form open tag.
func WithHiddenFields(fields ...HiddenField) Option {
	return func(s *Settings) {
		s.HiddenFields = append(s.HiddenFields, fields...)
	}
}

// WithCSRF adds a hidden CSRF token input.
func WithCSRF(name, token string) Option {
	return WithHiddenFields(CSRFToken(name, token))
}
