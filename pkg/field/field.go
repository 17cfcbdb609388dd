package field

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/htmlform"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/widget"
)

// Option configures a Field.
type Option func(*Field)

// Field composes label, input, hint and error of one attribute inside a
// container. Like widgets, fields are immutable values.
type Field struct {
	model     model.FormModel
	attribute string
	config    Config

	kind         widget.Kind
	inputOptions []widget.Option
	resolver     *widget.Resolver

	labelOptions []widget.Option
	hintOptions  []widget.Option
	errorOptions []widget.Option

	containerAttrs html.Attributes
	noLabel        bool
	noHint         bool
	noError        bool
}

var _ widget.Widget = Field{}

// New creates a field for attribute. Without a kind shortcut the input kind
// is picked by the resolver.
func New(m model.FormModel, attribute string, options ...Option) Field {
	f := Field{
		model:     m,
		attribute: attribute,
		config:    DefaultConfig(),
	}
	return f.With(options...)
}

// With returns a copy with options applied.
func (f Field) With(options ...Option) Field {
	f.inputOptions = append([]widget.Option(nil), f.inputOptions...)
	f.labelOptions = append([]widget.Option(nil), f.labelOptions...)
	f.hintOptions = append([]widget.Option(nil), f.hintOptions...)
	f.errorOptions = append([]widget.Option(nil), f.errorOptions...)
	f.containerAttrs = f.containerAttrs.Clone()
	for _, opt := range options {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// WithConfig layers cfg over the current configuration.
func WithConfig(cfg Config) Option {
	return func(f *Field) {
		f.config = f.config.Merge(cfg)
	}
}

// WithTemplate replaces the part layout, e.g. "{input}\n{label}".
func WithTemplate(template string) Option {
	return func(f *Field) {
		f.config.Template = template
	}
}

// WithContainerAttributes sets attributes on the wrapper element.
func WithContainerAttributes(attrs html.Attributes) Option {
	return func(f *Field) {
		f.containerAttrs = f.containerAttrs.Merge(attrs)
	}
}

// WithInputOptions appends options for the input widget.
func WithInputOptions(options ...widget.Option) Option {
	return func(f *Field) {
		f.inputOptions = append(f.inputOptions, options...)
	}
}

func WithLabelOptions(options ...widget.Option) Option {
	return func(f *Field) {
		f.labelOptions = append(f.labelOptions, options...)
	}
}

func WithHintOptions(options ...widget.Option) Option {
	return func(f *Field) {
		f.hintOptions = append(f.hintOptions, options...)
	}
}

func WithErrorOptions(options ...widget.Option) Option {
	return func(f *Field) {
		f.errorOptions = append(f.errorOptions, options...)
	}
}

// WithLabel overrides the label text.
func WithLabel(text string) Option {
	return WithLabelOptions(widget.WithLabel(text))
}

// WithHint overrides the hint text.
func WithHint(text string) Option {
	return WithHintOptions(widget.WithMessage(text))
}

func WithoutLabel() Option { return func(f *Field) { f.noLabel = true } }
func WithoutHint() Option  { return func(f *Field) { f.noHint = true } }
func WithoutError() Option { return func(f *Field) { f.noError = true } }

// WithResolver sets the resolver used when no kind was chosen.
func WithResolver(resolver *widget.Resolver) Option {
	return func(f *Field) {
		f.resolver = resolver
	}
}

// WithKind fixes the input kind.
func WithKind(kind widget.Kind) Option {
	return func(f *Field) {
		f.kind = kind
	}
}

// Widget returns a copy rendering the given kind with extra input options.
func (f Field) Widget(kind widget.Kind, options ...widget.Option) Field {
	return f.With(WithKind(kind), WithInputOptions(options...))
}

func (f Field) Text(options ...widget.Option) Field {
	return f.Widget(widget.KindText, options...)
}

func (f Field) Password(options ...widget.Option) Field {
	return f.Widget(widget.KindPassword, options...)
}

func (f Field) Email(options ...widget.Option) Field {
	return f.Widget(widget.KindEmail, options...)
}

func (f Field) Telephone(options ...widget.Option) Field {
	return f.Widget(widget.KindTelephone, options...)
}

func (f Field) URL(options ...widget.Option) Field {
	return f.Widget(widget.KindURL, options...)
}

func (f Field) Search(options ...widget.Option) Field {
	return f.Widget(widget.KindSearch, options...)
}

func (f Field) Number(options ...widget.Option) Field {
	return f.Widget(widget.KindNumber, options...)
}

func (f Field) Range(options ...widget.Option) Field {
	return f.Widget(widget.KindRange, options...)
}

func (f Field) Date(options ...widget.Option) Field {
	return f.Widget(widget.KindDate, options...)
}

func (f Field) DateTimeLocal(options ...widget.Option) Field {
	return f.Widget(widget.KindDateTimeLocal, options...)
}

func (f Field) Time(options ...widget.Option) Field {
	return f.Widget(widget.KindTime, options...)
}

func (f Field) Month(options ...widget.Option) Field {
	return f.Widget(widget.KindMonth, options...)
}

func (f Field) Color(options ...widget.Option) Field {
	return f.Widget(widget.KindColor, options...)
}

func (f Field) Hidden(options ...widget.Option) Field {
	return f.Widget(widget.KindHidden, options...)
}

func (f Field) File(options ...widget.Option) Field {
	return f.Widget(widget.KindFile, options...)
}

func (f Field) Textarea(options ...widget.Option) Field {
	return f.Widget(widget.KindTextarea, options...)
}

func (f Field) Checkbox(options ...widget.Option) Field {
	return f.Widget(widget.KindCheckbox, options...)
}

func (f Field) Radio(options ...widget.Option) Field {
	return f.Widget(widget.KindRadio, options...)
}

func (f Field) CheckboxList(options ...widget.Option) Field {
	return f.Widget(widget.KindCheckboxList, options...)
}

func (f Field) RadioList(options ...widget.Option) Field {
	return f.Widget(widget.KindRadioList, options...)
}

func (f Field) Select(options ...widget.Option) Field {
	return f.Widget(widget.KindSelect, options...)
}

func (f Field) DropDownList(options ...widget.Option) Field {
	return f.Select(options...)
}

func (f Field) ListBox(options ...widget.Option) Field {
	return f.Widget(widget.KindListBox, options...)
}

// Config returns the effective configuration.
func (f Field) Config() Config { return f.config }

// Control returns the input widget the field renders.
func (f Field) Control() widget.Control {
	kind := f.kind
	if kind == "" {
		resolver := f.resolver
		if resolver == nil {
			resolver = defaultResolver
		}
		kind = resolver.Resolve(f.model, f.attribute)
	}
	return widget.New(kind, f.model, f.attribute, f.inputOptions...)
}

var defaultResolver = widget.NewResolver()

// Render produces the field markup.
func (f Field) Render() (string, error) {
	if f.model == nil {
		return "", fmt.Errorf("%w: field %q", widget.ErrNoModel, f.attribute)
	}
	control := f.Control()
	if control.Kind() == widget.KindHidden {
		return control.Render()
	}

	name, err := htmlform.AttributeName(f.attribute)
	if err != nil {
		return "", err
	}
	inputID, err := control.InputID()
	if err != nil {
		return "", err
	}

	errorsFound := f.model.Errors().Has(name)
	var decorations []widget.Option
	if class := f.config.InputClassFor(string(control.Kind())); class != "" {
		decorations = append(decorations, widget.WithClass(class))
	}
	switch {
	case errorsFound:
		decorations = append(decorations, widget.WithAttr("aria-invalid", "true"))
		if f.config.InvalidClass != "" {
			decorations = append(decorations, widget.WithClass(f.config.InvalidClass))
		}
	case f.model.Errors().Validated() && f.config.ValidClass != "":
		decorations = append(decorations, widget.WithClass(f.config.ValidClass))
	}

	hint, hintID, err := f.renderHint(inputID)
	if err != nil {
		return "", err
	}
	if hintID != "" {
		decorations = append(decorations, widget.WithAttr("aria-describedby", hintID))
	}

	input, err := widget.New(control.Kind(), f.model, f.attribute, decorations...).
		With(f.inputOptions...).
		Render()
	if err != nil {
		return "", err
	}

	label := ""
	if !f.noLabel && !control.OwnsLabel() {
		opts := []widget.Option{widget.WithFor(inputID)}
		if f.config.LabelClass != "" {
			opts = append(opts, widget.WithClass(f.config.LabelClass))
		}
		if label, err = widget.NewLabel(f.model, f.attribute, opts...).With(f.labelOptions...).Render(); err != nil {
			return "", err
		}
	}

	errorHTML := ""
	if !f.noError {
		opts := []widget.Option{}
		if f.config.ErrorClass != "" {
			opts = append(opts, widget.WithClass(f.config.ErrorClass))
		}
		if f.config.ErrorTag != "" {
			opts = append(opts, widget.WithTag(f.config.ErrorTag))
		}
		if errorHTML, err = widget.NewError(f.model, f.attribute, opts...).With(f.errorOptions...).Render(); err != nil {
			return "", err
		}
	}

	body := layout(f.config.template(), strings.NewReplacer(
		"{label}", label,
		"{input}", input,
		"{hint}", hint,
		"{error}", errorHTML,
	))

	tag := f.config.containerTag()
	if tag == "" {
		return body, nil
	}
	attrs := f.containerAttrs.Clone()
	if f.config.ContainerClass != "" {
		attrs = html.AddClass(attrs, f.config.ContainerClass)
	}
	return html.Tag(tag, "\n"+body+"\n", attrs), nil
}

func (f Field) renderHint(inputID string) (string, string, error) {
	if f.noHint || !strings.Contains(f.config.template(), "{hint}") {
		return "", "", nil
	}
	opts := []widget.Option{}
	if f.config.HintClass != "" {
		opts = append(opts, widget.WithClass(f.config.HintClass))
	}
	if f.config.HintTag != "" {
		opts = append(opts, widget.WithTag(f.config.HintTag))
	}
	hintID := ""
	if f.config.describedBy() && inputID != "" {
		hintID = inputID + "-help"
		opts = append(opts, widget.WithAttr("id", hintID))
	}
	hint, err := widget.NewHint(f.model, f.attribute, opts...).With(f.hintOptions...).Render()
	if err != nil || hint == "" {
		return "", "", err
	}
	return hint, hintID, nil
}

// layout substitutes the parts line by line, dropping template lines that
// end up blank. Newlines inside a part (textarea content) are preserved.
func layout(template string, parts *strings.Replacer) string {
	lines := strings.Split(template, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered := parts.Replace(line)
		if strings.TrimSpace(rendered) != "" {
			kept = append(kept, rendered)
		}
	}
	return strings.Join(kept, "\n")
}
