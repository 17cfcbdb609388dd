package widget

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/htmlform"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/rules"
)

// Kind names a control component.
type Kind string

const (
	KindText          Kind = "text"
	KindPassword      Kind = "password"
	KindEmail         Kind = "email"
	KindTelephone     Kind = "tel"
	KindURL           Kind = "url"
	KindSearch        Kind = "search"
	KindNumber        Kind = "number"
	KindRange         Kind = "range"
	KindDate          Kind = "date"
	KindDateTimeLocal Kind = "datetime-local"
	KindTime          Kind = "time"
	KindMonth         Kind = "month"
	KindColor         Kind = "color"
	KindHidden        Kind = "hidden"
	KindFile          Kind = "file"
	KindTextarea      Kind = "textarea"
	KindCheckbox      Kind = "checkbox"
	KindRadio         Kind = "radio"
	KindCheckboxList  Kind = "checkboxlist"
	KindRadioList     Kind = "radiolist"
	KindSelect        Kind = "select"
	KindListBox       Kind = "listbox"
)

// Widget is anything that renders markup.
type Widget interface {
	Render() (string, error)
}

// Control is an input bound to a model attribute. Controls are immutable:
// With returns a new control and leaves the receiver untouched.
type Control struct {
	kind      Kind
	model     model.FormModel
	attribute string
	options   []Option
}

var _ Widget = Control{}

// New creates a control of the given kind for attribute.
func New(kind Kind, m model.FormModel, attribute string, options ...Option) Control {
	return Control{
		kind:      kind,
		model:     m,
		attribute: attribute,
		options:   cloneOptions(nil, options),
	}
}

func Text(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindText, m, attribute, options...)
}

func Password(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindPassword, m, attribute, options...)
}

func Email(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindEmail, m, attribute, options...)
}

func Telephone(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindTelephone, m, attribute, options...)
}

func URL(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindURL, m, attribute, options...)
}

func Search(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindSearch, m, attribute, options...)
}

func Number(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindNumber, m, attribute, options...)
}

func Range(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindRange, m, attribute, options...)
}

func Date(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindDate, m, attribute, options...)
}

func DateTimeLocal(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindDateTimeLocal, m, attribute, options...)
}

func Time(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindTime, m, attribute, options...)
}

func Month(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindMonth, m, attribute, options...)
}

func Color(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindColor, m, attribute, options...)
}

func Hidden(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindHidden, m, attribute, options...)
}

func File(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindFile, m, attribute, options...)
}

func Textarea(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindTextarea, m, attribute, options...)
}

// Checkbox renders a single checkbox, by default enclosed in its label and
// preceded by a hidden input submitting "0" when unchecked.
func Checkbox(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindCheckbox, m, attribute, options...)
}

func Radio(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindRadio, m, attribute, options...)
}

func CheckboxList(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindCheckboxList, m, attribute, options...)
}

func RadioList(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindRadioList, m, attribute, options...)
}

func Select(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindSelect, m, attribute, options...)
}

// DropDownList is an alias of Select kept for familiarity.
func DropDownList(m model.FormModel, attribute string, options ...Option) Control {
	return Select(m, attribute, options...)
}

// ListBox is a select showing several rows at once (4 unless sized).
func ListBox(m model.FormModel, attribute string, options ...Option) Control {
	return New(KindListBox, m, attribute, options...)
}

// With returns a copy of the control with extra options applied after the
// existing ones.
func (c Control) With(options ...Option) Control {
	c.options = cloneOptions(c.options, options)
	return c
}

func (c Control) Kind() Kind                 { return c.kind }
func (c Control) Attribute() string          { return c.attribute }
func (c Control) Model() model.FormModel     { return c.model }
func (c Control) Settings() Settings         { return newSettings(c.options) }
func (c Control) registry() *Registry        { return registryFrom(c.Settings()) }
func registryFrom(s Settings) *Registry {
	if s.Registry != nil {
		return s.Registry
	}
	return DefaultRegistry()
}

// OwnsLabel reports whether the control renders its own label, which is the
// case for checkboxes and radios enclosed by their label.
func (c Control) OwnsLabel() bool {
	if c.kind != KindCheckbox && c.kind != KindRadio {
		return false
	}
	settings := c.Settings()
	return settings.EnclosedByLabel == nil || *settings.EnclosedByLabel
}

// InputID returns the id the control renders with, "" when suppressed.
func (c Control) InputID() (string, error) {
	if c.model == nil {
		return "", fmt.Errorf("%w: %s widget for %q", ErrNoModel, c.kind, c.attribute)
	}
	settings := c.Settings()
	if id, ok := settings.Attributes["id"].(string); ok {
		return id, nil
	}
	if settings.ID != nil {
		return *settings.ID, nil
	}
	return htmlform.InputID(c.model, c.attribute)
}

// Render produces the control markup.
func (c Control) Render() (string, error) {
	if c.model == nil {
		return "", fmt.Errorf("%w: %s widget for %q", ErrNoModel, c.kind, c.attribute)
	}
	descriptor, ok := c.registry().Descriptor(c.kind)
	if !ok {
		return "", fmt.Errorf("widget: kind %q is not registered", c.kind)
	}

	ctx, err := c.context(descriptor)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := descriptor.Render(&buf, ctx); err != nil {
		return "", fmt.Errorf("widget: render %s for %q: %w", c.kind, c.attribute, err)
	}
	return buf.String(), nil
}

func (c Control) context(descriptor Descriptor) (RenderContext, error) {
	settings := c.Settings()

	attrName, err := htmlform.AttributeName(c.attribute)
	if err != nil {
		return RenderContext{}, err
	}
	value, err := htmlform.AttributeValue(c.model, c.attribute)
	if err != nil {
		return RenderContext{}, err
	}
	if descriptor.Accept != nil && !descriptor.Accept(value, &settings) {
		return RenderContext{}, &ValueError{
			Kind:      c.kind,
			Attribute: c.attribute,
			Expected:  descriptor.Expect,
			Value:     value,
		}
	}

	name := valueOr(settings.Name, "")
	if settings.Name == nil {
		if name, err = htmlform.InputName(c.model, c.attribute); err != nil {
			return RenderContext{}, err
		}
	}
	id := valueOr(settings.ID, "")
	if settings.ID == nil {
		if id, err = htmlform.InputID(c.model, c.attribute); err != nil {
			return RenderContext{}, err
		}
	}

	attrs := rules.Attributes(c.model.Rules(attrName), descriptor.Rules)
	if descriptor.SkipRequired {
		delete(attrs, "required")
	}
	if descriptor.Placeholder {
		if placeholder := c.model.AttributePlaceholder(attrName); placeholder != "" {
			attrs["placeholder"] = placeholder
		}
	}
	attrs["name"] = name
	if id != "" {
		attrs["id"] = id
	}
	attrs = attrs.Merge(settings.Attributes)
	if v, ok := attrs["id"].(string); ok {
		id = v
	}
	if v, ok := attrs["name"].(string); ok {
		name = v
	}

	return RenderContext{
		Kind:          c.kind,
		Model:         c.model,
		Attribute:     c.attribute,
		AttributeName: attrName,
		Name:          name,
		ID:            id,
		Value:         value,
		Attributes:    attrs,
		Settings:      settings,
	}, nil
}

// cleanAttributes drops empty id/name values so suppressed ids do not render
// as id="".
func cleanAttributes(attrs html.Attributes) html.Attributes {
	out := attrs.Clone()
	for _, key := range []string{"id", "name"} {
		if v, ok := out[key].(string); ok && v == "" {
			delete(out, key)
		}
	}
	return out
}
