package widget

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/htmlform"
	"github.com/goliatone/go-formfields/pkg/rules"
)

const (
	defaultCheckedValue = "1"
	defaultUncheckValue = "0"
	defaultListBoxSize  = 4
)

// NewDefaultRegistry returns a registry populated with the built-in kinds.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()

	textLike := []Kind{KindText, KindEmail, KindTelephone, KindSearch}
	for _, kind := range textLike {
		registry.MustRegister(kind, Descriptor{
			Render:      inputRenderer(string(kind)),
			Rules:       rules.TextLike,
			Placeholder: true,
			Accept:      acceptString,
			Expect:      "a string or nil",
		})
	}
	registry.MustRegister(KindURL, Descriptor{
		Render:      inputRenderer("url"),
		Rules:       rules.URLInputs,
		Placeholder: true,
		Accept:      acceptString,
		Expect:      "a string or nil",
	})
	registry.MustRegister(KindPassword, Descriptor{
		Render:      passwordRenderer,
		Rules:       rules.TextLike,
		Placeholder: true,
		Accept:      acceptString,
		Expect:      "a string or nil",
	})

	for _, kind := range []Kind{KindNumber, KindRange} {
		registry.MustRegister(kind, Descriptor{
			Render:      inputRenderer(string(kind)),
			Rules:       rules.Range,
			Placeholder: kind == KindNumber,
			Accept:      acceptNumeric,
			Expect:      "a number, a numeric string or nil",
		})
	}

	for _, kind := range []Kind{KindDate, KindDateTimeLocal, KindTime, KindMonth, KindColor} {
		registry.MustRegister(kind, Descriptor{
			Render: inputRenderer(string(kind)),
			Rules:  rules.None,
			Accept: acceptString,
			Expect: "a string or nil",
		})
	}

	registry.MustRegister(KindHidden, Descriptor{
		Render:       inputRenderer("hidden"),
		Rules:        rules.None,
		SkipRequired: true,
		Accept:       acceptScalar,
		Expect:       "a scalar or nil",
	})
	registry.MustRegister(KindFile, Descriptor{
		Render: fileRenderer,
		Rules:  rules.None,
	})
	registry.MustRegister(KindTextarea, Descriptor{
		Render:      textareaRenderer,
		Rules:       rules.Length,
		Placeholder: true,
		Accept:      acceptString,
		Expect:      "a string or nil",
	})

	registry.MustRegister(KindCheckbox, Descriptor{
		Render: checkRenderer("checkbox"),
		Rules:  rules.None,
		Accept: acceptScalar,
		Expect: "a scalar or nil",
	})
	registry.MustRegister(KindRadio, Descriptor{
		Render: checkRenderer("radio"),
		Rules:  rules.None,
		Accept: acceptScalar,
		Expect: "a scalar or nil",
	})
	registry.MustRegister(KindCheckboxList, Descriptor{
		Render: listRenderer("checkbox"),
		Rules:  rules.None,
		Accept: acceptList,
		Expect: "a slice or nil",
	})
	registry.MustRegister(KindRadioList, Descriptor{
		Render: listRenderer("radio"),
		Rules:  rules.None,
		Accept: acceptScalar,
		Expect: "a scalar or nil",
	})

	for _, kind := range []Kind{KindSelect, KindListBox} {
		registry.MustRegister(kind, Descriptor{
			Render: selectRenderer,
			Rules:  rules.None,
			Accept: acceptSelect,
			Expect: "a scalar, or a slice when multiple",
		})
	}

	return registry
}

func inputRenderer(inputType string) RenderFunc {
	return func(buf *bytes.Buffer, ctx RenderContext) error {
		attrs := ctx.Attributes.With("type", inputType)
		if !attrs.Has("value") {
			if value, ok := html.Stringify(ctx.Value); ok {
				attrs["value"] = value
			}
		}
		buf.WriteString(html.Void("input", cleanAttributes(attrs)))
		return nil
	}
}

func passwordRenderer(buf *bytes.Buffer, ctx RenderContext) error {
	attrs := ctx.Attributes.With("type", "password")
	buf.WriteString(html.Void("input", cleanAttributes(attrs)))
	return nil
}

func fileRenderer(buf *bytes.Buffer, ctx RenderContext) error {
	attrs := ctx.Attributes.With("type", "file")
	delete(attrs, "value")
	name := ctx.Name
	if ctx.Settings.Multiple {
		attrs["multiple"] = true
		if name != "" && !strings.HasSuffix(name, "[]") {
			attrs["name"] = name + "[]"
		}
	}
	if ctx.Settings.UncheckValue != nil && !ctx.Settings.NoUncheck {
		buf.WriteString(hiddenInput(name, *ctx.Settings.UncheckValue, attrs))
		buf.WriteByte('\n')
	}
	buf.WriteString(html.Void("input", cleanAttributes(attrs)))
	return nil
}

func textareaRenderer(buf *bytes.Buffer, ctx RenderContext) error {
	attrs := ctx.Attributes.Without("value", "type")
	content := ""
	if value, ok := html.Stringify(ctx.Value); ok {
		content = html.Encode(value)
	}
	buf.WriteString(html.Tag("textarea", content, cleanAttributes(attrs)))
	return nil
}

func checkRenderer(inputType string) RenderFunc {
	return func(buf *bytes.Buffer, ctx RenderContext) error {
		settings := ctx.Settings
		value := defaultCheckedValue
		if settings.Value != nil {
			if v, ok := html.Stringify(settings.Value); ok {
				value = v
			}
		}

		attrs := ctx.Attributes.With("type", inputType)
		attrs["value"] = value
		if current, ok := html.Stringify(ctx.Value); ok && current == value {
			attrs["checked"] = true
		}

		uncheck := settings.UncheckValue
		if uncheck == nil && inputType == "checkbox" {
			uncheck = stringPtr(defaultUncheckValue)
		}
		if uncheck != nil && !settings.NoUncheck {
			buf.WriteString(hiddenInput(ctx.Name, *uncheck, attrs))
			buf.WriteByte('\n')
		}

		input := html.Void("input", cleanAttributes(attrs))
		enclosed := settings.EnclosedByLabel == nil || *settings.EnclosedByLabel
		if !enclosed {
			buf.WriteString(input)
			return nil
		}

		label := htmlform.AttributeLabel(ctx.Model, ctx.Attribute)
		if settings.Label != nil {
			label = *settings.Label
		}
		if label == "" {
			buf.WriteString(input)
			return nil
		}
		buf.WriteString(html.Tag("label", input+" "+html.Content(label, settings.Encode), settings.LabelAttributes))
		return nil
	}
}

// listPerItem lists the control attributes copied onto each list input.
var listPerItem = []string{"disabled", "readonly", "form"}

func listRenderer(inputType string) RenderFunc {
	return func(buf *bytes.Buffer, ctx RenderContext) error {
		settings := ctx.Settings
		name := ctx.Name
		itemName := name
		if inputType == "checkbox" && name != "" && !strings.HasSuffix(name, "[]") {
			itemName = name + "[]"
		}

		itemAttrs := html.Attributes{}
		for _, key := range listPerItem {
			if v, ok := ctx.Attributes[key]; ok {
				itemAttrs[key] = v
			}
		}
		if inputType == "radio" {
			if v, ok := ctx.Attributes["required"]; ok {
				itemAttrs["required"] = v
			}
		}
		itemAttrs = itemAttrs.Merge(settings.ItemAttributes)

		containerAttrs := ctx.Attributes.Without(append([]string{"name", "required", "value", "type"}, listPerItem...)...)
		containerAttrs = containerAttrs.Merge(settings.ContainerAttributes)

		selected := selectedValues(ctx.Value)
		separator := valueOr(settings.Separator, "\n")

		lines := make([]string, 0, len(settings.Items))
		for index, item := range settings.Items {
			_, checked := selected[item.Value]
			attrs := itemAttrs.Merge(item.Attributes)
			attrs["type"] = inputType
			attrs["name"] = itemName
			attrs["value"] = item.Value
			if checked {
				attrs["checked"] = true
			}
			if settings.ItemFormatter != nil {
				lines = append(lines, settings.ItemFormatter(ItemContext{
					Index:      index,
					Item:       item,
					Type:       inputType,
					Name:       itemName,
					Checked:    checked,
					Encode:     settings.Encode,
					Attributes: attrs,
				}))
				continue
			}
			input := html.Void("input", cleanAttributes(attrs))
			lines = append(lines, html.Tag("label", input+" "+html.Content(item.Label, settings.Encode), nil))
		}

		if settings.UncheckValue != nil && !settings.NoUncheck {
			buf.WriteString(hiddenInput(name, *settings.UncheckValue, itemAttrs))
			buf.WriteByte('\n')
		}

		tag := valueOr(settings.ContainerTag, "div")
		body := strings.Join(lines, separator)
		if tag == "" {
			buf.WriteString(body)
			return nil
		}
		if body != "" {
			body = "\n" + body + "\n"
		}
		buf.WriteString(html.Tag(tag, body, cleanAttributes(containerAttrs)))
		return nil
	}
}

func selectRenderer(buf *bytes.Buffer, ctx RenderContext) error {
	settings := ctx.Settings
	attrs := ctx.Attributes.Without("value", "type")
	name := ctx.Name

	multiple := settings.Multiple
	if v, ok := attrs["multiple"].(bool); ok && v {
		multiple = true
	}
	if multiple {
		attrs["multiple"] = true
		if name != "" && !strings.HasSuffix(name, "[]") {
			attrs["name"] = name + "[]"
		}
	}
	if ctx.Kind == KindListBox && !attrs.Has("size") {
		attrs["size"] = defaultListBoxSize
	}

	if settings.UnselectValue != nil {
		buf.WriteString(hiddenInput(name, *settings.UnselectValue, attrs))
		buf.WriteByte('\n')
	}

	selected := selectedValues(ctx.Value)
	lines := []string{html.Open("select", cleanAttributes(attrs))}
	if settings.Prompt != nil {
		lines = append(lines, renderOption(*settings.Prompt, selected, settings.Encode))
	}
	for _, item := range settings.Items {
		if item.IsGroup() {
			lines = append(lines, renderGroup(item, selected, settings.Encode)...)
			continue
		}
		lines = append(lines, renderOption(item, selected, settings.Encode))
	}
	lines = append(lines, html.Close("select"))
	buf.WriteString(strings.Join(lines, "\n"))
	return nil
}

func renderGroup(group Item, selected map[string]struct{}, encode bool) []string {
	attrs := group.Attributes.With("label", group.Label)
	lines := []string{html.Open("optgroup", attrs)}
	for _, option := range group.Options {
		if option.IsGroup() {
			lines = append(lines, renderGroup(option, selected, encode)...)
			continue
		}
		lines = append(lines, renderOption(option, selected, encode))
	}
	return append(lines, html.Close("optgroup"))
}

func renderOption(item Item, selected map[string]struct{}, encode bool) string {
	attrs := item.Attributes.With("value", item.Value)
	if _, ok := selected[item.Value]; ok {
		attrs["selected"] = true
	}
	return html.Tag("option", html.Content(item.Label, encode), attrs)
}

func hiddenInput(name, value string, source html.Attributes) string {
	attrs := html.Attributes{"type": "hidden", "name": name, "value": value}
	for _, key := range []string{"disabled", "form"} {
		if v, ok := source[key]; ok {
			attrs[key] = v
		}
	}
	return html.Void("input", cleanAttributes(attrs))
}

// selectedValues stringifies a scalar or slice model value into a set.
func selectedValues(value any) map[string]struct{} {
	out := make(map[string]struct{})
	if value == nil {
		return out
	}
	if s, ok := html.Stringify(value); ok {
		out[s] = struct{}{}
		return out
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return out
	}
	for i := 0; i < rv.Len(); i++ {
		if s, ok := html.Stringify(rv.Index(i).Interface()); ok {
			out[s] = struct{}{}
		}
	}
	return out
}

func acceptString(value any, _ *Settings) bool {
	switch value.(type) {
	case nil, string, fmt.Stringer:
		return true
	}
	return false
}

func acceptNumeric(value any, _ *Settings) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		if strings.TrimSpace(v) == "" {
			return true
		}
		_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

func acceptScalar(value any, _ *Settings) bool {
	if value == nil {
		return true
	}
	_, ok := html.Stringify(value)
	return ok
}

func acceptList(value any, _ *Settings) bool {
	if value == nil {
		return true
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func acceptSelect(value any, settings *Settings) bool {
	if settings != nil {
		if multiple, _ := settings.Attributes["multiple"].(bool); settings.Multiple || multiple {
			return acceptList(value, settings)
		}
	}
	return acceptScalar(value, settings)
}
