package widget

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formfields/pkg/html"
)

// MethodField is the hidden input carrying a spoofed HTTP method.
const MethodField = "_method"

// HiddenField is a hidden input emitted right after the form open tag.
type HiddenField struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// HiddenInput returns a HiddenField for an arbitrary name/value pair.
func HiddenInput(name string, value any) HiddenField {
	text, ok := html.Stringify(value)
	if !ok && value != nil {
		text = fmt.Sprint(value)
	}
	return HiddenField{Name: strings.TrimSpace(name), Value: text}
}

// CSRFToken builds the hidden field carrying a token issued elsewhere, under
// the name the backend expects ("_csrf", "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return HiddenInput(name, token)
}

// VersionField builds a hidden field used for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return HiddenInput(name, version)
}

// MergeHiddenFields returns base with fields applied. Empty names are
// skipped and later fields win on collisions; first-seen order is kept.
func MergeHiddenFields(base []HiddenField, fields ...HiddenField) []HiddenField {
	index := make(map[string]int, len(base)+len(fields))
	var out []HiddenField
	for _, field := range append(append([]HiddenField(nil), base...), fields...) {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		field.Name = name
		if at, ok := index[name]; ok {
			out[at] = field
			continue
		}
		index[name] = len(out)
		out = append(out, field)
	}
	return out
}

// SortedHiddenFields turns a name=>value map into fields sorted by name.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: strings.TrimSpace(name), Value: fields[name]})
	}
	return out
}

// Form renders the opening and closing form tags.
type Form struct {
	action  string
	method  string
	options []Option
}

var _ Widget = Form{}

// NewForm creates a form posting to action. Methods other than GET and POST
// render as POST with a hidden _method input.
func NewForm(action, method string, options ...Option) Form {
	return Form{action: action, method: method, options: cloneOptions(nil, options)}
}

func (f Form) With(options ...Option) Form {
	f.options = cloneOptions(f.options, options)
	return f
}

// Method returns the normalised method the form was created with.
func (f Form) Method() string {
	method := strings.ToLower(strings.TrimSpace(f.method))
	if method == "" {
		return "post"
	}
	return method
}

func (f Form) Action() string { return f.action }

// Begin renders the opening tag followed by the hidden inputs.
func (f Form) Begin() (string, error) {
	settings := newSettings(f.options)
	method := f.Method()

	var hidden []HiddenField
	action := f.action
	attrs := settings.Attributes.Clone()

	switch method {
	case "get":
		// Browsers drop the action query string on GET submissions.
		if idx := strings.IndexByte(action, '?'); idx >= 0 {
			query, err := url.ParseQuery(action[idx+1:])
			if err != nil {
				return "", fmt.Errorf("widget: form action query: %w", err)
			}
			action = action[:idx]
			keys := make([]string, 0, len(query))
			for key := range query {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				for _, value := range query[key] {
					hidden = append(hidden, HiddenField{Name: key, Value: value})
				}
			}
		}
		attrs["method"] = "get"
	case "post":
		attrs["method"] = "post"
	default:
		attrs["method"] = "post"
		hidden = append(hidden, HiddenField{Name: MethodField, Value: strings.ToUpper(method)})
	}
	if action != "" {
		attrs["action"] = action
	}

	hidden = append(hidden, settings.HiddenFields...)
	lines := []string{html.Open("form", attrs)}
	for _, field := range hidden {
		if strings.TrimSpace(field.Name) == "" {
			continue
		}
		lines = append(lines, html.Void("input", html.Attributes{
			"type":  "hidden",
			"name":  field.Name,
			"value": field.Value,
		}))
	}
	return strings.Join(lines, "\n"), nil
}

// End renders the closing tag.
func (f Form) End() string {
	return html.Close("form")
}

// Render returns Begin and End joined, for forms whose content is rendered
// separately.
func (f Form) Render() (string, error) {
	begin, err := f.Begin()
	if err != nil {
		return "", err
	}
	return begin + "\n" + f.End(), nil
}

// Button renders a button element.
type Button struct {
	buttonType string
	content    string
	options    []Option
}

var _ Widget = Button{}

// NewButton creates a plain button (type="button").
func NewButton(content string, options ...Option) Button {
	return Button{buttonType: "button", content: content, options: cloneOptions(nil, options)}
}

func SubmitButton(content string, options ...Option) Button {
	return Button{buttonType: "submit", content: content, options: cloneOptions(nil, options)}
}

func ResetButton(content string, options ...Option) Button {
	return Button{buttonType: "reset", content: content, options: cloneOptions(nil, options)}
}

func (b Button) With(options ...Option) Button {
	b.options = cloneOptions(b.options, options)
	return b
}

func (b Button) Render() (string, error) {
	settings := newSettings(b.options)
	attrs := settings.Attributes.With("type", b.buttonType)
	if settings.ID != nil && *settings.ID != "" {
		attrs["id"] = *settings.ID
	}
	if settings.Name != nil && *settings.Name != "" {
		attrs["name"] = *settings.Name
	}
	if settings.Value != nil {
		if value, ok := html.Stringify(settings.Value); ok {
			attrs["value"] = value
		}
	}
	return html.Tag("button", html.Content(b.content, settings.Encode), attrs), nil
}
