package widget

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/htmlform"
	"github.com/goliatone/go-formfields/pkg/model"
)

// DefaultSummaryHeader heads an ErrorSummary unless WithHeader overrides it.
const DefaultSummaryHeader = "Please fix the following errors:"

// Label renders the label of a model attribute.
type Label struct {
	model     model.FormModel
	attribute string
	options   []Option
}

var _ Widget = Label{}

// NewLabel creates a label pointing at the attribute input. WithFor changes
// the target, WithFor("") drops the for attribute.
func NewLabel(m model.FormModel, attribute string, options ...Option) Label {
	return Label{model: m, attribute: attribute, options: cloneOptions(nil, options)}
}

func (l Label) With(options ...Option) Label {
	l.options = cloneOptions(l.options, options)
	return l
}

func (l Label) Render() (string, error) {
	settings := newSettings(l.options)

	content := htmlform.AttributeLabel(l.model, l.attribute)
	if settings.Label != nil {
		content = *settings.Label
	}
	if content == "" {
		return "", nil
	}

	attrs := settings.Attributes.Clone()
	target := valueOr(settings.For, "")
	if settings.For == nil {
		id, err := htmlform.InputID(l.model, l.attribute)
		if err != nil {
			return "", err
		}
		target = id
	}
	if target != "" && !attrs.Has("for") {
		attrs["for"] = target
	}
	return html.Tag("label", html.Content(content, settings.Encode), attrs), nil
}

// Hint renders the hint text of a model attribute.
type Hint struct {
	model     model.FormModel
	attribute string
	options   []Option
}

var _ Widget = Hint{}

func NewHint(m model.FormModel, attribute string, options ...Option) Hint {
	return Hint{model: m, attribute: attribute, options: cloneOptions(nil, options)}
}

func (h Hint) With(options ...Option) Hint {
	h.options = cloneOptions(h.options, options)
	return h
}

func (h Hint) Render() (string, error) {
	settings := newSettings(h.options)
	content := htmlform.AttributeHint(h.model, h.attribute)
	if settings.Message != nil {
		content = *settings.Message
	}
	return wrapContent(content, settings), nil
}

// Error renders the first validation error of a model attribute.
type Error struct {
	model     model.FormModel
	attribute string
	options   []Option
}

var _ Widget = Error{}

func NewError(m model.FormModel, attribute string, options ...Option) Error {
	return Error{model: m, attribute: attribute, options: cloneOptions(nil, options)}
}

func (e Error) With(options ...Option) Error {
	e.options = cloneOptions(e.options, options)
	return e
}

// Message returns the error text Render would output, unencoded.
func (e Error) Message() (string, error) {
	settings := newSettings(e.options)
	if settings.Message != nil {
		return *settings.Message, nil
	}
	if e.model == nil {
		return "", nil
	}
	name, err := htmlform.AttributeName(e.attribute)
	if err != nil {
		return "", err
	}
	return e.model.Errors().First(name), nil
}

func (e Error) Render() (string, error) {
	content, err := e.Message()
	if err != nil {
		return "", err
	}
	return wrapContent(content, newSettings(e.options)), nil
}

func wrapContent(content string, settings Settings) string {
	if content == "" {
		return ""
	}
	tag := valueOr(settings.Tag, "div")
	body := html.Content(content, settings.Encode)
	if tag == "" {
		return body
	}
	return html.Tag(tag, body, settings.Attributes)
}

// ErrorSummary lists the model errors, form-level messages first.
type ErrorSummary struct {
	model   model.FormModel
	options []Option
}

var _ Widget = ErrorSummary{}

func NewErrorSummary(m model.FormModel, options ...Option) ErrorSummary {
	return ErrorSummary{model: m, options: cloneOptions(nil, options)}
}

func (s ErrorSummary) With(options ...Option) ErrorSummary {
	s.options = cloneOptions(s.options, options)
	return s
}

func (s ErrorSummary) Render() (string, error) {
	if s.model == nil {
		return "", nil
	}
	settings := newSettings(s.options)
	messages := s.model.Errors().Summary(settings.ShowAllErrors, settings.OnlyAttributes...)
	if len(messages) == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(messages)+6)
	if header := valueOr(settings.Header, DefaultSummaryHeader); header != "" {
		lines = append(lines, html.Tag("p", html.Content(header, settings.Encode), nil))
	}
	lines = append(lines, html.Open("ul", settings.ListAttributes))
	for _, message := range messages {
		lines = append(lines, html.Tag("li", html.Content(message, settings.Encode), nil))
	}
	lines = append(lines, html.Close("ul"))
	if footer := valueOr(settings.Footer, ""); footer != "" {
		lines = append(lines, html.Content(footer, settings.Encode))
	}

	body := strings.Join(lines, "\n")
	tag := valueOr(settings.Tag, "div")
	if tag == "" {
		return body, nil
	}
	return html.Tag(tag, "\n"+body+"\n", settings.Attributes), nil
}
