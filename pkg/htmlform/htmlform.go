// Package htmlform derives input names, ids and metadata for form model
// attributes. Attribute expressions may carry a tabular prefix and an array
// suffix around the attribute name: "[0]dates[]" targets attribute "dates"
// of the first row and submits as a list.
package htmlform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formfields/pkg/model"
)

var (
	// ErrInvalidAttribute is returned for expressions without a usable name.
	ErrInvalidAttribute = errors.New("htmlform: attribute name must contain word characters only")
	// ErrTabularInput is returned when a prefixed expression is used with a
	// model that has no form name to scope it under.
	ErrTabularInput = errors.New("htmlform: form name cannot be empty for tabular inputs")
	// ErrUnknownAttribute is returned when the model does not declare the
	// attribute.
	ErrUnknownAttribute = errors.New("htmlform: undefined attribute")
)

var attributePattern = regexp.MustCompile(`^(.*\])?([\w.+]+)(\[.*)?$`)

// idReplacements apply in sequence; "[]" must vanish before single brackets
// are folded.
var idReplacements = [][2]string{
	{"[]", ""},
	{"][", "-"},
	{"[", "-"},
	{"]", ""},
	{" ", "-"},
	{".", "-"},
}

// Attribute is a parsed attribute expression.
type Attribute struct {
	Prefix string
	Name   string
	Suffix string
}

// ParseAttribute splits an expression such as "[0]dates[]" into its tabular
// prefix, attribute name and array suffix.
func ParseAttribute(attribute string) (Attribute, error) {
	matches := attributePattern.FindStringSubmatch(attribute)
	if matches == nil {
		return Attribute{}, fmt.Errorf("%w: %q", ErrInvalidAttribute, attribute)
	}
	return Attribute{
		Prefix: matches[1],
		Name:   matches[2],
		Suffix: matches[3],
	}, nil
}

// AttributeName returns the bare attribute name of an expression.
func AttributeName(attribute string) (string, error) {
	parsed, err := ParseAttribute(attribute)
	if err != nil {
		return "", err
	}
	return parsed.Name, nil
}

// InputName derives the submitted name for an attribute expression, e.g.
// "LoginForm[login]" or "Rows[0][dates][]".
func InputName(m model.FormModel, attribute string) (string, error) {
	parsed, err := ParseAttribute(attribute)
	if err != nil {
		return "", err
	}

	formName := m.FormName()
	switch {
	case formName == "" && parsed.Prefix == "":
		return attribute, nil
	case formName != "":
		return formName + parsed.Prefix + "[" + parsed.Name + "]" + parsed.Suffix, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrTabularInput, attribute)
	}
}

// InputID derives the element id from the input name: lower-cased with
// brackets, spaces and dots folded into dashes.
func InputID(m model.FormModel, attribute string) (string, error) {
	name, err := InputName(m, attribute)
	if err != nil {
		return "", err
	}
	id := strings.ToLower(name)
	for _, pair := range idReplacements {
		id = strings.ReplaceAll(id, pair[0], pair[1])
	}
	return id, nil
}

// AttributeValue returns the model value for the expression's attribute.
func AttributeValue(m model.FormModel, attribute string) (any, error) {
	name, err := AttributeName(attribute)
	if err != nil {
		return nil, err
	}
	if !m.HasAttribute(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return m.AttributeValue(name), nil
}

// AttributeLabel returns the model label for the expression's attribute.
func AttributeLabel(m model.FormModel, attribute string) string {
	return m.AttributeLabel(nameOrRaw(attribute))
}

// AttributeHint returns the model hint for the expression's attribute.
func AttributeHint(m model.FormModel, attribute string) string {
	return m.AttributeHint(nameOrRaw(attribute))
}

// AttributePlaceholder returns the model placeholder for the expression's
// attribute.
func AttributePlaceholder(m model.FormModel, attribute string) string {
	return m.AttributePlaceholder(nameOrRaw(attribute))
}

func nameOrRaw(attribute string) string {
	if name, err := AttributeName(attribute); err == nil {
		return name
	}
	return attribute
}
