package model

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/rules"
)

var errNotStruct = errors.New("model: FromStruct expects a struct or pointer to struct")

// FromStruct builds a Form from the exported fields of v. Field tags:
//
//	form:"login"              attribute name ("-" skips the field)
//	label:"Login"             label, defaults to DefaultLabeler(name)
//	hint:"..." placeholder:"..."
//	rules:"required,email,url,integer"
//	length:"4,40"             HasLength min,max (either side may be empty)
//	range:"0,100"             Number min,max
//	pattern:"^[a-z]+$"        MatchRegularExpression
//
// Nested struct fields become nested forms reachable via dotted paths.
func FromStruct(name string, v any, options ...Option) (*Form, error) {
	value := reflect.ValueOf(v)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, errNotStruct
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, errNotStruct
	}

	form := New(name, options...)
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		attrName := attributeName(sf)
		if attrName == "" {
			continue
		}

		set, err := parseRuleTags(sf.Tag)
		if err != nil {
			return nil, fmt.Errorf("model: field %s: %w", sf.Name, err)
		}

		fieldValue := value.Field(i)
		var current any = fieldValue.Interface()
		if isNestedStruct(fieldValue) {
			nested, err := FromStruct("", fieldValue.Interface(), WithErrors(NewErrors()))
			if err != nil {
				return nil, fmt.Errorf("model: field %s: %w", sf.Name, err)
			}
			current = nested
		}

		form.define(Attribute{
			Name:        attrName,
			Label:       sf.Tag.Get("label"),
			Hint:        sf.Tag.Get("hint"),
			Placeholder: sf.Tag.Get("placeholder"),
			Value:       current,
			Rules:       set,
		})
	}
	return form, nil
}

func attributeName(sf reflect.StructField) string {
	tag := sf.Tag.Get("form")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	return lowerFirst(sf.Name)
}

func isNestedStruct(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return false
	}
	// Well-known value structs such as time.Time carry their own formatting.
	_, stringer := v.Interface().(fmt.Stringer)
	return !stringer
}

func parseRuleTags(tag reflect.StructTag) ([]rules.Rule, error) {
	var set []rules.Rule

	for _, flag := range strings.Split(tag.Get("rules"), ",") {
		switch strings.ToLower(strings.TrimSpace(flag)) {
		case "":
		case rules.NameRequired:
			set = append(set, rules.Required{})
		case rules.NameEmail:
			set = append(set, rules.Email{})
		case rules.NameURL:
			set = append(set, rules.URL{})
		case "integer":
			set = append(set, rules.Number{IntegerOnly: true})
		default:
			return nil, fmt.Errorf("unknown rule %q", flag)
		}
	}

	if raw := tag.Get("length"); raw != "" {
		lo, hi, err := parseBounds(raw)
		if err != nil {
			return nil, fmt.Errorf("length: %w", err)
		}
		rule := rules.HasLength{}
		if lo != nil {
			rule.Min = int(*lo)
		}
		if hi != nil {
			rule.Max = int(*hi)
		}
		set = append(set, rule)
	}

	if raw := tag.Get("range"); raw != "" {
		lo, hi, err := parseBounds(raw)
		if err != nil {
			return nil, fmt.Errorf("range: %w", err)
		}
		set = mergeNumber(set, rules.Number{Min: lo, Max: hi})
	}

	if pattern := tag.Get("pattern"); pattern != "" {
		set = append(set, rules.MatchRegularExpression{Pattern: pattern})
	}
	return set, nil
}

// mergeNumber folds range bounds into an existing integer rule so a field
// tagged both `rules:"integer"` and `range:"1,5"` yields one Number rule.
func mergeNumber(set []rules.Rule, bounds rules.Number) []rules.Rule {
	for idx, rule := range set {
		if existing, ok := rule.(rules.Number); ok {
			existing.Min, existing.Max = bounds.Min, bounds.Max
			set[idx] = existing
			return set
		}
	}
	return append(set, bounds)
}

func parseBounds(raw string) (*float64, *float64, error) {
	lo, hi, found := strings.Cut(raw, ",")
	if !found {
		return nil, nil, fmt.Errorf("expected min,max got %q", raw)
	}
	lower, err := parseBound(lo)
	if err != nil {
		return nil, nil, err
	}
	upper, err := parseBound(hi)
	if err != nil {
		return nil, nil, err
	}
	return lower, upper, nil
}

func parseBound(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid bound %q", raw)
	}
	return &v, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return ""
	}
	// Leading acronyms collapse together: "ID" -> "id", "URLPath" -> "urlPath".
	runes := []rune(s)
	i := 0
	for i < len(runes) && runes[i] >= 'A' && runes[i] <= 'Z' {
		i++
	}
	switch {
	case i == 0:
		return s
	case i == 1 || i == len(runes):
		return strings.ToLower(string(runes[:i])) + string(runes[i:])
	default:
		return strings.ToLower(string(runes[:i-1])) + string(runes[i-1:])
	}
}
