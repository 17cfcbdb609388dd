package model

import (
	"sort"
	"strconv"
	"strings"
)

// ErrorMapping splits a server error payload into attribute-level and
// form-level messages keyed by the dotted attribute paths used by models.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

func (m ErrorMapping) order() []string {
	keys := make([]string, 0, len(m.Fields))
	for key := range m.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MapErrorPayload normalises error payload keys (JSON pointers, dotted paths,
// bracketed input names such as LoginForm[login]) into known attributes.
// Unknown keys are treated as form-level errors so messages are not lost.
func MapErrorPayload(formName string, attributes []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(attributes))
	for _, attribute := range attributes {
		if trimmed := strings.TrimSpace(attribute); trimmed != "" {
			known[trimmed] = struct{}{}
		}
	}

	rawKeys := make([]string, 0, len(payload))
	for key := range payload {
		rawKeys = append(rawKeys, key)
	}
	sort.Strings(rawKeys)

	for _, rawPath := range rawKeys {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}

		mapped, formLevel := mapErrorPath(rawPath, formName, known)
		if formLevel || mapped == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[mapped] = normalizeMessages(append(mapping.Fields[mapped], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// wrapperSegments are envelope keys APIs put in front of attribute paths.
var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

// mapErrorPath resolves raw to the longest known attribute path. Leading form
// names, envelope segments and list indexes are ignored.
func mapErrorPath(raw, formName string, known map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", true
	}
	segments := pathSegments(raw)
	if formName != "" && len(segments) > 1 && strings.EqualFold(segments[0], formName) {
		segments = segments[1:]
	}
	for len(segments) > 0 {
		for end := len(segments); end > 0; end-- {
			candidate := strings.Join(segments[:end], ".")
			if _, ok := known[candidate]; ok {
				return candidate, false
			}
		}
		if _, ok := wrapperSegments[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	return "", true
}

// pathSegments splits JSON pointers, dotted paths and bracketed input names,
// dropping numeric list indexes.
func pathSegments(raw string) []string {
	parts := strings.FieldsFunc(strings.TrimSpace(raw), func(r rune) bool {
		switch r {
		case '.', '/', '[', ']', '#', '$':
			return true
		}
		return false
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if _, err := strconv.Atoi(part); err == nil || part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		out = append(out, strings.ReplaceAll(part, "~0", "~"))
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
