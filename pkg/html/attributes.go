package html

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
)

// Attributes holds tag attributes keyed by name. Values are rendered according
// to their type: true renders a bare attribute, false and nil are omitted,
// []string joins with spaces and the "data"/"aria" keys accept nested maps.
type Attributes map[string]any

// attributeOrder lists names that render before the alphabetical remainder so
// output stays stable and readable.
var attributeOrder = []string{
	"type", "id", "class", "name", "value", "href", "src", "for", "form",
	"action", "method", "selected", "checked", "readonly", "disabled",
	"multiple", "size", "maxlength", "minlength", "min", "max", "step",
	"pattern", "placeholder", "required", "rows", "cols", "alt", "title",
	"rel", "media",
}

var attributeRank = func() map[string]int {
	out := make(map[string]int, len(attributeOrder))
	for idx, name := range attributeOrder {
		out[name] = idx
	}
	return out
}()

// Clone returns a shallow copy of the attribute map. Nested data/aria maps are
// copied as well so callers can mutate the result freely.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for key, value := range a {
		if nested, ok := value.(map[string]any); ok {
			copied := make(map[string]any, len(nested))
			for k, v := range nested {
				copied[k] = v
			}
			out[key] = copied
			continue
		}
		if list, ok := value.([]string); ok {
			out[key] = append([]string(nil), list...)
			continue
		}
		out[key] = value
	}
	return out
}

// With returns a copy with name set to value.
func (a Attributes) With(name string, value any) Attributes {
	out := a.Clone()
	out[name] = value
	return out
}

// Without returns a copy with the provided names removed.
func (a Attributes) Without(names ...string) Attributes {
	out := a.Clone()
	for _, name := range names {
		delete(out, name)
	}
	return out
}

// Has reports whether name is present, regardless of its value.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Merge returns a copy where values from other win. Class values are
// concatenated instead of replaced.
func (a Attributes) Merge(other Attributes) Attributes {
	out := a.Clone()
	for key, value := range other {
		if key == "class" {
			out = AddClass(out, classTokens(value)...)
			continue
		}
		out[key] = value
	}
	return out
}

// String renders the attributes using RenderAttributes.
func (a Attributes) String() string {
	return RenderAttributes(a)
}

// AddClass returns a copy of attrs with the supplied classes appended once.
func AddClass(attrs Attributes, classes ...string) Attributes {
	out := attrs.Clone()
	current := classTokens(out["class"])
	seen := make(map[string]struct{}, len(current))
	for _, token := range current {
		seen[token] = struct{}{}
	}
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if _, exists := seen[token]; exists {
				continue
			}
			seen[token] = struct{}{}
			current = append(current, token)
		}
	}
	if len(current) == 0 {
		delete(out, "class")
		return out
	}
	out["class"] = strings.Join(current, " ")
	return out
}

// RemoveClass returns a copy of attrs without the supplied classes.
func RemoveClass(attrs Attributes, classes ...string) Attributes {
	out := attrs.Clone()
	drop := make(map[string]struct{}, len(classes))
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			drop[token] = struct{}{}
		}
	}
	var keep []string
	for _, token := range classTokens(out["class"]) {
		if _, ok := drop[token]; ok {
			continue
		}
		keep = append(keep, token)
	}
	if len(keep) == 0 {
		delete(out, "class")
		return out
	}
	out["class"] = strings.Join(keep, " ")
	return out
}

func classTokens(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return strings.Fields(v)
	case []string:
		var out []string
		for _, item := range v {
			out = append(out, strings.Fields(item)...)
		}
		return out
	default:
		return strings.Fields(fmt.Sprint(v))
	}
}

// RenderAttributes serialises attrs into ` name="value"` pairs. Known names
// follow a fixed order, the rest are sorted alphabetically.
func RenderAttributes(attrs Attributes) string {
	if len(attrs) == 0 {
		return ""
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iok := attributeRank[names[i]]
		rj, jok := attributeRank[names[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return names[i] < names[j]
		}
	})

	var builder strings.Builder
	for _, name := range names {
		writeAttribute(&builder, name, attrs[name])
	}
	return builder.String()
}

func writeAttribute(builder *strings.Builder, name string, value any) {
	switch v := value.(type) {
	case nil:
		return
	case bool:
		if v {
			builder.WriteByte(' ')
			builder.WriteString(name)
		}
		return
	case map[string]any:
		if name != "data" && name != "aria" {
			break
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			writeAttribute(builder, name+"-"+key, v[key])
		}
		return
	case []string:
		if len(v) == 0 {
			return
		}
		writePair(builder, name, strings.Join(v, " "))
		return
	}

	str, ok := Stringify(value)
	if !ok {
		str = fmt.Sprint(value)
	}
	writePair(builder, name, str)
}

func writePair(builder *strings.Builder, name, value string) {
	builder.WriteByte(' ')
	builder.WriteString(name)
	builder.WriteString(`="`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteByte('"')
}

// Stringify converts scalar values into their attribute representation.
// Booleans become "1"/"0" to match how checkbox values are submitted. The
// second return value is false for nil and non-scalar values.
func Stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
