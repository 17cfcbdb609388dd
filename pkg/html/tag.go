package html

import (
	"html"
	"strings"
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {},
	"track": {}, "wbr": {},
}

// Encode escapes text for safe inclusion in HTML content or attributes.
func Encode(value string) string {
	return html.EscapeString(value)
}

// Tag renders an element with raw (already encoded) content. Void elements
// ignore content.
func Tag(name, content string, attrs Attributes) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return content
	}
	if IsVoid(name) {
		return Void(name, attrs)
	}

	var builder strings.Builder
	builder.Grow(len(name)*2 + len(content) + 16)
	builder.WriteByte('<')
	builder.WriteString(name)
	builder.WriteString(RenderAttributes(attrs))
	builder.WriteByte('>')
	builder.WriteString(content)
	builder.WriteString("</")
	builder.WriteString(name)
	builder.WriteByte('>')
	return builder.String()
}

// Void renders a void element such as input or br.
func Void(name string, attrs Attributes) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return "<" + name + RenderAttributes(attrs) + ">"
}

// Open renders only the opening tag of an element.
func Open(name string, attrs Attributes) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return "<" + name + RenderAttributes(attrs) + ">"
}

// Close renders the closing tag of an element.
func Close(name string) string {
	return "</" + strings.ToLower(strings.TrimSpace(name)) + ">"
}

// IsVoid reports whether name is an HTML void element.
func IsVoid(name string) bool {
	_, ok := voidElements[strings.ToLower(name)]
	return ok
}

// Content returns text encoded when encode is true, otherwise sanitised raw
// markup.
func Content(text string, encode bool) string {
	if encode {
		return Encode(text)
	}
	return Sanitize(text)
}
