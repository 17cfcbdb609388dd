package template

import (
	"io"
)

// Renderer is the seam layouts render through. Implementations return the
// rendered text and also copy it to every writer in out.
type Renderer interface {
	// Render treats name as inline template content when it contains
	// template delimiters, otherwise as a template path.
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
