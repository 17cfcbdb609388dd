// Package layout renders whole form definitions: the opening tag and hidden
// inputs, an optional error summary, every field in declaration order, the
// submit button and the closing tag. Pieces are assembled by a pongo2 layout
// template that a theme or caller can replace.
package layout
