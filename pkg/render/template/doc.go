// Package template defines the Renderer contract used by whole-form layouts.
// The pongo subpackage provides the pongo2 implementation.
package template
