// Package widget renders form controls bound to a model.FormModel attribute.
//
// Every widget is an immutable value configured through functional options.
// With returns a copy carrying the extra options, so a base control can be
// shared and specialised freely:
//
//	login := widget.Text(form, "login", widget.WithClass("form-control"))
//	html, err := login.With(widget.WithAutofocus()).Render()
//
// Controls render through a Registry keyed by Kind. NewDefaultRegistry
// registers the built-in inputs, lists and selects; custom kinds are added on
// a cloned registry and selected with WithRegistry.
package widget
