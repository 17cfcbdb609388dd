// Package server serves a browser preview of the forms in a config store.
// GET renders a form page, POST renders it again with the submitted values
// and /definition returns the definition as JSON.
package server
