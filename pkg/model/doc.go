// Package model defines the FormModel contract widgets render against and a
// map-backed implementation. A form model exposes, per attribute, the current
// value, a human label, an optional hint and placeholder, the declarative
// validation rules and any validation errors. Attribute names may use dotted
// paths ("profile.city") to reach nested form models.
//
// Models are built either explicitly with New and WithAttribute, from a Go
// struct with FromStruct, or from a form definition loaded by pkg/config.
// Server-side error payloads are folded into Errors through MapErrorPayload so
// renderers can surface messages next to the offending inputs.
package model
