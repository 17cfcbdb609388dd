// Package openapi builds form definitions from the request body of an
// OpenAPI operation. Schema constraints become field rules, so the rendered
// inputs carry the matching HTML5 attributes:
//
//	def, err := openapi.Definition(ctx, data, "createUser")
//	out, err := renderer.Render(ctx, def, nil)
//
// Documents are parsed with kin-openapi.
package openapi
