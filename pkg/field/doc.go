// Package field assembles the label, input, hint and error of a model
// attribute into one block, decorated according to a Config:
//
//	out, err := field.New(form, "email", field.WithConfig(cfg)).Email().Render()
//
// Configs are plain structs so themes and YAML presets can provide them.
package field
