// Package theme ships go-theme manifests for common CSS frameworks and turns
// a theme selection into field configuration:
//
//	selector, _ := theme.NewSelector(theme.Bootstrap5, "")
//	selection, _ := selector.Select("", "")
//	cfg := theme.FieldConfig(selection)
//	out, _ := field.New(form, "email", field.WithConfig(cfg)).Email().Render()
package theme
