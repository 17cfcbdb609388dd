package theme

import (
	"fmt"
	"strings"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfields/pkg/field"
)

// NoClass is the token value clearing a class. go-theme rejects empty token
// values, so manifests use it where a kind must not inherit the input class.
const NoClass = "none"

// NewProvider registers the built-in manifests plus extra on a go-theme
// registry. Every manifest goes through go-theme validation.
func NewProvider(extra ...*gotheme.Manifest) (*gotheme.MemoryRegistry, error) {
	registry := gotheme.NewRegistry()
	for _, manifest := range append(Manifests(), extra...) {
		if err := registry.Register(manifest); err != nil {
			name := "<nil>"
			if manifest != nil {
				name = manifest.Name
			}
			return nil, fmt.Errorf("theme: register %s: %w", name, err)
		}
	}
	return registry, nil
}

// NewSelector returns a go-theme selector over NewProvider(extra...).
// An empty defaultTheme selects bootstrap5. Unknown theme names fall back to
// the default theme and unknown variants to the base tokens.
func NewSelector(defaultTheme, defaultVariant string, extra ...*gotheme.Manifest) (gotheme.Selector, error) {
	provider, err := NewProvider(extra...)
	if err != nil {
		return gotheme.Selector{}, err
	}
	if defaultTheme = strings.TrimSpace(defaultTheme); defaultTheme == "" {
		defaultTheme = Bootstrap5
	}
	return gotheme.Selector{
		Registry:       provider,
		DefaultTheme:   defaultTheme,
		DefaultVariant: strings.TrimSpace(defaultVariant),
	}, nil
}

// FieldConfig converts the selection tokens into a field configuration
// layered over field.DefaultConfig.
func FieldConfig(selection *gotheme.Selection) field.Config {
	if selection == nil {
		return field.DefaultConfig()
	}
	tokens := selection.Tokens()
	cfg := field.Config{
		Template:       tokens[TokenTemplate],
		ContainerTag:   tokens[TokenContainerTag],
		ContainerClass: class(tokens[TokenContainerClass]),
		LabelClass:     class(tokens[TokenLabelClass]),
		InputClass:     class(tokens[TokenInputClass]),
		HintClass:      class(tokens[TokenHintClass]),
		ErrorClass:     class(tokens[TokenErrorClass]),
		InvalidClass:   class(tokens[TokenInvalidClass]),
		ValidClass:     class(tokens[TokenValidClass]),
	}
	prefix := TokenInputClass + "."
	for key, value := range tokens {
		if kind, ok := strings.CutPrefix(key, prefix); ok && kind != "" {
			if cfg.InputClasses == nil {
				cfg.InputClasses = make(map[string]string)
			}
			cfg.InputClasses[kind] = class(value)
		}
	}
	return field.DefaultConfig().Merge(cfg)
}

// Class returns the class token key of the selection, "" when unset or
// cleared with NoClass.
func Class(selection *gotheme.Selection, key string) string {
	if selection == nil {
		return ""
	}
	return class(selection.Tokens()[key])
}

// LayoutTemplate returns the form layout override, "" when the theme uses
// the default layout.
func LayoutTemplate(selection *gotheme.Selection) string {
	if selection == nil {
		return ""
	}
	return selection.Template(TemplateLayout, "")
}

// CSSVariables returns the selection CSS variables usable in a stylesheet.
// Dotted token keys are class tokens, not custom properties.
func CSSVariables(selection *gotheme.Selection) map[string]string {
	out := make(map[string]string)
	if selection == nil {
		return out
	}
	for key, value := range selection.CSSVariables("--") {
		if strings.Contains(key, ".") {
			continue
		}
		out[key] = value
	}
	return out
}

func class(value string) string {
	if value == NoClass {
		return ""
	}
	return value
}
