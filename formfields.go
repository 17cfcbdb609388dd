// Package formfields renders HTML form fields bound to form models. The
// subpackages hold the building blocks; this package wires the common paths:
// loading definitions, rendering them through a themed layout and building
// them from OpenAPI operations.
package formfields

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-formfields/pkg/config"
	"github.com/goliatone/go-formfields/pkg/layout"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/openapi"
)

// LoadStore loads definitions from dir, or the embedded samples when dir is
// empty.
func LoadStore(dir string) (*config.Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return config.LoadFS(config.EmbeddedFS())
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("formfields: config dir: %w", err)
	}
	if !info.IsDir() {
		data, err := os.ReadFile(dir)
		if err != nil {
			return nil, fmt.Errorf("formfields: config file: %w", err)
		}
		return config.LoadBytes(data, dir)
	}
	return config.LoadFS(os.DirFS(dir))
}

// Render renders def through a layout renderer built from options. A nil
// form renders the definition defaults.
func Render(ctx context.Context, def config.FormDefinition, form model.FormModel, options ...layout.Option) (string, error) {
	renderer, err := layout.New(options...)
	if err != nil {
		return "", err
	}
	return renderer.Render(ctx, def, form)
}

// RenderForm renders the named form of store, resolving presets from it.
func RenderForm(ctx context.Context, store *config.Store, name string, form model.FormModel, options ...layout.Option) (string, error) {
	def, ok := store.Form(name)
	if !ok {
		return "", fmt.Errorf("formfields: form %q not found", name)
	}
	return Render(ctx, def, form, append([]layout.Option{layout.WithStore(store)}, options...)...)
}

// FromOpenAPI reads the document at location (path or URL) and builds the
// definition of operationID.
func FromOpenAPI(ctx context.Context, location, operationID string, options ...openapi.Option) (config.FormDefinition, error) {
	data, err := openapi.Read(ctx, location)
	if err != nil {
		return config.FormDefinition{}, err
	}
	return openapi.Definition(ctx, data, operationID, options...)
}
