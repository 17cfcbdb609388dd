package layout

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfields/pkg/config"
	"github.com/goliatone/go-formfields/pkg/field"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render/template"
	"github.com/goliatone/go-formfields/pkg/render/template/pongo"
	"github.com/goliatone/go-formfields/pkg/theme"
	"github.com/goliatone/go-formfields/pkg/widget"
)

//go:embed templates/*.tpl
var embedded embed.FS

// Template names resolved by the default engine.
const (
	FormTemplate = "templates/form"
	PageTemplate = "templates/page"
)

// DefaultSubmitLabel is used when a definition declares no submit label.
const DefaultSubmitLabel = "Submit"

// Templates returns the embedded layout templates.
func Templates() fs.FS {
	return embedded
}

// PresetLookup resolves a named field preset.
type PresetLookup func(name string) (field.Config, bool)

// Option configures a Renderer.
type Option func(*Renderer)

// WithRenderer replaces the template engine. The engine must be able to
// resolve the form and page templates, or the names set with WithLayout.
func WithRenderer(renderer template.Renderer) Option {
	return func(r *Renderer) {
		r.engine = renderer
	}
}

// WithTemplates stacks files in front of the embedded templates, so a file
// named templates/form.tpl replaces the default layout.
func WithTemplates(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.overrides = append(r.overrides, files)
		}
	}
}

// WithSelector sets the theme selector. Defaults to a go-theme selector over
// the built-in manifests with bootstrap5 as default.
func WithSelector(selector gotheme.ThemeSelector) Option {
	return func(r *Renderer) {
		r.selector = selector
	}
}

// WithPresets resolves definition presets through lookup.
func WithPresets(lookup PresetLookup) Option {
	return func(r *Renderer) {
		r.presets = lookup
	}
}

// WithStore resolves definition presets from a loaded config store.
func WithStore(store *config.Store) Option {
	return func(r *Renderer) {
		if store != nil {
			r.presets = store.Preset
		}
	}
}

// WithResolver picks input kinds for fields that declare no widget.
func WithResolver(resolver *widget.Resolver) Option {
	return func(r *Renderer) {
		r.resolver = resolver
	}
}

// WithLayout overrides the form and page template names.
func WithLayout(form, page string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(form) != "" {
			r.formTemplate = form
		}
		if strings.TrimSpace(page) != "" {
			r.pageTemplate = page
		}
	}
}

// Renderer renders whole form definitions through a layout template.
type Renderer struct {
	engine       template.Renderer
	overrides    []fs.FS
	selector     gotheme.ThemeSelector
	presets      PresetLookup
	resolver     *widget.Resolver
	formTemplate string
	pageTemplate string
}

// New builds a renderer. Without WithRenderer a pongo engine over the
// embedded templates is created.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		formTemplate: FormTemplate,
		pageTemplate: PageTemplate,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.selector == nil {
		selector, err := theme.NewSelector("", "")
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		r.selector = selector
	}
	if r.resolver == nil {
		r.resolver = widget.NewResolver()
	}
	if r.engine == nil {
		engineOpts := make([]pongo.Option, 0, len(r.overrides)+1)
		for _, files := range r.overrides {
			engineOpts = append(engineOpts, pongo.WithFS(files))
		}
		engineOpts = append(engineOpts, pongo.WithFS(embedded))
		engine, err := pongo.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("layout: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Parts holds the rendered pieces handed to the layout template.
type Parts struct {
	Begin   string
	Summary string
	Fields  []string
	Submit  string
	End     string
}

// Render renders def against form. A nil form renders the definition's own
// model with its default values.
func (r *Renderer) Render(ctx context.Context, def config.FormDefinition, form model.FormModel) (string, error) {
	selection, err := r.selector.Select(def.Theme, def.Variant)
	if err != nil {
		return "", fmt.Errorf("layout: %s: %w", def.Name, err)
	}
	parts, err := r.Parts(ctx, def, form, selection)
	if err != nil {
		return "", err
	}

	name := r.formTemplate
	if override := theme.LayoutTemplate(selection); override != "" {
		name = override
	}
	out, err := r.engine.RenderTemplate(name, map[string]any{
		"begin":   parts.Begin,
		"summary": parts.Summary,
		"fields":  parts.Fields,
		"submit":  parts.Submit,
		"end":     parts.End,
		"theme":   selection.Theme,
		"variant": selection.Variant,
		"tokens":  selection.Tokens(),
	})
	if err != nil {
		return "", fmt.Errorf("layout: %s: %w", def.Name, err)
	}
	return out, nil
}

// Page renders def inside a standalone HTML document carrying the theme
// stylesheet.
func (r *Renderer) Page(ctx context.Context, def config.FormDefinition, form model.FormModel) (string, error) {
	body, err := r.Render(ctx, def, form)
	if err != nil {
		return "", err
	}
	selection, err := r.selector.Select(def.Theme, def.Variant)
	if err != nil {
		return "", fmt.Errorf("layout: %s: %w", def.Name, err)
	}
	stylesheet, _ := selection.Asset("stylesheet")

	title := def.FormName
	if title == "" {
		title = def.Name
	}
	out, err := r.engine.RenderTemplate(r.pageTemplate, map[string]any{
		"title":      title,
		"form":       body,
		"stylesheet": stylesheet,
		"css_vars":   theme.CSSVariables(selection),
	})
	if err != nil {
		return "", fmt.Errorf("layout: %s page: %w", def.Name, err)
	}
	return out, nil
}

// Parts renders the pieces of def without applying the layout template.
func (r *Renderer) Parts(ctx context.Context, def config.FormDefinition, form model.FormModel, selection *gotheme.Selection) (Parts, error) {
	if form == nil {
		form = def.Model()
	}
	if selection == nil {
		return Parts{}, errors.New("layout: theme selection is required")
	}
	cfg := r.FieldConfig(def, selection)

	var formOpts []widget.Option
	if len(def.Hidden) > 0 {
		formOpts = append(formOpts, widget.WithHiddenFields(def.Hidden...))
	}
	if class := theme.Class(selection, theme.TokenFormClass); class != "" {
		formOpts = append(formOpts, widget.WithClass(class))
	}
	begin := widget.NewForm(def.Action, def.Method, formOpts...)

	var parts Parts
	var err error
	if parts.Begin, err = begin.Begin(); err != nil {
		return Parts{}, fmt.Errorf("layout: %s: %w", def.Name, err)
	}
	parts.End = begin.End()

	if def.Summary {
		var opts []widget.Option
		if class := theme.Class(selection, theme.TokenSummaryClass); class != "" {
			opts = append(opts, widget.WithClass(class))
		}
		if parts.Summary, err = widget.NewErrorSummary(form, opts...).Render(); err != nil {
			return Parts{}, fmt.Errorf("layout: %s summary: %w", def.Name, err)
		}
	}

	for _, fd := range def.Fields {
		if err := ctx.Err(); err != nil {
			return Parts{}, err
		}
		markup, err := r.field(form, fd, cfg).Render()
		if err != nil {
			return Parts{}, fmt.Errorf("layout: %s field %q: %w", def.Name, fd.Attribute, err)
		}
		parts.Fields = append(parts.Fields, markup)
	}

	label := strings.TrimSpace(def.Submit)
	if label == "" {
		label = DefaultSubmitLabel
	}
	var opts []widget.Option
	if class := theme.Class(selection, theme.TokenButtonClass); class != "" {
		opts = append(opts, widget.WithClass(class))
	}
	if parts.Submit, err = widget.SubmitButton(label, opts...).Render(); err != nil {
		return Parts{}, fmt.Errorf("layout: %s submit: %w", def.Name, err)
	}
	return parts, nil
}

// FieldConfig layers the definition preset over the theme configuration.
func (r *Renderer) FieldConfig(def config.FormDefinition, selection *gotheme.Selection) field.Config {
	cfg := theme.FieldConfig(selection)
	if def.Preset != "" && r.presets != nil {
		if preset, ok := r.presets(def.Preset); ok {
			cfg = cfg.Merge(preset)
		}
	}
	return cfg
}

func (r *Renderer) field(form model.FormModel, fd config.FieldDefinition, cfg field.Config) field.Field {
	opts := []field.Option{
		field.WithConfig(cfg),
		field.WithResolver(r.resolver),
		field.WithInputOptions(fd.Options()...),
	}
	if kind := fd.Kind(); kind != "" {
		opts = append(opts, field.WithKind(kind))
	}
	return field.New(form, strings.TrimSpace(fd.Attribute), opts...)
}
