package pongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/render/template"
)

// ErrNoLoader is returned by New when neither a directory nor an fs.FS was
// configured.
var ErrNoLoader = errors.New("pongo: a template directory or fs.FS is required")

// Option configures an Engine.
type Option func(*options)

type options struct {
	dir       string
	files     []fs.FS
	extension string
	globals   map[string]any
	filters   map[string]func(any, any) (any, error)
}

// WithDir loads templates from a directory on disk.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files. Several filesystems may be stacked; the
// first one holding a template wins.
func WithFS(files fs.FS) Option {
	return func(o *options) {
		if files != nil {
			o.files = append(o.files, files)
		}
	}
}

// WithExtension sets the suffix appended to template names that lack it.
// Defaults to ".tpl".
func WithExtension(ext string) Option {
	return func(o *options) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		o.extension = ext
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(values map[string]any) Option {
	return func(o *options) {
		if o.globals == nil {
			o.globals = make(map[string]any, len(values))
		}
		for key, value := range values {
			o.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithFilter registers a filter when the engine is built.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(o *options) {
		if o.filters == nil {
			o.filters = make(map[string]func(any, any) (any, error))
		}
		o.filters[strings.TrimSpace(name)] = fn
	}
}

// Engine renders pongo2 templates. Parsed files are cached by path.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	cache     map[string]*pongo2.Template
	extension string
}

var _ template.Renderer = (*Engine)(nil)

// New builds an engine from options.
func New(opts ...Option) (*Engine, error) {
	cfg := options{extension: ".tpl"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.dir == "" && len(cfg.files) == 0 {
		return nil, ErrNoLoader
	}

	var loaders []pongo2.TemplateLoader
	for _, files := range cfg.files {
		loaders = append(loaders, pongo2.NewFSLoader(files))
	}
	if cfg.dir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("pongo: directory loader: %w", err)
		}
		loaders = append(loaders, loader)
	}

	registerBuiltinFilters()

	engine := &Engine{
		set:       pongo2.NewSet("formfields", loaders...),
		cache:     make(map[string]*pongo2.Template),
		extension: cfg.extension,
	}
	if len(cfg.globals) > 0 {
		if err := engine.GlobalContext(cfg.globals); err != nil {
			return nil, err
		}
	}
	for name, fn := range cfg.filters {
		if err := engine.RegisterFilter(name, fn); err != nil && !errors.Is(err, errFilterExists) {
			return nil, err
		}
	}
	return engine, nil
}

// Render implements template.Renderer.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders the template file name, adding the configured
// extension when missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	path := strings.TrimSpace(name)
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}
	tpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	return e.execute(tpl, path, data, out)
}

// RenderString renders inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	tpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("pongo: parse inline template: %w", err)
	}
	return e.execute(tpl, "inline", data, out)
}

var (
	errNilEngine    = errors.New("pongo: engine is nil")
	errFilterExists = errors.New("pongo: filter already registered")
)

// RegisterFilter registers fn as a pongo2 filter. pongo2 filters are process
// wide, so registering a taken name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter name and function are required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("%w: %q", errFilterExists, name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errNilEngine
	}
	values, err := toContext(data)
	if err != nil {
		return fmt.Errorf("pongo: global context: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(values)
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl, ok := e.cache[path]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %q: %w", path, err)
	}
	e.cache[path] = tpl
	return tpl, nil
}

func (e *Engine) execute(tpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("pongo: %s context: %w", label, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo: execute %s: %w", label, err)
	}

	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", fmt.Errorf("pongo: write %s: %w", label, err)
		}
	}
	return buf.String(), nil
}

// toContext accepts maps as they are. Other values go through JSON so struct
// tags decide the key names templates see.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	out := pongo2.Context{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("expected an object, got %T", data)
	}
	return out, nil
}

var builtinOnce sync.Once

func registerBuiltinFilters() {
	builtinOnce.Do(func() {
		if !pongo2.FilterExists("attrs") {
			_ = pongo2.RegisterFilter("attrs", filterAttrs)
		}
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
	})
}

// filterAttrs renders an attribute map as ` name="value"` pairs.
func filterAttrs(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var attrs html.Attributes
	switch v := in.Interface().(type) {
	case nil:
		return pongo2.AsSafeValue(""), nil
	case html.Attributes:
		attrs = v
	case map[string]any:
		attrs = html.Attributes(v)
	case map[string]string:
		attrs = make(html.Attributes, len(v))
		for key, value := range v {
			attrs[key] = value
		}
	default:
		return nil, &pongo2.Error{Sender: "filter:attrs", OrigError: fmt.Errorf("unsupported value %T", v)}
	}
	return pongo2.AsSafeValue(html.RenderAttributes(attrs)), nil
}

func filterTrim(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
