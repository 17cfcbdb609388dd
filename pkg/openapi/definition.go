package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/pkg/config"
	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/widget"
)

// DefaultTextareaThreshold is the maxLength above which strings render as a
// textarea.
const DefaultTextareaThreshold = 255

// Vendor extensions read from operations and schemas.
const (
	// ExtensionFormName on an operation scopes input names.
	ExtensionFormName = "x-form-name"
	// ExtensionWidget on a property forces a widget kind.
	ExtensionWidget = "x-widget"
	// ExtensionOrder on a property sorts it before unordered properties.
	ExtensionOrder = "x-order"
)

var (
	// ErrOperationNotFound is returned when no operation has the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no object body.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

// mediaTypes lists the request content types tried first, in order.
var mediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Option configures Definition.
type Option func(*builder)

type builder struct {
	threshold int
	validate  bool
	external  bool
	theme     string
	variant   string
	preset    string
	summary   bool
}

// WithTextareaThreshold sets the maxLength above which strings render as a
// textarea.
func WithTextareaThreshold(n int) Option {
	return func(b *builder) {
		if n > 0 {
			b.threshold = n
		}
	}
}

// WithValidation validates the document before building.
func WithValidation() Option {
	return func(b *builder) {
		b.validate = true
	}
}

// WithExternalRefs allows $ref values pointing outside the document.
func WithExternalRefs() Option {
	return func(b *builder) {
		b.external = true
	}
}

// WithTheme sets the theme and variant of the built definition.
func WithTheme(theme, variant string) Option {
	return func(b *builder) {
		b.theme = theme
		b.variant = variant
	}
}

// WithPreset sets the field preset of the built definition.
func WithPreset(name string) Option {
	return func(b *builder) {
		b.preset = name
	}
}

// WithSummary enables the error summary on the built definition.
func WithSummary() Option {
	return func(b *builder) {
		b.summary = true
	}
}

// Operation identifies an operation of a document.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Operations lists the operations of a document sorted by id. Operations
// without an operationId are named "method:path".
func Operations(ctx context.Context, data []byte, opts ...Option) ([]Operation, error) {
	doc, err := newBuilder(opts).load(ctx, data)
	if err != nil {
		return nil, err
	}
	var out []Operation
	walk(doc, func(method, path string, op *openapi3.Operation) bool {
		out = append(out, Operation{
			ID:      idOf(method, path, op),
			Method:  method,
			Path:    path,
			Summary: op.Summary,
		})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Definition builds a form definition from the request body of operationID.
func Definition(ctx context.Context, data []byte, operationID string, opts ...Option) (config.FormDefinition, error) {
	b := newBuilder(opts)
	doc, err := b.load(ctx, data)
	if err != nil {
		return config.FormDefinition{}, err
	}

	var (
		found  *openapi3.Operation
		method string
		path   string
	)
	walk(doc, func(m, p string, op *openapi3.Operation) bool {
		if idOf(m, p, op) == operationID {
			found, method, path = op, m, p
			return false
		}
		return true
	})
	if found == nil {
		return config.FormDefinition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(found)
	if schema == nil || len(schema.Properties) == 0 {
		return config.FormDefinition{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	def := config.FormDefinition{
		Name:     operationID,
		FormName: stringExtension(found.Extensions, ExtensionFormName),
		Action:   path,
		Method:   strings.ToLower(method),
		Preset:   b.preset,
		Theme:    b.theme,
		Variant:  b.variant,
		Summary:  b.summary,
		Source:   "openapi:" + operationID,
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}
	for _, name := range orderedProperties(schema.Properties) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[name]
		if fd, ok := b.field(name, ref.Value, isRequired); ok {
			def.Fields = append(def.Fields, fd)
		}
	}
	if len(def.Fields) == 0 {
		return config.FormDefinition{}, fmt.Errorf("%w: %q has no renderable properties", ErrNoRequestBody, operationID)
	}
	return def, nil
}

// LoadModel builds the definition of operationID and returns its model.
func LoadModel(ctx context.Context, data []byte, operationID string, opts ...Option) (*model.Form, error) {
	def, err := Definition(ctx, data, operationID, opts...)
	if err != nil {
		return nil, err
	}
	return def.Model(), nil
}

func newBuilder(opts []Option) *builder {
	b := &builder{threshold: DefaultTextareaThreshold}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *builder) load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = b.external

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if b.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return doc, nil
}

func walk(doc *openapi3.T, visit func(method, path string, op *openapi3.Operation) bool) {
	if doc == nil || doc.Paths == nil {
		return
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for method := range ops {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			if op := ops[method]; op != nil && !visit(strings.ToUpper(method), path, op) {
				return
			}
		}
	}
}

func idOf(method, path string, op *openapi3.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return strings.ToLower(method) + ":" + path
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func (b *builder) field(name string, schema *openapi3.Schema, required bool) (config.FieldDefinition, bool) {
	if schema.ReadOnly {
		return config.FieldDefinition{}, false
	}
	fd := config.FieldDefinition{
		Attribute: name,
		Label:     schema.Title,
		Hint:      schema.Description,
		Value:     schema.Default,
	}
	if example, ok := schema.Example.(string); ok {
		fd.Placeholder = example
	}
	fd.Rules.Required = required

	switch firstType(schema) {
	case openapi3.TypeBoolean:
		fd.Widget = string(widget.KindCheckbox)
	case openapi3.TypeInteger, openapi3.TypeNumber:
		fd.Widget = string(widget.KindNumber)
		fd.Rules.Integer = firstType(schema) == openapi3.TypeInteger
		fd.Rules.Min = copyFloat(schema.Min)
		fd.Rules.Max = copyFloat(schema.Max)
		if len(schema.Enum) > 0 {
			fd.Widget = string(widget.KindSelect)
			fd.Items = enumItems(schema.Enum)
		}
	case openapi3.TypeArray:
		if schema.Items == nil || schema.Items.Value == nil || len(schema.Items.Value.Enum) == 0 {
			return config.FieldDefinition{}, false
		}
		fd.Widget = string(widget.KindCheckboxList)
		fd.Items = enumItems(schema.Items.Value.Enum)
		fd.Value = stringList(schema.Default)
	case openapi3.TypeObject:
		return config.FieldDefinition{}, false
	default:
		b.stringField(&fd, schema)
	}

	if forced := stringExtension(schema.Extensions, ExtensionWidget); forced != "" {
		fd.Widget = forced
	}
	return fd, true
}

func (b *builder) stringField(fd *config.FieldDefinition, schema *openapi3.Schema) {
	fd.Rules.MinLength = clampInt(schema.MinLength)
	if schema.MaxLength != nil {
		fd.Rules.MaxLength = clampInt(*schema.MaxLength)
	}
	fd.Rules.Pattern = schema.Pattern

	if len(schema.Enum) > 0 {
		fd.Widget = string(widget.KindSelect)
		fd.Items = enumItems(schema.Enum)
		return
	}

	switch strings.ToLower(schema.Format) {
	case "email":
		fd.Widget = string(widget.KindEmail)
		fd.Rules.Email = true
	case "uri", "url":
		fd.Widget = string(widget.KindURL)
		fd.Rules.URL = true
	case "password":
		fd.Widget = string(widget.KindPassword)
	case "date":
		fd.Widget = string(widget.KindDate)
	case "date-time":
		fd.Widget = string(widget.KindDateTimeLocal)
	case "time":
		fd.Widget = string(widget.KindTime)
	case "textarea":
		fd.Widget = string(widget.KindTextarea)
	default:
		if schema.MaxLength != nil && *schema.MaxLength > uint64(b.threshold) {
			fd.Widget = string(widget.KindTextarea)
		} else {
			fd.Widget = string(widget.KindText)
		}
	}
}

func firstType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	for _, typ := range schema.Type.Slice() {
		if typ != "null" {
			return typ
		}
	}
	return ""
}

// orderedProperties sorts properties carrying x-order first, by order, then
// the rest by name.
func orderedProperties(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	order := func(name string) (float64, bool) {
		ref := props[name]
		if ref == nil || ref.Value == nil {
			return 0, false
		}
		switch v := ref.Value.Extensions[ExtensionOrder].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case uint64:
			return float64(v), true
		}
		return 0, false
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, iok := order(names[i])
		oj, jok := order(names[j])
		switch {
		case iok && jok && oi != oj:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
	return names
}

func enumItems(values []any) []widget.Item {
	items := make([]widget.Item, 0, len(values))
	for _, value := range values {
		str, ok := html.Stringify(value)
		if !ok {
			continue
		}
		items = append(items, widget.NewItem(str, str))
	}
	return items
}

func stringList(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if str, ok := html.Stringify(item); ok {
			out = append(out, str)
		}
	}
	return out
}

func stringExtension(ext map[string]any, key string) string {
	if value, ok := ext[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func clampInt(v uint64) int {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
