package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/field"
)

// Store holds presets and form definitions loaded from one or more files.
type Store struct {
	presets map[string]field.Config
	forms   map[string]FormDefinition
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		presets: make(map[string]field.Config),
		forms:   make(map[string]FormDefinition),
	}
}

// LoadFS walks fsys and parses every JSON/YAML document. When fsys is nil or
// holds no documents the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocument(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return store.Add(data, path)
	})
	if err != nil {
		return nil, err
	}
	if err := store.validate(); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadBytes parses a single document.
func LoadBytes(data []byte, source string) (*Store, error) {
	store := NewStore()
	if err := store.Add(data, source); err != nil {
		return nil, err
	}
	if err := store.validate(); err != nil {
		return nil, err
	}
	return store, nil
}

type documentFile struct {
	Presets map[string]field.Config   `json:"presets" yaml:"presets"`
	Forms   map[string]FormDefinition `json:"forms" yaml:"forms"`
}

// Add parses a document into the store. Names must be unique across every
// document added. The document is checked as a whole before anything is
// stored, so a failing document leaves the store unchanged.
func (s *Store) Add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	presets := make(map[string]field.Config, len(doc.Presets))
	for _, name := range sortedKeys(doc.Presets) {
		key := strings.TrimSpace(name)
		if key == "" {
			return fmt.Errorf("config: file %s defines a preset with an empty name", source)
		}
		if _, exists := s.presets[key]; exists {
			return fmt.Errorf("config: duplicate preset %q (file %s)", key, source)
		}
		if _, exists := presets[key]; exists {
			return fmt.Errorf("config: duplicate preset %q (file %s)", key, source)
		}
		presets[key] = doc.Presets[name]
	}

	forms := make(map[string]FormDefinition, len(doc.Forms))
	for _, name := range sortedKeys(doc.Forms) {
		key := strings.TrimSpace(name)
		if key == "" {
			return fmt.Errorf("config: file %s defines a form with an empty name", source)
		}
		if _, exists := s.forms[key]; exists {
			return fmt.Errorf("config: duplicate form %q (file %s)", key, source)
		}
		if _, exists := forms[key]; exists {
			return fmt.Errorf("config: duplicate form %q (file %s)", key, source)
		}
		normalised, err := normaliseForm(doc.Forms[name], key, source)
		if err != nil {
			return err
		}
		forms[key] = normalised
	}

	for key, preset := range presets {
		s.presets[key] = preset
	}
	for key, form := range forms {
		s.forms[key] = form
	}
	return nil
}

// Form returns the definition registered under name.
func (s *Store) Form(name string) (FormDefinition, bool) {
	if s == nil {
		return FormDefinition{}, false
	}
	form, ok := s.forms[strings.TrimSpace(name)]
	return form, ok
}

// Preset returns the field configuration registered under name.
func (s *Store) Preset(name string) (field.Config, bool) {
	if s == nil {
		return field.Config{}, false
	}
	preset, ok := s.presets[strings.TrimSpace(name)]
	return preset, ok
}

// FieldConfig resolves the preset of a form, falling back to the defaults.
func (s *Store) FieldConfig(form FormDefinition) field.Config {
	cfg := field.DefaultConfig()
	if preset, ok := s.Preset(form.Preset); ok {
		cfg = cfg.Merge(preset)
	}
	return cfg
}

// Forms returns the form names sorted alphabetically.
func (s *Store) Forms() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.forms)
}

// Presets returns the preset names sorted alphabetically.
func (s *Store) Presets() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.presets)
}

// Empty reports whether the store holds no forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func (s *Store) validate() error {
	for _, name := range s.Forms() {
		form := s.forms[name]
		if form.Preset == "" {
			continue
		}
		if _, ok := s.presets[form.Preset]; !ok {
			return fmt.Errorf("config: form %q (file %s) references unknown preset %q", name, form.Source, form.Preset)
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func normaliseForm(form FormDefinition, name, source string) (FormDefinition, error) {
	form.Name = name
	form.Source = source
	form.Preset = strings.TrimSpace(form.Preset)
	form.Method = strings.ToLower(strings.TrimSpace(form.Method))
	if form.Method == "" {
		form.Method = "post"
	}

	seen := make(map[string]struct{}, len(form.Fields))
	fields := make([]FieldDefinition, 0, len(form.Fields))
	for idx, def := range form.Fields {
		attribute := strings.TrimSpace(def.Attribute)
		if attribute == "" {
			return FormDefinition{}, fmt.Errorf("config: form %q (file %s) field %d has no attribute", name, source, idx)
		}
		if _, exists := seen[attribute]; exists {
			return FormDefinition{}, fmt.Errorf("config: form %q (file %s) defines duplicate attribute %q", name, source, attribute)
		}
		seen[attribute] = struct{}{}
		def.Attribute = attribute
		def.Value = normaliseValue(def.Value)
		fields = append(fields, def)
	}
	form.Fields = fields
	return form, nil
}

// normaliseValue turns decoded lists into []string so list widgets and
// multi-selects can match them against item values.
func normaliseValue(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
