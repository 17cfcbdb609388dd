// Package testsupport holds helpers shared by package tests: golden files,
// fixture loading and output capture.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/config"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "UPDATE_GOLDENS"

// Updating reports whether golden files should be rewritten.
func Updating() bool {
	return os.Getenv(UpdateEnv) != ""
}

// LoadDefinition reads a form document and returns the named definition.
func LoadDefinition(t *testing.T, path, name string) config.FormDefinition {
	t.Helper()

	def, err := LoadDefinitionFromPath(path, name)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// LoadDefinitionFromPath is LoadDefinition for callers without a testing.T.
func LoadDefinitionFromPath(path, name string) (config.FormDefinition, error) {
	if path == "" {
		return config.FormDefinition{}, errors.New("testsupport: definition path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config.FormDefinition{}, fmt.Errorf("testsupport: read definition: %w", err)
	}
	store, err := config.LoadBytes(data, filepath.Base(path))
	if err != nil {
		return config.FormDefinition{}, fmt.Errorf("testsupport: parse definition: %w", err)
	}
	def, ok := store.Form(name)
	if !ok {
		return config.FormDefinition{}, fmt.Errorf("testsupport: form %q not found in %s", name, path)
	}
	return def, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if !Updating() {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, ignoring trailing
// newlines. The file is rewritten instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()
	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := strings.TrimRight(MustReadGoldenString(t, path), "\n")
	if diff := CompareGolden(want, strings.TrimRight(got, "\n")); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
