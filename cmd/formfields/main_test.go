package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, "render", "contact")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, `<form action="/contact" method="post">`) {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, err = run(t, "render", "contact", "--theme", "bulma", "--page")
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") || !strings.Contains(out, "bulma.min.css") {
		t.Fatalf("unexpected page:\n%s", out)
	}
}

func TestRenderCommandOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "contact.html")
	if _, err := run(t, "render", "contact", "--output", target); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `name="ContactForm[email]"`) {
		t.Fatalf("unexpected file contents:\n%s", data)
	}
}

func TestRenderCommandOpenAPI(t *testing.T) {
	out, err := run(t, "render", "--openapi", "../../pkg/openapi/testdata/users.yaml", "--operation", "createUser")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `name="User[username]"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, err := run(t, "render", "--openapi", "../../pkg/openapi/testdata/users.yaml"); err == nil {
		t.Fatalf("expected error without --operation")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	if _, err := run(t, "render"); err == nil || !strings.Contains(err.Error(), "contact") {
		t.Fatalf("expected form list in error, got %v", err)
	}
	if _, err := run(t, "render", "missing"); err == nil {
		t.Fatalf("expected error for unknown form")
	}
	if _, err := run(t, "fill", "contact", "--format", "toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestFormsCommand(t *testing.T) {
	out, err := run(t, "forms")
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	if !strings.Contains(out, "contact") || !strings.Contains(out, "ContactForm") {
		t.Fatalf("unexpected listing:\n%s", out)
	}

	out, err = run(t, "forms", "--openapi", "../../pkg/openapi/testdata/users.yaml")
	if err != nil {
		t.Fatalf("forms openapi: %v", err)
	}
	if !strings.Contains(out, "createUser") || !strings.Contains(out, "POST /users") {
		t.Fatalf("unexpected operations:\n%s", out)
	}
}
