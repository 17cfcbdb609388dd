package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/rules"
	"github.com/goliatone/go-formfields/pkg/widget"
)

func loadDir(t *testing.T, name string) (*Store, error) {
	t.Helper()
	return LoadFS(os.DirFS(filepath.Join("testdata", name)))
}

func TestLoadFSMixedFormats(t *testing.T) {
	store, err := loadDir(t, "basic")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"signup"}, store.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}

	form, ok := store.Form("signup")
	if !ok {
		t.Fatalf("signup form missing")
	}
	if form.Method != "put" || form.FormName != "Signup" || form.Source != "signup.yml" {
		t.Fatalf("unexpected form header: %+v", form)
	}
	if diff := cmp.Diff([]string{"login", "age", "roles", "homepage"}, form.Attributes()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]widget.HiddenField{{Name: "version", Value: "3"}}, form.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}

	age, _ := form.Field("age")
	if age.Kind() != widget.KindNumber {
		t.Fatalf("expected number kind, got %q", age.Kind())
	}
	roles, _ := form.Field("roles")
	if diff := cmp.Diff([]string{"admin", "editor"}, roles.Value); diff != "" {
		t.Fatalf("list value mismatch (-want +got):\n%s", diff)
	}

	cfg := store.FieldConfig(form)
	if cfg.ContainerTag != "p" || cfg.InputClass != "input" || cfg.Template == "" {
		t.Fatalf("preset not merged over defaults: %+v", cfg)
	}
	if cfg.AriaDescribedBy == nil || *cfg.AriaDescribedBy {
		t.Fatalf("expected aria-describedby disabled by preset")
	}
}

func TestRuleSetConversion(t *testing.T) {
	store, err := loadDir(t, "basic")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, _ := store.Form("signup")
	m := form.Model()

	login := m.Rules("login")
	if len(login) != 3 {
		t.Fatalf("expected required, length and pattern rules, got %#v", login)
	}
	if got := rules.Attributes(login, rules.TextLike); got["pattern"] != "[a-z]+" || got["minlength"] != 3 {
		t.Fatalf("unexpected login attributes: %v", got)
	}

	age := m.Rules("age")
	number, ok := age[0].(rules.Number)
	if !ok || number.Min == nil || *number.Min != 18 || !number.IntegerOnly {
		t.Fatalf("unexpected age rules: %#v", age)
	}

	homepage := m.Rules("homepage")
	url, ok := homepage[0].(rules.URL)
	if !ok || len(url.Schemes()) != 1 || url.Schemes()[0] != "https" {
		t.Fatalf("unexpected homepage rules: %#v", homepage)
	}

	if m.FormName() != "Signup" || m.AttributeValue("age") != 21 {
		t.Fatalf("model not populated: %q %v", m.FormName(), m.AttributeValue("age"))
	}
}

func TestLoadFSErrors(t *testing.T) {
	cases := map[string]string{
		"duplicate":      `duplicate form "login"`,
		"missing_preset": `unknown preset "nope"`,
	}
	for dir, want := range cases {
		t.Run(dir, func(t *testing.T) {
			_, err := loadDir(t, dir)
			if err == nil || !strings.Contains(err.Error(), want) {
				t.Fatalf("expected error containing %q, got %v", want, err)
			}
		})
	}
}

func TestLoadBytesRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"garbage":         "{not: [valid",
		"empty attribute": "forms:\n  x:\n    fields:\n      - label: Nope\n",
		"empty form name": "forms:\n  \" \":\n    fields: []\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadBytes([]byte(doc), name+".yaml"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestAddLeavesStoreUnchangedOnError(t *testing.T) {
	store := NewStore()
	if err := store.Add([]byte("presets:\n  base:\n    containerClass: row\nforms:\n  a:\n    fields:\n      - attribute: x\n"), "first.yaml"); err != nil {
		t.Fatalf("add first: %v", err)
	}

	bad := strings.Join([]string{
		"presets:",
		"  fresh:",
		"    containerClass: col",
		"forms:",
		"  b:",
		"    fields:",
		"      - attribute: y",
		"  c:",
		"    fields:",
		"      - attribute: z",
		"      - attribute: z",
	}, "\n")
	if err := store.Add([]byte(bad), "second.yaml"); err == nil {
		t.Fatalf("expected duplicate attribute error")
	}
	if diff := cmp.Diff([]string{"base"}, store.Presets()); diff != "" {
		t.Fatalf("presets changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, store.Forms()); diff != "" {
		t.Fatalf("forms changed (-want +got):\n%s", diff)
	}

	clash := "presets:\n  base:\n    containerClass: x\n  other:\n    containerClass: y\n"
	if err := store.Add([]byte(clash), "third.yaml"); err == nil {
		t.Fatalf("expected duplicate preset error")
	}
	if _, ok := store.Preset("other"); ok {
		t.Fatalf("preset from a rejected document was stored")
	}
}

func TestEmbeddedSample(t *testing.T) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	form, ok := store.Form("contact")
	if !ok {
		t.Fatalf("contact form missing")
	}
	topic, _ := form.Field("topic")
	if len(topic.Items) != 3 || !topic.Items[2].IsGroup() || topic.Prompt == nil {
		t.Fatalf("select items not decoded: %+v", topic)
	}
	if cfg := store.FieldConfig(form); cfg.ContainerClass != "form-group" {
		t.Fatalf("preset not applied: %+v", cfg)
	}
}
