package html

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderAttributesOrder(t *testing.T) {
	attrs := Attributes{
		"placeholder": "Login",
		"name":        "LoginForm[login]",
		"id":          "loginform-login",
		"type":        "text",
		"autofocus":   true,
		"disabled":    false,
		"data":        map[string]any{"role": "login", "id": 7},
		"zeta":        nil,
	}

	got := RenderAttributes(attrs)
	want := ` type="text" id="loginform-login" name="LoginForm[login]" placeholder="Login" autofocus data-id="7" data-role="login"`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAttributesEscapesValues(t *testing.T) {
	got := RenderAttributes(Attributes{"value": `"quoted" <b>&'`})
	want := ` value="&#34;quoted&#34; &lt;b&gt;&amp;&#39;"`
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestAttributesImmutability(t *testing.T) {
	base := Attributes{"class": "a"}
	next := base.With("id", "x")
	merged := next.Merge(Attributes{"class": "b a", "id": "y"})

	if base.Has("id") {
		t.Fatalf("With mutated the receiver: %v", base)
	}
	if merged["class"] != "a b" {
		t.Fatalf("expected merged class list, got %v", merged["class"])
	}
	if merged["id"] != "y" || next["id"] != "x" {
		t.Fatalf("unexpected ids: merged=%v next=%v", merged["id"], next["id"])
	}

	removed := RemoveClass(merged, "a")
	if removed["class"] != "b" {
		t.Fatalf("expected class b, got %v", removed["class"])
	}
	if got := RemoveClass(removed, "b"); got.Has("class") {
		t.Fatalf("expected class attribute dropped, got %v", got)
	}
}

func TestTagAndVoid(t *testing.T) {
	if got := Tag("div", "<b>x</b>", Attributes{"class": "hint"}); got != `<div class="hint"><b>x</b></div>` {
		t.Fatalf("unexpected tag: %s", got)
	}
	if got := Tag("input", "ignored", Attributes{"type": "text"}); got != `<input type="text">` {
		t.Fatalf("unexpected void tag: %s", got)
	}
	if got := Tag("", "plain", nil); got != "plain" {
		t.Fatalf("expected bare content, got %s", got)
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{in: "x", want: "x", ok: true},
		{in: true, want: "1", ok: true},
		{in: false, want: "0", ok: true},
		{in: 42, want: "42", ok: true},
		{in: 1.5, want: "1.5", ok: true},
		{in: nil, want: "", ok: false},
		{in: []string{"a"}, want: "", ok: false},
	}
	for _, tc := range cases {
		got, ok := Stringify(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Stringify(%v) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizePattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: `^[a-z]+$`, want: `[a-z]+`, ok: true},
		{in: `\A\d{3}\z`, want: `\d{3}`, ok: true},
		{in: `price\$`, want: `price\$`, ok: true},
		{in: `(?i)^abc$`, ok: false},
		{in: `(?:ab)+`, want: `(?:ab)+`, ok: true},
		{in: `^$`, ok: false},
	}
	for _, tc := range cases {
		got, ok := NormalizePattern(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("NormalizePattern(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestContentSanitizesRawMarkup(t *testing.T) {
	if got := Content("<b>Bold</b>", true); got != "&lt;b&gt;Bold&lt;/b&gt;" {
		t.Fatalf("expected encoded content, got %q", got)
	}
	if got := Content(`<b>Bold</b><img src="x" onerror="alert(1)">`, false); got != "<b>Bold</b>" {
		t.Fatalf("expected sanitised content, got %q", got)
	}
}
