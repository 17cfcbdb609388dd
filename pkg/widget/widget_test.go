package widget

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	xhtml "golang.org/x/net/html"

	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/htmlform"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/rules"
)

func loginForm() *model.Form {
	return model.New("LoginForm",
		model.WithAttribute(model.Attribute{
			Name:        "login",
			Value:       "admin",
			Placeholder: "Your login",
			Rules:       []rules.Rule{rules.Required{}, rules.HasLength{Min: 3, Max: 20}},
		}),
		model.WithAttribute(model.Attribute{Name: "password", Value: "secret"}),
		model.WithAttribute(model.Attribute{Name: "remember", Value: true}),
		model.WithAttribute(model.Attribute{Name: "email", Value: "", Rules: []rules.Rule{rules.Email{}}}),
		model.WithAttribute(model.Attribute{
			Name:  "age",
			Value: 30,
			Rules: []rules.Rule{rules.Number{Min: rules.Bound(18), Max: rules.Bound(99), IntegerOnly: true}},
		}),
		model.WithAttribute(model.Attribute{Name: "tags", Value: []string{"a", "c"}}),
		model.WithAttribute(model.Attribute{Name: "color", Value: "b"}),
		model.WithAttribute(model.Attribute{Name: "bio", Value: "<b>hi</b>"}),
		model.WithAttribute(model.Attribute{
			Name:  "homepage",
			Rules: []rules.Rule{rules.URL{}},
		}),
	)
}

func render(t *testing.T, w Widget) string {
	t.Helper()
	out, err := w.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertParses(t, out)
	return out
}

func assertParses(t *testing.T, markup string) {
	t.Helper()
	if _, err := xhtml.ParseFragment(strings.NewReader(markup), nil); err != nil {
		t.Fatalf("markup does not parse: %v\n%s", err, markup)
	}
}

func TestInputControls(t *testing.T) {
	form := loginForm()

	cases := []struct {
		name string
		ctrl Control
		want string
	}{
		{
			name: "text with rules and placeholder",
			ctrl: Text(form, "login"),
			want: `<input type="text" id="loginform-login" name="LoginForm[login]" value="admin" maxlength="20" minlength="3" placeholder="Your login" required>`,
		},
		{
			name: "password never renders its value",
			ctrl: Password(form, "password"),
			want: `<input type="password" id="loginform-password" name="LoginForm[password]">`,
		},
		{
			name: "number range rules",
			ctrl: Number(form, "age"),
			want: `<input type="number" id="loginform-age" name="LoginForm[age]" value="30" min="18" max="99" step="1">`,
		},
		{
			name: "hidden skips required",
			ctrl: Hidden(form, "login"),
			want: `<input type="hidden" id="loginform-login" name="LoginForm[login]" value="admin">`,
		},
		{
			name: "textarea encodes content",
			ctrl: Textarea(form, "bio"),
			want: `<textarea id="loginform-bio" name="LoginForm[bio]">&lt;b&gt;hi&lt;/b&gt;</textarea>`,
		},
		{
			name: "overrides and extra attributes",
			ctrl: Text(form, "login", WithID("custom"), WithName("login"), WithClass("form-control"), WithPlaceholder("Login")),
			want: `<input type="text" id="custom" class="form-control" name="login" value="admin" maxlength="20" minlength="3" placeholder="Login" required>`,
		},
		{
			name: "suppressed id",
			ctrl: Email(form, "email", WithoutID()),
			want: `<input type="email" name="LoginForm[email]" value="">`,
		},
		{
			name: "tabular attribute",
			ctrl: Text(form, "[0]login"),
			want: `<input type="text" id="loginform-0-login" name="LoginForm[0][login]" value="admin" maxlength="20" minlength="3" placeholder="Your login" required>`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := render(t, tc.ctrl)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("markup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestControlWithoutModel(t *testing.T) {
	ctrl := Text(nil, "login")
	if _, err := ctrl.Render(); !errors.Is(err, ErrNoModel) {
		t.Fatalf("render: expected ErrNoModel, got %v", err)
	}
	if _, err := ctrl.InputID(); !errors.Is(err, ErrNoModel) {
		t.Fatalf("input id: expected ErrNoModel, got %v", err)
	}
}

func TestURLInputGetsSchemePattern(t *testing.T) {
	got := render(t, URL(loginForm(), "homepage"))
	want := `pattern="` + html.Encode(rules.URLPatternFor(rules.URL{})) + `"`
	if !strings.Contains(got, want) {
		t.Fatalf("expected %s in %s", want, got)
	}
}

func TestControlWithIsImmutable(t *testing.T) {
	base := Text(loginForm(), "login")
	derived := base.With(WithClass("wide"), WithAttr("data", map[string]any{"role": "login"}))

	if strings.Contains(render(t, base), "wide") {
		t.Fatalf("With mutated the base control")
	}
	got := render(t, derived)
	if !strings.Contains(got, `class="wide"`) || !strings.Contains(got, `data-role="login"`) {
		t.Fatalf("derived control missing attributes: %s", got)
	}
}

func TestValueMismatchReturnsValueError(t *testing.T) {
	form := loginForm()

	_, err := Text(form, "tags").Render()
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	var valueErr *ValueError
	if !errors.As(err, &valueErr) || valueErr.Kind != KindText {
		t.Fatalf("expected *ValueError for text, got %#v", err)
	}

	if _, err := CheckboxList(form, "login").Render(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected list mismatch error, got %v", err)
	}
	if _, err := Number(form, "login").Render(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected numeric mismatch error, got %v", err)
	}
}

func TestUnknownAttribute(t *testing.T) {
	_, err := Text(loginForm(), "missing").Render()
	if !errors.Is(err, htmlform.ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got %v", err)
	}
}

func TestCheckbox(t *testing.T) {
	form := loginForm()

	got := render(t, Checkbox(form, "remember"))
	want := `<input type="hidden" name="LoginForm[remember]" value="0">` + "\n" +
		`<label><input type="checkbox" id="loginform-remember" name="LoginForm[remember]" value="1" checked> Remember</label>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("checkbox mismatch (-want +got):\n%s", diff)
	}

	got = render(t, Checkbox(form, "remember", WithEnclosedByLabel(false), WithoutUncheck(), WithValue("yes")))
	want = `<input type="checkbox" id="loginform-remember" name="LoginForm[remember]" value="yes">`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bare checkbox mismatch (-want +got):\n%s", diff)
	}

	if !Checkbox(form, "remember").OwnsLabel() {
		t.Fatalf("enclosed checkbox should own its label")
	}
	if Checkbox(form, "remember", WithEnclosedByLabel(false)).OwnsLabel() {
		t.Fatalf("bare checkbox should not own its label")
	}
}

func TestRadioHasNoUncheckByDefault(t *testing.T) {
	got := render(t, Radio(loginForm(), "color", WithValue("b"), WithLabel("Blue")))
	want := `<label><input type="radio" id="loginform-color" name="LoginForm[color]" value="b" checked> Blue</label>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("radio mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckboxList(t *testing.T) {
	items := []Item{NewItem("a", "A"), NewItem("b", "B"), NewItem("c", "C & D")}
	got := render(t, CheckboxList(loginForm(), "tags", WithItems(items...), WithUncheckValue("")))
	want := strings.Join([]string{
		`<input type="hidden" name="LoginForm[tags]" value="">`,
		`<div id="loginform-tags">`,
		`<label><input type="checkbox" name="LoginForm[tags][]" value="a" checked> A</label>`,
		`<label><input type="checkbox" name="LoginForm[tags][]" value="b"> B</label>`,
		`<label><input type="checkbox" name="LoginForm[tags][]" value="c" checked> C &amp; D</label>`,
		`</div>`,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("checkbox list mismatch (-want +got):\n%s", diff)
	}
}

func TestRadioListMovesRequiredOntoItems(t *testing.T) {
	form := model.New("", model.WithAttribute(model.Attribute{
		Name:  "size",
		Value: "m",
		Rules: []rules.Rule{rules.Required{}},
	}))
	got := render(t, RadioList(form, "size",
		WithItems(NewItem("s", "Small"), NewItem("m", "Medium")),
		WithSeparator("<br>"),
		WithContainer("fieldset", html.Attributes{"class": "sizes"}),
	))
	want := `<fieldset id="size" class="sizes">` + "\n" +
		`<label><input type="radio" name="size" value="s" required> Small</label><br>` +
		`<label><input type="radio" name="size" value="m" checked required> Medium</label>` + "\n" +
		`</fieldset>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("radio list mismatch (-want +got):\n%s", diff)
	}
}

func TestListItemFormatter(t *testing.T) {
	got := render(t, RadioList(loginForm(), "color",
		WithItems(NewItem("a", "A"), NewItem("b", "B")),
		WithContainer("", nil),
		WithItemFormatter(func(ctx ItemContext) string {
			mark := " "
			if ctx.Checked {
				mark = "x"
			}
			return "<span>[" + mark + "] " + html.Encode(ctx.Item.Label) + "</span>"
		}),
	))
	want := "<span>[ ] A</span>\n<span>[x] B</span>"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestSelect(t *testing.T) {
	form := loginForm()
	got := render(t, Select(form, "color",
		WithPrompt("Pick one", ""),
		WithItems(
			NewItem("a", "A"),
			NewItem("b", "B"),
			Group("More", NewItem("c", "C")),
		),
	))
	want := strings.Join([]string{
		`<select id="loginform-color" name="LoginForm[color]">`,
		`<option value="">Pick one</option>`,
		`<option value="a">A</option>`,
		`<option value="b" selected>B</option>`,
		`<optgroup label="More">`,
		`<option value="c">C</option>`,
		`</optgroup>`,
		`</select>`,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("select mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectMultipleAndListBox(t *testing.T) {
	form := loginForm()
	items := WithItems(NewItem("a", "A"), NewItem("b", "B"), NewItem("c", "C"))

	got := render(t, Select(form, "tags", items, WithMultiple(), WithUnselectValue("")))
	want := strings.Join([]string{
		`<input type="hidden" name="LoginForm[tags]" value="">`,
		`<select id="loginform-tags" name="LoginForm[tags][]" multiple>`,
		`<option value="a" selected>A</option>`,
		`<option value="b">B</option>`,
		`<option value="c" selected>C</option>`,
		`</select>`,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("multiple select mismatch (-want +got):\n%s", diff)
	}

	got = render(t, ListBox(form, "color", items))
	if !strings.HasPrefix(got, `<select id="loginform-color" name="LoginForm[color]" size="4">`) {
		t.Fatalf("list box should default to size 4: %s", got)
	}

	if _, err := Select(form, "tags", items).Render(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("single select bound to a slice should fail, got %v", err)
	}
}

func TestFileMultiple(t *testing.T) {
	form := model.New("Upload", model.WithAttribute(model.Attribute{Name: "files"}))
	got := render(t, File(form, "files", WithMultiple()))
	want := `<input type="file" id="upload-files" name="Upload[files][]" multiple>`
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestLabelHintError(t *testing.T) {
	form := model.New("LoginForm", model.WithAttribute(model.Attribute{
		Name:  "login",
		Label: "Your <login>",
		Hint:  "Pick something memorable",
	}))
	form.Errors().Add("login", "Login is taken")

	cases := []struct {
		name string
		w    Widget
		want string
	}{
		{"label", NewLabel(form, "login"), `<label for="loginform-login">Your &lt;login&gt;</label>`},
		{"label without for", NewLabel(form, "login", WithFor(""), WithLabel("Login")), `<label>Login</label>`},
		{"hint", NewHint(form, "login", WithClass("form-text")), `<div class="form-text">Pick something memorable</div>`},
		{"error", NewError(form, "login", WithTag("span")), `<span>Login is taken</span>`},
		{"raw error is sanitised", NewError(form, "login", WithEncode(false), WithMessage(`<b>bad</b><script>x</script>`)), `<div><b>bad</b></div>`},
		{"empty hint", NewHint(form, "login", WithMessage("")), ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, render(t, tc.w)); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorSummary(t *testing.T) {
	form := loginForm()
	if got := render(t, NewErrorSummary(form)); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}

	form.Errors().Add("login", "Login is too short.")
	form.Errors().Add("login", "Login must be unique.")
	form.Errors().Add("email", "Email is invalid.")
	form.Errors().AddForm("Service unavailable.")

	got := render(t, NewErrorSummary(form, WithClass("alert")))
	want := strings.Join([]string{
		`<div class="alert">`,
		`<p>Please fix the following errors:</p>`,
		`<ul>`,
		`<li>Service unavailable.</li>`,
		`<li>Login is too short.</li>`,
		`<li>Email is invalid.</li>`,
		`</ul>`,
		`</div>`,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	got = render(t, NewErrorSummary(form, WithShowAllErrors(), WithOnlyAttributes("login"), WithHeader(""), WithFooter("Thanks")))
	want = strings.Join([]string{
		`<div>`,
		`<ul>`,
		`<li>Login is too short.</li>`,
		`<li>Login must be unique.</li>`,
		`</ul>`,
		`Thanks`,
		`</div>`,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filtered summary mismatch (-want +got):\n%s", diff)
	}
}

func TestFormBeginEnd(t *testing.T) {
	got, err := NewForm("/users/1", "PUT", WithCSRF("_csrf", "tok<en>")).Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	want := strings.Join([]string{
		`<form action="/users/1" method="post">`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<input type="hidden" name="_csrf" value="tok&lt;en&gt;">`,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("begin mismatch (-want +got):\n%s", diff)
	}

	got, err = NewForm("/search?q=go&page=2", "GET").Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	want = strings.Join([]string{
		`<form action="/search" method="get">`,
		`<input type="hidden" name="page" value="2">`,
		`<input type="hidden" name="q" value="go">`,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("get begin mismatch (-want +got):\n%s", diff)
	}

	if end := NewForm("", "").End(); end != "</form>" {
		t.Fatalf("unexpected end tag %q", end)
	}
}

func TestHiddenFieldHelpers(t *testing.T) {
	merged := MergeHiddenFields(
		[]HiddenField{CSRFToken("_csrf", "a"), VersionField("version", 3)},
		HiddenInput(" _csrf ", "b"),
		HiddenInput("", "ignored"),
	)
	want := []HiddenField{{Name: "_csrf", Value: "b"}, {Name: "version", Value: "3"}}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}

	sorted := SortedHiddenFields(map[string]string{"b": "2", "a": "1"})
	if diff := cmp.Diff([]HiddenField{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, sorted); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
}

func TestButtons(t *testing.T) {
	cases := []struct {
		w    Widget
		want string
	}{
		{SubmitButton("Save", WithClass("btn")), `<button type="submit" class="btn">Save</button>`},
		{ResetButton("Reset"), `<button type="reset">Reset</button>`},
		{NewButton("Go & back", WithName("action"), WithValue("back")), `<button type="button" name="action" value="back">Go &amp; back</button>`},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, render(t, tc.w)); diff != "" {
			t.Fatalf("button mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCustomRegistry(t *testing.T) {
	registry := DefaultRegistry().Clone()
	registry.MustRegister("stars", Descriptor{
		Render: func(buf *bytes.Buffer, ctx RenderContext) error {
			buf.WriteString(html.Tag("div", "*****", html.Attributes{"id": ctx.ID, "data": map[string]any{"name": ctx.Name}}))
			return nil
		},
	})

	got := render(t, New("stars", loginForm(), "age", WithRegistry(registry)))
	want := `<div id="loginform-age" data-name="LoginForm[age]">*****</div>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("custom component mismatch (-want +got):\n%s", diff)
	}

	if DefaultRegistry().Has("stars") {
		t.Fatalf("clone registration leaked into the default registry")
	}
	if _, err := New("stars", loginForm(), "age").Render(); err == nil {
		t.Fatalf("expected unregistered kind error")
	}
}

func TestResolver(t *testing.T) {
	form := model.New("",
		model.WithAttribute(model.Attribute{Name: "contact", Rules: []rules.Rule{rules.Email{}}}),
		model.WithAttribute(model.Attribute{Name: "site", Rules: []rules.Rule{rules.URL{}}}),
		model.WithAttribute(model.Attribute{Name: "count", Rules: []rules.Rule{rules.Number{}}}),
		model.WithAttribute(model.Attribute{Name: "active", Value: false}),
		model.WithAttribute(model.Attribute{Name: "newPassword"}),
		model.WithAttribute(model.Attribute{Name: "title"}),
	)

	resolver := NewResolver()
	want := map[string]Kind{
		"contact":     KindEmail,
		"site":        KindURL,
		"count":       KindNumber,
		"active":      KindCheckbox,
		"newPassword": KindPassword,
		"title":       KindText,
	}
	for attribute, kind := range want {
		if got := resolver.Resolve(form, attribute); got != kind {
			t.Errorf("%s: want %s, got %s", attribute, kind, got)
		}
	}

	resolver.Register(KindTextarea, 100, func(_ model.FormModel, attribute string) bool {
		return attribute == "title"
	})
	if got := resolver.Control(form, "title").Kind(); got != KindTextarea {
		t.Fatalf("expected custom matcher to win, got %s", got)
	}
}
