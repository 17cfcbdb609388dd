package htmlform_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formfields/pkg/htmlform"
	"github.com/goliatone/go-formfields/pkg/model"
)

func TestParseAttribute(t *testing.T) {
	cases := []struct {
		in   string
		want htmlform.Attribute
	}{
		{in: "age", want: htmlform.Attribute{Name: "age"}},
		{in: "dates[0]", want: htmlform.Attribute{Name: "dates", Suffix: "[0]"}},
		{in: "[0]dates", want: htmlform.Attribute{Prefix: "[0]", Name: "dates"}},
		{in: "[0]dates[0]", want: htmlform.Attribute{Prefix: "[0]", Name: "dates", Suffix: "[0]"}},
		{in: "[0][1]dates[]", want: htmlform.Attribute{Prefix: "[0][1]", Name: "dates", Suffix: "[]"}},
		{in: "profile.city", want: htmlform.Attribute{Name: "profile.city"}},
	}
	for _, tc := range cases {
		got, err := htmlform.ParseAttribute(tc.in)
		if err != nil {
			t.Fatalf("ParseAttribute(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAttribute(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "a b", "[0]", "-"} {
		if _, err := htmlform.ParseAttribute(bad); !errors.Is(err, htmlform.ErrInvalidAttribute) {
			t.Fatalf("ParseAttribute(%q) expected ErrInvalidAttribute, got %v", bad, err)
		}
	}
}

func TestInputNameAndID(t *testing.T) {
	named := model.New("TypeForm", model.WithAttribute(model.Attribute{Name: "dates"}))

	cases := []struct {
		attribute string
		name      string
		id        string
	}{
		{attribute: "dates", name: "TypeForm[dates]", id: "typeform-dates"},
		{attribute: "[0]dates", name: "TypeForm[0][dates]", id: "typeform-0-dates"},
		{attribute: "dates[]", name: "TypeForm[dates][]", id: "typeform-dates"},
		{attribute: "[0]dates[1]", name: "TypeForm[0][dates][1]", id: "typeform-0-dates-1"},
		{attribute: "profile.city", name: "TypeForm[profile.city]", id: "typeform-profile-city"},
	}
	for _, tc := range cases {
		name, err := htmlform.InputName(named, tc.attribute)
		if err != nil {
			t.Fatalf("InputName(%q): %v", tc.attribute, err)
		}
		if name != tc.name {
			t.Fatalf("InputName(%q) = %q, want %q", tc.attribute, name, tc.name)
		}
		id, err := htmlform.InputID(named, tc.attribute)
		if err != nil {
			t.Fatalf("InputID(%q): %v", tc.attribute, err)
		}
		if id != tc.id {
			t.Fatalf("InputID(%q) = %q, want %q", tc.attribute, id, tc.id)
		}
	}
}

func TestInputNameUnscoped(t *testing.T) {
	anonymous := model.New("", model.WithAttribute(model.Attribute{Name: "dates"}))

	name, err := htmlform.InputName(anonymous, "dates[]")
	if err != nil {
		t.Fatalf("InputName: %v", err)
	}
	if name != "dates[]" {
		t.Fatalf("expected raw attribute as name, got %q", name)
	}
	if id, _ := htmlform.InputID(anonymous, "Dates Of Birth"); id != "" {
		t.Fatalf("expected invalid attribute to yield no id, got %q", id)
	}

	if _, err := htmlform.InputName(anonymous, "[0]dates"); !errors.Is(err, htmlform.ErrTabularInput) {
		t.Fatalf("expected ErrTabularInput, got %v", err)
	}
}

func TestAttributeAccessors(t *testing.T) {
	form := model.New("F", model.WithAttribute(model.Attribute{
		Name:        "dates",
		Value:       []string{"2024-01-01"},
		Hint:        "Pick dates",
		Placeholder: "yyyy-mm-dd",
	}))

	value, err := htmlform.AttributeValue(form, "[0]dates[]")
	if err != nil {
		t.Fatalf("AttributeValue: %v", err)
	}
	if got, ok := value.([]string); !ok || len(got) != 1 {
		t.Fatalf("unexpected value %#v", value)
	}
	if _, err := htmlform.AttributeValue(form, "missing"); !errors.Is(err, htmlform.ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got %v", err)
	}
	if got := htmlform.AttributeLabel(form, "[0]dates"); got != "Dates" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := htmlform.AttributeHint(form, "dates[]"); got != "Pick dates" {
		t.Fatalf("unexpected hint %q", got)
	}
	if got := htmlform.AttributePlaceholder(form, "dates"); got != "yyyy-mm-dd" {
		t.Fatalf("unexpected placeholder %q", got)
	}
}
