package rules_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/html"
	"github.com/goliatone/go-formfields/pkg/rules"
)

func TestAttributesTextLike(t *testing.T) {
	set := []rules.Rule{
		rules.Required{},
		rules.HasLength{Min: 4, Max: 40},
		rules.MatchRegularExpression{Pattern: `^\w+$`},
		rules.Number{Min: rules.Bound(1)},
	}

	got := rules.Attributes(set, rules.TextLike)
	want := html.Attributes{
		"required":  true,
		"minlength": 4,
		"maxlength": 40,
		"pattern":   `\w+`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributesRequiredOnly(t *testing.T) {
	set := []rules.Rule{
		&rules.Required{},
		rules.HasLength{Max: 10},
		rules.MatchRegularExpression{Pattern: `^a$`},
	}
	got := rules.Attributes(set, rules.None)
	if diff := cmp.Diff(html.Attributes{"required": true}, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributesSkipsNegatedAndFlaggedPatterns(t *testing.T) {
	set := []rules.Rule{
		rules.MatchRegularExpression{Pattern: `^admin$`, Not: true},
		rules.MatchRegularExpression{Pattern: `(?i)^abc$`},
	}
	if got := rules.Attributes(set, rules.TextLike); len(got) != 0 {
		t.Fatalf("expected no attributes, got %v", got)
	}
}

func TestAttributesRange(t *testing.T) {
	set := []rules.Rule{
		rules.Number{Min: rules.Bound(0), Max: rules.Bound(99.5), IntegerOnly: true},
	}
	got := rules.Attributes(set, rules.Range)
	want := html.Attributes{"min": "0", "max": "99.5", "step": "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributesURLPattern(t *testing.T) {
	set := []rules.Rule{rules.URL{ValidSchemes: []string{"https", "ftp"}}}
	got := rules.Attributes(set, rules.URLInputs)
	want := rules.URLPatternFor(rules.URL{ValidSchemes: []string{"https", "ftp"}})
	if got["pattern"] != want {
		t.Fatalf("expected url pattern %q, got %v", want, got["pattern"])
	}
	if want[:11] != "(https|ftp)" {
		t.Fatalf("expected scheme alternation prefix, got %q", want)
	}

	explicit := append(set, rules.MatchRegularExpression{Pattern: `^https://example\.com/.*$`})
	got = rules.Attributes(explicit, rules.URLInputs)
	if got["pattern"] != `https://example\.com/.*` {
		t.Fatalf("expected explicit pattern to win, got %v", got["pattern"])
	}

	if got := rules.Attributes(set, rules.TextLike); got.Has("pattern") {
		t.Fatalf("url pattern must not apply to plain text inputs")
	}
}

func TestHas(t *testing.T) {
	set := []rules.Rule{rules.Email{}, &rules.Required{}}
	if !rules.Has(set, rules.NameRequired) || !rules.Has(set, rules.NameEmail) {
		t.Fatalf("expected rules to be detected")
	}
	if rules.Has(set, rules.NameURL) {
		t.Fatalf("unexpected url rule")
	}
}
