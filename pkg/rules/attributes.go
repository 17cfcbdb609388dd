package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/html"
)

// Capability selects which rule families a widget can express as HTML
// attributes. Required is always honoured.
type Capability uint8

const (
	Length Capability = 1 << iota
	Pattern
	URLPattern
	Range

	None      Capability = 0
	TextLike             = Length | Pattern
	URLInputs            = Length | Pattern | URLPattern
)

const urlPatternTemplate = `(%s)://(([a-zA-Z0-9][a-zA-Z0-9_\-]*)(\.[a-zA-Z0-9][a-zA-Z0-9_\-]*)+)(:\d{1,5})?([?/#].*)?`

// Attributes maps the rule set onto HTML validation attributes allowed by
// caps. Later rules override earlier ones of the same family.
func Attributes(set []Rule, caps Capability) html.Attributes {
	attrs := html.Attributes{}
	for _, rule := range set {
		switch r := rule.(type) {
		case Required, *Required:
			attrs["required"] = true
		case HasLength:
			applyLength(attrs, r, caps)
		case *HasLength:
			applyLength(attrs, *r, caps)
		case MatchRegularExpression:
			applyPattern(attrs, r, caps)
		case *MatchRegularExpression:
			applyPattern(attrs, *r, caps)
		case Number:
			applyNumber(attrs, r, caps)
		case *Number:
			applyNumber(attrs, *r, caps)
		}
	}

	// URL patterns only apply when no explicit pattern rule is present.
	if caps&URLPattern != 0 && !attrs.Has("pattern") {
		for _, rule := range set {
			switch r := rule.(type) {
			case URL:
				attrs["pattern"] = URLPatternFor(r)
			case *URL:
				attrs["pattern"] = URLPatternFor(*r)
			}
		}
	}
	return attrs
}

// URLPatternFor renders the HTML pattern accepting the rule's schemes.
func URLPatternFor(rule URL) string {
	schemes := make([]string, 0, len(rule.Schemes()))
	for _, scheme := range rule.Schemes() {
		scheme = strings.TrimSpace(scheme)
		if scheme == "" {
			continue
		}
		schemes = append(schemes, regexp.QuoteMeta(scheme))
	}
	return strings.Replace(urlPatternTemplate, "%s", strings.Join(schemes, "|"), 1)
}

func applyLength(attrs html.Attributes, rule HasLength, caps Capability) {
	if caps&Length == 0 {
		return
	}
	if rule.Min > 0 {
		attrs["minlength"] = rule.Min
	}
	if rule.Max > 0 {
		attrs["maxlength"] = rule.Max
	}
}

func applyPattern(attrs html.Attributes, rule MatchRegularExpression, caps Capability) {
	if caps&Pattern == 0 || rule.Not {
		return
	}
	if pattern, ok := html.NormalizePattern(rule.Pattern); ok {
		attrs["pattern"] = pattern
	}
}

func applyNumber(attrs html.Attributes, rule Number, caps Capability) {
	if caps&Range == 0 {
		return
	}
	if rule.Min != nil {
		attrs["min"] = strconv.FormatFloat(*rule.Min, 'f', -1, 64)
	}
	if rule.Max != nil {
		attrs["max"] = strconv.FormatFloat(*rule.Max, 'f', -1, 64)
	}
	if rule.IntegerOnly {
		attrs["step"] = "1"
	}
}
