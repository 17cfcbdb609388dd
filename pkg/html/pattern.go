package html

import (
	"regexp"
	"strings"
)

var inlineFlags = regexp.MustCompile(`^\(\?[imsU]+\)`)

// NormalizePattern converts a Go regular expression into a value suitable
// for the HTML pattern attribute. Browsers anchor the pattern implicitly, so
// leading ^/\A and trailing $/\z anchors are removed. Patterns relying on
// inline flags cannot be expressed and report ok=false.
func NormalizePattern(pattern string) (string, bool) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return "", false
	}
	if inlineFlags.MatchString(pattern) {
		return "", false
	}

	switch {
	case strings.HasPrefix(pattern, `\A`):
		pattern = pattern[2:]
	case strings.HasPrefix(pattern, "^"):
		pattern = pattern[1:]
	}

	switch {
	case strings.HasSuffix(pattern, `\z`) && !escaped(pattern, len(pattern)-2):
		pattern = pattern[:len(pattern)-2]
	case strings.HasSuffix(pattern, "$") && !escaped(pattern, len(pattern)-1):
		pattern = pattern[:len(pattern)-1]
	}

	if pattern == "" {
		return "", false
	}
	return pattern, true
}

// escaped reports whether the character at idx is preceded by an odd number
// of backslashes.
func escaped(s string, idx int) bool {
	count := 0
	for i := idx - 1; i >= 0 && s[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}
