package model

import (
	"regexp"
	"strings"
	"unicode"
)

var labelSeparators = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler turns an attribute name into a human label: "first_name"
// becomes "First Name", "createdAt" becomes "Created At" and "userID"
// becomes "User ID". Only the last segment of a dotted path is used.
func DefaultLabeler(attribute string) string {
	if idx := strings.LastIndexByte(attribute, '.'); idx >= 0 {
		attribute = attribute[idx+1:]
	}
	if attribute == "" {
		return ""
	}

	var words []string
	for _, chunk := range labelSeparators.Split(attribute, -1) {
		for _, word := range splitCamel(chunk) {
			words = append(words, capitalize(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(input string) []string {
	runes := []rune(input)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur)) ||
			(unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

// capitalize upper-cases the first rune and keeps all-caps acronyms intact.
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	if strings.ToUpper(word) == word {
		return word
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
