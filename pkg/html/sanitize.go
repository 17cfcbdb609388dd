package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// Sanitize cleans raw markup supplied to widgets with encoding disabled so
// labels, hints and error messages may carry inline formatting without
// opening the page to script injection.
func Sanitize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return contentSanitizer().Sanitize(raw)
}

func contentSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"b", "strong", "i", "em", "u", "small", "mark", "code", "kbd",
			"sub", "sup", "br", "span", "abbr",
		)
		policy.AllowAttrs("class").OnElements("span", "code", "small", "mark")
		policy.AllowAttrs("title").OnElements("abbr", "span")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowElements("a")
		policy.RequireNoFollowOnLinks(true)

		contentPolicy = policy
	})
	return contentPolicy
}
