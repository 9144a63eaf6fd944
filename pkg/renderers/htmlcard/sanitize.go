package htmlcard

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// sanitizeMarkup strips everything but a small inline vocabulary, enough for
// emphasised or linked attribute values without opening the card to script
// injection.
func sanitizeMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(markupSanitizer().Sanitize(trimmed))
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "code", "small", "span", "br")
		policy.AllowAttrs("class").OnElements("span")
		policy.AllowAttrs("href", "title").OnElements("a")
		policy.AllowElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)

		markupPolicy = policy
	})
	return markupPolicy
}
