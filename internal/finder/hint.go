package finder

import (
	"regexp"
	"strings"
)

// Hints may wrap the effective search text in locator-like syntax, e.g.
// "text='Sign In'" or "placeholder='Email'". The first matching wrapper
// wins; otherwise the trimmed hint is used verbatim.
var hintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)text=['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?i)label=['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?i)placeholder=['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?i)aria-label=['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?i)^['"]([^'"]+)['"]$`),
}

func parseHint(hint string) string {
	for _, pattern := range hintPatterns {
		if m := pattern.FindStringSubmatch(hint); m != nil {
			return m[1]
		}
	}

	return strings.TrimSpace(hint)
}
