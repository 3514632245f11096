package browser

import (
	"fmt"
	"regexp"
	"strings"
)

var scriptTagRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)

// prepareSnapshot readies cached HTML for injection into a blank page:
// a <base href> is added when missing so relative resources resolve, and
// all <script> blocks are stripped so the restored DOM stays frozen.
func prepareSnapshot(html, url string) string {
	head := html
	if len(head) > 1000 {
		head = head[:1000]
	}

	if !strings.Contains(strings.ToLower(head), "<base") {
		html = strings.Replace(html, "<head>", fmt.Sprintf(`<head><base href="%s">`, url), 1)
	}

	return scriptTagRe.ReplaceAllString(html, "")
}
