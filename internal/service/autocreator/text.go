package autocreator

import (
	"regexp"
	"strings"
	"unicode"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// stripTags removes HTML tags, replacing each with a space so adjacent
// words stay separated.
func stripTags(s string) string {
	return tagRe.ReplaceAllString(s, " ")
}

// slugify builds a URL-safe slug from a keyword label.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteRune('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
