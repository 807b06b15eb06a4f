package autocreator

import (
	"strings"

	"github.com/pollboard/pollboard-backend/internal/domain"
)

// resolveCategory maps a free-text label to a category id using three tiers,
// each tried only when the previous one found nothing:
//
//  1. exact name match (case-insensitive)
//  2. substring match in either direction (case-insensitive)
//  3. substring match of the label's first token
//
// A blank label or a label matching no category yields defaultID. Never
// fails.
func resolveCategory(cats []domain.Category, label string, defaultID int64) int64 {
	label = strings.TrimSpace(label)
	if label == "" {
		return defaultID
	}

	for _, c := range cats {
		if strings.EqualFold(c.Name, label) {
			return c.ID
		}
	}

	lower := strings.ToLower(label)
	for _, c := range cats {
		name := strings.ToLower(c.Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, lower) || strings.Contains(lower, name) {
			return c.ID
		}
	}

	if token := strings.ToLower(firstToken(label)); token != "" {
		for _, c := range cats {
			name := strings.ToLower(c.Name)
			if name == "" {
				continue
			}
			if strings.Contains(name, token) || strings.Contains(token, name) {
				return c.ID
			}
		}
	}

	return defaultID
}

// firstToken splits on whitespace and common label separators and returns
// the first piece.
func firstToken(label string) string {
	fields := strings.FieldsFunc(label, func(r rune) bool {
		switch r {
		case ' ', '\t', ',', '·', '/', ';':
			return true
		}
		return false
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// matchCategoryInText scans text for the first category whose name appears
// as a substring. First match wins; there is no best-match scoring.
func matchCategoryInText(cats []domain.Category, text string) (int64, bool) {
	lower := strings.ToLower(text)
	for _, c := range cats {
		if c.Name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(c.Name)) {
			return c.ID, true
		}
	}
	return 0, false
}

// chooseCategory picks the category for a new post. A synthesized label goes
// through the tiered resolver; with no labels at all, the post text is
// scanned for a category name before falling back to the default.
func chooseCategory(cats []domain.Category, labels []string, title, body string, defaultID int64) int64 {
	if len(labels) > 0 {
		return resolveCategory(cats, labels[0], defaultID)
	}
	if id, ok := matchCategoryInText(cats, title+" "+stripTags(body)); ok {
		return id
	}
	return defaultID
}
