package autocreator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pollboard/pollboard-backend/internal/domain"
)

func testCategories() []domain.Category {
	return []domain.Category{
		{ID: 1, Name: "Politics"},
		{ID: 2, Name: "Tech"},
		{ID: 3, Name: "Technology News"},
		{ID: 4, Name: "Sports"},
	}
}

func TestResolveCategory_ExactBeatsSubstring(t *testing.T) {
	t.Parallel()

	// "Tech" is also a substring of "Technology News"; the exact tier must
	// win before the substring tier is ever tried.
	got := resolveCategory(testCategories(), "Tech", 25)
	assert.Equal(t, int64(2), got)
}

func TestResolveCategory_ExactCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := resolveCategory(testCategories(), "politics", 25)
	assert.Equal(t, int64(1), got)
}

func TestResolveCategory_Substring(t *testing.T) {
	t.Parallel()

	// No exact match; "Technology" is a substring of "Technology News".
	got := resolveCategory(testCategories(), "Technology", 25)
	assert.Equal(t, int64(3), got)
}

func TestResolveCategory_SubstringBothDirections(t *testing.T) {
	t.Parallel()

	// The label contains a category name.
	got := resolveCategory(testCategories(), "Winter Sports Coverage", 25)
	assert.Equal(t, int64(4), got)
}

func TestResolveCategory_FirstToken(t *testing.T) {
	t.Parallel()

	// Neither exact nor whole-label substring match, but the first token
	// "sports" substring-matches "Sports".
	got := resolveCategory(testCategories(), "sports, global rankings and analysis", 25)
	assert.Equal(t, int64(4), got)
}

func TestResolveCategory_DefaultFallback(t *testing.T) {
	t.Parallel()

	got := resolveCategory(testCategories(), "Gardening", 25)
	assert.Equal(t, int64(25), got)
}

func TestResolveCategory_EmptyLabel(t *testing.T) {
	t.Parallel()

	got := resolveCategory(testCategories(), "  ", 25)
	assert.Equal(t, int64(25), got)
}

func TestChooseCategory_ScansTextWithoutLabels(t *testing.T) {
	t.Parallel()

	got := chooseCategory(testCategories(), nil, "Big match tonight", "<p>A thriller in sports history.</p>", 25)
	assert.Equal(t, int64(4), got)
}

func TestChooseCategory_TextScanDefault(t *testing.T) {
	t.Parallel()

	got := chooseCategory(testCategories(), nil, "Nothing relevant", "plain text", 25)
	assert.Equal(t, int64(25), got)
}

func TestStripTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " hello  world ", stripTags("<p>hello</p><b>world</b>"))
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "climate-change", slugify("  Climate Change "))
	assert.Equal(t, "ai-2025", slugify("AI & 2025!"))
	assert.Equal(t, "", slugify("---"))
}
