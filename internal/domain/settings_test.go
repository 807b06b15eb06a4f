package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreatorSettings_Defaults(t *testing.T) {
	t.Parallel()

	s := ParseCreatorSettings(map[string]string{})

	assert.False(t, s.Enabled)
	assert.Empty(t, s.SourceURLs)
	assert.Equal(t, 70, s.ActorProbability)
	assert.Equal(t, 5, s.MaxPostsPerRun)
	assert.Equal(t, 60, s.IntervalMinutes)
	assert.Equal(t, 15, s.JitterMinutes)
	assert.Equal(t, 0, s.BlackoutStartHour)
	assert.Equal(t, 6, s.BlackoutEndHour)
	assert.Equal(t, 3, s.MaxKeywords)
	assert.Equal(t, int64(25), s.DefaultCategoryID)
	assert.Equal(t, "gpt-4o-mini", s.OpenAIModel)
}

func TestParseCreatorSettings_Values(t *testing.T) {
	t.Parallel()

	s := ParseCreatorSettings(map[string]string{
		"is_enabled":              "true",
		"scraping_urls":           `["https://a.example/rss","https://b.example/rss"]`,
		"ai_user_probability":     "30",
		"max_posts_per_execution": "2",
		"execution_interval":      "90",
		"execution_variance":      "10",
		"no_create_start_hour":    "22",
		"no_create_end_hour":      "7",
		"openai_model":            "gpt-4o",
	})

	assert.True(t, s.Enabled)
	require.Len(t, s.SourceURLs, 2)
	assert.Equal(t, "https://a.example/rss", s.SourceURLs[0])
	assert.Equal(t, 30, s.ActorProbability)
	assert.Equal(t, 2, s.MaxPostsPerRun)
	assert.Equal(t, 90, s.IntervalMinutes)
	assert.Equal(t, 10, s.JitterMinutes)
	assert.Equal(t, 22, s.BlackoutStartHour)
	assert.Equal(t, 7, s.BlackoutEndHour)
	assert.Equal(t, "gpt-4o", s.OpenAIModel)
}

func TestParseCreatorSettings_MalformedValues(t *testing.T) {
	t.Parallel()

	s := ParseCreatorSettings(map[string]string{
		"scraping_urls":       "not json",
		"ai_user_probability": "seventy",
		"is_enabled":          "yes", // only the literal "true" enables
	})

	assert.False(t, s.Enabled)
	assert.Empty(t, s.SourceURLs)
	assert.Equal(t, 70, s.ActorProbability)
}

func TestParseEngagementSettings_Defaults(t *testing.T) {
	t.Parallel()

	s := ParseEngagementSettings(map[string]string{})

	assert.False(t, s.Enabled)
	assert.Equal(t, 70, s.ActorProbability)
	assert.Equal(t, 120, s.IntervalMinutes)
	assert.Equal(t, 30, s.JitterMinutes)
	assert.Equal(t, 20, s.RecentPostsLimit)
	assert.Equal(t, 40, s.ActionWeights[ActionVote])
	assert.Equal(t, 20, s.ActionWeights[ActionComment])
	assert.Equal(t, 10, s.ActionWeights[ActionReply])
	assert.Equal(t, 20, s.ActionWeights[ActionLikePost])
	assert.Equal(t, 10, s.ActionWeights[ActionLikeComment])
}

func TestParseEngagementSettings_WeightOverride(t *testing.T) {
	t.Parallel()

	s := ParseEngagementSettings(map[string]string{
		"action_weight_vote":    "0",
		"action_weight_comment": "100",
	})

	assert.Equal(t, 0, s.ActionWeights[ActionVote])
	assert.Equal(t, 100, s.ActionWeights[ActionComment])
}

func TestParseEngagementAction(t *testing.T) {
	t.Parallel()

	for _, a := range EngagementActions() {
		got, err := ParseEngagementAction(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseEngagementAction("downvote")
	require.ErrorIs(t, err, ErrValidation)
}
