package domain

import (
	"encoding/json"
	"strconv"
)

// Runtime autopilot settings are stored as flat key→string rows and mutated
// through the admin UI. Both schedulers re-read them on every invocation;
// nothing here is cached. Absent or unparseable values fall back to the
// defaults below.

// CreatorSettings drives the autonomous post-creation scheduler.
type CreatorSettings struct {
	Enabled           bool
	SourceURLs        []string
	ActorProbability  int // percent chance of a synthetic-member actor
	MaxPostsPerRun    int
	IntervalMinutes   int
	JitterMinutes     int
	BlackoutStartHour int
	BlackoutEndHour   int
	MaxKeywords       int
	DefaultCategoryID int64
	OpenAIAPIKey      string
	OpenAIModel       string
	TitlePrompt       string
	ChoicesPrompt     string
}

// ParseCreatorSettings builds an immutable typed view of the raw settings
// rows.
func ParseCreatorSettings(raw map[string]string) CreatorSettings {
	return CreatorSettings{
		Enabled:           raw["is_enabled"] == "true",
		SourceURLs:        parseStringList(raw["scraping_urls"]),
		ActorProbability:  parseIntDefault(raw["ai_user_probability"], 70),
		MaxPostsPerRun:    parseIntDefault(raw["max_posts_per_execution"], 5),
		IntervalMinutes:   parseIntDefault(raw["execution_interval"], 60),
		JitterMinutes:     parseIntDefault(raw["execution_variance"], 15),
		BlackoutStartHour: parseIntDefault(raw["no_create_start_hour"], 0),
		BlackoutEndHour:   parseIntDefault(raw["no_create_end_hour"], 6),
		MaxKeywords:       parseIntDefault(raw["max_keywords"], 3),
		DefaultCategoryID: int64(parseIntDefault(raw["default_category_id"], 25)),
		OpenAIAPIKey:      raw["openai_api_key"],
		OpenAIModel:       stringDefault(raw["openai_model"], "gpt-4o-mini"),
		TitlePrompt:       raw["title_prompt"],
		ChoicesPrompt:     raw["choices_prompt"],
	}
}

// EngagementSettings drives the engagement scheduler.
type EngagementSettings struct {
	Enabled           bool
	ActorProbability  int
	IntervalMinutes   int
	JitterMinutes     int
	BlackoutStartHour int
	BlackoutEndHour   int
	RecentPostsLimit  int
	CommentPrompt     string
	ReplyPrompt       string
	ActionWeights     map[EngagementAction]int
	OpenAIAPIKey      string
	OpenAIModel       string
}

// ParseEngagementSettings builds an immutable typed view of the raw settings
// rows.
func ParseEngagementSettings(raw map[string]string) EngagementSettings {
	weights := map[EngagementAction]int{
		ActionVote:        parseIntDefault(raw["action_weight_vote"], 40),
		ActionComment:     parseIntDefault(raw["action_weight_comment"], 20),
		ActionReply:       parseIntDefault(raw["action_weight_reply"], 10),
		ActionLikePost:    parseIntDefault(raw["action_weight_like_post"], 20),
		ActionLikeComment: parseIntDefault(raw["action_weight_like_comment"], 10),
	}

	return EngagementSettings{
		Enabled:           raw["is_enabled"] == "true",
		ActorProbability:  parseIntDefault(raw["ai_member_probability"], 70),
		IntervalMinutes:   parseIntDefault(raw["execution_interval"], 120),
		JitterMinutes:     parseIntDefault(raw["execution_variance"], 30),
		BlackoutStartHour: parseIntDefault(raw["no_run_start_hour"], 0),
		BlackoutEndHour:   parseIntDefault(raw["no_run_end_hour"], 6),
		RecentPostsLimit:  parseIntDefault(raw["recent_posts_limit"], 20),
		CommentPrompt:     raw["comment_prompt"],
		ReplyPrompt:       raw["reply_prompt"],
		ActionWeights:     weights,
		OpenAIAPIKey:      raw["openai_api_key"],
		OpenAIModel:       stringDefault(raw["openai_model"], "gpt-4o-mini"),
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func stringDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// parseStringList decodes a JSON-encoded string array, dropping empties.
// Malformed input yields an empty list, which the scheduler reports as
// "no sources configured".
func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil
	}
	out := list[:0]
	for _, v := range list {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
