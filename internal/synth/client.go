// Package synth generates survey content from source articles using a
// chat-completion model.
package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ErrEmptyOutput is returned when the model produces no usable text. The
// synthesizer fails closed: a malformed result aborts the item, it never
// returns a partially valid structure.
var ErrEmptyOutput = errors.New("synth: model returned empty output")

// Article is the input for survey synthesis.
type Article struct {
	Title   string
	Summary string
	URL     string
}

// Survey is the structured synthesis result.
type Survey struct {
	Title      string
	Choices    []string
	Categories []string
	Keywords   []string
}

// Config carries the per-invocation model parameters. Settings are re-read
// on every scheduler run, so the key and prompts arrive per call rather
// than at construction.
type Config struct {
	APIKey        string
	Model         string
	TitlePrompt   string
	ChoicesPrompt string
	BaseURL       string
}

// fallbackChoices is used when the model's choice list cannot be parsed
// into at least two options.
var fallbackChoices = []string{"Agree", "Disagree"}

// Client calls the chat-completion API.
type Client struct {
	timeout time.Duration
	log     *slog.Logger
}

// NewClient creates a Client with the given per-call timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		timeout: timeout,
		log:     logger.With("adapter", "synth"),
	}
}

// GenerateSurvey turns a source article into a survey: a question title, at
// least two answer choices, and category/keyword labels. Three model calls,
// each with the configured timeout.
func (c *Client) GenerateSurvey(ctx context.Context, cfg Config, article Article) (*Survey, error) {
	api := c.apiClient(cfg)

	titlePrompt := cfg.TitlePrompt
	if titlePrompt == "" {
		titlePrompt = "Turn the following news article into a single neutral survey question."
	}
	title, err := c.complete(ctx, api, cfg.Model, titlePrompt,
		fmt.Sprintf("Title: %s\nSummary: %s", article.Title, article.Summary))
	if err != nil {
		return nil, fmt.Errorf("synth: generate title: %w", err)
	}
	title = cleanLine(title)
	if title == "" {
		return nil, fmt.Errorf("synth: title for %q: %w", article.URL, ErrEmptyOutput)
	}

	choicesPrompt := cfg.ChoicesPrompt
	if choicesPrompt == "" {
		choicesPrompt = "List between two and four short answer choices for this survey question, one per line."
	}
	rawChoices, err := c.complete(ctx, api, cfg.Model, choicesPrompt, title)
	if err != nil {
		return nil, fmt.Errorf("synth: generate choices: %w", err)
	}
	choices := parseChoices(rawChoices)
	if len(choices) < 2 {
		choices = fallbackChoices
	}

	rawTaxonomy, err := c.complete(ctx, api, cfg.Model,
		"For the survey question below, reply with exactly two lines:\nCategories: <comma-separated category labels>\nKeywords: <comma-separated keyword labels>",
		title)
	if err != nil {
		return nil, fmt.Errorf("synth: generate taxonomy: %w", err)
	}
	categories, keywords := parseTaxonomy(rawTaxonomy)

	c.log.DebugContext(ctx, "survey synthesized",
		slog.String("article_url", article.URL),
		slog.Int("choices", len(choices)),
		slog.Int("categories", len(categories)),
		slog.Int("keywords", len(keywords)),
	)

	return &Survey{
		Title:      title,
		Choices:    choices,
		Categories: categories,
		Keywords:   keywords,
	}, nil
}

// GenerateComment produces a short comment on a survey post.
func (c *Client) GenerateComment(ctx context.Context, cfg Config, prompt, postTitle, postBody string) (string, error) {
	if prompt == "" {
		prompt = "Write one short casual comment reacting to this survey, in the voice of an ordinary forum member."
	}
	text, err := c.complete(ctx, c.apiClient(cfg), cfg.Model, prompt,
		fmt.Sprintf("Survey: %s\n%s", postTitle, postBody))
	if err != nil {
		return "", fmt.Errorf("synth: generate comment: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("synth: comment: %w", ErrEmptyOutput)
	}
	return text, nil
}

// GenerateReply produces a short reply to an existing comment.
func (c *Client) GenerateReply(ctx context.Context, cfg Config, prompt, postTitle, parentComment string) (string, error) {
	if prompt == "" {
		prompt = "Write one short casual reply to this comment, in the voice of an ordinary forum member."
	}
	text, err := c.complete(ctx, c.apiClient(cfg), cfg.Model, prompt,
		fmt.Sprintf("Survey: %s\nComment: %s", postTitle, parentComment))
	if err != nil {
		return "", fmt.Errorf("synth: generate reply: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("synth: reply: %w", ErrEmptyOutput)
	}
	return text, nil
}

func (c *Client) apiClient(cfg Config) *openai.Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(apiCfg)
}

func (c *Client) complete(ctx context.Context, api *openai.Client, model, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyOutput
	}
	return resp.Choices[0].Message.Content, nil
}

// cleanLine strips surrounding whitespace and quotes from a single-line
// model answer.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"“”`)
	return strings.TrimSpace(s)
}

// parseChoices splits model output into choice labels, one per line,
// stripping list markers like "1." or "-".
func parseChoices(raw string) []string {
	var choices []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•0123456789.) ")
		line = cleanLine(line)
		if line == "" {
			continue
		}
		choices = append(choices, line)
	}
	return choices
}

// parseTaxonomy pulls "Categories:" and "Keywords:" lines out of the model
// answer. Missing lines yield empty slices, never an error.
func parseTaxonomy(raw string) (categories, keywords []string) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case hasPrefixFold(line, "categories:"):
			categories = splitLabels(line[len("categories:"):])
		case hasPrefixFold(line, "keywords:"):
			keywords = splitLabels(line[len("keywords:"):])
		}
	}
	return categories, keywords
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func splitLabels(s string) []string {
	var labels []string
	for _, part := range strings.Split(s, ",") {
		part = cleanLine(part)
		if part == "" {
			continue
		}
		labels = append(labels, part)
	}
	return labels
}
