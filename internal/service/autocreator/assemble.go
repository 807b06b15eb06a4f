package autocreator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pollboard/pollboard-backend/internal/domain"
)

// assembleInput carries everything needed to persist one new survey post.
type assembleInput struct {
	ActorID      int64
	Title        string
	Content      string
	CategoryID   int64
	SourceURL    string
	ThumbnailURL string
	OGImage      string
	Choices      []string
	Keywords     []string
	MaxKeywords  int
}

// assemble persists a post with its dependent records. The post and its
// vote-options row form a compensating unit: when the vote-options insert
// fails, the already-created post is deleted. A choice insert failing after
// that point is reported to the caller but does not roll anything back.
// Keyword linking and auto-tagging are best-effort.
func (s *Service) assemble(ctx context.Context, in assembleInput) (*domain.Post, error) {
	post := &domain.Post{
		UserID:     in.ActorID,
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: &in.CategoryID,
		Status:     domain.PostStatusPublished,
	}
	if in.SourceURL != "" {
		post.SourceURL = &in.SourceURL
	}
	if in.ThumbnailURL != "" {
		post.ThumbnailURL = &in.ThumbnailURL
	}
	if in.OGImage != "" {
		post.OGImage = &in.OGImage
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.posts.CreateVoteOptions(ctx, domain.VoteOptions{PostID: created.ID}); err != nil {
		if delErr := s.posts.Delete(ctx, created.ID); delErr != nil {
			s.log.ErrorContext(ctx, "post compensation delete failed",
				slog.Int64("post_id", created.ID),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, fmt.Errorf("create vote options: %w", err)
	}

	for _, label := range in.Choices {
		if _, err := s.posts.CreateChoice(ctx, created.ID, label); err != nil {
			return nil, fmt.Errorf("create choice %q: %w", label, err)
		}
	}

	s.attachKeywords(ctx, created.ID, in.Keywords, in.MaxKeywords)
	s.autoTag(ctx, created.ID, in.Title, in.Content)

	return created, nil
}

// attachKeywords find-or-creates each synthesized keyword label and links it
// to the post, up to the configured cap. Failures are logged and skipped.
func (s *Service) attachKeywords(ctx context.Context, postID int64, labels []string, maxKeywords int) {
	linked := 0
	for _, label := range labels {
		if linked >= maxKeywords {
			break
		}
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		kw, err := s.taxonomy.FindKeywordByName(ctx, label)
		if errors.Is(err, domain.ErrNotFound) {
			kw, err = s.taxonomy.CreateKeyword(ctx, label, slugify(label))
		}
		if err != nil {
			s.log.WarnContext(ctx, "keyword lookup failed",
				slog.String("keyword", label),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := s.taxonomy.LinkPostKeyword(ctx, postID, kw.ID); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			s.log.WarnContext(ctx, "keyword link failed",
				slog.String("keyword", label),
				slog.String("error", err.Error()),
			)
			continue
		}
		linked++
	}
}

// autoTag links every known keyword whose label appears in the post text.
// A naive containment scan over all keywords, intentionally simple.
func (s *Service) autoTag(ctx context.Context, postID int64, title, body string) {
	keywords, err := s.taxonomy.ListKeywords(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "auto-tag keyword list failed", slog.String("error", err.Error()))
		return
	}

	text := strings.ToLower(title + " " + stripTags(body))
	for _, kw := range keywords {
		if kw.Name == "" {
			continue
		}
		if !strings.Contains(text, strings.ToLower(kw.Name)) {
			continue
		}
		if err := s.taxonomy.LinkPostKeyword(ctx, postID, kw.ID); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			s.log.WarnContext(ctx, "auto-tag link failed",
				slog.String("keyword", kw.Name),
				slog.String("error", err.Error()),
			)
		}
	}
}
