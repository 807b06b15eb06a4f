package autocreator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pollboard/pollboard-backend/internal/domain"
	"github.com/pollboard/pollboard-backend/internal/feed"
	"github.com/pollboard/pollboard-backend/internal/synth"
)

// Result is the outcome of one creation run. Ran is false when a gate
// skipped the run; Reason then names the gate.
type Result struct {
	Ran            bool
	Reason         string
	CreatedPostIDs []int64
}

// Run executes one creation pass: gate checks, then source feeds in
// configured order, first to last, turning unprocessed articles into posts
// until the per-run cap is reached. A single item's failure is isolated and
// logged; only settings problems abort the whole run.
func (s *Service) Run(ctx context.Context, kind domain.ExecutionKind) (Result, error) {
	release, acquired, err := s.store.AcquireCreatorLock(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("acquire run lock: %w", err)
	}
	if !acquired {
		return Result{Ran: false, Reason: "already running"}, nil
	}
	defer release()

	raw, err := s.store.CreatorSettings(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load creator settings: %w", err)
	}
	settings := domain.ParseCreatorSettings(raw)

	if !settings.Enabled {
		return Result{Ran: false, Reason: "disabled"}, nil
	}

	now := s.now()
	if domain.InBlackout(settings.BlackoutStartHour, settings.BlackoutEndHour, now.Hour()) {
		return Result{Ran: false, Reason: "blackout"}, nil
	}

	last, err := s.store.LastCreatorSuccess(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load last success: %w", err)
	}
	if !domain.IntervalElapsed(last, now, settings.IntervalMinutes, settings.JitterMinutes) {
		return Result{Ran: false, Reason: "interval"}, nil
	}

	if len(settings.SourceURLs) == 0 {
		s.appendLog(ctx, domain.CreatorLogEntry{
			ExecutionKind: kind,
			Status:        domain.ExecutionStatusFailed,
			ErrorMessage:  "no sources configured",
		})
		return Result{Ran: false, Reason: "no sources configured"}, nil
	}

	// Only settings problems abort the run. Without the category list every
	// post falls back to the default category.
	categories, err := s.taxonomy.List(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "category list unavailable",
			slog.String("error", err.Error()),
		)
		categories = nil
	}

	var created []int64
	for _, sourceURL := range settings.SourceURLs {
		if len(created) >= settings.MaxPostsPerRun {
			break
		}

		items, err := s.feeds.Fetch(ctx, sourceURL)
		if err != nil {
			s.appendLog(ctx, domain.CreatorLogEntry{
				ExecutionKind: kind,
				Status:        domain.ExecutionStatusFailed,
				SourceURL:     sourceURL,
				ErrorMessage:  err.Error(),
			})
			continue
		}

		for _, item := range items {
			if len(created) >= settings.MaxPostsPerRun {
				break
			}
			if postID, ok := s.processItem(ctx, kind, settings, categories, sourceURL, item); ok {
				created = append(created, postID)
			}
		}
	}

	s.log.InfoContext(ctx, "creation run finished",
		slog.Int("created", len(created)),
		slog.Int("sources", len(settings.SourceURLs)),
	)

	return Result{Ran: true, Reason: "completed", CreatedPostIDs: created}, nil
}

// processItem handles one feed entry end to end. Returns the new post id on
// success; any failure is logged and reported as a skip.
func (s *Service) processItem(ctx context.Context, kind domain.ExecutionKind, settings domain.CreatorSettings, categories []domain.Category, sourceURL string, item feed.Item) (int64, bool) {
	exists, err := s.posts.ExistsBySourceURL(ctx, item.Link)
	if err != nil {
		s.appendLog(ctx, domain.CreatorLogEntry{
			ExecutionKind: kind,
			Status:        domain.ExecutionStatusFailed,
			SourceURL:     sourceURL,
			ArticleURL:    item.Link,
			ErrorMessage:  err.Error(),
		})
		return 0, false
	}
	if exists {
		return 0, false
	}

	// Audit record first; the post id is backfilled after creation. The row
	// is never consulted for dedup, so a duplicate here is harmless.
	if err := s.store.RecordProcessed(ctx, domain.ProcessedArticle{
		SourceURL:    sourceURL,
		ArticleURL:   item.Link,
		ArticleTitle: item.Title,
	}); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		s.log.WarnContext(ctx, "processed record write failed",
			slog.String("article_url", item.Link),
			slog.String("error", err.Error()),
		)
	}

	survey, err := s.synth.GenerateSurvey(ctx, synth.Config{
		APIKey:        settings.OpenAIAPIKey,
		Model:         settings.OpenAIModel,
		TitlePrompt:   settings.TitlePrompt,
		ChoicesPrompt: settings.ChoicesPrompt,
	}, synth.Article{
		Title:   item.Title,
		Summary: item.Summary,
		URL:     item.Link,
	})
	if err != nil {
		s.appendLog(ctx, domain.CreatorLogEntry{
			ExecutionKind: kind,
			Status:        domain.ExecutionStatusError,
			SourceURL:     sourceURL,
			ArticleURL:    item.Link,
			ErrorMessage:  err.Error(),
		})
		return 0, false
	}

	actorID, err := s.actors.Select(ctx, settings.ActorProbability)
	if err != nil {
		s.appendLog(ctx, domain.CreatorLogEntry{
			ExecutionKind: kind,
			Status:        domain.ExecutionStatusFailed,
			SourceURL:     sourceURL,
			ArticleURL:    item.Link,
			ErrorMessage:  err.Error(),
		})
		return 0, false
	}

	// Best-effort page enrichment; a fetch failure leaves the item with the
	// data it already has.
	content := item.Summary
	ogImage := ""
	if meta, err := s.meta.Scrape(ctx, item.Link); err == nil {
		ogImage = meta.Image
		if meta.Description != "" {
			content = meta.Description
		}
	} else {
		s.log.WarnContext(ctx, "page enrichment failed",
			slog.String("article_url", item.Link),
			slog.String("error", err.Error()),
		)
	}

	categoryID := chooseCategory(categories, survey.Categories, survey.Title, content, settings.DefaultCategoryID)

	post, err := s.assemble(ctx, assembleInput{
		ActorID:      actorID,
		Title:        survey.Title,
		Content:      content,
		CategoryID:   categoryID,
		SourceURL:    item.Link,
		ThumbnailURL: item.ImageURL,
		OGImage:      ogImage,
		Choices:      survey.Choices,
		Keywords:     survey.Keywords,
		MaxKeywords:  settings.MaxKeywords,
	})
	if err != nil {
		s.appendLog(ctx, domain.CreatorLogEntry{
			ExecutionKind: kind,
			Status:        domain.ExecutionStatusFailed,
			SourceURL:     sourceURL,
			ArticleURL:    item.Link,
			ErrorMessage:  err.Error(),
		})
		return 0, false
	}

	if err := s.store.BackfillProcessedPostID(ctx, item.Link, post.ID); err != nil {
		s.log.WarnContext(ctx, "processed record backfill failed",
			slog.String("article_url", item.Link),
			slog.String("error", err.Error()),
		)
	}

	s.appendLog(ctx, domain.CreatorLogEntry{
		ExecutionKind: kind,
		Status:        domain.ExecutionStatusSuccess,
		SourceURL:     sourceURL,
		ArticleURL:    item.Link,
		PostID:        &post.ID,
		Message:       fmt.Sprintf("created post %d: %s", post.ID, post.Title),
	})

	s.log.InfoContext(ctx, "post created from article",
		slog.Int64("post_id", post.ID),
		slog.String("article_url", item.Link),
	)

	return post.ID, true
}
