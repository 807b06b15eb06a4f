package engagement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pollboard/pollboard-backend/internal/domain"
)

// ExecuteAction performs one manually triggered engagement action against a
// post. Exactly one log row is written per attempt, success or failure.
func (s *Service) ExecuteAction(ctx context.Context, postID int64, action domain.EngagementAction) (string, error) {
	raw, err := s.store.EngagementSettings(ctx)
	if err != nil {
		s.LogFailure(ctx, domain.ExecutionKindManual, &postID, &action, err.Error())
		return "", fmt.Errorf("load engagement settings: %w", err)
	}
	settings := domain.ParseEngagementSettings(raw)

	return s.execute(ctx, domain.ExecutionKindManual, settings, postID, action)
}

// execute selects an actor, dispatches the action, and logs the outcome.
func (s *Service) execute(ctx context.Context, kind domain.ExecutionKind, settings domain.EngagementSettings, postID int64, action domain.EngagementAction) (string, error) {
	actorID, err := s.actors.Select(ctx, settings.ActorProbability)
	if err != nil {
		s.appendLog(ctx, domain.EngagementLogEntry{
			ExecutionKind: kind,
			Status:        domain.ExecutionStatusFailed,
			PostID:        &postID,
			Action:        &action,
			ErrorMessage:  err.Error(),
		})
		return "", fmt.Errorf("select actor: %w", err)
	}

	msg, err := s.perform(ctx, settings, actorID, postID, action)

	entry := domain.EngagementLogEntry{
		ExecutionKind: kind,
		Status:        domain.ExecutionStatusSuccess,
		PostID:        &postID,
		UserID:        &actorID,
		Action:        &action,
		Message:       msg,
	}
	if err != nil {
		entry.Status = domain.ExecutionStatusFailed
		entry.Message = ""
		entry.ErrorMessage = err.Error()
	}
	s.appendLog(ctx, entry)

	if err != nil {
		s.log.WarnContext(ctx, "engagement action failed",
			slog.Int64("post_id", postID),
			slog.Int64("actor_id", actorID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	s.log.InfoContext(ctx, "engagement action executed",
		slog.Int64("post_id", postID),
		slog.Int64("actor_id", actorID),
		slog.String("action", string(action)),
	)
	return msg, nil
}

func (s *Service) perform(ctx context.Context, settings domain.EngagementSettings, actorID, postID int64, action domain.EngagementAction) (string, error) {
	switch action {
	case domain.ActionVote:
		return s.vote(ctx, actorID, postID)
	case domain.ActionComment:
		return s.comment(ctx, settings, actorID, postID)
	case domain.ActionReply:
		return s.reply(ctx, settings, actorID, postID)
	case domain.ActionLikePost:
		return s.likePost(ctx, actorID, postID)
	case domain.ActionLikeComment:
		return s.likeComment(ctx, actorID, postID)
	}
	return "", fmt.Errorf("action type %q: %w", action, domain.ErrValidation)
}

// vote inserts a vote-history row for a random choice and bumps its counter
// atomically in the store.
func (s *Service) vote(ctx context.Context, actorID, postID int64) (string, error) {
	choices, err := s.posts.ListChoices(ctx, postID)
	if err != nil {
		return "", fmt.Errorf("list choices: %w", err)
	}
	if len(choices) == 0 {
		return "", fmt.Errorf("post %d has no vote choices: %w", postID, domain.ErrNotFound)
	}

	choice := choices[s.randInt(len(choices))]

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.posts.InsertVote(ctx, domain.VoteRecord{
			PostID:   postID,
			UserID:   actorID,
			ChoiceID: choice.ID,
		}); err != nil {
			return fmt.Errorf("insert vote: %w", err)
		}
		if err := s.posts.IncrementVoteCount(ctx, choice.ID); err != nil {
			return fmt.Errorf("increment vote count: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("voted for choice %d", choice.ID), nil
}

// comment casts a vote first, then generates and inserts an approved
// top-level comment.
func (s *Service) comment(ctx context.Context, settings domain.EngagementSettings, actorID, postID int64) (string, error) {
	if settings.OpenAIAPIKey == "" {
		return "", fmt.Errorf("openai api key not configured: %w", domain.ErrValidation)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return "", fmt.Errorf("load post: %w", err)
	}

	if _, err := s.vote(ctx, actorID, postID); err != nil {
		return "", fmt.Errorf("vote before comment: %w", err)
	}

	text, err := s.synth.GenerateComment(ctx, synthConfig(settings), settings.CommentPrompt, post.Title, post.Content)
	if err != nil {
		return "", err
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		PostID:  postID,
		UserID:  actorID,
		Content: text,
		Status:  domain.CommentStatusApproved,
	})
	if err != nil {
		return "", fmt.Errorf("insert comment: %w", err)
	}

	return fmt.Sprintf("commented (comment %d)", created.ID), nil
}

// reply generates and inserts an approved reply to a random top-level
// approved comment. Replies to replies are never created.
func (s *Service) reply(ctx context.Context, settings domain.EngagementSettings, actorID, postID int64) (string, error) {
	if settings.OpenAIAPIKey == "" {
		return "", fmt.Errorf("openai api key not configured: %w", domain.ErrValidation)
	}

	parents, err := s.comments.ListTopLevelApproved(ctx, postID, candidateLimit)
	if err != nil {
		return "", fmt.Errorf("list parent comments: %w", err)
	}
	if len(parents) == 0 {
		return "", fmt.Errorf("post %d has no top-level comments to reply to: %w", postID, domain.ErrNotFound)
	}

	parent := parents[s.randInt(len(parents))]

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return "", fmt.Errorf("load post: %w", err)
	}

	text, err := s.synth.GenerateReply(ctx, synthConfig(settings), settings.ReplyPrompt, post.Title, parent.Content)
	if err != nil {
		return "", err
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		PostID:   postID,
		UserID:   actorID,
		ParentID: &parent.ID,
		Content:  text,
		Status:   domain.CommentStatusApproved,
	})
	if err != nil {
		return "", fmt.Errorf("insert reply: %w", err)
	}

	return fmt.Sprintf("replied to comment %d (comment %d)", parent.ID, created.ID), nil
}

// likePost check-then-inserts a post like and bumps the running counter. A
// pre-existing like is a terminal failure of this action, never retried.
func (s *Service) likePost(ctx context.Context, actorID, postID int64) (string, error) {
	liked, err := s.likes.Exists(ctx, actorID, domain.LikeTypePost, postID)
	if err != nil {
		return "", fmt.Errorf("check like: %w", err)
	}
	if liked {
		return "", fmt.Errorf("post %d already liked by actor %d: %w", postID, actorID, domain.ErrAlreadyExists)
	}

	if err := s.likes.Create(ctx, domain.Like{
		UserID:   actorID,
		Type:     domain.LikeTypePost,
		TargetID: postID,
	}); err != nil {
		return "", fmt.Errorf("insert like: %w", err)
	}

	if err := s.likes.IncrementCount(ctx, domain.LikeTypePost, postID); err != nil {
		return "", fmt.Errorf("increment like count: %w", err)
	}

	return "liked post", nil
}

// likeComment likes a random approved comment the actor did not author.
func (s *Service) likeComment(ctx context.Context, actorID, postID int64) (string, error) {
	comments, err := s.comments.ListApprovedExcludingUser(ctx, postID, actorID, candidateLimit)
	if err != nil {
		return "", fmt.Errorf("list likeable comments: %w", err)
	}
	if len(comments) == 0 {
		return "", fmt.Errorf("post %d has no likeable comments for actor %d: %w", postID, actorID, domain.ErrNotFound)
	}

	target := comments[s.randInt(len(comments))]

	liked, err := s.likes.Exists(ctx, actorID, domain.LikeTypeComment, target.ID)
	if err != nil {
		return "", fmt.Errorf("check like: %w", err)
	}
	if liked {
		return "", fmt.Errorf("comment %d already liked by actor %d: %w", target.ID, actorID, domain.ErrAlreadyExists)
	}

	if err := s.likes.Create(ctx, domain.Like{
		UserID:   actorID,
		Type:     domain.LikeTypeComment,
		TargetID: target.ID,
	}); err != nil {
		return "", fmt.Errorf("insert like: %w", err)
	}

	return fmt.Sprintf("liked comment %d", target.ID), nil
}
