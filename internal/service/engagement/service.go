// Package engagement simulates organic activity on published posts: votes,
// comments, replies, and likes cast by synthetic actor accounts.
package engagement

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pollboard/pollboard-backend/internal/domain"
	"github.com/pollboard/pollboard-backend/internal/synth"
)

// candidateLimit caps every candidate set a random pick draws from.
// Selection over a larger population is only approximately uniform.
const candidateLimit = 100

type postRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	ListRecentPublished(ctx context.Context, limit int) ([]domain.Post, error)
	ListChoices(ctx context.Context, postID int64) ([]domain.VoteChoice, error)
	InsertVote(ctx context.Context, v domain.VoteRecord) error
	IncrementVoteCount(ctx context.Context, choiceID int64) error
}

type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	ListTopLevelApproved(ctx context.Context, postID int64, limit int) ([]domain.Comment, error)
	ListApprovedExcludingUser(ctx context.Context, postID, userID int64, limit int) ([]domain.Comment, error)
}

type likeRepo interface {
	Exists(ctx context.Context, userID int64, likeType domain.LikeType, targetID int64) (bool, error)
	Create(ctx context.Context, l domain.Like) error
	IncrementCount(ctx context.Context, likeType domain.LikeType, targetID int64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type engagementStore interface {
	EngagementSettings(ctx context.Context) (map[string]string, error)
	AppendEngagementLog(ctx context.Context, e domain.EngagementLogEntry) error
	LastEngagementSuccess(ctx context.Context) (*time.Time, error)
	AcquireEngagementLock(ctx context.Context) (release func(), acquired bool, err error)
}

type synthesizer interface {
	GenerateComment(ctx context.Context, cfg synth.Config, prompt, postTitle, postBody string) (string, error)
	GenerateReply(ctx context.Context, cfg synth.Config, prompt, postTitle, parentComment string) (string, error)
}

type actorPicker interface {
	Select(ctx context.Context, probability int) (int64, error)
}

// Service executes engagement actions and the scheduled engagement tick.
type Service struct {
	store    engagementStore
	tx       txManager
	posts    postRepo
	comments commentRepo
	likes    likeRepo
	actors   actorPicker
	synth    synthesizer

	randInt func(n int) int
	now     func() time.Time
	log     *slog.Logger
}

// NewService creates a new engagement service.
func NewService(
	log *slog.Logger,
	store engagementStore,
	tx txManager,
	posts postRepo,
	comments commentRepo,
	likes likeRepo,
	actors actorPicker,
	synthClient synthesizer,
) *Service {
	return &Service{
		store:    store,
		tx:       tx,
		posts:    posts,
		comments: comments,
		likes:    likes,
		actors:   actors,
		synth:    synthClient,
		randInt:  rand.IntN,
		now:      time.Now,
		log:      log.With("service", "engagement"),
	}
}

func synthConfig(st domain.EngagementSettings) synth.Config {
	return synth.Config{APIKey: st.OpenAIAPIKey, Model: st.OpenAIModel}
}

// appendLog writes one log row, tolerating a failing write. The log must
// never mask the result it describes.
func (s *Service) appendLog(ctx context.Context, e domain.EngagementLogEntry) {
	if err := s.store.AppendEngagementLog(ctx, e); err != nil {
		s.log.ErrorContext(ctx, "engagement log write failed", slog.String("error", err.Error()))
	}
}

// LogFailure records an attempt that failed before an actor or action could
// be determined, e.g. an unparseable trigger request. Any of the reference
// fields may be nil.
func (s *Service) LogFailure(ctx context.Context, kind domain.ExecutionKind, postID *int64, action *domain.EngagementAction, errMsg string) {
	s.appendLog(ctx, domain.EngagementLogEntry{
		ExecutionKind: kind,
		Status:        domain.ExecutionStatusError,
		PostID:        postID,
		Action:        action,
		ErrorMessage:  errMsg,
	})
}
