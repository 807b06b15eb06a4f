// Package autocreator turns external news articles into survey posts: feed
// scraping, dedup, model synthesis, category resolution, and assembly of the
// post with its dependent records.
package autocreator

import (
	"context"
	"log/slog"
	"time"

	"github.com/pollboard/pollboard-backend/internal/domain"
	"github.com/pollboard/pollboard-backend/internal/feed"
	"github.com/pollboard/pollboard-backend/internal/pagemeta"
	"github.com/pollboard/pollboard-backend/internal/synth"
)

type creatorStore interface {
	CreatorSettings(ctx context.Context) (map[string]string, error)
	AppendCreatorLog(ctx context.Context, e domain.CreatorLogEntry) error
	LastCreatorSuccess(ctx context.Context) (*time.Time, error)
	RecordProcessed(ctx context.Context, p domain.ProcessedArticle) error
	BackfillProcessedPostID(ctx context.Context, articleURL string, postID int64) error
	AcquireCreatorLock(ctx context.Context) (release func(), acquired bool, err error)
}

type postRepo interface {
	ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
	CreateVoteOptions(ctx context.Context, opts domain.VoteOptions) error
	CreateChoice(ctx context.Context, postID int64, label string) (int64, error)
}

type taxonomyRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	ListKeywords(ctx context.Context) ([]domain.Keyword, error)
	FindKeywordByName(ctx context.Context, name string) (*domain.Keyword, error)
	CreateKeyword(ctx context.Context, name, slug string) (*domain.Keyword, error)
	LinkPostKeyword(ctx context.Context, postID, keywordID int64) error
}

type feedReader interface {
	Fetch(ctx context.Context, feedURL string) ([]feed.Item, error)
}

type metaScraper interface {
	Scrape(ctx context.Context, pageURL string) (pagemeta.Meta, error)
}

type synthesizer interface {
	GenerateSurvey(ctx context.Context, cfg synth.Config, article synth.Article) (*synth.Survey, error)
}

type actorPicker interface {
	Select(ctx context.Context, probability int) (int64, error)
}

// Service runs the autonomous post-creation pipeline.
type Service struct {
	store    creatorStore
	posts    postRepo
	taxonomy taxonomyRepo
	feeds    feedReader
	meta     metaScraper
	synth    synthesizer
	actors   actorPicker

	now func() time.Time
	log *slog.Logger
}

// NewService creates a new creation service.
func NewService(
	log *slog.Logger,
	store creatorStore,
	posts postRepo,
	taxonomy taxonomyRepo,
	feeds feedReader,
	meta metaScraper,
	synthClient synthesizer,
	actors actorPicker,
) *Service {
	return &Service{
		store:    store,
		posts:    posts,
		taxonomy: taxonomy,
		feeds:    feeds,
		meta:     meta,
		synth:    synthClient,
		actors:   actors,
		now:      time.Now,
		log:      log.With("service", "autocreator"),
	}
}

// appendLog writes one log row, tolerating a failing write.
func (s *Service) appendLog(ctx context.Context, e domain.CreatorLogEntry) {
	if err := s.store.AppendCreatorLog(ctx, e); err != nil {
		s.log.ErrorContext(ctx, "creator log write failed", slog.String("error", err.Error()))
	}
}
