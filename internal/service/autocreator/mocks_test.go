package autocreator

import (
	"context"
	"time"

	"github.com/pollboard/pollboard-backend/internal/domain"
	"github.com/pollboard/pollboard-backend/internal/feed"
	"github.com/pollboard/pollboard-backend/internal/pagemeta"
	"github.com/pollboard/pollboard-backend/internal/synth"
)

type creatorStoreMock struct {
	CreatorSettingsFunc         func(ctx context.Context) (map[string]string, error)
	AppendCreatorLogFunc        func(ctx context.Context, e domain.CreatorLogEntry) error
	LastCreatorSuccessFunc      func(ctx context.Context) (*time.Time, error)
	RecordProcessedFunc         func(ctx context.Context, p domain.ProcessedArticle) error
	BackfillProcessedPostIDFunc func(ctx context.Context, articleURL string, postID int64) error
	AcquireCreatorLockFunc      func(ctx context.Context) (func(), bool, error)

	logCalls       []domain.CreatorLogEntry
	processedCalls []domain.ProcessedArticle
	backfillCalls  []int64
}

func (m *creatorStoreMock) CreatorSettings(ctx context.Context) (map[string]string, error) {
	return m.CreatorSettingsFunc(ctx)
}

func (m *creatorStoreMock) AppendCreatorLog(ctx context.Context, e domain.CreatorLogEntry) error {
	m.logCalls = append(m.logCalls, e)
	if m.AppendCreatorLogFunc == nil {
		return nil
	}
	return m.AppendCreatorLogFunc(ctx, e)
}

func (m *creatorStoreMock) LastCreatorSuccess(ctx context.Context) (*time.Time, error) {
	if m.LastCreatorSuccessFunc == nil {
		return nil, nil
	}
	return m.LastCreatorSuccessFunc(ctx)
}

func (m *creatorStoreMock) RecordProcessed(ctx context.Context, p domain.ProcessedArticle) error {
	m.processedCalls = append(m.processedCalls, p)
	if m.RecordProcessedFunc == nil {
		return nil
	}
	return m.RecordProcessedFunc(ctx, p)
}

func (m *creatorStoreMock) BackfillProcessedPostID(ctx context.Context, articleURL string, postID int64) error {
	m.backfillCalls = append(m.backfillCalls, postID)
	if m.BackfillProcessedPostIDFunc == nil {
		return nil
	}
	return m.BackfillProcessedPostIDFunc(ctx, articleURL, postID)
}

func (m *creatorStoreMock) AcquireCreatorLock(ctx context.Context) (func(), bool, error) {
	if m.AcquireCreatorLockFunc == nil {
		return func() {}, true, nil
	}
	return m.AcquireCreatorLockFunc(ctx)
}

type postRepoMock struct {
	ExistsBySourceURLFunc func(ctx context.Context, sourceURL string) (bool, error)
	CreateFunc            func(ctx context.Context, p *domain.Post) (*domain.Post, error)
	DeleteFunc            func(ctx context.Context, id int64) error
	CreateVoteOptionsFunc func(ctx context.Context, opts domain.VoteOptions) error
	CreateChoiceFunc      func(ctx context.Context, postID int64, label string) (int64, error)

	createCalls []domain.Post
	deleteCalls []int64
	choiceCalls []string
}

func (m *postRepoMock) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	return m.ExistsBySourceURLFunc(ctx, sourceURL)
}

func (m *postRepoMock) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	m.createCalls = append(m.createCalls, *p)
	return m.CreateFunc(ctx, p)
}

func (m *postRepoMock) Delete(ctx context.Context, id int64) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *postRepoMock) CreateVoteOptions(ctx context.Context, opts domain.VoteOptions) error {
	if m.CreateVoteOptionsFunc == nil {
		return nil
	}
	return m.CreateVoteOptionsFunc(ctx, opts)
}

func (m *postRepoMock) CreateChoice(ctx context.Context, postID int64, label string) (int64, error) {
	m.choiceCalls = append(m.choiceCalls, label)
	if m.CreateChoiceFunc == nil {
		return int64(len(m.choiceCalls)), nil
	}
	return m.CreateChoiceFunc(ctx, postID, label)
}

type taxonomyRepoMock struct {
	ListFunc              func(ctx context.Context) ([]domain.Category, error)
	ListKeywordsFunc      func(ctx context.Context) ([]domain.Keyword, error)
	FindKeywordByNameFunc func(ctx context.Context, name string) (*domain.Keyword, error)
	CreateKeywordFunc     func(ctx context.Context, name, slug string) (*domain.Keyword, error)
	LinkPostKeywordFunc   func(ctx context.Context, postID, keywordID int64) error

	createdKeywords []string
	linkCalls       []int64
}

func (m *taxonomyRepoMock) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx)
}

func (m *taxonomyRepoMock) ListKeywords(ctx context.Context) ([]domain.Keyword, error) {
	if m.ListKeywordsFunc == nil {
		return nil, nil
	}
	return m.ListKeywordsFunc(ctx)
}

func (m *taxonomyRepoMock) FindKeywordByName(ctx context.Context, name string) (*domain.Keyword, error) {
	return m.FindKeywordByNameFunc(ctx, name)
}

func (m *taxonomyRepoMock) CreateKeyword(ctx context.Context, name, slug string) (*domain.Keyword, error) {
	m.createdKeywords = append(m.createdKeywords, name)
	return m.CreateKeywordFunc(ctx, name, slug)
}

func (m *taxonomyRepoMock) LinkPostKeyword(ctx context.Context, postID, keywordID int64) error {
	m.linkCalls = append(m.linkCalls, keywordID)
	if m.LinkPostKeywordFunc == nil {
		return nil
	}
	return m.LinkPostKeywordFunc(ctx, postID, keywordID)
}

type feedReaderMock struct {
	FetchFunc func(ctx context.Context, feedURL string) ([]feed.Item, error)

	fetchCalls []string
}

func (m *feedReaderMock) Fetch(ctx context.Context, feedURL string) ([]feed.Item, error) {
	m.fetchCalls = append(m.fetchCalls, feedURL)
	return m.FetchFunc(ctx, feedURL)
}

type metaScraperMock struct {
	ScrapeFunc func(ctx context.Context, pageURL string) (pagemeta.Meta, error)
}

func (m *metaScraperMock) Scrape(ctx context.Context, pageURL string) (pagemeta.Meta, error) {
	if m.ScrapeFunc == nil {
		return pagemeta.Meta{}, nil
	}
	return m.ScrapeFunc(ctx, pageURL)
}

type synthesizerMock struct {
	GenerateSurveyFunc func(ctx context.Context, cfg synth.Config, article synth.Article) (*synth.Survey, error)

	surveyCalls []synth.Article
}

func (m *synthesizerMock) GenerateSurvey(ctx context.Context, cfg synth.Config, article synth.Article) (*synth.Survey, error) {
	m.surveyCalls = append(m.surveyCalls, article)
	return m.GenerateSurveyFunc(ctx, cfg, article)
}

type actorPickerMock struct {
	SelectFunc func(ctx context.Context, probability int) (int64, error)
}

func (m *actorPickerMock) Select(ctx context.Context, probability int) (int64, error) {
	if m.SelectFunc == nil {
		return 7, nil
	}
	return m.SelectFunc(ctx, probability)
}
