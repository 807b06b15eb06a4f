package engagement

import (
	"context"
	"time"

	"github.com/pollboard/pollboard-backend/internal/domain"
	"github.com/pollboard/pollboard-backend/internal/synth"
)

type postRepoMock struct {
	GetByIDFunc             func(ctx context.Context, id int64) (*domain.Post, error)
	ListRecentPublishedFunc func(ctx context.Context, limit int) ([]domain.Post, error)
	ListChoicesFunc         func(ctx context.Context, postID int64) ([]domain.VoteChoice, error)
	InsertVoteFunc          func(ctx context.Context, v domain.VoteRecord) error
	IncrementVoteCountFunc  func(ctx context.Context, choiceID int64) error

	insertVoteCalls []domain.VoteRecord
	incrementCalls  []int64
}

func (m *postRepoMock) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *postRepoMock) ListRecentPublished(ctx context.Context, limit int) ([]domain.Post, error) {
	return m.ListRecentPublishedFunc(ctx, limit)
}

func (m *postRepoMock) ListChoices(ctx context.Context, postID int64) ([]domain.VoteChoice, error) {
	return m.ListChoicesFunc(ctx, postID)
}

func (m *postRepoMock) InsertVote(ctx context.Context, v domain.VoteRecord) error {
	m.insertVoteCalls = append(m.insertVoteCalls, v)
	return m.InsertVoteFunc(ctx, v)
}

func (m *postRepoMock) IncrementVoteCount(ctx context.Context, choiceID int64) error {
	m.incrementCalls = append(m.incrementCalls, choiceID)
	return m.IncrementVoteCountFunc(ctx, choiceID)
}

type commentRepoMock struct {
	CreateFunc                    func(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	ListTopLevelApprovedFunc      func(ctx context.Context, postID int64, limit int) ([]domain.Comment, error)
	ListApprovedExcludingUserFunc func(ctx context.Context, postID, userID int64, limit int) ([]domain.Comment, error)

	createCalls []domain.Comment
}

func (m *commentRepoMock) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	m.createCalls = append(m.createCalls, *c)
	return m.CreateFunc(ctx, c)
}

func (m *commentRepoMock) ListTopLevelApproved(ctx context.Context, postID int64, limit int) ([]domain.Comment, error) {
	return m.ListTopLevelApprovedFunc(ctx, postID, limit)
}

func (m *commentRepoMock) ListApprovedExcludingUser(ctx context.Context, postID, userID int64, limit int) ([]domain.Comment, error) {
	return m.ListApprovedExcludingUserFunc(ctx, postID, userID, limit)
}

type likeRepoMock struct {
	ExistsFunc         func(ctx context.Context, userID int64, likeType domain.LikeType, targetID int64) (bool, error)
	CreateFunc         func(ctx context.Context, l domain.Like) error
	IncrementCountFunc func(ctx context.Context, likeType domain.LikeType, targetID int64) error

	createCalls    []domain.Like
	incrementCalls []int64
}

func (m *likeRepoMock) Exists(ctx context.Context, userID int64, likeType domain.LikeType, targetID int64) (bool, error) {
	return m.ExistsFunc(ctx, userID, likeType, targetID)
}

func (m *likeRepoMock) Create(ctx context.Context, l domain.Like) error {
	m.createCalls = append(m.createCalls, l)
	return m.CreateFunc(ctx, l)
}

func (m *likeRepoMock) IncrementCount(ctx context.Context, likeType domain.LikeType, targetID int64) error {
	m.incrementCalls = append(m.incrementCalls, targetID)
	return m.IncrementCountFunc(ctx, likeType, targetID)
}

type engagementStoreMock struct {
	EngagementSettingsFunc    func(ctx context.Context) (map[string]string, error)
	AppendEngagementLogFunc   func(ctx context.Context, e domain.EngagementLogEntry) error
	LastEngagementSuccessFunc func(ctx context.Context) (*time.Time, error)
	AcquireEngagementLockFunc func(ctx context.Context) (func(), bool, error)

	logCalls []domain.EngagementLogEntry
}

func (m *engagementStoreMock) EngagementSettings(ctx context.Context) (map[string]string, error) {
	return m.EngagementSettingsFunc(ctx)
}

func (m *engagementStoreMock) AppendEngagementLog(ctx context.Context, e domain.EngagementLogEntry) error {
	m.logCalls = append(m.logCalls, e)
	if m.AppendEngagementLogFunc == nil {
		return nil
	}
	return m.AppendEngagementLogFunc(ctx, e)
}

func (m *engagementStoreMock) LastEngagementSuccess(ctx context.Context) (*time.Time, error) {
	return m.LastEngagementSuccessFunc(ctx)
}

func (m *engagementStoreMock) AcquireEngagementLock(ctx context.Context) (func(), bool, error) {
	if m.AcquireEngagementLockFunc == nil {
		return func() {}, true, nil
	}
	return m.AcquireEngagementLockFunc(ctx)
}

type synthesizerMock struct {
	GenerateCommentFunc func(ctx context.Context, cfg synth.Config, prompt, postTitle, postBody string) (string, error)
	GenerateReplyFunc   func(ctx context.Context, cfg synth.Config, prompt, postTitle, parentComment string) (string, error)
}

func (m *synthesizerMock) GenerateComment(ctx context.Context, cfg synth.Config, prompt, postTitle, postBody string) (string, error) {
	return m.GenerateCommentFunc(ctx, cfg, prompt, postTitle, postBody)
}

func (m *synthesizerMock) GenerateReply(ctx context.Context, cfg synth.Config, prompt, postTitle, parentComment string) (string, error) {
	return m.GenerateReplyFunc(ctx, cfg, prompt, postTitle, parentComment)
}

type actorPickerMock struct {
	SelectFunc func(ctx context.Context, probability int) (int64, error)
}

func (m *actorPickerMock) Select(ctx context.Context, probability int) (int64, error) {
	return m.SelectFunc(ctx, probability)
}

type userRepoMock struct {
	ListIDsByStatusFunc func(ctx context.Context, status, limit int) ([]int64, error)
}

func (m *userRepoMock) ListIDsByStatus(ctx context.Context, status, limit int) ([]int64, error) {
	return m.ListIDsByStatusFunc(ctx, status, limit)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}
