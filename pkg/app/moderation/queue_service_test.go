package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/veilmatch/moderation/pkg/detector"
	domain "github.com/veilmatch/moderation/pkg/domain/moderation"
	"github.com/veilmatch/moderation/pkg/infra/cache/channel"
	"github.com/veilmatch/moderation/pkg/infra/cache/event"
)

type repositoryMock struct {
	mock.Mock
}

func (m *repositoryMock) Create(ctx context.Context, result *domain.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *repositoryMock) Update(ctx context.Context, result *domain.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *repositoryMock) GetByContentID(ctx context.Context, contentID string) ([]domain.Result, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	results, ok := args.Get(0).([]domain.Result)
	if !ok {
		return nil, args.Error(1)
	}
	return results, args.Error(1)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, ch channel.Channel, ev event.Event) error {
	args := m.Called(ctx, ch, ev)
	return args.Error(0)
}

func newTestService() QueueService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewQueueService(logger, detector.New(detector.Config{}), nil, nil, nil)
}

func resultWithSeverity(contentID string, severity domain.Severity) domain.Result {
	return domain.Result{
		ID:          uuid.New(),
		ContentID:   contentID,
		ContentType: domain.ContentTypePost,
		Status:      domain.StatusPending,
		Flags:       domain.FlagListJSON{domain.FlagInappropriateContent},
		Confidence:  0.6,
		Severity:    severity,
		CreatedAt:   time.Now(),
	}
}

func TestAddToQueue_PriorityOrderingInvariant(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	severities := []domain.Severity{
		domain.SeverityLow,
		domain.SeverityHigh,
		domain.SeverityMedium,
		domain.SeverityCritical,
		domain.SeverityMedium,
		domain.SeverityLow,
		domain.SeverityCritical,
	}

	for i, severity := range severities {
		svc.AddToQueue(ctx, uuid.NewString(), "author", domain.ContentTypePost, "text", resultWithSeverity(uuid.NewString(), severity))

		items := svc.GetQueueItems(QueueFilter{})
		require.Len(t, items, i+1)
		for j := 1; j < len(items); j++ {
			assert.GreaterOrEqual(t, items[j-1].Priority.Rank(), items[j].Priority.Rank(),
				"queue must stay non-increasing by priority after every insertion")
		}
	}
}

func TestAddToQueue_FIFOWithinEqualPriority(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first := svc.AddToQueue(ctx, "c-1", "author", domain.ContentTypePost, "text", resultWithSeverity("c-1", domain.SeverityMedium))
	svc.AddToQueue(ctx, "c-2", "author", domain.ContentTypePost, "text", resultWithSeverity("c-2", domain.SeverityCritical))
	second := svc.AddToQueue(ctx, "c-3", "author", domain.ContentTypePost, "text", resultWithSeverity("c-3", domain.SeverityMedium))
	third := svc.AddToQueue(ctx, "c-4", "author", domain.ContentTypePost, "text", resultWithSeverity("c-4", domain.SeverityMedium))

	items := svc.GetQueueItems(QueueFilter{})
	require.Len(t, items, 4)
	assert.Equal(t, domain.PriorityCritical, items[0].Priority)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, []uuid.UUID{items[1].ID, items[2].ID, items[3].ID},
		"equal-priority items must keep arrival order")
}

func TestQueueOrdering_SampleScenario(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddToQueue(ctx, "low", "author", domain.ContentTypePost, "text", resultWithSeverity("low", domain.SeverityLow))
	svc.AddToQueue(ctx, "critical", "author", domain.ContentTypePost, "text", resultWithSeverity("critical", domain.SeverityCritical))
	svc.AddToQueue(ctx, "high", "author", domain.ContentTypePost, "text", resultWithSeverity("high", domain.SeverityHigh))

	items := svc.GetQueueItems(QueueFilter{})
	require.Len(t, items, 3)
	assert.Equal(t, "critical", items[0].ContentID)
	assert.Equal(t, "high", items[1].ContentID)
	assert.Equal(t, "low", items[2].ContentID)
}

func TestProcessContent_CleanContentBypassesQueue(t *testing.T) {
	svc := newTestService()

	result := svc.ProcessContent(context.Background(), "post-1", domain.ContentTypePost, "author-1",
		"We had a wonderful evening, highly recommend meeting this person.")

	assert.Equal(t, domain.StatusApproved, result.Status)
	assert.Empty(t, result.Flags)
	assert.Empty(t, svc.GetQueueItems(QueueFilter{}))
}

func TestProcessContent_PIIForcesReview(t *testing.T) {
	svc := newTestService()

	result := svc.ProcessContent(context.Background(), "post-2", domain.ContentTypePost, "author-1",
		"Call me at 555-123-4567")

	assert.NotEmpty(t, result.DetectedPII)
	assert.NotEqual(t, domain.StatusApproved, result.Status)
	assert.Equal(t, domain.StatusFlagged, result.Status)

	items := svc.GetQueueItems(QueueFilter{})
	require.Len(t, items, 1)
	assert.Equal(t, "post-2", items[0].ContentID)
	assert.Equal(t, domain.PriorityHigh, items[0].Priority)
}

func TestProcessContent_LowConfidenceGoesPending(t *testing.T) {
	svc := newTestService()

	result := svc.ProcessContent(context.Background(), "post-3", domain.ContentTypePost, "author-1",
		"this is pure nsfw")

	assert.Equal(t, domain.StatusPending, result.Status)
	require.Len(t, svc.GetQueueItems(QueueFilter{}), 1)
}

func TestProcessContent_DuplicateContentIDsProduceDistinctEntries(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.ProcessContent(ctx, "post-4", domain.ContentTypePost, "author-1", "nsfw")
	svc.ProcessContent(ctx, "post-4", domain.ContentTypePost, "author-1", "nsfw")

	items := svc.GetQueueItems(QueueFilter{})
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestReviewItem_ApproveIsTerminal(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	item := svc.AddToQueue(ctx, "c-1", "author", domain.ContentTypeReview, "text", resultWithSeverity("c-1", domain.SeverityMedium))

	err := svc.ReviewItem(ctx, item.ID, domain.ReviewActionApprove, "mod-1", "looks fine")
	require.NoError(t, err)
	assert.Empty(t, svc.GetQueueItems(QueueFilter{}))
}

func TestReviewItem_RejectIsTerminal(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	item := svc.AddToQueue(ctx, "c-1", "author", domain.ContentTypeReview, "text", resultWithSeverity("c-1", domain.SeverityMedium))

	err := svc.ReviewItem(ctx, item.ID, domain.ReviewActionReject, "mod-1", "violates policy")
	require.NoError(t, err)
	assert.Empty(t, svc.GetQueueItems(QueueFilter{}))
}

func TestReviewItem_FlagKeepsItemResident(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	item := svc.AddToQueue(ctx, "c-1", "author", domain.ContentTypeReview, "text", resultWithSeverity("c-1", domain.SeverityMedium))

	err := svc.ReviewItem(ctx, item.ID, domain.ReviewActionFlag, "mod-1", "needs a second look")
	require.NoError(t, err)

	items := svc.GetQueueItems(QueueFilter{})
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, domain.StatusFlagged, items[0].Result.Status)
	assert.Nil(t, items[0].Result.ReviewedAt, "flag is not terminal and must not stamp reviewed_at")
	assert.Equal(t, "mod-1", items[0].Result.ReviewedBy)
}

func TestReviewItem_TerminalStatusStampsReviewFields(t *testing.T) {
	ctx := context.Background()
	repo := new(repositoryMock)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svcWithRepo := NewQueueService(logger, detector.New(detector.Config{}), repo, nil, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Result) bool {
		return r.Status == domain.StatusRejected && r.ReviewedAt != nil && r.ReviewedBy == "mod-9"
	})).Return(nil)

	result := svcWithRepo.ProcessContent(ctx, "post-9", domain.ContentTypePost, "author-9", "kill yourself")
	require.Equal(t, domain.StatusFlagged, result.Status)

	items := svcWithRepo.GetQueueItems(QueueFilter{})
	require.Len(t, items, 1)

	err := svcWithRepo.ReviewItem(ctx, items[0].ID, domain.ReviewActionReject, "mod-9", "harassment")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReviewItem_UnknownIDReturnsNotFound(t *testing.T) {
	svc := newTestService()

	err := svc.ReviewItem(context.Background(), uuid.New(), domain.ReviewActionApprove, "mod-1", "")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestReviewItem_InvalidAction(t *testing.T) {
	svc := newTestService()

	err := svc.ReviewItem(context.Background(), uuid.New(), domain.ReviewAction("escalate-to-mars"), "mod-1", "")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestRemoveFromQueue_Idempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	item := svc.AddToQueue(ctx, "c-1", "author", domain.ContentTypeComment, "text", resultWithSeverity("c-1", domain.SeverityLow))
	require.Len(t, svc.GetQueueItems(QueueFilter{}), 1)

	svc.RemoveFromQueue(ctx, item.ID)
	assert.Empty(t, svc.GetQueueItems(QueueFilter{}))

	svc.RemoveFromQueue(ctx, item.ID)
	assert.Empty(t, svc.GetQueueItems(QueueFilter{}))

	svc.RemoveFromQueue(ctx, uuid.New())
	assert.Empty(t, svc.GetQueueItems(QueueFilter{}))
}

func TestGetQueueItems_FilterComposition(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddToQueue(ctx, "r-high", "author", domain.ContentTypeReview, "text", resultWithSeverity("r-high", domain.SeverityHigh))
	svc.AddToQueue(ctx, "p-high", "author", domain.ContentTypePost, "text", resultWithSeverity("p-high", domain.SeverityHigh))
	svc.AddToQueue(ctx, "r-low", "author", domain.ContentTypeReview, "text", resultWithSeverity("r-low", domain.SeverityLow))
	svc.AddToQueue(ctx, "c-high", "author", domain.ContentTypeComment, "text", resultWithSeverity("c-high", domain.SeverityHigh))

	priority := domain.PriorityHigh
	contentType := domain.ContentTypeReview
	items := svc.GetQueueItems(QueueFilter{Priority: &priority, ContentType: &contentType})

	require.Len(t, items, 1)
	assert.Equal(t, "r-high", items[0].ContentID)
}

func TestGetQueueItems_LimitTruncatesWithoutMutating(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.AddToQueue(ctx, uuid.NewString(), "author", domain.ContentTypePost, "text", resultWithSeverity(uuid.NewString(), domain.SeverityMedium))
	}

	limited := svc.GetQueueItems(QueueFilter{Limit: 2})
	assert.Len(t, limited, 2)
	assert.Len(t, svc.GetQueueItems(QueueFilter{}), 5)
}

func TestGetQueueItems_ReturnsCopy(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.AddToQueue(ctx, "c-1", "author", domain.ContentTypePost, "text", resultWithSeverity("c-1", domain.SeverityMedium))

	items := svc.GetQueueItems(QueueFilter{})
	items[0].ContentID = "tampered"

	assert.Equal(t, "c-1", svc.GetQueueItems(QueueFilter{})[0].ContentID)
}

func TestQueueStatistics_EmptyQueue(t *testing.T) {
	svc := newTestService()

	stats := svc.QueueStatistics()
	assert.Equal(t, 0, stats.TotalItems)
	assert.Equal(t, 0, stats.HighPriorityItems)
	assert.Equal(t, 0, stats.PendingItems)
	assert.Equal(t, 0, stats.FlaggedItems)
	assert.Zero(t, stats.AverageWaitTimeMinutes)
}

func TestQueueStatistics_Aggregates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	pending := resultWithSeverity("c-1", domain.SeverityHigh)
	pending.CreatedAt = time.Now().Add(-10 * time.Minute)
	svc.AddToQueue(ctx, "c-1", "author", domain.ContentTypePost, "text", pending)

	flagged := resultWithSeverity("c-2", domain.SeverityCritical)
	flagged.Status = domain.StatusFlagged
	flagged.CreatedAt = time.Now().Add(-20 * time.Minute)
	svc.AddToQueue(ctx, "c-2", "author", domain.ContentTypeReview, "text", flagged)

	low := resultWithSeverity("c-3", domain.SeverityLow)
	low.CreatedAt = time.Now().Add(-30 * time.Minute)
	svc.AddToQueue(ctx, "c-3", "author", domain.ContentTypeComment, "text", low)

	stats := svc.QueueStatistics()
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 2, stats.HighPriorityItems)
	assert.Equal(t, 2, stats.PendingItems)
	assert.Equal(t, 1, stats.FlaggedItems)
	assert.InDelta(t, 20.0, stats.AverageWaitTimeMinutes, 0.1)
}

func TestQueueEvents_PublishedOnMutation(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	publisher := new(publisherMock)
	svc := NewQueueService(logger, detector.New(detector.Config{}), nil, publisher, nil)
	ctx := context.Background()

	publisher.On("Publish", mock.Anything, channel.QueueEventsChannel, mock.MatchedBy(func(ev event.Event) bool {
		return ev.Type() == event.ItemQueuedEventType
	})).Return(nil).Once()

	item := svc.AddToQueue(ctx, "c-1", "author", domain.ContentTypePost, "text", resultWithSeverity("c-1", domain.SeverityMedium))

	publisher.On("Publish", mock.Anything, channel.QueueEventsChannel, mock.MatchedBy(func(ev event.Event) bool {
		return ev.Type() == event.ItemReviewedEventType
	})).Return(nil).Once()

	require.NoError(t, svc.ReviewItem(ctx, item.ID, domain.ReviewActionApprove, "mod-1", ""))

	publisher.AssertExpectations(t)
}

func TestStatusForDetection_TotalMapping(t *testing.T) {
	tests := []struct {
		name      string
		detection detector.Detection
		expect    domain.Status
	}{
		{
			name:      "clean",
			detection: detector.Detection{Severity: domain.SeverityNone},
			expect:    domain.StatusApproved,
		},
		{
			name: "pii",
			detection: detector.Detection{
				Flags:       []domain.Flag{domain.FlagPersonalInformation},
				Severity:    domain.SeverityHigh,
				DetectedPII: []string{"555-123-4567"},
			},
			expect: domain.StatusFlagged,
		},
		{
			name: "critical severity",
			detection: detector.Detection{
				Flags:    []domain.Flag{domain.FlagHarassment},
				Severity: domain.SeverityCritical,
			},
			expect: domain.StatusFlagged,
		},
		{
			name: "medium severity",
			detection: detector.Detection{
				Flags:    []domain.Flag{domain.FlagInappropriateContent},
				Severity: domain.SeverityMedium,
			},
			expect: domain.StatusPending,
		},
		{
			name: "spam only",
			detection: detector.Detection{
				Flags:    []domain.Flag{domain.FlagSpam},
				Severity: domain.SeverityLow,
			},
			expect: domain.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, statusForDetection(tt.detection))
		})
	}
}
