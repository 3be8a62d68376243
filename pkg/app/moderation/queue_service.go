package moderation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/veilmatch/moderation/pkg/detector"
	domain "github.com/veilmatch/moderation/pkg/domain/moderation"
	"github.com/veilmatch/moderation/pkg/infra/cache"
	"github.com/veilmatch/moderation/pkg/infra/cache/channel"
	"github.com/veilmatch/moderation/pkg/infra/cache/event"
	"github.com/veilmatch/moderation/pkg/infra/prometheus"
)

var (
	ErrItemNotFound  = errors.New("queue item not found")
	ErrInvalidAction = errors.New("invalid review action")
)

// QueueFilter narrows GetQueueItems results. Nil fields are ignored and
// set fields combine with logical AND; Limit truncates without mutating
// the queue.
type QueueFilter struct {
	Priority    *domain.Priority
	ContentType *domain.ContentType
	Status      *domain.Status
	Limit       int
}

// QueueStatistics is the dashboard aggregate computed on demand from the
// live queue.
type QueueStatistics struct {
	TotalItems             int     `json:"total_items"`
	HighPriorityItems      int     `json:"high_priority_items"`
	PendingItems           int     `json:"pending_items"`
	FlaggedItems           int     `json:"flagged_items"`
	AverageWaitTimeMinutes float64 `json:"average_wait_time_minutes"`
}

//go:generate mockery --name=QueueService --dir=. --output=./mocks --filename=queue_service_mock.go --case=underscore --with-expecter

type QueueService interface {
	ProcessContent(ctx context.Context, contentID string, contentType domain.ContentType, authorID, text string) domain.Result
	AddToQueue(ctx context.Context, contentID, authorID string, contentType domain.ContentType, content string, result domain.Result) domain.QueueItem
	RemoveFromQueue(ctx context.Context, itemID uuid.UUID)
	GetQueueItems(filter QueueFilter) []domain.QueueItem
	ReviewItem(ctx context.Context, itemID uuid.UUID, action domain.ReviewAction, moderatorID, reason string) error
	QueueStatistics() QueueStatistics
}

// queueService owns the live review queue. The backing slice is kept
// sorted by priority descending with FIFO order inside each priority band,
// and every access goes through the mutex: the fiber server dispatches
// handlers from many goroutines, so the single-writer discipline of the
// original design becomes an explicit lock here.
type queueService struct {
	mu    sync.Mutex
	items []domain.QueueItem

	detector       *detector.Detector
	repo           domain.Repository
	publisher      cache.EventPublisher
	detectionCache *cache.TTLMap
	logger         *logrus.Logger
	now            func() time.Time
}

// NewQueueService wires the moderation pipeline. repo, publisher and
// detectionCache may be nil; persistence, eventing and memoization are
// then skipped.
func NewQueueService(
	logger *logrus.Logger,
	det *detector.Detector,
	repo domain.Repository,
	publisher cache.EventPublisher,
	detectionCache *cache.TTLMap,
) QueueService {
	return &queueService{
		detector:       det,
		repo:           repo,
		publisher:      publisher,
		detectionCache: detectionCache,
		logger:         logger,
		now:            time.Now,
	}
}

// ProcessContent runs the full detect → build → enqueue pipeline and
// returns the verdict synchronously. Approved content is never queued.
func (s *queueService) ProcessContent(ctx context.Context, contentID string, contentType domain.ContentType, authorID, text string) domain.Result {
	detection := s.detect(text)

	result := domain.Result{
		ID:          uuid.New(),
		ContentID:   contentID,
		ContentType: contentType,
		AuthorID:    authorID,
		Status:      statusForDetection(detection),
		Flags:       domain.FlagListJSON(detection.Flags),
		Confidence:  detection.Confidence,
		Severity:    detection.Severity,
		Reason:      domain.ReasonFromFlags(detection.Flags),
		DetectedPII: domain.StringListJSON(detection.DetectedPII),
		CreatedAt:   s.now(),
	}

	prometheus.VerdictsTotal.WithLabelValues(string(result.Status), string(contentType)).Inc()
	for _, f := range result.Flags {
		prometheus.FlagsTotal.WithLabelValues(string(f)).Inc()
	}

	s.persist(ctx, &result, false)

	if result.Status != domain.StatusApproved {
		s.AddToQueue(ctx, contentID, authorID, contentType, text, result)
	}

	return result
}

// AddToQueue inserts a pre-computed verdict into the review queue at the
// position its priority demands, behind earlier arrivals of equal
// priority.
func (s *queueService) AddToQueue(ctx context.Context, contentID, authorID string, contentType domain.ContentType, content string, result domain.Result) domain.QueueItem {
	item := domain.NewQueueItem(contentID, authorID, contentType, content, result)

	s.mu.Lock()
	s.insertLocked(item)
	depth := len(s.items)
	s.updateDepthGaugeLocked()
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"item_id":    item.ID,
		"content_id": contentID,
		"priority":   item.Priority,
	}).Info("item added to moderation queue")

	s.publish(ctx, event.ItemQueuedEvent{
		ItemID:      item.ID.String(),
		ContentID:   contentID,
		ContentType: string(contentType),
		Priority:    string(item.Priority),
		QueueDepth:  depth,
	})

	return item
}

// RemoveFromQueue evicts the item with the given id. Removal is
// idempotent: an unknown id is a no-op.
func (s *queueService) RemoveFromQueue(ctx context.Context, itemID uuid.UUID) {
	s.mu.Lock()
	idx := s.indexOfLocked(itemID)
	removed := idx >= 0
	if removed {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.updateDepthGaugeLocked()
	}
	depth := len(s.items)
	s.mu.Unlock()

	if !removed {
		return
	}

	s.publish(ctx, event.ItemRemovedEvent{
		ItemID:     itemID.String(),
		QueueDepth: depth,
	})
}

// GetQueueItems returns a filtered snapshot of the queue, still ordered by
// priority. The returned slice is a copy; mutating it cannot affect the
// queue.
func (s *queueService) GetQueueItems(filter QueueFilter) []domain.QueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.QueueItem, 0, len(s.items))
	for _, item := range s.items {
		if filter.Priority != nil && item.Priority != *filter.Priority {
			continue
		}
		if filter.ContentType != nil && item.ContentType != *filter.ContentType {
			continue
		}
		if filter.Status != nil && item.Result.Status != *filter.Status {
			continue
		}
		items = append(items, item)
		if filter.Limit > 0 && len(items) == filter.Limit {
			break
		}
	}
	return items
}

// ReviewItem applies a moderator decision. Approve and reject are
// terminal: the verdict is stamped and the item leaves the queue. Flag
// keeps the item resident with its position re-evaluated. An unknown id
// yields ErrItemNotFound so the review UI can tell the moderator the item
// was already handled.
func (s *queueService) ReviewItem(ctx context.Context, itemID uuid.UUID, action domain.ReviewAction, moderatorID, reason string) error {
	if !action.IsValid() {
		return ErrInvalidAction
	}

	s.mu.Lock()
	idx := s.indexOfLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrItemNotFound
	}

	item := s.items[idx]
	switch action {
	case domain.ReviewActionApprove:
		item.Result.MarkReviewed(domain.StatusApproved, moderatorID, reason)
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	case domain.ReviewActionReject:
		item.Result.MarkReviewed(domain.StatusRejected, moderatorID, reason)
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	case domain.ReviewActionFlag:
		item.Result.MarkReviewed(domain.StatusFlagged, moderatorID, reason)
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.insertLocked(item)
	}
	depth := len(s.items)
	s.updateDepthGaugeLocked()
	s.mu.Unlock()

	prometheus.ReviewsTotal.WithLabelValues(string(action)).Inc()

	s.logger.WithFields(logrus.Fields{
		"item_id":   itemID,
		"action":    action,
		"moderator": moderatorID,
	}).Info("queue item reviewed")

	s.persist(ctx, &item.Result, true)

	s.publish(ctx, event.ItemReviewedEvent{
		ItemID:      itemID.String(),
		ContentID:   item.ContentID,
		Action:      string(action),
		ModeratorID: moderatorID,
		Status:      string(item.Result.Status),
		QueueDepth:  depth,
	})

	return nil
}

// QueueStatistics aggregates the live queue for the dashboard. An empty
// queue reports zero for every field, including the average wait.
func (s *queueService) QueueStatistics() QueueStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := QueueStatistics{TotalItems: len(s.items)}
	if len(s.items) == 0 {
		return stats
	}

	var totalWait time.Duration
	now := s.now()
	for _, item := range s.items {
		if item.Priority == domain.PriorityHigh || item.Priority == domain.PriorityCritical {
			stats.HighPriorityItems++
		}
		switch item.Result.Status {
		case domain.StatusPending:
			stats.PendingItems++
		case domain.StatusFlagged:
			stats.FlaggedItems++
		}
		totalWait += now.Sub(item.Result.CreatedAt)
	}
	stats.AverageWaitTimeMinutes = totalWait.Minutes() / float64(len(s.items))

	return stats
}

func (s *queueService) detect(text string) detector.Detection {
	if s.detectionCache != nil {
		if cached, ok := s.detectionCache.Get(text); ok {
			if detection, ok := cached.(detector.Detection); ok {
				return detection
			}
		}
	}

	start := time.Now()
	detection := s.detector.Detect(text)
	prometheus.DetectorLatency.Observe(float64(time.Since(start).Microseconds()))

	if s.detectionCache != nil {
		s.detectionCache.Set(text, detection)
	}
	return detection
}

// statusForDetection is the total mapping from detector output to verdict
// status: clean content is approved and bypasses review entirely, PII or
// high severity forces flagged, anything else flagged by the detector
// waits as pending.
func statusForDetection(d detector.Detection) domain.Status {
	switch {
	case d.Clean():
		return domain.StatusApproved
	case len(d.DetectedPII) > 0 || d.Severity.Rank() >= domain.SeverityHigh.Rank():
		return domain.StatusFlagged
	default:
		return domain.StatusPending
	}
}

// insertLocked places the item at the end of its priority band, keeping
// the slice sorted by priority descending with stable FIFO ties.
func (s *queueService) insertLocked(item domain.QueueItem) {
	idx := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Priority.Rank() < item.Priority.Rank()
	})
	s.items = append(s.items, domain.QueueItem{})
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = item
}

func (s *queueService) indexOfLocked(itemID uuid.UUID) int {
	for i, item := range s.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (s *queueService) updateDepthGaugeLocked() {
	counts := map[domain.Priority]int{
		domain.PriorityLow:      0,
		domain.PriorityMedium:   0,
		domain.PriorityHigh:     0,
		domain.PriorityCritical: 0,
	}
	for _, item := range s.items {
		counts[item.Priority]++
	}
	for priority, count := range counts {
		prometheus.QueueDepth.WithLabelValues(string(priority)).Set(float64(count))
	}
}

func (s *queueService) persist(ctx context.Context, result *domain.Result, update bool) {
	if s.repo == nil {
		return
	}
	var err error
	if update {
		err = s.repo.Update(ctx, result)
	} else {
		err = s.repo.Create(ctx, result)
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to persist moderation result")
	}
}

func (s *queueService) publish(ctx context.Context, ev event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, channel.QueueEventsChannel, ev); err != nil {
		s.logger.WithError(err).Warn("failed to publish queue event")
	}
}
