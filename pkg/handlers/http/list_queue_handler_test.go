package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModeration "github.com/veilmatch/moderation/pkg/app/moderation"
	domain "github.com/veilmatch/moderation/pkg/domain/moderation"
)

func listApp(queue appModeration.QueueService) *fiber.App {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	app := fiber.New()
	app.Get("/api/v1/moderation/queue", NewListQueueHandler(logger, queue).Handle)
	app.Get("/api/v1/moderation/queue/stats", NewQueueStatsHandler(logger, queue).Handle)
	return app
}

func seed(queue appModeration.QueueService, contentType domain.ContentType, severity domain.Severity) {
	result := domain.Result{
		ID:          uuid.New(),
		ContentID:   uuid.NewString(),
		ContentType: contentType,
		Status:      domain.StatusPending,
		Flags:       domain.FlagListJSON{domain.FlagInappropriateContent},
		Severity:    severity,
		CreatedAt:   time.Now(),
	}
	queue.AddToQueue(context.Background(), result.ContentID, "author", contentType, "text", result)
}

func TestListQueueHandler_FullQueuePriorityOrdered(t *testing.T) {
	queue := newTestQueue()
	seed(queue, domain.ContentTypePost, domain.SeverityLow)
	seed(queue, domain.ContentTypeReview, domain.SeverityCritical)
	seed(queue, domain.ContentTypeComment, domain.SeverityHigh)
	app := listApp(queue)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/moderation/queue", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []domain.QueueItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 3)
	assert.Equal(t, domain.PriorityCritical, items[0].Priority)
	assert.Equal(t, domain.PriorityHigh, items[1].Priority)
	assert.Equal(t, domain.PriorityLow, items[2].Priority)
}

func TestListQueueHandler_CombinedFilters(t *testing.T) {
	queue := newTestQueue()
	seed(queue, domain.ContentTypeReview, domain.SeverityHigh)
	seed(queue, domain.ContentTypePost, domain.SeverityHigh)
	seed(queue, domain.ContentTypeReview, domain.SeverityLow)
	app := listApp(queue)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/moderation/queue?priority=high&content_type=review", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []domain.QueueItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, domain.ContentTypeReview, items[0].ContentType)
	assert.Equal(t, domain.PriorityHigh, items[0].Priority)
}

func TestListQueueHandler_InvalidPriority(t *testing.T) {
	app := listApp(newTestQueue())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/moderation/queue?priority=urgent", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListQueueHandler_Limit(t *testing.T) {
	queue := newTestQueue()
	for i := 0; i < 4; i++ {
		seed(queue, domain.ContentTypePost, domain.SeverityMedium)
	}
	app := listApp(queue)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/moderation/queue?limit=2", nil), -1)
	require.NoError(t, err)

	var items []domain.QueueItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.Len(t, items, 2)
}

func TestQueueStatsHandler_EmptyQueue(t *testing.T) {
	app := listApp(newTestQueue())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/moderation/queue/stats", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats appModeration.QueueStatistics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 0, stats.TotalItems)
	assert.Zero(t, stats.AverageWaitTimeMinutes)
}
