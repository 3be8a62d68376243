package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appModeration "github.com/veilmatch/moderation/pkg/app/moderation"
	domain "github.com/veilmatch/moderation/pkg/domain/moderation"
)

type listQueueHandler struct {
	logger *logrus.Logger
	queue  appModeration.QueueService
}

func NewListQueueHandler(logger *logrus.Logger, queue appModeration.QueueService) Handler {
	return &listQueueHandler{
		logger: logger,
		queue:  queue,
	}
}

// Handle @Summary List moderation queue items
// @Description Returns the review queue, priority-ordered, optionally filtered
// @Tags Moderation
// @Produce json
// @Param priority query string false "Filter by priority (low|medium|high|critical)"
// @Param content_type query string false "Filter by content type (post|review|comment)"
// @Param status query string false "Filter by verdict status"
// @Param limit query int false "Maximum number of items returned"
// @Success 200 {array} moderation.QueueItem "Queue items"
// @Failure 400 {object} map[string]interface{} "Invalid filter value"
// @Router /api/v1/moderation/queue [get]
func (h *listQueueHandler) Handle(c *fiber.Ctx) error {
	var filter appModeration.QueueFilter

	if raw := c.Query("priority"); raw != "" {
		priority := domain.Priority(raw)
		if !priority.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid priority"})
		}
		filter.Priority = &priority
	}

	if raw := c.Query("content_type"); raw != "" {
		contentType := domain.ContentType(raw)
		if !contentType.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid content_type"})
		}
		filter.ContentType = &contentType
	}

	if raw := c.Query("status"); raw != "" {
		status := domain.Status(raw)
		if !status.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
		}
		filter.Status = &status
	}

	filter.Limit = c.QueryInt("limit")
	if filter.Limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be positive"})
	}

	items := h.queue.GetQueueItems(filter)
	return c.Status(fiber.StatusOK).JSON(items)
}
