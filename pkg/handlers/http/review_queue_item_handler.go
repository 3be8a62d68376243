package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	appModeration "github.com/veilmatch/moderation/pkg/app/moderation"
	domain "github.com/veilmatch/moderation/pkg/domain/moderation"
	"github.com/veilmatch/moderation/pkg/handlers/http/request"
)

type reviewQueueItemHandler struct {
	logger *logrus.Logger
	queue  appModeration.QueueService
}

func NewReviewQueueItemHandler(logger *logrus.Logger, queue appModeration.QueueService) Handler {
	return &reviewQueueItemHandler{
		logger: logger,
		queue:  queue,
	}
}

// Handle @Summary Apply a reviewer decision to a queue item
// @Description Approves, rejects or re-flags a queued item; approve and reject evict it
// @Tags Moderation
// @Accept json
// @Produce json
// @Param item_id path string true "Queue item ID"
// @Param review body request.ReviewQueueItemRequest true "Review action"
// @Success 204 "Review applied"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Item already handled"
// @Router /api/v1/moderation/queue/{item_id} [put]
func (h *reviewQueueItemHandler) Handle(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("item_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item ID"})
	}

	var req request.ReviewQueueItemRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind review request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err = h.queue.ReviewItem(c.Context(), itemID, domain.ReviewAction(req.Action), req.ModeratorID, req.Reason)
	if err != nil {
		if errors.Is(err, appModeration.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found; it may already be handled by another moderator"})
		}
		if errors.Is(err, appModeration.ErrInvalidAction) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to review queue item")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to review queue item"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
