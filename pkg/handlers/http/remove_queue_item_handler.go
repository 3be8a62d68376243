package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	appModeration "github.com/veilmatch/moderation/pkg/app/moderation"
)

type removeQueueItemHandler struct {
	logger *logrus.Logger
	queue  appModeration.QueueService
}

func NewRemoveQueueItemHandler(logger *logrus.Logger, queue appModeration.QueueService) Handler {
	return &removeQueueItemHandler{
		logger: logger,
		queue:  queue,
	}
}

// Handle @Summary Remove a queue item
// @Description Evicts an item from the review queue; removal is idempotent
// @Tags Moderation
// @Produce json
// @Param item_id path string true "Queue item ID"
// @Success 204 "Item removed (or was already absent)"
// @Failure 400 {object} map[string]interface{} "Invalid item ID"
// @Router /api/v1/moderation/queue/{item_id} [delete]
func (h *removeQueueItemHandler) Handle(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("item_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item ID"})
	}

	h.queue.RemoveFromQueue(c.Context(), itemID)

	return c.SendStatus(fiber.StatusNoContent)
}
