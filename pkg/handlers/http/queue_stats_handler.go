package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appModeration "github.com/veilmatch/moderation/pkg/app/moderation"
)

type queueStatsHandler struct {
	logger *logrus.Logger
	queue  appModeration.QueueService
}

func NewQueueStatsHandler(logger *logrus.Logger, queue appModeration.QueueService) Handler {
	return &queueStatsHandler{
		logger: logger,
		queue:  queue,
	}
}

// Handle @Summary Moderation queue statistics
// @Description Returns dashboard aggregates computed from the live queue
// @Tags Moderation
// @Produce json
// @Success 200 {object} moderation.QueueStatistics "Queue statistics"
// @Router /api/v1/moderation/queue/stats [get]
func (h *queueStatsHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.queue.QueueStatistics())
}
