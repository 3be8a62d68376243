package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appModeration "github.com/veilmatch/moderation/pkg/app/moderation"
	domain "github.com/veilmatch/moderation/pkg/domain/moderation"
	"github.com/veilmatch/moderation/pkg/handlers/http/request"
)

type submitContentHandler struct {
	logger *logrus.Logger
	queue  appModeration.QueueService
}

func NewSubmitContentHandler(logger *logrus.Logger, queue appModeration.QueueService) Handler {
	return &submitContentHandler{
		logger: logger,
		queue:  queue,
	}
}

// Handle @Summary Submit content for moderation
// @Description Runs the moderation pipeline on a piece of content and returns the verdict
// @Tags Moderation
// @Accept json
// @Produce json
// @Param content body request.SubmitContentRequest true "Content to moderate"
// @Success 200 {object} moderation.Result "Moderation verdict"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/moderation/content [post]
func (h *submitContentHandler) Handle(c *fiber.Ctx) error {
	var req request.SubmitContentRequest

	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("failed to bind submit content request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := h.queue.ProcessContent(
		c.Context(),
		req.ContentID,
		domain.ContentType(req.ContentType),
		req.AuthorID,
		req.Text,
	)

	return c.Status(fiber.StatusOK).JSON(result)
}
