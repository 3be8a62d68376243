package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Moderation pipeline
	SubmitContentHandler Handler

	// Review queue
	ListQueueHandler       Handler
	ReviewQueueItemHandler Handler
	RemoveQueueItemHandler Handler
	QueueStatsHandler      Handler

	// Misc
	GetVersionHandler Handler
}
