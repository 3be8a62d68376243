package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/veilmatch/moderation/pkg/config"
	handlers "github.com/veilmatch/moderation/pkg/handlers/http"
)

type (
	ModerationServerDI struct {
		HandlerTransport handlers.HandlerTransport
		Config           *config.Config
		Logger           *logrus.Logger
	}
	ModerationServer struct {
		*BaseServer
		handlerTransport handlers.HandlerTransport
	}
)

func NewModerationServer(di ModerationServerDI) *ModerationServer {
	return &ModerationServer{
		BaseServer:       NewBaseServer(di.Config, di.Logger),
		handlerTransport: di.HandlerTransport,
	}
}

func (s *ModerationServer) Run() error {
	s.router.Use(recover.New())
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting moderation server")
	return s.router.Listen(addr)
}

func (s *ModerationServer) setupRoutes() {
	baseRouter := s.router.Group("")
	s.addRoutes(baseRouter)
}

func (s *ModerationServer) addRoutes(router fiber.Router) {
	v1 := router.Group("/api/v1")
	{
		mod := v1.Group("/moderation")
		{
			mod.Post("/content", s.handlerTransport.SubmitContentHandler.Handle)

			queue := mod.Group("/queue")
			{
				queue.Get("", s.handlerTransport.ListQueueHandler.Handle)
				queue.Get("/stats", s.handlerTransport.QueueStatsHandler.Handle)
				queue.Put("/:item_id", s.handlerTransport.ReviewQueueItemHandler.Handle)
				queue.Delete("/:item_id", s.handlerTransport.RemoveQueueItemHandler.Handle)
			}
		}

		v1.Get("/version", s.handlerTransport.GetVersionHandler.Handle)
	}
}

func (s *ModerationServer) Shutdown() error {
	return s.router.Shutdown()
}
