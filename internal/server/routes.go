package server

import (
	"github.com/contentcraft/contentcraft-api/internal/server/middleware"
	v1 "github.com/contentcraft/contentcraft-api/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.ErrorHandler(s.logger))

	// Health Check (Public)
	healthHandler := v1.NewHealthHandler()
	s.router.GET("/health", healthHandler.Health)

	// API V1 Group
	api := s.router.Group("/api/v1")
	api.Use(middleware.Auth(s.config.Server.APIKeys))
	api.Use(middleware.NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst, s.logger).Middleware())
	api.Use(middleware.Tracing("contentcraft-api"))
	{
		contentHandler := v1.NewContentHandler(s.service)
		api.POST("/enhance", contentHandler.Enhance)
		api.POST("/generate", contentHandler.Generate)

		chatHandler := v1.NewChatHandler(s.service)
		api.POST("/chat", chatHandler.Chat)

		connHandler := v1.NewConnectionHandler(s.service)
		api.POST("/test-connection", connHandler.TestConnection)
		api.GET("/usage", connHandler.Usage)

		analyticsHandler := v1.NewAnalyticsHandler(s.analytics)
		api.GET("/history", analyticsHandler.GetHistory)
		api.GET("/stats/daily", analyticsHandler.GetDailyStats)
	}
}
