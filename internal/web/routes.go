package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-events/internal/database"
	"github.com/kozaktomas/photo-events/internal/web/handlers"
)

func (s *Server) setupRoutes(photos database.PhotoWriter, events database.EventStore) {
	eventsHandler := handlers.NewEventsHandler(s.config, photos, events)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Detection and manual corrections (nothing persisted)
		r.Post("/events/detect", eventsHandler.Detect)
		r.Post("/events/split", eventsHandler.Split)
		r.Post("/events/merge", eventsHandler.Merge)

		// Persisted events
		r.Get("/events", eventsHandler.List)
		r.Post("/events", eventsHandler.Accept)
		r.Delete("/events/{id}", eventsHandler.Delete)
	})
}
