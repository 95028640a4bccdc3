package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kozaktomas/photo-events/internal/config"
	"github.com/kozaktomas/photo-events/internal/database"
	"github.com/kozaktomas/photo-events/internal/timeline"
)

// EventsHandler serves event detection, manual corrections and the persisted
// event collection.
type EventsHandler struct {
	config   *config.Config
	photos   database.PhotoWriter
	events   database.EventStore
	detector *timeline.Detector
	editor   *timeline.Editor
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(cfg *config.Config, photos database.PhotoWriter, events database.EventStore) *EventsHandler {
	detector := timeline.NewDetector()
	return &EventsHandler{
		config:   cfg,
		photos:   photos,
		events:   events,
		detector: detector,
		editor:   timeline.NewEditor(detector.Enricher()),
	}
}

type detectRequest struct {
	EpsilonMinutes *float64 `json:"epsilon_minutes"`
	MinPoints      *int     `json:"min_points"`
}

type detectResponse struct {
	EpsilonMinutes float64                    `json:"epsilon_minutes"`
	PhotoCount     int                        `json:"photo_count"`
	Events         []timeline.EventSuggestion `json:"events"`
}

// Detect runs event detection over the whole photo store and returns the
// suggestions without persisting anything. An empty body runs with the
// configured defaults.
func (h *EventsHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	stored, err := h.photos.ListWithCaptureTime(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list photos: %v", err))
		return
	}
	points := database.PhotoPoints(stored)

	opts := h.detectionOptions(req)
	suggestions, err := h.detector.AutoDetect(points, opts)
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("detection failed: %v", err))
		return
	}

	epsilon := timeline.SuggestEpsilon(points)
	if opts.EpsilonMinutes != nil {
		epsilon = *opts.EpsilonMinutes
	}

	respondJSON(w, http.StatusOK, detectResponse{
		EpsilonMinutes: epsilon,
		PhotoCount:     len(points),
		Events:         suggestions,
	})
}

// detectionOptions merges the request overrides with the configured defaults.
func (h *EventsHandler) detectionOptions(req detectRequest) timeline.Options {
	opts := timeline.Options{
		EpsilonMinutes: req.EpsilonMinutes,
		MinPoints:      req.MinPoints,
	}
	if opts.EpsilonMinutes == nil && h.config.Detection.EpsilonMinutes > 0 {
		eps := h.config.Detection.EpsilonMinutes
		opts.EpsilonMinutes = &eps
	}
	if opts.MinPoints == nil && h.config.Detection.MinPoints > 0 {
		mp := h.config.Detection.MinPoints
		opts.MinPoints = &mp
	}
	return opts
}

func isValidationError(err error) bool {
	return errors.Is(err, timeline.ErrInvalidEpsilon) ||
		errors.Is(err, timeline.ErrInvalidMinPoints) ||
		errors.Is(err, timeline.ErrMissingCaptureTime)
}

type splitRequest struct {
	PhotoIDs  []int64   `json:"photo_ids"`
	SplitTime time.Time `json:"split_time"`
}

// Split divides one suggested event into two at a chosen time and returns
// the re-enriched halves.
func (h *EventsHandler) Split(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if len(req.PhotoIDs) == 0 {
		respondError(w, http.StatusBadRequest, "photo_ids must not be empty")
		return
	}
	if req.SplitTime.IsZero() {
		respondError(w, http.StatusBadRequest, "split_time is required")
		return
	}

	points, err := h.lookupPoints(r, req.PhotoIDs)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	suggestions := h.editor.SplitAt(points, req.SplitTime)
	respondJSON(w, http.StatusOK, map[string]any{"events": suggestions})
}

type mergeRequest struct {
	Groups [][]int64 `json:"groups"`
}

// Merge combines several suggested events into one spanning their full range.
func (h *EventsHandler) Merge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	groups := make([][]timeline.PhotoPoint, 0, len(req.Groups))
	for _, ids := range req.Groups {
		points, err := h.lookupPoints(r, ids)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		groups = append(groups, points)
	}

	merged, err := h.editor.Merge(groups)
	if err != nil {
		if errors.Is(err, timeline.ErrNoPhotos) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("merge failed: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"event": merged})
}

// lookupPoints resolves photo ids against the store. Unknown ids are an
// error, not silently dropped, so corrections can never lose photos.
func (h *EventsHandler) lookupPoints(r *http.Request, ids []int64) ([]timeline.PhotoPoint, error) {
	stored, err := h.photos.ListWithCaptureTime(r.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	byID := make(map[int64]timeline.PhotoPoint, len(stored))
	for _, p := range database.PhotoPoints(stored) {
		byID[p.ID] = p
	}

	points := make([]timeline.PhotoPoint, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown photo id %d", id)
		}
		points = append(points, p)
	}
	return points, nil
}

type acceptRequest struct {
	Name            string    `json:"name"`
	EventType       string    `json:"event_type"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	PhotoIDs        []int64   `json:"photo_ids"`
	PhotoDensity    float64   `json:"photo_density"`
	SuggestedColor  string    `json:"suggested_color"`
	Confidence      float64   `json:"confidence"`
}

type eventResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	EventType       string    `json:"event_type"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	PhotoCount      int       `json:"photo_count"`
	PhotoDensity    float64   `json:"photo_density"`
	Color           string    `json:"color"`
	Confidence      float64   `json:"confidence"`
	CreatedAt       time.Time `json:"created_at"`
}

func toEventResponse(e database.StoredEvent) eventResponse {
	return eventResponse{
		ID:              e.ID,
		Name:            e.Name,
		EventType:       e.EventType,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: e.DurationMinutes,
		PhotoCount:      e.PhotoCount,
		PhotoDensity:    e.PhotoDensity,
		Color:           e.Color,
		Confidence:      e.Confidence,
		CreatedAt:       e.CreatedAt,
	}
}

// Accept persists a (possibly hand-edited) suggestion as an event and assigns
// its photos to it.
func (h *EventsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.PhotoIDs) == 0 {
		respondError(w, http.StatusBadRequest, "photo_ids must not be empty")
		return
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() || req.EndTime.Before(req.StartTime) {
		respondError(w, http.StatusBadRequest, "invalid event time range")
		return
	}

	event := &database.StoredEvent{
		Name:            req.Name,
		EventType:       req.EventType,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
		PhotoCount:      len(req.PhotoIDs),
		PhotoDensity:    req.PhotoDensity,
		Color:           req.SuggestedColor,
		Confidence:      req.Confidence,
	}
	if err := h.events.CreateEvent(r.Context(), event); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to create event: %v", err))
		return
	}
	if err := h.photos.AssignEvent(r.Context(), event.ID, req.PhotoIDs); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to assign photos: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, toEventResponse(*event))
}

// List returns the persisted events sorted by start time.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list events: %v", err))
		return
	}

	out := make([]eventResponse, len(events))
	for i, e := range events {
		out[i] = toEventResponse(e)
	}
	respondJSON(w, http.StatusOK, map[string]any{"events": out})
}

// Delete removes a persisted event. Assigned photos are unassigned by the
// store, not deleted.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.events.DeleteEvent(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("failed to delete event: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
