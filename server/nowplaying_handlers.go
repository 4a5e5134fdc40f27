package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flamtunes/cache"
	"flamtunes/logger"
	"flamtunes/model"
)

// attachItem fills the in-memory track or segment reference the entry
// points at. Lookup failures are logged and leave the entry bare.
func (h *APIHandler) attachItem(ctx context.Context, entry *model.NowPlaying) {
	if entry == nil {
		return
	}
	if entry.TrackID != nil {
		track, err := h.trackRepo.GetTrackByID(ctx, *entry.TrackID)
		if err != nil {
			logger.Warn("Failed to load track for playback entry",
				logger.Int64("trackId", *entry.TrackID),
				logger.ErrorField(err))
		} else {
			entry.Track = track
		}
	}
	if entry.SegmentID != nil {
		seg, err := h.segmentRepo.GetByID(ctx, *entry.SegmentID)
		if err != nil {
			logger.Warn("Failed to load segment for playback entry",
				logger.Int64("segmentId", *entry.SegmentID),
				logger.ErrorField(err))
		} else {
			entry.Segment = seg
		}
	}
}

// GetNowPlayingHandler returns the item currently on air. The redis cache is
// checked first; a miss falls back to the open history row.
func (h *APIHandler) GetNowPlayingHandler(w http.ResponseWriter, r *http.Request) {
	entry, err := cache.GetNowPlaying(r.Context())
	if err != nil {
		logger.Warn("Now playing cache read failed", logger.ErrorField(err))
	}
	if entry == nil {
		entry, err = h.npRepo.GetCurrent(r.Context())
		if err != nil {
			logger.Error("Failed to load current playback", logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if entry != nil {
			h.attachItem(r.Context(), entry)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"nowPlaying": entry})
}

// GetHistoryHandler returns recent playback history, newest first. ?limit=
// caps the result, default 20.
func (h *APIHandler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.npRepo.ListHistory(r.Context(), limit)
	if err != nil {
		logger.Error("Failed to load playback history", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	for _, entry := range entries {
		h.attachItem(r.Context(), entry)
	}
	if entries == nil {
		entries = []*model.NowPlaying{}
	}

	respondJSON(w, http.StatusOK, entries)
}

// IngestNowPlayingHandler records a playback change reported by the
// orchestrator: the open history row is closed, a new one inserted, the
// cache refreshed and the change pushed to websocket listeners. Close and
// insert are separate statements, so a crash in between can briefly leave no
// open row; the next report heals it.
func (h *APIHandler) IngestNowPlayingHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemType          string     `json:"itemType"`
		TrackID           *int64     `json:"trackId"`
		SegmentID         *int64     `json:"segmentId"`
		ShowID            *int64     `json:"showId"`
		ListenersEstimate *int       `json:"listenersEstimate"`
		StartedAt         *time.Time `json:"startedAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	itemType := model.PlaybackItemType(strings.ToUpper(req.ItemType))
	switch itemType {
	case model.ItemTrack:
		if req.TrackID == nil {
			respondError(w, http.StatusBadRequest, "trackId is required for TRACK items")
			return
		}
	case model.ItemSegment:
		if req.SegmentID == nil {
			respondError(w, http.StatusBadRequest, "segmentId is required for SEGMENT items")
			return
		}
	default:
		respondError(w, http.StatusBadRequest, "itemType must be TRACK or SEGMENT")
		return
	}

	startedAt := time.Now()
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}

	if err := h.npRepo.CloseOpen(r.Context(), startedAt); err != nil {
		logger.Error("Failed to close open playback row", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	entry := &model.NowPlaying{
		StartedAt:         startedAt,
		ItemType:          itemType,
		TrackID:           req.TrackID,
		SegmentID:         req.SegmentID,
		ShowID:            req.ShowID,
		ListenersEstimate: req.ListenersEstimate,
	}
	if err := h.npRepo.Create(r.Context(), entry); err != nil {
		logger.Error("Failed to insert playback row", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.attachItem(r.Context(), entry)

	if err := cache.SetNowPlaying(r.Context(), entry); err != nil {
		logger.Warn("Failed to refresh now playing cache", logger.ErrorField(err))
	}
	h.hub.BroadcastNowPlaying(entry)

	logger.Info("Playback change recorded",
		logger.Int64("entryId", entry.ID),
		logger.String("itemType", string(itemType)))

	respondJSON(w, http.StatusCreated, entry)
}
