package server

import (
	"net/http"
	"strconv"
	"strings"

	"flamtunes/logger"
	"flamtunes/model"
)

// ListSegmentsHandler returns generated voice segments for the admin back
// office, newest first. ?type= filters by classification, ?limit= caps the
// result, default 50.
func (h *APIHandler) ListSegmentsHandler(w http.ResponseWriter, r *http.Request) {
	var segType model.SegmentType
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		segType = model.SegmentType(strings.ToUpper(typeStr))
		if !model.ValidSegmentType(segType) {
			respondError(w, http.StatusBadRequest, "Invalid segment type. Must be AI_TALK, NEWS, WEATHER, or AD")
			return
		}
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	segs, err := h.segmentRepo.List(r.Context(), segType, limit)
	if err != nil {
		logger.Error("Failed to list segments", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if segs == nil {
		segs = []*model.Segment{}
	}

	respondJSON(w, http.StatusOK, segs)
}
