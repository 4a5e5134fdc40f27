package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"flamtunes/logger"
	"flamtunes/model"
)

const maxRequestMessageLen = 500

// CreateRequestHandler receives a listener song request or shout-out from
// the public site. No authentication; the orchestrator may read these later.
func (h *APIHandler) CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name             string `json:"name"`
		Message          string `json:"message"`
		RequestedTrackID *int64 `json:"requestedTrackId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if len(req.Message) > maxRequestMessageLen {
		respondError(w, http.StatusBadRequest, "Message is too long")
		return
	}

	if req.RequestedTrackID != nil {
		track, err := h.trackRepo.GetTrackByID(r.Context(), *req.RequestedTrackID)
		if err != nil {
			logger.Error("Failed to look up requested track", logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if track == nil {
			respondError(w, http.StatusBadRequest, "Requested track does not exist")
			return
		}
	}

	entry := &model.Request{
		Name:             strings.TrimSpace(req.Name),
		Message:          req.Message,
		RequestedTrackID: req.RequestedTrackID,
		Status:           model.RequestPending,
	}
	if err := h.reqRepo.Create(r.Context(), entry); err != nil {
		logger.Error("Failed to store listener request", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// ListRequestsHandler returns recent listener requests for the admin back
// office. ?limit= caps the result, default 50.
func (h *APIHandler) ListRequestsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	requests, err := h.reqRepo.ListRecent(r.Context(), limit)
	if err != nil {
		logger.Error("Failed to list requests", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if requests == nil {
		requests = []*model.Request{}
	}

	respondJSON(w, http.StatusOK, requests)
}

// MarkRequestHandler sets the handling status of a listener request.
func (h *APIHandler) MarkRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		RequestID int64  `json:"requestId"`
		Status    string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := model.RequestStatus(strings.ToUpper(req.Status))
	if req.RequestID <= 0 || !model.ValidRequestMark(status) {
		respondError(w, http.StatusBadRequest, "Request ID and a valid status are required")
		return
	}

	entry, err := h.reqRepo.Mark(r.Context(), req.RequestID, status, id.ReviewerRef())
	if err != nil {
		logger.Error("Failed to mark request",
			logger.Int64("requestId", req.RequestID),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if entry == nil {
		respondError(w, http.StatusNotFound, "Request not found")
		return
	}

	respondJSON(w, http.StatusOK, entry)
}
