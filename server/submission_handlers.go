package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"flamtunes/core/submission"
	"flamtunes/logger"
	"flamtunes/model"
)

// SubmitTrackHandler receives a multipart submission from an authenticated
// artist. Expected form fields:
// - file: the audio file
// - trackTitle, releaseDate (YYYY-MM-DD): required
// - genre, bpm, moodTags, rightsHolderName, additionalInfo: optional
// - artistName, contactName, contactPhone: optional, default to the profile
// - ownershipConfirmed, permissionGranted: must both be "true"
func (h *APIHandler) SubmitTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.profileRepo.GetProfileByUserID(r.Context(), id.UserID)
	if err != nil {
		logger.Error("Failed to load profile", logger.Int64("userId", id.UserID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if profile == nil {
		respondError(w, http.StatusForbidden, "Artist profile required")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	cmd := submission.SubmitCommand{
		ArtistName:         r.FormValue("artistName"),
		ContactName:        r.FormValue("contactName"),
		ContactPhone:       r.FormValue("contactPhone"),
		TrackTitle:         r.FormValue("trackTitle"),
		Genre:              r.FormValue("genre"),
		ReleaseDate:        r.FormValue("releaseDate"),
		MoodTags:           r.FormValue("moodTags"),
		OwnershipConfirmed: r.FormValue("ownershipConfirmed") == "true",
		PermissionGranted:  r.FormValue("permissionGranted") == "true",
		RightsHolderName:   r.FormValue("rightsHolderName"),
		AdditionalInfo:     r.FormValue("additionalInfo"),
	}
	if bpmStr := r.FormValue("bpm"); bpmStr != "" {
		if bpm, err := strconv.Atoi(bpmStr); err == nil {
			cmd.BPM = &bpm
		}
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		cmd.File = file
		cmd.FileName = header.Filename
		cmd.FileSize = header.Size
		cmd.ContentType = header.Header.Get("Content-Type")
	} else if err != http.ErrMissingFile {
		respondError(w, http.StatusBadRequest, "Error reading uploaded file")
		return
	}

	sub, err := h.submissions.Submit(r.Context(), profile, id.Email, cmd)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sub)
}

// ListOwnSubmissionsHandler returns the caller's submissions, newest first.
func (h *APIHandler) ListOwnSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.profileRepo.GetProfileByUserID(r.Context(), id.UserID)
	if err != nil {
		logger.Error("Failed to load profile", logger.Int64("userId", id.UserID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if profile == nil {
		respondError(w, http.StatusForbidden, "Artist profile required")
		return
	}

	subs, err := h.subRepo.ListSubmissionsByProfile(r.Context(), profile.ID)
	if err != nil {
		logger.Error("Failed to list submissions", logger.Int64("profileId", profile.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if subs == nil {
		subs = []*model.Submission{}
	}

	respondJSON(w, http.StatusOK, subs)
}

// ListSubmissionsHandler returns all submissions for the admin review queue,
// optionally filtered by ?status=.
func (h *APIHandler) ListSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subRepo.ListSubmissions(r.Context())
	if err != nil {
		logger.Error("Failed to list submissions", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if statusFilter := strings.ToUpper(r.URL.Query().Get("status")); statusFilter != "" {
		filtered := subs[:0]
		for _, s := range subs {
			if string(s.Status) == statusFilter {
				filtered = append(filtered, s)
			}
		}
		subs = filtered
	}
	if subs == nil {
		subs = []*model.Submission{}
	}

	respondJSON(w, http.StatusOK, subs)
}

// ReviewSubmissionHandler applies an admin review decision.
func (h *APIHandler) ReviewSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		SubmissionID int64  `json:"submissionId"`
		Status       string `json:"status"`
		AdminNotes   string `json:"adminNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.submissions.Review(r.Context(), id, submission.ReviewCommand{
		SubmissionID: req.SubmissionID,
		Decision:     model.SubmissionStatus(strings.ToUpper(req.Status)),
		AdminNotes:   req.AdminNotes,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sub)
}
