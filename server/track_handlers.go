package server

import (
	"net/http"
	"strconv"

	"flamtunes/core/library"
	"flamtunes/logger"
	"flamtunes/model"

	"github.com/gorilla/mux"
)

// UploadTrackHandler receives a direct admin upload into the published
// library. Expected multipart form fields:
// - file: the audio file
// - title, artist: required
// - genre, bpm, moodTags: optional
// - isJingle, isBedMusic: "true" to flag special purpose audio
func (h *APIHandler) UploadTrackHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	cmd := library.IngestCommand{
		Title:      r.FormValue("title"),
		Artist:     r.FormValue("artist"),
		Genre:      r.FormValue("genre"),
		MoodTags:   r.FormValue("moodTags"),
		IsJingle:   r.FormValue("isJingle") == "true",
		IsBedMusic: r.FormValue("isBedMusic") == "true",
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

	track, err := h.library.Ingest(r.Context(), cmd)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, track)
}

// ListTracksHandler returns the full library for the admin back office.
func (h *APIHandler) ListTracksHandler(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.trackRepo.ListTracks(r.Context())
	if err != nil {
		logger.Error("Failed to list tracks", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if tracks == nil {
		tracks = []*model.Track{}
	}

	respondJSON(w, http.StatusOK, tracks)
}

// DeleteTrackHandler removes a library track and its stored audio.
func (h *APIHandler) DeleteTrackHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trackID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	if err := h.library.Delete(r.Context(), trackID); err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("Track deleted", logger.Int64("trackId", trackID))
	w.WriteHeader(http.StatusNoContent)
}
