package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"flamtunes/config"
	"flamtunes/core/auth"
	"flamtunes/core/library"
	"flamtunes/core/live"
	"flamtunes/core/submission"
	"flamtunes/logger"
	"flamtunes/repository"
)

// APIHandler carries the wired repositories and services for all HTTP
// endpoints.
type APIHandler struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	trackRepo   repository.TrackRepository
	subRepo     repository.SubmissionRepository
	showRepo    repository.ShowRepository
	hostRepo    repository.AIHostRepository
	reqRepo     repository.RequestRepository
	npRepo      repository.NowPlayingRepository
	segmentRepo repository.SegmentRepository

	submissions *submission.Service
	library     *library.Service
	tokens      *auth.TokenIssuer
	hub         *live.Hub
	cfg         *config.Config
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	trackRepo repository.TrackRepository,
	subRepo repository.SubmissionRepository,
	showRepo repository.ShowRepository,
	hostRepo repository.AIHostRepository,
	reqRepo repository.RequestRepository,
	npRepo repository.NowPlayingRepository,
	segmentRepo repository.SegmentRepository,
	submissions *submission.Service,
	libraryService *library.Service,
	tokens *auth.TokenIssuer,
	hub *live.Hub,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		trackRepo:   trackRepo,
		subRepo:     subRepo,
		showRepo:    showRepo,
		hostRepo:    hostRepo,
		reqRepo:     reqRepo,
		npRepo:      npRepo,
		segmentRepo: segmentRepo,
		submissions: submissions,
		library:     libraryService,
		tokens:      tokens,
		hub:         hub,
		cfg:         cfg,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondServiceError maps workflow errors onto HTTP statuses. Validation
// failures surface their message; anything unexpected becomes a generic 500
// so internals never leak to clients.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case submission.IsValidation(err) || library.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, submission.ErrNotFound):
		respondError(w, http.StatusNotFound, "Submission not found")
	case errors.Is(err, library.ErrTrackNotFound):
		respondError(w, http.StatusNotFound, "Track not found")
	default:
		logger.Error("Request failed", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
