package server

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"flamtunes/logger"
	"flamtunes/model"

	"github.com/gorilla/mux"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func validShowTimes(show *model.Show) string {
	if strings.TrimSpace(show.Name) == "" {
		return "Show name is required"
	}
	if !clockPattern.MatchString(show.StartTime) || !clockPattern.MatchString(show.EndTime) {
		return "Start and end time must be HH:MM"
	}
	if len(show.DaysOfWeek) == 0 {
		return "At least one day of week is required"
	}
	for _, d := range show.DaysOfWeek {
		if d < 1 || d > 7 {
			return "Days of week must be 1 (Monday) through 7 (Sunday)"
		}
	}
	return ""
}

// GetScheduleHandler returns the active shows with their hosts for the
// public site.
func (h *APIHandler) GetScheduleHandler(w http.ResponseWriter, r *http.Request) {
	shows, err := h.showRepo.ListActive(r.Context())
	if err != nil {
		logger.Error("Failed to load schedule", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if shows == nil {
		shows = []*model.Show{}
	}

	respondJSON(w, http.StatusOK, shows)
}

// ListShowsHandler returns every show, active or not, for the admin back
// office.
func (h *APIHandler) ListShowsHandler(w http.ResponseWriter, r *http.Request) {
	shows, err := h.showRepo.ListAll(r.Context())
	if err != nil {
		logger.Error("Failed to list shows", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if shows == nil {
		shows = []*model.Show{}
	}

	respondJSON(w, http.StatusOK, shows)
}

// CreateShowHandler creates a schedule slot.
func (h *APIHandler) CreateShowHandler(w http.ResponseWriter, r *http.Request) {
	var show model.Show
	if err := json.NewDecoder(r.Body).Decode(&show); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	show.ID = 0

	if msg := validShowTimes(&show); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.showRepo.Create(r.Context(), &show); err != nil {
		logger.Error("Failed to create show", logger.String("name", show.Name), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("Show created", logger.Int64("showId", show.ID), logger.String("name", show.Name))
	respondJSON(w, http.StatusCreated, show)
}

// UpdateShowHandler replaces a schedule slot.
func (h *APIHandler) UpdateShowHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	showID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid show ID")
		return
	}

	existing, err := h.showRepo.GetByID(r.Context(), showID)
	if err != nil {
		logger.Error("Failed to load show", logger.Int64("showId", showID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Show not found")
		return
	}

	var show model.Show
	if err := json.NewDecoder(r.Body).Decode(&show); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	show.ID = showID
	show.CreatedAt = existing.CreatedAt

	if msg := validShowTimes(&show); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.showRepo.Update(r.Context(), &show); err != nil {
		logger.Error("Failed to update show", logger.Int64("showId", showID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, show)
}

// DeleteShowHandler removes a schedule slot.
func (h *APIHandler) DeleteShowHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	showID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid show ID")
		return
	}

	existing, err := h.showRepo.GetByID(r.Context(), showID)
	if err != nil {
		logger.Error("Failed to load show", logger.Int64("showId", showID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Show not found")
		return
	}

	if err := h.showRepo.Delete(r.Context(), showID); err != nil {
		logger.Error("Failed to delete show", logger.Int64("showId", showID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("Show deleted", logger.Int64("showId", showID))
	w.WriteHeader(http.StatusNoContent)
}

// ListAIHostsHandler returns the configured host personas.
func (h *APIHandler) ListAIHostsHandler(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.hostRepo.ListAll(r.Context())
	if err != nil {
		logger.Error("Failed to list AI hosts", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if hosts == nil {
		hosts = []*model.AIHost{}
	}

	respondJSON(w, http.StatusOK, hosts)
}

// CreateAIHostHandler adds a host persona.
func (h *APIHandler) CreateAIHostHandler(w http.ResponseWriter, r *http.Request) {
	var host model.AIHost
	if err := json.NewDecoder(r.Body).Decode(&host); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	host.ID = 0

	if strings.TrimSpace(host.Name) == "" || strings.TrimSpace(host.VoiceID) == "" ||
		strings.TrimSpace(host.PersonaPrompt) == "" {
		respondError(w, http.StatusBadRequest, "Name, voice ID and persona prompt are required")
		return
	}

	if err := h.hostRepo.Create(r.Context(), &host); err != nil {
		logger.Error("Failed to create AI host", logger.String("name", host.Name), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("AI host created", logger.Int64("hostId", host.ID), logger.String("name", host.Name))
	respondJSON(w, http.StatusCreated, host)
}

// UpdateAIHostHandler replaces a host persona.
func (h *APIHandler) UpdateAIHostHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hostID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid host ID")
		return
	}

	existing, err := h.hostRepo.GetByID(r.Context(), hostID)
	if err != nil {
		logger.Error("Failed to load AI host", logger.Int64("hostId", hostID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "AI host not found")
		return
	}

	var host model.AIHost
	if err := json.NewDecoder(r.Body).Decode(&host); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	host.ID = hostID
	host.CreatedAt = existing.CreatedAt

	if strings.TrimSpace(host.Name) == "" || strings.TrimSpace(host.VoiceID) == "" ||
		strings.TrimSpace(host.PersonaPrompt) == "" {
		respondError(w, http.StatusBadRequest, "Name, voice ID and persona prompt are required")
		return
	}

	if err := h.hostRepo.Update(r.Context(), &host); err != nil {
		logger.Error("Failed to update AI host", logger.Int64("hostId", hostID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, host)
}

// DeleteAIHostHandler removes a host persona.
func (h *APIHandler) DeleteAIHostHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hostID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid host ID")
		return
	}

	existing, err := h.hostRepo.GetByID(r.Context(), hostID)
	if err != nil {
		logger.Error("Failed to load AI host", logger.Int64("hostId", hostID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "AI host not found")
		return
	}

	if err := h.hostRepo.Delete(r.Context(), hostID); err != nil {
		logger.Error("Failed to delete AI host", logger.Int64("hostId", hostID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("AI host deleted", logger.Int64("hostId", hostID))
	w.WriteHeader(http.StatusNoContent)
}
