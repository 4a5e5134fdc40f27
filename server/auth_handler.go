package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"flamtunes/core/auth"
	"flamtunes/logger"
	"flamtunes/model"
	"flamtunes/repository"
)

type contextKey string

const identityKey contextKey = "identity"

// RegisterRequest is the artist registration body.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	ArtistName   string `json:"artistName"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	Bio          string `json:"bio"`
	Website      string `json:"website"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates an artist account with its profile and returns a
// session token.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.ArtistName) == "" {
		respondError(w, http.StatusBadRequest, "Email, password and artist name are required")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hashed,
	}
	userID, err := h.userRepo.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			respondError(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		logger.Error("Failed to create user", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	user.ID = userID

	profile := &model.ArtistProfile{
		UserID:       userID,
		ArtistName:   strings.TrimSpace(req.ArtistName),
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Bio:          strings.TrimSpace(req.Bio),
		Website:      strings.TrimSpace(req.Website),
	}
	if profile.ContactName == "" {
		profile.ContactName = profile.ArtistName
	}
	profileID, err := h.profileRepo.CreateProfile(r.Context(), profile)
	if err != nil {
		logger.Error("Failed to create artist profile",
			logger.Int64("userId", userID),
			logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	profile.ID = profileID

	token, err := h.tokens.Generate(auth.Identity{UserID: userID, Email: user.Email})
	if err != nil {
		logger.Error("Failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("Artist registered",
		logger.Int64("userId", userID),
		logger.String("artist", profile.ArtistName))

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token":   token,
		"user":    user,
		"profile": profile,
	})
}

// LoginHandler authenticates a user and returns a session token.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userRepo.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		logger.Error("Failed to look up user", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Generate(auth.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		logger.Error("Failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetProfileHandler returns the caller's artist profile.
func (h *APIHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
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
		respondError(w, http.StatusNotFound, "Artist profile not found")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfileHandler updates the caller's artist profile.
func (h *APIHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
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
		respondError(w, http.StatusNotFound, "Artist profile not found")
		return
	}

	var req struct {
		ArtistName   *string `json:"artistName"`
		ContactName  *string `json:"contactName"`
		ContactPhone *string `json:"contactPhone"`
		Bio          *string `json:"bio"`
		Website      *string `json:"website"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ArtistName != nil {
		if strings.TrimSpace(*req.ArtistName) == "" {
			respondError(w, http.StatusBadRequest, "Artist name cannot be empty")
			return
		}
		profile.ArtistName = strings.TrimSpace(*req.ArtistName)
	}
	if req.ContactName != nil {
		profile.ContactName = strings.TrimSpace(*req.ContactName)
	}
	if req.ContactPhone != nil {
		profile.ContactPhone = strings.TrimSpace(*req.ContactPhone)
	}
	if req.Bio != nil {
		profile.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.Website != nil {
		profile.Website = strings.TrimSpace(*req.Website)
	}

	if err := h.profileRepo.UpdateProfile(r.Context(), profile); err != nil {
		logger.Error("Failed to update profile", logger.Int64("profileId", profile.ID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// AuthMiddleware checks the Bearer token and stores the caller's identity in
// the request context.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		id, err := h.tokens.Parse(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// AdminMiddleware requires an authenticated admin caller. It wraps
// AuthMiddleware.
func (h *APIHandler) AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok || !id.IsAdmin {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// InternalMiddleware guards orchestrator-facing endpoints with a shared key.
func (h *APIHandler) InternalMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.InternalAPIKey == "" || r.Header.Get("X-Internal-Key") != h.cfg.InternalAPIKey {
			respondError(w, http.StatusUnauthorized, "Invalid internal key")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// IdentityFromContext extracts the authenticated identity set by
// AuthMiddleware.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}
