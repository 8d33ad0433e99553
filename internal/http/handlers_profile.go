package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"moneta/internal/core"
)

type profileResponse struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createProfile(w, r)
	case http.MethodGet:
		s.getProfile(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := core.Profile{
		FullName: sanitizeInput(req.FullName),
		Email:    sanitizeInput(req.Email),
	}
	if err := profile.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateProfile(r.Context(), profile)
	if err != nil {
		slog.ErrorContext(r.Context(), "Profile creation failed", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, profileResponse{
		ID:        created.ID,
		FullName:  created.FullName,
		Email:     created.Email,
		CreatedAt: created.CreatedAt,
	})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		slog.ErrorContext(r.Context(), "Profile lookup failed", "profile_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:        profile.ID,
		FullName:  profile.FullName,
		Email:     profile.Email,
		CreatedAt: profile.CreatedAt,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createCategory(w, r)
	case http.MethodGet:
		s.listCategories(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

type categoryResponse struct {
	ID        int64  `json:"id"`
	ProfileID int64  `json:"profileId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Icon      string `json:"icon,omitempty"`
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID int64  `json:"profileId"`
		Name      string `json:"name"`
		Type      string `json:"type"`
		Icon      string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProfileID <= 0 {
		writeError(w, http.StatusBadRequest, "missing profileId")
		return
	}

	category := core.Category{
		ProfileID: req.ProfileID,
		Name:      sanitizeInput(req.Name),
		Type:      req.Type,
		Icon:      sanitizeInput(req.Icon),
	}
	if err := category.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateCategory(r.Context(), category)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category creation failed",
			"profile_id", req.ProfileID, "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{
		ID:        created.ID,
		ProfileID: created.ProfileID,
		Name:      created.Name,
		Type:      created.Type,
		Icon:      created.Icon,
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	profileID, err := queryInt64(r, "profileId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := s.store.ListCategories(r.Context(), profileID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category listing failed", "profile_id", profileID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	items := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, categoryResponse{
			ID:        c.ID,
			ProfileID: c.ProfileID,
			Name:      c.Name,
			Type:      c.Type,
			Icon:      c.Icon,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
