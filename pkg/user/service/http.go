package service

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/foresightlabs/market-api/pkg/app/errors"
	apphttp "github.com/foresightlabs/market-api/pkg/app/http"
	"github.com/foresightlabs/market-api/pkg/auth"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the profile endpoints on the given chi router.
// The caller mounts these behind the session gate.
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{service: service, logger: logger}

	r.Get("/profile", apphttp.HandleError(h.getProfile))
	r.Patch("/profile", apphttp.HandleError(h.updateProfile))
}

type profileResponse struct {
	Address  string  `json:"address"`
	Username *string `json:"username"`
}

// getProfile handles GET /profile
func (h *HTTP) getProfile(w http.ResponseWriter, r *http.Request) error {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return apperrors.UnAuthorizedError(nil, "unauthorized")
	}

	u, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusOK, profileResponse{Address: u.Address, Username: u.Username})
	return nil
}

// updateProfile handles PATCH /profile
func (h *HTTP) updateProfile(w http.ResponseWriter, r *http.Request) error {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return apperrors.UnAuthorizedError(nil, "unauthorized")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}

	u, err := h.service.UpdateProfile(r.Context(), userID, req.Username)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusOK, profileResponse{Address: u.Address, Username: u.Username})
	return nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
