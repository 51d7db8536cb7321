package service

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/foresightlabs/market-api/pkg/app/errors"
	apphttp "github.com/foresightlabs/market-api/pkg/app/http"
	"github.com/foresightlabs/market-api/pkg/login"
)

// CookieSettings controls the session cookie the verify endpoint sets.
type CookieSettings struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	cookies CookieSettings
	logger  *zap.Logger
}

// RegisterRoutes registers the sign-in endpoints on the given chi router:
// GET /nonce issues a challenge, POST /nonce verifies a signed challenge and
// sets the session cookie, GET|POST /logout clears it.
func RegisterRoutes(r chi.Router, service Service, cookies CookieSettings, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		cookies: cookies,
		logger:  logger,
	}

	r.Get("/nonce", apphttp.HandleError(h.challenge))
	r.Post("/nonce", apphttp.HandleError(h.verify))
	r.Get("/logout", apphttp.HandleError(h.logout))
	r.Post("/logout", apphttp.HandleError(h.logout))
}

// challenge handles GET /nonce
func (h *HTTP) challenge(w http.ResponseWriter, r *http.Request) error {
	address := r.URL.Query().Get("address")
	if address == "" {
		return apperrors.BadRequestError(nil, "address query parameter required")
	}

	resp, err := h.service.Challenge(r.Context(), address)
	if err != nil {
		return err
	}

	// The challenge is returned as a bare string; clients embed it in the
	// message they present to the wallet.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(resp.Nonce))
	return nil
}

// verify handles POST /nonce
func (h *HTTP) verify(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req login.VerifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}

	resp, err := h.service.Verify(r.Context(), &req)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookies.Name,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   int(h.cookies.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

// logout handles GET|POST /logout. Sessions are stateless, so logging out is
// nothing more than expiring the cookie client-side.
func (h *HTTP) logout(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookies.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	return nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
