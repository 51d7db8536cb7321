package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/foresightlabs/market-api/pkg/app/errors"
	apphttp "github.com/foresightlabs/market-api/pkg/app/http"
	"github.com/foresightlabs/market-api/pkg/event"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterPublicRoutes registers the read-only event endpoints.
func RegisterPublicRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{service: service, logger: logger}

	r.Get("/events", apphttp.HandleError(h.listEvents))
	r.Get("/events/{id}", apphttp.HandleError(h.getEvent))
}

// RegisterProtectedRoutes registers the mutating event endpoints. The caller
// mounts these behind the session gate.
func RegisterProtectedRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{service: service, logger: logger}

	r.Post("/events", apphttp.HandleError(h.createEvent))
	r.Patch("/markets/{id}", apphttp.HandleError(h.updateMarketStats))
}

// listEvents handles GET /events
func (h *HTTP) listEvents(w http.ResponseWriter, r *http.Request) error {
	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusOK, events)
	return nil
}

// getEvent handles GET /events/{id}
func (h *HTTP) getEvent(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	evt, err := h.service.GetEvent(r.Context(), id)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusOK, evt)
	return nil
}

// createEvent handles POST /events
func (h *HTTP) createEvent(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req event.CreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}

	created, err := h.service.CreateEvent(r.Context(), &req)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusCreated, created)
	return nil
}

// statsUpdateRequest is the PATCH /markets/{id} payload. traded_volume is a
// legacy alias for traded_delta; both carry a delta, not an absolute value.
type statsUpdateRequest struct {
	LastPrice    *decimal.Decimal `json:"last_price"`
	TradedDelta  *decimal.Decimal `json:"traded_delta"`
	TradedVolume *decimal.Decimal `json:"traded_volume"`
	HexAddress   *string          `json:"hex_address"`
}

// updateMarketStats handles PATCH /markets/{id}
func (h *HTTP) updateMarketStats(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req statsUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}

	update := event.StatsUpdate{
		LastPrice:   req.LastPrice,
		TradedDelta: req.TradedDelta,
		HexAddress:  req.HexAddress,
	}
	if update.TradedDelta == nil {
		update.TradedDelta = req.TradedVolume
	}

	if err := h.service.UpdateMarketStats(r.Context(), id, update); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperrors.BadRequestError(err, "invalid id")
	}
	return id, nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
