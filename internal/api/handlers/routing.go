package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/im-vetri/Useful-APIs/internal/api/dto"
	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/services"
)

// RoutingHandler exposes the engine operations over HTTP. Base carries the
// server-level provider credentials merged into every call.
type RoutingHandler struct {
	Engine *services.Engine
	Log    *zap.Logger
	Base   domain.Options
}

// options merges request-level knobs over the server-level base options.
func (h *RoutingHandler) options(opts dto.RoutingOptions) domain.Options {
	merged := h.Base
	merged.Provider = opts.Provider
	merged.Profile = opts.Profile
	merged.Roundtrip = opts.Roundtrip
	return merged
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after json body")
	}
	return nil
}

func (h *RoutingHandler) writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var ipe *domain.InvalidPointError
	if errors.As(err, &ipe) {
		writeError(w, r, http.StatusBadRequest, ipe.Error())
		return
	}
	writeError(w, r, http.StatusBadRequest, "invalid json body")
}

func (h *RoutingHandler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var ipe *domain.InvalidPointError
	var iie *domain.InvalidInputError
	switch {
	case errors.As(err, &ipe):
		writeError(w, r, http.StatusBadRequest, ipe.Error())
	case errors.As(err, &iie):
		writeError(w, r, http.StatusBadRequest, iie.Error())
	default:
		h.Log.Error("engine call failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func (h *RoutingHandler) Distance(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.DistanceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDecodeError(w, r, err)
		return
	}
	if req.Origin == nil || req.Destination == nil {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}

	res, err := h.Engine.CalculateDistance(r.Context(), *req.Origin, *req.Destination, h.options(req.Options))
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewDistanceResponse(res))
}

func (h *RoutingHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.PointsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDecodeError(w, r, err)
		return
	}

	mx, err := h.Engine.GetDistanceMatrix(r.Context(), req.Points, h.options(req.Options))
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewMatrixResponse(mx))
}

func (h *RoutingHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.PointsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDecodeError(w, r, err)
		return
	}

	route, err := h.Engine.OptimizeRoute(r.Context(), req.Points, h.options(req.Options))
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(route))
}

func (h *RoutingHandler) ETA(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.DistanceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDecodeError(w, r, err)
		return
	}
	if req.Origin == nil || req.Destination == nil {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}

	dur, err := h.Engine.GetEstimatedTime(r.Context(), *req.Origin, *req.Destination, h.options(req.Options))
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ETAResponse{DurationSeconds: dur})
}
