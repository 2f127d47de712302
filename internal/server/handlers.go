package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph/centrality"
	"github.com/matzehuels/citygraph/pkg/graph/path"
	"github.com/matzehuels/citygraph/pkg/graph/tour"
	"github.com/matzehuels/citygraph/pkg/pipeline"
	"github.com/matzehuels/citygraph/pkg/render/nodelink"
)

// =============================================================================
// Responses
// =============================================================================

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	respondJSON(w, statusFor(err), errorBody{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error to an HTTP status by its code.
func statusFor(err error) int {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidEdge:
		return http.StatusBadRequest
	case errors.ErrCodeNoPath, errors.ErrCodeEmptyGraph, errors.ErrCodeDisconnected:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// =============================================================================
// Parameters
// =============================================================================

func required(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "missing query parameter %q", name)
	}
	return v, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "parameter %q: %q is not a boolean", name, v)
	}
	return b, nil
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %q: %q is not an integer", name, v)
	}
	return n, nil
}

func uintParam(r *http.Request, name string, def uint64) (uint64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %q: %q is not a non-negative integer", name, v)
	}
	return n, nil
}

func floatParam(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %q: %q is not a number", name, v)
	}
	return f, nil
}

// centralityOpts reads the optional hops flag.
func centralityOpts(r *http.Request) ([]centrality.Option, error) {
	hops, err := boolParam(r, "hops")
	if err != nil || !hops {
		return nil, err
	}
	return []centrality.Option{centrality.WithHops()}, nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"nodes":  s.cfg.Graph.NodeCount(),
		"edges":  s.cfg.Graph.EdgeCount(),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.cfg.Graph.ToSpec())
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	from, err := required(r, "from")
	if err != nil {
		respondError(w, err)
		return
	}
	to, err := required(r, "to")
	if err != nil {
		respondError(w, err)
		return
	}
	hops, err := boolParam(r, "hops")
	if err != nil {
		respondError(w, err)
		return
	}
	var opts []path.Option
	if hops {
		opts = append(opts, path.WithHops())
	}

	res, err := s.engine.ShortestPath(r.Context(), from, to, opts...)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	from, err := required(r, "from")
	if err != nil {
		respondError(w, err)
		return
	}
	to, err := required(r, "to")
	if err != nil {
		respondError(w, err)
		return
	}
	cutoff, err := intParam(r, "cutoff")
	if err != nil {
		respondError(w, err)
		return
	}

	paths, err := s.engine.SimplePaths(r.Context(), from, to, path.WithCutoff(cutoff))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count": len(paths),
		"paths": paths,
	})
}

func (s *Server) handleConnected(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ok, err := s.engine.IsConnected(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"connected":  ok,
		"components": s.engine.Components(ctx),
	})
}

func (s *Server) handleDistances(w http.ResponseWriter, r *http.Request) {
	from, err := required(r, "from")
	if err != nil {
		respondError(w, err)
		return
	}
	opts, err := centralityOpts(r)
	if err != nil {
		respondError(w, err)
		return
	}

	dist, err := s.engine.Distances(r.Context(), from, opts...)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"source":    from,
		"distances": dist,
	})
}

func (s *Server) handleFarthest(w http.ResponseWriter, r *http.Request) {
	from, err := required(r, "from")
	if err != nil {
		respondError(w, err)
		return
	}
	opts, err := centralityOpts(r)
	if err != nil {
		respondError(w, err)
		return
	}

	f, err := s.engine.FarthestNode(r.Context(), from, opts...)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, f)
}

func (s *Server) handleEccentricity(w http.ResponseWriter, r *http.Request) {
	node, err := required(r, "node")
	if err != nil {
		respondError(w, err)
		return
	}
	opts, err := centralityOpts(r)
	if err != nil {
		respondError(w, err)
		return
	}

	ecc, err := s.engine.Eccentricity(r.Context(), node, opts...)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"node":         node,
		"eccentricity": ecc,
	})
}

func (s *Server) handleCenter(w http.ResponseWriter, r *http.Request) {
	opts, err := centralityOpts(r)
	if err != nil {
		respondError(w, err)
		return
	}
	center, err := s.engine.Center(r.Context(), opts...)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"center": center})
}

func (s *Server) handlePeriphery(w http.ResponseWriter, r *http.Request) {
	opts, err := centralityOpts(r)
	if err != nil {
		respondError(w, err)
		return
	}
	periphery, err := s.engine.Periphery(r.Context(), opts...)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"periphery": periphery})
}

func (s *Server) handleTour(w http.ResponseWriter, r *http.Request) {
	var opts []tour.Option
	if start := r.URL.Query().Get("start"); start != "" {
		opts = append(opts, tour.WithStart(start))
	}
	t, err := s.engine.Tour(r.Context(), opts...)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleMST(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.MinimumSpanningTree(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, hit, err := s.cfg.Runner.ReportWithCacheInfo(r.Context(), s.engine, s.cfg.Questions)
	if err != nil {
		respondError(w, err)
		return
	}
	setCacheHeader(w, hit)
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format == "" {
		format = r.URL.Query().Get("format")
	}
	seed, err := uintParam(r, "seed", pipeline.DefaultSeed)
	if err != nil {
		respondError(w, err)
		return
	}
	scale, err := floatParam(r, "scale")
	if err != nil {
		respondError(w, err)
		return
	}

	opts := pipeline.RenderOptions{
		Format: format,
		Layout: r.URL.Query().Get("layout"),
		Seed:   seed,
		Title:  r.URL.Query().Get("title"),
		Scale:  scale,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		respondError(w, err)
		return
	}
	data, hit, err := s.cfg.Runner.RenderWithCacheInfo(r.Context(), s.cfg.Graph, opts)
	if err != nil {
		respondError(w, err)
		return
	}

	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", nodelink.Format(opts.Format).ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}
