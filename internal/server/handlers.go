package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gex-condor/internal/analysis"
	"github.com/dgnsrekt/gex-condor/internal/gex"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"symbols": s.store.Symbols()})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	rec, status, err := s.recommend(r)
	if err != nil {
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// recommend resolves the ticker and per-request config overrides, then runs
// the selector. The returned status maps the core error taxonomy: missing
// data 404, bad request parameters 400, untradable result 422.
func (s *Server) recommend(r *http.Request) (*analysis.Recommendation, int, error) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	cfg, err := s.requestConfig(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	snap, err := s.store.Get(ticker)
	if err != nil {
		return nil, http.StatusNotFound, err
	}

	rec, err := s.selector.Select(snap, cfg, s.now())
	switch {
	case err == nil:
		return rec, http.StatusOK, nil
	case errors.Is(err, gex.ErrMissingData):
		return nil, http.StatusNotFound, err
	case errors.Is(err, analysis.ErrInsufficientData), errors.Is(err, analysis.ErrInvalidConfig):
		return nil, http.StatusUnprocessableEntity, err
	default:
		s.logger.Error("recommend failed", zap.String("ticker", ticker), zap.Error(err))
		return nil, http.StatusInternalServerError, err
	}
}

// requestConfig starts from the server defaults and applies query overrides.
func (s *Server) requestConfig(r *http.Request) (analysis.Config, error) {
	cfg := s.defaults

	if risk := r.URL.Query().Get("risk"); risk != "" {
		profile, err := analysis.ParseRiskProfile(risk)
		if err != nil {
			return cfg, err
		}
		cfg.RiskProfile = profile
	}
	if wing := r.URL.Query().Get("wing"); wing != "" {
		width, err := strconv.Atoi(wing)
		if err != nil || width <= 0 {
			return cfg, errors.New("wing must be a positive integer")
		}
		cfg.WingWidth = width
	}
	if sign := r.URL.Query().Get("sign"); sign != "" {
		mode, err := analysis.ParseSignMode(sign)
		if err != nil {
			return cfg, err
		}
		cfg.SignMode = mode
	}

	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
