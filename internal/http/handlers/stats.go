package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/league-stats-service/internal/app/h2h"
	"github.com/preston-bernstein/league-stats-service/internal/app/teamstats"
	"github.com/preston-bernstein/league-stats-service/internal/domain"
	"github.com/preston-bernstein/league-stats-service/internal/logging"
	"github.com/preston-bernstein/league-stats-service/internal/synthetic"
)

type headToHeadResponse struct {
	h2h.Stats
	ScoringTimes synthetic.ScoringTimes `json:"scoring_times"`
}

type teamStatsResponse struct {
	teamstats.Stats
	Characteristics synthetic.Characteristics `json:"characteristics"`
}

type predictionsRequest struct {
	Matches []synthetic.Fixture `json:"matches"`
}

// HeadToHead aggregates every stored fixture between team1 and team2.
func (h *Handler) HeadToHead(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	q := r.URL.Query()
	team1, team2 := strings.TrimSpace(q.Get("team1")), strings.TrimSpace(q.Get("team2"))
	if team1 == "" || team2 == "" {
		writeServiceError(w, r, fmt.Errorf("%w: team1 and team2 are required", domain.ErrMissingParameter), logger)
		return
	}

	ds, err := h.svc.Dataset(r.Context())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	stats, err := h2h.Compute(ds.Matches, team1, team2)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "served head to head",
		logging.FieldTeam, team1+" v "+team2,
		logging.FieldCount, stats.Overall.TotalMatches,
	)
	writeJSON(w, nethttp.StatusOK, headToHeadResponse{
		Stats:        stats,
		ScoringTimes: h.synth.ScoringTimes(stats.Overall.TotalMatches),
	}, logger)
}

// TeamStats reports one team's record across every stored league.
func (h *Handler) TeamStats(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	team := strings.TrimSpace(r.URL.Query().Get("team"))
	if team == "" {
		writeServiceError(w, r, fmt.Errorf("%w: team is required", domain.ErrMissingParameter), logger)
		return
	}

	ds, err := h.svc.Dataset(r.Context())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	stats, err := teamstats.Compute(team, ds.Matches, ds.Tables)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, teamStatsResponse{
		Stats:           stats,
		Characteristics: h.synth.Characteristics(team, ds.Matches),
	}, logger)
}

// Teams lists every team seen in the stored leagues; empty when nothing is stored.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	teams, err := h.svc.Teams(r.Context())
	if errors.Is(err, domain.ErrNoData) {
		teams, err = []string{}, nil
	}
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"teams": teams}, logger)
}

// Predictions returns labeled synthetic outcomes for the posted fixtures.
func (h *Handler) Predictions(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	var req predictionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid JSON body", logger)
		return
	}
	predictions, err := h.synth.Predict(req.Matches)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"predictions": predictions}, logger)
}
