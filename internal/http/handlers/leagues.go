package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/league-stats-service/internal/domain"
	domainleagues "github.com/preston-bernstein/league-stats-service/internal/domain/leagues"
	"github.com/preston-bernstein/league-stats-service/internal/logging"
)

// uploadField is the multipart form field carrying the CSV file.
const uploadField = "file"

type createLeagueRequest struct {
	ID string `json:"id"`
}

type leagueResponse struct {
	League domainleagues.League `json:"league"`
	domainleagues.LeagueData
}

// ListLeagues returns the league registry.
func (h *Handler) ListLeagues(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	registry, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"leagues": registry}, logger)
}

// CreateLeague registers an empty league. The body is optional; without an id one is generated.
func (h *Handler) CreateLeague(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	var req createLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, nethttp.StatusBadRequest, "invalid JSON body", logger)
		return
	}
	league, err := h.svc.Create(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, league, logger)
}

// GetLeague returns a registry entry with its matches and tables.
func (h *Handler) GetLeague(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	league, data, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, leagueResponse{League: league, LeagueData: data}, logger)
}

// DeleteLeague removes a league and its data.
func (h *Handler) DeleteLeague(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

// CompleteLeague marks the season finished.
func (h *Handler) CompleteLeague(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	league, err := h.svc.Complete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, league, logger)
}

// UploadMatches imports a CSV sent either as the raw body or as the "file" field of a
// multipart form. The league's previous matches are replaced.
func (h *Handler) UploadMatches(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id := mux.Vars(r)["id"]
	r.Body = nethttp.MaxBytesReader(w, r.Body, h.maxUpload)

	body, closeBody, err := uploadBody(r, h.maxUpload)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	defer closeBody()

	report, err := h.svc.ImportCSV(r.Context(), id, body)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "matches uploaded",
		logging.FieldLeague, id,
		logging.FieldCount, report.Accepted,
		logging.FieldRejected, len(report.Rejected),
	)
	writeJSON(w, nethttp.StatusOK, report, logger)
}

func uploadBody(r *nethttp.Request, maxBytes int64) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *nethttp.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	file, _, err := r.FormFile(uploadField)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: form field %q", domain.ErrMissingParameter, uploadField)
	}
	return file, func() { _ = file.Close() }, nil
}

// LeagueStandings returns one league's table.
func (h *Handler) LeagueStandings(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	_, data, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"standings": data.Standings}, logger)
}

// LeagueForm returns one league's form table.
func (h *Handler) LeagueForm(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	_, data, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"teamForms": data.TeamForms}, logger)
}
