package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mineralytics/acidcase/internal/config"
	"github.com/mineralytics/acidcase/internal/db"
	"github.com/mineralytics/acidcase/internal/engine"
	"github.com/mineralytics/acidcase/internal/report"
)

const maxBodyBytes = 1 << 20

// handleEvaluate evaluates a scenario document supplied in the request body.
// Fields omitted from the document keep their benchmark defaults.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	scenario, err := config.Parse(body)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, engine.Evaluate(scenario.Params()))
}

// handleDefaults returns the benchmark parameter set.
func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, engine.DefaultParameters())
}

type createScenarioRequest struct {
	Name     string          `json:"name"`
	Scenario json.RawMessage `json:"scenario"`
}

// handleScenarios lists saved scenarios (GET) or saves a new one (POST).
func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "scenario store not configured")
		return
	}
	switch r.Method {
	case http.MethodGet:
		scenarios, err := s.store.ListScenarios()
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if scenarios == nil {
			scenarios = []db.Scenario{}
		}
		s.writeJSON(w, http.StatusOK, scenarios)
	case http.MethodPost:
		var req createScenarioRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Name == "" {
			s.writeJSONError(w, http.StatusBadRequest, "name is required")
			return
		}
		if len(req.Scenario) == 0 {
			req.Scenario = json.RawMessage(`{}`)
		}
		if _, err := config.Parse(req.Scenario); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		saved, err := s.store.SaveScenario(req.Name, req.Scenario)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, saved)
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleScenarioByID serves /api/scenarios/{id} (GET, DELETE) and
// /api/scenarios/{id}/run (POST).
func (s *Server) handleScenarioByID(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "scenario store not configured")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/scenarios/")
	if id, ok := strings.CutSuffix(rest, "/run"); ok {
		s.runScenario(w, r, id)
		return
	}
	id := rest
	if id == "" || strings.Contains(id, "/") {
		s.writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		scenario, err := s.store.GetScenario(id)
		if errors.Is(err, db.ErrNotFound) {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, scenario)
	case http.MethodDelete:
		err := s.store.DeleteScenario(id)
		if errors.Is(err, db.ErrNotFound) {
			s.writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// runScenario evaluates a stored scenario and records the result.
func (s *Server) runScenario(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	scenario, err := s.store.GetScenario(id)
	if errors.Is(err, db.ErrNotFound) {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	parsed, err := config.Parse(scenario.Config)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("stored scenario is invalid: %v", err))
		return
	}
	res := engine.Evaluate(parsed.Params())
	resJSON, err := json.Marshal(res)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	run, err := s.store.RecordRun(id, resJSON, res.TotalBenefit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

// handleRuns lists recorded runs for a scenario.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "scenario store not configured")
		return
	}
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	scenarioID := r.URL.Query().Get("scenario_id")
	if scenarioID == "" {
		s.writeJSONError(w, http.StatusBadRequest, "scenario_id is required")
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 0 {
			s.writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	runs, err := s.store.ListRuns(scenarioID, limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// resultForRequest evaluates either the stored scenario named by scenario_id
// or the benchmark defaults.
func (s *Server) resultForRequest(r *http.Request) (engine.Result, error) {
	id := r.URL.Query().Get("scenario_id")
	if id == "" {
		return engine.Evaluate(engine.DefaultParameters()), nil
	}
	if s.store == nil {
		return engine.Result{}, errors.New("scenario store not configured")
	}
	scenario, err := s.store.GetScenario(id)
	if err != nil {
		return engine.Result{}, err
	}
	parsed, err := config.Parse(scenario.Config)
	if err != nil {
		return engine.Result{}, fmt.Errorf("stored scenario is invalid: %w", err)
	}
	return engine.Evaluate(parsed.Params()), nil
}

func (s *Server) handleWaterfall(w http.ResponseWriter, r *http.Request) {
	res, err := s.resultForRequest(r)
	if err != nil {
		s.chartError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.RenderWaterfall(w, res); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	res, err := s.resultForRequest(r)
	if err != nil {
		s.chartError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.RenderBreakdown(w, res); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) chartError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		s.writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSONError(w, http.StatusInternalServerError, err.Error())
}
