package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/engine"
	"github.com/poppimarsantii12/model-matematika-dalam-industri/internal/model"
)

// Samples returned with an inventory plan.
const (
	costCurveSamples = 20
	cycleSamples     = 41
)

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// ProductionResponse is the production solve with its feasible polygon.
type ProductionResponse struct {
	Solution model.Solution `json:"solution"`
	Region   []model.Point  `json:"region"`
}

// InventoryResponse is the EOQ plan with chart samples.
type InventoryResponse struct {
	Plan      model.InventoryPlan `json:"plan"`
	CostCurve []model.CostPoint   `json:"cost_curve"`
	Cycle     []model.StockLevel  `json:"cycle,omitempty"`
}

// CompareRequest names a base input and optional alternatives. Without
// alternatives the default what-if scenarios are generated from the base.
type CompareRequest struct {
	Base      model.ProductionInput       `json:"base"`
	Scenarios []engine.ComparisonScenario `json:"scenarios,omitempty"`
}

// CompareResponse holds every scenario in request order and the
// alternatives' names ranked by objective gain.
type CompareResponse struct {
	Results []engine.ComparisonResult `json:"results"`
	Ranking []string                  `json:"ranking"`
}

var errInvalidInput = errors.New("invalid input")

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProduction(w http.ResponseWriter, r *http.Request) {
	var in model.ProductionInput
	if !s.decodeValid(w, r, ModelProduction, &in) {
		return
	}

	start := time.Now()
	p, err := engine.BuildProblem(in)
	if err != nil {
		s.reject(w, ModelProduction, http.StatusBadRequest, err, nil)
		return
	}
	sol := s.opt.OptimizeProblem(p)
	region := s.opt.FeasibleRegion(p)
	s.metrics.SolveDuration.WithLabelValues(ModelProduction).Observe(time.Since(start).Seconds())
	s.metrics.Corners.Observe(float64(len(sol.Corners)))

	s.respond(w, ModelProduction, ProductionResponse{Solution: sol, Region: region})
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	var in model.InventoryInput
	if !s.decodeValid(w, r, ModelInventory, &in) {
		return
	}

	start := time.Now()
	plan := model.CalculateInventoryPlan(in)
	resp := InventoryResponse{
		Plan:      plan,
		CostCurve: model.CostCurve(in, plan, costCurveSamples),
		Cycle:     model.SimulateCycle(in, plan, cycleSamples),
	}
	s.metrics.SolveDuration.WithLabelValues(ModelInventory).Observe(time.Since(start).Seconds())

	s.respond(w, ModelInventory, resp)
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	var in model.QueueInput
	if !s.decodeValid(w, r, ModelQueue, &in) {
		return
	}

	start := time.Now()
	m := model.CalculateQueue(in)
	s.metrics.SolveDuration.WithLabelValues(ModelQueue).Observe(time.Since(start).Seconds())

	s.respond(w, ModelQueue, m)
}

func (s *Server) handleReliability(w http.ResponseWriter, r *http.Request) {
	var in model.ReliabilityInput
	if !s.decodeValid(w, r, ModelReliability, &in) {
		return
	}

	start := time.Now()
	rep := model.CalculateReliability(in)
	s.metrics.SolveDuration.WithLabelValues(ModelReliability).Observe(time.Since(start).Seconds())

	s.respond(w, ModelReliability, rep)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !s.decodeValid(w, r, ModelCompare, &req) {
		return
	}

	scenarios := req.Scenarios
	if len(scenarios) == 0 {
		scenarios = engine.BuildDefaultScenarios(req.Base)
	} else {
		scenarios = append([]engine.ComparisonScenario{{Name: "Current Plan", Input: req.Base}}, scenarios...)
	}

	start := time.Now()
	results, err := s.opt.CompareScenarios(r.Context(), scenarios)
	if err != nil {
		details := model.ValidationErrors(err)
		if errors.Is(err, model.ErrInvalidInput) || errors.Is(err, model.ErrNoResources) || errors.Is(err, model.ErrTooManyResources) {
			s.reject(w, ModelCompare, http.StatusBadRequest, errInvalidInput, details)
			return
		}
		s.reject(w, ModelCompare, http.StatusInternalServerError, err, nil)
		return
	}
	s.metrics.SolveDuration.WithLabelValues(ModelCompare).Observe(time.Since(start).Seconds())

	ranked := engine.RankByGain(results)
	resp := CompareResponse{Results: results, Ranking: make([]string, len(ranked))}
	for i, res := range ranked {
		resp.Ranking[i] = res.Scenario.Name
	}
	s.respond(w, ModelCompare, resp)
}

type validator interface {
	Validate() error
}

// Validate checks the base input. Alternatives are checked while solving.
func (r CompareRequest) Validate() error {
	return r.Base.Validate()
}

// decodeValid reads a JSON body into v and validates it. It writes the 400
// reply itself and reports false when the request cannot be served.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, modelName string, v validator) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.reject(w, modelName, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err), nil)
		return false
	}
	if dec.More() {
		s.reject(w, modelName, http.StatusBadRequest, errors.New("invalid JSON body: unexpected data after the object"), nil)
		return false
	}
	if err := v.Validate(); err != nil {
		s.reject(w, modelName, http.StatusBadRequest, errInvalidInput, model.ValidationErrors(err))
		return false
	}
	return true
}

// reject counts and writes an error reply.
func (s *Server) reject(w http.ResponseWriter, modelName string, status int, err error, details []error) {
	outcome := "invalid"
	if status >= http.StatusInternalServerError {
		outcome = "error"
	}
	s.metrics.Requests.WithLabelValues(modelName, outcome).Inc()
	s.log.V(1).Info("Rejected request", "model", modelName, "status", status, "error", err.Error())

	resp := ErrorResponse{Error: err.Error()}
	for _, d := range details {
		resp.Details = append(resp.Details, d.Error())
	}
	writeJSON(w, status, resp)
}

// respond counts and writes a successful reply.
func (s *Server) respond(w http.ResponseWriter, modelName string, body any) {
	s.metrics.Requests.WithLabelValues(modelName, "ok").Inc()
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
