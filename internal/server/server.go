// Package server exposes trained absenteeism models over HTTP. The service
// validates every incoming record against the schema, serves predictions
// from an atomically swappable model and never crashes on bad input: the
// caller always gets a structured error body.
package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/workline/absenteeism/internal/metrics"
	"github.com/workline/absenteeism/internal/regress"
)

// Server is the prediction service.
type Server struct {
	name      string
	port      int
	modelPath string
	staticDir string
	holder    *Holder
	registry  *regress.Registry
}

// NewServer creates a service over the given artifact path. The model is
// not loaded yet; Start performs the best-effort initial load.
func NewServer(port int, modelPath, staticDir string, registry *regress.Registry) *Server {
	return &Server{
		name:      "absenteeism-api",
		port:      port,
		modelPath: modelPath,
		staticDir: staticDir,
		holder:    NewHolder(),
		registry:  registry,
	}
}

// Holder exposes the model holder, mostly for tests and warm starts.
func (s *Server) Holder() *Holder {
	return s.holder
}

// Start loads the model best-effort and serves until the listener fails.
// A missing model leaves the service up and answering 503 on predict routes.
func (s *Server) Start() error {
	if err := s.holder.Load(s.modelPath, s.registry); err != nil {
		log.Warn().Err(err).Str("path", s.modelPath).
			Msg("could not load model, serving without one")
	}
	log.Info().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Router()); err != nil {
		return fmt.Errorf("could not start prediction server: %w", err)
	}
	return nil
}

// Router assembles the route table and middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.URLHandler("url"))
	r.Use(hlog.MethodHandler("method"))
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/info", s.info)
	r.Post("/predict", s.predict)
	r.Post("/predict/batch", s.predictBatch)
	r.Post("/reload", s.reload)
	r.Handle("/metrics", promhttp.Handler())

	if s.staticDir != "" {
		if _, err := os.Stat(s.staticDir); err == nil {
			fs := http.FileServer(http.Dir(s.staticDir))
			r.Handle("/*", fs)
		} else {
			r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte("<html><body><h1>Absenteeism Prediction API</h1>" +
					"<p><a href=\"/health\">Health Check</a></p></body></html>"))
			})
		}
	}
	return r
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

type infoResponse struct {
	ModelPath string   `json:"model_path"`
	ModelType string   `json:"model_type"`
	Features  []string `json:"features"`
}

type predictionResponse struct {
	PredictedAbsenteeismHours float64 `json:"predicted_absenteeism_hours"`
	ModelVersion              string  `json:"model_version"`
}

type batchRequest struct {
	Inputs []Record `json:"inputs"`
}

type batchResponse struct {
	Predictions []predictionResponse `json:"predictions"`
	Total       int                  `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	_, loaded := s.holder.Get()
	status := "healthy"
	if !loaded {
		status = "model_not_loaded"
	}
	s.respond(w, "/health", http.StatusOK, healthResponse{Status: status, ModelLoaded: loaded})
}

// info is best-effort introspection: a model whose feature names cannot be
// derived still answers, with a placeholder.
func (s *Server) info(w http.ResponseWriter, _ *http.Request) {
	model, loaded := s.holder.Get()
	if !loaded {
		s.unavailable(w, "/info")
		return
	}
	features := model.Preprocess.FeatureNames()
	if len(features) == 0 {
		features = []string{"unable to extract feature names"}
	}
	s.respond(w, "/info", http.StatusOK, infoResponse{
		ModelPath: model.Path,
		ModelType: model.Family,
		Features:  features,
	})
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	model, loaded := s.holder.Get()
	if !loaded {
		s.unavailable(w, "/predict")
		return
	}
	var record Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		s.clientError(w, "/predict", fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := record.Validate(); err != nil {
		s.clientError(w, "/predict", err)
		return
	}
	row, err := record.Row(model.Preprocess.Columns)
	if err != nil {
		s.clientError(w, "/predict", err)
		return
	}
	pred, err := model.Predict([][]float64{row})
	if err != nil {
		s.clientError(w, "/predict", fmt.Errorf("prediction error: %w", err))
		return
	}
	hours := clampHours(pred[0])
	metrics.Observer.Prediction(hours)
	s.respond(w, "/predict", http.StatusOK, predictionResponse{
		PredictedAbsenteeismHours: hours,
		ModelVersion:              version(model.Path),
	})
}

func (s *Server) predictBatch(w http.ResponseWriter, r *http.Request) {
	model, loaded := s.holder.Get()
	if !loaded {
		s.unavailable(w, "/predict/batch")
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.clientError(w, "/predict/batch", fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(req.Inputs) == 0 {
		s.clientError(w, "/predict/batch", fmt.Errorf("inputs must not be empty"))
		return
	}
	rows := make([][]float64, len(req.Inputs))
	for i := range req.Inputs {
		if err := req.Inputs[i].Validate(); err != nil {
			s.clientError(w, "/predict/batch", fmt.Errorf("record %d: %w", i, err))
			return
		}
		row, err := req.Inputs[i].Row(model.Preprocess.Columns)
		if err != nil {
			s.clientError(w, "/predict/batch", fmt.Errorf("record %d: %w", i, err))
			return
		}
		rows[i] = row
	}
	preds, err := model.Predict(rows)
	if err != nil {
		s.clientError(w, "/predict/batch", fmt.Errorf("batch prediction error: %w", err))
		return
	}
	out := batchResponse{Predictions: make([]predictionResponse, len(preds)), Total: len(preds)}
	for i, p := range preds {
		hours := clampHours(p)
		metrics.Observer.Prediction(hours)
		out.Predictions[i] = predictionResponse{
			PredictedAbsenteeismHours: hours,
			ModelVersion:              version(model.Path),
		}
	}
	s.respond(w, "/predict/batch", http.StatusOK, out)
}

// reload re-reads the artifact and swaps it in atomically. In-flight
// predictions keep the model they started with.
func (s *Server) reload(w http.ResponseWriter, _ *http.Request) {
	if err := s.holder.Load(s.modelPath, s.registry); err != nil {
		log.Error().Err(err).Str("path", s.modelPath).Msg("reload failed")
		s.respond(w, "/reload", http.StatusServiceUnavailable,
			errorResponse{Error: fmt.Sprintf("could not reload model: %s", err.Error())})
		return
	}
	model, _ := s.holder.Get()
	s.respond(w, "/reload", http.StatusOK, healthResponse{Status: "reloaded", ModelLoaded: model != nil})
}

func (s *Server) respond(w http.ResponseWriter, route string, code int, payload interface{}) {
	metrics.Observer.Request(route, strconv.Itoa(code))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) clientError(w http.ResponseWriter, route string, err error) {
	log.Warn().Err(err).Str("route", route).Msg("rejected request")
	s.respond(w, route, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (s *Server) unavailable(w http.ResponseWriter, route string) {
	s.respond(w, route, http.StatusServiceUnavailable,
		errorResponse{Error: "model not loaded, train a model first"})
}

// clampHours applies the service contract: absenteeism cannot be negative,
// and responses round to 2 decimal places.
func clampHours(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return math.Round(v*100) / 100
}

func version(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
