// Package server exposes a projection calibration over HTTP and
// WebSocket: read and replace the correspondence set, fetch the solved
// matrices, map points, and drag individual corners live from a browser
// calibration UI.
package server

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osresearch/p5.projection/internal/calibration"
	"github.com/osresearch/p5.projection/internal/projection"
)

// Server holds the calibration state and its solved mapper. All mutation
// goes through the mutex; a Mapper itself is not safe for concurrent
// mutation.
type Server struct {
	mu     sync.RWMutex
	cal    calibration.Calibration
	mapper *projection.Mapper

	corsOrigin string
	timeoutSec int
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	TimeoutSec  int
	Calibration calibration.Calibration
}

// Response types for API endpoints.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// CalibrationResponse carries the calibration plus its solved matrices.
type CalibrationResponse struct {
	Calibration calibration.Calibration `json:"calibration"`
	Forward     [9]float64              `json:"forward"`
	Inverse     [9]float64              `json:"inverse"`
	Render      [16]float64             `json:"render"`
}

// MapRequest asks for a point to be mapped through the calibration.
type MapRequest struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Inverse bool    `json:"inverse,omitempty"`
}

// MapResponse returns the mapped point.
type MapResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewServer solves the initial calibration and returns a ready server.
func NewServer(config Config) (*Server, error) {
	mapper, err := solveObserved(config.Calibration)
	if err != nil {
		return nil, err
	}

	corsOrigin := config.CORSOrigin
	if corsOrigin == "" {
		corsOrigin = "*"
	}

	return &Server{
		cal:        config.Calibration,
		mapper:     mapper,
		corsOrigin: corsOrigin,
		timeoutSec: config.TimeoutSec,
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/calibration", s.corsMiddleware(s.calibrationHandler))
	mux.HandleFunc("/matrix", s.corsMiddleware(s.matrixHandler))
	mux.HandleFunc("/map", s.corsMiddleware(s.mapHandler))
	mux.HandleFunc("/ws", s.calibrationWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

// snapshot returns the current calibration and mapper under the read lock.
func (s *Server) snapshot() (calibration.Calibration, *projection.Mapper) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cal, s.mapper
}

// replaceCalibration solves the new calibration and swaps it in; the old
// state survives any failure.
func (s *Server) replaceCalibration(cal calibration.Calibration) error {
	mapper, err := solveObserved(cal)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cal = cal
	s.mapper = mapper
	s.mu.Unlock()
	return nil
}

// moveCorner updates one screen corner and re-solves.
func (s *Server) moveCorner(index int, x, y float64) (calibration.Calibration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal := s.cal
	if index < 0 || index > 3 {
		return cal, errOutOfRange(index)
	}
	cal.Screen[index].X = x
	cal.Screen[index].Y = y

	mapper, err := solveObserved(cal)
	if err != nil {
		return s.cal, err
	}
	s.cal = cal
	s.mapper = mapper
	return cal, nil
}
