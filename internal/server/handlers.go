package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/osresearch/p5.projection/internal/calibration"
	"github.com/osresearch/p5.projection/internal/common"
	"github.com/osresearch/p5.projection/internal/projection"
)

func errOutOfRange(index int) error {
	return fmt.Errorf("corner index %d out of range", index)
}

// solveObserved builds a mapper for the calibration while recording solve
// metrics, the one funnel every server-triggered solve goes through.
func solveObserved(cal calibration.Calibration) (*projection.Mapper, error) {
	timer := common.NewNamedTimer("solve")
	mapper, err := cal.Mapper()
	solveDuration.Observe(timer.Stop().Seconds())
	if err != nil {
		solvesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	solvesTotal.WithLabelValues("ok").Inc()
	return mapper, nil
}

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
	s.writeJSON(w, response)
}

// calibrationHandler reads or replaces the active calibration.
func (s *Server) calibrationHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cal, mapper := s.snapshot()
		s.writeJSON(w, CalibrationResponse{
			Calibration: cal,
			Forward:     mapper.Forward(),
			Inverse:     mapper.Inverse(),
			Render:      mapper.RenderMatrix(),
		})
	case http.MethodPut:
		var cal calibration.Calibration
		if err := json.NewDecoder(r.Body).Decode(&cal); err != nil {
			s.writeErrorResponse(w, "Invalid calibration JSON", http.StatusBadRequest)
			return
		}
		if err := s.replaceCalibration(cal); err != nil {
			s.writeErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		slog.Info("Calibration replaced", "screen", cal.Screen)
		cal, mapper := s.snapshot()
		s.writeJSON(w, CalibrationResponse{
			Calibration: cal,
			Forward:     mapper.Forward(),
			Inverse:     mapper.Inverse(),
			Render:      mapper.RenderMatrix(),
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// matrixHandler returns the solved matrices for the current calibration.
func (s *Server) matrixHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, mapper := s.snapshot()
	s.writeJSON(w, struct {
		Forward [9]float64  `json:"forward"`
		Inverse [9]float64  `json:"inverse"`
		Render  [16]float64 `json:"render"`
	}{mapper.Forward(), mapper.Inverse(), mapper.RenderMatrix()})
}

// mapHandler maps a single point through the calibration.
func (s *Server) mapHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid map request JSON", http.StatusBadRequest)
		return
	}

	_, mapper := s.snapshot()
	var x, y float64
	if req.Inverse {
		x, y = mapper.MapInverse(req.X, req.Y)
	} else {
		x, y = mapper.MapForward(req.X, req.Y)
	}
	s.writeJSON(w, MapResponse{X: x, Y: y})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: message}); err != nil {
		slog.Error("Error encoding error response", "error", err)
	}
}
