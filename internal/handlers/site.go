package handlers

import (
	"net/http"
	"time"

	"workflow-demo/internal/config"
)

const (
	welcomeMessage = "Welcome to GitHub Workflow Demo - test123!"
	demoMessage    = "This is a demo API endpoint"
	notFoundError  = "Endpoint not found"
)

var demoFeatures = []string{
	"CI/CD",
	"GitHub Actions",
	"Automated Testing",
	"EC2 Deployment",
}

// Site serves the informational routes. It holds the process start time so
// uptime is derived from an explicit value instead of process globals.
type Site struct {
	cfg       config.Config
	startedAt time.Time
	now       func() time.Time
}

func NewSite(cfg config.Config, startedAt time.Time) *Site {
	return &Site{cfg: cfg, startedAt: startedAt, now: time.Now}
}

type WelcomeResponse struct {
	Message     string `json:"message"`
	Version     string `json:"version"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"`
	Timestamp string  `json:"timestamp"`
}

type DemoResponse struct {
	Message string   `json:"message"`
	Success bool     `json:"success"`
	Data    DemoData `json:"data"`
}

type DemoData struct {
	Features []string `json:"features"`
	Stage    string   `json:"stage"`
}

// Welcome handles GET /
func (s *Site) Welcome(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, WelcomeResponse{
		Message:     welcomeMessage,
		Version:     config.Version,
		Timestamp:   Timestamp(s.now()),
		Environment: s.cfg.Environment,
	})
}

// Health handles GET /health
func (s *Site) Health(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Uptime:    now.Sub(s.startedAt).Seconds(),
		Timestamp: Timestamp(now),
	})
}

// Demo handles GET /api/demo
func (s *Site) Demo(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, DemoResponse{
		Message: demoMessage,
		Success: true,
		Data: DemoData{
			Features: demoFeatures,
			Stage:    s.cfg.Stage,
		},
	})
}

// NotFound answers every unmatched route, including a known path requested
// with the wrong method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, ErrorResponse{
		Error: notFoundError,
		Path:  r.URL.RequestURI(),
	})
}
