package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/samber/lo"

	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	// DefaultScene is rendered when a request names no scene
	DefaultScene = "cornell-box"
	// DefaultTileSize is the tile edge used for web renders
	DefaultTileSize = 32
)

// Request limits shared by parsing and /api/scene-config
const (
	minImageSize  = 8
	maxImageSize  = 2000
	minSamples    = 1
	maxSamples    = 10000
	minBatchSize  = 1
	maxBatchSize  = 1000
	minMaxBounces = 1
	maxMaxBounces = 200
	maxSeed       = 1<<31 - 1
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	staticDir string
	options   scene.Options
}

// NewServer creates a new web server. An empty staticDir disables static file serving.
func NewServer(port int, staticDir string, options scene.Options) *Server {
	return &Server{port: port, staticDir: staticDir, options: options}
}

// SceneSummary describes a catalog scene for /api/scenes
type SceneSummary struct {
	Name            string `json:"name"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	SamplesPerPixel int    `json:"samplesPerPixel"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/live", s.handleLive)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the catalog scenes with their default image settings
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	summaries := lo.FilterMap(scene.Names(), func(name string, _ int) (SceneSummary, bool) {
		sceneObj, err := scene.LookupWithOptions(name, s.options)
		if err != nil {
			return SceneSummary{}, false
		}
		settings := sceneObj.DefaultSettings()
		return SceneSummary{
			Name:            name,
			Width:           settings.Width,
			Height:          settings.Height,
			SamplesPerPixel: settings.SamplesPerPixel,
		}, true
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": summaries})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = DefaultScene
	}

	sceneObj, err := scene.LookupWithOptions(sceneName, s.options)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	settings := sceneObj.DefaultSettings()
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           settings.Width,
			"height":          settings.Height,
			"samplesPerPixel": settings.SamplesPerPixel,
			"maxBounces":      settings.MaxBounces,
			"fov":             settings.FOV,
			"focusDistance":   settings.FocusDistance,
			"defocusAngle":    settings.DefocusAngle,
			"batchSize":       defaultBatchSize(settings.SamplesPerPixel),
		},
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":     map[string]int{"min": minImageSize, "max": maxImageSize},
			"samples":    map[string]int{"min": minSamples, "max": maxSamples},
			"batch":      map[string]int{"min": minBatchSize, "max": maxBatchSize},
			"maxBounces": map[string]int{"min": minMaxBounces, "max": maxMaxBounces},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// defaultBatchSize picks roughly ten progressive passes for a sample count
func defaultBatchSize(samples int) int {
	return max(1, samples/10)
}
