package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/scene"
)

// Request limits shared by the render, websocket and config endpoints
const (
	DefaultScene    = "basic"
	DefaultTileSize = 64

	minImageSize = 16
	maxImageSize = 2048
)

// Server handles web requests for the progressive light renderer
type Server struct {
	port      int
	staticDir string
	mux       *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, staticDir: "static/"}
	s.mux = s.routes()
	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene              string  `json:"scene"`              // Scene id (e.g., "reflection")
	Width              int     `json:"width"`              // Image width
	Height             int     `json:"height"`             // Image height
	MaxSamples         int     `json:"maxSamples"`         // Maximum pixel estimates per pixel
	MaxPasses          int     `json:"maxPasses"`          // Maximum number of passes
	Seed               int64   `json:"seed"`               // Base seed for the tile generators
	Directions         int     `json:"directions"`         // Stratified directions per estimate
	MaxDepth           int     `json:"maxDepth"`           // Reflection depth bound
	AdaptiveMinSamples float64 `json:"adaptiveMinSamples"` // Fraction of the pass target before adaptive stopping
	AdaptiveThreshold  float64 `json:"adaptiveThreshold"`  // Relative error threshold
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/ws", s.handleRenderWS)
	mux.HandleFunc("/api/probe", s.handleProbe)
	return mux
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes by group
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = DefaultScene
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Return the scene's sampling configuration with validation limits
	config := sceneObj.GetSamplingConfig()
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":       sceneObj.Width,
			"height":      sceneObj.Height,
			"directions":  config.Directions,
			"maxSteps":    config.MaxSteps,
			"maxDistance": config.MaxDistance,
			"maxDepth":    config.MaxDepth,
			"transport":   config.Transport.String(),
		},
		"limits": map[string]interface{}{
			"width":              map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":             map[string]int{"min": minImageSize, "max": maxImageSize},
			"maxSamples":         map[string]int{"min": 1, "max": 1024},
			"maxPasses":          map[string]int{"min": 1, "max": 100},
			"directions":         map[string]int{"min": 1, "max": 1024},
			"maxDepth":           map[string]int{"min": 0, "max": 64},
			"adaptiveMinSamples": map[string]float64{"min": 0, "max": 1},
			"adaptiveThreshold":  map[string]float64{"min": 0, "max": 0.5},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene id and image size; the size defaults
// to the scene's recommended raster
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = DefaultScene
	}
	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		return err
	}

	if req.Width, err = parseIntParam(query, "width", sceneObj.Width, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", sceneObj.Height, minImageSize, maxImageSize); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", 8, 1, 1024); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", 4, 1, 100); err != nil {
		return nil, err
	}
	if req.Directions, err = parseIntParam(query, "directions", core.DefaultDirections, 1, 1024); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", core.DefaultMaxDepth, 0, 64); err != nil {
		return nil, err
	}
	if req.AdaptiveMinSamples, err = parseFloatParam(query, "adaptiveMinSamples", 0.25, 0, 1); err != nil {
		return nil, err
	}
	if req.AdaptiveThreshold, err = parseFloatParam(query, "adaptiveThreshold", 0.01, 0, 0.5); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 42); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 1024*1024 && req.MaxSamples*req.Directions > 1024 {
		log.Printf("Render warning: large image with many directions may render slowly")
	}

	return req, nil
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

// parseInt64Param parses an unbounded 64-bit integer parameter
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
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

// createScene builds the requested scene with the request's policy overrides applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		return nil, err
	}

	config := sceneObj.SamplingConfig.Merge(core.SamplingConfig{Directions: req.Directions})
	// Depth zero is a valid request and Merge treats it as unset
	config.MaxDepth = req.MaxDepth

	configured, err := scene.NewWithConfig(sceneObj.Root, config)
	if err != nil {
		return nil, err
	}
	configured.Width, configured.Height = sceneObj.Width, sceneObj.Height
	return configured, nil
}

// encodePNG encodes an image as PNG
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// statusForError maps request errors to HTTP status codes
func statusForError(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
