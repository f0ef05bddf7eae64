package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"image/png"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/net/websocket"

	"github.com/df07/go-rect-raytracer/pkg/renderer"
	"github.com/df07/go-rect-raytracer/pkg/scene"
)

const (
	maxDimension    = 2000
	maxLightRaysCap = 64
)

//go:embed static
var staticFiles embed.FS

// Server handles web requests for the rect raytracer
type Server struct {
	port      int
	renderSeq atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene        string `json:"scene"`        // Scene ID as listed by /api/scenes
	Width        int    `json:"width"`        // Image width, 0 for the scene default
	Height       int    `json:"height"`       // Image height, 0 for the scene default
	MaxLightRays int    `json:"maxLightRays"` // Recursion budget, -1 for the scene default
	Frame        uint64 `json:"frame"`        // Opaque frame counter
}

// Handler returns the HTTP handler serving the API and static files
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(static)))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.Handle("/api/stream", websocket.Handler(s.streamSession))
	mux.HandleFunc("/api/health", s.handleHealth)

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

// handleScenes lists built-in and file scenes grouped by category
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleRender renders a scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renderSeq.Add(1))
	img, stats, err := sceneObj.Render(renderer.DefaultRenderConfig(), NewWebLogger(renderID, log.Default()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Rays", strconv.Itoa(stats.TotalRays))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[%s] failed to write response: %v", renderID, err)
	}
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.MaxLightRays, err = parseIntParam(values, "maxLightRays", -1, 0, maxLightRaysCap); err != nil {
		return nil, err
	}
	if value := values.Get("frame"); value != "" {
		if req.Frame, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid frame: %s", value)
		}
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

// createScene builds the requested scene and applies the request overrides.
// Scene files are only served when they are listed by scene discovery.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if strings.HasSuffix(req.Scene, ".json") {
		files, err := scene.ListSceneFiles()
		if err != nil {
			return nil, err
		}
		listed := false
		for _, info := range files {
			if info.ID == req.Scene {
				listed = true
				break
			}
		}
		if !listed {
			return nil, fmt.Errorf("unknown scene: %s", req.Scene)
		}
	}

	sceneObj, err := scene.NewScene(req.Scene)
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		sceneObj.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.Height = req.Height
	}
	if req.MaxLightRays >= 0 {
		sceneObj.Env.MaxLightRays = req.MaxLightRays
	}
	sceneObj.Env.Frame = req.Frame
	return sceneObj, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
