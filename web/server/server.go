package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-implicit-raytracer/pkg/renderer"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
	"github.com/golang/glog"
	"golang.org/x/xerrors"
)

// Parameter limits shared by the render and inspect endpoints
const (
	minSize = 16
	maxSize = 2000
)

// Server serves rendered scenes over HTTP
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server. staticDir, when non-empty, is served
// at the root.
func NewServer(port int, staticDir string) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}
	if staticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/image", s.handleImage)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SceneInfo describes a built-in scene and its default settings
type SceneInfo struct {
	Name          string `json:"name"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Supersampling int    `json:"supersampling"`
	Depth         int    `json:"depth"`
	Primitives    int    `json:"primitives"`
	Lights        int    `json:"lights"`
}

// handleScenes lists the built-in scenes with their defaults
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	defaults := scene.DefaultSamplingConfig()
	infos := make([]SceneInfo, 0, len(scene.Names()))
	for _, name := range scene.Names() {
		sc, err := scene.Builtin(name, defaults.Width, defaults.Height)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		infos = append(infos, SceneInfo{
			Name:          name,
			Width:         sc.SamplingConfig.Width,
			Height:        sc.SamplingConfig.Height,
			Supersampling: sc.SamplingConfig.Supersampling,
			Depth:         sc.SamplingConfig.Depth,
			Primitives:    sc.GetPrimitiveCount(),
			Lights:        len(sc.Lights),
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

// SceneRequest holds the parameters common to every scene endpoint
type SceneRequest struct {
	Scene         string `json:"scene"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Supersampling int    `json:"supersampling"`
	Depth         int    `json:"depth"`
}

// parseSceneRequest reads scene, width, height, n and depth from the query
func parseSceneRequest(values url.Values) (*SceneRequest, error) {
	defaults := scene.DefaultSamplingConfig()
	req := &SceneRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaults.Width, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaults.Height, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Supersampling, err = parseIntParam(values, "n", defaults.Supersampling, 1, renderer.MaxSupersampling); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", defaults.Depth, 0, 16); err != nil {
		return nil, err
	}
	return req, nil
}

// createScene builds the requested built-in scene with the request's settings
func createScene(req *SceneRequest) (*scene.Scene, error) {
	sc, err := scene.Builtin(req.Scene, req.Width, req.Height)
	if err != nil {
		return nil, err
	}
	sc.SamplingConfig.Supersampling = req.Supersampling
	sc.SamplingConfig.Depth = req.Depth
	return sc, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, xerrors.Errorf("invalid %s: %q", key, value)
	}
	if parsed < min || parsed > max {
		return 0, xerrors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}

// encodePNG converts an image to PNG bytes
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, xerrors.Errorf("while encoding PNG: %w", err)
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Warningf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
