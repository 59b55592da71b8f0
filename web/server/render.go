package server

import (
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/renderer"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
	"github.com/golang/glog"
	"golang.org/x/xerrors"
)

// FrameUpdate carries a finished frame to the client
type FrameUpdate struct {
	ImageData  string `json:"imageData"` // Base64 encoded PNG
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Stats      Stats  `json:"stats"`
	ElapsedMs  int64  `json:"elapsedMs"`
	Primitives int    `json:"primitives"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int    `json:"totalPixels"`
	TotalRays       int64  `json:"totalRays"`
	OpaqueHits      int64  `json:"opaqueHits"`
	TransparentHits int64  `json:"transparentHits"`
	ShadowRays      int64  `json:"shadowRays"`
	Supersampling   int    `json:"supersampling"`
	Workers         int    `json:"workers"`
	Summary         string `json:"summary"`
}

func newStats(st renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     st.TotalPixels,
		TotalRays:       int64(st.TotalRays),
		OpaqueHits:      int64(st.OpaqueHits),
		TransparentHits: int64(st.TransparentHits),
		ShadowRays:      int64(st.ShadowRays),
		Supersampling:   st.Supersampling,
		Workers:         st.Workers,
		Summary:         st.String(),
	}
}

// framePresenter keeps the last presented frame in memory
type framePresenter struct {
	img *image.RGBA
}

func (p *framePresenter) Present(img *image.RGBA) error {
	p.img = img
	return nil
}

// renderResult is the outcome of one render pass
type renderResult struct {
	img   *image.RGBA
	stats renderer.RenderStats
	sc    *scene.Scene
}

// renderScene builds and renders the requested scene once
func renderScene(req *SceneRequest, logger core.Logger) (*renderResult, error) {
	sc, err := createScene(req)
	if err != nil {
		return nil, err
	}
	logger.Printf("Scene %s: %d primitives, %d lights, %dx%d, N=%d",
		req.Scene, sc.GetPrimitiveCount(), len(sc.Lights), req.Width, req.Height, req.Supersampling)

	rt := renderer.NewRayTracer(sc.Background)
	rt.Logger = logger
	presenter := &framePresenter{}
	fb := renderer.NewFrameBuffer(req.Width, req.Height, presenter)

	stats, err := rt.RaytraceScene(fb, sc.SamplingConfig.Depth, sc, sc.SamplingConfig.Supersampling)
	if err != nil {
		return nil, xerrors.Errorf("while rendering %s: %w", req.Scene, err)
	}
	return &renderResult{img: presenter.img, stats: stats, sc: sc}, nil
}

// handleImage renders a scene and responds with the PNG
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := renderScene(req, core.GlogLogger{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	data, err := encodePNG(result.img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		glog.Warningf("Error writing image: %v", err)
	}
}

// handleRender renders a scene and streams console output followed by the
// frame as Server-Sent Events
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)
	ctx := r.Context()

	req, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	logger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), consoleChan)

	type outcome struct {
		result *renderResult
		err    error
	}
	done := make(chan outcome, 1)
	startTime := time.Now()
	go func() {
		result, err := renderScene(req, logger)
		done <- outcome{result, err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			sendConsole(w, msg)

		case out := <-done:
			// Flush console output logged before the render finished
			for len(consoleChan) > 0 {
				sendConsole(w, <-consoleChan)
			}
			if out.err != nil {
				sendSSEEvent(w, "error", fmt.Sprintf("Rendering failed: %v", out.err))
				return
			}
			if err := sendFrame(w, out.result, time.Since(startTime)); err != nil {
				sendSSEEvent(w, "error", err.Error())
				return
			}
			sendSSEEvent(w, "complete", "Rendering completed")
			return

		case <-ctx.Done():
			// Client disconnected; the render goroutine finishes on its own
			return
		}
	}
}

func sendConsole(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		glog.Warningf("Error marshaling console message: %v", err)
		return
	}
	sendSSEEvent(w, "console", string(data))
}

func sendFrame(w http.ResponseWriter, result *renderResult, elapsed time.Duration) error {
	imageData, err := imageToBase64PNG(result.img)
	if err != nil {
		return err
	}
	data, err := json.Marshal(FrameUpdate{
		ImageData:  imageData,
		Width:      result.img.Rect.Dx(),
		Height:     result.img.Rect.Dy(),
		Stats:      newStats(result.stats),
		ElapsedMs:  elapsed.Milliseconds(),
		Primitives: result.sc.GetPrimitiveCount(),
	})
	if err != nil {
		return xerrors.Errorf("while marshaling frame: %w", err)
	}
	return sendSSEEvent(w, "frame", string(data))
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEEvent writes one event and flushes it to the client
func sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
