// Package kujo serves finished frames and camera control over HTTP.
//
// Frames are published on two server-sent event streams: "frame" carries every draw call, "camera" only the camera and frame stats.
package kujo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/r3labs/sse/v2"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"nyiyui.ca/hato/hakoniwa/camera"
	"nyiyui.ca/hato/hakoniwa/notify"
	"nyiyui.ca/hato/hakoniwa/render"
	"nyiyui.ca/hato/hakoniwa/viewdb"
)

const (
	StreamFrame  = "frame"
	StreamCamera = "camera"
)

// Control is how the server asks the scene owner to move the camera.
type Control interface {
	Command(c camera.Command) error
	SetCamera(o camera.Orbit)
}

type cameraEvent struct {
	ID     uuid.UUID         `json:"id"`
	Seq    uint64            `json:"seq"`
	Camera camera.Orbit      `json:"camera"`
	Stats  render.FrameStats `json:"stats"`
}

type Server struct {
	frames  *notify.Multiplexer[render.Frame]
	ch      chan render.Frame
	control Control
	views   *viewdb.Store
	s       *sse.Server
	mux     *http.ServeMux
	handler http.Handler

	latestLock sync.RWMutex
	latest     *render.Frame
}

// NewServer returns a Server forwarding frames from frames.
// views may be nil, in which case the bookmark endpoints are not served.
func NewServer(frames *notify.Multiplexer[render.Frame], control Control, views *viewdb.Store, allowedOrigins []string) *Server {
	s := &Server{
		frames:  frames,
		ch:      make(chan render.Frame, 4),
		control: control,
		views:   views,
		s:       sse.New(),
		mux:     http.NewServeMux(),
	}
	s.frames.Subscribe("kujo", s.ch)
	s.s.AutoReplay = false
	s.s.CreateStream(StreamFrame)
	s.s.CreateStream(StreamCamera)
	s.mux.Handle("/events", s.s)
	s.mux.HandleFunc("/frame", s.handleFrame)
	s.mux.HandleFunc("/camera", s.handleCamera)
	if views != nil {
		s.mux.HandleFunc("/views", s.handleViews)
		s.mux.HandleFunc("/views/", s.handleView)
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}).Handler(s.mux)
	return s
}

// Run forwards frames to the event streams until done is closed.
func (s *Server) Run(done <-chan struct{}) {
	defer s.frames.Unsubscribe(s.ch)
	defer s.s.Close()
	for {
		select {
		case <-done:
			return
		case f := <-s.ch:
			s.publish(f)
		}
	}
}

func (s *Server) publish(f render.Frame) {
	stale := func() bool {
		s.latestLock.Lock()
		defer s.latestLock.Unlock()
		// frames are sent concurrently, so an older one can arrive late
		if s.latest != nil && f.Seq < s.latest.Seq {
			return true
		}
		s.latest = &f
		return false
	}()
	if stale {
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		zap.S().Errorf("kujo: marshal frame: %s", err)
		return
	}
	s.s.TryPublish(StreamFrame, &sse.Event{
		ID:   []byte(f.ID.String()),
		Data: data,
	})
	data, err = json.Marshal(cameraEvent{ID: f.ID, Seq: f.Seq, Camera: f.Camera, Stats: f.Stats})
	if err != nil {
		zap.S().Errorf("kujo: marshal camera: %s", err)
		return
	}
	s.s.TryPublish(StreamCamera, &sse.Event{
		ID:   []byte(f.ID.String()),
		Data: data,
	})
}

// Latest returns the last frame forwarded, if any.
func (s *Server) Latest() (render.Frame, bool) {
	s.latestLock.RLock()
	defer s.latestLock.RUnlock()
	if s.latest == nil {
		return render.Frame{}, false
	}
	return *s.latest, true
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnf("kujo: write response: %s", err)
	}
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f, ok := s.Latest()
	if !ok {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

type cameraRequest struct {
	Command camera.Command `json:"command"`
}

func (s *Server) handleCamera(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		f, ok := s.Latest()
		if !ok {
			http.Error(w, "no frame yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, f.Camera)
	case http.MethodPost:
		var req cameraRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		err := s.control.Command(req.Command)
		if errors.Is(err, camera.ErrUnknownCommand) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type viewRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		views, err := s.views.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if views == nil {
			views = []viewdb.View{}
		}
		writeJSON(w, http.StatusOK, views)
	case http.MethodPost:
		var req viewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		f, ok := s.Latest()
		if !ok {
			http.Error(w, "no frame yet", http.StatusServiceUnavailable)
			return
		}
		v, err := s.views.Save(viewdb.View{Name: req.Name, Camera: f.Camera})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleView serves /views/<id> (GET, DELETE) and /views/<id>/apply (POST).
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/views/")
	idRaw, action, _ := strings.Cut(rest, "/")
	id, err := uuid.Parse(idRaw)
	if err != nil {
		http.Error(w, "bad view id", http.StatusBadRequest)
		return
	}
	v, err := s.views.Get(id)
	if errors.Is(err, viewdb.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	switch {
	case action == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, v)
	case action == "" && r.Method == http.MethodDelete:
		if err := s.views.Delete(id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case action == "apply" && r.Method == http.MethodPost:
		s.control.SetCamera(v.Camera)
		w.WriteHeader(http.StatusAccepted)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}
