package kujo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"nyiyui.ca/hato/hakoniwa/camera"
	"nyiyui.ca/hato/hakoniwa/notify"
	"nyiyui.ca/hato/hakoniwa/render"
	"nyiyui.ca/hato/hakoniwa/viewdb"
)

type fakeControl struct {
	lock     sync.Mutex
	commands []camera.Command
	set      []camera.Orbit
}

func (c *fakeControl) Command(cmd camera.Command) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	var o camera.Orbit
	if err := o.Apply(cmd, o); err != nil {
		return err
	}
	c.commands = append(c.commands, cmd)
	return nil
}

func (c *fakeControl) SetCamera(o camera.Orbit) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.set = append(c.set, o)
}

func setup(t *testing.T) (*Server, *notify.MultiplexerSender[render.Frame], *fakeControl) {
	sender, mux := notify.NewMultiplexerSender[render.Frame]("test")
	views, err := viewdb.Open(":memory:")
	if err != nil {
		t.Fatalf("viewdb: %s", err)
	}
	t.Cleanup(func() { views.Close() })
	c := new(fakeControl)
	s := NewServer(mux, c, views, nil)
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go s.Run(done)
	return s, sender, c
}

func waitFrame(t *testing.T, s *Server, seq uint64) render.Frame {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if f, ok := s.Latest(); ok && f.Seq == seq {
			return f
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("frame %d never arrived", seq)
	return render.Frame{}
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestFrame(t *testing.T) {
	s, sender, _ := setup(t)
	if w := do(t, s, http.MethodGet, "/frame", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before any frame, got %d", w.Code)
	}
	sent := render.Frame{Seq: 1, Camera: camera.New(mgl32.Vec3{1, 2, 0})}
	sender.Send(sent)
	waitFrame(t, s, 1)

	w := do(t, s, http.MethodGet, "/frame", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got render.Frame
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if got.Seq != 1 || got.Camera != sent.Camera {
		t.Fatalf("unexpected frame %+v", got)
	}
}

func TestCamera(t *testing.T) {
	s, _, c := setup(t)
	if w := do(t, s, http.MethodPost, "/camera", `{"command": "rotate-left"}`); w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body)
	}
	if w := do(t, s, http.MethodPost, "/camera", `{"command": "jump"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := do(t, s, http.MethodPost, "/camera", `nope`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if diff := cmp.Diff([]camera.Command{camera.RotateLeft}, c.commands); diff != "" {
		t.Fatalf("commands (-want +got):\n%s", diff)
	}
}

func TestViews(t *testing.T) {
	s, sender, c := setup(t)
	o := camera.New(mgl32.Vec3{30, 40, 0})
	sender.Send(render.Frame{Seq: 7, Camera: o})
	waitFrame(t, s, 7)

	w := do(t, s, http.MethodPost, "/views", `{"name": "yard"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body)
	}
	var v viewdb.View
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if v.Name != "yard" || v.Camera != o {
		t.Fatalf("unexpected view %+v", v)
	}

	w = do(t, s, http.MethodGet, "/views", "")
	var views []viewdb.View
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if len(views) != 1 || views[0].ID != v.ID {
		t.Fatalf("unexpected list %+v", views)
	}

	if w := do(t, s, http.MethodPost, "/views/"+v.ID.String()+"/apply", ""); w.Code != http.StatusAccepted {
		t.Fatalf("apply: expected 202, got %d", w.Code)
	}
	if len(c.set) != 1 || c.set[0] != o {
		t.Fatalf("camera not applied: %+v", c.set)
	}
	if w := do(t, s, http.MethodDelete, "/views/"+v.ID.String(), ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	if w := do(t, s, http.MethodGet, "/views/"+v.ID.String(), ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := do(t, s, http.MethodGet, "/views/not-a-uuid", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
