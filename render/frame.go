package render

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"nyiyui.ca/hato/hakoniwa/camera"
	"nyiyui.ca/hato/hakoniwa/config"
)

// Frame is a finished frame, as sent to viewers.
// Frames are immutable once sent.
type Frame struct {
	ID     uuid.UUID      `json:"id"`
	Seq    uint64         `json:"seq"`
	Time   time.Time      `json:"time"`
	Camera camera.Orbit   `json:"camera"`
	View   mgl32.Mat4     `json:"view"`
	Stats  FrameStats     `json:"stats"`
	Layout *config.Layout `json:"layout"`
	Calls  []Call         `json:"calls,omitempty"`
}

// Snapshot renders s into a new Frame.
// The camera view matrix is recorded alongside the calls, since the calls themselves are in world space.
func (s *SceneState) Snapshot(seq uint64, withCalls bool) Frame {
	var r Recorder
	stats := s.RenderFrame(&r)
	f := Frame{
		ID:     uuid.New(),
		Seq:    seq,
		Time:   time.Now(),
		Camera: s.Camera,
		View:   s.Camera.View(),
		Stats:  stats,
		Layout: s.Layout,
	}
	if withCalls {
		f.Calls = r.Calls
	}
	return f
}
