package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"nyiyui.ca/hato/hakoniwa/catalog"
)

type CallKind string

const (
	CallPush      CallKind = "push"
	CallPop       CallKind = "pop"
	CallTranslate CallKind = "translate"
	CallRotate    CallKind = "rotate"
	CallColor     CallKind = "color"
	CallDraw      CallKind = "draw"
)

// Call is a single recorded Renderer call.
type Call struct {
	Kind  CallKind        `json:"kind"`
	Vec   *mgl32.Vec3     `json:"vec,omitempty"`
	Angle float32         `json:"angle,omitempty"`
	Color *catalog.Color  `json:"color,omitempty"`
	Mesh  *catalog.MeshID `json:"mesh,omitempty"`
}

func (c Call) String() string {
	switch c.Kind {
	case CallTranslate:
		return fmt.Sprintf("translate%v", *c.Vec)
	case CallRotate:
		return fmt.Sprintf("rotate(%g°, %v)", c.Angle, *c.Vec)
	case CallColor:
		return fmt.Sprintf("color%v", *c.Color)
	case CallDraw:
		return fmt.Sprintf("draw(%s)", *c.Mesh)
	default:
		return string(c.Kind)
	}
}

// Recorder is a Renderer that records every call.
// It is used to check draw order and stack balance, and to ship frames to remote viewers.
type Recorder struct {
	Calls  []Call
	Pushes int
	Pops   int
	depth  int
	// MaxDepth is the deepest the matrix stack got.
	MaxDepth int
	// Underflows counts pops without a matching push.
	Underflows int
}

var _ Renderer = (*Recorder)(nil)

func (r *Recorder) PushMatrix() {
	r.Calls = append(r.Calls, Call{Kind: CallPush})
	r.Pushes++
	r.depth++
	if r.depth > r.MaxDepth {
		r.MaxDepth = r.depth
	}
}

func (r *Recorder) PopMatrix() {
	r.Calls = append(r.Calls, Call{Kind: CallPop})
	r.Pops++
	if r.depth == 0 {
		r.Underflows++
		return
	}
	r.depth--
}

func (r *Recorder) Translate(v mgl32.Vec3) {
	r.Calls = append(r.Calls, Call{Kind: CallTranslate, Vec: &v})
}

func (r *Recorder) Rotate(deg float32, axis mgl32.Vec3) {
	r.Calls = append(r.Calls, Call{Kind: CallRotate, Angle: deg, Vec: &axis})
}

func (r *Recorder) SetFlatColor(c catalog.Color) {
	r.Calls = append(r.Calls, Call{Kind: CallColor, Color: &c})
}

func (r *Recorder) Draw(id catalog.MeshID) {
	r.Calls = append(r.Calls, Call{Kind: CallDraw, Mesh: &id})
}

// Balanced reports whether every push had a matching pop.
func (r *Recorder) Balanced() bool {
	return r.Pushes == r.Pops && r.depth == 0 && r.Underflows == 0
}

// Draws returns the meshes drawn, in order.
func (r *Recorder) Draws() []catalog.MeshID {
	var ids []catalog.MeshID
	for _, c := range r.Calls {
		if c.Kind == CallDraw {
			ids = append(ids, *c.Mesh)
		}
	}
	return ids
}

// Reset clears r for the next frame.
// Calls is not reused, as a finished frame may still be read by subscribers.
func (r *Recorder) Reset() {
	*r = Recorder{}
}
