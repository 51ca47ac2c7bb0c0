package camera

import (
	"errors"
	"fmt"
)

var ErrUnknownCommand = errors.New("unknown camera command")

// Command is one camera key press.
type Command string

const (
	RotateLeft  Command = "rotate-left"
	RotateRight Command = "rotate-right"
	TiltUp      Command = "tilt-up"
	TiltDown    Command = "tilt-down"
	ZoomInCmd   Command = "zoom-in"
	ZoomOutCmd  Command = "zoom-out"
	PanLeft     Command = "pan-left"
	PanRight    Command = "pan-right"
	PanForward  Command = "pan-forward"
	PanBack     Command = "pan-back"
	Reset       Command = "reset"
)

// PanStep is how far one pan command moves the target.
const PanStep float32 = 10

// Commands lists every known command.
var Commands = []Command{
	RotateLeft, RotateRight, TiltUp, TiltDown, ZoomInCmd, ZoomOutCmd,
	PanLeft, PanRight, PanForward, PanBack, Reset,
}

// Apply changes o according to c.
// Reset returns to the default angles, keeping home as the target.
func (o *Orbit) Apply(c Command, home Orbit) error {
	switch c {
	case RotateLeft:
		o.Rotate(1)
	case RotateRight:
		o.Rotate(-1)
	case TiltUp:
		o.Tilt(1)
	case TiltDown:
		o.Tilt(-1)
	case ZoomInCmd:
		o.ZoomIn()
	case ZoomOutCmd:
		o.ZoomOut()
	case PanLeft:
		o.Pan(-PanStep, 0)
	case PanRight:
		o.Pan(PanStep, 0)
	case PanForward:
		o.Pan(0, PanStep)
	case PanBack:
		o.Pan(0, -PanStep)
	case Reset:
		*o = home
	default:
		return fmt.Errorf("%q: %w", c, ErrUnknownCommand)
	}
	return nil
}
