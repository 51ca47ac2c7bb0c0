// Package ui shows the diorama as a map in the terminal and turns key presses into camera commands.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"go.uber.org/zap"
	"nyiyui.ca/hato/hakoniwa/camera"
	"nyiyui.ca/hato/hakoniwa/config"
	"nyiyui.ca/hato/hakoniwa/notify"
	"nyiyui.ca/hato/hakoniwa/render"
	"nyiyui.ca/hato/hakoniwa/track/layout"
)

// ErrQuit is returned by Run when the user asks to quit.
var ErrQuit = errors.New("quit")

// Keys maps termui key IDs to camera commands.
var Keys = map[string]camera.Command{
	"<Left>":  camera.RotateLeft,
	"<Right>": camera.RotateRight,
	"<Up>":    camera.TiltUp,
	"<Down>":  camera.TiltDown,
	"q":       camera.ZoomOutCmd,
	"w":       camera.ZoomInCmd,
	"h":       camera.PanLeft,
	"l":       camera.PanRight,
	"k":       camera.PanForward,
	"j":       camera.PanBack,
	"r":       camera.Reset,
}

var quitKeys = []string{"a", "<C-c>"}

const (
	empty = '·'
	train = 'T'
)

var trackRunes = map[layout.Orientation]rune{
	layout.Horizontal: '═',
	layout.Vertical:   '║',
	layout.WestNorth:  '╝',
	layout.EastSouth:  '╔',
	layout.EastNorth:  '╚',
	layout.WestSouth:  '╗',
}

var sceneryRunes = map[config.SceneryKind]rune{
	config.Station:  'S',
	config.Tree:     '^',
	config.Building: 'B',
}

func segmentRune(seg layout.Segment) rune {
	switch seg.Kind {
	case layout.Isolated:
		return 'o'
	case layout.Corner:
		if seg.Orientation == layout.OrientNone {
			return '+'
		}
	}
	return trackRunes[seg.Orientation]
}

// MapText draws l as one line per row, north at the top.
func MapText(l *config.Layout) string {
	n := l.SizeGrid
	grid := make([][]rune, n)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(empty), n))
	}
	set := func(c layout.Cell, r rune) {
		if c.X < 0 || c.Y < 0 || c.X >= n || c.Y >= n {
			return
		}
		grid[n-1-c.Y][c.X] = r
	}
	for _, s := range l.Scenery {
		set(s.Cell.Cell(), sceneryRunes[s.Kind])
	}
	p := l.TrackPath()
	segs, _ := layout.ClassifyAll(p)
	for i, c := range p.Cells {
		set(c, segmentRune(segs[i]))
	}
	if head, ok := p.Head(); ok {
		set(head, train)
	}
	b := new(strings.Builder)
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// StatusText summarises f.
func StatusText(f render.Frame) string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "frame %d\n", f.Seq)
	fmt.Fprintf(b, "%s\n", f.Camera)
	s := f.Stats
	fmt.Fprintf(b, "%d cells: %d straight, %d corner, %d isolated\n", s.Cells, s.Straights, s.Corners, s.Isolated)
	if s.Degenerate > 0 {
		fmt.Fprintf(b, "%d degenerate corners\n", s.Degenerate)
	}
	fmt.Fprintf(b, "%d scenery, train: %t\n", s.Scenery, s.Train)
	b.WriteString("←→ rotate  ↑↓ tilt  q/w zoom  hjkl pan  r reset  a quit")
	return b.String()
}

// frameOrder drops frames older than the newest one shown, since frames are sent concurrently.
type frameOrder struct {
	seq  uint64
	seen bool
}

func (o *frameOrder) accept(f render.Frame) bool {
	if o.seen && f.Seq < o.seq {
		return false
	}
	o.seq, o.seen = f.Seq, true
	return true
}

// Run draws frames from frames until ctx is done or the user quits, sending camera key presses to commands.
func Run(ctx context.Context, frames *notify.Multiplexer[render.Frame], commands chan<- camera.Command) error {
	err := termui.Init()
	if err != nil {
		return fmt.Errorf("termui init: %s", err)
	}
	defer termui.Close()

	ch := make(chan render.Frame, 1)
	frames.Subscribe("ui", ch)
	defer frames.Unsubscribe(ch)

	mapView := widgets.NewParagraph()
	mapView.Title = "map"
	status := widgets.NewParagraph()
	status.Title = "camera"
	status.Text = "waiting for a frame"
	var lastLayout *config.Layout
	var order frameOrder
	resize := func() {
		w, h := termui.TerminalDimensions()
		mapW := w
		if lastLayout != nil {
			mapW = lastLayout.SizeGrid + 2
		}
		mapView.SetRect(0, 0, mapW, h)
		status.SetRect(mapW, 0, w, h)
	}
	resize()
	termui.Render(mapView, status)

	events := termui.PollEvents()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-events:
			if e.Type == termui.ResizeEvent {
				resize()
				termui.Clear()
				termui.Render(mapView, status)
				continue
			}
			for _, q := range quitKeys {
				if e.ID == q {
					return ErrQuit
				}
			}
			c, ok := Keys[e.ID]
			if !ok {
				continue
			}
			select {
			case commands <- c:
			default:
				zap.S().Debugf("ui: dropped %s", c)
			}
		case f := <-ch:
			if !order.accept(f) {
				continue
			}
			if f.Layout != nil && f.Layout != lastLayout {
				lastLayout = f.Layout
				resize()
				mapView.Text = MapText(f.Layout)
			}
			status.Text = StatusText(f)
			termui.Render(mapView, status)
		}
	}
}
