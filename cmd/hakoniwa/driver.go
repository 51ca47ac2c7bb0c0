package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"nyiyui.ca/hato/hakoniwa/camera"
	"nyiyui.ca/hato/hakoniwa/config"
	"nyiyui.ca/hato/hakoniwa/notify"
	"nyiyui.ca/hato/hakoniwa/render"
)

// driver owns the scene. Everything else talks to it through channels.
type driver struct {
	scene     *render.SceneState
	home      camera.Orbit
	withCalls bool
	seq       uint64

	commands chan camera.Command
	cameras  chan camera.Orbit
	reloads  chan *config.Layout
	sender   *notify.MultiplexerSender[render.Frame]
	frames   *notify.Multiplexer[render.Frame]
}

const maxFPS = 1000

// tickInterval is the time between frames at fps.
func tickInterval(fps int) (time.Duration, error) {
	if fps <= 0 || fps > maxFPS {
		return 0, fmt.Errorf("fps must be between 1 and %d, got %d", maxFPS, fps)
	}
	return time.Second / time.Duration(fps), nil
}

func newDriver(l *config.Layout, withCalls bool) (*driver, *notify.Multiplexer[render.Frame], error) {
	if err := l.Validate(); err != nil {
		return nil, nil, fmt.Errorf("layout: %w", err)
	}
	scene, err := render.InitializeLayout(l)
	if err != nil {
		return nil, nil, err
	}
	sender, frames := notify.NewMultiplexerSender[render.Frame]("frames")
	return &driver{
		scene:     scene,
		home:      scene.Camera,
		withCalls: withCalls,
		commands:  make(chan camera.Command, 16),
		cameras:   make(chan camera.Orbit, 1),
		reloads:   make(chan *config.Layout, 1),
		sender:    sender,
		frames:    frames,
	}, frames, nil
}

// Command queues c for the next frame.
func (d *driver) Command(c camera.Command) error {
	if !slices.Contains(camera.Commands, c) {
		return fmt.Errorf("%q: %w", c, camera.ErrUnknownCommand)
	}
	select {
	case d.commands <- c:
		return nil
	default:
		return fmt.Errorf("command queue full")
	}
}

// SetCamera moves the camera before the next frame.
func (d *driver) SetCamera(o camera.Orbit) {
	select {
	case d.cameras <- o:
	default:
		zap.S().Warnf("driver: camera change dropped")
	}
}

// Reload replaces the layout before the next frame. A nil layout is ignored.
func (d *driver) Reload(l *config.Layout, err error) {
	if err != nil || l == nil {
		return
	}
	select {
	case d.reloads <- l:
	default:
		// a reload is already pending; the newer one wins
		select {
		case <-d.reloads:
		default:
		}
		d.reloads <- l
	}
}

func (d *driver) reload(l *config.Layout) {
	if err := l.Validate(); err != nil {
		zap.S().Errorf("driver: reload: %s", err)
		return
	}
	scene, err := render.InitializeLayout(l)
	if err != nil {
		zap.S().Errorf("driver: reload: %s", err)
		return
	}
	d.home = scene.Camera
	scene.Camera = d.scene.Camera
	d.scene = scene
	zap.S().Infow("driver: layout reloaded", "cells", scene.Path.Len(), "mode", scene.Path.Mode)
}

// drain applies every pending event.
func (d *driver) drain() {
	for {
		select {
		case l := <-d.reloads:
			d.reload(l)
		case o := <-d.cameras:
			d.scene.Camera = o
		case c := <-d.commands:
			if err := d.scene.Camera.Apply(c, d.home); err != nil {
				zap.S().Warnf("driver: %s", err)
			}
		default:
			return
		}
	}
}

// step applies pending events and renders one frame.
func (d *driver) step() render.Frame {
	d.drain()
	d.seq++
	return d.scene.Snapshot(d.seq, d.withCalls)
}

// run renders and publishes a frame every interval until ctx is done.
func (d *driver) run(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			zap.S().Infow("driver: stopped",
				"frames", d.seq,
				"dropped", d.frames.Dropped(),
				"stale", d.frames.Stale())
			return
		case <-tick.C:
			start := time.Now()
			f := d.step()
			d.sender.Send(f)
			if elapsed := time.Since(start); elapsed > interval {
				zap.S().Debugf("driver: frame %d took %s", f.Seq, elapsed)
			}
		}
	}
}
