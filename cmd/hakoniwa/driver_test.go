package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"nyiyui.ca/hato/hakoniwa/camera"
	"nyiyui.ca/hato/hakoniwa/config"
	"nyiyui.ca/hato/hakoniwa/render"
	"nyiyui.ca/hato/hakoniwa/track/layout"
)

func TestDriverStep(t *testing.T) {
	d, _, err := newDriver(config.FromPath(layout.Testbench1(), 12), false)
	if err != nil {
		t.Fatalf("newDriver: %s", err)
	}
	f := d.step()
	if f.Seq != 1 || f.Stats.Cells != 16 || f.Calls != nil {
		t.Fatalf("unexpected first frame %+v", f.Stats)
	}

	if err := d.Command(camera.RotateLeft); err != nil {
		t.Fatalf("Command: %s", err)
	}
	if err := d.Command("spin"); !errors.Is(err, camera.ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	f = d.step()
	if f.Camera.Theta != camera.DefaultTheta+camera.Step {
		t.Fatalf("command not applied: %s", f.Camera)
	}

	d.Reload(config.FromPath(layout.Testbench3(), 10), nil)
	f = d.step()
	if f.Stats.Cells != 8 {
		t.Fatalf("reload not applied: %+v", f.Stats)
	}
	if f.Camera.Theta != camera.DefaultTheta+camera.Step {
		t.Fatalf("camera lost on reload: %s", f.Camera)
	}

	d.Command(camera.Reset)
	f = d.step()
	if f.Camera != camera.New(f.Camera.Target) || f.Camera.Target != d.home.Target {
		t.Fatalf("reset went to %s", f.Camera)
	}
}

func TestDriverBadReload(t *testing.T) {
	d, _, err := newDriver(config.FromPath(layout.Testbench1(), 12), false)
	if err != nil {
		t.Fatalf("newDriver: %s", err)
	}
	bad := config.FromPath(layout.Testbench1(), 12)
	bad.SizeGrid = 2
	d.Reload(bad, nil)
	d.Reload(nil, errors.New("read failed"))
	if f := d.step(); f.Stats.Cells != 16 {
		t.Fatalf("bad reload replaced the scene: %+v", f.Stats)
	}
}

func TestDriverRejectsInvalidLayout(t *testing.T) {
	bad := config.FromPath(layout.NewPath(layout.C(5, 5), layout.C(6, 5), layout.C(6, 6)), 12)
	if _, _, err := newDriver(bad, false); !errors.Is(err, config.ErrNotAdjacent) {
		t.Fatalf("expected ErrNotAdjacent, got %v", err)
	}
}

func TestTickInterval(t *testing.T) {
	if got, err := tickInterval(30); err != nil || got != time.Second/30 {
		t.Fatalf("30 fps: got %s, %v", got, err)
	}
	if got, err := tickInterval(maxFPS); err != nil || got <= 0 {
		t.Fatalf("max fps: got %s, %v", got, err)
	}
	for _, fps := range []int{0, -1, maxFPS + 1, 2_000_000_000} {
		if _, err := tickInterval(fps); err == nil {
			t.Fatalf("%d fps accepted", fps)
		}
	}
}

func TestDriverRun(t *testing.T) {
	d, frames, err := newDriver(config.FromPath(layout.Testbench3(), 10), false)
	if err != nil {
		t.Fatalf("newDriver: %s", err)
	}
	ch := make(chan render.Frame, 64)
	frames.Subscribe("test", ch)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	d.run(ctx, 5*time.Millisecond)
	frames.Unsubscribe(ch)
	var last uint64
	for len(ch) > 0 {
		f := <-ch
		if f.Seq <= last {
			t.Fatalf("frame %d after %d", f.Seq, last)
		}
		last = f.Seq
	}
	if last == 0 {
		t.Fatalf("no frames published")
	}
}
