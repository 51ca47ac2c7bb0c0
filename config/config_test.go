package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"nyiyui.ca/hato/hakoniwa/track/layout"
)

func TestLoad(t *testing.T) {
	l, err := Load("testdata/loop.json")
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if l.SizeGrid != 12 || !l.IsClosed() {
		t.Fatalf("unexpected layout %+v", l)
	}
	p := l.TrackPath()
	if p.Len() != 14 || p.Mode != layout.Closed {
		t.Fatalf("unexpected path %s", p)
	}
	if len(l.Scenery) != 3 || l.Scenery[0].Kind != Station || l.Scenery[0].Turn != 1 {
		t.Fatalf("unexpected scenery %+v", l.Scenery)
	}
}

func TestLoadOpen(t *testing.T) {
	l, err := Load("testdata/branch.json")
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if l.IsClosed() || l.TrackPath().Mode != layout.Open {
		t.Fatalf("expected an open path")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("testdata/small.json"); !errors.Is(err, ErrGridSize) {
		t.Fatalf("expected ErrGridSize, got %v", err)
	}
	if _, err := Load("testdata/missing.json"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if _, err := Parse([]byte(`{"size_grid": "big"}`)); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	type setup struct {
		name     string
		json     string
		expected error
	}
	setups := []setup{
		{"empty path", `{"size_grid": 10, "origin": [0, 0], "path": []}`, nil},
		{"single", `{"size_grid": 10, "origin": [0, 0], "path": [[1, 1]]}`, nil},
		{"pair", `{"size_grid": 10, "origin": [0, 0], "path": [[1, 1], [2, 1]]}`, nil},
		{"open gap at ends", `{"size_grid": 10, "origin": [0, 0], "closed": false, "path": [[1, 1], [2, 1], [3, 1]]}`, nil},
		{"closed gap at ends", `{"size_grid": 10, "origin": [0, 0], "path": [[1, 1], [2, 1], [3, 1]]}`, ErrNotAdjacent},
		{"grid", `{"size_grid": 3, "origin": [0, 0], "path": []}`, ErrGridSize},
		{"origin", `{"size_grid": 10, "origin": [10, 0], "path": []}`, ErrOutOfGrid},
		{"negative", `{"size_grid": 10, "origin": [0, 0], "path": [[-1, 0]]}`, ErrOutOfGrid},
		{"duplicate", `{"size_grid": 10, "origin": [0, 0], "closed": false, "path": [[1, 1], [2, 1], [1, 1]]}`, ErrDuplicate},
		{"diagonal", `{"size_grid": 10, "origin": [0, 0], "path": [[1, 1], [2, 2]]}`, ErrNotAdjacent},
		{"scenery kind", `{"size_grid": 10, "origin": [0, 0], "path": [], "scenery": [{"kind": "castle", "cell": [1, 1]}]}`, ErrScenery},
		{"scenery turn", `{"size_grid": 10, "origin": [0, 0], "path": [], "scenery": [{"kind": "tree", "cell": [1, 1], "turn": 4}]}`, ErrScenery},
		{"scenery on track", `{"size_grid": 10, "origin": [0, 0], "path": [[1, 1]], "scenery": [{"kind": "tree", "cell": [1, 1]}]}`, ErrScenery},
		{"scenery twice", `{"size_grid": 10, "origin": [0, 0], "path": [], "scenery": [{"kind": "tree", "cell": [1, 1]}, {"kind": "building", "cell": [1, 1]}]}`, ErrDuplicate},
		{"scenery outside", `{"size_grid": 10, "origin": [0, 0], "path": [], "scenery": [{"kind": "tree", "cell": [1, 10]}]}`, ErrOutOfGrid},
	}
	for _, s := range setups {
		t.Run(s.name, func(t *testing.T) {
			_, err := Parse([]byte(s.json))
			if s.expected == nil {
				if err != nil {
					t.Fatalf("Parse: %s", err)
				}
				return
			}
			if !errors.Is(err, s.expected) {
				t.Fatalf("expected %v, got %v", s.expected, err)
			}
		})
	}
}

func TestFromPath(t *testing.T) {
	p := layout.Testbench3()
	l := FromPath(p, 10)
	if err := l.Validate(); err != nil {
		t.Fatalf("Validate: %s", err)
	}
	if diff := cmp.Diff(p, l.TrackPath()); diff != "" {
		t.Fatalf("path (-want +got):\n%s", diff)
	}
	for _, name := range layout.PresetNames() {
		if err := FromPath(layout.MustPreset(name), 10).Validate(); err != nil {
			t.Errorf("preset %s: %s", name, err)
		}
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	small, err := os.ReadFile("testdata/branch.json")
	if err != nil {
		t.Fatalf("read: %s", err)
	}
	if err := os.WriteFile(path, small, 0o644); err != nil {
		t.Fatalf("write: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	changes := make(chan *Layout, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(l *Layout, err error) {
			if err != nil {
				return
			}
			select {
			case changes <- l:
			default:
			}
		})
	}()

	// keep rewriting until the watcher is up and reports a change
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case l := <-changes:
			if l.TrackPath().Len() != 7 {
				t.Fatalf("unexpected reload %+v", l)
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("Watch: %s", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path, small, 0o644); err != nil {
				t.Fatalf("write: %s", err)
			}
		case <-ctx.Done():
			t.Fatalf("no reload seen")
		}
	}
}
