package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"nyiyui.ca/hato/hakoniwa/config"
	"nyiyui.ca/hato/hakoniwa/export"
	"nyiyui.ca/hato/hakoniwa/render"
	"nyiyui.ca/hato/hakoniwa/track/layout"
	"nyiyui.ca/hato/hakoniwa/ui"
)

func main() {
	defer zap.S().Sync()
	layoutPath := flag.String("layout", "", "path to layout JSON file")
	preset := flag.String("preset", "", "preset layout to check instead ("+strings.Join(layout.PresetNames(), ", ")+")")
	gridSize := flag.Int("grid", 12, "grid size for preset layouts")
	objPath := flag.String("obj", "", "write the baked scene as OBJ (with a .mtl beside it)")
	level := zap.LevelFlag("log-level", zap.InfoLevel, "set log level")
	flag.Parse()
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(*level)
	dev, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(dev)

	var l *config.Layout
	switch {
	case *layoutPath != "":
		l, err = config.Load(*layoutPath)
		if err != nil {
			zap.S().Fatalf("load layout: %s", err)
		}
	case *preset != "":
		f, ok := layout.Presets[*preset]
		if !ok {
			zap.S().Fatalf("unknown preset %s", *preset)
		}
		l = config.FromPath(f(), *gridSize)
	default:
		zap.S().Fatalf("need -layout or -preset")
	}

	err = check(l, *objPath)
	if err != nil {
		zap.S().Fatalf("%s", err)
	}
}

func check(l *config.Layout, objPath string) error {
	p := l.TrackPath()
	segs, err := layout.ClassifyAll(p)
	if errors.Is(err, layout.ErrDegenerate) {
		zap.S().Warnf("degenerate corner: %s", err)
	} else if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	fmt.Print(ui.MapText(l))
	for i, seg := range segs {
		zap.S().Debugf("%d %s %s", i, p.Cells[i], seg)
	}

	s, err := render.InitializeLayout(l)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	b := render.NewBaker(s.Catalog, mgl32.Ident4())
	stats := s.RenderFrame(b)
	if err := b.Err(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if b.Depth() != 0 {
		return fmt.Errorf("render: matrix stack left %d deep", b.Depth())
	}
	zap.S().Infow("rendered",
		"stats", stats,
		"draws", len(b.Draws),
		"bounds", b.Bounds.String())

	if objPath == "" {
		return nil
	}
	mtlPath := strings.TrimSuffix(objPath, filepath.Ext(objPath)) + ".mtl"
	if err := writeFile(mtlPath, func(f *os.File) error { return export.WriteMTL(f, b) }); err != nil {
		return err
	}
	err = writeFile(objPath, func(f *os.File) error {
		return export.WriteOBJ(f, b, filepath.Base(mtlPath))
	})
	if err != nil {
		return err
	}
	zap.S().Infof("wrote %s and %s", objPath, mtlPath)
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
