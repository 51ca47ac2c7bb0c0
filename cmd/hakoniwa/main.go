package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"
	"nyiyui.ca/hato/hakoniwa/config"
	"nyiyui.ca/hato/hakoniwa/kujo"
	"nyiyui.ca/hato/hakoniwa/track/layout"
	"nyiyui.ca/hato/hakoniwa/ui"
	"nyiyui.ca/hato/hakoniwa/viewdb"
)

func main() {
	defer zap.S().Sync()
	layoutPath := flag.String("layout", "", "path to layout JSON file")
	preset := flag.String("preset", "testbench1", "preset layout to use when -layout is not given ("+strings.Join(layout.PresetNames(), ", ")+")")
	gridSize := flag.Int("grid", 12, "grid size for preset layouts")
	listen := flag.String("listen", ":8090", "address to serve frames on (empty to disable)")
	origins := flag.String("origins", "", "comma-separated CORS origins (empty allows all)")
	dbPath := flag.String("db", "views.db", "path to camera bookmark database")
	useUI := flag.Bool("ui", false, "show the terminal map")
	watch := flag.Bool("watch", false, "reload the layout file when it changes")
	fps := flag.Int("fps", 30, "frames per second")
	calls := flag.Bool("calls", true, "include draw calls in published frames")
	level := zap.LevelFlag("log-level", zap.DebugLevel, "set log level")
	flag.Parse()
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(*level)
	if *useUI {
		// the terminal belongs to the map
		cfg.OutputPaths = []string{"hakoniwa.log"}
	}
	dev, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(dev)

	interval, err := tickInterval(*fps)
	if err != nil {
		zap.S().Fatalf("%s", err)
	}

	var l *config.Layout
	if *layoutPath != "" {
		l, err = config.Load(*layoutPath)
		if err != nil {
			zap.S().Fatalf("load layout: %s", err)
		}
	} else {
		f, ok := layout.Presets[*preset]
		if !ok {
			zap.S().Fatalf("unknown preset %s", *preset)
		}
		l = config.FromPath(f(), *gridSize)
	}

	d, frames, err := newDriver(l, *calls)
	if err != nil {
		zap.S().Fatalf("initialize layout: %s", err)
	}
	zap.S().Infow("layout ready",
		"cells", d.scene.Path.Len(),
		"mode", d.scene.Path.Mode,
		"grid", l.SizeGrid,
		"camera", d.scene.Camera.String())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *watch {
		if *layoutPath == "" {
			zap.S().Fatalf("-watch needs -layout")
		}
		go func() {
			err := config.Watch(ctx, *layoutPath, d.Reload)
			if err != nil {
				zap.S().Errorf("watch: %s", err)
			}
		}()
	}

	if *listen != "" {
		var views *viewdb.Store
		if *dbPath != "" {
			views, err = viewdb.Open(*dbPath)
			if err != nil {
				zap.S().Fatalf("open bookmarks: %s", err)
			}
			defer views.Close()
		}
		var allowed []string
		if *origins != "" {
			allowed = strings.Split(*origins, ",")
		}
		s := kujo.NewServer(frames, d, views, allowed)
		go s.Run(ctx.Done())
		srv := &http.Server{
			Addr:              *listen,
			Handler:           s,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			srv.Close()
		}()
		go func() {
			zap.S().Infof("serving on %s", *listen)
			err := srv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				zap.S().Fatalf("serve: %s", err)
			}
		}()
	}

	if *useUI {
		go func() {
			defer cancel()
			err := ui.Run(ctx, frames, d.commands)
			if err != nil && !errors.Is(err, ui.ErrQuit) {
				zap.S().Errorf("ui: %s", err)
			}
		}()
	}

	d.run(ctx, interval)
	zap.S().Info("bye")
}

var _ kujo.Control = (*driver)(nil)
