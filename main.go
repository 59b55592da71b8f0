package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/renderer"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
	"github.com/df07/go-implicit-raytracer/pkg/viewer"
	"github.com/df07/go-implicit-raytracer/pkg/window"
	"github.com/golang/glog"
	"golang.org/x/xerrors"
)

// options collects the command line settings. Zero values keep the scene's
// own configuration.
type options struct {
	Scene     string
	SceneFile string
	Width     int
	Height    int
	N         int
	Depth     int
	Workers   int
	OutDir    string
	Window    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.Scene, "scene", "default", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	flag.StringVar(&opts.SceneFile, "scene-file", "", "YAML scene description, overrides -scene")
	flag.IntVar(&opts.Width, "width", 0, "Image width in pixels (0 keeps the scene's setting)")
	flag.IntVar(&opts.Height, "height", 0, "Image height in pixels (0 keeps the scene's setting)")
	flag.IntVar(&opts.N, "n", 0, "Supersampling factor, N×N rays per pixel (0 keeps the scene's setting)")
	flag.IntVar(&opts.Depth, "depth", -1, "Reflection bounces (-1 keeps the scene's setting)")
	flag.IntVar(&opts.Workers, "workers", 0, "Render goroutines (0 for one per CPU)")
	flag.StringVar(&opts.OutDir, "out", "output", "Directory for rendered PNGs")
	flag.BoolVar(&opts.Window, "window", false, "Show the render in an interactive window instead of saving it")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()
	defer glog.Flush()

	if *help {
		fmt.Println("Implicit Surface Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, name := range scene.Names() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
		fmt.Println("Output will be saved to <out>/<scene>/render_<timestamp>.png")
		return
	}

	if err := run(opts, core.GlogLogger{}); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

// run builds the requested scene and renders it once to a PNG, or hands it to
// the interactive window
func run(opts options, logger core.Logger) error {
	sc, name, err := loadScene(opts)
	if err != nil {
		return err
	}
	if err := applyOptions(sc, opts); err != nil {
		return err
	}
	logger.Printf("Scene %s: %d opaque, %d transparent, %d lights, %dx%d",
		name, len(sc.OpaqueObjs), len(sc.TransparentObjs), len(sc.Lights),
		sc.SamplingConfig.Width, sc.SamplingConfig.Height)

	rt := renderer.NewRayTracer(sc.Background)
	rt.Logger = logger
	if sc.SamplingConfig.Workers > 0 {
		rt.Workers = sc.SamplingConfig.Workers
	}

	if opts.Window {
		presenter := &window.Presenter{}
		v, err := viewer.New(sc, rt, presenter)
		if err != nil {
			return err
		}
		return window.Run(v, presenter, "Implicit Surface Raytracer - "+name, logger)
	}

	presenter := renderer.NewPNGPresenter(filepath.Join(opts.OutDir, name), logger)
	v, err := viewer.New(sc, rt, presenter)
	if err != nil {
		return err
	}
	if _, err := v.RenderIfDirty(); err != nil {
		return xerrors.Errorf("while rendering %s: %w", name, err)
	}
	logger.Printf("Render completed: %v", v.LastStats)
	return nil
}

// loadScene returns the scene and the name used for its output directory
func loadScene(opts options) (*scene.Scene, string, error) {
	if opts.SceneFile != "" {
		sc, err := scene.Load(opts.SceneFile)
		if err != nil {
			return nil, "", err
		}
		name := strings.TrimSuffix(filepath.Base(opts.SceneFile), filepath.Ext(opts.SceneFile))
		return sc, name, nil
	}

	defaults := scene.DefaultSamplingConfig()
	width, height := defaults.Width, defaults.Height
	if opts.Width > 0 {
		width = opts.Width
	}
	if opts.Height > 0 {
		height = opts.Height
	}
	sc, err := scene.Builtin(opts.Scene, width, height)
	if err != nil {
		return nil, "", err
	}
	return sc, opts.Scene, nil
}

func applyOptions(sc *scene.Scene, opts options) error {
	width, height := sc.SamplingConfig.Width, sc.SamplingConfig.Height
	if opts.Width > 0 {
		width = opts.Width
	}
	if opts.Height > 0 {
		height = opts.Height
	}
	if width != sc.SamplingConfig.Width || height != sc.SamplingConfig.Height {
		if err := sc.Resize(width, height); err != nil {
			return err
		}
	}

	if opts.N > 0 {
		if opts.N > renderer.MaxSupersampling {
			return xerrors.Errorf("-n %d: %w", opts.N, renderer.ErrInvalidSupersampling)
		}
		sc.SamplingConfig.Supersampling = opts.N
	}
	if opts.Depth >= 0 {
		sc.SamplingConfig.Depth = opts.Depth
	}
	if opts.Workers > 0 {
		sc.SamplingConfig.Workers = opts.Workers
	}
	return nil
}
