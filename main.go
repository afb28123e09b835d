package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/output"
	"github.com/df07/go-light2d/pkg/renderer"
	"github.com/df07/go-light2d/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneID     string
	outputPath  string
	width       int // 0 = scene's recommended size
	height      int
	passes      int
	samples     int
	workers     int
	seed        int64
	supersample int
	list        bool
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("light2d", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := renderer.DefaultProgressiveConfig()
	fs.StringVar(&opts.sceneID, "scene", "basic", "Scene to render (see -list)")
	fs.StringVar(&opts.outputPath, "o", "", "Output image path (.png, .bmp, .tif); default output/<scene>.png")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.passes, "passes", defaults.MaxPasses, "Number of progressive passes")
	fs.IntVar(&opts.samples, "samples", defaults.MaxSamplesPerPixel, "Maximum estimates per pixel")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed")
	fs.IntVar(&opts.supersample, "supersample", 1, "Render at N times the size and downsample")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	// -h and -help are handled by the flag package and reported as flag.ErrHelp
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	if opts.width < 0 || opts.height < 0 {
		return opts, fs, fmt.Errorf("image size must not be negative")
	}
	if opts.supersample < 1 {
		return opts, fs, fmt.Errorf("supersample must be at least 1, got %d", opts.supersample)
	}
	return opts, fs, nil
}

// createScene looks up a built-in scene by id
func createScene(id string) (*scene.Scene, error) {
	if id == "" {
		return nil, fmt.Errorf("no scene given")
	}
	return scene.Create(id)
}

// progressiveConfig builds the renderer configuration from the command line
func progressiveConfig(opts options) renderer.ProgressiveConfig {
	config := renderer.DefaultProgressiveConfig()
	config.MaxPasses = opts.passes
	config.MaxSamplesPerPixel = opts.samples
	config.NumWorkers = opts.workers
	config.Seed = opts.seed
	return config
}

// renderScene renders s progressively and returns the final image at width x height
func renderScene(ctx context.Context, s *scene.Scene, width, height int, opts options, logger core.Logger) (*image.Gray, renderer.RenderStats, error) {
	renderWidth, renderHeight := width*opts.supersample, height*opts.supersample

	pr, err := renderer.NewProgressiveRaytracer(s, renderWidth, renderHeight, progressiveConfig(opts), logger)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	result, err := pr.Render(ctx)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	return output.Downsample(result.Image, width, height), result.Stats, nil
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "2D Light Renderer")
	fmt.Fprintln(w, "Usage: light2d [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	printScenes(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>.png unless -o is given")
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-11s - %s (%s, %dx%d)\n", info.ID, info.Description, info.Transport, info.Width, info.Height)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		printHelp(fs, stdout)
		return nil
	}
	if err != nil {
		return err
	}

	if opts.list {
		printScenes(stdout)
		return nil
	}

	selectedScene, err := createScene(opts.sceneID)
	if err != nil {
		return err
	}

	width, height := selectedScene.Width, selectedScene.Height
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}

	path := opts.outputPath
	if path == "" {
		path = output.DefaultPath(opts.sceneID)
	}

	transport := "emissive"
	if scene.IsReflective(selectedScene) {
		transport = "reflective"
	}
	fmt.Fprintf(stdout, "Rendering %s (%d primitives, %s transport) at %dx%d...\n",
		opts.sceneID, selectedScene.GetPrimitiveCount(), transport, width, height)

	startTime := time.Now()
	img, stats, err := renderScene(ctx, selectedScene, width, height, opts, &writerLogger{w: stdout})
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(stdout, "Render completed in %v\n", time.Since(startTime))
	fmt.Fprintf(stdout, "Estimates per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)
	fmt.Fprintf(stdout, "Average brightness: %.3f\n", renderer.CalculateAverageBrightness(img))

	if err := output.Save(img, path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", path)
	return nil
}

// writerLogger implements core.Logger on an io.Writer
type writerLogger struct {
	w io.Writer
}

func (l *writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
