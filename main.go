package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// cliOptions holds parsed command line flags
type cliOptions struct {
	sceneName   string
	output      string
	progressive bool
	batch       int
	workers     int
	tileSize    int
	seed        int64
	texture     string
	list        bool
	help        bool

	// Setting overrides, applied only for flags given explicitly
	width         int
	height        int
	fov           float64
	focusDistance float64
	defocusAngle  float64
	samples       int
	maxBounces    int
	set           map[string]bool
}

var errHelp = errors.New("help requested")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs parses command line flags into options
func parseArgs(args []string) (*cliOptions, *flag.FlagSet, error) {
	opts := &cliOptions{set: make(map[string]bool)}
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)

	fs.StringVar(&opts.sceneName, "scene", "cornell-box", "Catalog scene to render (see -list)")
	fs.StringVar(&opts.output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels")
	fs.Float64Var(&opts.fov, "fov", 0, "Vertical field of view in degrees")
	fs.Float64Var(&opts.focusDistance, "focus-distance", 0, "Distance to the plane of perfect focus")
	fs.Float64Var(&opts.defocusAngle, "defocus-angle", 0, "Depth of field cone angle in degrees (0 disables)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel")
	fs.IntVar(&opts.maxBounces, "max-bounces", 0, "Maximum ray bounce depth")
	fs.BoolVar(&opts.progressive, "progressive", false, "Render in progressive passes, updating the output after each")
	fs.IntVar(&opts.batch, "batch", 10, "Samples per pixel added by each progressive pass")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = use CPU count)")
	fs.IntVar(&opts.tileSize, "tile-size", 32, "Tile edge length in pixels")
	fs.Int64Var(&opts.seed, "seed", 42, "Seed for scene construction and sampling")
	fs.StringVar(&opts.texture, "texture", scene.DefaultTexturePath, "Image used by the textured scenes")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	return opts, fs, nil
}

// applyOverrides replaces scene defaults with the flags that were set explicitly
func applyOverrides(settings scene.Settings, opts *cliOptions) scene.Settings {
	if opts.set["width"] {
		settings.Width = opts.width
	}
	if opts.set["height"] {
		settings.Height = opts.height
	}
	if opts.set["fov"] {
		settings.FOV = opts.fov
	}
	if opts.set["focus-distance"] {
		settings.FocusDistance = opts.focusDistance
	}
	if opts.set["defocus-angle"] {
		settings.DefocusAngle = opts.defocusAngle
	}
	if opts.set["samples"] {
		settings.SamplesPerPixel = opts.samples
	}
	if opts.set["max-bounces"] {
		settings.MaxBounces = opts.maxBounces
	}
	return settings
}

func run(args []string) error {
	opts, fs, err := parseArgs(args)
	if errors.Is(err, flag.ErrHelp) {
		return errHelp
	}
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(fs)
		return errHelp
	}
	if opts.list {
		fmt.Println("Available scenes:")
		for _, name := range scene.Names() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	sceneObj, err := scene.LookupWithOptions(opts.sceneName, scene.Options{TexturePath: opts.texture})
	if err != nil {
		return err
	}
	settings := applyOverrides(sceneObj.DefaultSettings(), opts)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	fmt.Printf("Building scene %s...\n", opts.sceneName)
	world, err := sceneObj.Build(rand.New(rand.NewSource(opts.seed)))
	if err != nil {
		return fmt.Errorf("failed to build scene %s: %w", opts.sceneName, err)
	}

	outputPath := opts.output
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = filepath.Join("output", opts.sceneName, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	startTime := time.Now()
	if opts.progressive {
		err = renderProgressive(world, settings, opts, outputPath)
	} else {
		err = renderBatch(world, settings, opts, outputPath)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Render saved as %s\n", outputPath)
	return nil
}

func renderBatch(world *scene.World, settings scene.Settings, opts *cliOptions, outputPath string) error {
	config := renderer.RenderConfig{TileSize: opts.tileSize, NumWorkers: opts.workers, Seed: opts.seed}
	raytracer, err := renderer.NewRaytracer(world, settings, config, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	frame, stats, err := raytracer.Render()
	if err != nil {
		return err
	}
	fmt.Printf("Samples per pixel: %.1f (range %d - %d), average luminance %.4f\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, frame.AverageLuminance())

	return savePNG(outputPath, frame.Image())
}

// renderProgressive rewrites the output after every delivered pass
func renderProgressive(world *scene.World, settings scene.Settings, opts *cliOptions, outputPath string) error {
	config := renderer.ProgressiveConfig{
		TileSize:           opts.tileSize,
		BatchSize:          opts.batch,
		MaxSamplesPerPixel: settings.SamplesPerPixel,
		NumWorkers:         opts.workers,
		Seed:               opts.seed,
	}
	raytracer, err := renderer.NewProgressiveRaytracer(world, settings, config, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	passChan, errChan := raytracer.RenderProgressive(context.Background())
	for result := range passChan {
		if err := savePNG(outputPath, result.Frame.Image()); err != nil {
			return err
		}
		fmt.Printf("Saved pass %d of %d (%.1f samples/pixel, average luminance %.4f)\n",
			result.PassNumber, raytracer.TotalPasses(), result.Stats.AverageSamples, result.Frame.AverageLuminance())
	}
	return <-errChan
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, name := range scene.Names() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println()
	fmt.Println("Scene settings are used unless overridden by -width, -height, -fov,")
	fmt.Println("-focus-distance, -defocus-angle, -samples or -max-bounces.")
}
