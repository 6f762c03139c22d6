package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/esimov/lowpoly"
	"github.com/esimov/lowpoly/internal/config"
	"github.com/esimov/lowpoly/internal/logger"
	"github.com/esimov/lowpoly/utils"
	"go.uber.org/zap"
)

var (
	// Flags
	source      = flag.String("in", "", "Source image path or URL")
	destination = flag.String("out", "", "Destination directory of the rendered frames")
	configPath  = flag.String("config", "", "Path to config file")
	width       = flag.Int("width", 0, "Viewport width")
	height      = flag.Int("height", 0, "Viewport height")
	density     = flag.Float64("density", 0, "Viewport pixel density (1-2)")
	fps         = flag.Int("fps", 0, "Simulated refresh rate")
	every       = flag.Int("every", 0, "Write one frame out of every N ticks")
	seed        = flag.Int64("seed", 0, "Sampling seed (0 uses the clock)")
	plotPath    = flag.String("plot", "", "Save a telemetry chart to this path")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	logFile     = flag.String("log", "", "Log file path")
)

func main() {
	flag.Parse()

	if len(*source) == 0 || len(*destination) == 0 {
		log.Fatal("Usage: lowpoly -in input.jpg -out frames/")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Unable to load config: %v", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, zlog); err != nil {
		reportError(os.Stderr, zlog, err, utils.IsTerminal(os.Stderr))
		stop()
		os.Exit(1)
	}
}

// reportError logs the failure, prints it and flushes the logger, since
// os.Exit skips the deferred Sync.
func reportError(w io.Writer, log *zap.Logger, err error, colored bool) {
	log.Error("render failed", zap.Error(err))
	fmt.Fprintf(w, "%s\n", utils.Decorate("Error: "+err.Error(), utils.ErrorColor, colored))
	log.Sync()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *config.Config) {
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if *logFile != "" {
		cfg.Logging.LogFile = *logFile
	}
	if *width > 0 {
		cfg.Render.Width = *width
	}
	if *height > 0 {
		cfg.Render.Height = *height
	}
	if *density > 0 {
		cfg.Render.Density = *density
	}
	if *fps > 0 {
		cfg.Render.FPS = *fps
	}
	if *every > 0 {
		cfg.Render.Every = *every
	}
	if *seed != 0 {
		cfg.Mesh.Seed = *seed
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	colored := utils.IsTerminal(os.Stdout)

	src, err := openSource(ctx, *source)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(*destination, 0755); err != nil {
		return fmt.Errorf("unable to create destination: %w", err)
	}

	var s *utils.Spinner
	if colored {
		s = utils.NewSpinner(os.Stdout)
		s.Start("Generating triangulated reveal...")
		defer s.Stop()
	}
	start := time.Now()

	scene, err := cfg.Processor(log).Process(src)
	if err != nil {
		return err
	}

	r := lowpoly.NewRenderer(scene)
	r.Resize(cfg.Render.Width, cfg.Render.Height, cfg.Render.Density)

	written, samples, err := renderCycle(ctx, cfg, r, log)
	if err != nil {
		return err
	}
	if *plotPath != "" {
		if err := lowpoly.PlotTimeline(samples, *plotPath); err != nil {
			return err
		}
		log.Info("telemetry chart saved", zap.String("path", *plotPath))
	}
	if s != nil {
		s.Stop()
	}

	fmt.Printf("\nGenerated in: %s\n", utils.Decorate(utils.FormatTime(time.Since(start)), utils.SuccessColor, colored))
	fmt.Printf("Total number of %s triangles generated out of %s points\n",
		utils.Decorate(fmt.Sprint(len(scene.Mesh.Triangles)), utils.SuccessColor, colored),
		utils.Decorate(fmt.Sprint(len(scene.Mesh.Points)), utils.SuccessColor, colored),
	)
	fmt.Printf("Saved %d frames in: %s\n\n", written, *destination)

	return nil
}

// renderCycle plays one full reveal, hold included, on a simulated display
// and writes every Nth frame as a PNG.
func renderCycle(ctx context.Context, cfg *config.Config, r *lowpoly.Renderer, log *zap.Logger) (int, []lowpoly.TimelineSample, error) {
	var (
		every    = max(1, cfg.Render.Every)
		samples  []lowpoly.TimelineSample
		written  int
		previous = lowpoly.Phase(-1)
	)

	err := lowpoly.PlayCycle(cfg.Animation, cfg.FrameInterval(), func(s lowpoly.TimelineSample) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tick := len(samples)
		samples = append(samples, s)

		if s.Frame.Phase != previous {
			log.Debug("phase", zap.Stringer("phase", s.Frame.Phase), zap.String("stage", s.Snapshot.Stage.Text))
			previous = s.Frame.Phase
		}
		// The closing sample repeats the first frame.
		closing := tick > 0 && s.Frame.Progress == 0 && !s.Frame.Holding
		if closing || tick%every != 0 {
			return nil
		}
		path := filepath.Join(*destination, fmt.Sprintf("frame_%04d.png", written))
		if err := savePNG(path, r.Draw(s.Frame)); err != nil {
			return err
		}
		written++
		return nil
	})
	return written, samples, err
}

func openSource(ctx context.Context, src string) (io.ReadCloser, error) {
	if !utils.IsURL(src) {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("unable to open source file: %w", err)
		}
		return f, nil
	}
	f, err := utils.DownloadImage(ctx, src)
	if err != nil {
		return nil, err
	}
	return &tempFile{f}, nil
}

// tempFile removes the downloaded file on Close.
type tempFile struct {
	*os.File
}

func (t *tempFile) Close() error {
	return errors.Join(t.File.Close(), os.Remove(t.File.Name()))
}

func savePNG(path string, img image.Image) error {
	fq, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create frame file: %w", err)
	}
	if err := png.Encode(fq, img); err != nil {
		fq.Close()
		return fmt.Errorf("unable to encode %s: %w", path, err)
	}
	return fq.Close()
}
