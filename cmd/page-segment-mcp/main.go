package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/ironsheep/page-segment-mcp/internal/config"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
	"github.com/ironsheep/page-segment-mcp/internal/layout"
	"github.com/ironsheep/page-segment-mcp/internal/logging"
	"github.com/ironsheep/page-segment-mcp/internal/ocr"
	"github.com/ironsheep/page-segment-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := a.command().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// app carries the configuration resolved in Before to the actions.
// engine defaults to Tesseract when left nil.
type app struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
	engine layout.Engine
}

func (a *app) command() *cli.Command {
	boxesFlag := &cli.StringFlag{
		Name:  "boxes",
		Usage: `regions as "x0,y0,x1,y1~x0,y0,x1,y1", top-left origin, negative x1/y1 for the page edge`,
	}
	outputFlag := &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "PNG file to write",
		Required: true,
	}

	return &cli.Command{
		Name:      "page-segment-mcp",
		Usage:     "Find header lines, columns and text lines on scanned pages",
		Version:   Version,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Sources: cli.EnvVars(config.EnvLogLevel),
			},
			&cli.IntFlag{
				Name:    "threshold",
				Usage:   "binarization level (0-255) for pages that are not black and white",
				Value:   config.DefaultThreshold,
				Sources: cli.EnvVars(config.EnvThreshold),
			},
			&cli.StringFlag{
				Name:    "language",
				Usage:   "Tesseract language code",
				Value:   config.DefaultLanguage,
				Sources: cli.EnvVars(config.EnvLanguage),
			},
			&cli.StringFlag{
				Name:    "tessdata",
				Usage:   "Tesseract traineddata directory",
				Sources: cli.EnvVars(config.EnvTessdata),
			},
			&cli.IntFlag{
				Name:    "header-lines",
				Usage:   "title lines to take off the top before finding columns",
				Sources: cli.EnvVars(config.EnvHeaderLines),
			},
			&cli.IntFlag{
				Name:    "columns",
				Usage:   "maximum number of columns",
				Value:   1,
				Sources: cli.EnvVars(config.EnvColumns),
			},
			&cli.FloatFlag{
				Name:    "highpass",
				Usage:   "row density, as a fraction of the densest row, below which a row is blank",
				Value:   0.001,
				Sources: cli.EnvVars(config.EnvHighpass),
			},
		},
		Before: a.before,
		Action: a.serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the MCP server on stdin/stdout",
				Action: a.serve,
			},
			{
				Name:      "segment",
				Usage:     "Segment a page automatically and print the result as JSON",
				ArgsUsage: "IMAGE",
				Action:    a.segment,
			},
			{
				Name:      "manual",
				Usage:     "Segment regions of a page with Tesseract and print the result as JSON",
				ArgsUsage: "IMAGE",
				Flags:     []cli.Flag{boxesFlag},
				Action:    a.manual,
			},
			{
				Name:      "blockout",
				Usage:     "Blank regions of the binarized page and write it as PNG",
				ArgsUsage: "IMAGE",
				Flags:     []cli.Flag{boxesFlag, outputFlag},
				Action:    a.blockout,
			},
			{
				Name:      "overlay",
				Usage:     "Draw the segmentation over the page and write it as PNG",
				ArgsUsage: "IMAGE",
				Flags: []cli.Flag{
					boxesFlag,
					outputFlag,
					&cli.IntFlag{Name: "thickness", Usage: "outline thickness in pixels", Value: 2},
				},
				Action: a.overlay,
			},
			{
				Name:   "version",
				Usage:  "Print version and Tesseract information",
				Action: a.version,
			},
		},
	}
}

// before layers flags over the environment and installs the logger.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return ctx, err
	}

	if cmd.IsSet("log-level") {
		level, err := logging.ParseLevel(cmd.String("log-level"))
		if err != nil {
			return ctx, err
		}
		cfg.LogLevel = level
	}
	if cmd.IsSet("threshold") {
		t := cmd.Int("threshold")
		if t < 0 || t > 255 {
			return ctx, errors.Errorf("threshold must be between 0 and 255, got %d", t)
		}
		cfg.Threshold = uint8(t)
	}
	if cmd.IsSet("language") {
		cfg.Language = cmd.String("language")
	}
	if cmd.IsSet("tessdata") {
		cfg.TessdataPrefix = cmd.String("tessdata")
	}
	if cmd.IsSet("header-lines") {
		cfg.Params.HeaderLines = cmd.Int("header-lines")
	}
	if cmd.IsSet("columns") {
		cfg.Params.TargetColumns = cmd.Int("columns")
	}
	if cmd.IsSet("highpass") {
		cfg.Params.LineHighpass = cmd.Float("highpass")
	}
	if err := cfg.Params.Validate(); err != nil {
		return ctx, err
	}

	// stdout carries the MCP protocol, so logs go to stderr
	logging.SetLogger(logging.New(a.stderr, cfg.LogLevel))
	a.cfg = cfg
	if a.engine == nil {
		a.engine = ocr.NewTesseractEngine(cfg.OCROptions())
	}
	return ctx, nil
}

func (a *app) serve(_ context.Context, _ *cli.Command) error {
	logging.Logger().Info("starting server",
		"version", Version, "build_time", BuildTime, "commit", GitCommit)
	return server.New(a.cfg).Run()
}

// loadPage loads the image named by the first argument.
func (a *app) loadPage(cmd *cli.Command) (*imaging.ImageCache, string, *imaging.Bitmap, error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, "", nil, errors.New("an image path is required")
	}
	cache := imaging.NewImageCache()
	bm, err := cache.LoadBitmap(path, a.cfg.Threshold)
	if err != nil {
		return nil, "", nil, err
	}
	return cache, path, bm, nil
}

func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) segment(_ context.Context, cmd *cli.Command) error {
	_, _, bm, err := a.loadPage(cmd)
	if err != nil {
		return err
	}
	result, err := layout.Segment(bm, a.cfg.Params)
	if err != nil {
		return err
	}
	return a.printJSON(result)
}

func (a *app) manual(_ context.Context, cmd *cli.Command) error {
	_, _, bm, err := a.loadPage(cmd)
	if err != nil {
		return err
	}
	result, err := layout.NewManualSegmenter(a.engine).Segment(bm, cmd.String("boxes"))
	if err != nil {
		return err
	}
	return a.printJSON(result)
}

func (a *app) blockout(_ context.Context, cmd *cli.Command) error {
	_, _, bm, err := a.loadPage(cmd)
	if err != nil {
		return err
	}
	out := cmd.String("output")
	if err := imgio.Save(out, layout.BlockOut(bm, cmd.String("boxes")).Image(), imgio.PNGEncoder()); err != nil {
		return errors.Wrapf(err, "failed to write %s", out)
	}
	return nil
}

func (a *app) overlay(_ context.Context, cmd *cli.Command) error {
	cache, path, bm, err := a.loadPage(cmd)
	if err != nil {
		return err
	}

	var result *layout.Result
	if boxes := cmd.String("boxes"); boxes != "" {
		result, err = layout.NewManualSegmenter(a.engine).Segment(bm, boxes)
	} else {
		result, err = layout.Segment(bm, a.cfg.Params)
	}
	if err != nil {
		return err
	}

	img, err := cache.Load(path)
	if err != nil {
		return err
	}
	thickness := cmd.Int("thickness")
	if thickness <= 0 {
		thickness = 2
	}
	out := cmd.String("output")
	rendered := imaging.Overlay(img, server.OverlayLayers(result), thickness)
	if err := imgio.Save(out, rendered, imgio.PNGEncoder()); err != nil {
		return errors.Wrapf(err, "failed to write %s", out)
	}
	return nil
}

func (a *app) version(_ context.Context, _ *cli.Command) error {
	info := ocr.GetInfo()
	fmt.Fprintf(a.stdout, "%s %s\n", server.Name, Version)
	fmt.Fprintf(a.stdout, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
	if info.Available {
		fmt.Fprintf(a.stdout, "  Tesseract:  %s (%s)\n", info.Version, info.Backend)
	} else {
		fmt.Fprintln(a.stdout, "  Tesseract:  not available")
	}
	return nil
}
