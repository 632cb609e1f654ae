// Package config loads page-segment-mcp settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ironsheep/page-segment-mcp/internal/layout"
	"github.com/ironsheep/page-segment-mcp/internal/logging"
	"github.com/ironsheep/page-segment-mcp/internal/ocr"
)

const (
	// EnvLogLevel selects debug, info, warn or error logging.
	EnvLogLevel = "PAGESEG_LOG_LEVEL"
	// EnvThreshold is the binarization level for pages that are not two-level.
	EnvThreshold = "PAGESEG_THRESHOLD"
	// EnvLanguage is the Tesseract language code.
	EnvLanguage = "PAGESEG_LANGUAGE"
	// EnvTessdata overrides the Tesseract traineddata directory.
	EnvTessdata = "PAGESEG_TESSDATA"
	// EnvHeaderLines is the default number of header lines.
	EnvHeaderLines = "PAGESEG_HEADER_LINES"
	// EnvColumns is the default target column count.
	EnvColumns = "PAGESEG_COLUMNS"
	// EnvHighpass is the default line high-pass fraction.
	EnvHighpass = "PAGESEG_HIGHPASS"

	// DefaultThreshold splits gray levels down the middle.
	DefaultThreshold = 128
	// DefaultLanguage is English.
	DefaultLanguage = "eng"
)

// Config holds process-wide settings.
type Config struct {
	LogLevel       slog.Level
	Threshold      uint8
	Language       string
	TessdataPrefix string
	Params         layout.Params
}

// Default returns the settings used when no variables are set.
func Default() Config {
	return Config{
		LogLevel:  slog.LevelInfo,
		Threshold: DefaultThreshold,
		Language:  DefaultLanguage,
		Params:    layout.DefaultParams(),
	}
}

// FromEnv reads the PAGESEG_* variables over the defaults. Unset or empty
// variables keep their default. Malformed values and invalid segmentation
// parameters are errors.
func FromEnv() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(EnvLogLevel); ok {
		level, err := logging.ParseLevel(v)
		if err != nil {
			return cfg, errors.Wrap(err, EnvLogLevel)
		}
		cfg.LogLevel = level
	}
	if v, ok := get(EnvThreshold); ok {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return cfg, errors.Wrapf(err, "%s must be 0-255", EnvThreshold)
		}
		cfg.Threshold = uint8(n)
	}
	if v, ok := get(EnvLanguage); ok {
		cfg.Language = v
	}
	if v, ok := get(EnvTessdata); ok {
		cfg.TessdataPrefix = v
	}
	if v, ok := get(EnvHeaderLines); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrap(err, EnvHeaderLines)
		}
		cfg.Params.HeaderLines = n
	}
	if v, ok := get(EnvColumns); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrap(err, EnvColumns)
		}
		cfg.Params.TargetColumns = n
	}
	if v, ok := get(EnvHighpass); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, errors.Wrap(err, EnvHighpass)
		}
		cfg.Params.LineHighpass = f
	}

	if err := cfg.Params.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// OCROptions returns the Tesseract settings.
func (c Config) OCROptions() ocr.Options {
	return ocr.Options{Language: c.Language, TessdataPrefix: c.TessdataPrefix}
}
