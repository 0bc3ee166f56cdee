package main

import (
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/geojson2poly/internal/config"
	"github.com/woozymasta/geojson2poly/internal/converter"
	"github.com/woozymasta/geojson2poly/internal/logger"
	"github.com/woozymasta/geojson2poly/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input      string   `short:"i" long:"in"     env:"INPUT_FILE"   description:"Input GeoJSON file path, - for stdin"   default:"./polygon/polygon_fr_esp.geojson"`
	Output     string   `short:"o" long:"out"    env:"OUTPUT_FILE"  description:"Output .poly file path, - for stdout" default:"./polygon/polygon_fr_esp.poly"`
	Format     string   `short:"f" long:"format" env:"INPUT_FORMAT" description:"Input format" choice:"auto" choice:"json" choice:"yaml" default:"auto"`
	ConfigFile string   `short:"c" long:"config" env:"CONFIG_FILE"  description:"Path to batch configuration file, overrides --in and --out"`
	Limit      []string `short:"l" long:"limit"  env:"LIMIT_NAMES"  description:"Limit batch processing to specific job names"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if opts.ConfigFile != "" {
		runBatch(opts)
		return
	}

	format := converter.Format(opts.Format)
	if opts.Format == "auto" {
		format = converter.FormatFromPath(opts.Input)
	}

	s, err := convert(opts.Input, opts.Output, format)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Conversion failed")
	}

	fmt.Fprintf(os.Stderr, "Conversion complete: %s written (%d polygons, %d rings)\n", displayName(opts.Output), s.Polygons, s.Rings)
}

func convert(in, out string, format converter.Format) (converter.Summary, error) {
	if in != "-" && out != "-" {
		return converter.ConvertFile(in, out, format)
	}

	var r io.Reader = os.Stdin
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return converter.Summary{}, &converter.IOError{Op: "read", Path: in, Cause: err}
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	if out == "-" {
		return converter.Convert(r, os.Stdout, format)
	}

	return converter.ConvertToFile(r, out, format)
}

func runBatch(opts Options) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	jobs := processor.FilterJobs(cfg.Jobs, opts.Limit)

	log.Info().
		Int("jobs_total", len(cfg.Jobs)).
		Int("jobs_queued", len(jobs)).
		Msg("Starting batch")

	res, err := processor.ProcessJobs(jobs)
	if err != nil {
		log.Fatal().Err(err).Int("succeeded", res.Succeeded).Msg("Batch finished with errors")
	}

	fmt.Fprintf(os.Stderr, "Conversion complete: %d files written\n", res.Succeeded)
}

func displayName(path string) string {
	if path == "-" {
		return "stdout"
	}
	return path
}
