// Command verilog-doc indexes a tree of Verilog sources and emits the
// extracted module documentation as JSON fact tables.
//
// Usage:
//
//	verilog-doc [flags] [root]
//
// With no root argument the current directory is indexed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/robert-at-pretension-io/verilog-doc/internal/config"
	"github.com/robert-at-pretension-io/verilog-doc/internal/facts"
	"github.com/robert-at-pretension-io/verilog-doc/internal/indexer"
	"github.com/robert-at-pretension-io/verilog-doc/internal/validator"
)

func main() {
	var (
		output     = flag.String("o", "", "write fact tables to this file instead of stdout")
		configPath = flag.String("config", "", "load configuration from this file")
		deltaFrom  = flag.String("delta-from", "", "compute a delta against a previous fact tables file")
		deltaOut   = flag.String("delta-out", "", "write the delta to this file instead of stdout")
		noCache    = flag.Bool("no-cache", false, "disable the persistent extraction cache")
		verbose    = flag.Bool("v", false, "verbose logging")
		quiet      = flag.Bool("q", false, "suppress all logging except errors")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: verilog-doc [flags] [root]\n\n")
		fmt.Fprintf(os.Stderr, "Extract Verilog module documentation into JSON fact tables.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	log := newLogger(*verbose, *quiet)

	if err := run(root, *output, *configPath, *deltaFrom, *deltaOut, *noCache, log); err != nil {
		log.Error().Err(err).Msg("indexing failed")
		os.Exit(1)
	}
}

func newLogger(verbose, quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func run(root, output, configPath, deltaFrom, deltaOut string, noCache bool, log zerolog.Logger) error {
	cfg, err := loadConfig(root, configPath)
	if err != nil {
		return err
	}

	opts := []indexer.Option{indexer.WithLogger(log)}
	if noCache {
		opts = append(opts, indexer.WithoutCache())
	}
	result, err := indexer.New(cfg, opts...).Run(root)
	if err != nil {
		return err
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d file(s) failed to parse", len(result.Failed))
	}

	tables := facts.BuildTables(result.Files)

	data, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling tables: %w", err)
	}

	val, err := validator.New()
	if err != nil {
		return err
	}
	if err := val.ValidateJSON(data); err != nil {
		return fmt.Errorf("output failed validation: %w", err)
	}

	if err := writeOutput(output, data); err != nil {
		return err
	}

	stats := facts.Summarize(tables)
	log.Info().
		Int("modules", stats.Modules).
		Int("ports", stats.Ports).
		Int("parameters", stats.Parameters).
		Int("instances", stats.Instances).
		Msg("fact tables written")

	if deltaFrom != "" {
		prev, err := readTables(deltaFrom)
		if err != nil {
			return fmt.Errorf("reading previous tables: %w", err)
		}
		delta := facts.ComputeDelta(prev, tables)
		deltaData, err := json.MarshalIndent(delta, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling delta: %w", err)
		}
		if err := writeOutput(deltaOut, deltaData); err != nil {
			return err
		}
	}

	return nil
}

func loadConfig(root, configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load(root)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func readTables(path string) (facts.Tables, error) {
	var tables facts.Tables
	data, err := os.ReadFile(path)
	if err != nil {
		return tables, err
	}
	if err := json.Unmarshal(data, &tables); err != nil {
		return tables, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tables, nil
}
