// Command gofzn solves FlatZinc models.
//
// Usage:
//
//	gofzn [flags] model.fzn
//
// Flags follow the conventions FlatZinc tools expect:
//
//	-a          print all solutions (satisfy models)
//	-n <count>  stop after this many solutions
//	-t <ms>     time limit in milliseconds
//	-s          print search statistics
//	-config     YAML file with the same options
//	-v          verbose diagnostics on stderr
//
// Output follows the FlatZinc protocol: assignment lines per solution,
// "----------" after each, "==========" when the search completed,
// "=====UNSATISFIABLE=====" when no solution exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gofzn/pkg/flatzinc"
)

func main() {
	allSolutions := flag.Bool("a", false, "print all solutions")
	maxSolutions := flag.Int("n", 0, "stop after this many solutions")
	timeoutMS := flag.Int("t", 0, "time limit in milliseconds")
	statistics := flag.Bool("s", false, "print search statistics")
	configPath := flag.String("config", "", "YAML options file")
	verbose := flag.Bool("v", false, "verbose diagnostics")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gofzn [flags] model.fzn")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := flatzinc.Options{}
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			logger.Error("loading config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		opts = loaded
	}
	// Flags override the config file.
	if *allSolutions {
		opts.AllSolutions = true
	}
	if *maxSolutions > 0 {
		opts.MaxSolutions = *maxSolutions
	}
	if *timeoutMS > 0 {
		opts.TimeoutMS = *timeoutMS
	}
	if *statistics {
		opts.Statistics = true
	}

	solver := flatzinc.NewSolver(opts, logger)
	if err := solver.LoadFile(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := solver.Run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (flatzinc.Options, error) {
	var opts flatzinc.Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing %s: %w", path, err)
	}
	return opts, nil
}
