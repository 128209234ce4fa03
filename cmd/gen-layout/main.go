/*
 * gen-layout runs the spring embedder on the graph received on stdin in json
 * format and writes the graph with computed positions to stdout
 */
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/cose-layout/layout"
)

type Config struct {
	Production bool `env:"PRODUCTION" envDefault:"false"`
	// Levels are {trace, debug, info, warn, error, fatal, panic}.
	// See github.com/rs/zerolog@v1.19.0/log.go for possible values.
	LogLevel string `env:"LOGLEVEL" envDefault:"debug"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}

// loadTuning reads SpringEmbedderConfig overrides from a TOML file; values
// not present in the file keep their defaults.
func loadTuning(filename string) (layout.SpringEmbedderConfig, error) {
	tuning := layout.SpringEmbedderConfig{}
	if _, err := toml.DecodeFile(filename, &tuning); err != nil {
		return tuning, errors.Wrapf(err, "failed to load tuning file %s", filename)
	}
	return tuning, nil
}

func run(ctx context.Context, in io.Reader, out io.Writer, layouter layout.Layouter, pngFile string) error {
	graph := layout.Graph{}
	if err := json.NewDecoder(in).Decode(&graph); err != nil {
		return errors.Wrap(err, "failed to decode graph from input")
	}
	positions, stats := layouter.ComputeLayout(ctx, &graph)
	log.Info().Msgf(
		"graph layout computation finished: stats{iterations: %d, time: %d ms}",
		stats.Iterations,
		stats.TotalTime.Milliseconds(),
	)
	for _, node := range graph.Nodes {
		pos := positions[node.ID]
		node.X, node.Y = pos.X, pos.Y
	}
	if pngFile != "" {
		if err := layout.DrawGraph(&graph, positions, pngFile); err != nil {
			return err
		}
	}
	if err := json.NewEncoder(out).Encode(&graph); err != nil {
		return errors.Wrap(err, "failed to encode graph to output")
	}
	return nil
}

func main() {
	tuningFile := flag.String("tuning", "", "TOML file with layout tuning parameters")
	pngFile := flag.String("png", "", "write a debug PNG of the layout to this file")
	flag.Parse()

	conf := GetEnvConfig()
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		println("failed to parse LogLevel: '" + conf.LogLevel + "', setting to debug")
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if !conf.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	tuning := layout.SpringEmbedderConfig{}
	if *tuningFile != "" {
		if tuning, err = loadTuning(*tuningFile); err != nil {
			log.Fatal().Msgf("%v", err)
		}
	}
	ctx := log.Logger.WithContext(context.Background())
	if err := run(ctx, os.Stdin, os.Stdout, layout.NewSpringEmbedder(tuning), *pngFile); err != nil {
		log.Fatal().Msgf("%v", err)
	}
}
