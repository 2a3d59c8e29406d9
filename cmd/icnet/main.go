package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "go.uber.org/automaxprocs"

	"github.com/vic/icnet/pkg/inet"
	"github.com/vic/icnet/pkg/lambda"
)

func main() {
	workers := flag.Int("workers", 0, "reduction worker count (0 = GOMAXPROCS)")
	maxSteps := flag.Uint64("max-steps", 0, "stop after this many rewrite steps (0 = unbounded)")
	dotPath := flag.String("dot", "", "write a Graphviz dot visualization of the arena to this path after reduction")
	traceCap := flag.Int("trace", 0, "capture up to this many TraceEvents (0 = tracing disabled)")
	verbose := flag.Bool("verbose", false, "log at debug level instead of info")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := run(logger, *workers, *maxSteps, *dotPath, *traceCap); err != nil {
		logger.Error().Err(err).Msg("icnet failed")
		os.Exit(1)
	}
}

func run(logger zerolog.Logger, workers int, maxSteps uint64, dotPath string, traceCap int) error {
	src, err := readSource()
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	term, err := lambda.Parse(string(src))
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	net := inet.NewNet(inet.WithLogger(logger))
	if traceCap > 0 {
		net.EnableTrace(traceCap)
	}

	root, err := lambda.Build(net, term)
	if err != nil {
		return fmt.Errorf("building net: %w", err)
	}

	start := time.Now()
	stats, err := net.Reduce(context.Background(), workers, maxSteps)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("reducing: %w", err)
	}

	result := net.Readback(root)
	fmt.Println(result)

	logger.Info().
		Dur("elapsed", elapsed).
		Uint64("beta", stats.BetaReductions).
		Uint64("dup", stats.Duplications).
		Uint64("erase", stats.Erasures).
		Uint64("annihil", stats.Annihilations).
		Msg("reduced to normal form")

	if dotPath != "" {
		if err := writeDot(net, dotPath); err != nil {
			return fmt.Errorf("writing dot: %w", err)
		}
	}
	return nil
}

func readSource() ([]byte, error) {
	if args := flag.Args(); len(args) > 0 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func writeDot(net *inet.Net, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	net.Visualize(f, 0)
	return nil
}
