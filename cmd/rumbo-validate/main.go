package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/transitlab/rumbo/internal/transmilenio"
	"github.com/transitlab/rumbo/pkg/rumbo/netfile"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
)

func main() {
	var (
		networkPath = flag.String("network", "", "Network definition file (YAML)")
		demo        = flag.Bool("demo", false, "Validate the built-in TransMilenio demo network")
		verbose     = flag.Bool("verbose", false, "Development logging")
	)
	flag.Parse()

	if *networkPath == "" && !*demo {
		log.Fatal("--network or --demo required")
	}

	logger := newLogger(*verbose)
	defer func() { _ = logger.Sync() }()

	net, err := loadNetwork(*networkPath)
	if err != nil {
		logger.Fatal("load network", zap.String("path", *networkPath), zap.Error(err))
	}

	violations := net.Validate()
	printFindings(os.Stdout, net, violations)

	if len(violations) > 0 {
		logger.Warn("network inconsistent",
			zap.String("network", net.Name()),
			zap.Int("violations", len(violations)))
		os.Exit(1)
	}
	logger.Info("network consistent",
		zap.String("network", net.Name()),
		zap.Int("stations", net.NumStations()),
		zap.Int("connections", net.NumConnections()))
}

func newLogger(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return logger
}

func loadNetwork(path string) (*network.Network, error) {
	if path == "" {
		return transmilenio.New(), nil
	}
	f, err := netfile.Load(path)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

// printFindings writes one line per violation, or a confirmation when
// the network is clean.
func printFindings(w io.Writer, n *network.Network, violations []network.Violation) {
	if len(violations) == 0 {
		fmt.Fprintf(w, "%s: consistent (%d stations, %d connections)\n",
			n.Name(), n.NumStations(), n.NumConnections())
		return
	}
	fmt.Fprintf(w, "%s: %d violation(s)\n", n.Name(), len(violations))
	for _, v := range violations {
		fmt.Fprintf(w, "  [%s] %s\n", v.Kind, v.Detail)
	}
}
