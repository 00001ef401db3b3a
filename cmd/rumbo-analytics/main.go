package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/transitlab/rumbo/internal/transmilenio"
	"github.com/transitlab/rumbo/pkg/rumbo/analytics"
	"github.com/transitlab/rumbo/pkg/rumbo/inference/astar"
	"github.com/transitlab/rumbo/pkg/rumbo/netfile"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
	"github.com/transitlab/rumbo/pkg/rumbo/report"
)

func main() {
	var (
		networkPath = flag.String("network", "", "Network definition file (YAML)")
		demo        = flag.Bool("demo", false, "Analyze the built-in TransMilenio demo network")
		sampleList  = flag.String("sample", "", "Comma-separated subset of stations to analyze")
		comparePair = flag.String("compare", "", "Compare search strategies for one pair: 'Origin, Destination'")
		penalty     = flag.Float64("penalty", astar.DefaultTransferPenalty, "Cost added per line change")
		format      = flag.String("format", "json", "Output format: json or markdown")
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
	logger.Info("network loaded",
		zap.String("network", net.Name()),
		zap.Int("stations", net.NumStations()))

	informed := astar.New(net).WithTransferPenalty(*penalty)

	if *comparePair != "" {
		origin, destination, ok := splitPair(*comparePair)
		if !ok {
			logger.Fatal("parse compare pair", zap.String("pair", *comparePair))
		}
		baseline := astar.New(net).WithTransferPenalty(*penalty).WithoutHeuristic()
		c, err := analytics.Compare(origin, destination, informed, baseline)
		if err != nil {
			logger.Fatal("compare searches", zap.Error(err))
		}
		logger.Info("comparison complete",
			zap.Bool("costs_match", c.CostsMatch),
			zap.Int("nodes_saved", c.NodesSaved))
		if err := report.ComparisonText(os.Stdout, c); err != nil {
			logger.Fatal("render comparison", zap.Error(err))
		}
		return
	}

	rep, err := analytics.New(net, informed).AllPairs(parseSample(*sampleList)...)
	if err != nil {
		logger.Fatal("analyze network", zap.Error(err))
	}
	logger.Info("analysis complete",
		zap.String("run_id", rep.RunID),
		zap.Int("pairs", rep.Summary.PairsAttempted),
		zap.Int("found", rep.Summary.RoutesFound),
		zap.Float64("success_rate", rep.Summary.SuccessRate))

	if err := renderReport(os.Stdout, *format, rep); err != nil {
		logger.Fatal("render report", zap.Error(err))
	}
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

// parseSample splits a comma-separated station list, dropping empty
// entries. An empty list means all stations.
func parseSample(list string) []string {
	if list == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func renderReport(w io.Writer, format string, r analytics.Report) error {
	switch format {
	case "json":
		return report.JSON(w, r)
	case "markdown":
		return report.Markdown(w, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func splitPair(line string) (origin, destination string, ok bool) {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	origin = strings.TrimSpace(parts[0])
	destination = strings.TrimSpace(parts[1])
	if origin == "" || destination == "" {
		return "", "", false
	}
	return origin, destination, true
}
