package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/transitlab/rumbo/internal/transmilenio"
	"github.com/transitlab/rumbo/pkg/rumbo"
	"github.com/transitlab/rumbo/pkg/rumbo/explain"
	"github.com/transitlab/rumbo/pkg/rumbo/inference/astar"
	"github.com/transitlab/rumbo/pkg/rumbo/netfile"
	"github.com/transitlab/rumbo/pkg/rumbo/network"
	"github.com/transitlab/rumbo/pkg/rumbo/report"
)

func main() {
	var (
		networkPath = flag.String("network", "", "Network definition file (YAML)")
		demo        = flag.Bool("demo", false, "Use the built-in TransMilenio demo network")
		from        = flag.String("from", "", "Origin station")
		to          = flag.String("to", "", "Destination station")
		penalty     = flag.Float64("penalty", astar.DefaultTransferPenalty, "Cost added per line change")
		uniform     = flag.Bool("uniform", false, "Disable the distance heuristic (uniform-cost search)")
		format      = flag.String("format", "text", "Output format: text, json or markdown")
		interactive = flag.Bool("interactive", false, "Prompt for station pairs on stdin")
		verbose     = flag.Bool("verbose", false, "Development logging")
	)
	flag.Parse()

	if *networkPath == "" && !*demo {
		log.Fatal("--network or --demo required")
	}
	if !*interactive && (*from == "" || *to == "") {
		log.Fatal("--from and --to required unless --interactive")
	}

	logger := newLogger(*verbose)
	defer func() { _ = logger.Sync() }()

	net, err := loadNetwork(*networkPath)
	if err != nil {
		logger.Fatal("load network", zap.String("path", *networkPath), zap.Error(err))
	}
	logger.Info("network loaded",
		zap.String("network", net.Name()),
		zap.Int("stations", net.NumStations()),
		zap.Int("connections", net.NumConnections()))

	engine := astar.New(net).WithTransferPenalty(*penalty)
	if *uniform {
		engine = engine.WithoutHeuristic()
	}
	r := rumbo.New(rumbo.Options{Network: net, Engine: engine})

	if *interactive {
		runInteractive(r, os.Stdin, os.Stdout, *format)
		return
	}

	e, err := r.Explain(*from, *to)
	if err != nil {
		logger.Fatal("find route",
			zap.String("from", *from),
			zap.String("to", *to),
			zap.Error(err))
	}
	logger.Info("route found",
		zap.String("id", e.ID),
		zap.Float64("cost", e.TotalCost),
		zap.Int("stations", e.Stats.Stations),
		zap.Int("transfers", e.Stats.Transfers),
		zap.Int("nodes_expanded", e.Stats.NodesExpanded))

	if err := render(os.Stdout, *format, e); err != nil {
		logger.Fatal("render route", zap.Error(err))
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

// loadNetwork builds a network from a definition file, or the built-in
// demo network when no path is given.
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

func render(w io.Writer, format string, e explain.Explanation) error {
	switch format {
	case "text":
		return report.RouteText(w, e)
	case "json":
		return report.ExplanationJSON(w, e)
	case "markdown":
		return report.ExplanationMarkdown(w, e)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func runInteractive(r *rumbo.Rumbo, in io.Reader, out io.Writer, format string) {
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintln(out, "  Rumbo Route Finder")
	fmt.Fprintf(out, "  %s\n", r.Network().Name())
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Enter origin and destination separated by ',' (Ctrl+D to exit):")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		origin, destination, ok := splitPair(line)
		if !ok {
			fmt.Fprintln(out, "Use: origin, destination")
			continue
		}

		e, err := r.Explain(origin, destination)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		if err := render(out, format, e); err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "\nGoodbye!")
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
