// Command hexbeam reads a hexagonal sliding-tile puzzle from stdin and
// writes a solving move sequence to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/go-logr/stdr"
	"golang.org/x/sync/errgroup"

	"github.com/hexbeam/hexbeam/internal/beam"
	"github.com/hexbeam/hexbeam/internal/hexgeom"
	"github.com/hexbeam/hexbeam/internal/puzzle"
)

var (
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to file")
	width        = flag.Int("width", beam.DefaultMaxWidth, "beam width (max surviving leaves per iteration)")
	maxNodes     = flag.Int("max-nodes", beam.DefaultMaxNodes, "node pool capacity")
	quiet        = flag.Bool("quiet", false, "suppress progress logging")
	dumpGeometry = flag.Bool("dump-geometry", false, "log the board's projected bounding extent before solving")
)

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	stdLog := log.New(os.Stderr, "", log.LstdFlags)
	logger := stdr.New(stdLog)
	if *quiet {
		logger = logger.V(100) // effectively silences Info at our fixed verbosity of 0
	}

	input, err := puzzle.ParseInput(os.Stdin)
	if err != nil {
		return fmt.Errorf("hexbeam: %w", err)
	}

	state, err := puzzle.NewState(input)
	if err != nil {
		return fmt.Errorf("hexbeam: %w", err)
	}

	if *dumpGeometry {
		b := hexgeom.Bound(state.Geometry())
		logger.Info("board geometry", "n", input.N, "bound", b)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver := &beam.Driver{
		MaxWidth: *width,
		MaxNodes: *maxNodes,
		Log:      logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	var solution string
	g.Go(func() error {
		s, err := driver.Solve(gctx, state)
		if err != nil {
			return err
		}
		solution = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("hexbeam: solve: %w", err)
	}

	fmt.Println(solution)
	return nil
}
