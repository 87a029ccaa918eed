package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"routeplan/config"
	"routeplan/export"
	"routeplan/genetic"
	"routeplan/pathfinding"
	"routeplan/render"
	"routeplan/server"
)

// Mode selects which planners run.
type Mode string

const (
	ModeGrid   Mode = "grid"
	ModeEvolve Mode = "evolve"
	ModeBoth   Mode = "both"
)

func parseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGrid, ModeEvolve, ModeBoth:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want grid, evolve or both)", s)
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("routeplan: ")

	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("routeplan", flag.ContinueOnError)

	var (
		configFile  = fs.String("config", "", "Scenario JSON file (default: built-in scenario)")
		envFile     = fs.String("env", "", "Load ROUTEPLAN_* overrides from a .env file")
		mode        = fs.String("mode", "both", "Planner to run: grid, evolve or both")
		format      = fs.String("format", "", "Export format: "+formatList()+" (default: print paths)")
		outputFile  = fs.String("o", "", "Output file (default: stdout)")
		interactive = fs.Bool("i", false, "Show the routes in an interactive terminal viewer")
		serveAddr   = fs.String("serve", "", "Serve the HTTP API on this address instead of planning")
		seed        = fs.Uint64("seed", 0, "Random seed for the evolutionary planner (0 = random)")
		tolerance   = fs.Float64("tolerance", pathfinding.DefaultTolerance, "Simplification tolerance")
		generations = fs.Int("generations", 0, "Number of generations for the evolutionary planner")
		verbose     = fs.Bool("v", false, "Log evolutionary progress per generation")
		help        = fs.Bool("help", false, "Show help")
	)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintf(fs.Output(), "Plans obstacle-avoiding routes with a grid search and an evolutionary planner.\n\n")
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nExamples:\n")
		fmt.Fprintf(fs.Output(), "  %s                              # Plan the built-in scenario\n", fs.Name())
		fmt.Fprintf(fs.Output(), "  %s -i -seed 7                   # View both routes in the terminal\n", fs.Name())
		fmt.Fprintf(fs.Output(), "  %s -format png -o routes.png    # Plot routes\n", fs.Name())
		fmt.Fprintf(fs.Output(), "  %s -serve :8080                 # Start the HTTP API\n", fs.Name())
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *help {
		fs.Usage()
		return nil
	}

	scenario, err := loadScenario(*configFile, *envFile)
	if err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			scenario.Evolution.Seed = *seed
		case "tolerance":
			scenario.Simplify.Tolerance = *tolerance
		case "generations":
			scenario.Evolution.Generations = *generations
		}
	})
	if err := scenario.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serveAddr != "" {
		srv, err := server.New(scenario)
		if err != nil {
			return err
		}
		log.Printf("serving on %s", *serveAddr)
		return srv.Run(ctx, *serveAddr)
	}

	m, err := parseMode(*mode)
	if err != nil {
		return err
	}

	report, err := plan(ctx, scenario, m, *verbose)
	if err != nil {
		return err
	}

	if *interactive {
		return view(ctx, report)
	}
	return writeReport(report, *format, *outputFile)
}

// formatList joins the export format names for help text.
func formatList() string {
	formats := export.GetAvailableFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func loadScenario(configFile, envFile string) (config.Scenario, error) {
	scenario := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return scenario, err
		}
		scenario = loaded
	}
	if envFile != "" {
		if err := config.LoadEnv(envFile); err != nil {
			return scenario, err
		}
	}
	if err := config.ApplyEnv(&scenario, nil); err != nil {
		return scenario, err
	}
	return scenario, nil
}

// plan runs the selected planners and collects their routes.
func plan(ctx context.Context, scenario config.Scenario, mode Mode, verbose bool) (*export.Report, error) {
	report := export.NewReport(scenario.Window, scenario.ObstacleSet())

	if mode == ModeGrid || mode == ModeBoth {
		result, err := scenario.RoutePlanner().Plan(ctx, scenario.Checkpoints, scenario.GridChecker())
		if err != nil {
			return nil, fmt.Errorf("grid route: %w", err)
		}
		report.Checkpoints = scenario.Checkpoints
		report.AddGridRoute(result)
	}

	if mode == ModeEvolve || mode == ModeBoth {
		planner, err := scenario.EvolutionPlanner()
		if err != nil {
			return nil, err
		}
		if verbose {
			planner.SetObserver(func(pop *genetic.Population) {
				log.Printf("generation %d: best length %.2f, mean fitness %.6f",
					pop.Generation, pop.Stats.BestLength, pop.Stats.MeanFitness)
			})
		}
		result, err := planner.Run(ctx, scenario.Start, scenario.End)
		if err != nil {
			return nil, fmt.Errorf("evolved route: %w", err)
		}
		report.AddEvolvedRoute(result)
	}

	return report, nil
}

// writeReport exports the report, or prints every path and its length when
// no format is given.
func writeReport(report *export.Report, format, outputFile string) error {
	var out io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if format == "" {
		for _, route := range report.Routes {
			fmt.Fprintf(out, "%s: %s\n", route.Kind, pathfinding.PathToString(route.Path))
		}
		_, err := io.WriteString(out, report.Summary())
		return err
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	exporter, err := export.NewExporter(f)
	if err != nil {
		return err
	}
	if ascii, ok := exporter.(*export.ASCIIExporter); ok && outputFile == "" {
		ascii.Glyphs = render.DetectCapabilities(nil).Glyphs()
	}
	if err := exporter.Export(out, report); err != nil {
		return fmt.Errorf("failed to export %s: %w", exporter.GetFormatName(), err)
	}
	if outputFile != "" {
		log.Printf("exported %s to %s", exporter.GetFormatName(), outputFile)
	}
	return nil
}

func view(ctx context.Context, report *export.Report) error {
	caps := render.DetectCapabilities(nil)
	viewer, err := render.OpenTerminal(report.SceneWith(caps.Glyphs()))
	if err != nil {
		return err
	}
	defer viewer.Close()
	viewer.SetColor(caps.Color)

	status := "q/Esc to quit"
	for _, route := range report.Routes {
		status += fmt.Sprintf("  %s %.1f", route.Kind, route.Length)
	}
	viewer.SetStatus(status)
	return viewer.Run(ctx)
}
