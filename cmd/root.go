package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/caddie-sim/caddie-sim/aim"
	"github.com/caddie-sim/caddie-sim/aim/dispersion"
	_ "github.com/caddie-sim/caddie-sim/aim/maskpng" // registers the PNG mask loader
	"github.com/caddie-sim/caddie-sim/aim/runner"
	"github.com/caddie-sim/caddie-sim/aim/trace"
)

var (
	// CLI flags shared across subcommands
	scenarioPath string // YAML scenario (mask descriptor + shot + search config)
	logLevel     string // Log verbosity level
	seed         int64  // Master seed for the search RNG
	traceLevel   string // Search trace level (none, iterations, candidates)
	showMetrics  bool   // Print run metrics after the search
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "caddie-sim",
	Short: "Monte-Carlo aim-point recommender for golf shots",
}

// optimizeCmd runs a full CEM search for the scenario's shot
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search for the aim point minimizing expected strokes",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		if scenarioPath == "" {
			logrus.Fatalf("Scenario file not provided. Exiting.")
		}

		scenario, err := LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Unable to read scenario: %v", err)
		}
		model, err := scenario.SkillModel()
		if err != nil {
			logrus.Fatalf("Bad scenario: %v", err)
		}

		sampler, err := aim.NewTerrainSampler(scenario.Mask, nil)
		if err != nil {
			logrus.Fatalf("Bad mask descriptor: %v", err)
		}
		ctx := context.Background()
		if err := sampler.Ready(ctx); err != nil {
			logrus.Warnf("Terrain mask degraded, results assume rough everywhere: %v", err)
		}

		var st *trace.SearchTrace
		if lvl := trace.TraceLevel(traceLevel); lvl != trace.TraceLevelNone {
			st = trace.NewSearchTrace(trace.TraceConfig{Level: lvl})
		}

		logrus.Infof("Starting search: course=%s carry=%.0fyd iterations=%d batch=%d",
			scenario.CourseID, scenario.Search.MaxCarryYds, scenario.Search.Iterations, scenario.Search.BatchSize)
		startTime := time.Now()

		handle, err := runner.NewRunner().Submit(runner.Job{
			CourseID: scenario.CourseID,
			Pin:      scenario.Shot.Pin,
			Feeds:    dispersion.NewFeeds(scenario.Shot.Start, scenario.Shot.Pin, model, sampler),
			Config:   scenario.Search,
			Seed:     seed,
			Trace:    st,
		})
		if err != nil {
			logrus.Fatalf("Unable to start search: %v", err)
		}
		result, err := handle.Wait(ctx)
		if err != nil {
			logrus.Fatalf("Search interrupted: %v", err)
		}

		printResult(scenario, result, time.Since(startTime))
		if showMetrics {
			result.Metrics.Print()
		}
		if st != nil {
			printTraceSummary(trace.Summarize(st))
		}
	},
}

// printResult displays the search outcome in user terms.
func printResult(scenario *Scenario, result runner.Result, elapsed time.Duration) {
	if errors.Is(result.Err, aim.ErrNoFeasibleAim) {
		fmt.Println("No safe aim point found: every candidate failed the feasibility rule.")
		return
	}
	if result.Err != nil {
		logrus.Fatalf("Search failed: %v", result.Err)
	}

	best := result.Best
	fmt.Println("=== Recommended Aim ===")
	fmt.Printf("Aim Point            : (%.6f, %.6f)\n", best.Aim.Lon, best.Aim.Lat)
	fmt.Printf("Carry                : %.1f yd\n", best.RadiusYds)
	fmt.Printf("Bearing (vs pin line): %.1f deg\n", best.BearingRad*180/math.Pi)
	fmt.Printf("Expected Strokes     : %.3f +/- %.3f (n=%d)\n",
		best.Result.Mean, best.Result.CI95, best.Result.N)
	fmt.Printf("Pin Distance         : %.1f yd\n", aim.YardsBetween(scenario.Shot.Start, scenario.Shot.Pin))
	fmt.Printf("Search Time          : %s\n", elapsed.Round(time.Millisecond))
	printHistogram(best.Result.Histogram)
}

// printHistogram lists the terrain classes the winning cloud landed on.
func printHistogram(hist [aim.NumTerrainClasses]int) {
	fmt.Println("Landing Terrain      :")
	for class, count := range hist {
		if count == 0 {
			continue
		}
		fmt.Printf("  %-8s : %d\n", aim.TerrainClass(class), count)
	}
}

func printTraceSummary(s *trace.TraceSummary) {
	fmt.Println("=== Trace Summary ===")
	fmt.Printf("Iterations           : %d\n", s.TotalIterations)
	fmt.Printf("Candidates           : %d (%d filtered)\n", s.TotalCandidates, s.FilteredOut)
	fmt.Printf("Samples/Evaluation   : %.1f\n", s.MeanSamplesPerEval)
	fmt.Printf("Best ES Trajectory   : %.3f -> %.3f\n", s.FirstBestES, s.FinalBestES)
	fmt.Printf("Final Sigma          : r=%.2fyd th=%.4frad\n", s.FinalSigmaRadius, s.FinalSigmaTheta)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	optimizeCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (mask, shot, search config)")
	optimizeCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the search RNG (same seed, same result)")
	optimizeCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	optimizeCmd.Flags().StringVar(&traceLevel, "trace", "none", "Search trace level (none, iterations, candidates)")
	optimizeCmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print search metrics after the run")

	rootCmd.AddCommand(optimizeCmd)
}
