package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/caddie-sim/caddie-sim/aim"
	"github.com/caddie-sim/caddie-sim/aim/runner"
)

var evalPath string // YAML expected-strokes job file

// EvalSample is one pre-resolved dispersion sample: where the ball lands
// and what it lands on.
type EvalSample struct {
	Lon   float64 `yaml:"lon"`
	Lat   float64 `yaml:"lat"`
	Class string  `yaml:"class"`
}

// EvalJobConfig is the YAML shape of a standalone expected-strokes job.
type EvalJobConfig struct {
	Pin        aim.GeoPoint `yaml:"pin"`
	MinSamples int          `yaml:"min_samples"`
	MaxSamples int          `yaml:"max_samples"`
	Epsilon    float64      `yaml:"epsilon"`
	Samples    []EvalSample `yaml:"samples"`
}

// toRequest converts the YAML job to an EvalRequest, resolving class names.
func (c *EvalJobConfig) toRequest() (aim.EvalRequest, error) {
	points := make([]aim.GeoPoint, len(c.Samples))
	classes := make([]aim.TerrainClass, len(c.Samples))
	for i, s := range c.Samples {
		class, err := aim.ParseTerrainClass(s.Class)
		if err != nil {
			return aim.EvalRequest{}, fmt.Errorf("sample %d: %w", i, err)
		}
		points[i] = aim.GeoPoint{Lon: s.Lon, Lat: s.Lat}
		classes[i] = class
	}
	return aim.EvalRequest{
		Pin:        c.Pin,
		Points:     points,
		Classes:    classes,
		MinSamples: c.MinSamples,
		MaxSamples: c.MaxSamples,
		Epsilon:    c.Epsilon,
	}, nil
}

// evaluateCmd runs one expected-strokes evaluation as an independent job
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Estimate expected strokes for a pre-generated dispersion cloud",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if evalPath == "" {
			logrus.Fatalf("Evaluation job file not provided. Exiting.")
		}
		data, err := os.ReadFile(evalPath)
		if err != nil {
			logrus.Fatalf("Unable to read evaluation job: %v", err)
		}
		var cfg EvalJobConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Fatalf("Unable to parse evaluation job: %v", err)
		}

		req, err := cfg.toRequest()
		if err != nil {
			logrus.Fatalf("Bad evaluation job: %v", err)
		}
		result, err := runner.NewRunner().EvaluateStrokes(req)
		if err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}

		fmt.Println("=== Expected Strokes ===")
		fmt.Printf("Mean                 : %.3f\n", result.Mean)
		fmt.Printf("CI95 Half-Width      : %.3f\n", result.CI95)
		fmt.Printf("Samples Used         : %d\n", result.N)
		printHistogram(result.Histogram)
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evalPath, "job", "", "YAML expected-strokes job file")
	evaluateCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(evaluateCmd)
}
