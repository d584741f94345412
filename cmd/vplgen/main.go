package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/cgaueb/fakeIR/pkg/config"
	"github.com/cgaueb/fakeIR/pkg/core"
	"github.com/cgaueb/fakeIR/pkg/scene"
	"github.com/cgaueb/fakeIR/pkg/trace"
	"github.com/cgaueb/fakeIR/pkg/vpl"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to YAML config (embedded defaults if empty)")
	outDir := flag.String("out", "output", "Output directory for the generated VPL set")
	seedPos := flag.String("seed", "0,0,0", "Generation seed position as x,y,z (typically the light position)")
	rngSeed := flag.Int64("seed-rng", time.Now().UnixNano(), "Random number generator seed")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("fakeIR VPL Generator")
		fmt.Println("Usage: vplgen [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Traces stochastic light paths through a room scene, clusters the")
		fmt.Println("hits into virtual point lights and writes them to <out>/vpls.csv.")
		return
	}

	var sx, sy, sz float64
	if _, err := fmt.Sscanf(*seedPos, "%f,%f,%f", &sx, &sy, &sz); err != nil {
		fmt.Printf("Error parsing -seed %q: %v\n", *seedPos, err)
		os.Exit(1)
	}
	seed := core.NewVec3(sx, sy, sz)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting VPL generation...")
	fmt.Printf("  Seed position: (%.2f, %.2f, %.2f)\n", sx, sy, sz)
	fmt.Printf("  RNG seed: %d\n", *rngSeed)

	logger := log.New(os.Stdout, "vplgen: ", 0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(*rngSeed)))
	room := scene.NewRoomScene()

	tracer, err := trace.NewTracer(room, cfg.Generator, sampler, logger)
	if err != nil {
		fmt.Printf("Error creating tracer: %v\n", err)
		os.Exit(1)
	}

	startTime := time.Now()
	samples, err := tracer.Generate(seed)
	if err != nil {
		fmt.Printf("Error generating VPLs: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d VPLs in %v\n", len(samples), time.Since(startTime))

	if len(samples) == 0 {
		fmt.Println("No surfaces hit; nothing to export.")
		return
	}

	printReport(samples)

	csvPath := filepath.Join(*outDir, "vpls.csv")
	if err := exportCSV(samples, csvPath); err != nil {
		fmt.Printf("Error writing %s: %v\n", csvPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", csvPath)

	evaluateDemo(samples, cfg.Evaluator, logger)
}

// printReport summarizes the generated set
func printReport(samples []trace.Sample) {
	populations := make([]float64, len(samples))
	ranges := make([]float64, len(samples))
	for i, s := range samples {
		populations[i] = float64(s.Population)
		ranges[i] = s.Range
	}
	sort.Float64s(populations)
	sort.Float64s(ranges)

	popMean, popStd := stat.MeanStdDev(populations, nil)
	rangeMean, rangeStd := stat.MeanStdDev(ranges, nil)

	fmt.Println()
	fmt.Println("Cluster statistics:")
	fmt.Printf("  population: mean %.1f, stddev %.1f, median %.0f, p90 %.0f\n",
		popMean, popStd,
		stat.Quantile(0.5, stat.Empirical, populations, nil),
		stat.Quantile(0.9, stat.Empirical, populations, nil))
	fmt.Printf("  range:      mean %.2f, stddev %.2f, median %.2f\n",
		rangeMean, rangeStd,
		stat.Quantile(0.5, stat.Empirical, ranges, nil))
}

// exportCSV writes the generated samples as a CSV file
func exportCSV(samples []trace.Sample, path string) error {
	rows := make([]trace.SampleCSV, len(samples))
	for i, s := range samples {
		rows[i] = s.ToCSV()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.Marshal(rows, f)
}

// evaluateDemo runs the per-frame evaluator over the generated set with a demo
// spot light, as a sanity pass over the exported data
func evaluateDemo(samples []trace.Sample, cfg vpl.Config, logger *log.Logger) {
	vpls := make([]*vpl.VPLProxy, len(samples))
	for i, s := range samples {
		vpls[i] = &vpl.VPLProxy{
			Position:    s.Position,
			Normal:      s.Direction,
			Reflectance: s.Color,
			Weight:      1,
			Kind:        vpl.LightSpot,
		}
	}

	source := &vpl.SourceLight{
		Position:  core.NewVec3(0, 4, 0),
		Direction: core.NewVec3(0, -1, 0),
		ConeAngle: 0.6,
		Color:     core.NewVec3(1, 0.95, 0.9),
		Intensity: 10,
		Kind:      vpl.LightSpot,
	}

	eval, err := vpl.NewEvaluator(source, vpls, nil, nil, cfg, logger)
	if err != nil {
		fmt.Printf("Error creating evaluator: %v\n", err)
		return
	}

	// One full amortized-weight cycle so weights settle before the report
	frames := len(vpls)*len(vpls) + 1
	for i := 0; i < frames; i++ {
		eval.Evaluate()
	}

	enabled := 0
	total := 0.0
	for _, v := range vpls {
		if v.Enabled {
			enabled++
			total += v.Intensity
		}
	}
	fmt.Println()
	fmt.Printf("Evaluator pass: %d/%d VPLs lit by demo spot, total intensity %.3f\n",
		enabled, len(vpls), total)
}
