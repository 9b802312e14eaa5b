package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/gridwave/config"
)

// evalRow is one line of optimize_log.csv.
type evalRow struct {
	Eval               int     `csv:"eval"`
	Fitness            float64 `csv:"fitness"`
	LifetimeSec        float64 `csv:"lifetime_sec"`
	Coverage           float64 `csv:"coverage"`
	CrestVelocity      float64 `csv:"crest_velocity"`
	CrestDecay         float64 `csv:"crest_decay"`
	StrengthWeak       float64 `csv:"strength_weak"`
	PositionResistance float64 `csv:"position_resistance"`
	SizeResistance     float64 `csv:"size_resistance"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 4, "Number of taps per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	lifetime := flag.Float64("lifetime", 1.2, "Target seconds from tap to wave expiry")
	coverage := flag.Float64("coverage", 0.35, "Target peak share of points moved by a tap")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *outputDir == "" {
		logger.Error("--output is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, evalSeeds, baseCfg, Targets{
		LifetimeSec: *lifetime,
		Coverage:    *coverage,
	})

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential; seeds already run in parallel
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	var rows []*evalRow
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fit := evaluator.Evaluate(raw)
			life, cov := evaluator.Last()

			if fit < bestFitness {
				bestFitness = fit
				bestParams = raw
			}
			rows = append(rows, &evalRow{
				Eval:               len(rows) + 1,
				Fitness:            fit,
				LifetimeSec:        life,
				Coverage:           cov,
				CrestVelocity:      raw[0],
				CrestDecay:         raw[1],
				StrengthWeak:       raw[2],
				PositionResistance: raw[3],
				SizeResistance:     raw[4],
			})
			if err := writeLog(logPath, rows); err != nil {
				logger.Error("failed to write log", "error", err)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-len(rows)) * (elapsed / time.Duration(len(rows)))
			logger.Info("eval",
				"n", len(rows),
				"fitness", fit,
				"lifetime_sec", life,
				"coverage", cov,
				"best", bestFitness,
				"elapsed", elapsed.Round(time.Second).String(),
				"eta", remaining.Round(time.Second).String(),
			)
			return fit
		},
	}

	logger.Info("starting CMA-ES",
		"params", dim,
		"population", popSize,
		"max_evals", *maxEvals,
		"seeds", *seeds,
	)
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		logger.Warn("optimization ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		logger.Error("no evaluations completed")
		os.Exit(1)
	}

	best := *baseCfg
	params.ApplyToConfig(&best, bestParams)
	for i, spec := range params.Specs {
		logger.Info("best parameter", "name", spec.Name, "path", spec.Path, "value", bestParams[i])
	}

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := best.WriteYAML(configOutPath); err != nil {
		logger.Error("failed to write best config", "error", err)
		os.Exit(1)
	}
	logger.Info("optimization complete",
		"evals", len(rows),
		"best_fitness", bestFitness,
		"config", configOutPath,
		"duration", time.Since(startTime).Round(time.Second).String(),
	)
}

// writeLog rewrites the evaluation log with every row so far.
func writeLog(path string, rows []*evalRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
