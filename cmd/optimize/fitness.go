package main

import (
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/pthm-cable/gridwave/clock"
	"github.com/pthm-cable/gridwave/config"
	"github.com/pthm-cable/gridwave/controller"
	"github.com/pthm-cable/gridwave/geom"
	"github.com/pthm-cable/gridwave/grid"
)

// Targets describes the ripple feel the search aims for.
type Targets struct {
	LifetimeSec float64 // Seconds from tap until the wave expires
	Coverage    float64 // Peak share of points moved more than MoveThreshold
}

const (
	frameDur      = time.Second / 60
	maxRunFrames  = 60 * 20
	moveThreshold = 1.0 // px
)

// FitnessEvaluator runs headless taps and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	targets    Targets
	dims       grid.Dimensions

	mu   sync.Mutex
	last runResult
}

// runResult holds what one tap produced.
type runResult struct {
	lifetimeSec  float64
	peakCoverage float64
	overlap      float64 // Peak displacement as a share of half a tile
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
		targets:    targets,
		dims: grid.Dimensions{
			Width:  float64(baseCfg.Screen.Width),
			Height: float64(baseCfg.Screen.Height),
		},
	}
}

// Last returns the seed-averaged result of the most recent evaluation.
func (fe *FitnessEvaluator) Last() (lifetimeSec, coverage float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last.lifetimeSec, fe.last.peakCoverage
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// squared relative miss on each target, plus a penalty when dots are pushed
// into their neighbors' tiles.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runTap(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var avg runResult
	for _, r := range results {
		avg.lifetimeSec += r.lifetimeSec
		avg.peakCoverage += r.peakCoverage
		avg.overlap = math.Max(avg.overlap, r.overlap)
	}
	n := float64(len(results))
	avg.lifetimeSec /= n
	avg.peakCoverage /= n

	fe.mu.Lock()
	fe.last = avg
	fe.mu.Unlock()

	return fitness(avg, fe.targets)
}

func fitness(r runResult, t Targets) float64 {
	dl := (r.lifetimeSec - t.LifetimeSec) / t.LifetimeSec
	dc := (r.peakCoverage - t.Coverage) / t.Coverage
	f := dl*dl + dc*dc
	if r.overlap > 1 {
		f += (r.overlap - 1) * (r.overlap - 1)
	}
	return f
}

// runTap mounts a controller with no surface, taps once at a seeded
// position and steps until the wave expires.
func (fe *FitnessEvaluator) runTap(cfg *config.Config, seed int64) runResult {
	rng := rand.New(rand.NewSource(seed))
	mc := clock.NewManual(time.Unix(0, 0))
	ctrl := controller.New(cfg, mc,
		controller.WithRand(rng),
		controller.WithLogger(slog.New(slog.DiscardHandler)),
	)
	ctrl.Mount(nil, fe.dims)
	defer ctrl.Unmount()

	ev := controller.PointerEvent{
		X: fe.dims.Width * (0.25 + 0.5*rng.Float64()),
		Y: fe.dims.Height * (0.25 + 0.5*rng.Float64()),
	}
	ctrl.PointerDown(ev)
	ctrl.PointerUp(ev)

	var res runResult
	half := cfg.Grid.TileSize / 2
	for frame := 1; frame <= maxRunFrames; frame++ {
		mc.Step(frameDur)

		moved := 0
		points := ctrl.Points()
		for _, p := range points {
			d := geom.Distance(p.OriginX, p.OriginY, p.DisplayX, p.DisplayY)
			if d > moveThreshold {
				moved++
			}
			res.overlap = math.Max(res.overlap, d/half)
		}
		if len(points) > 0 {
			res.peakCoverage = math.Max(res.peakCoverage, float64(moved)/float64(len(points)))
		}

		if len(ctrl.Waves()) == 0 {
			res.lifetimeSec = float64(frame) * frameDur.Seconds()
			return res
		}
	}
	res.lifetimeSec = float64(maxRunFrames) * frameDur.Seconds()
	return res
}

// copyConfig returns a copy of the base config that evaluations may mutate.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
