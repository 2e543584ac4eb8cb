package wuxing

import (
	"fmt"

	"github.com/rs/zerolog"
)

// lastMutatingStep is the final stage that writes to the node graph; Steps 8
// and 9 only read.
const lastMutatingStep = 7

// Engine runs the nine-stage point-flow analysis. The zero value is not
// usable; construct with NewEngine. Engines hold no per-chart state, so one
// Engine may serve any number of concurrent Analyze calls as long as each
// call owns its input.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine returns an engine that logs nowhere.
func NewEngine() *Engine {
	return &Engine{logger: zerolog.Nop()}
}

// NewEngineWithLogger returns an engine emitting debug-level stage traces.
func NewEngineWithLogger(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Analyze runs the full pipeline on one chart input and assembles the
// report. The input is never mutated.
func (e *Engine) Analyze(in *Input) (*Result, error) {
	st, err := NewState(in)
	if err != nil {
		return nil, err
	}

	for step := 1; step <= lastMutatingStep; step++ {
		if err := st.runStep(step); err != nil {
			return nil, err
		}
		e.logger.Debug().
			Int("step", step).
			Int("interactions", len(st.Interactions)).
			Int("bonus_nodes", len(st.BonusNodes)).
			Msg("stage complete")
	}

	totals, summary := st.aggregate()
	dm := st.Pillars[PillarDay].Stem.Element()
	gods := assignGods(st, totals, dm)

	res := assembleResult(st, summary, gods)

	chip, err := ChartChip(in)
	if err != nil {
		return nil, err
	}
	res.Chip = chip

	canonical, err := CanonicalResult(res)
	if err != nil {
		return nil, fmt.Errorf("failed to build canonical result: %w", err)
	}
	res.Digest = ReportDigest(canonical)

	secret, err := LoadSecretKey()
	if err != nil {
		return nil, err
	}
	if secret != nil {
		sig, err := SignReport(canonical, secret)
		if err != nil {
			return nil, err
		}
		res.Signature = sig
	}

	res.Code = EncodeChartCode(res)

	e.logger.Debug().
		Str("chip", res.Chip).
		Str("strength", res.DayMaster.Strength).
		Msg("analysis complete")

	return res, nil
}

// AnalyzeUpToStep validates the input, runs Step 0 and then exactly the
// stages 1..step in order, and returns the resulting state. It exists for
// callers that need to observe intermediate stage output; step must be
// between 0 and 7.
func (e *Engine) AnalyzeUpToStep(in *Input, step int) (*State, error) {
	if step < 0 || step > lastMutatingStep {
		return nil, fmt.Errorf("%w: step %d out of range", ErrInvalidInput, step)
	}
	st, err := NewState(in)
	if err != nil {
		return nil, err
	}
	for k := 1; k <= step; k++ {
		if err := st.runStep(k); err != nil {
			return nil, err
		}
	}
	return st, nil
}
