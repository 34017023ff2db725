// internal/benchmark/runner.go
// Package benchmark times repeated predictor runs and reduces them to latency statistics.
package benchmark

import (
	"errors"
	"fmt"
	"time"
)

// now is swapped in tests to make timings deterministic.
var now = time.Now

// State is a step of the benchmark lifecycle.
type State int

const (
	StateIdle State = iota
	StateWarmup
	StateMeasuring
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWarmup:
		return "warmup"
	case StateMeasuring:
		return "measuring"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Runnable is the part of a predictor the runner drives.
type Runnable interface {
	Run() error
}

// InferenceError wraps a failed predictor run.
type InferenceError struct {
	Phase     State
	Iteration int
	Err       error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed during %s iteration %d: %v", e.Phase, e.Iteration, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// Runner executes Warmup untimed runs followed by Repeats timed runs.
// A Runner is single use and not safe for concurrent use.
type Runner struct {
	Warmup  int
	Repeats int

	// OnPhase, when set, is called on every state transition.
	OnPhase func(State)

	state State
}

// NewRunner creates an idle runner.
func NewRunner(warmup, repeats int) *Runner {
	return &Runner{Warmup: warmup, Repeats: repeats}
}

// State returns the lifecycle step the runner is in.
func (r *Runner) State() State { return r.state }

func (r *Runner) enter(s State) {
	r.state = s
	if r.OnPhase != nil {
		r.OnPhase(s)
	}
}

// Run drives p through warmup and measurement. The returned series always has
// exactly Repeats samples; warmup runs are never recorded. The first failing run
// aborts the benchmark.
func (r *Runner) Run(p Runnable) (TimingSeries, error) {
	if r.state != StateIdle {
		return nil, fmt.Errorf("runner already used (state %s)", r.state)
	}
	if p == nil {
		return nil, errors.New("runner needs a predictor")
	}
	if r.Warmup < 0 || r.Repeats < 0 {
		return nil, fmt.Errorf("warmup and repeats must be non-negative, got %d and %d", r.Warmup, r.Repeats)
	}

	r.enter(StateWarmup)
	for i := 0; i < r.Warmup; i++ {
		if err := p.Run(); err != nil {
			return nil, &InferenceError{Phase: StateWarmup, Iteration: i + 1, Err: err}
		}
	}

	r.enter(StateMeasuring)
	series := make(TimingSeries, 0, r.Repeats)
	for i := 0; i < r.Repeats; i++ {
		start := now()
		err := p.Run()
		end := now()
		if err != nil {
			return nil, &InferenceError{Phase: StateMeasuring, Iteration: i + 1, Err: err}
		}
		series = append(series, toMillis(end.Sub(start)))
	}

	r.enter(StateDone)
	return series, nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
