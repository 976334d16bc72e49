package layout

import (
	"context"
	"time"
)

// Budget bounds how long a simulation may run before it is frozen.
type Budget struct {
	MaxIterations int
	Timeout       time.Duration
}

// DefaultBudget stops after two seconds or 300 ticks, whichever comes first.
func DefaultBudget() Budget {
	return Budget{MaxIterations: 300, Timeout: 2 * time.Second}
}

// HaltReason explains why a run stopped.
type HaltReason string

const (
	HaltIterations HaltReason = "iterations"
	HaltTimeout    HaltReason = "timeout"
	HaltSettled    HaltReason = "settled"
	HaltCanceled   HaltReason = "canceled"
)

// RunResult summarises a driver run.
type RunResult struct {
	Ticks    int           `json:"ticks"`
	Elapsed  time.Duration `json:"elapsed"`
	Reason   HaltReason    `json:"reason"`
	EndAlpha float64       `json:"end_alpha"`
}

// Driver steps a Simulation at full energy until its budget runs out and
// then freezes it.
type Driver struct {
	Budget Budget
	// Now is the clock used for the timeout; nil means time.Now.
	Now func() time.Time
}

// NewDriver returns a driver using the wall clock.
func NewDriver(b Budget) *Driver {
	return &Driver{Budget: b}
}

// Run blocks until the simulation halts. The simulation is always frozen
// on return.
func (d *Driver) Run(ctx context.Context, sim *Simulation) RunResult {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	res := RunResult{}

	defer sim.Freeze()
	for {
		switch {
		case ctx.Err() != nil:
			res.Reason = HaltCanceled
		case d.Budget.MaxIterations > 0 && sim.Ticks() >= d.Budget.MaxIterations:
			res.Reason = HaltIterations
		case d.Budget.Timeout > 0 && now().Sub(start) >= d.Budget.Timeout:
			res.Reason = HaltTimeout
		case sim.Settled():
			res.Reason = HaltSettled
		}
		if res.Reason != "" {
			break
		}
		sim.Step()
	}

	res.Ticks = sim.Ticks()
	res.Elapsed = now().Sub(start)
	res.EndAlpha = sim.Alpha()
	return res
}
