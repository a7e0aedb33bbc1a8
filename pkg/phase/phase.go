// SPDX-License-Identifier: BSD-3-Clause

package phase

import (
	"context"
	"fmt"

	"github.com/qmuntal/stateless"
)

// Phase names. The machine is deliberately tiny: warm-up is one-way and a
// sensor fault is not a phase (the supervisor forces the heater safe without
// leaving the current phase, so recovery needs no transition).
const (
	ColdStart = "coldstart"
	Warm      = "warm"
)

// TriggerBoilerHot fires when a trusted reading exceeds the target while
// still in the cold-start phase.
const TriggerBoilerHot = "boiler-hot"

// WarmAction runs on entry to the warm phase. The supervisor uses it to push
// the warm gains into the live PID and flip the snapshot flag.
type WarmAction func(ctx context.Context) error

// Machine is the warm-up phase machine of the control supervisor.
type Machine struct {
	sm *stateless.StateMachine
}

// New creates the phase machine. With cold start disabled the machine begins
// directly in the warm phase and the warm action never runs — the initial
// gains are already the warm set.
func New(coldStartEnabled bool, onWarm WarmAction) *Machine {
	initial := Warm
	if coldStartEnabled {
		initial = ColdStart
	}

	sm := stateless.NewStateMachine(initial)

	sm.Configure(ColdStart).
		Permit(TriggerBoilerHot, Warm)

	sm.Configure(Warm).
		OnEntry(func(ctx context.Context, _ ...any) error {
			if onWarm != nil {
				return onWarm(ctx)
			}
			return nil
		}).
		Ignore(TriggerBoilerHot)

	return &Machine{sm: sm}
}

// BoilerHot drives the cold-to-warm transition. Firing while already warm is
// ignored, so the caller does not need to guard repeated hot readings.
func (m *Machine) BoilerHot(ctx context.Context) error {
	if err := m.sm.FireCtx(ctx, TriggerBoilerHot); err != nil {
		return fmt.Errorf("%w: %w", ErrTransitionFailed, err)
	}
	return nil
}

// InColdStart reports whether warm-up is still in progress.
func (m *Machine) InColdStart() bool {
	return m.sm.MustState() == ColdStart
}

// Current returns the current phase name.
func (m *Machine) Current() string {
	state := m.sm.MustState()
	s, ok := state.(string)
	if !ok {
		return fmt.Sprint(state)
	}
	return s
}
