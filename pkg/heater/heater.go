// SPDX-License-Identifier: BSD-3-Clause

package heater

import (
	"fmt"
	"time"

	"github.com/daschl/espressod/pkg/pid"
)

// Line is the heater GPIO contract. All operations are fallible; failures
// surface as ErrPin but never change the safety posture of the actuator.
// *gpiocdev.Line satisfies this interface directly.
type Line interface {
	SetValue(value int) error
	Value() (int, error)
}

// Heater converts the real-valued PID command into a time-proportioned pulse
// pattern on the heater line: within every window of W milliseconds the pin
// is high for lastOutput milliseconds. Ticked every TickPeriod by the
// control loop, it owns the heater line exclusively; no other component may
// drive that GPIO.
type Heater struct {
	line       Line
	pid        *pid.Controller
	window     int32
	tick       int32
	isrCounter int32
	lastOutput float32
}

// TickPeriod is the cadence at which Control must be called. With the
// default window this yields 50 duty levels, 2% resolution — plenty for a
// thermally massive boiler.
const TickPeriod = 20 * time.Millisecond

// DefaultWindowSize is the default time-proportioning window.
const DefaultWindowSize = time.Second

// Config carries the initial control parameters for a heater.
type Config struct {
	Setpoint   float32
	Kp         float32
	Ki         float32
	Kd         float32
	WindowSize time.Duration
}

// New creates a heater actuator around the given line. The embedded PID is
// configured for the window: output limits [0, W], proportional on
// measurement, direct acting, automatic from the start.
func New(line Line, cfg Config) (*Heater, error) {
	if line == nil {
		return nil, ErrNoLine
	}

	window := cfg.WindowSize
	if window == 0 {
		window = DefaultWindowSize
	}
	if window < TickPeriod {
		return nil, fmt.Errorf("%w: window %v shorter than tick %v", ErrInvalidWindow, window, TickPeriod)
	}

	h := &Heater{
		line:   line,
		window: int32(window / time.Millisecond),
		tick:   int32(TickPeriod / time.Millisecond),
	}

	p := pid.New(cfg.Setpoint, cfg.Kp, cfg.Ki, cfg.Kd, pid.OnMeasurement, pid.Direct)
	if err := p.SetOutputLimits(0, float32(h.window)); err != nil {
		return nil, err
	}
	if err := p.SetSampleTime(window); err != nil {
		return nil, err
	}
	p.SetMode(pid.Automatic)
	h.pid = p

	return h, nil
}

// Control performs one actuator tick: it drives the pin according to the
// invariant pinHigh <=> lastOutput > isrCounter, advances the window
// counter, and at the window boundary recomputes the PID command from the
// given temperature. A not-ready PID leaves the previous command in place.
// The observed pin state is returned.
func (h *Heater) Control(currentTemperature float32) (bool, error) {
	if h.lastOutput > float32(h.isrCounter) {
		if err := h.turnOn(); err != nil {
			return false, err
		}
	} else {
		if err := h.turnOff(); err != nil {
			return false, err
		}
	}

	h.isrCounter += h.tick
	if h.isrCounter >= h.window {
		h.isrCounter = 0
		if output, err := h.pid.Compute(currentTemperature); err == nil {
			h.lastOutput = output
		}
	}

	return h.IsOn()
}

// UpdatePID forwards new tunings to the embedded controller without
// perturbing the running window or the current command. The supervisor uses
// this at the cold-to-warm transition.
func (h *Heater) UpdatePID(kp, ki, kd float32, pon pid.Proportional) error {
	return h.pid.SetTunings(kp, ki, kd, pon)
}

// TurnOff forces the pin low unconditionally. It is idempotent and is the
// only safe-state primitive: the supervisor calls it on every sensor fault
// and on shutdown.
func (h *Heater) TurnOff() error {
	if err := h.line.SetValue(0); err != nil {
		return fmt.Errorf("%w: %w", ErrPin, err)
	}
	return nil
}

// IsOn reports the observed state of the heater pin.
func (h *Heater) IsOn() (bool, error) {
	v, err := h.line.Value()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPin, err)
	}
	return v != 0, nil
}

// LastOutput returns the current PID command in milliseconds of on-time per
// window. Exposed for the telemetry snapshot.
func (h *Heater) LastOutput() float32 {
	return h.lastOutput
}

// WindowSize returns the configured window length.
func (h *Heater) WindowSize() time.Duration {
	return time.Duration(h.window) * time.Millisecond
}

func (h *Heater) turnOn() error {
	on, err := h.IsOn()
	if err != nil {
		return err
	}
	if !on {
		if err := h.line.SetValue(1); err != nil {
			return fmt.Errorf("%w: %w", ErrPin, err)
		}
	}
	return nil
}

func (h *Heater) turnOff() error {
	on, err := h.IsOn()
	if err != nil {
		return err
	}
	if on {
		if err := h.line.SetValue(0); err != nil {
			return fmt.Errorf("%w: %w", ErrPin, err)
		}
	}
	return nil
}
