// SPDX-License-Identifier: BSD-3-Clause

package pid

import "time"

// Direction selects whether a growing output drives the process value up or
// down. A heater is Direct: more output means more heat.
type Direction int

const (
	// Direct means output and process value move in the same direction.
	Direct Direction = iota
	// Reverse means output and process value move in opposite directions.
	Reverse
)

// Proportional selects the source of the proportional term.
type Proportional int

const (
	// OnError applies kp to the setpoint error. Classic behaviour, kicks on
	// setpoint changes.
	OnError Proportional = iota
	// OnMeasurement folds kp into the integrator via the measurement delta,
	// eliminating the kick. Used during warm-up where the setpoint error is
	// huge.
	OnMeasurement
)

// Mode selects whether Compute produces output.
type Mode int

const (
	// Manual suspends the controller; Compute returns ErrNotReady.
	Manual Mode = iota
	// Automatic runs the control law on every Compute.
	Automatic
)

const (
	defaultSampleTime = 100 * time.Millisecond
	defaultOutMin     = 0.0
	defaultOutMax     = 255.0
)

// Controller is a discrete PID controller with integrator clamping,
// selectable proportional source and bumpless re-tuning. The effective gains
// are stored pre-scaled by the sample period so Compute stays branch-free on
// the hot path. All state is single precision to match the sensor and
// actuator resolution.
//
// Controller is not safe for concurrent use; the control loop owns it.
type Controller struct {
	direction  Direction
	pon        Proportional
	kp         float32
	ki         float32
	kd         float32
	setpoint   float32
	lastInput  float32
	inAuto     bool
	outputSum  float32
	outMin     float32
	outMax     float32
	sampleTime time.Duration
}

// New creates a controller in Manual mode with output limits [0, 255] and a
// 100 ms sample period. Callers adjust limits, period and mode afterwards;
// the heater actuator does exactly that during its setup.
func New(setpoint, kp, ki, kd float32, pon Proportional, dir Direction) *Controller {
	c := &Controller{
		direction:  Direct,
		pon:        OnError,
		setpoint:   setpoint,
		sampleTime: defaultSampleTime,
	}

	_ = c.SetOutputLimits(defaultOutMin, defaultOutMax)
	c.SetDirection(dir)
	_ = c.SetTunings(kp, ki, kd, pon)

	return c
}

// Compute runs one control step for the given process value and returns the
// clamped output. It returns ErrNotReady in Manual mode, leaving all state
// untouched.
func (c *Controller) Compute(input float32) (float32, error) {
	if !c.inAuto {
		return 0, ErrNotReady
	}

	err := c.setpoint - input
	dInput := input - c.lastInput
	c.outputSum += c.ki * err

	if c.pon == OnMeasurement {
		c.outputSum -= c.kp * dInput
	}

	// Clamping the integrator, not just the output, is the anti-windup.
	if c.outputSum > c.outMax {
		c.outputSum = c.outMax
	} else if c.outputSum < c.outMin {
		c.outputSum = c.outMin
	}

	var output float32
	if c.pon == OnError {
		output = c.kp * err
	}

	output += c.outputSum - c.kd*dInput

	if output > c.outMax {
		output = c.outMax
	} else if output < c.outMin {
		output = c.outMin
	}

	c.lastInput = input

	return output, nil
}

// SetTunings updates the user-facing gains and the proportional source.
// Negative gains are rejected without touching any state. The effective
// integral and derivative gains absorb the sample period, so user tunings
// keep their per-second meaning regardless of the loop rate.
func (c *Controller) SetTunings(kp, ki, kd float32, pon Proportional) error {
	if kp < 0 || ki < 0 || kd < 0 {
		return ErrNegativeTuning
	}

	c.pon = pon
	sampleTimeSec := float32(c.sampleTime.Seconds())
	c.kp = kp
	c.ki = ki * sampleTimeSec
	c.kd = kd / sampleTimeSec

	if c.direction == Reverse {
		c.kp = -c.kp
		c.ki = -c.ki
		c.kd = -c.kd
	}

	return nil
}

// SetSampleTime rescales the effective integral and derivative gains by the
// ratio of the new to the old period, so the tunings passed to SetTunings
// retain their physical meaning. Non-positive periods are rejected.
func (c *Controller) SetSampleTime(sampleTime time.Duration) error {
	if sampleTime <= 0 {
		return ErrInvalidSampleTime
	}

	ratio := float32(sampleTime) / float32(c.sampleTime)
	c.ki *= ratio
	c.kd /= ratio
	c.sampleTime = sampleTime

	return nil
}

// SetOutputLimits constrains both the output and the integrator. A min not
// strictly below max is rejected without touching any state.
func (c *Controller) SetOutputLimits(outMin, outMax float32) error {
	if outMin >= outMax {
		return ErrInvalidLimits
	}

	c.outMin = outMin
	c.outMax = outMax

	if c.inAuto {
		if c.outputSum > c.outMax {
			c.outputSum = c.outMax
		} else if c.outputSum < c.outMin {
			c.outputSum = c.outMin
		}
	}

	return nil
}

// SetMode switches between Manual and Automatic. The Manual to Automatic
// transition is bumpless: the integrator is re-clamped into the output
// limits and the measurement history refreshes on the next Compute.
func (c *Controller) SetMode(mode Mode) {
	newAuto := mode == Automatic
	if newAuto && !c.inAuto {
		c.initialize()
	}
	c.inAuto = newAuto
}

// SetDirection flips the sign of the effective gains in place when changed
// while Automatic, so the running integrator keeps its meaning.
func (c *Controller) SetDirection(direction Direction) {
	if c.inAuto && c.direction != direction {
		c.kp = -c.kp
		c.ki = -c.ki
		c.kd = -c.kd
	}
	c.direction = direction
}

// Setpoint returns the current setpoint.
func (c *Controller) Setpoint() float32 {
	return c.setpoint
}

// SetSetpoint updates the target process value.
func (c *Controller) SetSetpoint(setpoint float32) {
	c.setpoint = setpoint
}

// Mode reports whether the controller is currently Automatic.
func (c *Controller) Mode() Mode {
	if c.inAuto {
		return Automatic
	}
	return Manual
}

func (c *Controller) initialize() {
	if c.outputSum > c.outMax {
		c.outputSum = c.outMax
	} else if c.outputSum < c.outMin {
		c.outputSum = c.outMin
	}
}
