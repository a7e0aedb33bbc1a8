// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import (
	"math"
	"sync/atomic"
)

// State is the shared telemetry register: the newest observed control values,
// written by the control supervisor and read by the display and wireless
// services. It is a latest-value register, not a queue — readers want the
// current sample, never a history.
//
// Each field is an independent atomic. The single-writer discipline (only
// the control goroutine stores) means readers may observe a mix of ages
// across fields but never a torn value within one, which is exactly the
// guarantee the consumers need.
type State struct {
	currentTemp   atomicFloat32
	targetTemp    atomicFloat32
	heaterOn      atomic.Bool
	kp            atomicFloat32
	ki            atomicFloat32
	kd            atomicFloat32
	coldStart     atomic.Bool
	lastOutput    atomicFloat32
	watchdogReset atomic.Bool
}

// New creates the snapshot with the configured target and initial gains.
// The current temperature starts at zero until the first successful read.
func New(targetTemp, kp, ki, kd float32, coldStart bool) *State {
	s := &State{}
	s.targetTemp.Store(targetTemp)
	s.kp.Store(kp)
	s.ki.Store(ki)
	s.kd.Store(kd)
	s.coldStart.Store(coldStart)
	return s
}

// CurrentTemp returns the latest boiler temperature in °C, zero before the
// first read.
func (s *State) CurrentTemp() float32 { return s.currentTemp.Load() }

// SetCurrentTemp stores a new boiler temperature.
func (s *State) SetCurrentTemp(t float32) { s.currentTemp.Store(t) }

// TargetTemp returns the brew setpoint in °C.
func (s *State) TargetTemp() float32 { return s.targetTemp.Load() }

// SetTargetTemp stores a new brew setpoint.
func (s *State) SetTargetTemp(t float32) { s.targetTemp.Store(t) }

// HeaterOn reports the last observed heater pin state.
func (s *State) HeaterOn() bool { return s.heaterOn.Load() }

// SetHeaterOn stores the heater pin state.
func (s *State) SetHeaterOn(on bool) { s.heaterOn.Store(on) }

// Tunings returns the live PID gains.
func (s *State) Tunings() (kp, ki, kd float32) {
	return s.kp.Load(), s.ki.Load(), s.kd.Load()
}

// SetTunings stores the live PID gains.
func (s *State) SetTunings(kp, ki, kd float32) {
	s.kp.Store(kp)
	s.ki.Store(ki)
	s.kd.Store(kd)
}

// InColdStart reports whether the warm-up phase is still active.
func (s *State) InColdStart() bool { return s.coldStart.Load() }

// DisableColdStart marks the warm-up phase complete. One-way.
func (s *State) DisableColdStart() { s.coldStart.Store(false) }

// LastOutput returns the latest PID command in window milliseconds.
func (s *State) LastOutput() float32 { return s.lastOutput.Load() }

// SetLastOutput stores the latest PID command.
func (s *State) SetLastOutput(v float32) { s.lastOutput.Store(v) }

// WatchdogReset reports whether the previous boot ended in a watchdog reset.
func (s *State) WatchdogReset() bool { return s.watchdogReset.Load() }

// SetWatchdogReset stores the boot reset cause, set once at startup.
func (s *State) SetWatchdogReset(v bool) { s.watchdogReset.Store(v) }

// Values is a point-in-time copy of the snapshot, used for rendering and
// for the JSON telemetry broadcast.
type Values struct {
	CurrentTemp   float32 `json:"current_temp"`
	TargetTemp    float32 `json:"target_temp"`
	HeaterOn      bool    `json:"heater_on"`
	Kp            float32 `json:"kp"`
	Ki            float32 `json:"ki"`
	Kd            float32 `json:"kd"`
	ColdStart     bool    `json:"coldstart"`
	LastOutput    float32 `json:"last_output"`
	WatchdogReset bool    `json:"watchdog_reset"`
}

// Load copies all fields. Fields are read individually, so the copy is
// field-granular consistent, which is all consumers rely on.
func (s *State) Load() Values {
	kp, ki, kd := s.Tunings()
	return Values{
		CurrentTemp:   s.CurrentTemp(),
		TargetTemp:    s.TargetTemp(),
		HeaterOn:      s.HeaterOn(),
		Kp:            kp,
		Ki:            ki,
		Kd:            kd,
		ColdStart:     s.InColdStart(),
		LastOutput:    s.LastOutput(),
		WatchdogReset: s.WatchdogReset(),
	}
}

// atomicFloat32 stores float32 bits in a uint32 atomic.
type atomicFloat32 struct {
	bits atomic.Uint32
}

func (a *atomicFloat32) Load() float32 {
	return math.Float32frombits(a.bits.Load())
}

func (a *atomicFloat32) Store(v float32) {
	a.bits.Store(math.Float32bits(v))
}
