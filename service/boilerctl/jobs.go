// SPDX-License-Identifier: BSD-3-Clause

package boilerctl

import (
	"context"
	"time"
)

// job is one periodic task of the control loop. Jobs re-arm from their
// originally intended deadline, not from completion time, so long-term drift
// stays bounded; deadlines missed while another job ran coalesce into a
// single catch-up run.
type job struct {
	name   string
	period time.Duration
	next   time.Time
	run    func(ctx context.Context)
}

// runJobs executes MeasureTemp and DriveHeater serially on one goroutine
// until the context is canceled. Serialisation is what makes the shared
// actuator and the snapshot's single-writer rule hold without locks.
func (s *BoilerCtl) runJobs(ctx context.Context) {
	now := time.Now()
	// Order matters at coinciding deadlines: the temperature must be in the
	// snapshot before the actuator tick consumes it.
	jobs := []*job{
		{name: "measure-temp", period: s.config.measureInterval, next: now, run: s.measureTemp},
		{name: "drive-heater", period: s.config.heaterTick, next: now, run: s.driveHeater},
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		due := jobs[0]
		for _, j := range jobs[1:] {
			if j.next.Before(due.next) {
				due = j
			}
		}

		delay := time.Until(due.next)
		if delay < 0 {
			delay = 0
		}
		timer.Reset(delay)

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		due.run(ctx)

		due.next = due.next.Add(due.period)
		if now := time.Now(); due.next.Before(now) {
			missed := int64(now.Sub(due.next) / due.period)
			due.next = due.next.Add(time.Duration(missed+1) * due.period)
		}
	}
}

// measureTemp is the 500 ms job: read the sensor, update the snapshot, drive
// the phase transition and pet the watchdog. A failed read forces the heater
// safe and latches the fault flag for DriveHeater; the temperature in the
// snapshot keeps its last good value.
func (s *BoilerCtl) measureTemp(ctx context.Context) {
	temp, err := s.sensor.Read(ctx)
	if err != nil {
		if !s.sensorFault {
			s.logger.WarnContext(ctx, "Boiler sensor fault, forcing heater off", "error", err)
		}
		s.sensorFault = true

		if offErr := s.heater.TurnOff(); offErr != nil {
			s.logger.ErrorContext(ctx, "Failed to force heater off", "error", offErr)
		}
		s.config.snap.SetHeaterOn(false)
	} else {
		if s.sensorFault {
			s.logger.InfoContext(ctx, "Boiler sensor recovered", "temperature", temp)
		}
		s.sensorFault = false
		s.config.snap.SetCurrentTemp(temp)

		if s.phases.InColdStart() && temp > s.config.snap.TargetTemp() {
			if err := s.phases.BoilerHot(ctx); err != nil {
				s.logger.ErrorContext(ctx, "Warm transition failed", "error", err)
			}
		}

		s.publishReading(ctx)
	}

	// The pet happens last: it certifies a full pass through sensor access
	// and phase logic, fault or not. A sensor fault is a degraded mode, not
	// a reason to reboot the machine every three seconds.
	if s.config.wdt != nil {
		if err := s.config.wdt.Pet(); err != nil {
			s.logger.ErrorContext(ctx, "Failed to pet watchdog", "error", err)
		}
	}

	if s.iterations != nil {
		s.iterations.Add(ctx, 1)
	}
}

// driveHeater is the 20 ms job: one actuator tick from the newest snapshot
// temperature. While the sensor fault flag is latched the pin is held low
// instead — the last good temperature is not a licence to keep heating. Pin
// errors are logged and ignored; the next tick retries, and a genuinely
// stuck control path is the watchdog's problem.
func (s *BoilerCtl) driveHeater(ctx context.Context) {
	if s.sensorFault {
		if err := s.heater.TurnOff(); err != nil {
			s.logger.DebugContext(ctx, "Heater pin access failed during fault hold", "error", err)
		}
		s.config.snap.SetHeaterOn(false)
		return
	}

	on, err := s.heater.Control(s.config.snap.CurrentTemp())
	if err != nil {
		s.logger.DebugContext(ctx, "Heater pin access failed", "error", err)
	} else {
		s.config.snap.SetHeaterOn(on)
	}
	s.config.snap.SetLastOutput(s.heater.LastOutput())
}
