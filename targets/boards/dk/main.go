// SPDX-License-Identifier: BSD-3-Clause

// The dk board is the development-kit carrier: heater SSR on gpiochip0
// line 10, boiler probe behind the kernel hwmon bridge, SSD1351 panel on
// SPI0. No radio is fitted; the wireless publisher is simply not started.
package main

import (
	"context"
	"runtime/debug"

	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/host"

	"github.com/daschl/espressod/pkg/boiler"
	"github.com/daschl/espressod/pkg/gpio"
	"github.com/daschl/espressod/pkg/snapshot"
	"github.com/daschl/espressod/pkg/watchdog"
	"github.com/daschl/espressod/service/boilerctl"
	"github.com/daschl/espressod/service/displaysrv"
	"github.com/daschl/espressod/service/operator"
)

// Pin map and control constants for this board revision.
const (
	targetTemp  = 95.0
	coldEnabled = true

	gpioChip       = "/dev/gpiochip0"
	heaterLine     = 10
	displaySPIPort = "SPI0.0"
	displayDCPin   = "GPIO25"
	displayRSTPin  = "GPIO24"

	sensorHwmonName = "tsic306"
	watchdogDevice  = watchdog.DefaultDevicePath
)

func main() {
	debug.SetMemoryLimit(64 * 1024 * 1024)

	// Requested output-low: a crash-restart must never glitch the relay on.
	heaterPin, err := gpio.RequestLineByNumber(gpioChip, heaterLine, gpio.AsOutput())
	if err != nil {
		panic(err)
	}

	wdt, err := watchdog.Open(watchdogDevice, watchdog.DefaultTimeout)
	if err != nil {
		panic(err)
	}

	if _, err := host.Init(); err != nil {
		panic(err)
	}

	spiPort, err := spireg.Open(displaySPIPort)
	if err != nil {
		panic(err)
	}

	dc := gpioreg.ByName(displayDCPin)
	rst := gpioreg.ByName(displayRSTPin)
	if dc == nil || rst == nil {
		panic("display control pins not found")
	}

	panel, err := displaysrv.NewSSD1351(spiPort, dc, rst)
	if err != nil {
		panic(err)
	}

	snap := snapshot.New(targetTemp,
		boilerctl.DefaultStartKp, boilerctl.DefaultStartKi, boilerctl.DefaultStartKd,
		coldEnabled)

	if err := operator.New(
		operator.WithIPC(),
		operator.WithBoilerctl(
			boilerctl.WithTargetTemperature(targetTemp),
			boilerctl.WithColdStart(coldEnabled),
			boilerctl.WithHeaterLine(heaterPin),
			boilerctl.WithSensorDriver(boiler.NewHwmonDriver("", sensorHwmonName, "temp1_input")),
			boilerctl.WithSnapshot(snap),
			boilerctl.WithWatchdog(wdt),
		),
		operator.WithDisplaysrv(
			displaysrv.WithDriver(panel),
			displaysrv.WithSnapshot(snap),
		),
	).Run(context.Background(), nil); err != nil {
		panic(err)
	}
}
