// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package gpio

import "github.com/warthog618/go-gpiocdev"

// Option configures a GPIO line request.
type Option interface {
	apply(*config)
}

type config struct {
	asInput     bool
	asOutput    bool
	outputValue int
}

type inputOption struct{}

func (o *inputOption) apply(c *config) {
	c.asInput = true
}

// AsInput requests the line as an input.
func AsInput() Option {
	return &inputOption{}
}

type outputOption struct {
	value int
}

func (o *outputOption) apply(c *config) {
	c.asOutput = true
	c.outputValue = o.value
}

// AsOutput requests the line as an output, initially low. The heater relay
// line is always requested this way so a restart never glitches the element
// on.
func AsOutput() Option {
	return &outputOption{value: 0}
}

// AsOutputValue requests the line as an output with an explicit initial
// value.
func AsOutputValue(value int) Option {
	return &outputOption{value: value}
}

func convertOptions(opts []Option) []gpiocdev.LineReqOption {
	cfg := &config{}
	for _, opt := range opts {
		opt.apply(cfg)
	}

	var out []gpiocdev.LineReqOption
	switch {
	case cfg.asOutput:
		out = append(out, gpiocdev.AsOutput(cfg.outputValue))
	case cfg.asInput:
		out = append(out, gpiocdev.AsInput)
	}

	return out
}
