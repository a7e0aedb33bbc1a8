// SPDX-License-Identifier: BSD-3-Clause

package operator

import (
	"time"

	"github.com/daschl/espressod/service"
	"github.com/daschl/espressod/service/blesrv"
	"github.com/daschl/espressod/service/boilerctl"
	"github.com/daschl/espressod/service/displaysrv"
	"github.com/daschl/espressod/service/ipc"
)

// DefaultServiceTimeout bounds how long a child may take to wind down when
// the tree stops or restarts it.
const DefaultServiceTimeout = 10 * time.Second

type config struct {
	name        string
	disableLogo bool
	timeout     time.Duration
	otelSetup   func()

	ipc        *ipc.IPC
	boilerctl  *boilerctl.BoilerCtl
	displaysrv *displaysrv.DisplaySrv
	blesrv     *blesrv.BleSrv

	extraServices []service.Service
}

// Option configures the operator.
type Option interface {
	apply(*config)
}

type nameOption struct {
	name string
}

func (o *nameOption) apply(c *config) {
	c.name = o.name
}

// WithName overrides the operator name.
func WithName(name string) Option {
	return &nameOption{name: name}
}

type disableLogoOption struct{}

func (o *disableLogoOption) apply(c *config) {
	c.disableLogo = true
}

// DisableLogo suppresses the startup logo.
func DisableLogo() Option {
	return &disableLogoOption{}
}

type timeoutOption struct {
	timeout time.Duration
}

func (o *timeoutOption) apply(c *config) {
	c.timeout = o.timeout
}

// WithTimeout sets the per-service shutdown timeout.
func WithTimeout(timeout time.Duration) Option {
	return &timeoutOption{timeout: timeout}
}

type ipcOption struct {
	opts []ipc.Option
}

func (o *ipcOption) apply(c *config) {
	c.ipc = ipc.New(o.opts...)
}

// WithIPC configures the embedded IPC service.
func WithIPC(opts ...ipc.Option) Option {
	return &ipcOption{opts: opts}
}

type boilerctlOption struct {
	opts []boilerctl.Option
}

func (o *boilerctlOption) apply(c *config) {
	c.boilerctl = boilerctl.New(o.opts...)
}

// WithBoilerctl configures the control supervisor.
func WithBoilerctl(opts ...boilerctl.Option) Option {
	return &boilerctlOption{opts: opts}
}

type displaysrvOption struct {
	opts []displaysrv.Option
}

func (o *displaysrvOption) apply(c *config) {
	c.displaysrv = displaysrv.New(o.opts...)
}

// WithDisplaysrv configures the display renderer.
func WithDisplaysrv(opts ...displaysrv.Option) Option {
	return &displaysrvOption{opts: opts}
}

type blesrvOption struct {
	opts []blesrv.Option
}

func (o *blesrvOption) apply(c *config) {
	c.blesrv = blesrv.New(o.opts...)
}

// WithBlesrv configures the wireless publisher. Boards without a radio
// simply never call this.
func WithBlesrv(opts ...blesrv.Option) Option {
	return &blesrvOption{opts: opts}
}

type extraServiceOption struct {
	svc service.Service
}

func (o *extraServiceOption) apply(c *config) {
	c.extraServices = append(c.extraServices, o.svc)
}

// WithExtraService supervises an additional custom service.
func WithExtraService(svc service.Service) Option {
	return &extraServiceOption{svc: svc}
}
