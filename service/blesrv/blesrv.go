// SPDX-License-Identifier: BSD-3-Clause

package blesrv

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/daschl/espressod/pkg/log"
	"github.com/daschl/espressod/service"
)

// Compile-time assertion that BleSrv implements service.Service.
var _ service.Service = (*BleSrv)(nil)

// GATT constants of the published service. The layout mirrors the classic
// three-attribute minimum: primary service declaration, characteristic
// declaration, characteristic value.
const (
	// UUIDPrimaryService is the GATT primary-service declaration UUID.
	UUIDPrimaryService = 0x2800
	// UUIDCharacteristic is the GATT characteristic declaration UUID.
	UUIDCharacteristic = 0x2803
	// UUIDGenericAccess is the advertised service UUID.
	UUIDGenericAccess = 0x1800
	// UUIDTemperatureCelsius is the Temperature Celsius characteristic UUID.
	UUIDTemperatureCelsius = 0x2A1F

	// HandleService is the attribute handle of the service declaration.
	HandleService = 0x0001
	// HandleCharacteristic is the handle of the characteristic declaration.
	HandleCharacteristic = 0x0002
	// HandleTemperature is the handle of the temperature value attribute.
	HandleTemperature = 0x0003

	// propRead is the GATT READ characteristic property bit.
	propRead = 0x02
)

// BleSrv publishes the boiler temperature as a read-only GATT
// characteristic. It is a pure consumer of the snapshot and never
// influences control; if the radio disappears the espresso machine keeps
// making espresso.
type BleSrv struct {
	config *config
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates the wireless publisher with the provided options.
func New(opts ...Option) *BleSrv {
	cfg := &config{
		serviceName:       DefaultServiceName,
		deviceName:        DefaultDeviceName,
		advertiseInterval: DefaultAdvertiseInterval,
		publishInterval:   DefaultPublishInterval,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}

	return &BleSrv{
		config: cfg,
	}
}

// Name returns the service name.
func (s *BleSrv) Name() string {
	return s.config.serviceName
}

// Run installs the attribute table, starts advertising and then serialises
// the newest snapshot temperature into the characteristic on every publish
// tick. The service does not use the message bus; ipcConn may be nil.
func (s *BleSrv) Run(ctx context.Context, _ nats.InProcessConnProvider) error {
	s.tracer = otel.Tracer(s.config.serviceName)

	ctx, span := s.tracer.Start(ctx, "blesrv.Run")
	defer span.End()

	s.logger = log.GetGlobalLogger().With("service", s.config.serviceName)

	if err := s.config.Validate(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	radio := s.config.radio

	if err := radio.SetAttributes(AttributeTable()); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrRadioFailure, err)
	}

	if err := radio.Advertise(s.config.deviceName, s.config.advertiseInterval); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrRadioFailure, err)
	}

	s.logger.InfoContext(ctx, "Wireless publisher started",
		"device_name", s.config.deviceName,
		"advertise_interval", s.config.advertiseInterval)

	ticker := time.NewTicker(s.config.publishInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := radio.Close(); err != nil {
				s.logger.WarnContext(context.WithoutCancel(ctx), "Radio close failed", "error", err)
			}
			return ctx.Err()
		case <-ticker.C:
		}

		value := EncodeTemperature(s.config.snap.CurrentTemp())
		if err := radio.UpdateValue(HandleTemperature, value); err != nil {
			// Telemetry only; next tick carries a fresher value anyway.
			s.logger.DebugContext(ctx, "Characteristic update failed", "error", err)
		}
	}
}

// AttributeTable builds the served GATT attribute table: a Generic Access
// primary service containing one read-only Temperature Celsius
// characteristic at the fixed value handle.
func AttributeTable() []Attribute {
	handleTemperature := uint16(HandleTemperature)
	uuidTemperatureCelsius := uint16(UUIDTemperatureCelsius)
	return []Attribute{
		{
			UUID:   UUIDPrimaryService,
			Handle: HandleService,
			Value:  leUUID(UUIDGenericAccess),
		},
		{
			UUID:   UUIDCharacteristic,
			Handle: HandleCharacteristic,
			Value: []byte{
				propRead,
				byte(handleTemperature), byte(handleTemperature >> 8),
				byte(uuidTemperatureCelsius), byte(uuidTemperatureCelsius >> 8),
			},
		},
		{
			UUID:   UUIDTemperatureCelsius,
			Handle: HandleTemperature,
			Value:  EncodeTemperature(0),
		},
	}
}

// EncodeTemperature serialises a temperature as the characteristic wire
// value: signed 16-bit whole degrees Celsius, little endian.
func EncodeTemperature(celsius float32) []byte {
	rounded := math.Round(float64(celsius))

	// Clamp instead of wrapping on absurd values; the sensor adapter
	// rejects these long before, but the wire format stays sane regardless.
	if rounded > math.MaxInt16 {
		rounded = math.MaxInt16
	} else if rounded < math.MinInt16 {
		rounded = math.MinInt16
	}

	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(int16(rounded)))
	return buf
}

func leUUID(uuid uint16) []byte {
	return []byte{byte(uuid), byte(uuid >> 8)}
}
