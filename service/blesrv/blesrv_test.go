// SPDX-License-Identifier: BSD-3-Clause

package blesrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daschl/espressod/pkg/snapshot"
)

func TestEncodeTemperature(t *testing.T) {
	tests := []struct {
		celsius float32
		want    []byte
	}{
		{0, []byte{0x00, 0x00}},
		{95.0, []byte{0x5F, 0x00}},
		{95.4, []byte{0x5F, 0x00}},
		{95.6, []byte{0x60, 0x00}},
		{-10, []byte{0xF6, 0xFF}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeTemperature(tt.celsius), "%v°C", tt.celsius)
	}
}

func TestAttributeTableLayout(t *testing.T) {
	attrs := AttributeTable()
	require.Len(t, attrs, 3)

	// Primary service declaration: Generic Access, little endian.
	assert.Equal(t, uint16(UUIDPrimaryService), attrs[0].UUID)
	assert.Equal(t, uint16(HandleService), attrs[0].Handle)
	assert.Equal(t, []byte{0x00, 0x18}, attrs[0].Value)

	// Characteristic declaration: READ property, value handle 0x0003,
	// Temperature Celsius UUID.
	assert.Equal(t, uint16(UUIDCharacteristic), attrs[1].UUID)
	assert.Equal(t, []byte{0x02, 0x03, 0x00, 0x1F, 0x2A}, attrs[1].Value)

	// Value attribute starts at zero degrees.
	assert.Equal(t, uint16(UUIDTemperatureCelsius), attrs[2].UUID)
	assert.Equal(t, uint16(HandleTemperature), attrs[2].Handle)
	assert.Equal(t, []byte{0x00, 0x00}, attrs[2].Value)
}

func TestRunPublishesSnapshotTemperature(t *testing.T) {
	radio := NewMockRadio()
	snap := snapshot.New(95, 69, 0.17, 0, false)
	snap.SetCurrentTemp(93.7)

	svc := New(
		WithRadio(radio),
		WithSnapshot(snap),
		WithPublishInterval(5*time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx, nil)
	}()

	require.Eventually(t, func() bool {
		_, _, updates := radio.LastUpdate()
		return updates >= 2
	}, time.Second, time.Millisecond)

	name, interval := radio.Advertised()
	assert.Equal(t, DefaultDeviceName, name)
	assert.Equal(t, DefaultAdvertiseInterval, interval)
	require.Len(t, radio.Attributes(), 3)

	handle, value, _ := radio.LastUpdate()
	assert.Equal(t, uint16(HandleTemperature), handle)
	assert.Equal(t, []byte{0x5E, 0x00}, value, "93.7°C rounds to 94")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRunRequiresRadioAndSnapshot(t *testing.T) {
	err := New(WithSnapshot(snapshot.New(95, 1, 0, 0, false))).Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	err = New(WithRadio(NewMockRadio())).Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
