// SPDX-License-Identifier: BSD-3-Clause

package displaysrv

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
)

// SSD1351 drives the 128x128 RGB OLED over 4-wire SPI. Only the handful of
// controller features the status screen needs are implemented: one fixed
// orientation, RGB565, full-frame writes.
type SSD1351 struct {
	conn spi.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
	buf  []byte
}

// spiWriteChunk bounds single transfers; SPI hosts commonly cap transfer
// sizes well below a full 32 KiB frame.
const spiWriteChunk = 4096

// NewSSD1351 connects to the panel on the given SPI port with the data/
// command and reset lines. The port is claimed for the process lifetime.
func NewSSD1351(port spi.Port, dc, rst gpio.PinOut) (*SSD1351, error) {
	conn, err := port.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBusFailure, err)
	}

	return &SSD1351{
		conn: conn,
		dc:   dc,
		rst:  rst,
		buf:  make([]byte, FrameWidth*FrameHeight*2),
	}, nil
}

// Reset pulses the hardware reset line. The controller wants a few
// milliseconds low and a settle time before accepting commands.
func (d *SSD1351) Reset(ctx context.Context) error {
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: rst: %w", ErrBusFailure, err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: rst: %w", ErrBusFailure, err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: rst: %w", ErrBusFailure, err)
	}
	time.Sleep(100 * time.Millisecond)

	return ctx.Err()
}

// Init programs the fixed panel configuration and wakes the display.
func (d *SSD1351) Init(_ context.Context) error {
	seq := []struct {
		cmd  byte
		data []byte
	}{
		{0xFD, []byte{0x12}},       // unlock commands
		{0xFD, []byte{0xB1}},       // unlock A2/B1/B3/BB/BE
		{0xAE, nil},                // sleep while configuring
		{0xB3, []byte{0xF1}},       // clock divider / oscillator
		{0xCA, []byte{0x7F}},       // 128 lines mux
		{0xA0, []byte{0x74}},       // remap: RGB565, horizontal increment
		{0x15, []byte{0x00, 0x7F}}, // column range
		{0x75, []byte{0x00, 0x7F}}, // row range
		{0xA1, []byte{0x00}},       // start line
		{0xA2, []byte{0x00}},       // display offset
		{0xB5, []byte{0x00}},       // GPIO pins disabled
		{0xAB, []byte{0x01}},       // internal VDD regulator
		{0xB1, []byte{0x32}},       // precharge phases
		{0xBE, []byte{0x05}},       // VCOMH
		{0xC1, []byte{0xC8, 0x80, 0xC8}}, // channel contrast
		{0xC7, []byte{0x0F}},       // master contrast
		{0xB6, []byte{0x01}},       // second precharge
		{0xA6, nil},                // normal (non-inverted) display
		{0xAF, nil},                // wake up
	}

	for _, step := range seq {
		if err := d.writeCommand(step.cmd, step.data...); err != nil {
			return err
		}
	}

	return nil
}

// Draw serialises the frame into the RGB565 transfer buffer. The renderer
// always hands over full frames matching the panel geometry.
func (d *SSD1351) Draw(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() != FrameWidth || bounds.Dy() != FrameHeight {
		return fmt.Errorf("%w: frame %v does not match panel %dx%d",
			ErrControllerFailure, bounds, FrameWidth, FrameHeight)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := rgba.Pix[(y-bounds.Min.Y)*rgba.Stride:]
		for x := 0; x < FrameWidth; x++ {
			r, g, b := row[x*4], row[x*4+1], row[x*4+2]
			pixel := uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
			d.buf[i] = byte(pixel >> 8)
			d.buf[i+1] = byte(pixel)
			i += 2
		}
	}

	return nil
}

// Flush pushes the transfer buffer out to the panel RAM.
func (d *SSD1351) Flush() error {
	if err := d.writeCommand(0x15, 0x00, 0x7F); err != nil {
		return err
	}
	if err := d.writeCommand(0x75, 0x00, 0x7F); err != nil {
		return err
	}
	if err := d.writeCommand(0x5C); err != nil { // write RAM
		return err
	}

	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("%w: dc: %w", ErrBusFailure, err)
	}
	for off := 0; off < len(d.buf); off += spiWriteChunk {
		end := min(off+spiWriteChunk, len(d.buf))
		if err := d.conn.Tx(d.buf[off:end], nil); err != nil {
			return fmt.Errorf("%w: frame data: %w", ErrBusFailure, err)
		}
	}

	return nil
}

func (d *SSD1351) writeCommand(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("%w: dc: %w", ErrBusFailure, err)
	}
	if err := d.conn.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("%w: command %#x: %w", ErrBusFailure, cmd, err)
	}

	if len(data) > 0 {
		if err := d.dc.Out(gpio.High); err != nil {
			return fmt.Errorf("%w: dc: %w", ErrBusFailure, err)
		}
		if err := d.conn.Tx(data, nil); err != nil {
			return fmt.Errorf("%w: command %#x data: %w", ErrBusFailure, cmd, err)
		}
	}

	return nil
}
