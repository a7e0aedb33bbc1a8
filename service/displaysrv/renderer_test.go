// SPDX-License-Identifier: BSD-3-Clause

package displaysrv

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daschl/espressod/pkg/snapshot"
)

func frameValues() snapshot.Values {
	return snapshot.Values{
		CurrentTemp: 93.6,
		TargetTemp:  95.0,
		HeaterOn:    true,
		Kp:          69,
		Ki:          0.17,
		LastOutput:  412,
	}
}

func litPixels(img *image.RGBA) int {
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			lit++
		}
	}
	return lit
}

func TestRenderProducesFullFrame(t *testing.T) {
	r := newRenderer()

	frame := r.render(frameValues())
	assert.Equal(t, image.Rect(0, 0, FrameWidth, FrameHeight), frame.Bounds())
	assert.Positive(t, litPixels(frame), "status text must light pixels")
}

func TestRenderAliveGlyphAlternates(t *testing.T) {
	r := newRenderer()
	v := frameValues()

	first := append([]uint8(nil), r.render(v).Pix...)
	second := append([]uint8(nil), r.render(v).Pix...)

	assert.NotEqual(t, first, second, "consecutive frames with identical values must differ by the alive glyph")

	third := r.render(v).Pix
	assert.Equal(t, first, []uint8(third), "the glyph alternates with period two")
}

func TestRenderClearsPreviousFrame(t *testing.T) {
	r := newRenderer()

	hot := frameValues()
	hot.CurrentTemp = 121
	r.render(hot)

	cold := frameValues()
	cold.CurrentTemp = 7
	cold.HeaterOn = false
	frame := r.render(cold)

	// A stale hot frame underneath would light strictly more pixels than a
	// fresh cold frame; equality with a fresh renderer proves the clear.
	fresh := newRenderer()
	fresh.render(frameValues()) // advance glyph state to match
	want := fresh.render(cold)
	assert.Equal(t, want.Pix, frame.Pix)
}

func TestRenderShowsWatchdogNotice(t *testing.T) {
	plain := newRenderer().render(frameValues())
	plainLit := litPixels(plain)

	v := frameValues()
	v.WatchdogReset = true
	noticed := newRenderer().render(v)

	assert.Greater(t, litPixels(noticed), plainLit, "watchdog notice adds a text line")
}

func TestRoundTemp(t *testing.T) {
	assert.Equal(t, 94, roundTemp(93.6))
	assert.Equal(t, 93, roundTemp(93.4))
	assert.Equal(t, 95, roundTemp(95.0))
	assert.Equal(t, 0, roundTemp(0))
}
