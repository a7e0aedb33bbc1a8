// SPDX-License-Identifier: BSD-3-Clause

package displaysrv

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/daschl/espressod/pkg/snapshot"
)

// Frame dimensions of the panel.
const (
	FrameWidth  = 128
	FrameHeight = 128
)

// renderer turns a snapshot copy into a full frame. It keeps its one frame
// buffer for the process lifetime and redraws into it on every tick.
type renderer struct {
	frame *image.RGBA
	alive bool
}

func newRenderer() *renderer {
	return &renderer{
		frame: image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight)),
	}
}

// render clears the frame and draws the status screen: current and target
// temperature rounded to whole degrees, heater state, the live PID command
// and tunings, plus an alternating alive glyph so a frozen screen is
// obvious to the operator.
func (r *renderer) render(v snapshot.Values) *image.RGBA {
	draw.Draw(r.frame, r.frame.Bounds(), image.Black, image.Point{}, draw.Src)

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}

	// The 7x13 face covers ASCII only, so no degree sign.
	r.text(fmt.Sprintf("Current: %dC", roundTemp(v.CurrentTemp)), 0, 14, white)
	r.text(fmt.Sprintf("Target:  %dC", roundTemp(v.TargetTemp)), 0, 32, white)
	r.text("Heater:  "+onOff(v.HeaterOn), 0, 50, white)
	r.text(fmt.Sprintf("Output:  %.0f", v.LastOutput), 0, 68, white)

	if v.WatchdogReset {
		r.text("! WDT RESET", 0, 86, color.RGBA{0xff, 0x40, 0x40, 0xff})
	}

	r.text(fmt.Sprintf("P: %v I: %v D: %v", v.Kp, v.Ki, v.Kd), 0, 122, white)

	glyph := "*"
	if r.alive {
		glyph = "+"
	}
	r.alive = !r.alive
	r.text(glyph, FrameWidth-8, 14, white)

	return r.frame
}

func (r *renderer) text(s string, x, y int, c color.RGBA) {
	d := font.Drawer{
		Dst:  r.frame,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func roundTemp(t float32) int {
	return int(math.Round(float64(t)))
}

func onOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}
