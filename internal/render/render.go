/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render maps brush values onto Go's native image types at the point
// where a host hands them to its compositor. It does not draw anything itself.
package render

import (
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"inkbrush/internal/brush"
)

// StrokeParams is what a compositor needs to draw one stroke segment.
type StrokeParams struct {
	Color  color.NRGBA // brush color with opacity folded into alpha
	Width  float64
	Op     draw.Op
	Border Border
	Shadow Shadow
}

// Border is the outline drawn around a stroke.
type Border struct {
	Color color.NRGBA
	Width float64 // absolute, in the same unit as StrokeParams.Width
}

// Shadow is a blurred, offset copy of the stroke drawn beneath it.
type Shadow struct {
	Color  color.NRGBA
	DX, DY float64
	Radius float64
}

// Visible reports whether the shadow would leave any mark.
func (s Shadow) Visible() bool { return s.Color.A != 0 }

// NRGBA converts a normalized color to 8-bit channels, clamping out-of-range values.
func NRGBA(c brush.Color) color.NRGBA {
	return color.NRGBA{R: channel(c.Red), G: channel(c.Green), B: channel(c.Blue), A: channel(c.Alpha)}
}

// FromColor converts any image/color value back into a brush color.
func FromColor(c color.Color) brush.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return brush.Color{
		Red:   float64(n.R) / 255,
		Green: float64(n.G) / 255,
		Blue:  float64(n.B) / 255,
		Alpha: float64(n.A) / 255,
	}
}

// Op maps a blend mode to a Porter-Duff operator. Clear strokes are drawn with a
// transparent source using Src, which punches through what is underneath.
func Op(m brush.BlendMode) draw.Op {
	if m == brush.Clear {
		return draw.Src
	}
	return draw.Over
}

// Params resolves a brush into compositor parameters.
func Params(b brush.Brush) StrokeParams {
	ink := b.Color
	if b.BlendMode == brush.Clear {
		ink = brush.Transparent
	}
	ink.Alpha *= b.Opacity
	return StrokeParams{
		Color: NRGBA(ink),
		Width: b.Width,
		Op:    Op(b.BlendMode),
		Border: Border{
			Color: NRGBA(b.BorderColor),
			Width: b.Width * b.BorderWidthAsPercentage / 100,
		},
		Shadow: Shadow{
			Color:  NRGBA(b.ShadowColor),
			DX:     b.ShadowOffset.DX,
			DY:     b.ShadowOffset.DY,
			Radius: b.ShadowRadius,
		},
	}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
