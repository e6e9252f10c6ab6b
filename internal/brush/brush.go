/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package brush defines the visual attributes of a drawing tool: color, width,
// opacity, blend mode, border and drop shadow. A Brush is a plain value; hosts
// copy it freely and mutate their own copy in response to input.
package brush

import (
	"cmp"
	"math"
)

// Offset is a drop-shadow displacement.
type Offset struct {
	DX float64
	DY float64
}

// Brush is the visual configuration of a drawing tool.
//
// originalWidth is fixed at construction. Width is the effective width and is
// always recomputed from originalWidth by AdjustWidth.
type Brush struct {
	Color                   Color
	originalWidth           float64
	Width                   float64
	Opacity                 float64
	AdjustedWidthFactor     float64
	BlendMode               BlendMode
	BorderColor             Color
	BorderWidthAsPercentage float64
	ShadowOffset            Offset
	ShadowColor             Color
	ShadowRadius            float64
}

// Option customizes a Brush built by New.
type Option func(*Brush)

// WithColor sets the ink color.
func WithColor(c Color) Option { return func(b *Brush) { b.Color = c } }

// WithWidth sets both the original and the effective width.
func WithWidth(w float64) Option {
	return func(b *Brush) {
		b.originalWidth = w
		b.Width = w
	}
}

// WithCurrentWidth sets only the effective width, leaving the original width alone.
func WithCurrentWidth(w float64) Option { return func(b *Brush) { b.Width = w } }

// WithOpacity sets the stroke opacity. It is not clamped.
func WithOpacity(o float64) Option { return func(b *Brush) { b.Opacity = o } }

// WithAdjustedWidthFactor sets how strongly stylus tilt widens the stroke.
func WithAdjustedWidthFactor(f float64) Option {
	return func(b *Brush) { b.AdjustedWidthFactor = f }
}

// WithBlendMode sets how the stroke combines with what is already drawn.
func WithBlendMode(m BlendMode) Option { return func(b *Brush) { b.BlendMode = m } }

// WithBorder sets the outline color and its thickness as a percentage of the width.
func WithBorder(c Color, widthPct float64) Option {
	return func(b *Brush) {
		b.BorderColor = c
		b.BorderWidthAsPercentage = widthPct
	}
}

// WithShadow sets the drop shadow color, displacement and blur radius.
func WithShadow(c Color, offset Offset, radius float64) Option {
	return func(b *Brush) {
		b.ShadowColor = c
		b.ShadowOffset = offset
		b.ShadowRadius = radius
	}
}

// New returns a brush with the default attributes (black, width 3, opacity 1,
// width factor 1, normal blending, no border, no shadow) and then applies opts.
// Values are not validated.
func New(opts ...Option) Brush {
	b := Brush{
		Color:               Black,
		originalWidth:       3,
		Width:               3,
		Opacity:             1,
		AdjustedWidthFactor: 1,
		BlendMode:           Normal,
		BorderColor:         Transparent,
		ShadowColor:         Transparent,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// OriginalWidth is the width the brush was constructed with.
func (b Brush) OriginalWidth() float64 { return b.originalWidth }

// AdjustWidth recomputes Width for the given input sample.
//
// For stylus input the width grows as the pen tilts:
//
//	width = originalWidth*(1 - factor/10*2) + factor/altitude
//
// Any other device resets Width to the original width. A stylus sample whose
// altitude is not strictly positive (including NaN) is handled the same way, as
// is any sample for which the formula is not finite, such as an altitude so
// small that factor/altitude overflows. Width therefore always stays encodable.
func (b *Brush) AdjustWidth(s TouchSample) {
	if !s.Device.IsStylus() || !(s.AltitudeAngle > 0) {
		b.Width = b.originalWidth
		return
	}
	f := b.AdjustedWidthFactor
	w := b.originalWidth*(1-f/10*2) + f/s.AltitudeAngle
	if math.IsInf(w, 0) || math.IsNaN(w) {
		w = b.originalWidth
	}
	b.Width = w
}

// Equal compares color, original width and opacity only. Two brushes that differ
// in effective width, blend mode, border or shadow are still equal; palettes rely
// on this to collapse the same tool captured at different pressures.
func (b Brush) Equal(o Brush) bool {
	return b.Color == o.Color && b.originalWidth == o.originalWidth && b.Opacity == o.Opacity
}

// Compare orders brushes by effective width and nothing else, so it is not
// consistent with Equal.
func (b Brush) Compare(o Brush) int { return cmp.Compare(b.Width, o.Width) }

// Less reports whether b is narrower than o.
func (b Brush) Less(o Brush) bool { return b.Compare(o) < 0 }
