/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package brush

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a straight (non-premultiplied) color with normalized channels in [0,1].
// It is a plain value; two colors are equal when all four channels are equal.
type Color struct {
	Red   float64
	Green float64
	Blue  float64
	Alpha float64
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{0, 0, 0, 0}
)

// RGBA builds a color from normalized channels.
func RGBA(r, g, b, a float64) Color { return Color{Red: r, Green: g, Blue: b, Alpha: a} }

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.Alpha = a
	return c
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool { return c.Alpha == 0 }

func (c Color) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.Red, c.Green, c.Blue, c.Alpha)
}

// MarshalJSON encodes the color as {"red","green","blue","alpha"}.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(newColorDoc(c))
}

// UnmarshalJSON requires all four channel fields to be present and numeric.
func (c *Color) UnmarshalJSON(data []byte) error {
	var doc ColorDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return &DecodeError{Err: err}
	}
	v, err := doc.color("")
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseColor accepts #rgb, #rgba, #rrggbb and #rrggbbaa hex notation, the SVG 1.1
// color keywords and "transparent". Matching of keywords is case-insensitive.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, fmt.Errorf("parse color: empty string")
	}
	if s == "transparent" {
		return Transparent, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if rgba, ok := colornames.Map[s]; ok {
		return Color{
			Red:   float64(rgba.R) / 255,
			Green: float64(rgba.G) / 255,
			Blue:  float64(rgba.B) / 255,
			Alpha: float64(rgba.A) / 255,
		}, nil
	}
	return Color{}, fmt.Errorf("parse color %q: unknown color name", s)
}

func parseHex(h string) (Color, error) {
	switch len(h) {
	case 3, 4:
		// expand shorthand: "f0a" -> "ff00aa"
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("parse color #%s: want 3, 4, 6 or 8 hex digits", h)
	}
	if len(h) == 6 {
		h += "ff"
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color #%s: %w", h, err)
	}
	return Color{
		Red:   float64(n>>24&0xff) / 255,
		Green: float64(n>>16&0xff) / 255,
		Blue:  float64(n>>8&0xff) / 255,
		Alpha: float64(n&0xff) / 255,
	}, nil
}
