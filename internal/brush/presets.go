/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package brush

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPreset is returned by Preset for names not in the registry.
var ErrUnknownPreset = errors.New("unknown brush preset")

// markerColor is a reddish highlighter ink. The preset's opacity is applied on top.
var markerColor = Color{Red: 1, Green: 0.25, Blue: 0.2, Alpha: 0.5}

// Default is a black pen, width 3.
func Default() Brush { return New() }

// Thin is a black pen, width 2.
func Thin() Brush { return New(WithWidth(2)) }

// Medium is a black pen, width 7.
func Medium() Brush { return New(WithWidth(7)) }

// Thick is a black pen, width 12.
func Thick() Brush { return New(WithWidth(12)) }

// Marker is a wide translucent highlighter.
func Marker() Brush {
	return New(WithColor(markerColor), WithWidth(10), WithOpacity(0.3))
}

// Eraser keeps the default color; erasing comes from the Clear blend mode. The
// larger width factor makes it more sensitive to stylus tilt.
func Eraser() Brush {
	return New(WithAdjustedWidthFactor(5), WithBlendMode(Clear))
}

// Selection draws nothing visible and is used to outline a selection path.
func Selection() Brush {
	return New(WithColor(Transparent), WithWidth(1), WithOpacity(1))
}

var presets = map[string]func() Brush{
	"default":   Default,
	"thin":      Thin,
	"medium":    Medium,
	"thick":     Thick,
	"marker":    Marker,
	"eraser":    Eraser,
	"selection": Selection,
}

// Preset looks up a named preset.
func Preset(name string) (Brush, error) {
	fn, ok := presets[name]
	if !ok {
		return Brush{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return fn(), nil
}

// PresetNames returns the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
