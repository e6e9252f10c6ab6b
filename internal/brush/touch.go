/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package brush

// DeviceType classifies the input device that produced a touch sample.
type DeviceType uint8

const (
	// Direct is a finger on the screen.
	Direct DeviceType = iota
	// Indirect is a touch that does not land on the screen, e.g. a trackpad.
	Indirect
	// Pencil is a stylus; it is the only device that reports altitude.
	Pencil
	// IndirectPointer is a mouse or trackpad cursor.
	IndirectPointer
)

func (d DeviceType) String() string {
	switch d {
	case Direct:
		return "direct"
	case Indirect:
		return "indirect"
	case Pencil:
		return "pencil"
	case IndirectPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// IsStylus reports whether samples from this device carry an altitude angle.
func (d DeviceType) IsStylus() bool { return d == Pencil }

// ParseDeviceType maps the String form back to a DeviceType.
func ParseDeviceType(s string) (DeviceType, bool) {
	for _, d := range []DeviceType{Direct, Indirect, Pencil, IndirectPointer} {
		if d.String() == s {
			return d, true
		}
	}
	return Direct, false
}

// TouchSample is the part of a host input event that width adjustment needs.
// AltitudeAngle is in radians, π/2 when the stylus is perpendicular to the
// surface and shrinking towards 0 as it tilts. It is ignored for non-stylus devices.
type TouchSample struct {
	Device        DeviceType
	AltitudeAngle float64
}
