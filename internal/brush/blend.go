/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package brush

import "fmt"

// BlendMode selects how a stroke is composited onto what is already drawn.
// The zero value is Normal.
type BlendMode uint8

const (
	// Normal paints the source over the destination.
	Normal BlendMode = iota
	// Clear erases the destination wherever the stroke covers it.
	Clear
)

func (m BlendMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Clear:
		return "clear"
	default:
		return fmt.Sprintf("BlendMode(%d)", uint8(m))
	}
}

// ParseBlendMode is the inverse of String for the known modes.
func ParseBlendMode(s string) (BlendMode, error) {
	switch s {
	case "normal":
		return Normal, nil
	case "clear":
		return Clear, nil
	}
	return Normal, fmt.Errorf("unknown blend mode %q", s)
}

// MarshalText lets JSON, YAML and TOML encoders write the mode as its lowercase name.
func (m BlendMode) MarshalText() ([]byte, error) {
	if m != Normal && m != Clear {
		return nil, fmt.Errorf("unknown blend mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *BlendMode) UnmarshalText(text []byte) error {
	v, err := ParseBlendMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
