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
	"errors"
	"fmt"
)

// ErrDecode matches every decoding failure produced by this package.
var ErrDecode = errors.New("brush: decode failed")

var errMissing = errors.New("missing field")

// DecodeError reports the field that could not be decoded. Field is a dotted
// path such as "borderColor.alpha"; it is empty when the input was not an object.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode brush: %v", e.Err)
	}
	return fmt.Sprintf("decode brush: %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes every DecodeError match ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// ColorDoc is the serialized form of a Color. Pointer fields distinguish an
// absent channel from a zero one.
type ColorDoc struct {
	Red   *float64 `json:"red" yaml:"red" toml:"red"`
	Green *float64 `json:"green" yaml:"green" toml:"green"`
	Blue  *float64 `json:"blue" yaml:"blue" toml:"blue"`
	Alpha *float64 `json:"alpha" yaml:"alpha" toml:"alpha"`
}

// OffsetDoc is the serialized form of an Offset.
type OffsetDoc struct {
	DX *float64 `json:"dx" yaml:"dx" toml:"dx"`
	DY *float64 `json:"dy" yaml:"dy" toml:"dy"`
}

// Document is the serialized form of a Brush. The same field names are used for
// JSON, YAML and TOML, and Brush() applies the same required-field checks to all.
type Document struct {
	Color                   *ColorDoc  `json:"color" yaml:"color" toml:"color"`
	OriginalWidth           *float64   `json:"originalWidth" yaml:"originalWidth" toml:"originalWidth"`
	Width                   *float64   `json:"width" yaml:"width" toml:"width"`
	Opacity                 *float64   `json:"opacity" yaml:"opacity" toml:"opacity"`
	AdjustedWidthFactor     *float64   `json:"adjustedWidthFactor" yaml:"adjustedWidthFactor" toml:"adjustedWidthFactor"`
	BlendMode               *BlendMode `json:"blendMode" yaml:"blendMode" toml:"blendMode"`
	BorderColor             *ColorDoc  `json:"borderColor" yaml:"borderColor" toml:"borderColor"`
	BorderWidthAsPercentage *float64   `json:"borderWidthAsPercentage" yaml:"borderWidthAsPercentage" toml:"borderWidthAsPercentage"`
	ShadowOffset            *OffsetDoc `json:"shadowOffset" yaml:"shadowOffset" toml:"shadowOffset"`
	ShadowColor             *ColorDoc  `json:"shadowColor" yaml:"shadowColor" toml:"shadowColor"`
	ShadowRadius            *float64   `json:"shadowRadius" yaml:"shadowRadius" toml:"shadowRadius"`
}

func ptr[T any](v T) *T { return &v }

func newColorDoc(c Color) *ColorDoc {
	return &ColorDoc{Red: ptr(c.Red), Green: ptr(c.Green), Blue: ptr(c.Blue), Alpha: ptr(c.Alpha)}
}

// Document returns the fully populated wire form of b.
func (b Brush) Document() Document {
	mode := b.BlendMode
	return Document{
		Color:                   newColorDoc(b.Color),
		OriginalWidth:           ptr(b.originalWidth),
		Width:                   ptr(b.Width),
		Opacity:                 ptr(b.Opacity),
		AdjustedWidthFactor:     ptr(b.AdjustedWidthFactor),
		BlendMode:               &mode,
		BorderColor:             newColorDoc(b.BorderColor),
		BorderWidthAsPercentage: ptr(b.BorderWidthAsPercentage),
		ShadowOffset:            &OffsetDoc{DX: ptr(b.ShadowOffset.DX), DY: ptr(b.ShadowOffset.DY)},
		ShadowColor:             newColorDoc(b.ShadowColor),
		ShadowRadius:            ptr(b.ShadowRadius),
	}
}

// Brush converts the document back into a Brush. Every field is required.
func (d Document) Brush() (Brush, error) {
	var (
		b   Brush
		err error
	)
	if b.Color, err = d.Color.color("color"); err != nil {
		return Brush{}, err
	}
	floats := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"originalWidth", d.OriginalWidth, &b.originalWidth},
		{"width", d.Width, &b.Width},
		{"opacity", d.Opacity, &b.Opacity},
		{"adjustedWidthFactor", d.AdjustedWidthFactor, &b.AdjustedWidthFactor},
	}
	for _, f := range floats {
		if f.src == nil {
			return Brush{}, &DecodeError{Field: f.name, Err: errMissing}
		}
		*f.dst = *f.src
	}
	if d.BlendMode == nil {
		return Brush{}, &DecodeError{Field: "blendMode", Err: errMissing}
	}
	b.BlendMode = *d.BlendMode
	if b.BorderColor, err = d.BorderColor.color("borderColor"); err != nil {
		return Brush{}, err
	}
	if d.BorderWidthAsPercentage == nil {
		return Brush{}, &DecodeError{Field: "borderWidthAsPercentage", Err: errMissing}
	}
	b.BorderWidthAsPercentage = *d.BorderWidthAsPercentage
	if b.ShadowOffset, err = d.ShadowOffset.offset("shadowOffset"); err != nil {
		return Brush{}, err
	}
	if b.ShadowColor, err = d.ShadowColor.color("shadowColor"); err != nil {
		return Brush{}, err
	}
	if d.ShadowRadius == nil {
		return Brush{}, &DecodeError{Field: "shadowRadius", Err: errMissing}
	}
	b.ShadowRadius = *d.ShadowRadius
	return b, nil
}

func (c *ColorDoc) color(field string) (Color, error) {
	if c == nil {
		return Color{}, &DecodeError{Field: field, Err: errMissing}
	}
	channels := []struct {
		name string
		v    *float64
	}{{"red", c.Red}, {"green", c.Green}, {"blue", c.Blue}, {"alpha", c.Alpha}}
	for _, ch := range channels {
		if ch.v == nil {
			return Color{}, &DecodeError{Field: join(field, ch.name), Err: errMissing}
		}
	}
	return Color{Red: *c.Red, Green: *c.Green, Blue: *c.Blue, Alpha: *c.Alpha}, nil
}

func (o *OffsetDoc) offset(field string) (Offset, error) {
	switch {
	case o == nil:
		return Offset{}, &DecodeError{Field: field, Err: errMissing}
	case o.DX == nil:
		return Offset{}, &DecodeError{Field: join(field, "dx"), Err: errMissing}
	case o.DY == nil:
		return Offset{}, &DecodeError{Field: join(field, "dy"), Err: errMissing}
	}
	return Offset{DX: *o.DX, DY: *o.DY}, nil
}

func join(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func (b Brush) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Document())
}

// UnmarshalJSON fails with a *DecodeError when any field is missing, null, or
// of the wrong type.
func (b *Brush) UnmarshalJSON(data []byte) error {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return &DecodeError{Field: te.Field, Err: err}
		}
		return &DecodeError{Err: err}
	}
	v, err := d.Brush()
	if err != nil {
		return err
	}
	*b = v
	return nil
}
