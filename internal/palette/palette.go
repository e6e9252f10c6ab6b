/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package palette groups brushes into a named tool palette and reads and writes
// palette files. Brushes that compare Equal are treated as the same tool, and
// palettes sort by stroke weight.
package palette

import (
	"slices"

	"github.com/google/uuid"

	"inkbrush/internal/brush"
)

// Entry is one tool slot. ID is a UUID that stays stable across renames.
type Entry struct {
	ID    string
	Name  string
	Brush brush.Brush
}

// Palette is an ordered, named list of brushes.
type Palette struct {
	Name    string
	Entries []Entry
}

// New returns an empty palette.
func New(name string) *Palette { return &Palette{Name: name} }

// Builtin returns a palette holding every named preset, in preset-name order.
func Builtin() *Palette {
	p := New("builtin")
	for _, n := range brush.PresetNames() {
		b, _ := brush.Preset(n)
		p.Add(n, b)
	}
	return p
}

// Add appends a brush under a fresh ID and returns the new entry.
func (p *Palette) Add(name string, b brush.Brush) Entry {
	e := Entry{ID: uuid.NewString(), Name: name, Brush: b}
	p.Entries = append(p.Entries, e)
	return e
}

// Find returns the first entry with the given name.
func (p *Palette) Find(name string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Remove deletes the entry with the given ID and reports whether it existed.
func (p *Palette) Remove(id string) bool {
	for i, e := range p.Entries {
		if e.ID == id {
			p.Entries = slices.Delete(p.Entries, i, i+1)
			return true
		}
	}
	return false
}

// Dedupe keeps the first entry of every group of Equal brushes and returns how
// many entries were dropped. Equality looks at color, original width and opacity
// only, so the same pen captured at different pressures collapses to one slot.
func (p *Palette) Dedupe() int {
	kept := p.Entries[:0]
	for _, e := range p.Entries {
		dup := slices.ContainsFunc(kept, func(k Entry) bool { return k.Brush.Equal(e.Brush) })
		if !dup {
			kept = append(kept, e)
		}
	}
	removed := len(p.Entries) - len(kept)
	clear(p.Entries[len(kept):])
	p.Entries = kept
	return removed
}

// SortByWeight orders entries from the narrowest effective width to the widest.
// Entries of equal width keep their relative order.
func (p *Palette) SortByWeight() {
	slices.SortStableFunc(p.Entries, func(a, b Entry) int { return a.Brush.Compare(b.Brush) })
}
