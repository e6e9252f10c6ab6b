/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package palette

import (
	"testing"

	"github.com/google/uuid"

	"inkbrush/internal/brush"
)

func TestBuiltinHasEveryPreset(t *testing.T) {
	p := Builtin()
	if len(p.Entries) != len(brush.PresetNames()) {
		t.Fatalf("entries = %d", len(p.Entries))
	}
	seen := map[string]bool{}
	for _, e := range p.Entries {
		if _, err := uuid.Parse(e.ID); err != nil {
			t.Fatalf("entry %s has invalid id %q", e.Name, e.ID)
		}
		if seen[e.ID] {
			t.Fatalf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	}
	m, ok := p.Find("marker")
	if !ok || m.Brush != brush.Marker() {
		t.Fatalf("Find(marker) = %+v, %v", m, ok)
	}
	if _, ok := p.Find("crayon"); ok {
		t.Fatalf("unexpected entry")
	}
}

func TestDedupeUsesBrushEquality(t *testing.T) {
	p := Builtin()
	// The eraser shares color, width and opacity with the default pen.
	if removed := p.Dedupe(); removed != 1 {
		t.Fatalf("Dedupe removed %d, want 1", removed)
	}
	if _, ok := p.Find("eraser"); ok {
		t.Fatalf("eraser should have been folded into default")
	}
	if _, ok := p.Find("default"); !ok {
		t.Fatalf("first entry of a group must be kept")
	}
}

func TestDedupePressureVariants(t *testing.T) {
	p := New("pens")
	a := brush.Medium()
	b := a
	b.AdjustWidth(brush.TouchSample{Device: brush.Pencil, AltitudeAngle: 0.4})
	p.Add("medium", a)
	p.Add("medium tilted", b)
	p.Add("thin", brush.Thin())
	if removed := p.Dedupe(); removed != 1 || len(p.Entries) != 2 {
		t.Fatalf("removed %d, left %d", removed, len(p.Entries))
	}
}

func TestSortByWeight(t *testing.T) {
	p := Builtin()
	p.SortByWeight()
	var names []string
	for _, e := range p.Entries {
		names = append(names, e.Name)
	}
	want := []string{"selection", "thin", "default", "eraser", "medium", "marker", "thick"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestRemove(t *testing.T) {
	p := New("x")
	e := p.Add("thin", brush.Thin())
	if !p.Remove(e.ID) || len(p.Entries) != 0 {
		t.Fatalf("Remove failed")
	}
	if p.Remove(e.ID) {
		t.Fatalf("second Remove should report false")
	}
}
