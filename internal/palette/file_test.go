/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package palette

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"inkbrush/internal/brush"
)

func richPalette() *Palette {
	p := Builtin()
	b := brush.New(
		brush.WithColor(brush.RGBA(0.1, 0.2, 0.3, 0.4)),
		brush.WithWidth(4.5),
		brush.WithBorder(brush.White, 12.5),
		brush.WithShadow(brush.Black.WithAlpha(0.25), brush.Offset{DX: -1.5, DY: 2}, 3),
	)
	b.AdjustWidth(brush.TouchSample{Device: brush.Pencil, AltitudeAngle: 0.9})
	p.Add("custom", b)
	return p
}

func assertSamePalette(t *testing.T, got, want *Palette) {
	t.Helper()
	if got.Name != want.Name || len(got.Entries) != len(want.Entries) {
		t.Fatalf("palette mismatch: got %q/%d want %q/%d", got.Name, len(got.Entries), want.Name, len(want.Entries))
	}
	for i := range want.Entries {
		if got.Entries[i] != want.Entries[i] {
			t.Fatalf("entry %d:\n got  %+v\n want %+v", i, got.Entries[i], want.Entries[i])
		}
	}
}

func TestSaveLoadRoundTripAllFormats(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
		dir := t.TempDir()
		path := filepath.Join(dir, "tools"+ext)
		want := richPalette()
		if err := Save(path, want); err != nil {
			t.Fatalf("%s: Save: %v", ext, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("%s: Load: %v", ext, err)
		}
		assertSamePalette(t, got, want)
	}
}

func TestSaveKeepsBackupAndLoadFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.yaml")
	first := richPalette()
	if err := Save(path, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := New("second")
	second.Add("thin", brush.Thin())
	if err := Save(path, second); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ents, err := os.ReadDir(filepath.Join(dir, BackupsDirName))
	if err != nil || len(ents) != 1 {
		t.Fatalf("expected one backup, got %v (%v)", ents, err)
	}

	// Corrupt the current file; Load should restore the previous version.
	if err := os.WriteFile(path, []byte("entries: [ {"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSamePalette(t, got, first)
}

func TestBackupsWithinOneMillisecondStayDistinct(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.json")
	if err := os.WriteFile(path, []byte("v0"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var written []string
	for i := 1; i <= 5; i++ {
		bpath, err := backupFile(path, dir)
		if err != nil {
			t.Fatalf("backup %d: %v", i, err)
		}
		written = append(written, bpath)
		if err := os.WriteFile(path, []byte(fmt.Sprintf("v%d", i)), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	sorted := slices.Clone(written)
	slices.Sort(sorted)
	if !slices.Equal(sorted, written) || len(slices.Compact(sorted)) != 5 {
		t.Fatalf("backup names not unique and ordered: %v", written)
	}
	last, err := os.ReadFile(written[4])
	if err != nil || string(last) != "v4" {
		t.Fatalf("newest backup = %q (%v), want v4", last, err)
	}
}

func TestSaveKeepsTargetWhenReplaceFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.toml")
	first := richPalette()
	if err := Save(path, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	old := renameFile
	renameFile = func(string, string) error { return errors.New("disk full") }
	t.Cleanup(func() { renameFile = old })

	second := New("second")
	second.Add("thin", brush.Thin())
	if err := Save(path, second); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected replace error, got %v", err)
	}

	// The target itself, not a backup, must still hold the first palette.
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("target removed by failed save: %v", err)
	}
	defer func() { _ = f.Close() }()
	got, err := Decode(f, TOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	assertSamePalette(t, got, first)

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".tools.toml.tmp-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestLoadMissingWithoutBackup(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "backup attempt") {
		t.Fatalf("expected load error mentioning backup, got %v", err)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := FormatFor("tools.ini"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "tools.ini"), New("x")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Save: expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeJSONRejectsIncompleteBrush(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Builtin(), JSON); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	broken := strings.Replace(buf.String(), `"shadowRadius": 0`, `"shadowRadius": "none"`, 1)
	_, err := Decode(strings.NewReader(broken), JSON)
	var se *brush.SchemaError
	if !errors.As(err, &se) || !errors.Is(err, brush.ErrDecode) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestDecodeYAMLMissingAlpha(t *testing.T) {
	doc := `
name: pens
entries:
  - name: red
    brush:
      color: {red: 1, green: 0, blue: 0}
      originalWidth: 3
      width: 3
      opacity: 1
      adjustedWidthFactor: 1
      blendMode: normal
      borderColor: {red: 0, green: 0, blue: 0, alpha: 0}
      borderWidthAsPercentage: 0
      shadowOffset: {dx: 0, dy: 0}
      shadowColor: {red: 0, green: 0, blue: 0, alpha: 0}
      shadowRadius: 0
`
	_, err := Decode(strings.NewReader(doc), YAML)
	var de *brush.DecodeError
	if !errors.As(err, &de) || de.Field != "color.alpha" {
		t.Fatalf("expected decode error on color.alpha, got %v", err)
	}
}

func TestDecodeTOMLAssignsMissingIDs(t *testing.T) {
	doc := `
name = "pens"

[[entries]]
name = "eraser"

[entries.brush]
originalWidth = 3
width = 3
opacity = 1
adjustedWidthFactor = 5
blendMode = "clear"
borderWidthAsPercentage = 0
shadowRadius = 0

[entries.brush.color]
red = 0
green = 0
blue = 0
alpha = 1

[entries.brush.borderColor]
red = 0
green = 0
blue = 0
alpha = 0

[entries.brush.shadowOffset]
dx = 0
dy = 0

[entries.brush.shadowColor]
red = 0
green = 0
blue = 0
alpha = 0
`
	p, err := Decode(strings.NewReader(doc), TOML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(p.Entries) != 1 || p.Entries[0].ID == "" {
		t.Fatalf("entries = %+v", p.Entries)
	}
	if p.Entries[0].Brush != brush.Eraser() {
		t.Fatalf("brush = %+v, want eraser", p.Entries[0].Brush)
	}
}

func TestDecodeRejectsBadID(t *testing.T) {
	var buf bytes.Buffer
	p := New("x")
	p.Add("thin", brush.Thin())
	p.Entries[0].ID = "not-a-uuid"
	if err := Encode(&buf, p, YAML); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(&buf, YAML); !errors.Is(err, brush.ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
