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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"inkbrush/internal/brush"
	applog "inkbrush/internal/log"
)

// BackupsDirName is the directory next to a palette file that holds its backups.
const BackupsDirName = "backups"

// renameFile is swapped in tests to simulate a failing replace.
var renameFile = os.Rename

// ErrUnsupportedFormat is returned for file extensions other than
// .json, .yaml, .yml and .toml.
var ErrUnsupportedFormat = errors.New("unsupported palette format")

// Format is a palette file encoding, chosen by file extension.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

type fileDoc struct {
	Name    string     `json:"name" yaml:"name" toml:"name"`
	Entries []entryDoc `json:"entries" yaml:"entries" toml:"entries"`
}

type entryDoc struct {
	ID    string         `json:"id" yaml:"id" toml:"id"`
	Name  string         `json:"name" yaml:"name" toml:"name"`
	Brush brush.Document `json:"brush" yaml:"brush" toml:"brush"`
}

// jsonEntry keeps the brush raw so it can be checked against the schema first.
type jsonEntry struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Brush json.RawMessage `json:"brush"`
}

type jsonFile struct {
	Name    string      `json:"name"`
	Entries []jsonEntry `json:"entries"`
}

func toDoc(p *Palette) fileDoc {
	d := fileDoc{Name: p.Name, Entries: make([]entryDoc, 0, len(p.Entries))}
	for _, e := range p.Entries {
		d.Entries = append(d.Entries, entryDoc{ID: e.ID, Name: e.Name, Brush: e.Brush.Document()})
	}
	return d
}

// Encode writes p to w in the given format.
func Encode(w io.Writer, p *Palette, f Format) error {
	doc := toDoc(p)
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(doc)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Decode reads a palette in the given format. Every brush must carry all of its
// fields; JSON brushes are additionally validated against the brush schema.
// Entries without an ID get a new one.
func Decode(r io.Reader, f Format) (*Palette, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch f {
	case JSON:
		return decodeJSON(data)
	case YAML:
		var doc fileDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &brush.DecodeError{Err: err}
		}
		return fromDoc(doc)
	case TOML:
		var doc fileDoc
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, &brush.DecodeError{Err: err}
		}
		return fromDoc(doc)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

func decodeJSON(data []byte) (*Palette, error) {
	var jf jsonFile
	if err := json.Unmarshal(data, &jf); err != nil {
		return nil, &brush.DecodeError{Err: err}
	}
	p := New(jf.Name)
	for i, je := range jf.Entries {
		if err := brush.ValidateJSON(je.Brush); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, je.Name, err)
		}
		var b brush.Brush
		if err := json.Unmarshal(je.Brush, &b); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, je.Name, err)
		}
		id, err := entryID(je.ID)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, je.Name, err)
		}
		p.Entries = append(p.Entries, Entry{ID: id, Name: je.Name, Brush: b})
	}
	return p, nil
}

func fromDoc(doc fileDoc) (*Palette, error) {
	p := New(doc.Name)
	for i, ed := range doc.Entries {
		b, err := ed.Brush.Brush()
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, ed.Name, err)
		}
		id, err := entryID(ed.ID)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, ed.Name, err)
		}
		p.Entries = append(p.Entries, Entry{ID: id, Name: ed.Name, Brush: b})
	}
	return p, nil
}

func entryID(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.NewString(), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", &brush.DecodeError{Field: "id", Err: err}
	}
	return id.String(), nil
}

// Save writes p to path transactionally: the previous file, if any, is copied to
// a timestamped backup next to it, then the new content is written to a temp file
// in the same directory and renamed over the target.
func Save(path string, p *Palette) error {
	l := applog.WithOperation(applog.WithComponent("palette"), "save").With(slog.String("path", path))
	if p == nil {
		return errors.New("nil palette")
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("palette path is required")
	}
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, p, f); err != nil {
		return fmt.Errorf("encode palette: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure palette dir: %w", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		bdir := filepath.Join(dir, BackupsDirName)
		if err := os.MkdirAll(bdir, 0o755); err != nil {
			return fmt.Errorf("ensure backups dir: %w", err)
		}
		bpath, berr := backupFile(path, bdir)
		if berr != nil {
			return fmt.Errorf("backup current palette: %w", berr)
		}
		l.Debug("backup written", slog.String("backup", bpath))
	}

	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, buf.Bytes()); werr != nil {
		return fmt.Errorf("write temp palette: %w", werr)
	}
	// Only Windows needs the target gone first; elsewhere rename replaces it atomically.
	if runtime.GOOS == "windows" {
		if _, err := os.Stat(path); err == nil {
			_ = os.Remove(path)
		}
	}
	if rerr := renameFile(temp, path); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace palette: %w", rerr)
	}
	l.Info("palette saved", slog.Int("entries", len(p.Entries)), slog.String("format", string(f)))
	return nil
}

// Load reads the palette at path. If the file is missing or cannot be decoded it
// falls back to the newest backup written by Save.
func Load(path string) (*Palette, error) {
	l := applog.WithOperation(applog.WithComponent("palette"), "load").With(slog.String("path", path))
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	p, err := loadFile(path, f)
	if err == nil {
		return p, nil
	}
	bp, berr := loadLatestBackup(path, f)
	if berr != nil {
		return nil, fmt.Errorf("load palette: %w; backup attempt: %v", err, berr)
	}
	l.Warn("palette restored from backup", slog.Any("err", err))
	return bp, nil
}

func loadFile(path string, f Format) (*Palette, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Decode(fh, f)
}

func loadLatestBackup(path string, f Format) (*Palette, error) {
	bdir := filepath.Join(filepath.Dir(path), BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	prefix := filepath.Base(path) + "."
	var candidates []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".bak") {
			candidates = append(candidates, filepath.Join(bdir, name))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	sort.Strings(candidates) // timestamp in name yields lexicographic order
	return loadFile(candidates[len(candidates)-1], f)
}

// writeFileSync writes data to a file and flushes it to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

// backupFile copies path into bdir as <name>.<stamp>-<seq>.bak. The sequence
// number keeps saves within the same millisecond apart, and names sort in the
// order they were written.
func backupFile(path, bdir string) (string, error) {
	base := filepath.Base(path)
	stamp := time.Now().Format("20060102-150405.000")
	for seq := 0; seq < 1000; seq++ {
		bpath := filepath.Join(bdir, fmt.Sprintf("%s.%s-%03d.bak", base, stamp, seq))
		err := copyFile(path, bpath)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return bpath, err
	}
	return "", fmt.Errorf("no free backup name for %s at %s", base, stamp)
}

// copyFile copies src to dst, which must not exist yet.
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}
