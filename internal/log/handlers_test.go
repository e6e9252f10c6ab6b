/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestContextAttrsReachEverySink(t *testing.T) {
	var a, b bytes.Buffer
	h := contextHandler{newFanout(
		newConsoleHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		newConsoleHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)}
	l := slog.New(h)

	ctx := WithPreset(WithPalette(context.Background(), "/tmp/tools.toml"), "marker")
	l.InfoContext(ctx, "loaded")
	l.WarnContext(ctx, "restored from backup")

	if got := a.String(); !strings.Contains(got, "INF loaded palette=/tmp/tools.toml preset=marker") ||
		!strings.Contains(got, "WRN restored from backup") {
		t.Fatalf("debug sink got %q", got)
	}
	if got := b.String(); strings.Contains(got, "loaded") ||
		!strings.Contains(got, "WRN restored from backup palette=/tmp/tools.toml preset=marker") {
		t.Fatalf("warn sink got %q", got)
	}
}

func TestContextWithoutValuesAddsNothing(t *testing.T) {
	var buf bytes.Buffer
	slog.New(contextHandler{newConsoleHandler(&buf, nil)}).InfoContext(WithPalette(context.Background(), ""), "x")
	if strings.Contains(buf.String(), "palette") || strings.Contains(buf.String(), "preset") {
		t.Fatalf("unexpected attrs: %q", buf.String())
	}
}

func TestJSONFormatCarriesPalette(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "JSON", Console: &buf})
	t.Cleanup(func() { Init(Options{Level: "info"}) })

	ctx := WithPalette(context.Background(), "/tmp/tools.yaml")
	WithOperation(WithComponent("palette"), "load").InfoContext(ctx, "loaded", slog.Int("entries", 7))

	var m map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if m["palette"] != "/tmp/tools.yaml" || m["component"] != "palette" || m["op"] != "load" || m["entries"] != float64(7) {
		t.Fatalf("unexpected attrs: %v", m)
	}
}
