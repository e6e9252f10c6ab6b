/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"inkbrush/internal/brush"
	"inkbrush/internal/config"
	"inkbrush/internal/crash"
	applog "inkbrush/internal/log"
	"inkbrush/internal/palette"
	"inkbrush/internal/render"
	"inkbrush/internal/version"
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "inkbrush: drawing tool brushes")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  inkbrush version|-v|--version                Show version")
	_, _ = fmt.Fprintln(w, "  inkbrush current                             Print the configured brush as JSON")
	_, _ = fmt.Fprintln(w, "  inkbrush presets                             List the named presets")
	_, _ = fmt.Fprintln(w, "  inkbrush show <preset> [json|yaml|toml]      Print a preset in the given encoding")
	_, _ = fmt.Fprintln(w, "  inkbrush params <preset>                     Print compositor parameters for a preset")
	_, _ = fmt.Fprintln(w, "  inkbrush adjust <preset> <device> [altitude] Apply one input sample and print the width")
	_, _ = fmt.Fprintln(w, "  inkbrush validate <brush.json>               Check a serialized brush")
	_, _ = fmt.Fprintln(w, "  inkbrush palette [<file>]                    Load, dedupe and sort a palette file")
	_, _ = fmt.Fprintln(w, "  inkbrush palette-init <file>                 Write the builtin palette to <file>")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.Init(applog.FromEnv())
		applog.WithComponent("cli").Warn("config not loaded, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	} else {
		applog.Init(cfg.Logging.LogOptions())
	}
	defer func() { crash.Recover("") }()
	os.Exit(run(os.Args[1:], cfg, os.Stdout))
}

// run executes one command and returns the process exit code.
func run(args []string, cfg config.AppConfig, out io.Writer) int {
	l := applog.WithComponent("cli")
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) == 0 {
		usage(out)
		return 0
	}
	var err error
	switch args[0] {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(out, version.String())
		return 0
	case "current":
		err = cmdCurrent(cfg, out)
	case "presets":
		err = cmdPresets(out)
	case "show":
		if len(args) < 2 {
			return usageError(out, "show requires <preset>")
		}
		format := "json"
		if len(args) > 2 {
			format = args[2]
		}
		err = cmdShow(args[1], format, out)
	case "params":
		if len(args) < 2 {
			return usageError(out, "params requires <preset>")
		}
		err = cmdParams(args[1], out)
	case "adjust":
		if len(args) < 3 {
			return usageError(out, "adjust requires <preset> and <device>")
		}
		err = cmdAdjust(args[1], args[2], args[3:], out)
	case "validate":
		if len(args) < 2 {
			return usageError(out, "validate requires <file>")
		}
		err = cmdValidate(args[1], out)
	case "palette":
		path := cfg.Brush.Palette
		if len(args) > 1 {
			path = args[1]
		}
		if path == "" {
			return usageError(out, "palette requires <file> or brush.palette in the config")
		}
		err = cmdPalette(path, out)
	case "palette-init":
		if len(args) < 2 {
			return usageError(out, "palette-init requires <file>")
		}
		err = palette.Save(args[1], palette.Builtin())
		if err == nil {
			_, _ = fmt.Fprintln(out, "Wrote builtin palette to", args[1])
		}
	default:
		return usageError(out, fmt.Sprintf("unknown command %q", args[0]))
	}
	if err != nil {
		l.Error("command failed", slog.String("cmd", args[0]), slog.Any("err", err))
		_, _ = fmt.Fprintln(out, "Error:", err)
		if errors.Is(err, brush.ErrDecode) {
			return 3
		}
		return 1
	}
	return 0
}

func usageError(out io.Writer, msg string) int {
	_, _ = fmt.Fprintln(out, msg)
	usage(out)
	return 2
}

func cmdCurrent(cfg config.AppConfig, out io.Writer) error {
	b, err := cfg.Brush.Resolve()
	if err != nil {
		return err
	}
	ctx := applog.WithPreset(context.Background(), cfg.Brush.Preset)
	applog.WithComponent("cli").DebugContext(ctx, "resolved configured brush", applog.Brush("brush", b))
	return writeBrush(out, b, "json")
}

func cmdPresets(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tWIDTH\tOPACITY\tBLEND\tCOLOR")
	for _, n := range brush.PresetNames() {
		b, _ := brush.Preset(n)
		_, _ = fmt.Fprintf(tw, "%s\t%g\t%g\t%s\t%s\n", n, b.Width, b.Opacity, b.BlendMode, b.Color)
	}
	return tw.Flush()
}

func cmdShow(name, format string, out io.Writer) error {
	b, err := brush.Preset(name)
	if err != nil {
		return err
	}
	return writeBrush(out, b, format)
}

func writeBrush(out io.Writer, b brush.Brush, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(b.Document()); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(out).Encode(b.Document())
	}
	return fmt.Errorf("%w: %q", palette.ErrUnsupportedFormat, format)
}

func cmdParams(name string, out io.Writer) error {
	b, err := brush.Preset(name)
	if err != nil {
		return err
	}
	p := render.Params(b)
	op := "over"
	if p.Op == render.Op(brush.Clear) {
		op = "src"
	}
	_, err = fmt.Fprintf(out, "color=%v width=%g op=%s border=%g shadow=%v\n",
		p.Color, p.Width, op, p.Border.Width, p.Shadow.Visible())
	return err
}

func cmdAdjust(name, device string, rest []string, out io.Writer) error {
	b, err := brush.Preset(name)
	if err != nil {
		return err
	}
	d, ok := brush.ParseDeviceType(device)
	if !ok {
		return fmt.Errorf("unknown device %q (want direct, indirect, pencil or pointer)", device)
	}
	s := brush.TouchSample{Device: d}
	if len(rest) > 0 {
		if s.AltitudeAngle, err = strconv.ParseFloat(rest[0], 64); err != nil {
			return fmt.Errorf("altitude: %w", err)
		}
	}
	b.AdjustWidth(s)
	ctx := applog.WithPreset(context.Background(), name)
	applog.WithOperation(applog.WithComponent("cli"), "adjust").
		DebugContext(ctx, "width adjusted", applog.Sample("sample", s), applog.Brush("brush", b))
	_, err = fmt.Fprintf(out, "original=%g width=%g\n", b.OriginalWidth(), b.Width)
	return err
}

func cmdValidate(path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := brush.ValidateJSON(data); err != nil {
		return err
	}
	var b brush.Brush
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "OK: width=%g opacity=%g blend=%s\n", b.Width, b.Opacity, b.BlendMode)
	return err
}

func cmdPalette(path string, out io.Writer) error {
	ctx := applog.WithPalette(context.Background(), path)
	l := applog.WithOperation(applog.WithComponent("cli"), "palette")
	p, err := palette.Load(path)
	if err != nil {
		return err
	}
	removed := p.Dedupe()
	p.SortByWeight()
	l.InfoContext(ctx, "palette loaded", slog.Int("entries", len(p.Entries)), slog.Int("duplicates", removed))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "# %s (%d entries, %d duplicates dropped)\n", p.Name, len(p.Entries), removed)
	_, _ = fmt.Fprintln(tw, "NAME\tWIDTH\tID")
	for _, e := range p.Entries {
		_, _ = fmt.Fprintf(tw, "%s\t%g\t%s\n", e.Name, e.Brush.Width, e.ID)
	}
	return tw.Flush()
}
