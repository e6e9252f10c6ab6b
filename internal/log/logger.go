/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


// Package log configures the slog logger shared by inkbrush. Records go to a
// console sink, either readable text or JSON, and optionally to a rotated JSON
// file. Brush values and input samples have dedicated attrs (see Brush and
// Sample) so stroke state reads the same in every sink.
package log

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"

	"inkbrush/internal/version"
)

// Options controls Init. FromEnv fills it from the INKBRUSH_LOG_* variables.
type Options struct {
	Level     string    // debug, info, warn or error; slog offsets like "debug+2" work too
	Format    string    // FormatConsole or FormatJSON
	AddSource bool      // append the caller's file:line
	File      string    // rotated JSON log file; empty disables it
	Console   io.Writer // console sink; nil means os.Stderr
}

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "INKBRUSH_LOG_LEVEL"
	EnvFormat = "INKBRUSH_LOG_FORMAT"
	EnvSource = "INKBRUSH_LOG_SOURCE"
	EnvFile   = "INKBRUSH_LOG_FILE"
)

var (
	mu      sync.RWMutex
	current *slog.Logger
	level   = new(slog.LevelVar)
)

// L returns the application logger. The first call without a prior Init
// configures it from the environment.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l == nil {
		return Init(FromEnv())
	}
	return l
}

// Init builds the application logger from opts, installs it as slog's default
// and returns it. Loggers handed out earlier keep their sinks but follow the new level.
func Init(opts Options) *slog.Logger {
	level.Set(ParseLevel(opts.Level))
	hopts := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}

	w := opts.Console
	if w == nil {
		w = os.Stderr
	}
	var sinks []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), FormatJSON) {
		sinks = append(sinks, slog.NewJSONHandler(w, hopts))
	} else {
		sinks = append(sinks, newConsoleHandler(w, hopts))
	}
	if f := strings.TrimSpace(opts.File); f != "" {
		sinks = append(sinks, slog.NewJSONHandler(rotating(f), hopts))
	}

	l := slog.New(contextHandler{newFanout(sinks...)}).With(
		slog.String("app", "inkbrush"),
		slog.String("ver", version.Version),
	)
	mu.Lock()
	current = l
	mu.Unlock()
	slog.SetDefault(l)
	return l
}

func rotating(path string) io.Writer {
	return &lj.Logger{Filename: path, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
}

// FromEnv reads Options from the environment. Unset variables leave the
// defaults: info level, console format, no source, no file.
func FromEnv() Options {
	o := Options{Level: "info", Format: FormatConsole, File: os.Getenv(EnvFile)}
	if v := os.Getenv(EnvLevel); v != "" {
		o.Level = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		o.Format = v
	}
	o.AddSource, _ = strconv.ParseBool(os.Getenv(EnvSource))
	return o
}

// ParseLevel maps a level name to a slog.Level. Besides the names slog itself
// understands it accepts "warning". Anything unrecognized is Info.
func ParseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// WithComponent returns the application logger tagged with a component name.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation tags l with the operation being performed.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }
