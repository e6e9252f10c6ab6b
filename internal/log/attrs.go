/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package log

import (
	"log/slog"

	"inkbrush/internal/brush"
)

// Brush groups the attributes of b that change while drawing under key.
func Brush(key string, b brush.Brush) slog.Attr {
	return slog.Group(key,
		slog.String("color", b.Color.String()),
		slog.Float64("width", b.Width),
		slog.Float64("original", b.OriginalWidth()),
		slog.Float64("opacity", b.Opacity),
		slog.String("blend", b.BlendMode.String()),
	)
}

// Sample groups one input sample under key.
func Sample(key string, s brush.TouchSample) slog.Attr {
	return slog.Group(key,
		slog.String("device", s.Device.String()),
		slog.Float64("altitude", s.AltitudeAngle),
	)
}
