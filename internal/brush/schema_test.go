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
	"testing"
)

func TestValidateJSONAcceptsEncodedBrushes(t *testing.T) {
	for _, name := range PresetNames() {
		b, _ := Preset(name)
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		if err := ValidateJSON(data); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestValidateJSONReportsAllViolations(t *testing.T) {
	doc := `{"color":{"red":0,"green":0,"blue":0},"width":"3","blendMode":"multiply"}`
	err := ValidateJSON([]byte(doc))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if len(se.Violations) < 4 {
		t.Fatalf("expected several violations, got %v", se.Violations)
	}
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("schema errors should match ErrDecode")
	}
}

func TestValidateJSONMalformed(t *testing.T) {
	if err := ValidateJSON([]byte(`{"color":`)); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestSchemaIsCopied(t *testing.T) {
	s := Schema()
	s[0] = 'x'
	if Schema()[0] != '{' {
		t.Fatalf("Schema() must not expose the embedded bytes")
	}
}
