/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package brush

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed brush.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// SchemaError lists every schema violation found in a serialized brush.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("brush does not match schema: %s", strings.Join(e.Violations, "; "))
}

// Is makes schema violations match ErrDecode.
func (e *SchemaError) Is(target error) bool { return target == ErrDecode }

// ValidateJSON checks a serialized brush against the embedded JSON Schema.
// Unlike UnmarshalJSON, which stops at the first bad field, it reports all of them.
func ValidateJSON(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile brush schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &DecodeError{Err: err}
	}
	if res.Valid() {
		return nil
	}
	v := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		v = append(v, e.String())
	}
	return &SchemaError{Violations: v}
}

// Schema returns the embedded JSON Schema document.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }
