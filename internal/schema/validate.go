// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schema

import "fmt"

// UnsupportedMapError is returned when a message built by the parser
// turned out to be a synthesized map-entry type (a `map<K, V>` field).
// Map fields are recognized so the builder doesn't choke on them, but
// spec.md §7 requires this be fatal, not silently skipped.
type UnsupportedMapError struct {
	MessageID string
}

func (e *UnsupportedMapError) Error() string {
	return fmt.Sprintf("schema: map fields not supported (found map entry type %s)", e.MessageID)
}

// DuplicateFieldNumberError is returned when two fields of the same
// message (oneof members included) declare the same number.
type DuplicateFieldNumberError struct {
	MessageID string
	Number    int32
}

func (e *DuplicateFieldNumberError) Error() string {
	return fmt.Sprintf("schema: message %s has two fields numbered %d", e.MessageID, e.Number)
}

// DuplicateEnumNumberError is returned when two values of the same enum
// declare the same number.
type DuplicateEnumNumberError struct {
	EnumID string
	Number int32
}

func (e *DuplicateEnumNumberError) Error() string {
	return fmt.Sprintf("schema: enum %s has two values numbered %d", e.EnumID, e.Number)
}

// MissingZeroValueError is returned when a proto3 enum has no value
// numbered 0.
type MissingZeroValueError struct {
	EnumID string
}

func (e *MissingZeroValueError) Error() string {
	return fmt.Sprintf("schema: enum %s has no value numbered 0", e.EnumID)
}

// Validate checks the invariants of spec.md §3 that are local to a single
// model: unique field numbers per message (invariants 1 and 2 collapse
// into one check here, since oneof member fields and plain fields share
// Message.Fields), unique-and-zero-containing enum values, and the
// map-field rejection rule of §7.
func Validate(model *Model) error {
	for _, m := range model.Messages {
		if err := validateMessage(m); err != nil {
			return err
		}
	}
	for _, e := range model.Enums {
		if err := validateEnum(e); err != nil {
			return err
		}
	}
	return nil
}

func validateMessage(m *Message) error {
	if m.IsMap {
		return &UnsupportedMapError{MessageID: m.ID}
	}
	seen := make(map[int32]bool, len(m.Fields))
	for _, f := range m.Fields {
		if seen[f.Number] {
			return &DuplicateFieldNumberError{MessageID: m.ID, Number: f.Number}
		}
		seen[f.Number] = true
	}
	for _, nested := range m.Messages {
		if err := validateMessage(nested); err != nil {
			return err
		}
	}
	for _, e := range m.Enums {
		if err := validateEnum(e); err != nil {
			return err
		}
	}
	return nil
}

func validateEnum(e *Enum) error {
	seen := make(map[int32]bool, len(e.Values))
	hasZero := false
	for _, v := range e.Values {
		if seen[v.Number] {
			return &DuplicateEnumNumberError{EnumID: e.ID, Number: v.Number}
		}
		seen[v.Number] = true
		if v.Number == 0 {
			hasZero = true
		}
	}
	if !hasZero {
		return &MissingZeroValueError{EnumID: e.ID}
	}
	return nil
}
