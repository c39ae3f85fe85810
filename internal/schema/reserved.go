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

// ReservedNumberWarning reports a field number that falls inside one of its
// message's own `reserved` ranges. Unlike Validate's errors, this is never
// fatal (spec.md's expanded §7 error table: "ReservedNumberUsed ... warning;
// continue") — callers collect these and hand them to a diagnostic sink
// rather than aborting the compile.
type ReservedNumberWarning struct {
	MessageID string
	Field     string
	Number    int32
}

func (w ReservedNumberWarning) String() string {
	return fmt.Sprintf("schema: %s.%s uses field number %d, which %s reserves", w.MessageID, w.Field, w.Number, w.MessageID)
}

// CheckReservedNumbers walks model for every field whose number falls
// inside its own message's reserved ranges, in declaration order.
func CheckReservedNumbers(model *Model) []ReservedNumberWarning {
	var warnings []ReservedNumberWarning
	for _, m := range model.Messages {
		checkMessageReservedNumbers(m, &warnings)
	}
	return warnings
}

func checkMessageReservedNumbers(m *Message, warnings *[]ReservedNumberWarning) {
	if len(m.Reserved) > 0 {
		for _, f := range m.Fields {
			if inReservedRange(m.Reserved, f.Number) {
				*warnings = append(*warnings, ReservedNumberWarning{MessageID: m.ID, Field: f.Name, Number: f.Number})
			}
		}
	}
	for _, nested := range m.Messages {
		checkMessageReservedNumbers(nested, warnings)
	}
}

func inReservedRange(ranges []ReservedRange, number int32) bool {
	for _, r := range ranges {
		if number >= r.From && number <= r.To {
			return true
		}
	}
	return false
}
