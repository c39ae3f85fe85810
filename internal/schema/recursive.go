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

// LabelRecursiveFields sets Field.Recursive on every field whose type
// transitively refers back to its own declaring message. The Model
// Emitter does not read the label: it holds every MESSAGE field through a
// pointer, which already breaks cycles (spec.md §9: "Model emission
// breaks cycles by going through indirection").
func LabelRecursiveFields(model *Model) {
	for _, m := range model.MessageByID {
		for _, field := range allFields(m) {
			field.Recursive = field.recursivelyReferences(m.ID, model)
		}
	}
}

func allFields(m *Message) []*Field {
	return m.Fields
}

func (field *Field) recursivelyReferences(messageID string, model *Model) bool {
	if field.Typez != MESSAGE_TYPE {
		return false
	}
	if field.TypezID == messageID || field.Recursive {
		return true
	}
	if target, ok := model.MessageByID[field.TypezID]; ok {
		return target.recursivelyReferences(messageID, model)
	}
	return false
}

func (message *Message) recursivelyReferences(messageID string, model *Model) bool {
	for _, field := range message.Fields {
		if field.recursivelyReferences(messageID, model) {
			return true
		}
	}
	return false
}
