// Copyright 2024 Google LLC
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

// Model is the merged result of building every File in a compile: the
// full set of top-level messages and enums, plus a by-ID index used for
// structural passes (recursive-field labeling, dependency walking) that
// need to look a type reference up without re-walking every file.
type Model struct {
	Files    []*File
	Messages []*Message
	Enums    []*Enum

	MessageByID map[string]*Message
	EnumByID    map[string]*Enum
}

// NewModel indexes files into a Model. It does not validate or
// cross-reference; callers run Validate and LabelRecursiveFields
// afterward.
func NewModel(files []*File) *Model {
	m := &Model{
		Files:       files,
		MessageByID: make(map[string]*Message),
		EnumByID:    make(map[string]*Enum),
	}
	for _, f := range files {
		m.Messages = append(m.Messages, f.Messages...)
		m.Enums = append(m.Enums, f.Enums...)
		for _, msg := range f.Messages {
			indexMessage(m, msg)
		}
		for _, e := range f.Enums {
			m.EnumByID[e.ID] = e
		}
	}
	return m
}

func indexMessage(m *Model, msg *Message) {
	m.MessageByID[msg.ID] = msg
	for _, nested := range msg.Messages {
		indexMessage(m, nested)
	}
	for _, e := range msg.Enums {
		m.EnumByID[e.ID] = e
	}
}
