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

// Package parser implements a hand-written lexer and recursive-descent
// parser for the proto3 grammar subset this compiler recognizes (spec.md
// §6: syntax, package, import, option java_package, message, enum,
// fields, oneof, map<K,V>, reserved, field option deprecated). It produces
// a parse tree, not a schema model: internal/schema.Build walks the tree
// this package returns into the normalized Message/Enum/Field graph.
package parser

// ParseTree is the retained-node-kind parse of a single .proto file
// (spec.md §4.1).
type ParseTree struct {
	Path        string
	Syntax      string
	Package     string
	JavaPackage string
	Imports     []string
	Messages    []*MessageNode
	Enums       []*EnumNode
}

// MessageNode is a parsed `message` declaration, possibly nested.
type MessageNode struct {
	Name       string
	Doc        string
	Deprecated bool
	Fields     []*FieldNode
	OneOfs     []*OneOfNode
	Messages   []*MessageNode
	Enums      []*EnumNode
	Reserved   []ReservedRange
}

// FieldNode is a single field declaration, whether standing alone or a
// member of a OneOfNode.
type FieldNode struct {
	Name       string
	Doc        string
	Number     int32
	TypeName   string
	Repeated   bool
	Optional   bool
	Deprecated bool
	// MapKeyType and MapValueType are set instead of TypeName when the
	// field was declared as `map<K, V>`.
	MapKeyType   string
	MapValueType string
}

// OneOfNode groups the fields of a proto3 `oneof` block.
type OneOfNode struct {
	Name   string
	Doc    string
	Fields []*FieldNode
}

// EnumNode is a parsed `enum` declaration, possibly nested.
type EnumNode struct {
	Name       string
	Doc        string
	Deprecated bool
	Values     []*EnumValueNode
}

// EnumValueNode is a single (name, number) pair of an EnumNode.
type EnumValueNode struct {
	Name       string
	Number     int32
	Doc        string
	Deprecated bool
}

// ReservedRange is one `reserved` statement's field-number span; `From ==
// To` for a single reserved number.
type ReservedRange struct {
	From int32
	To   int32
}
