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

// Package schema holds the normalized, immutable representation of a set
// of proto3 files: messages, enums, oneofs, and fields, built once per
// compile by Build and never mutated afterward.
package schema

// Typez is the wire-relevant type of a field, mirroring
// descriptorpb.FieldDescriptorProto_Type minus the proto2-only GROUP
// variant (proto2 is a Non-goal).
type Typez int

const (
	UNDEFINED_TYPE Typez = iota
	DOUBLE_TYPE
	FLOAT_TYPE
	INT64_TYPE
	UINT64_TYPE
	INT32_TYPE
	FIXED64_TYPE
	FIXED32_TYPE
	BOOL_TYPE
	STRING_TYPE
	MESSAGE_TYPE
	BYTES_TYPE
	UINT32_TYPE
	ENUM_TYPE
	SFIXED32_TYPE
	SFIXED64_TYPE
	SINT32_TYPE
	SINT64_TYPE
)

func (t Typez) String() string {
	switch t {
	case DOUBLE_TYPE:
		return "double"
	case FLOAT_TYPE:
		return "float"
	case INT64_TYPE:
		return "int64"
	case UINT64_TYPE:
		return "uint64"
	case INT32_TYPE:
		return "int32"
	case FIXED64_TYPE:
		return "fixed64"
	case FIXED32_TYPE:
		return "fixed32"
	case BOOL_TYPE:
		return "bool"
	case STRING_TYPE:
		return "string"
	case MESSAGE_TYPE:
		return "message"
	case BYTES_TYPE:
		return "bytes"
	case UINT32_TYPE:
		return "uint32"
	case ENUM_TYPE:
		return "enum"
	case SFIXED32_TYPE:
		return "sfixed32"
	case SFIXED64_TYPE:
		return "sfixed64"
	case SINT32_TYPE:
		return "sint32"
	case SINT64_TYPE:
		return "sint64"
	default:
		return "undefined"
	}
}

// IsScalar reports whether t is a non-enum, non-message scalar wire type.
func (t Typez) IsScalar() bool {
	return t != UNDEFINED_TYPE && t != MESSAGE_TYPE && t != ENUM_TYPE
}

// File is one parsed .proto input. The source directory bucket (the
// lower-cased last path segment of the file's directory) feeds the Lookup
// Helper's per-message namespace computation; see internal/lookup.
type File struct {
	// Path is the input file path, relative to the compile root.
	Path string
	// Package is the proto package declared (or inherited) for this file.
	Package string
	// JavaPackageOverride holds `option java_package`, if present. It is
	// recorded only: no later stage reads it, and it does not change the
	// namespace a file's artifacts are emitted under (that comes from
	// DirBucket and the configured Namespaces overrides).
	JavaPackageOverride string
	// DirBucket is the lower-cased last path segment of this file's
	// directory, used by the Lookup Helper.
	DirBucket string
	Messages  []*Message
	Enums     []*Enum
	// Imports lists the relative paths of other .proto files this file
	// imports.
	Imports []string
}

// Message is a proto3 message definition.
type Message struct {
	// ID is the fully qualified proto name, e.g. ".payments.v1.Invoice".
	ID            string
	Name          string
	Documentation string
	Deprecated    bool
	Fields        []*Field
	OneOfs        []*OneOf
	Messages      []*Message
	Enums         []*Enum
	Parent        *Message
	Package       string
	// IsMap is true for the compiler-synthesized entry message of a
	// `map<K, V>` field. Map fields are recognized but rejected (see
	// internal/schema/validate.go), so this is only ever observed, never
	// emitted.
	IsMap bool
	// Reserved lists the field-number ranges this message's `reserved`
	// statements withhold from reuse. Carried through from the parse tree
	// (supplemented feature: spec.md §4.1 retains "reserved blocks" as a
	// node kind but spec.md itself never says what a compiler does with
	// them) so a later pass can warn when a declared field number falls in
	// one, per the ReservedNumberUsed row this expansion adds to spec.md
	// §7's error table.
	Reserved []ReservedRange
}

// ReservedRange is one `reserved` statement's field-number span; From == To
// for a single reserved number, mirroring parser.ReservedRange.
type ReservedRange struct {
	From int32
	To   int32
}

// Enum is a proto3 enum definition.
type Enum struct {
	ID            string
	Name          string
	Documentation string
	Deprecated    bool
	Values        []*EnumValue
	Parent        *Message
	Package       string
}

// EnumValue is one (number, name) pair of an Enum.
type EnumValue struct {
	ID            string
	Name          string
	Number        int32
	Documentation string
	Deprecated    bool
	Parent        *Enum
}

// FieldKind distinguishes a field that stands alone from one that is a
// member of a oneof's discriminated union.
type FieldKind int

const (
	FieldSingle FieldKind = iota
	FieldOneOfMember
)

// Field is a single field declaration. Both of spec.md's Field variants
// (SingleField and OneOfField's children) are represented by this one
// struct; a OneOfField itself has no separate representation; see OneOf.
type Field struct {
	ID            string
	Name          string
	Documentation string
	Number        int32
	Kind          FieldKind
	Typez         Typez
	// TypezID is the fully qualified proto name of the referenced
	// message or enum; empty for scalar fields.
	TypezID string
	Repeated bool
	// Optional means: wrapped in a proto3 `optional` field, or in a
	// recognized google.protobuf.*Value wrapper message (in which case
	// Typez has already been substituted for the wrapper's inner scalar
	// type and TypezID cleared; see wrappers.go).
	Optional   bool
	Deprecated bool
	// OneOf is non-nil when Kind == FieldOneOfMember: the group this
	// field belongs to.
	OneOf *OneOf
	// Recursive is true if this field's type transitively refers back to
	// the message that declares it; set by LabelRecursiveFields after the
	// whole model is built. The emitters do not consult it: every
	// MESSAGE-typed field is held through a pointer, recursive or not
	// (see emit.FieldGoType), which is how cycles are broken (spec.md §9).
	Recursive bool
}

// OneOf is a group of mutually exclusive fields: proto3's `oneof`.
type OneOf struct {
	ID            string
	Name          string
	Documentation string
	// Fields is the ordered list of member fields, i.e. the synthesized
	// discriminated union's branches.
	Fields []*Field
	Parent *Message
}
