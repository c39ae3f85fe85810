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

package emit

import (
	"fmt"

	"github.com/wireforge/protoforge/internal/schema"
)

// wireCategory groups a Typez by how it travels on the wire (spec.md
// §4.4.2/§4.4.3): the Parser/Writer Emitters dispatch on this, not on
// the exact Typez, since every member of a category shares one decode
// and one encode shape.
type wireCategory int

const (
	catVarint wireCategory = iota
	catZigZag
	catFixed32
	catFixed64
	catFloat32
	catFloat64
	catBool
	catString
	catBytes
	catMessage
	catEnum
)

type scalarInfo struct {
	goType   string
	category wireCategory
	zero     string
}

var scalarInfos = map[schema.Typez]scalarInfo{
	schema.INT32_TYPE:    {"int32", catVarint, "0"},
	schema.UINT32_TYPE:   {"uint32", catVarint, "0"},
	schema.INT64_TYPE:    {"int64", catVarint, "0"},
	schema.UINT64_TYPE:   {"uint64", catVarint, "0"},
	schema.SINT32_TYPE:   {"int32", catZigZag, "0"},
	schema.SINT64_TYPE:   {"int64", catZigZag, "0"},
	schema.FIXED32_TYPE:  {"uint32", catFixed32, "0"},
	schema.FIXED64_TYPE:  {"uint64", catFixed64, "0"},
	schema.SFIXED32_TYPE: {"int32", catFixed32, "0"},
	schema.SFIXED64_TYPE: {"int64", catFixed64, "0"},
	schema.FLOAT_TYPE:    {"float32", catFloat32, "0"},
	schema.DOUBLE_TYPE:   {"float64", catFloat64, "0"},
	schema.BOOL_TYPE:     {"bool", catBool, "false"},
	schema.STRING_TYPE:   {"string", catString, `""`},
	schema.BYTES_TYPE:    {"[]byte", catBytes, "nil"},
}

// GoScalarType returns the Go representation of a non-message, non-enum
// field's wire type.
func GoScalarType(t schema.Typez) string {
	info, ok := scalarInfos[t]
	if !ok {
		return "any"
	}
	return info.goType
}

// ZeroLiteral returns the Go literal for a scalar type's proto3 default,
// used by the Writer Emitter's default-value elision check (spec.md
// §4.4.3) through FieldPlan.ZeroLit.
func ZeroLiteral(t schema.Typez) string {
	info, ok := scalarInfos[t]
	if !ok {
		return "nil"
	}
	return info.zero
}

func categoryOf(t schema.Typez) wireCategory {
	if t == schema.MESSAGE_TYPE {
		return catMessage
	}
	if t == schema.ENUM_TYPE {
		return catEnum
	}
	return scalarInfos[t].category
}

// FieldGoType computes the Go type used to hold a field's value in the
// generated Model struct: the bare scalar type, a pointer for a
// recursive or non-recursive MESSAGE reference, an exported enum type
// name, or a slice of any of the above for a repeated field. lookup
// resolves MESSAGE/ENUM type names across packages.
func FieldGoType(field *schema.Field, messageGoName func(id string) string, enumGoName func(id string) string) string {
	var base string
	switch field.Typez {
	case schema.MESSAGE_TYPE:
		base = "*" + messageGoName(field.TypezID)
	case schema.ENUM_TYPE:
		base = enumGoName(field.TypezID)
	default:
		base = GoScalarType(field.Typez)
	}
	if field.Repeated {
		return "[]" + base
	}
	// A field wrapped in proto3 `optional`, or a recognized
	// google.protobuf.*Value substitution (see schema/wrappers.go), needs
	// explicit presence: a bare scalar zero value cannot distinguish unset
	// from explicitly-set-to-zero. MESSAGE fields already carry presence
	// through their pointer, so they are left as-is.
	if field.Optional && field.Typez != schema.MESSAGE_TYPE {
		return "*" + base
	}
	return base
}

// fieldCategoryName is used by describeField to name a field's wire
// category in diagnostics without exposing the unexported
// wireCategory type itself.
func fieldCategoryName(t schema.Typez) string {
	switch categoryOf(t) {
	case catVarint:
		return "varint"
	case catZigZag:
		return "zigzag"
	case catFixed32:
		return "fixed32"
	case catFixed64:
		return "fixed64"
	case catFloat32:
		return "float32"
	case catFloat64:
		return "float64"
	case catBool:
		return "bool"
	case catString:
		return "string"
	case catBytes:
		return "bytes"
	case catMessage:
		return "message"
	case catEnum:
		return "enum"
	default:
		return fmt.Sprintf("typez(%d)", t)
	}
}
