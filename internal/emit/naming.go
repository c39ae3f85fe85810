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

// Package emit renders the four Go source artifacts (model, parser,
// writer, test) the Emitters owe each schema.Message, via mustache
// templates embedded in this package (spec.md §4.4). Per-field Go names,
// types, and encode/decode statement text are computed ahead of time by
// viewmodel.go so the templates themselves stay logic-less, the way the
// teacher's codecs precompute a view model before handing it to mustache
// (internal/golang/golang.go's newTemplateData).
package emit

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// goKeywords is the full set of Go reserved words, expanding the
// teacher's escapeKeyword table (internal/golang/golang.go), which only
// covered the words its own generated clients happened to collide with.
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
	"nil": true, "true": true, "false": true, "iota": true, "append": true, "len": true,
	"error": true, "string": true, "int": true, "int32": true, "int64": true,
	"uint32": true, "uint64": true, "float32": true, "float64": true, "bool": true, "byte": true,
}

func escapeKeyword(name string) string {
	if goKeywords[strings.ToLower(name)] {
		return name + "_"
	}
	return name
}

// GoFieldName returns the exported Go struct-field identifier for a
// schema.Field, following the teacher's strcase.ToCamel convention
// (internal/golang/golang.go:messageName/enumName use the same library
// for the equivalent conversion at the message/enum level).
func GoFieldName(protoName string) string {
	return escapeKeyword(strcase.ToCamel(protoName))
}

// GoEnumValueName returns the exported Go constant identifier for an enum
// value, SCREAMING_SNAKE_CASE on the wire turned into a Go-style
// identifier prefixed with the enum's name to avoid sibling collisions
// (Go has no enum-scoped namespacing), mirroring
// internal/golang/golang.go:enumValueName's import-qualification role but
// for intra-package disambiguation instead.
func GoEnumValueName(enumGoName, protoValueName string) string {
	return enumGoName + "_" + escapeKeyword(strcase.ToCamel(strings.ToLower(protoValueName)))
}

// GoOneOfBranchName renders spec.md §3 invariant 4's camelToUpperSnake
// oneof-branch naming requirement as an exported Go identifier instead:
// the branch enum value attached to a oneof's discriminant type.
func GoOneOfBranchName(oneofTypeGoName, branchProtoName string) string {
	return oneofTypeGoName + "_" + escapeKeyword(strcase.ToCamel(branchProtoName))
}
