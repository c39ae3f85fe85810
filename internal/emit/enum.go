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
	"strings"

	"github.com/wireforge/protoforge/internal/lookup"
	"github.com/wireforge/protoforge/internal/schema"
)

// EmitEnum renders the Go form of a proto3 enum: an int32-backed named
// type, one constant per declared value, a String method, and a Values
// function the Test Emitter's ENUM sample list (spec.md §4.4.4) calls to
// enumerate every declared value. Grounded on the teacher's enum rendering
// in internal/golang/golang.go (enumName/enumValueName), adapted from
// protoc-style generated enums to this compiler's own plain int32 type
// plus const block, since there is no wire.Codec indirection to route
// through here.
func EmitEnum(st *lookup.SymbolTable, e *schema.Enum) (*EmittedFile, error) {
	name := GoFieldName(e.Name)
	pkg := st.PackageForEnum(lookup.KindModel, e)

	var body strings.Builder
	fmt.Fprintf(&body, "// %s is the generated Go form of the %s enum.\n", name, e.Name)
	fmt.Fprintf(&body, "type %s int32\n\n", name)

	body.WriteString("const (\n")
	for _, v := range e.Values {
		fmt.Fprintf(&body, "\t%s %s = %d\n", GoEnumValueName(name, v.Name), name, v.Number)
	}
	body.WriteString(")\n\n")

	fmt.Fprintf(&body, "// String renders %s using its declared proto enum value name, or a\n", name)
	body.WriteString("// numeric placeholder for a value absent from the schema.\n")
	fmt.Fprintf(&body, "func (e %s) String() string {\n\tswitch e {\n", name)
	for _, v := range e.Values {
		fmt.Fprintf(&body, "\tcase %s:\n\t\treturn %q\n", GoEnumValueName(name, v.Name), v.Name)
	}
	fmt.Fprintf(&body, "\tdefault:\n\t\treturn fmt.Sprintf(\"%s(%%d)\", int32(e))\n\t}\n}\n\n", name)

	fmt.Fprintf(&body, "// %sValues returns every value %s declares, in declaration order.\n", name, name)
	fmt.Fprintf(&body, "func %sValues() []%s {\n\treturn []%s{", name, name, name)
	for i, v := range e.Values {
		if i > 0 {
			body.WriteString(", ")
		}
		body.WriteString(GoEnumValueName(name, v.Name))
	}
	body.WriteString("}\n}\n\n")

	skeleton := newSkeleton(ReflowDoc("//", e.Documentation), packageAlias(pkg), []ImportEntry{{Alias: "fmt", Path: "fmt"}}, body.String())
	source, err := renderFile("file.go.mustache", skeleton)
	if err != nil {
		return nil, fmt.Errorf("emit enum %s: %w", e.ID, err)
	}
	return &EmittedFile{
		ImportPath: GoImportPath(pkg),
		FileName:   strings.ToLower(name) + ".go",
		Source:     source,
	}, nil
}
