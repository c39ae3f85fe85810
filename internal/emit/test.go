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
	"sort"
	"strings"

	"github.com/wireforge/protoforge/internal/config"
	"github.com/wireforge/protoforge/internal/lookup"
	"github.com/wireforge/protoforge/internal/schema"
)

// EmitTest renders the Test Emitter's output for m (spec.md §4.4.4): a
// sample-value generator aligned field-by-field rather than by full cross
// product, and a round-trip check that writes each sample with the
// generated Writer and parses it back with the generated Parser. Grounded
// on the teacher's generated-client integration tests
// (internal/golang/golang.go's test template, which also builds one
// representative request value per RPC and checks it marshals), adapted
// from a single example value to the spec's field-table sampling scheme
// and emitted as a standard Go *_test.go file rather than a JUnit-style
// parameterized test class.
func EmitTest(st *lookup.SymbolTable, model *schema.Model, m *schema.Message, cfg *config.Config) (*EmittedFile, error) {
	plan := BuildMessagePlan(st, model, lookup.KindTest, m)

	extraImports := map[string]string{}
	writerRef := selfArtifactRef(st, plan, lookup.KindWriter, m, extraImports)
	parserRef := selfArtifactRef(st, plan, lookup.KindParser, m, extraImports)

	var body strings.Builder
	fmt.Fprintf(&body, "// %s generates representative sample values for %s and checks that\n", plan.ArtifactName, plan.ModelRef)
	body.WriteString("// the generated Writer/Parser pair round-trips them without loss.\n")
	fmt.Fprintf(&body, "type %s struct{}\n\n", plan.ArtifactName)

	usesMath := writeCreateTestArguments(&body, plan, cfg)
	writeAssertRoundTrip(&body, plan, cfg, writerRef, parserRef)
	writeRoundTripTestFunc(&body, plan)

	imports := append([]ImportEntry(nil), plan.Imports...)
	for pkg, path := range extraImports {
		imports = append(imports, ImportEntry{Alias: importAlias(pkg), Path: path})
	}
	if usesOptionalField(plan) {
		imports = withWireImport(imports)
	}
	imports = append(imports, ImportEntry{Alias: "fmt", Path: "fmt"}, ImportEntry{Alias: "testing", Path: "testing"})
	if usesMath {
		imports = append(imports, ImportEntry{Alias: "math", Path: "math"})
	}
	if cfg != nil && cfg.Testing.AgainstReferenceEncoder {
		imports = append(imports, ImportEntry{Alias: "diffcheck", Path: "github.com/wireforge/protoforge/internal/diffcheck"})
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })

	skeleton := newSkeleton("", plan.PackageName, imports, body.String())
	source, err := renderFile("file.go.mustache", skeleton)
	if err != nil {
		return nil, fmt.Errorf("emit test %s: %w", m.ID, err)
	}
	return &EmittedFile{
		ImportPath: GoImportPath(st.PackageForMessage(lookup.KindTest, m)),
		FileName:   strings.ToLower(plan.GoName) + "_test.go",
		Source:     source,
	}, nil
}

// selfArtifactRef qualifies a reference from plan's own (Test) package to
// m's artifact of a different kind (its own Writer or Parser), which
// BuildMessagePlan never has reason to compute since it only resolves
// references a field's type carries, not a Test file's standing need to
// drive its own message's Writer and Parser.
func selfArtifactRef(st *lookup.SymbolTable, plan *MessagePlan, kind lookup.ArtifactKind, m *schema.Message, extra map[string]string) string {
	name := st.UnqualifiedClassForMessage(kind, m)
	targetPkg := st.PackageForMessage(kind, m)
	if targetPkg == st.PackageForMessage(plan.Kind, m) {
		return name
	}
	extra[targetPkg] = GoImportPath(targetPkg)
	return importAlias(targetPkg) + "." + name
}

// usesOptionalField reports whether plan has any explicit-presence plain
// field, the only case CreateTestArguments needs wire.Ptr for.
func usesOptionalField(plan *MessagePlan) bool {
	for _, f := range plan.PlainFields {
		if f.IsOptional {
			return true
		}
	}
	return false
}

// baseSampleSet returns f's element Go type and a Go expression
// evaluating to its representative sample list, ignoring f's
// repeated/optional wrapping (writeFieldSampleDecl applies that).
// Grounded on spec.md §4.4.4's field-type sample table, collapsed from
// per-Typez rows onto this compiler's actual Go scalar representation:
// SFIXED32 and FIXED32 do not share FLOAT's fractional
// samples here since they hold int32/uint32 in this schema, unlike the
// original table's source type system.
func baseSampleSet(f *FieldPlan, cfg *config.Config) (elemType, listExpr string, usesMath bool) {
	if f.IsMessage {
		if cfg != nil && cfg.IsCycleBreak(f.Field.TypezID) {
			return f.GoType, fmt.Sprintf("[]%s{nil}", f.GoType), false
		}
		return f.GoType, fmt.Sprintf("(%s{}).CreateTestArguments()", f.TestRef), false
	}
	if f.IsEnum {
		return f.EnumGoType, f.EnumGoType + "Values()", false
	}
	switch categoryOf(f.Field.Typez) {
	case catString:
		return "string", `[]string{"", "Dude"}`, false
	case catBytes:
		return "[]byte", "[][]byte{nil, {1}, {1, 2, 3}}", false
	case catBool:
		return "bool", "[]bool{true, false}", false
	case catFloat32:
		return "float32", "[]float32{float32(math.Inf(-1)), -math.MaxFloat32, -102.7, -5, 1.7, 0, 3, 5.2, 42.1, math.MaxFloat32, float32(math.Inf(1)), float32(math.NaN())}", true
	case catFloat64:
		return "float64", "[]float64{math.Inf(-1), -math.MaxFloat64, -102.7, -5, 1.7, 0, 3, 5.2, 42.1, math.MaxFloat64, math.Inf(1), math.NaN()}", true
	}
	switch GoScalarType(f.Field.Typez) {
	case "int32":
		return "int32", "[]int32{math.MinInt32, -42, -21, 0, 21, 42, math.MaxInt32}", true
	case "uint32":
		return "uint32", "[]uint32{0, 1, 2, 21, 42, ^uint32(0)}", false
	case "int64":
		return "int64", "[]int64{math.MinInt64, -42, -21, 0, 21, 42, math.MaxInt64}", true
	case "uint64":
		return "uint64", "[]uint64{0, 21, 42, ^uint64(0)}", false
	default:
		return "int32", "[]int32{0}", false
	}
}

// writeFieldSampleDecl emits the local variable(s) holding valName's
// sample list for one plain (non-OneOf) field, wrapping baseSampleSet's
// element list in the repeated "list of list shapes" or optional
// "T list with nil prepended" form spec.md §4.4.4 describes. Reports
// whether it needed the math package.
func writeFieldSampleDecl(body *strings.Builder, valName string, f *FieldPlan, cfg *config.Config) bool {
	elemType, listExpr, usesMath := baseSampleSet(f, cfg)
	switch {
	case f.IsRepeated:
		fmt.Fprintf(body, "\t%sBase := %s\n", valName, listExpr)
		fmt.Fprintf(body, "\t%s := [][]%s{{}, {%sBase[0]}, append([]%s{}, %sBase...)}\n", valName, elemType, valName, elemType, valName)
	case f.IsOptional:
		fmt.Fprintf(body, "\t%sBase := %s\n", valName, listExpr)
		fmt.Fprintf(body, "\t%s := []*%s{nil}\n", valName, elemType)
		fmt.Fprintf(body, "\tfor _, v := range %sBase {\n\t\t%s = append(%s, wire.Ptr(v))\n\t}\n", valName, valName, valName)
	default:
		fmt.Fprintf(body, "\t%s := %s\n", valName, listExpr)
	}
	return usesMath
}

// writeOneOfSampleDecl emits valName as a []func(*Builder), one no-op
// entry for UNSET plus one entry per branch value, per spec.md §4.4.4's
// "concatenation of UNSET plus, for each branch, the branch's list mapped
// to (discriminant, value)". A branch whose MESSAGE type is configured as
// a cycle-break is omitted entirely, matching the spec's cycle-break rule.
func writeOneOfSampleDecl(body *strings.Builder, valName string, plan *MessagePlan, oo *OneOfPlan, cfg *config.Config) bool {
	usesMath := false
	builderType := modelRefPrefix(plan) + plan.GoName + "Builder"
	fmt.Fprintf(body, "\tvar %s []func(*%s)\n", valName, builderType)
	fmt.Fprintf(body, "\t%s = append(%s, func(*%s) {})\n", valName, valName, builderType)
	for _, branch := range oo.Branches {
		if branch.IsMessage && cfg != nil && cfg.IsCycleBreak(branch.Field.TypezID) {
			continue
		}
		_, listExpr, um := baseSampleSet(branch, cfg)
		if um {
			usesMath = true
		}
		listVar := valName + branch.GoName + "List"
		fmt.Fprintf(body, "\t%s := %s\n", listVar, listExpr)
		fmt.Fprintf(body, "\tfor _, v := range %s {\n", listVar)
		fmt.Fprintf(body, "\t\t%s = append(%s, func(b *%s) { b.Set%s(v) })\n", valName, valName, builderType, branch.GoName)
		body.WriteString("\t}\n")
	}
	return usesMath
}

// writeCreateTestArguments emits CreateTestArguments, reporting whether
// it needed the math package.
func writeCreateTestArguments(body *strings.Builder, plan *MessagePlan, cfg *config.Config) bool {
	usesMath := false
	fmt.Fprintf(body, "// CreateTestArguments returns one %s per representative combination of\n", plan.ModelRef)
	body.WriteString("// this message's field sample values, aligned by index rather than full\n")
	body.WriteString("// cross product: the i-th result takes the min(i, len-1)'th entry of\n")
	body.WriteString("// every field's own sample list.\n")
	fmt.Fprintf(body, "func (test %s) CreateTestArguments() []%s {\n", plan.ArtifactName, plan.ModelRef)

	var names []string
	for _, f := range plan.PlainFields {
		valName := "val" + f.GoName
		if writeFieldSampleDecl(body, valName, f, cfg) {
			usesMath = true
		}
		names = append(names, valName)
	}
	for _, oo := range plan.OneOfs {
		valName := "val" + GoFieldName(oo.OneOf.Name)
		if writeOneOfSampleDecl(body, valName, plan, oo, cfg) {
			usesMath = true
		}
		names = append(names, valName)
	}

	if len(names) == 0 {
		fmt.Fprintf(body, "\treturn []%s{%sNew%s()}\n}\n\n", plan.ModelRef, modelRefPrefix(plan), plan.GoName)
		return usesMath
	}

	body.WriteString("\tn := 0\n")
	for _, name := range names {
		fmt.Fprintf(body, "\tif len(%s) > n {\n\t\tn = len(%s)\n\t}\n", name, name)
	}
	fmt.Fprintf(body, "\tout := make([]%s, 0, n)\n", plan.ModelRef)
	body.WriteString("\tfor i := 0; i < n; i++ {\n")
	fmt.Fprintf(body, "\t\tb := %sNew%sBuilder()\n", modelRefPrefix(plan), plan.GoName)
	for _, f := range plan.PlainFields {
		valName := "val" + f.GoName
		fmt.Fprintf(body, "\t\tb.Set%s(%s[min(i, len(%s)-1)])\n", f.GoName, valName, valName)
	}
	for _, oo := range plan.OneOfs {
		valName := "val" + GoFieldName(oo.OneOf.Name)
		fmt.Fprintf(body, "\t\t%s[min(i, len(%s)-1)](b)\n", valName, valName)
	}
	body.WriteString("\t\tout = append(out, b.Build())\n\t}\n\treturn out\n}\n\n")
	return usesMath
}

// writeAssertRoundTrip emits AssertRoundTrip: spec.md §4.4.4's
// testXAgainstProtoC, writing model, parsing the bytes back, and
// comparing; when config's Testing.AgainstReferenceEncoder setting
// (spec.md §8 property 9) is enabled, it additionally checks with
// diffcheck.Equal that re-encoding the parsed result is still
// wire-equivalent to the original bytes.
func writeAssertRoundTrip(body *strings.Builder, plan *MessagePlan, cfg *config.Config, writerRef, parserRef string) {
	fmt.Fprintf(body, "// AssertRoundTrip writes model with the generated Writer, parses the\n")
	body.WriteString("// bytes back with the generated Parser, and fails t unless the result\n")
	body.WriteString("// is equal to model by both Equals and HashCode.\n")
	fmt.Fprintf(body, "func (test %s) AssertRoundTrip(t *testing.T, model *%s) {\n", plan.ArtifactName, plan.ModelRef)
	body.WriteString("\tt.Helper()\n")
	fmt.Fprintf(body, "\tdata, err := (%s{}).WriteToBytes(model)\n", writerRef)
	body.WriteString("\tif err != nil {\n\t\tt.Fatalf(\"write: %v\", err)\n\t}\n")
	fmt.Fprintf(body, "\tgot, err := (%s{}).Parse(data)\n", parserRef)
	body.WriteString("\tif err != nil {\n\t\tt.Fatalf(\"parse: %v\", err)\n\t}\n")
	body.WriteString("\tif !model.Equals(got) {\n\t\tt.Errorf(\"round trip changed value: got %+v, want %+v\", got, model)\n\t}\n")
	body.WriteString("\tif model.HashCode() != got.HashCode() {\n\t\tt.Errorf(\"round trip changed hash code\")\n\t}\n")
	if cfg != nil && cfg.Testing.AgainstReferenceEncoder {
		fmt.Fprintf(body, "\tagain, err := (%s{}).WriteToBytes(got)\n", writerRef)
		body.WriteString("\tif err != nil {\n\t\tt.Fatalf(\"re-encode: %v\", err)\n\t}\n")
		body.WriteString("\tequal, err := diffcheck.Equal(data.Bytes(), again.Bytes())\n")
		body.WriteString("\tif err != nil {\n\t\tt.Fatalf(\"diffcheck: %v\", err)\n\t}\n")
		body.WriteString("\tif !equal {\n\t\tt.Errorf(\"writer output is not wire-equivalent after a second encode\")\n\t}\n")
	}
	body.WriteString("}\n\n")
}

func writeRoundTripTestFunc(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "func Test%sRoundTrip(t *testing.T) {\n", plan.GoName)
	fmt.Fprintf(body, "\ttest := %s{}\n", plan.ArtifactName)
	body.WriteString("\tfor i, model := range test.CreateTestArguments() {\n")
	body.WriteString("\t\tt.Run(fmt.Sprintf(\"case_%d\", i), func(t *testing.T) {\n")
	body.WriteString("\t\t\ttest.AssertRoundTrip(t, model)\n")
	body.WriteString("\t\t})\n\t}\n}\n\n")
}
