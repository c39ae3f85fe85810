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

	"github.com/wireforge/protoforge/internal/lookup"
	"github.com/wireforge/protoforge/internal/schema"
)

// GoModulePath is the module path generated artifacts are rooted under.
// Every resolved namespace (e.g. "example.model.payments") maps to a
// directory under gen/ with dots turned into path separators, the bare
// last segment doubling as both the directory name and the package's own
// identifier — the same one-package-per-namespace-segment layout the
// teacher's internal/golang emitter produces per service.
const GoModulePath = "github.com/wireforge/protoforge/gen"

// GoImportPath turns a resolved dotted namespace into the Go import path
// generated code uses to reach it.
func GoImportPath(dottedPkg string) string {
	return GoModulePath + "/" + strings.ReplaceAll(dottedPkg, ".", "/")
}

// packageAlias derives the bare package identifier from a resolved
// namespace's last segment, e.g. "example.model.payments" -> "payments".
// Used for the package's own `package` clause, where there is exactly one
// namespace in scope and no collision is possible.
func packageAlias(pkg string) string {
	if i := strings.LastIndexByte(pkg, '.'); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}

// importAlias derives the Go import alias for a resolved namespace. A
// generated file commonly imports the Model, Parser, and Writer packages
// for the *same* directory bucket at once (a Parser importing the Model
// struct it decodes into, plus another message's Parser for a nested
// MESSAGE field); since those three namespaces share a last segment
// (e.g. "example.model.payments" and "example.parser.payments" both end
// in "payments"), packageAlias's bare last-segment would collide as an
// import identifier. importAlias instead flattens the whole dotted
// namespace into one identifier, which is unique per (kind, dirBucket)
// pair by construction.
func importAlias(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "_")
}

// ImportEntry is one line of a generated file's import block: an explicit
// alias (see importAlias) paired with the Go import path it names.
type ImportEntry struct {
	Alias string
	Path  string
}

// resolver turns a message/enum ID into the Go identifier another file
// refers to it by, given the artifact kind the referring file belongs to.
// Every field's declared type is always a Model struct or enum — the
// Parser/Writer/Test artifacts never declare their own data types — so a
// resolver for a non-Model kind always import-qualifies, even for the
// message's own declaring type, since that file's package is never the
// Model package.
type resolver struct {
	st      *lookup.SymbolTable
	kind    lookup.ArtifactKind
	owner   *schema.Message
	model   *schema.Model
	imports map[string]string // resolved model namespace -> import path, accumulated as references are resolved
}

func (r *resolver) messageGoName(id string) string {
	target, ok := r.model.MessageByID[id]
	if !ok {
		return "any"
	}
	name := r.st.UnqualifiedClassForMessage(lookup.KindModel, target)
	targetPkg := r.st.PackageForMessage(lookup.KindModel, target)
	return r.qualify(targetPkg, name)
}

func (r *resolver) enumGoName(id string) string {
	target, ok := r.model.EnumByID[id]
	if !ok {
		return "int32"
	}
	name := GoFieldName(target.Name)
	targetPkg := r.st.PackageForEnum(lookup.KindModel, target)
	return r.qualify(targetPkg, name)
}

func (r *resolver) qualify(targetModelPkg, name string) string {
	ownModelPkg := r.st.PackageForMessage(lookup.KindModel, r.owner)
	if r.kind == lookup.KindModel && ownModelPkg == targetModelPkg {
		return name
	}
	r.imports[targetModelPkg] = GoImportPath(targetModelPkg)
	return importAlias(targetModelPkg) + "." + name
}

// artifactRef resolves a reference to another message's artifact of the
// given kind (its Parser or Writer type, as opposed to messageGoName's
// Model-struct reference): the Parser Emitter uses this to call a nested
// MESSAGE field's own generated ParseFrom, the Writer Emitter to call its
// Write. Bare (unqualified) only when target and owner share the same
// resolved package for that artifact kind.
func (r *resolver) artifactRef(kind lookup.ArtifactKind, id string) string {
	target, ok := r.model.MessageByID[id]
	if !ok {
		return "any"
	}
	name := r.st.UnqualifiedClassForMessage(kind, target)
	targetPkg := r.st.PackageForMessage(kind, target)
	ownPkg := r.st.PackageForMessage(kind, r.owner)
	if ownPkg == targetPkg {
		return name
	}
	r.imports[targetPkg] = GoImportPath(targetPkg)
	return importAlias(targetPkg) + "." + name
}

// FieldPlan is the precomputed, template-ready description of one field:
// its Go struct shape plus the decode/encode statement text the Parser
// and Writer emitters splice into their generated methods.
type FieldPlan struct {
	Field      *schema.Field
	GoName     string
	GoType     string
	Number     int32
	IsMessage  bool
	IsEnum     bool
	IsRepeated bool
	IsOneOf    bool
	// IsOptional is true for a field with explicit presence tracking: a
	// proto3 `optional` scalar, or a google.protobuf.*Value wrapper
	// substitution (schema/wrappers.go). Its Go representation is a
	// pointer even though its Typez is a plain scalar.
	IsOptional bool
	ZeroLit    string
	// MessageCodecRef is, for IsMessage fields, the qualified reference to
	// the referenced message's own Model struct name, reused by the
	// Parser/Writer Emitters to call that type's codec functions.
	MessageCodecRef string
	// ParserRef and WriterRef are, for IsMessage fields, the qualified
	// reference to the referenced message's Parser/Writer artifact type
	// (e.g. "payments.InvoiceParser" or "Line_ItemWriter"), used by the
	// Parser/Writer Emitters to dispatch into a nested message's own
	// generated decode/encode.
	ParserRef string
	WriterRef string
	// TestRef is, for IsMessage fields, the qualified reference to the
	// referenced message's Test artifact type, used by the Test Emitter
	// to pull in a nested message's own sample-value generator.
	TestRef string
	// EnumGoType is, for IsEnum fields, the qualified Go type name of the
	// referenced enum; used by the Parser Emitter to cast a decoded
	// varint to the right named type.
	EnumGoType string
}

// OneOfPlan is the precomputed shape of one oneof group: its discriminant
// type name, the Kind enum's value names, and the branch fields it covers.
type OneOfPlan struct {
	OneOf      *schema.OneOf
	GoTypeName string
	KindName   string
	UnsetName  string
	Branches   []*FieldPlan
}

// MessagePlan is the full view model handed to every one of the four
// emitters for a single schema.Message.
type MessagePlan struct {
	Message     *schema.Message
	GoName      string
	Doc         string
	Fields      []*FieldPlan
	OneOfs      []*OneOfPlan
	PlainFields []*FieldPlan // Fields minus OneOf members, declaration order preserved

	// Kind is the artifact kind this plan's field types were resolved
	// for; every emitter builds its own plan since MESSAGE/ENUM field
	// references resolve to different Go packages per artifact kind.
	Kind lookup.ArtifactKind
	// PackageName is the bare Go package identifier this artifact's file
	// declares itself under.
	PackageName string
	// ModelRef is how this file refers to the message's own Model
	// struct: bare ("Invoice") when Kind is KindModel, import-qualified
	// ("payments.Invoice") otherwise.
	ModelRef string
	// ArtifactName is this plan's own artifact-kind type name: "Invoice"
	// for KindModel, "InvoiceParser" for KindParser, "InvoiceWriter" for
	// KindWriter, "InvoiceTest" for KindTest.
	ArtifactName string
	// Imports is the sorted list of imports this artifact's file needs,
	// covering cross-namespace Model/Parser/Writer references; the
	// runtime (wire) import is added by callers via withWireImport.
	Imports []ImportEntry
}

// BuildMessagePlan computes the view model for m under the given artifact
// kind (model/parser/writer/test packages resolve MESSAGE/ENUM field
// references to different Go packages for the same logical type, since
// each artifact kind lives in its own namespace per spec.md §4.3).
func BuildMessagePlan(st *lookup.SymbolTable, model *schema.Model, kind lookup.ArtifactKind, m *schema.Message) *MessagePlan {
	r := &resolver{st: st, kind: kind, owner: m, model: model, imports: map[string]string{}}
	modelGoName := st.UnqualifiedClassForMessage(lookup.KindModel, m)
	plan := &MessagePlan{
		Message:     m,
		GoName:      modelGoName,
		Doc:         ReflowDoc("//", m.Documentation),
		Kind:         kind,
		PackageName:  packageAlias(st.PackageForMessage(kind, m)),
		ArtifactName: st.UnqualifiedClassForMessage(kind, m),
	}
	plan.ModelRef = r.qualify(st.PackageForMessage(lookup.KindModel, m), modelGoName)

	oneOfPlans := map[*schema.OneOf]*OneOfPlan{}
	for _, oo := range m.OneOfs {
		typeName := modelGoName + "_" + GoFieldName(oo.Name)
		oop := &OneOfPlan{
			OneOf:      oo,
			GoTypeName: typeName + "Kind",
			KindName:   typeName + "Kind",
			UnsetName:  typeName + "Kind_UNSET",
		}
		oneOfPlans[oo] = oop
		plan.OneOfs = append(plan.OneOfs, oop)
	}

	for _, f := range m.Fields {
		zeroLit := ZeroLiteral(f.Typez)
		isOptional := f.Optional && f.Typez != schema.MESSAGE_TYPE && !f.Repeated
		if isOptional {
			zeroLit = "nil"
		}
		fp := &FieldPlan{
			Field:      f,
			GoName:     GoFieldName(f.Name),
			Number:     f.Number,
			IsMessage:  f.Typez == schema.MESSAGE_TYPE,
			IsEnum:     f.Typez == schema.ENUM_TYPE,
			IsRepeated: f.Repeated,
			IsOneOf:    f.Kind == schema.FieldOneOfMember,
			IsOptional: isOptional,
			ZeroLit:    zeroLit,
		}
		fp.GoType = FieldGoType(f, r.messageGoName, r.enumGoName)
		if fp.IsMessage {
			fp.MessageCodecRef = strings.TrimPrefix(fp.GoType, "*")
			fp.ParserRef = r.artifactRef(lookup.KindParser, f.TypezID)
			fp.WriterRef = r.artifactRef(lookup.KindWriter, f.TypezID)
			fp.TestRef = r.artifactRef(lookup.KindTest, f.TypezID)
		}
		if fp.IsEnum {
			fp.EnumGoType = fp.GoType
		}
		plan.Fields = append(plan.Fields, fp)
		if fp.IsOneOf {
			oneOfPlans[f.OneOf].Branches = append(oneOfPlans[f.OneOf].Branches, fp)
		} else {
			plan.PlainFields = append(plan.PlainFields, fp)
		}
	}

	for pkg, path := range r.imports {
		plan.Imports = append(plan.Imports, ImportEntry{Alias: importAlias(pkg), Path: path})
	}
	sort.Slice(plan.Imports, func(i, j int) bool { return plan.Imports[i].Path < plan.Imports[j].Path })
	return plan
}

// wireImportPath is the runtime package every Model/Parser/Writer
// artifact depends on: HashCode/Equals helpers for Model, the
// ReadableSequentialData/WritableSequentialData cursor types and
// varint/fixed/UTF-8 primitives for Parser and Writer.
const wireImportPath = "github.com/wireforge/protoforge/wire"

// withWireImport returns imports plus the runtime import path, sorted.
// Every emitted artifact kind needs it, so callers add it once here
// rather than relying on BuildMessagePlan's cross-message import
// tracking, which only ever sees Model/Parser/Writer-to-same-kind
// references.
func withWireImport(imports []ImportEntry) []ImportEntry {
	for _, imp := range imports {
		if imp.Path == wireImportPath {
			return imports
		}
	}
	out := append([]ImportEntry{{Alias: "wire", Path: wireImportPath}}, imports...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// describeField names a field's wire shape (name, wire category, field
// number) for diagnostics. No emitter in this package calls it.
func describeField(f *schema.Field) string {
	return fmt.Sprintf("%s (%s, field %d)", f.Name, fieldCategoryName(f.Typez), f.Number)
}
