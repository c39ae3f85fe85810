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

// Package lookup checks that every type reference in a schema.Model
// resolves to a declared message or enum and computes, for every Message,
// the Go package and identifier each of the four emitted artifacts
// (model, parser, writer, test) lives under.
//
// It is a deliberately separate pass from internal/schema.Build, following
// the teacher's practice of running api.CrossReference after parsing but
// before any codec walks the model (internal/api/xref.go): construction
// builds the tree and qualifies its references, lookup verifies them and
// maps declarations to packages.
package lookup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/wireforge/protoforge/internal/schema"
)

// ArtifactKind names one of the four files the Emitters produce per
// Message (spec.md §6's output-file layout), plus the two codec kinds the
// Lookup Helper's base-namespace table also covers (spec.md §4.3 lists
// "codec" and "json-codec" as configured artifact kinds). No emitter
// produces files under the two codec kinds: the Model Emitter's
// ProtobufCodec var names the message's Parser and Writer artifacts, and
// no JSON codec is generated.
type ArtifactKind int

const (
	KindModel ArtifactKind = iota
	KindParser
	KindWriter
	KindTest
	KindCodec
	KindJSONCodec
)

// Namespaces supplies the base namespace configured for each artifact
// kind (internal/config loads these from protoforge.toml); the Lookup
// Helper appends ".<dirBucket>" to compute a message's resolved package.
type Namespaces struct {
	Model     string
	Parser    string
	Writer    string
	Test      string
	Codec     string
	JSONCodec string
}

func (n Namespaces) base(kind ArtifactKind) string {
	switch kind {
	case KindModel:
		return n.Model
	case KindParser:
		return n.Parser
	case KindWriter:
		return n.Writer
	case KindTest:
		return n.Test
	case KindCodec:
		return n.Codec
	case KindJSONCodec:
		return n.JSONCodec
	default:
		return ""
	}
}

// UnresolvedReference is returned once, after every file in the compile
// has loaded, for the first field found whose message/enum reference
// never resolved to a declared type (spec.md §4.3, §7).
type UnresolvedReference struct {
	FieldID   string
	Reference string
}

func (e *UnresolvedReference) Error() string {
	return fmt.Sprintf("lookup: field %s references unknown type %s", e.FieldID, e.Reference)
}

// SymbolTable is the aggregated result of resolving a compiled Model: a
// name -> (namespace, kind) map, alongside the namespace configuration it
// was built from.
type SymbolTable struct {
	namespaces Namespaces
	model      *schema.Model
	// dirBucketByID records, for every message and enum, the DirBucket of
	// the file that declared it, so per-message package computation does
	// not need the declaring File threaded through every call.
	dirBucketByID map[string]string
}

// Build aggregates model's files into a SymbolTable and validates that
// every field's message/enum reference resolves, returning
// *UnresolvedReference (unwrapped) on the first failure.
func Build(model *schema.Model, namespaces Namespaces) (*SymbolTable, error) {
	st := &SymbolTable{
		namespaces:    namespaces,
		model:         model,
		dirBucketByID: map[string]string{},
	}
	for _, f := range model.Files {
		for _, m := range f.Messages {
			st.indexDirBucket(m, f.DirBucket)
		}
		for _, e := range f.Enums {
			st.dirBucketByID[e.ID] = f.DirBucket
		}
	}
	if err := st.checkReferences(); err != nil {
		return nil, err
	}
	return st, nil
}

func (st *SymbolTable) indexDirBucket(m *schema.Message, bucket string) {
	st.dirBucketByID[m.ID] = bucket
	for _, nested := range m.Messages {
		st.indexDirBucket(nested, bucket)
	}
	for _, e := range m.Enums {
		st.dirBucketByID[e.ID] = bucket
	}
}

func (st *SymbolTable) checkReferences() error {
	for _, m := range st.model.Messages {
		if err := st.checkMessageReferences(m); err != nil {
			return err
		}
	}
	return nil
}

func (st *SymbolTable) checkMessageReferences(m *schema.Message) error {
	for _, field := range m.Fields {
		if field.Typez != schema.MESSAGE_TYPE && field.Typez != schema.ENUM_TYPE {
			continue
		}
		_, isMessage := st.model.MessageByID[field.TypezID]
		_, isEnum := st.model.EnumByID[field.TypezID]
		if !isMessage && !isEnum {
			return &UnresolvedReference{FieldID: m.ID + "." + field.Name, Reference: field.TypezID}
		}
	}
	for _, nested := range m.Messages {
		if err := st.checkMessageReferences(nested); err != nil {
			return err
		}
	}
	return nil
}

// getModelPackage returns the Go package path for a message's Model
// artifact given its source directory bucket.
func (st *SymbolTable) getModelPackage(dirBucket string) string { return st.packageFor(KindModel, dirBucket) }

func (st *SymbolTable) packageFor(kind ArtifactKind, dirBucket string) string {
	base := st.namespaces.base(kind)
	if dirBucket == "" {
		return base
	}
	return base + "." + strings.ToLower(dirBucket)
}

// PackageForMessage returns the resolved Go package path a Message's
// artifact of the given kind lives in.
func (st *SymbolTable) PackageForMessage(kind ArtifactKind, m *schema.Message) string {
	return st.packageFor(kind, st.dirBucketByID[m.ID])
}

// UnqualifiedClassForMessage returns the bare exported Go identifier used
// for one of a Message's four artifacts: "Invoice", "InvoiceParser",
// "InvoiceWriter", "InvoiceTest". Nested messages are flattened with an
// underscore joiner, mirroring the teacher's escapeKeyword/ToCamel
// approach to identifier construction (internal/golang/golang.go).
func (st *SymbolTable) UnqualifiedClassForMessage(kind ArtifactKind, m *schema.Message) string {
	name := strcase.ToCamel(m.Name)
	for p := m.Parent; p != nil; p = p.Parent {
		name = strcase.ToCamel(p.Name) + "_" + name
	}
	switch kind {
	case KindParser:
		return name + "Parser"
	case KindWriter:
		return name + "Writer"
	case KindTest:
		return name + "Test"
	default:
		return name
	}
}

// PackageForEnum returns the resolved Go package path an Enum's artifact
// of the given kind lives in, mirroring PackageForMessage for the other
// declared-type kind a field can reference.
func (st *SymbolTable) PackageForEnum(kind ArtifactKind, e *schema.Enum) string {
	return st.packageFor(kind, st.dirBucketByID[e.ID])
}

// FullyQualifiedMessageClassname returns "<package>.<UnqualifiedClass>"
// for a Message's artifact of the given kind.
func (st *SymbolTable) FullyQualifiedMessageClassname(kind ArtifactKind, m *schema.Message) string {
	return st.PackageForMessage(kind, m) + "." + st.UnqualifiedClassForMessage(kind, m)
}

// ImportSet returns the sorted set of Go package paths a Message's Model
// artifact must import: one entry per distinct package any dependency
// (per schema.FindDependencies) resolves to, excluding the Message's own
// package. Deterministic order is required by spec.md §4.4's "import sets
// must be sorted".
func (st *SymbolTable) ImportSet(kind ArtifactKind, m *schema.Message) ([]string, error) {
	deps, err := schema.FindDependencies(st.model, []string{m.ID})
	if err != nil {
		return nil, err
	}
	own := st.PackageForMessage(kind, m)
	seen := map[string]bool{}
	var packages []string
	for id := range deps {
		if id == m.ID {
			continue
		}
		var pkg string
		if target, ok := st.model.MessageByID[id]; ok {
			pkg = st.PackageForMessage(kind, target)
		} else if _, ok := st.model.EnumByID[id]; ok {
			pkg = st.packageFor(kind, st.dirBucketByID[id])
		} else {
			continue
		}
		if pkg == own || seen[pkg] {
			continue
		}
		seen[pkg] = true
		packages = append(packages, pkg)
	}
	sort.Strings(packages)
	return packages, nil
}
