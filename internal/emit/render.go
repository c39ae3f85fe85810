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
	"embed"
	"fmt"

	"github.com/cbroglie/mustache"
)

//go:embed templates
var templatesFS embed.FS

// fileSkeleton is the data every emitted Go source file's shared shell
// needs: package clause, import block, and a single pre-rendered Body.
// Unlike the teacher, which hands mustache a full per-language template
// tree with deep field-level sections (internal/golang/templates, one
// partial per construct), this compiler emits one Go file per
// (message, artifact-kind) pair with substantial per-field branching
// (packed-vs-not, pointer-vs-value, oneof discriminants) that does not
// fit a logic-less template cleanly. So the per-field decode/encode/field
// declarations are precomputed into plain Go source text by viewmodel.go
// and the emitters, and mustache's job narrows to what it is good at:
// assembling the shared header/import/doc shell around that text — still
// the same rendering mechanism and library the teacher's
// `internal/language/client.go` uses, applied at a finer file granularity.
type fileSkeleton struct {
	Doc        string
	HasDoc     bool
	Package    string
	Imports    []ImportEntry
	HasImports bool
	Body       string
}

// renderFile renders templateName (one of the embedded templates/*.mustache
// files) against data. provider resolves {{> partial}} references against
// the same embedded filesystem, following the teacher's mustacheProvider
// pattern (internal/language/client.go) of a small adapter closure handed
// to mustache.RenderPartials.
func renderFile(templateName string, data any) (string, error) {
	contents, err := templatesFS.ReadFile("templates/" + templateName)
	if err != nil {
		return "", fmt.Errorf("emit: reading template %s: %w", templateName, err)
	}
	provider := &partialProvider{}
	return mustache.RenderPartials(string(contents), provider, data)
}

type partialProvider struct{}

func (p *partialProvider) Get(name string) (string, error) {
	contents, err := templatesFS.ReadFile("templates/" + name + ".mustache")
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

func newSkeleton(doc, pkg string, imports []ImportEntry, body string) fileSkeleton {
	return fileSkeleton{
		Doc:        doc,
		HasDoc:     doc != "",
		Package:    pkg,
		Imports:    imports,
		HasImports: len(imports) > 0,
		Body:       body,
	}
}
