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
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// ReflowDoc turns a proto3 doc-comment string (which is, in practice,
// loose Markdown-ish prose: backticked identifiers, the occasional list)
// into Go-doc-comment form: `// `-prefixed lines with paragraph breaks
// preserved and no trailing whitespace. Unlike the teacher's
// documentation pipeline (internal/api/documentation.go), which patches
// doc strings but leaves reflow to each per-language template, this
// compiler needs one concrete comment syntax (Go's), so it uses
// goldmark's parser to normalize paragraph boundaries before prefixing
// every line — goldmark is already a teacher dependency, otherwise
// unreferenced once OpenAPI Markdown generation is out of scope.
func ReflowDoc(prefix, doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return ""
	}
	md := goldmark.New()
	reader := text.NewReader([]byte(doc))
	root := md.Parser().Parse(reader)

	var paragraphs []string
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		var sb strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value([]byte(doc)))
		}
		text := strings.TrimSpace(sb.String())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	if len(paragraphs) == 0 {
		paragraphs = []string{doc}
	}

	var out []string
	for i, p := range paragraphs {
		if i > 0 {
			out = append(out, prefix)
		}
		for _, line := range strings.Split(p, "\n") {
			out = append(out, prefix+" "+strings.TrimRightFunc(line, func(r rune) bool { return r == ' ' || r == '\t' }))
		}
	}
	return strings.Join(out, "\n")
}
