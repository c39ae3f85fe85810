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

package parser

import "fmt"

// ParseError reports a syntactic error at a specific file location. Per
// spec.md §7, a ParseError is fatal for the file it names: the generator
// must refuse to produce any artifact from that file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{
		Path:    p.path,
		Line:    p.tok.Line,
		Column:  p.tok.Column,
		Message: fmt.Sprintf(format, args...),
	}
}
