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

package schema

import "strings"

// Scopes returns the relative names under which this message may be
// referenced from documentation: its own fully qualified name (without the
// leading dot) followed, recursively, by its ancestors' names and finally
// its package. Nothing in this module calls it; doc comment reflow
// (internal/emit's ReflowDoc) does not resolve cross-references.
func (x *Message) Scopes() []string {
	local := strings.TrimPrefix(x.ID, ".")
	if x.Parent == nil {
		return []string{local, x.Package}
	}
	return append([]string{local}, x.Parent.Scopes()...)
}

func (x *Enum) Scopes() []string {
	local := strings.TrimPrefix(x.ID, ".")
	if x.Parent == nil {
		return []string{local, x.Package}
	}
	return append([]string{local}, x.Parent.Scopes()...)
}

func (x *EnumValue) Scopes() []string {
	local := strings.TrimPrefix(x.ID, ".")
	if x.Parent == nil {
		return []string{local}
	}
	return append([]string{local}, x.Parent.Scopes()...)
}
