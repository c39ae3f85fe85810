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

import "fmt"

// FindDependencies returns the IDs of every message and enum that the model
// elements named by ids transitively require: the message/enum types of
// their fields (including parent messages, since a nested type's generated
// code always needs its enclosing type in scope). The Emitter uses this to
// compute, per generated file, the set of sibling types it must import.
//
// The model is small enough (a message's fields name their dependencies
// directly) that a single fan-out pass plus a parent-closure pass, mirroring
// the two-pass reachable-set algorithm used for service/method graphs,
// covers it: the first pass follows field types outward, the second makes
// sure every found type's enclosing message is also included.
func FindDependencies(model *Model, ids []string) (map[string]bool, error) {
	includedIDs := map[string]bool{}
	var candidates []string

	add := func(id string) {
		if !includedIDs[id] {
			candidates = append(candidates, id)
		}
		includedIDs[id] = true
	}

	for _, id := range ids {
		add(id)
	}

	for len(candidates) > 0 {
		id := candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		if message, ok := model.MessageByID[id]; ok {
			for _, field := range message.Fields {
				if field.Typez == ENUM_TYPE || field.Typez == MESSAGE_TYPE {
					add(field.TypezID)
				}
			}
			continue
		}
		if _, ok := model.EnumByID[id]; ok {
			continue
		}
		return nil, fmt.Errorf("schema: FindDependencies reached unknown ID=%q", id)
	}

	for id := range includedIDs {
		candidates = append(candidates, id)
	}
	for len(candidates) > 0 {
		id := candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		if message, ok := model.MessageByID[id]; ok {
			if message.Parent != nil {
				add(message.Parent.ID)
			}
			for _, field := range message.Fields {
				if field.Typez == ENUM_TYPE || field.Typez == MESSAGE_TYPE {
					add(field.TypezID)
				}
			}
			continue
		}
		if enum, ok := model.EnumByID[id]; ok {
			if enum.Parent != nil {
				add(enum.Parent.ID)
			}
			continue
		}
	}

	return includedIDs, nil
}
