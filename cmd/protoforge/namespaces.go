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

package main

import (
	"github.com/wireforge/protoforge/internal/config"
	"github.com/wireforge/protoforge/internal/lookup"
	"github.com/wireforge/protoforge/internal/schema"
)

// namespacesFrom turns protoforge.toml's per-artifact-kind settings into
// the lookup.Namespaces the Lookup Helper needs, falling back to the
// conventional bare segment name for whichever base a config file left
// unset.
func namespacesFrom(cfg *config.Config) lookup.Namespaces {
	return lookup.Namespaces{
		Model:     withDefault(cfg.General.ModelNamespace, "model"),
		Parser:    withDefault(cfg.General.ParserNamespace, "parser"),
		Writer:    withDefault(cfg.General.WriterNamespace, "writer"),
		Test:      withDefault(cfg.General.TestNamespace, "test"),
		Codec:     "codec",
		JSONCodec: "jsoncodec",
	}
}

func withDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// applyNamespaceOverrides rewrites each file's directory bucket when its
// declared proto package matches a protoforge.toml [namespaces] entry,
// overriding the Lookup Helper's default "lower-cased last path segment"
// bucket computation (spec.md §4.3) with an explicit one. Must run after
// schema.Build and before lookup.Build, since the latter snapshots each
// message's bucket from its declaring File at construction time.
func applyNamespaceOverrides(model *schema.Model, overrides map[string]string) {
	for _, f := range model.Files {
		if override, ok := overrides[f.Package]; ok {
			f.DirBucket = override
		}
	}
}
