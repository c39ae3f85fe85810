// Copyright 2024 Google LLC
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

// Package config provides functionality for working with the
// protoforge.toml configuration file.
package config

import (
	"fmt"
	"maps"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the root shape of protoforge.toml: everything that affects
// how a run of the generator resolves namespaces and shapes its emitted
// tests, merged from a repo-root file and an optional directory-local
// override the same way the teacher merges its root and per-crate
// sidekick.toml files.
type Config struct {
	General  GeneralConfig     `toml:"general"`
	Testing  TestingConfig     `toml:"testing"`
	Vendor   VendorConfig      `toml:"vendor"`
	// Namespaces maps a dotted input package (as it appears in a .proto
	// file's `package` statement) to the directory bucket that package's
	// files resolve under, in place of the lower-cased name of each file's
	// directory; the Lookup Helper still joins it onto each artifact
	// kind's base namespace.
	Namespaces map[string]string `toml:"namespaces,omitempty"`
}

// GeneralConfig holds the run-wide settings every invocation needs:
// where the .proto sources live, where generated output is written, and
// the base namespace each artifact kind resolves under before the Lookup
// Helper appends a message's directory bucket (spec.md §4.3). A base left
// empty falls back to the conventional "model"/"parser"/"writer"/"test"
// segment, mirroring the teacher's per-language default output roots
// when sidekick.toml doesn't override them.
type GeneralConfig struct {
	SpecificationSource string `toml:"specification-source,omitempty"`
	OutputDirectory     string `toml:"output-directory,omitempty"`
	ModelNamespace      string `toml:"model-namespace,omitempty"`
	ParserNamespace     string `toml:"parser-namespace,omitempty"`
	WriterNamespace     string `toml:"writer-namespace,omitempty"`
	TestNamespace       string `toml:"test-namespace,omitempty"`
}

// TestingConfig controls what the Test Emitter (spec.md §4.4.4) produces.
type TestingConfig struct {
	// CycleBreak names messages (by fully-qualified schema ID) the Test
	// Emitter does not build sample values for, because doing so would
	// recurse forever through a self-referential or mutually-recursive
	// MESSAGE field: any plain field whose type is one of these messages
	// gets the single sample nil, and a oneof branch of such a type gets
	// no samples at all (supplements spec.md §9's "Model emission breaks
	// cycles by going through indirection" note, which covers storage but
	// not sample-value construction).
	CycleBreak []string `toml:"cycle-break,omitempty"`
	// AgainstReferenceEncoder turns on the internal/diffcheck differential
	// round-trip assertion (spec.md §8 property 9) in generated tests.
	AgainstReferenceEncoder bool `toml:"against-reference-encoder,omitempty"`
}

// VendorConfig points at the well-known-types tarball internal/config's
// vendor fetch downloads, mirroring the teacher's googleapis-root /
// googleapis-sha256 pinned-tarball pattern (internal/config/config.go,
// UpdateRootConfig) but for protobuf's well-known types instead of the
// googleapis/googleapis corpus.
type VendorConfig struct {
	ArchiveURL string `toml:"archive-url,omitempty"`
	SHA256     string `toml:"sha256,omitempty"`
}

// LoadConfig loads protoforge.toml from the current directory and merges
// it with an optional directory-local override, following the teacher's
// LoadConfig/MergeConfigAndFile split (internal/config/config.go) between
// a root file and a per-target one.
func LoadConfig(overridePath string) (*Config, error) {
	root, err := LoadRootConfig("protoforge.toml")
	if err != nil {
		return nil, err
	}
	if overridePath == "" {
		return root, nil
	}
	return MergeConfigAndFile(root, overridePath)
}

// LoadRootConfig reads filename as a Config. A missing file is not an
// error — LoadConfig falls back to an empty Config the same way the
// teacher's LoadRootConfig tolerates a missing .sidekick.toml, since
// every field is optional and a caller may run against bare defaults.
func LoadRootConfig(filename string) (*Config, error) {
	config := &Config{Namespaces: map[string]string{}}
	contents, err := os.ReadFile(filename)
	if err != nil {
		return config, nil
	}
	if err := toml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("error reading top-level configuration %s: %w", filename, err)
	}
	if config.Namespaces == nil {
		config.Namespaces = map[string]string{}
	}
	return config, nil
}

// MergeConfigAndFile reads filename and merges it onto root, with the
// local file's non-empty fields taking precedence.
func MergeConfigAndFile(root *Config, filename string) (*Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var local Config
	if err := toml.Unmarshal(contents, &local); err != nil {
		return nil, fmt.Errorf("error reading configuration %s: %w", filename, err)
	}
	return mergeConfigs(root, &local), nil
}

func mergeConfigs(root, local *Config) *Config {
	merged := &Config{
		General:    root.General,
		Testing:    root.Testing,
		Vendor:     root.Vendor,
		Namespaces: maps.Clone(root.Namespaces),
	}
	if merged.Namespaces == nil {
		merged.Namespaces = map[string]string{}
	}
	if local.General.SpecificationSource != "" {
		merged.General.SpecificationSource = local.General.SpecificationSource
	}
	if local.General.OutputDirectory != "" {
		merged.General.OutputDirectory = local.General.OutputDirectory
	}
	if local.General.ModelNamespace != "" {
		merged.General.ModelNamespace = local.General.ModelNamespace
	}
	if local.General.ParserNamespace != "" {
		merged.General.ParserNamespace = local.General.ParserNamespace
	}
	if local.General.WriterNamespace != "" {
		merged.General.WriterNamespace = local.General.WriterNamespace
	}
	if local.General.TestNamespace != "" {
		merged.General.TestNamespace = local.General.TestNamespace
	}
	if len(local.Testing.CycleBreak) > 0 {
		merged.Testing.CycleBreak = local.Testing.CycleBreak
	}
	if local.Testing.AgainstReferenceEncoder {
		merged.Testing.AgainstReferenceEncoder = true
	}
	if local.Vendor.ArchiveURL != "" {
		merged.Vendor.ArchiveURL = local.Vendor.ArchiveURL
	}
	if local.Vendor.SHA256 != "" {
		merged.Vendor.SHA256 = local.Vendor.SHA256
	}
	for k, v := range local.Namespaces {
		merged.Namespaces[k] = v
	}
	return merged
}

// IsCycleBreak reports whether messageID is listed in the Testing
// section's cycle-break set.
func (c *Config) IsCycleBreak(messageID string) bool {
	for _, id := range c.Testing.CycleBreak {
		if id == messageID {
			return true
		}
	}
	return false
}
