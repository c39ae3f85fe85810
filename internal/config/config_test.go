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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	toml "github.com/pelletier/go-toml/v2"
)

func TestLoadRootConfigMissingFileIsNotError(t *testing.T) {
	got, err := LoadRootConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{Namespaces: map[string]string{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatched config (-want, +got):\n%s", diff)
	}
}

func TestLoadRootConfig(t *testing.T) {
	root := Config{
		General: GeneralConfig{SpecificationSource: "testdata/protos"},
		Testing: TestingConfig{CycleBreak: []string{".example.v1.Node"}},
		Namespaces: map[string]string{
			"example.v1": "example.v1.internal",
		},
	}
	path := writeTempToml(t, &root)

	got, err := LoadRootConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&root, got); diff != "" {
		t.Errorf("mismatched config (-want, +got):\n%s", diff)
	}
}

func TestMergeConfigAndFile(t *testing.T) {
	root := &Config{
		General:    GeneralConfig{SpecificationSource: "testdata/protos"},
		Namespaces: map[string]string{"example.v1": "example.v1.internal"},
	}
	local := Config{
		General:    GeneralConfig{OutputDirectory: "gen/"},
		Testing:    TestingConfig{AgainstReferenceEncoder: true},
		Namespaces: map[string]string{"example.v2": "example.v2.internal"},
	}
	path := writeTempToml(t, &local)

	got, err := MergeConfigAndFile(root, path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		General: GeneralConfig{
			SpecificationSource: "testdata/protos",
			OutputDirectory:     "gen/",
		},
		Testing: TestingConfig{AgainstReferenceEncoder: true},
		Namespaces: map[string]string{
			"example.v1": "example.v1.internal",
			"example.v2": "example.v2.internal",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatched merged config (-want, +got):\n%s", diff)
	}
}

func TestIsCycleBreak(t *testing.T) {
	c := &Config{Testing: TestingConfig{CycleBreak: []string{".example.v1.Node"}}}
	if !c.IsCycleBreak(".example.v1.Node") {
		t.Errorf("expected .example.v1.Node to be a cycle-break entry")
	}
	if c.IsCycleBreak(".example.v1.Leaf") {
		t.Errorf("did not expect .example.v1.Leaf to be a cycle-break entry")
	}
}

func writeTempToml(t *testing.T, cfg *Config) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "protoforge-*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}
