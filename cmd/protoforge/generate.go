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
	"fmt"
	"go/format"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wireforge/protoforge/internal/config"
	"github.com/wireforge/protoforge/internal/emit"
	"github.com/wireforge/protoforge/internal/lookup"
	"github.com/wireforge/protoforge/internal/parser"
	"github.com/wireforge/protoforge/internal/schema"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		source     string
		output     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile a tree of .proto files into Go wire-format bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("protoforge: loading config: %w", err)
			}
			if source != "" {
				cfg.General.SpecificationSource = source
			}
			if output != "" {
				cfg.General.OutputDirectory = output
			}
			if cfg.General.SpecificationSource == "" {
				return fmt.Errorf("protoforge: no specification source: pass --source or set general.specification-source")
			}
			if cfg.General.OutputDirectory == "" {
				return fmt.Errorf("protoforge: no output directory: pass --output or set general.output-directory")
			}
			return runGenerate(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a directory-local protoforge.toml overriding the root one")
	cmd.Flags().StringVar(&source, "source", "", "root directory to search for .proto files (overrides general.specification-source)")
	cmd.Flags().StringVar(&output, "output", "", "directory generated Go sources are written under (overrides general.output-directory)")
	return cmd
}

// runGenerate drives the full compile: parse every .proto file under
// cfg.General.SpecificationSource, build and validate the schema model,
// resolve cross-file references, and emit the four artifact files per
// message plus one file per enum, under cfg.General.OutputDirectory.
func runGenerate(cfg *config.Config) error {
	paths, err := findProtoFiles(cfg.General.SpecificationSource)
	if err != nil {
		return fmt.Errorf("protoforge: walking %s: %w", cfg.General.SpecificationSource, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("protoforge: no .proto files found under %s", cfg.General.SpecificationSource)
	}

	var trees []*parser.ParseTree
	for _, rel := range paths {
		full := filepath.Join(cfg.General.SpecificationSource, rel)
		contents, err := os.ReadFile(full)
		if err != nil {
			return fmt.Errorf("protoforge: reading %s: %w", full, err)
		}
		tree, err := parser.Parse(rel, string(contents))
		if err != nil {
			return fmt.Errorf("protoforge: parsing %s: %w", rel, err)
		}
		trees = append(trees, tree)
	}

	model, err := schema.Build(trees)
	if err != nil {
		return fmt.Errorf("protoforge: building schema: %w", err)
	}
	applyNamespaceOverrides(model, cfg.Namespaces)

	if err := schema.Validate(model); err != nil {
		return fmt.Errorf("protoforge: %w", err)
	}
	for _, w := range schema.CheckReservedNumbers(model) {
		slog.Warn(w.String())
	}

	st, err := lookup.Build(model, namespacesFrom(cfg))
	if err != nil {
		return fmt.Errorf("protoforge: %w", err)
	}

	messages := collectMessages(model)
	enums := collectEnums(model)

	for _, m := range messages {
		files := []func() (*emit.EmittedFile, error){
			func() (*emit.EmittedFile, error) { return emit.EmitModel(st, model, m) },
			func() (*emit.EmittedFile, error) { return emit.EmitParser(st, model, m) },
			func() (*emit.EmittedFile, error) { return emit.EmitWriter(st, model, m) },
			func() (*emit.EmittedFile, error) { return emit.EmitTest(st, model, m, cfg) },
		}
		for _, f := range files {
			ef, err := f()
			if err != nil {
				return fmt.Errorf("protoforge: %w", err)
			}
			if err := writeEmittedFile(cfg.General.OutputDirectory, ef); err != nil {
				return err
			}
		}
	}
	for _, e := range enums {
		ef, err := emit.EmitEnum(st, e)
		if err != nil {
			return fmt.Errorf("protoforge: %w", err)
		}
		if err := writeEmittedFile(cfg.General.OutputDirectory, ef); err != nil {
			return err
		}
	}

	slog.Info("protoforge: generated", "messages", len(messages), "enums", len(enums), "output", cfg.General.OutputDirectory)
	return nil
}

// collectMessages returns every message in model, top-level and nested,
// sorted by fully qualified ID so emission order (and therefore any
// error's position among a run's output) is deterministic.
func collectMessages(model *schema.Model) []*schema.Message {
	ids := make([]string, 0, len(model.MessageByID))
	for id := range model.MessageByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*schema.Message, len(ids))
	for i, id := range ids {
		out[i] = model.MessageByID[id]
	}
	return out
}

// collectEnums returns every enum in model, top-level and nested, sorted
// by fully qualified ID.
func collectEnums(model *schema.Model) []*schema.Enum {
	ids := make([]string, 0, len(model.EnumByID))
	for id := range model.EnumByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*schema.Enum, len(ids))
	for i, id := range ids {
		out[i] = model.EnumByID[id]
	}
	return out
}

// writeEmittedFile writes ef under outputDir, mapping its Go import path
// onto a directory the way `go build` expects one package per directory,
// running the result through go/format the same way the teacher's own
// generator formats its Rust/Dart output with the target language's own
// formatter before writing it to disk.
func writeEmittedFile(outputDir string, ef *emit.EmittedFile) error {
	rel := strings.TrimPrefix(ef.ImportPath, emit.GoModulePath)
	rel = strings.TrimPrefix(rel, "/")
	dir := filepath.Join(outputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("protoforge: creating %s: %w", dir, err)
	}

	source := ef.Source
	if formatted, err := format.Source([]byte(ef.Source)); err != nil {
		slog.Warn("protoforge: generated source failed gofmt, writing unformatted", "file", ef.FileName, "error", err)
	} else {
		source = string(formatted)
	}

	path := filepath.Join(dir, ef.FileName)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return fmt.Errorf("protoforge: writing %s: %w", path, err)
	}
	return nil
}
