package parser

import (
	"os"
	"slices"
	"testing"

	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/raymyers/cfront/pkg/sema"
	"gopkg.in/yaml.v3"
)

// ParseSpec is one case from parse.yaml
type ParseSpec struct {
	Name        string   `yaml:"name"`
	Input       string   `yaml:"input"`
	Decls       []string `yaml:"decls,omitempty"`
	Diagnostics []string `yaml:"diagnostics,omitempty"`
}

// ParseFile is the parse.yaml file structure
type ParseFile struct {
	Tests []ParseSpec `yaml:"tests"`
}

func TestParseYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/parse.yaml")
	if err != nil {
		t.Fatalf("failed to read parse.yaml: %v", err)
	}

	var file ParseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("failed to parse parse.yaml: %v", err)
	}
	if len(file.Tests) == 0 {
		t.Fatal("parse.yaml has no tests")
	}

	for _, tc := range file.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			sink := diag.NewList(nil)
			p := New(lexer.NewFile("test.c", tc.Input), sema.NewBuilder(sink), sink, nil)
			decls, err := p.ParseTranslationUnit()
			if err != nil {
				t.Fatalf("internal error: %v", err)
			}

			var names []string
			for _, d := range decls {
				ent, ok := d.(*sema.Entity)
				if !ok {
					t.Fatalf("unexpected handle %T", d)
				}
				names = append(names, ent.Name)
			}
			if !slices.Equal(names, tc.Decls) {
				t.Errorf("decls = %v, want %v", names, tc.Decls)
			}

			var ids []string
			for _, id := range sink.IDs() {
				ids = append(ids, id.Name())
			}
			if !slices.Equal(ids, tc.Diagnostics) {
				t.Errorf("diagnostics = %v, want %v", ids, tc.Diagnostics)
				for _, d := range sink.Diagnostics() {
					t.Logf("  %s", d)
				}
			}
			if !p.Scopes().Empty() {
				t.Error("scopes left open")
			}
		})
	}
}
