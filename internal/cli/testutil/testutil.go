// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// AcmeModel is a decorated metamodel document in namespace org.acme@1.0.0.
// Person carries vocabulary decorators and its name property carries a
// Form decorator.
const AcmeModel = `{
  "$class": "concerto.metamodel@1.0.0.Model",
  "namespace": "org.acme@1.0.0",
  "declarations": [
    {
      "$class": "concerto.metamodel@1.0.0.ConceptDeclaration",
      "name": "Person",
      "decorators": [
        {
          "$class": "concerto.metamodel@1.0.0.Decorator",
          "name": "Term",
          "arguments": [{"$class": "concerto.metamodel@1.0.0.DecoratorString", "value": "A person"}]
        },
        {
          "$class": "concerto.metamodel@1.0.0.Decorator",
          "name": "Term_description",
          "arguments": [{"$class": "concerto.metamodel@1.0.0.DecoratorString", "value": "Someone we know"}]
        }
      ],
      "properties": [
        {
          "$class": "concerto.metamodel@1.0.0.StringProperty",
          "name": "name",
          "decorators": [
            {
              "$class": "concerto.metamodel@1.0.0.Decorator",
              "name": "Term",
              "arguments": [{"$class": "concerto.metamodel@1.0.0.DecoratorString", "value": "Full name"}]
            },
            {
              "$class": "concerto.metamodel@1.0.0.Decorator",
              "name": "Form",
              "arguments": [{"$class": "concerto.metamodel@1.0.0.DecoratorString", "value": "text"}]
            }
          ]
        },
        {"$class": "concerto.metamodel@1.0.0.IntegerProperty", "name": "age"}
      ]
    },
    {
      "$class": "concerto.metamodel@1.0.0.ConceptDeclaration",
      "name": "Address",
      "properties": [
        {"$class": "concerto.metamodel@1.0.0.StringProperty", "name": "city"}
      ]
    }
  ]
}
`

// UICommands is a valid command set for AcmeModel.
const UICommands = `$class: org.accordproject.decoratorcommands@0.3.0.DecoratorCommandSet
name: ui
version: 1.0.0
commands:
  - $class: org.accordproject.decoratorcommands@0.3.0.Command
    type: UPSERT
    target:
      $class: org.accordproject.decoratorcommands@0.3.0.CommandTarget
      namespace: org.acme
      declaration: Address
    decorator:
      $class: concerto.metamodel@1.0.0.Decorator
      name: Editable
  - $class: org.accordproject.decoratorcommands@0.3.0.Command
    type: APPEND
    target:
      $class: org.accordproject.decoratorcommands@0.3.0.CommandTarget
      type: concerto.metamodel@1.0.0.IntegerProperty
    decorator:
      $class: concerto.metamodel@1.0.0.Decorator
      name: Range
      arguments:
        - $class: concerto.metamodel@1.0.0.DecoratorNumber
          value: 0
        - $class: concerto.metamodel@1.0.0.DecoratorNumber
          value: 150
`

// BrokenCommands is a structurally valid command set whose only command
// targets a declaration AcmeModel does not have.
const BrokenCommands = `{
  "$class": "org.accordproject.decoratorcommands@0.3.0.DecoratorCommandSet",
  "name": "broken",
  "version": "1.0.0",
  "commands": [
    {
      "$class": "org.accordproject.decoratorcommands@0.3.0.Command",
      "type": "UPSERT",
      "target": {
        "$class": "org.accordproject.decoratorcommands@0.3.0.CommandTarget",
        "namespace": "org.acme@1.0.0",
        "declaration": "Missing"
      },
      "decorator": {"$class": "concerto.metamodel@1.0.0.Decorator", "name": "Hidden"}
    }
  ]
}
`

// Project is a temporary directory holding test inputs.
type Project struct {
	Dir      string
	Models   string // models directory
	Commands string // ui.yaml
	Broken   string // broken.json
}

// SetupTestProject creates a temporary project with a decorated model and
// two command sets.
func SetupTestProject(t *testing.T) *Project {
	t.Helper()

	dir := t.TempDir()
	p := &Project{
		Dir:      dir,
		Models:   filepath.Join(dir, "models"),
		Commands: filepath.Join(dir, "commands", "ui.yaml"),
		Broken:   filepath.Join(dir, "commands", "broken.json"),
	}

	WriteFile(t, filepath.Join(p.Models, "acme.json"), AcmeModel)
	WriteFile(t, p.Commands, UICommands)
	WriteFile(t, p.Broken, BrokenCommands)
	return p
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test path
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
