// Command taxonomy-convert turns a markdown diagnosis outline into the JSON
// or YAML tree format the diagnoses index stores.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/clinsum/internal/taxonomy"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <input.md> <output.json|output.yaml>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	input, output := os.Args[1], os.Args[2]

	if err := run(input, output); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(input, output string) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	nodes, err := taxonomy.ParseOutline(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("parse outline: %w", err)
	}

	var encoded []byte
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".json":
		encoded, err = json.MarshalIndent(nodes, "", "  ")
	case ".yaml", ".yml":
		encoded, err = yaml.Marshal(nodes)
	default:
		return fmt.Errorf("unsupported output extension: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}

	if err := os.WriteFile(output, encoded, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
