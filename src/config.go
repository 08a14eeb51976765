package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LookupEntry pairs a stored code with the label shown for it.
type LookupEntry struct {
	Code  int    `json:"code" yaml:"code" toml:"code"`
	Label string `json:"label" yaml:"label" toml:"label"`
}

// SheetConfig describes the window, the sample grid and the coded column.
type SheetConfig struct {
	Title        string
	Width        float32
	Height       float32
	Headers      []string
	Rows         [][]int
	CodedColumn  int
	UnknownLabel string
	Lookup       []LookupEntry
}

// sheetFile is the on-disk shape. CodedColumn is a pointer so a missing key
// can be told apart from column 0.
type sheetFile struct {
	Title        string        `json:"title" yaml:"title" toml:"title"`
	Width        float32       `json:"width" yaml:"width" toml:"width"`
	Height       float32       `json:"height" yaml:"height" toml:"height"`
	Headers      []string      `json:"headers" yaml:"headers" toml:"headers"`
	Rows         [][]int       `json:"rows" yaml:"rows" toml:"rows"`
	CodedColumn  *int          `json:"codedColumn" yaml:"codedColumn" toml:"codedColumn"`
	UnknownLabel string        `json:"unknownLabel" yaml:"unknownLabel" toml:"unknownLabel"`
	Lookup       []LookupEntry `json:"lookup" yaml:"lookup" toml:"lookup"`
}

// configCandidates are tried in order in the working directory.
var configCandidates = []string{"./sheet.json", "./sheet.yaml", "./sheet.yml", "./sheet.toml"}

func defaultSheetConfig() SheetConfig {
	return SheetConfig{
		Title:   "Account Table",
		Width:   640,
		Height:  360,
		Headers: []string{"Column1", "Column2 (Account)", "Column3"},
		Rows: [][]int{
			{1, 101, 3},
			{2, 201, 1},
			{3, 311, 2},
		},
		CodedColumn:  1,
		UnknownLabel: "unknown",
		Lookup: []LookupEntry{
			{Code: 101, Label: "Cash"},
			{Code: 201, Label: "Checking"},
			{Code: 311, Label: "Accounts Payable"},
		},
	}
}

// findConfig returns the first existing candidate, or "" when none is present.
func findConfig(candidates []string) string {
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// loadConfig reads a sheet config, picking the decoder from the file extension.
// Fields left empty in the file keep their built-in defaults.
func loadConfig(path string) (SheetConfig, error) {
	cfg := defaultSheetConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg sheetFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &fileCfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fileCfg)
	case ".toml":
		err = toml.Unmarshal(b, &fileCfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.merge(fileCfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// merge overlays the fields set in f onto c. The grid is taken as a whole:
// headers, rows and the coded column replace the sample together, so a file
// that defines headers must also say which column is coded, and rows are
// only accepted alongside their headers.
func (c *SheetConfig) merge(f sheetFile) error {
	if len(f.Rows) > 0 && len(f.Headers) == 0 {
		return errors.New("rows given without headers")
	}
	if len(f.Headers) > 0 && f.CodedColumn == nil {
		return errors.New("headers given without codedColumn")
	}

	if f.Title != "" {
		c.Title = f.Title
	}
	if f.Width > 0 {
		c.Width = f.Width
	}
	if f.Height > 0 {
		c.Height = f.Height
	}
	if len(f.Headers) > 0 {
		c.Headers = f.Headers
		c.Rows = f.Rows
	}
	if f.CodedColumn != nil {
		c.CodedColumn = *f.CodedColumn
	}
	if f.UnknownLabel != "" {
		c.UnknownLabel = f.UnknownLabel
	}
	if len(f.Lookup) > 0 {
		c.Lookup = f.Lookup
	}
	return nil
}

// Validate checks the shape invariants the table model relies on.
func (c SheetConfig) Validate() error {
	if len(c.Headers) == 0 {
		return errors.New("no headers")
	}
	if len(c.Rows) == 0 {
		return errors.New("no rows")
	}
	for i, r := range c.Rows {
		if len(r) != len(c.Headers) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(r), len(c.Headers))
		}
	}
	if c.CodedColumn < 0 || c.CodedColumn >= len(c.Headers) {
		return fmt.Errorf("coded column %d out of range", c.CodedColumn)
	}
	seen := map[int]bool{}
	for _, e := range c.Lookup {
		if seen[e.Code] {
			return fmt.Errorf("duplicate lookup code %d", e.Code)
		}
		seen[e.Code] = true
	}
	return nil
}
