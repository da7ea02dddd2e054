package ruleset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mapping kinds accepted in rule-set files.
const (
	MappingDirect   = "direct"
	MappingPath     = "path"
	MappingQuery    = "query"
	MappingParallel = "parallel"
)

// File is the YAML form of a rule set.
//
//	name: contracts
//	description: SEPA contract checks
//	rules:
//	  - name: iban_valid
//	    rule: sepa_iban
//	    mapping: parallel
//	    params:
//	      iban: contracts[*].iban
//	  - name: holder_name
//	    rule: min_length
//	    mode: warning
//	    params:
//	      value: customer.name
//	    consts:
//	      min: 3
type File struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Rules       []Rule `yaml:"rules" json:"rules"`
}

// Rule binds one catalog rule to locations in the instance.
type Rule struct {
	// Name is the validator name used in findings; defaults to Rule.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// Rule is the catalog name of the rule function.
	Rule string `yaml:"rule" json:"rule"`
	// Mapping is one of direct, path, query or parallel. When empty it is
	// query if any expression iterates ("[*]") and path otherwise.
	Mapping string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	// Mode is error (default) or warning.
	Mode string `yaml:"mode,omitempty" json:"mode,omitempty"`
	// ErrorID overrides the derived error ID when non-zero.
	ErrorID int `yaml:"error_id,omitempty" json:"error_id,omitempty"`
	// Timeout bounds each invocation, e.g. "500ms".
	Timeout string `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	// Params maps parameter names to query expressions.
	Params map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
	// Consts binds fixed values to parameters. For direct mappings they are
	// the argument values.
	Consts map[string]any `yaml:"consts,omitempty" json:"consts,omitempty"`
}

// ValidatorName returns Name, or Rule when Name is empty.
func (r Rule) ValidatorName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Rule
}

// MappingKind resolves the effective mapping kind.
func (r Rule) MappingKind() string {
	if r.Mapping != "" {
		return strings.ToLower(r.Mapping)
	}
	for _, expr := range r.Params {
		if strings.Contains(expr, "[*]") {
			return MappingQuery
		}
	}
	if len(r.Params) == 0 {
		return MappingDirect
	}
	return MappingPath
}

// Parse decodes a single rule-set document. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("%w: empty document", ErrInvalidRuleset)
		}
		return File{}, errors.Join(ErrInvalidRuleset, err)
	}
	if f.Name == "" {
		return File{}, fmt.Errorf("%w: missing name", ErrInvalidRuleset)
	}
	return f, nil
}

// Marshal encodes f as YAML.
func Marshal(f File) ([]byte, error) {
	return yaml.Marshal(f)
}

// LoadFile reads and parses one rule-set file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read rule set %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadDir parses every *.yaml and *.yml file in dir, sorted by file name.
// Subdirectories are not visited.
func LoadDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read rule set dir %s: %w", dir, err)
	}

	var files []File
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || !slices.Contains([]string{".yaml", ".yml"}, ext) {
			continue
		}
		f, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
