// Package manifest loads the analysis-name-to-target-QID mapping the CLI
// surface needs (spec §6, SPEC_FULL §10.3). Each analysis name the CLI
// exposes to its user maps to exactly one target QID known at the time
// the manifest is read.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SkanUJkod/SkanUJkod/internal/qid"
)

// Manifest maps CLI analysis names to target QID strings.
type Manifest struct {
	Analyses map[string]string `yaml:"analyses"`
}

// Load reads and parses the YAML manifest at path. A missing file is not
// an error — it returns an empty Manifest so the CLI can fall back to
// its bare-function-id convenience (SPEC_FULL §10.3).
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Analyses: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %q: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parsing %q: %w", path, err)
	}
	if m.Analyses == nil {
		m.Analyses = map[string]string{}
	}
	return &m, nil
}

// Resolve looks up the target QID for analysis name. It does not
// validate that the QID is actually registered — that is the planner's
// job once the registry is built.
func (m *Manifest) Resolve(name string) (qid.QID, bool, error) {
	raw, ok := m.Analyses[name]
	if !ok {
		return qid.QID{}, false, nil
	}
	parsed, err := parseQID(raw)
	if err != nil {
		return qid.QID{}, false, fmt.Errorf("manifest: analysis %q maps to invalid QID %q: %w", name, raw, err)
	}
	return parsed, true, nil
}

func parseQID(raw string) (qid.QID, error) {
	for i := 0; i+1 < len(raw); i++ {
		if raw[i] == ':' && raw[i+1] == ':' {
			return qid.New(raw[:i], raw[i+2:])
		}
	}
	return qid.QID{}, fmt.Errorf("expected plugin_id::function_id, got %q", raw)
}
