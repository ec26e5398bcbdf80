package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk shape of a YAML-configured policy set, mirroring
// the "allow" field name used by policy-manifest examples in the reference
// corpus (agent-identity-protocol's agent.yaml).
type Manifest struct {
	Allowlists []AllowlistRule `yaml:"allow"`
	Thresholds []ThresholdRule `yaml:"thresholds"`
}

// AllowlistRule is one allowlist entry in a Manifest.
type AllowlistRule struct {
	Tool   string   `yaml:"tool"`
	Field  string   `yaml:"field"`
	Values []string `yaml:"values"`
}

// ThresholdRule is one threshold entry in a Manifest.
type ThresholdRule struct {
	Tool  string  `yaml:"tool"`
	Field string  `yaml:"field"`
	Max   float64 `yaml:"max"`
}

// LoadManifest reads and parses a policy manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses a policy manifest from raw YAML bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse policy manifest: %w", err)
	}
	return &m, nil
}

// Gates builds the Gate slice described by the manifest, in the order its
// rules were declared (allowlists first, then thresholds).
func (m *Manifest) Gates() []Gate {
	gates := make([]Gate, 0, len(m.Allowlists)+len(m.Thresholds))
	for _, rule := range m.Allowlists {
		gates = append(gates, NewAllowlist(rule.Tool, rule.Field, rule.Values))
	}
	for _, rule := range m.Thresholds {
		gates = append(gates, NewThreshold(rule.Tool, rule.Field, rule.Max))
	}
	return gates
}
