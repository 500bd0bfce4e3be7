package pitch

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LayerRoles maps the three stack roles to layer keys in the table. The
// mapping is configuration handed in by the caller, never inferred from the
// data and never a package-level constant.
type LayerRoles struct {
	Via    string `yaml:"via"`
	MetalA string `yaml:"metal_a"`
	MetalB string `yaml:"metal_b"`
}

// Validate rejects empty or duplicated role keys before any geometry work.
func (r LayerRoles) Validate() error {
	if r.Via == "" || r.MetalA == "" || r.MetalB == "" {
		return NewError(CodeInvalidLayerSpec,
			"all three roles need a layer key, got via=%q metal_a=%q metal_b=%q", r.Via, r.MetalA, r.MetalB)
	}
	if r.Via == r.MetalA || r.Via == r.MetalB || r.MetalA == r.MetalB {
		return NewError(CodeInvalidLayerSpec,
			"role layer keys must be distinct, got via=%q metal_a=%q metal_b=%q", r.Via, r.MetalA, r.MetalB)
	}
	return nil
}

// LoadLayerRoles reads a role mapping from a YAML file. Unknown keys are
// rejected so a typo in the mapping fails loudly instead of silently leaving
// a role empty.
func LoadLayerRoles(path string) (LayerRoles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayerRoles{}, fmt.Errorf("reading role mapping: %w", err)
	}
	var roles LayerRoles
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&roles); err != nil {
		return LayerRoles{}, WrapError(CodeInvalidLayerSpec, err, "parsing role mapping %s", path)
	}
	if err := roles.Validate(); err != nil {
		return LayerRoles{}, err
	}
	return roles, nil
}
