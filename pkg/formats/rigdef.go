package formats

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rig definition errors.
var (
	ErrRigNoBones       = errors.New("rig definition has no bones")
	ErrRigNoRoot        = errors.New("rig definition has no root bone")
	ErrRigMultipleRoots = errors.New("rig definition has multiple root bones")
	ErrRigDuplicateBone = errors.New("duplicate bone name in rig definition")
	ErrRigUnknownParent = errors.New("unknown parent bone in rig definition")
)

// RigDef describes a character's bone tree as authored in a YAML rig file.
// It is pure data; pkg/rig builds a live skeleton from it.
type RigDef struct {
	Name  string       `yaml:"name"`
	Bones []RigBoneDef `yaml:"bones"`
}

// RigBoneDef is one bone entry. An empty parent marks the root. Scale and
// Pivot are optional pairs: a missing scale means 1.0 on both axes, a
// missing pivot means the centered anchor (0.5, 0.5).
type RigBoneDef struct {
	Name     string    `yaml:"name"`
	Parent   string    `yaml:"parent"`
	X        float32   `yaml:"x"`
	Y        float32   `yaml:"y"`
	Rotation float32   `yaml:"rotation"`
	Scale    []float32 `yaml:"scale"`
	Pivot    []float32 `yaml:"pivot"`
	ZOrder   int       `yaml:"z_order"`
	Texture  string    `yaml:"texture"`
	Width    float32   `yaml:"width"`
	Height   float32   `yaml:"height"`
}

// ScaleXY returns the bone's scale pair, defaulting to (1, 1).
func (b *RigBoneDef) ScaleXY() (float32, float32) {
	switch len(b.Scale) {
	case 0:
		return 1, 1
	case 1:
		return b.Scale[0], b.Scale[0]
	default:
		return b.Scale[0], b.Scale[1]
	}
}

// PivotXY returns the bone's pivot pair, defaulting to the center (0.5, 0.5).
func (b *RigBoneDef) PivotXY() (float32, float32) {
	switch len(b.Pivot) {
	case 0:
		return 0.5, 0.5
	case 1:
		return b.Pivot[0], b.Pivot[0]
	default:
		return b.Pivot[0], b.Pivot[1]
	}
}

// ParseRigDef parses and validates a YAML rig definition: every bone needs
// a name, names must be unique, exactly one bone is the root, and every
// parent reference must resolve.
func ParseRigDef(data []byte) (*RigDef, error) {
	var def RigDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing rig definition: %w", err)
	}

	if len(def.Bones) == 0 {
		return nil, ErrRigNoBones
	}

	names := make(map[string]bool, len(def.Bones))
	rootCount := 0
	for i := range def.Bones {
		b := &def.Bones[i]
		if b.Name == "" {
			return nil, fmt.Errorf("bone %d: empty name", i)
		}
		if names[b.Name] {
			return nil, fmt.Errorf("%w: %q", ErrRigDuplicateBone, b.Name)
		}
		names[b.Name] = true
		if b.Parent == "" {
			rootCount++
		}
	}

	if rootCount == 0 {
		return nil, ErrRigNoRoot
	}
	if rootCount > 1 {
		return nil, ErrRigMultipleRoots
	}

	for i := range def.Bones {
		b := &def.Bones[i]
		if b.Parent != "" && !names[b.Parent] {
			return nil, fmt.Errorf("%w: bone %q references %q", ErrRigUnknownParent, b.Name, b.Parent)
		}
	}

	return &def, nil
}

// LoadRigDef reads and parses a rig definition file.
func LoadRigDef(path string) (*RigDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rig file: %w", err)
	}
	return ParseRigDef(data)
}
