package formats

import (
	"errors"
	"testing"
)

const sampleRig = `
name: grunt
bones:
  - name: torso
    texture: grunt/torso.png
    width: 32
    height: 48
    z_order: 5
  - name: leg_left
    parent: torso
    x: -6
    y: 20
    pivot: [0.5, 0.0]
    z_order: 3
    texture: grunt/leg.png
    width: 10
    height: 24
  - name: leg_right
    parent: torso
    x: 6
    y: 20
    scale: [1, 1.5]
    z_order: 7
    texture: grunt/leg.png
    width: 10
    height: 24
`

func TestParseRigDef(t *testing.T) {
	def, err := ParseRigDef([]byte(sampleRig))
	if err != nil {
		t.Fatalf("ParseRigDef failed: %v", err)
	}

	if def.Name != "grunt" {
		t.Errorf("name = %q, want grunt", def.Name)
	}
	if len(def.Bones) != 3 {
		t.Fatalf("got %d bones, want 3", len(def.Bones))
	}

	torso := def.Bones[0]
	if torso.Parent != "" {
		t.Errorf("torso parent = %q, want root", torso.Parent)
	}
	sx, sy := torso.ScaleXY()
	if sx != 1 || sy != 1 {
		t.Errorf("default scale = (%v, %v), want (1, 1)", sx, sy)
	}
	px, py := torso.PivotXY()
	if px != 0.5 || py != 0.5 {
		t.Errorf("default pivot = (%v, %v), want (0.5, 0.5)", px, py)
	}

	left := def.Bones[1]
	px, py = left.PivotXY()
	if px != 0.5 || py != 0 {
		t.Errorf("leg_left pivot = (%v, %v), want (0.5, 0)", px, py)
	}

	right := def.Bones[2]
	sx, sy = right.ScaleXY()
	if sx != 1 || sy != 1.5 {
		t.Errorf("leg_right scale = (%v, %v), want (1, 1.5)", sx, sy)
	}
}

func TestParseRigDef_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "no bones",
			yaml: `name: empty`,
			want: ErrRigNoBones,
		},
		{
			name: "no root",
			yaml: "bones:\n  - name: a\n    parent: b\n  - name: b\n    parent: a",
			want: ErrRigNoRoot,
		},
		{
			name: "multiple roots",
			yaml: "bones:\n  - name: a\n  - name: b",
			want: ErrRigMultipleRoots,
		},
		{
			name: "duplicate name",
			yaml: "bones:\n  - name: a\n  - name: a\n    parent: a",
			want: ErrRigDuplicateBone,
		},
		{
			name: "unknown parent",
			yaml: "bones:\n  - name: a\n  - name: b\n    parent: ghost",
			want: ErrRigUnknownParent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRigDef([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
