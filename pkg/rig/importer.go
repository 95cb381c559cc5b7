package rig

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/skelrig/pkg/formats"
)

// BoneMap maps external bone names, which vary across authoring tools
// ("LeftArm", "left_arm", "arm_left"), to the engine's canonical names.
// Names without an entry pass through unchanged, so a bone the skeleton
// happens to define under its external name still imports.
type BoneMap map[string]string

// Canonical resolves an external bone name.
func (m BoneMap) Canonical(external string) string {
	if canonical, ok := m[external]; ok {
		return canonical
	}
	return external
}

// LoadBoneMap reads a YAML external-to-canonical bone name table.
func LoadBoneMap(path string) (BoneMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bone map: %w", err)
	}
	var m BoneMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing bone map: %w", err)
	}
	return m, nil
}

// Importer converts parsed animation exchange documents into engine
// animations, remapping bone names and folding the external 3-axis
// convention into the engine's 2D model.
type Importer struct {
	Map BoneMap
}

// NewImporter creates an importer with the given bone name mapping.
// A nil map imports all names unchanged.
func NewImporter(m BoneMap) *Importer {
	return &Importer{Map: m}
}

// ImportDocument parses an exchange document and returns its animations in
// document order, plus the parser's non-fatal warnings. Parsing is
// deterministic: importing the same document twice yields identical
// animation sets.
func (im *Importer) ImportDocument(data []byte) ([]*BoneAnimation, []string, error) {
	doc, err := formats.ParseAnimDoc(data)
	if err != nil {
		return nil, nil, err
	}

	anims := make([]*BoneAnimation, 0, len(doc.Animations))
	for i := range doc.Animations {
		anims = append(anims, im.convertAnimation(&doc.Animations[i]))
	}
	return anims, doc.Warnings, nil
}

// convertAnimation builds one engine animation from a raw document block.
func (im *Importer) convertAnimation(da *formats.DocAnimation) *BoneAnimation {
	anim := NewBoneAnimation(da.Name, da.Length, da.Loop)
	for i := range da.Bones {
		db := &da.Bones[i]
		name := im.Map.Canonical(db.Name)
		for _, t := range unionTimes(db) {
			anim.AddKeyframe(name, makeKeyframe(db, t))
		}
	}
	return anim
}

// unionTimes collects every time appearing in any of the bone's three
// channel tables, sorted ascending. Channels are not required to share
// time sets.
func unionTimes(db *formats.DocBone) []float32 {
	seen := make(map[float32]bool)
	for t := range db.Position {
		seen[t] = true
	}
	for t := range db.Rotation {
		seen[t] = true
	}
	for t := range db.Scale {
		seen[t] = true
	}

	times := make([]float32, 0, len(seen))
	for t := range seen {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times
}

// makeKeyframe assembles the keyframe at time t, converting coordinates:
// the external vertical axis points the other way (localY = -externalY),
// only the depth-axis rotation is meaningful in 2D, and scale takes the
// external X/Y components directly. A channel with no value at exactly t
// contributes its visually inert default: zero offset, zero rotation,
// scale one.
func makeKeyframe(db *formats.DocBone, t float32) Keyframe {
	kf := Keyframe{Time: t, ScaleX: 1, ScaleY: 1}
	if p, ok := db.Position[t]; ok {
		kf.X = p[0]
		kf.Y = -p[1]
	}
	if r, ok := db.Rotation[t]; ok {
		kf.Rotation = r[2]
	}
	if s, ok := db.Scale[t]; ok {
		kf.ScaleX = s[0]
		kf.ScaleY = s[1]
	}
	return kf
}
