package formats

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Animation exchange document errors.
var (
	ErrEmptyAnimDoc     = errors.New("empty animation document")
	ErrNoAnimationsRoot = errors.New("animation document has no animations section")
)

// DefaultAnimLength is the animation length in seconds used when a block
// declares none, or declares one that does not parse as a non-negative
// number. A declared zero length is kept; sampling clamps it.
const DefaultAnimLength = 1.0

// AnimDoc is the raw model of a parsed animation exchange document. It
// carries the external naming and coordinate conventions untouched; the
// importer in pkg/rig converts it to engine animations.
type AnimDoc struct {
	Animations []DocAnimation
	Warnings   []string // non-fatal parse problems, one entry per recovery
}

// DocAnimation is one named animation block.
type DocAnimation struct {
	Name   string
	Length float32
	Loop   bool
	Bones  []DocBone
}

// DocBone is one bone block: three independent time-keyed value tables.
// Time sets are not required to match across the three tables.
type DocBone struct {
	Name     string
	Position map[float32][3]float32
	Rotation map[float32][3]float32
	Scale    map[float32][3]float32
}

var (
	loopRe   = regexp.MustCompile(`"loop"\s*:\s*([A-Za-z_]+)`)
	lengthRe = regexp.MustCompile(`"animation_length"\s*:\s*(-?[0-9]*\.?[0-9]+)`)
	arrayRe  = regexp.MustCompile(`"(-?[0-9]*\.?[0-9]+)"\s*:\s*\[([^\]]*)\]`)
	scalarRe = regexp.MustCompile(`"(-?[0-9]*\.?[0-9]+)"\s*:\s*(-?[0-9]*\.?[0-9]+)`)
)

// ParseAnimDoc parses an animation exchange document. The format is a
// loosely-structured nested brace text with no schema: structure is found
// with depth-counted brace matching (ScanBlocks) and leaf values with
// pattern matching. Parse problems are recovered at the smallest containing
// block and reported through AnimDoc.Warnings; one bad animation or bone
// never invalidates its siblings.
func ParseAnimDoc(data []byte) (*AnimDoc, error) {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyAnimDoc
	}

	body, ok := FindBlock(text, "animations")
	if !ok {
		return nil, ErrNoAnimationsRoot
	}

	doc := &AnimDoc{}
	for _, block := range ScanBlocks(body) {
		doc.Animations = append(doc.Animations, parseAnimation(block, doc))
	}
	return doc, nil
}

// parseAnimation interprets one animation block. A bones section that fails
// to parse yields an animation with zero tracks, a static no-op, so the set
// of recognized animation names is preserved.
func parseAnimation(block Block, doc *AnimDoc) DocAnimation {
	anim := DocAnimation{
		Name:   block.Key,
		Length: DefaultAnimLength,
	}

	if m := loopRe.FindStringSubmatch(block.Body); m != nil {
		anim.Loop = m[1] == "true"
	}

	if m := lengthRe.FindStringSubmatch(block.Body); m != nil {
		if v, err := strconv.ParseFloat(m[1], 32); err == nil && v >= 0 {
			anim.Length = float32(v)
		} else {
			doc.warnf("animation %q: bad animation_length %q, using default", anim.Name, m[1])
		}
	}

	bonesBody, ok := FindBlock(block.Body, "bones")
	if !ok {
		doc.warnf("animation %q: no bones section", anim.Name)
		return anim
	}

	for _, boneBlock := range ScanBlocks(bonesBody) {
		anim.Bones = append(anim.Bones, parseBone(anim.Name, boneBlock, doc))
	}
	return anim
}

// parseBone interprets one bone block. The position/rotation/scale keys are
// matched against the sub-blocks of this body only, so a bone that is
// itself named "rotation" higher up cannot be confused with the channel.
func parseBone(animName string, block Block, doc *AnimDoc) DocBone {
	bone := DocBone{Name: block.Key}
	for _, sub := range ScanBlocks(block.Body) {
		table := parseTimeTable(sub.Body, func(format string, args ...any) {
			doc.warnf("animation %q bone %q %s: "+format,
				append([]any{animName, bone.Name, sub.Key}, args...)...)
		})
		switch sub.Key {
		case "position":
			bone.Position = table
		case "rotation":
			bone.Rotation = table
		case "scale":
			bone.Scale = table
		default:
			doc.warnf("animation %q bone %q: unknown channel %q", animName, bone.Name, sub.Key)
		}
	}
	return bone
}

// parseTimeTable extracts `"time": [a, b, c]` and bare-scalar `"time": v`
// entries from a leaf block body. A scalar broadcasts to all three
// components, as does a one-element array. Unparseable numbers default to
// zero and are reported through warn.
func parseTimeTable(body string, warn func(string, ...any)) map[float32][3]float32 {
	table := make(map[float32][3]float32)

	// Array entries first; their matched spans are blanked out so the
	// scalar pattern cannot re-match the numbers inside the brackets.
	remaining := []byte(body)
	for _, m := range arrayRe.FindAllStringSubmatchIndex(body, -1) {
		timeText := body[m[2]:m[3]]
		listText := body[m[4]:m[5]]
		table[parseTime(timeText, warn)] = parseComponents(listText, warn)
		for i := m[0]; i < m[1]; i++ {
			remaining[i] = ' '
		}
	}

	for _, m := range scalarRe.FindAllStringSubmatch(string(remaining), -1) {
		v := parseNum(m[2], warn)
		table[parseTime(m[1], warn)] = [3]float32{v, v, v}
	}

	return table
}

// parseComponents parses a comma-separated numeric list into a 3-vector.
// One value broadcasts uniformly; two leave the third at zero.
func parseComponents(listText string, warn func(string, ...any)) [3]float32 {
	var out [3]float32
	parts := strings.Split(listText, ",")
	if len(parts) == 1 {
		v := parseNum(parts[0], warn)
		return [3]float32{v, v, v}
	}
	for i, p := range parts {
		if i >= 3 {
			break
		}
		out[i] = parseNum(p, warn)
	}
	return out
}

func parseTime(s string, warn func(string, ...any)) float32 {
	return parseNum(s, warn)
}

// parseNum parses one numeric literal, defaulting to 0 on failure.
func parseNum(s string, warn func(string, ...any)) float32 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		warn("bad numeric value %q, using 0", strings.TrimSpace(s))
		return 0
	}
	return float32(v)
}

func (d *AnimDoc) warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}
