package formats

import "regexp"

// Block is one `"key": { ... }` object extracted from a document. Body is
// the text between the braces, braces excluded.
type Block struct {
	Key  string
	Body string
}

var blockStartRe = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"\s*:\s*\{`)

// ScanBlocks returns the top-level keyed blocks of s in document order.
// Nested blocks are left inside their parent's body; the keys `bones`,
// `rotation`, `position`, and `scale` can legally appear at several nesting
// levels, so a block is always interpreted in the context of the body it
// was extracted from, never by key name alone.
//
// An unclosed block swallows the rest of the document as its body. That is
// deliberate: import degrades to a partial result instead of aborting.
func ScanBlocks(s string) []Block {
	var blocks []Block
	for i := 0; i < len(s); {
		loc := blockStartRe.FindStringSubmatchIndex(s[i:])
		if loc == nil {
			break
		}
		key := s[i+loc[2] : i+loc[3]]
		open := i + loc[1] - 1 // index of the '{'
		end := matchBrace(s, open)
		if end < 0 {
			blocks = append(blocks, Block{Key: key, Body: s[open+1:]})
			break
		}
		blocks = append(blocks, Block{Key: key, Body: s[open+1 : end]})
		i = end + 1
	}
	return blocks
}

// FindBlock returns the body of the first top-level block with the given key.
func FindBlock(s, key string) (string, bool) {
	for _, b := range ScanBlocks(s) {
		if b.Key == key {
			return b.Body, true
		}
	}
	return "", false
}

// matchBrace returns the index of the brace closing the one at open, using
// depth counting, or -1 if the document ends first.
func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
