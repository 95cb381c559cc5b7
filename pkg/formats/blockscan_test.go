package formats

import "testing"

func TestScanBlocks_TopLevelOnly(t *testing.T) {
	doc := `{
		"first": { "a": 1, "inner": { "b": 2 } },
		"second": { "c": 3 }
	}`

	blocks := ScanBlocks(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}
	if blocks[0].Key != "first" || blocks[1].Key != "second" {
		t.Errorf("keys = %q, %q; want first, second", blocks[0].Key, blocks[1].Key)
	}
	// Nested block stays inside its parent's body
	if _, ok := FindBlock(blocks[0].Body, "inner"); !ok {
		t.Error("nested block missing from parent body")
	}
}

func TestScanBlocks_StructuralKeyAsName(t *testing.T) {
	// A bone legally named "rotation" must not swallow the channel block:
	// blocks are disambiguated by the body they are scanned from.
	doc := `"bones": {
		"rotation": {
			"rotation": { "0.0": [0, 0, 45] }
		}
	}`

	bonesBody, ok := FindBlock(doc, "bones")
	if !ok {
		t.Fatal("bones block not found")
	}

	bones := ScanBlocks(bonesBody)
	if len(bones) != 1 || bones[0].Key != "rotation" {
		t.Fatalf("bone blocks = %+v, want one named rotation", bones)
	}

	channels := ScanBlocks(bones[0].Body)
	if len(channels) != 1 || channels[0].Key != "rotation" {
		t.Fatalf("channel blocks = %+v, want one named rotation", channels)
	}
}

func TestScanBlocks_UnclosedBrace(t *testing.T) {
	doc := `"walk": { "loop": true, "bones": { "leg": {`

	blocks := ScanBlocks(doc)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1 best-effort block", len(blocks))
	}
	if blocks[0].Key != "walk" {
		t.Errorf("key = %q, want walk", blocks[0].Key)
	}
}

func TestScanBlocks_Empty(t *testing.T) {
	if blocks := ScanBlocks(""); blocks != nil {
		t.Errorf("ScanBlocks(\"\") = %+v, want nil", blocks)
	}
	if blocks := ScanBlocks(`"no_block": 5`); blocks != nil {
		t.Errorf("no braced value should yield blocks, got %+v", blocks)
	}
}

func TestFindBlock_Missing(t *testing.T) {
	if _, ok := FindBlock(`"a": { }`, "b"); ok {
		t.Error("FindBlock found a block that is not there")
	}
}
