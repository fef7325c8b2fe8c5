package block

import (
	"regexp"
	"strings"
	"testing"
)

func scanAll(t *testing.T, in string) []Block {
	t.Helper()
	sc := NewScanner(strings.NewReader(in))
	var out []Block
	for sc.Scan() {
		out = append(out, sc.Block())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scanning: %v", err)
	}
	return out
}

func TestScannerSplitsOnSeparator(t *testing.T) {
	in := "---\n\tFirst Paper\n\thttps://example.org/1\n---\n\tSecond Paper\n\thttps://example.org/2\n"
	blocks := scanAll(t, in)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Lines[0] != "\tFirst Paper" {
		t.Errorf("unexpected first line: %q", blocks[0].Lines[0])
	}
	if len(blocks[1].Lines) != 2 || blocks[1].Lines[1] != "\thttps://example.org/2" {
		t.Errorf("unexpected second block: %v", blocks[1].Lines)
	}
}

func TestScannerSeparatorMustMatchWholeLine(t *testing.T) {
	in := "---\n----\n--- trailing\n\tcontent\n"
	blocks := scanAll(t, in)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	want := []string{"----", "--- trailing", "\tcontent"}
	if len(blocks[0].Lines) != len(want) {
		t.Fatalf("expected %d lines kept as content, got %v", len(want), blocks[0].Lines)
	}
	for i, l := range want {
		if blocks[0].Lines[i] != l {
			t.Errorf("line %d: expected %q, got %q", i, l, blocks[0].Lines[i])
		}
	}
}

func TestScannerDropsEmptyBlocks(t *testing.T) {
	in := "---\n---\n---\n\tonly\n---\n---\n"
	blocks := scanAll(t, in)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Lines[0] != "\tonly" {
		t.Errorf("unexpected block: %v", blocks[0].Lines)
	}
}

func TestScannerPreambleBecomesBlock(t *testing.T) {
	in := "stray line\n---\n\treal\n"
	blocks := scanAll(t, in)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Lines[0] != "stray line" {
		t.Errorf("expected preamble as its own block, got %v", blocks[0].Lines)
	}
}

func TestScannerFinalBlockNeedsNoSeparator(t *testing.T) {
	blocks := scanAll(t, "---\n\tlast")
	if len(blocks) != 1 || blocks[0].Lines[0] != "\tlast" {
		t.Fatalf("expected trailing block, got %v", blocks)
	}
}

func TestScannerEmptyInput(t *testing.T) {
	if blocks := scanAll(t, ""); len(blocks) != 0 {
		t.Errorf("expected no blocks, got %v", blocks)
	}
	if blocks := scanAll(t, "---\n"); len(blocks) != 0 {
		t.Errorf("expected no blocks from lone separator, got %v", blocks)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	in := "---\n\tA Paper\n\thttps://example.org/1\n\tauthor: Jane Doe\n---\n\tAnother\n\thttps://example.org/2\n"
	var sb strings.Builder
	for _, b := range scanAll(t, in) {
		if err := b.Write(&sb); err != nil {
			t.Fatalf("writing block: %v", err)
		}
	}
	if sb.String() != in {
		t.Errorf("round trip changed stream:\nin:  %q\nout: %q", in, sb.String())
	}
}

func TestWriteEmptyBlockProducesNothing(t *testing.T) {
	var sb strings.Builder
	if err := (Block{}).Write(&sb); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if sb.Len() != 0 {
		t.Errorf("expected no output, got %q", sb.String())
	}
}

func TestMatchAnyLine(t *testing.T) {
	b := Block{Lines: []string{"\tSome Title", "\thttps://example.org/1", "\tciting: Alice"}}
	if !b.Match(regexp.MustCompile(`(?i)alice`)) {
		t.Errorf("expected match on citing line")
	}
	if !b.Match(regexp.MustCompile(`example\.org`)) {
		t.Errorf("expected match on url line")
	}
	if b.Match(regexp.MustCompile(`bob`)) {
		t.Errorf("unexpected match")
	}
}
