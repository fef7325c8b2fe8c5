package blacklist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.txt")
	content := "# noisy publishers\nmdpi.com\n\n  researchgate.net  \n# trailing comment\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"mdpi.com", "researchgate.net"}
	if len(entries) != len(want) {
		t.Fatalf("expected %v, got %v", want, entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], entries[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExcludePublisher(t *testing.T) {
	f := NewFilter([]string{"mdpi.com"}, nil)
	if !f.Exclude("https://www.mdpi.com/1234", "Any Title") {
		t.Error("expected publisher match to exclude")
	}
	if f.Exclude("https://journals.example.org/1234", "Any Title") {
		t.Error("unexpected exclusion")
	}
}

func TestExcludePublisherCaseSensitive(t *testing.T) {
	f := NewFilter([]string{"mdpi.com"}, nil)
	if f.Exclude("https://www.MDPI.com/1234", "Any Title") {
		t.Error("publisher entries match literally, not case-insensitively")
	}
}

func TestExcludeTopicFoldsDescription(t *testing.T) {
	f := NewFilter(nil, []string{"blockchain"})
	if !f.Exclude("https://example.org/1", "A BLOCKCHAIN Approach to Everything") {
		t.Error("expected match against case-folded description")
	}
	if !f.Exclude("https://example.org/2", "the blockchain strikes back") {
		t.Error("expected lowercase topic match")
	}
	if f.Exclude("https://example.org/3", "Block chains of a different kind") {
		t.Error("unexpected exclusion")
	}
}

func TestExcludeTopicEntryTakenVerbatim(t *testing.T) {
	f := NewFilter(nil, []string{"Blockchain"})
	if f.Exclude("https://example.org/1", "a blockchain study") {
		t.Error("entries are not folded; an uppercase entry cannot match")
	}
	if f.Exclude("https://example.org/2", "A Blockchain Study") {
		t.Error("folding the description lowercases it before matching")
	}
}

func TestExcludeEmptyFilter(t *testing.T) {
	f := NewFilter(nil, nil)
	if f.Exclude("https://example.org/1", "Title") {
		t.Error("empty filter should exclude nothing")
	}
}
