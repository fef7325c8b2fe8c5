package cmd

import (
	"strings"
	"testing"
)

func TestStatsCountsBlocks(t *testing.T) {
	path := writeTestDigest(t)
	stdout, _, err := runCLI(t, "stats", "--file", path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(stdout, "Blocks: 2") {
		t.Errorf("expected block count, got %q", stdout)
	}
	if !strings.Contains(stdout, "Digest: "+path) {
		t.Errorf("expected digest path, got %q", stdout)
	}
}

func TestStatsRequiresFile(t *testing.T) {
	if _, _, err := runCLI(t, "stats"); err == nil {
		t.Error("expected error when no --file given")
	}
}

func TestStatsMissingFile(t *testing.T) {
	if _, _, err := runCLI(t, "stats", "--file", "absent.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
