package blacklist

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

// Load reads a blacklist file with one entry per line. Blank lines and
// lines starting with # are skipped; surrounding whitespace is trimmed.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blacklist file: %w", err)
	}
	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}

// Filter drops papers whose URL contains a publisher entry or whose
// description contains a topic entry.
type Filter struct {
	publishers []string
	topics     []string
	fold       cases.Caser
}

func NewFilter(publishers, topics []string) *Filter {
	return &Filter{publishers: publishers, topics: topics, fold: cases.Fold()}
}

// Exclude reports whether the paper should be dropped. Publisher
// entries match the URL literally; topic entries match the case-folded
// description, with the entry itself taken verbatim.
func (f *Filter) Exclude(url, desc string) bool {
	for _, p := range f.publishers {
		if strings.Contains(url, p) {
			return true
		}
	}
	desc = f.fold.String(desc)
	for _, t := range f.topics {
		if strings.Contains(desc, t) {
			return true
		}
	}
	return false
}
