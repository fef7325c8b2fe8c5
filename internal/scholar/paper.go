package scholar

import (
	"sort"
	"strings"

	"github.com/graydon/scholar-digest/internal/block"
	"github.com/graydon/scholar-digest/internal/classify"
)

// Paper is one deduplicated alert target. The canonical URL is its identity;
// the description is fixed by the first text observed for that URL and never
// overwritten.
type Paper struct {
	URL     string
	Desc    string
	Author  map[string]bool
	Citing  map[string]bool
	Related map[string]bool
}

func newPaper(url, desc string) *Paper {
	return &Paper{
		URL:     url,
		Desc:    desc,
		Author:  make(map[string]bool),
		Citing:  make(map[string]bool),
		Related: make(map[string]bool),
	}
}

// note records one classification match against this paper. Duplicate names
// collapse; a name may legitimately appear under more than one kind.
func (p *Paper) note(m classify.Match) {
	switch m.Kind {
	case classify.Author:
		p.Author[m.Name] = true
	case classify.Citing:
		p.Citing[m.Name] = true
	case classify.Related:
		p.Related[m.Name] = true
	}
}

// Names returns the entity names recorded under kind, sorted for stable output.
func (p *Paper) Names(kind classify.Kind) []string {
	var set map[string]bool
	switch kind {
	case classify.Author:
		set = p.Author
	case classify.Citing:
		set = p.Citing
	case classify.Related:
		set = p.Related
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Block renders the paper in digest stream form: description and URL,
// then one line per non-empty kind with its names joined by ", ".
func (p *Paper) Block() block.Block {
	lines := []string{"\t" + p.Desc, "\t" + p.URL}
	for _, kind := range classify.AllKinds() {
		names := p.Names(kind)
		if len(names) == 0 {
			continue
		}
		lines = append(lines, "\t"+string(kind)+": "+strings.Join(names, ", "))
	}
	return block.Block{Lines: lines}
}
