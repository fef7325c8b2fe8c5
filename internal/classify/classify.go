package classify

import "regexp"

// Kind represents the watch behind a scholar alert subject line.
type Kind string

const (
	Author  Kind = "author"
	Citing  Kind = "citing"
	Related Kind = "related"
)

// AllKinds returns the kinds in canonical output order.
func AllKinds() []Kind {
	return []Kind{Author, Citing, Related}
}

var (
	authorRx  = regexp.MustCompile(`^(.*) - new articles$`)
	citingRx  = regexp.MustCompile(`^(.*) - new citations$`)
	relatedRx = regexp.MustCompile(`^(.*) - new related research$`)
)

// Match ties a watched-entity name to the kind of alert its subject announced.
type Match struct {
	Name string
	Kind Kind
}

// Matches classifies a subject line by its fixed suffix. The patterns are tried
// in order author, citing, related; an author match is returned alone, while
// citing and related are each checked independently, so a crafted subject could
// in principle yield more than one match. A subject matching no pattern returns
// an empty slice and is ignored by callers.
func Matches(subject string) []Match {
	if m := authorRx.FindStringSubmatch(subject); m != nil {
		return []Match{{Name: m[1], Kind: Author}}
	}
	var out []Match
	if m := citingRx.FindStringSubmatch(subject); m != nil {
		out = append(out, Match{Name: m[1], Kind: Citing})
	}
	if m := relatedRx.FindStringSubmatch(subject); m != nil {
		out = append(out, Match{Name: m[1], Kind: Related})
	}
	return out
}
