package scholar

import (
	"io"
	"net/url"

	"golang.org/x/net/html"

	"github.com/graydon/scholar-digest/internal/classify"
)

// alertClass marks the anchor wrapping an alert's primary link. Its href is a
// scholar redirector whose "url" query parameter carries the real paper link.
const alertClass = "gse_alrt_title"

// Aggregator accumulates Papers across any number of (subject, fragment)
// pairs. It is owned by the caller's run scope and passed into each parse
// call; the capture state survives between fragments.
type Aggregator struct {
	papers map[string]*Paper
	order  []string

	// subject applies to every paper touched until the next SetSubject.
	subject string
	// pending is the canonical URL armed by the last qualifying anchor start
	// tag; empty means idle. Any end tag disarms it.
	pending string
}

func NewAggregator() *Aggregator {
	return &Aggregator{papers: make(map[string]*Paper)}
}

// SetSubject sets the subject line attributed to every paper touched while
// parsing subsequent fragments.
func (a *Aggregator) SetSubject(subject string) {
	a.subject = subject
}

// Len reports how many distinct papers have been seen.
func (a *Aggregator) Len() int {
	return len(a.papers)
}

// Papers returns the accumulated records in first-seen order.
func (a *Aggregator) Papers() []*Paper {
	out := make([]*Paper, 0, len(a.order))
	for _, u := range a.order {
		out = append(out, a.papers[u])
	}
	return out
}

// ReadFragment streams one HTML fragment through the capture state machine.
// Only three token shapes matter: a qualifying anchor start tag arms the
// capture with its canonical URL, any end tag disarms it, and text while armed
// lands on the paper for the armed URL. All other markup is inert, so
// malformed fragments fall through harmlessly.
func (a *Aggregator) ReadFragment(r io.Reader) error {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil
		case html.StartTagToken:
			a.startTag(z.Token())
		case html.SelfClosingTagToken:
			// start and end in one token
			a.startTag(z.Token())
			a.endTag()
		case html.EndTagToken:
			a.endTag()
		case html.TextToken:
			a.text(z.Token().Data)
		}
	}
}

// endTag disarms the capture. The rule is deliberately broad: any end tag
// ends the description capture, not just the anchor's own.
func (a *Aggregator) endTag() {
	a.pending = ""
}

func (a *Aggregator) startTag(t html.Token) {
	if t.Data != "a" {
		return
	}
	var class, href string
	for _, attr := range t.Attr {
		switch attr.Key {
		case "class":
			class = attr.Val
		case "href":
			href = attr.Val
		}
	}
	if class != alertClass {
		return
	}
	u, err := url.Parse(href)
	if err != nil {
		return
	}
	if target := u.Query().Get("url"); target != "" {
		a.pending = target
	}
}

func (a *Aggregator) text(data string) {
	if a.pending == "" {
		return
	}
	p, ok := a.papers[a.pending]
	if !ok {
		p = newPaper(a.pending, data)
		a.papers[a.pending] = p
		a.order = append(a.order, a.pending)
	}
	for _, m := range classify.Matches(a.subject) {
		p.note(m)
	}
}
