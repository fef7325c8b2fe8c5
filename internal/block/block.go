package block

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Separator is the line that opens each block in a digest stream.
// Only a line equal to it, with nothing else on the line, counts.
const Separator = "---"

// Block is one run of lines between separators. Lines carry no
// trailing newline and never include the separator itself.
type Block struct {
	Lines []string
}

// Match reports whether any line of the block matches rx.
func (b Block) Match(rx *regexp.Regexp) bool {
	for _, line := range b.Lines {
		if rx.MatchString(line) {
			return true
		}
	}
	return false
}

// Write serializes the block as a separator line followed by its
// lines. Blocks with no lines produce no output at all.
func (b Block) Write(w io.Writer) error {
	if len(b.Lines) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(Separator)
	sb.WriteByte('\n')
	for _, line := range b.Lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Scanner splits a digest stream into blocks. Consecutive separators,
// a separator at the start of input, and a trailing separator all
// yield nothing; lines before the first separator form a block of
// their own, and the final block needs no closing separator.
type Scanner struct {
	sc  *bufio.Scanner
	cur Block
}

func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{sc: sc}
}

// Scan advances to the next non-empty block, reporting whether one is
// available via Block.
func (s *Scanner) Scan() bool {
	var lines []string
	for s.sc.Scan() {
		line := s.sc.Text()
		if line == Separator {
			if len(lines) > 0 {
				s.cur = Block{Lines: lines}
				return true
			}
			continue
		}
		lines = append(lines, line)
	}
	if s.sc.Err() != nil {
		return false
	}
	if len(lines) > 0 {
		s.cur = Block{Lines: lines}
		return true
	}
	return false
}

// Block returns the block read by the last successful Scan.
func (s *Scanner) Block() Block {
	return s.cur
}

// Err returns the first error hit while reading the stream.
func (s *Scanner) Err() error {
	return s.sc.Err()
}
