package editor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/graydon/scholar-digest/internal/block"
)

// Show streams every block of the digest at path that matches rx to w.
// The file is not modified.
func Show(w io.Writer, path string, rx *regexp.Regexp) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(w)
	sc := block.NewScanner(f)
	for sc.Scan() {
		if b := sc.Block(); b.Match(rx) {
			if err := b.Write(bw); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return bw.Flush()
}

// Delete rewrites the digest at path in place, dropping every block
// that matches rx. The rewrite is transactional: on any failure the
// original file is restored.
func Delete(path string, rx *regexp.Regexp) error {
	t, err := begin(path)
	if err != nil {
		return err
	}
	defer t.Abort()

	bw := bufio.NewWriter(t.dst)
	sc := block.NewScanner(t.old)
	for sc.Scan() {
		b := sc.Block()
		if b.Match(rx) {
			continue
		}
		if err := b.Write(bw); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", t.bak, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return t.Commit()
}

// tx is an in-place rewrite of one file. Between begin and Commit the
// original lives at path+".bak" and stays readable through old, while
// dst is a fresh file at path. Abort puts the original back; it is
// safe to defer and does nothing once Commit has finished.
type tx struct {
	path string
	bak  string
	old  *os.File
	dst  *os.File
	done bool
}

func begin(path string) (*tx, error) {
	bak := path + ".bak"
	os.Remove(bak)
	if err := os.Rename(path, bak); err != nil {
		return nil, fmt.Errorf("renaming %s: %w", path, err)
	}
	old, err := os.Open(bak)
	if err != nil {
		os.Rename(bak, path)
		return nil, fmt.Errorf("opening %s: %w", bak, err)
	}
	perm := os.FileMode(0644)
	if info, err := old.Stat(); err == nil {
		perm = info.Mode().Perm()
	}
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		old.Close()
		os.Rename(bak, path)
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	// the create mode is subject to umask
	dst.Chmod(perm)
	return &tx{path: path, bak: bak, old: old, dst: dst}, nil
}

func (t *tx) Commit() error {
	if err := t.dst.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", t.path, err)
	}
	t.old.Close()
	if err := os.Remove(t.bak); err != nil {
		return fmt.Errorf("removing %s: %w", t.bak, err)
	}
	t.done = true
	return nil
}

func (t *tx) Abort() {
	if t.done {
		return
	}
	t.done = true
	t.dst.Close()
	t.old.Close()
	os.Remove(t.path)
	os.Rename(t.bak, t.path)
}
