package lineprint

import (
	"bufio"
	"fmt"
	"io"
)

// LinePrint pairs one input line with the fingerprint of the block that line
// completes (or of the line itself, when it completes none).
type LinePrint struct {
	Fingerprint string
	Line        string
}

func (lp LinePrint) String() string {
	return lp.Fingerprint + " " + lp.Line
}

// FilePrint represents one hashed source file.
type FilePrint struct {
	Path  string
	Lines []LinePrint
}

// FingerprintError reports a failed fingerprint computation for one line.
// The failure aborts the run; a partially bogus output is worse than none.
type FingerprintError struct {
	Line int // 1-based
	Err  error
}

func (e FingerprintError) Error() string {
	return fmt.Sprintf("fingerprinting line %d: %v", e.Line, e.Err)
}

func (e FingerprintError) Unwrap() error { return e.Err }

// hashEach feeds r to a fresh Tracker line by line and calls fn with each
// finished LinePrint, in input order. One line is fully processed before the
// next is read.
func hashEach(r io.Reader, fpr FingerPrinter, fn func(LinePrint)) error {
	tr := NewTracker()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		fp, err := fpr(tr.Feed(line))
		if err != nil {
			return FingerprintError{Line: n, Err: err}
		}
		fn(LinePrint{Fingerprint: fp, Line: line})
	}
	return sc.Err()
}

// HashLines hashes every line read from r and returns the prints in input order.
func HashLines(r io.Reader, fpr FingerPrinter) ([]LinePrint, error) {
	var prints []LinePrint
	err := hashEach(r, fpr, func(lp LinePrint) {
		prints = append(prints, lp)
	})
	return prints, err
}

// HashTo hashes every line read from r and writes one "<fingerprint> <line>"
// pair per input line to w.
func HashTo(w io.Writer, r io.Reader, fpr FingerPrinter) error {
	bw := bufio.NewWriter(w)
	err := hashEach(r, fpr, func(lp LinePrint) {
		fmt.Fprintln(bw, lp) // write errors surface on Flush
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}
