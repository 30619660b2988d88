package console

import (
	"bufio"
	"fmt"
	"io"
)

// Reader yields one line of player input per call.
type Reader struct {
	s *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(r)}
}

// ReadLine returns the next input line without its trailing newline. It
// returns io.EOF once the source is exhausted.
func (r *Reader) ReadLine() (string, error) {
	if r.s.Scan() {
		return r.s.Text(), nil
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Printer writes user-facing text lines to w.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

func (p *Printer) Println(s string) {
	fmt.Fprintln(p.w, s)
}
