// Package console is the interactive front end: a Session that reads
// answers line by line, and a Menu that routes numbered choices to
// handlers, much like an HTTP mux routes paths.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Session pairs the input the user types with the output they see.
type Session struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewSession reads answers from in and writes prompts and results to out.
func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Printf writes formatted output.
func (s *Session) Printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// Println writes args followed by a newline.
func (s *Session) Println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

// Prompt prints label (without a newline) and returns the next input line
// with its line ending removed. It returns io.EOF once input is exhausted.
func (s *Session) Prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("console: read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

// PromptInt is Prompt followed by an integer parse. A malformed answer
// yields a *strconv.NumError; end of input yields io.EOF.
func (s *Session) PromptInt(label string) (int64, error) {
	raw, err := s.Prompt(label)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
