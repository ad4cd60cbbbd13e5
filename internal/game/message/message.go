// Package message is the fire-and-forget output channel the combat engine
// writes player-facing text to.
package message

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sink receives one line of game text at a time.
type Sink interface {
	Msg(text string)
}

// Msgf formats and writes one line to s.
func Msgf(s Sink, format string, args ...any) {
	s.Msg(fmt.Sprintf(format, args...))
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// Buffer is an in-memory Sink that keeps every line.
// It is not safe for concurrent use.
type Buffer struct {
	lines []string
}

// Msg appends text.
func (b *Buffer) Msg(text string) {
	b.lines = append(b.lines, text)
}

// Lines returns a copy of every recorded line.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Contains reports whether any line contains sub.
func (b *Buffer) Contains(sub string) bool {
	for _, l := range b.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

// Reset drops all recorded lines.
func (b *Buffer) Reset() {
	b.lines = b.lines[:0]
}

// Discard is a Sink that drops everything.
type Discard struct{}

// Msg does nothing.
func (Discard) Msg(string) {}

// Func adapts a plain function to a Sink.
type Func func(string)

// Msg calls f.
func (f Func) Msg(text string) { f(text) }
