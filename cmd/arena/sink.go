package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleHurt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleDeal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleMiss = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDeath = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleBanner = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(0, 1)
)

// lineKind identifies the type of a game message for styling.
type lineKind int

const (
	kindPlain lineKind = iota
	kindHurt
	kindDeal
	kindMiss
	kindDeath
)

// classifyLine decides how a game message is styled.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "You have slain"),
		strings.HasPrefix(line, "You have destroyed"),
		strings.HasSuffix(line, "dies."),
		strings.HasSuffix(line, "is destroyed."):
		return kindDeath
	case strings.HasPrefix(line, "You miss"),
		strings.HasSuffix(line, "misses you."):
		return kindMiss
	case strings.HasPrefix(line, "You hit"),
		strings.HasPrefix(line, "It was a"):
		return kindDeal
	case strings.Contains(line, " you"),
		strings.HasPrefix(line, "You are"),
		strings.HasPrefix(line, "You feel"),
		strings.HasPrefix(line, "Your "):
		return kindHurt
	}
	return kindPlain
}

func styleFor(k lineKind) lipgloss.Style {
	switch k {
	case kindHurt:
		return styleHurt
	case kindDeal:
		return styleDeal
	case kindMiss:
		return styleMiss
	case kindDeath:
		return styleDeath
	}
	return lipgloss.NewStyle()
}

// consoleSink writes game messages to w, styled by kind.
type consoleSink struct {
	w io.Writer
}

// Msg writes one styled line.
func (c consoleSink) Msg(text string) {
	fmt.Fprintln(c.w, styleFor(classifyLine(text)).Render(text))
}

// banner writes a highlighted heading line.
func banner(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleBanner.Render(fmt.Sprintf(format, args...)))
}
