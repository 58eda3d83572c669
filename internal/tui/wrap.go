package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapContent wraps s to width display cells. Unlike a word wrap it keeps
// every space and line break of s, breaking long runs mid-word
// when needed, so the screen shows exactly what will be copied.
func wrapContent(s string, width int) string {
	if width <= 0 {
		width = 60
	}

	src := strings.Split(s, "\n")
	lines := make([]string, 0, len(src))
	for _, line := range src {
		lines = append(lines, wrapLine(line, width)...)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var out []string
	var current strings.Builder
	currentWidth := 0

	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if currentWidth+w > width && currentWidth > 0 {
			out = append(out, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteRune(r)
		currentWidth += w
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}
