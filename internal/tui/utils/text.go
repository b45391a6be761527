package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// Truncate shortens text to fit within width cells, ending it with "..."
// when anything was cut
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= len(ellipsis) {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, ellipsis)
}

// Fit truncates text and pads it with spaces to exactly width cells
func Fit(text string, width int) string {
	return runewidth.FillRight(Truncate(text, width), width)
}

// WrapText wraps text at word boundaries to fit within maxWidth.
// Words wider than maxWidth are truncated.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		word = Truncate(word, maxWidth)
		w := runewidth.StringWidth(word)

		switch {
		case lineWidth == 0:
			line.WriteString(word)
			lineWidth = w
		case lineWidth+1+w <= maxWidth:
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + w
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			lineWidth = w
		}
	}

	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// TruncateToLines wraps text and keeps at most maxLines lines, marking the
// last kept line with "..." when text was dropped
func TruncateToLines(text string, maxLines, maxWidth int) string {
	lines := WrapText(text, maxWidth)
	if maxLines <= 0 {
		return ""
	}
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}

	lines = lines[:maxLines]
	lines[maxLines-1] = Truncate(lines[maxLines-1]+ellipsis, maxWidth)

	return strings.Join(lines, "\n")
}
