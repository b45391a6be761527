package utils

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Batman", Truncate("Batman", 10))
	assert.Equal(t, "The Dar...", Truncate("The Dark Knight", 10))
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "Ba", Truncate("Batman", 2))

	// wide runes count as two cells
	got := Truncate("千と千尋の神隠し", 9)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 9)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "Alien     ", Fit("Alien", 10))
	assert.Equal(t, "Interst...", Fit("Interstellar", 10))
	assert.Equal(t, 10, runewidth.StringWidth(Fit("七人の侍", 10)))
}

func TestWrapText(t *testing.T) {
	lines := WrapText("A ticking-time-bomb insomniac and a slippery soap salesman", 20)

	assert.Equal(t, []string{
		"A ticking-time-bomb",
		"insomniac and a",
		"slippery soap",
		"salesman",
	}, lines)

	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 20)
	}

	assert.Nil(t, WrapText("   ", 20))
	assert.Nil(t, WrapText("text", 0))
}

func TestTruncateToLines(t *testing.T) {
	text := "one two three four five six seven eight nine ten"

	assert.Equal(t, "one two three\nfour five six\nseven eight nine\nten", TruncateToLines(text, 10, 16))

	got := TruncateToLines(text, 2, 16)
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "one two three", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "..."))
	assert.LessOrEqual(t, runewidth.StringWidth(lines[1]), 16)

	assert.Empty(t, TruncateToLines(text, 0, 16))
}
