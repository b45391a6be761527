package overlay

import (
	"fmt"
	"strings"

	"github.com/justchokingaround/marquee/internal/tui/styles"
)

// RenderGenres renders genre names as badges, at most maxGenres of them
// followed by a "+N" overflow badge
func RenderGenres(genres []string, maxGenres int) string {
	if len(genres) == 0 || maxGenres <= 0 {
		return ""
	}

	shown := genres
	if len(genres) > maxGenres {
		shown = genres[:maxGenres]
	}

	parts := make([]string, 0, len(shown)+1)
	for _, g := range shown {
		parts = append(parts, styles.GenreBadgeStyle.Render(g))
	}
	if extra := len(genres) - len(shown); extra > 0 {
		parts = append(parts, styles.GenreBadgeStyle.Render(fmt.Sprintf("+%d", extra)))
	}

	return strings.Join(parts, " ")
}
