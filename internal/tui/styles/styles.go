package styles

import "github.com/charmbracelet/lipgloss"

// Oxocarbon color scheme - IBM Carbon inspired
// Following base16 oxocarbon-dark palette
var (
	// Base colors
	OxocarbonBlack  = lipgloss.Color("#161616")
	OxocarbonBase00 = lipgloss.Color("#262626")
	OxocarbonBase01 = lipgloss.Color("#393939") // Borders, secondary UI
	OxocarbonBase02 = lipgloss.Color("#525252")
	OxocarbonBase03 = lipgloss.Color("#767676") // Muted text
	OxocarbonBase04 = lipgloss.Color("#dde1e6")
	OxocarbonBase05 = lipgloss.Color("#f2f4f8") // Primary foreground
	OxocarbonWhite  = lipgloss.Color("#ffffff")

	// Accent colors
	OxocarbonTeal   = lipgloss.Color("#3ddbd9")
	OxocarbonBlue   = lipgloss.Color("#78a9ff")
	OxocarbonPink   = lipgloss.Color("#ee5396")
	OxocarbonRed    = lipgloss.Color("#ff5252")
	OxocarbonCyan   = lipgloss.Color("#33b1ff")
	OxocarbonGreen  = lipgloss.Color("#42be65")
	OxocarbonPurple = lipgloss.Color("#be95ff") // main accent
	OxocarbonMauve  = lipgloss.Color("#d1aaff")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 1).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonMauve).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			MarginTop(1)

	MetadataStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04)

	MutedStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03)

	URLStyle = lipgloss.NewStyle().
			Foreground(OxocarbonCyan).
			Italic(true)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPink).
			Bold(true)

	SynopsisStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04).
			Italic(true)

	// Search input, left bar only
	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(OxocarbonBase02).
			BorderLeft(true).
			PaddingLeft(2).
			PaddingRight(2).
			MarginLeft(2)

	InputFocusedStyle = InputStyle.
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(OxocarbonPurple)

	// Movie cards
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OxocarbonBase01).
			Padding(0, 1)

	CardSelectedStyle = CardStyle.
				BorderForeground(OxocarbonPurple)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Bold(true)

	CardTitleSelectedStyle = lipgloss.NewStyle().
				Foreground(OxocarbonPurple).
				Bold(true)

	// Genre pill
	GenreBadgeStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Background(OxocarbonBase01).
			Padding(0, 1)

	// Pagination
	PageStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04).
			Padding(0, 1)

	PageActiveStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 1).
			Bold(true)

	PageDisabledStyle = lipgloss.NewStyle().
				Foreground(OxocarbonBase02).
				Padding(0, 1)

	// Placeholders and toasts
	LoaderStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPurple).
			MarginLeft(2)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(OxocarbonRed).
			Bold(true).
			MarginLeft(2)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OxocarbonGreen).
			Foreground(OxocarbonBase05).
			Padding(0, 1)

	ToastErrorStyle = ToastStyle.
			BorderForeground(OxocarbonRed)

	// Modal dialogs
	PopupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OxocarbonPurple).
			Padding(1, 2)

	PopupTitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 2).
			Bold(true)
)

// RatingColor picks a color for a 0-10 vote average
func RatingColor(vote float64) lipgloss.Color {
	switch {
	case vote >= 7.5:
		return OxocarbonGreen
	case vote >= 6:
		return OxocarbonTeal
	case vote >= 4:
		return OxocarbonBlue
	case vote > 0:
		return OxocarbonPink
	default:
		return OxocarbonBase03
	}
}
