package common

import "github.com/charmbracelet/lipgloss"

const CardWidth = 30

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 2, 0, 1)

	// BoardStyle styles the board name shown next to the title.
	BoardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// RowTitleStyle styles the heading above each row of cards.
	RowTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7DC4E4")).
			Bold(true).
			MarginLeft(1)

	// RowActiveTitleStyle marks the heading of the focused row.
	RowActiveTitleStyle = RowTitleStyle.
				Foreground(lipgloss.Color("#FF6600"))

	// CardTitleStyle styles the first line of a card.
	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CAD3F5"))

	// ContentStyle styles card body text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A5ADCB"))

	// DimStyle styles secondary text such as counts and URLs.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// SelectedStyle highlights the focused card.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6600")).
			Padding(0, 1).
			Width(CardWidth)

	// UnselectedStyle gives other cards a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1).
			Width(CardWidth)

	// FavouriteBadgeStyle marks favourite threads in the feed row.
	FavouriteBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#EED49F")).
				Bold(true)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
