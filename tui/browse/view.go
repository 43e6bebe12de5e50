package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/chantv/domain"
	"github.com/CrestNiraj12/chantv/feed"
	"github.com/CrestNiraj12/chantv/tui/common"
)

// cardOuterWidth is a card's rendered width. Width already covers the
// padding, so only the border is added.
const cardOuterWidth = common.CardWidth + 2

const thumbnailMarker = "▣ thumbnail (t)"

func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("chantv")
	if m.board != "" {
		title += " " + common.BoardStyle.Render("/"+m.board+"/")
	}
	b.WriteString(title + "\n\n")

	b.WriteString(m.rowTitle(rowThreads, m.threadsHeading()) + "\n")
	b.WriteString(m.threadsRow() + "\n\n")
	b.WriteString(m.rowTitle(rowFavourites, fmt.Sprintf("Favourites (%d)", len(m.feed.Favourites()))) + "\n")
	b.WriteString(m.favouritesRow() + "\n\n")
	b.WriteString(m.rowTitle(rowSettings, "Settings") + "\n")
	b.WriteString(m.settingsRow() + "\n")

	b.WriteString(m.footer())
	return b.String()
}

func (m Model) threadsHeading() string {
	h := "Threads"
	if n := m.feed.HiddenCount(); n > 0 {
		h += common.DimStyle.Render(fmt.Sprintf(" (%d hidden)", n))
	}
	return h
}

func (m Model) rowTitle(r row, text string) string {
	if r == m.row {
		return common.RowActiveTitleStyle.Render("▸ " + text)
	}
	return common.RowTitleStyle.Render("  " + text)
}

func (m Model) threadsRow() string {
	items := m.feed.Displayed()
	if len(items) == 0 {
		switch {
		case m.feed.State() == feed.StateLoadingInitial:
			return fmt.Sprintf("  %s Loading threads...", m.spinner.View())
		case m.feed.State() == feed.StateError:
			return "  " + common.ErrorStyle.Render(feed.NoticeLoadError)
		default:
			return "  " + common.DimStyle.Render("No threads")
		}
	}
	cards := make([]string, len(items))
	for i, it := range items {
		focused := m.row == rowThreads && i == m.cursors[rowThreads]
		if it.Placeholder {
			cards[i] = cardFrame(focused).Render(fmt.Sprintf("%s Loading more...", m.spinner.View()))
			continue
		}
		cards[i] = m.threadCard(it.Thread, focused, m.feed.IsFavourite(it.Thread.No))
	}
	return m.window(cards, m.cursors[rowThreads])
}

func (m Model) favouritesRow() string {
	favs := m.feed.Favourites()
	if len(favs) == 0 {
		return "  " + common.DimStyle.Render("No favourites yet. Press f on a thread.")
	}
	cards := make([]string, len(favs))
	for i, t := range favs {
		cards[i] = m.threadCard(t, m.row == rowFavourites && i == m.cursors[rowFavourites], false)
	}
	return m.window(cards, m.cursors[rowFavourites])
}

func (m Model) settingsRow() string {
	labels := [settingCount]string{
		settingRestoreHidden:   fmt.Sprintf("Restore hidden threads (%d)", m.feed.HiddenCount()),
		settingClearFavourites: "Clear favourites",
		settingCloseApp:        "Close app",
	}
	cards := make([]string, len(labels))
	for i, l := range labels {
		cards[i] = cardFrame(m.row == rowSettings && i == m.cursors[rowSettings]).
			Render(common.CardTitleStyle.Render(l))
	}
	return m.window(cards, m.cursors[rowSettings])
}

func (m Model) threadCard(t domain.Thread, focused, favourite bool) string {
	title := common.Truncate(common.CardTitle(t), common.CardWidth-2)
	if favourite {
		title = common.FavouriteBadgeStyle.Render("★ ") + title
	}
	content := common.ContentStyle.Width(common.CardWidth).Render(common.CardContent(t))
	body := common.CardTitleStyle.Render(title) + "\n" + content
	if t.HasThumbnail() {
		body += "\n" + common.DimStyle.Render(thumbnailMarker)
	}
	return cardFrame(focused).Render(body)
}

func cardFrame(focused bool) lipgloss.Style {
	if focused {
		return common.SelectedStyle
	}
	return common.UnselectedStyle
}

// window lays out as many cards as fit the width, keeping cursor in view.
func (m Model) window(cards []string, cursor int) string {
	fit := max(1, (m.width-2)/cardOuterWidth)
	start := 0
	if cursor >= fit {
		start = cursor - fit + 1
	}
	end := min(len(cards), start+fit)
	return lipgloss.NewStyle().MarginLeft(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
}

func (m Model) footer() string {
	bindings := m.keys.ShortHelp()
	if m.showAllHints {
		bindings = m.keys.FullHelp()
	}
	wrapWidth := max(m.width-2, 16)
	return common.StatusBarStyle.Width(wrapWidth).Render("  " + common.HelpLine(bindings))
}
