package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ddstop/ddstop/internal/ui"
	"github.com/ddstop/ddstop/internal/util"
)

// Rows taken by everything except the table pane:
// header, tab strip (3 with border), status line, footer.
const chromeHeight = 6

// sparklineWidth is how many samples the header sparkline shows.
const sparklineWidth = 20

// renderDashboard composes the complete frame.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	paneHeight := 0
	if m.height > 0 {
		paneHeight = m.height - chromeHeight
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabStrip(),
		m.tabs.ActiveView().Render(m.width, paneHeight),
		m.renderStatusLine(),
		m.renderFooter(),
	)
}

// renderHeader renders the title, entity counts, data age and a sparkline of
// the abnormality count.
func (m Model) renderHeader() string {
	var updateText string
	switch age := m.SecondsSinceUpdate(); {
	case m.lastGood.IsZero():
		updateText = "waiting for data"
	case age == 0:
		updateText = "updated just now"
	default:
		updateText = fmt.Sprintf("updated %ds ago", age)
	}

	t := m.totals
	stats := LabelStyle.Render(fmt.Sprintf(" | %s | %s | %s | %s | %s",
		util.CountNoun(t.writers, "writer", "writers"),
		util.CountNoun(t.readers, "reader", "readers"),
		util.CountNoun(t.topics, "topic", "topics"),
		util.CountNoun(t.abnormalities, "abnormality", "abnormalities"),
		updateText,
	))

	spark := ui.RenderSparkline(m.history.Last(SeriesAbnormalities, sparklineWidth), sparklineWidth)
	if spark != "" {
		spark = " " + spark
	}

	return HeaderStyle.Render(TitleStyle.Render("ddstop") + stats + spark)
}

// renderTabStrip renders the tab titles with the active one highlighted.
func (m Model) renderTabStrip() string {
	titles := make([]string, 0, int(tabCount))
	for _, tab := range AllTabs() {
		style := TabStyle
		if tab == m.tabs.Active() {
			style = TabActiveStyle
		}
		titles = append(titles, style.Render(tab.Title()))
	}
	divider := TabDividerStyle.Render(" " + ui.SymbolDivider + " ")
	return TabStripStyle.Render(strings.Join(titles, divider))
}

// renderStatusLine shows the store banner, or the last action's outcome.
func (m Model) renderStatusLine() string {
	if m.storeErr != nil {
		return BannerStyle.Render(fmt.Sprintf("%s state unavailable, %s skipped",
			ui.SymbolWarning, util.CountNoun(m.skipped, "frame", "frames")))
	}
	switch {
	case m.status == "":
	case m.level == statusFail:
		return StatusFailStyle.Render(ui.SymbolFail + " " + m.status)
	case m.level == statusWarn:
		return StatusWarnStyle.Render(ui.SymbolWarning + " " + m.status)
	default:
		return StatusOKStyle.Render(ui.SymbolSuccess + " " + m.status)
	}

	view := m.tabs.ActiveView()
	if idx, ok := view.Selected(); ok {
		return StatusStyle.Render(fmt.Sprintf("row %d of %d", idx+1, view.RowCount()))
	}
	return StatusStyle.Render(util.CountNoun(view.RowCount(), "row", "rows"))
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
