package monitor

// Tab identifies one of the dashboard's views.
type Tab int

const (
	TabWriters Tab = iota
	TabReader
	TabTopics
	TabAbnormalities

	tabCount
)

var tabTitles = [tabCount]string{
	TabWriters:       "Writers",
	TabReader:        "Reader",
	TabTopics:        "Topics",
	TabAbnormalities: "Abnormalities",
}

// AllTabs returns every tab in strip order.
func AllTabs() []Tab {
	return []Tab{TabWriters, TabReader, TabTopics, TabAbnormalities}
}

// Title returns the label shown in the tab strip.
func (t Tab) Title() string {
	if !t.valid() {
		return ""
	}
	return tabTitles[t]
}

// Next cycles to the following tab, wrapping after the last.
func (t Tab) Next() Tab {
	return (t.normalize() + 1) % tabCount
}

// Prev cycles to the preceding tab, wrapping before the first.
func (t Tab) Prev() Tab {
	return (t.normalize() + tabCount - 1) % tabCount
}

func (t Tab) valid() bool {
	return t >= 0 && t < tabCount
}

func (t Tab) normalize() Tab {
	if !t.valid() {
		return TabWriters
	}
	return t
}

// Tabs owns the active tab and one view per tab.
type Tabs struct {
	active Tab
	views  [tabCount]View
}

// NewTabs creates the four views with the given page size. Writers is active.
func NewTabs(pageSize int) *Tabs {
	return &Tabs{
		active: TabWriters,
		views: [tabCount]View{
			TabWriters:       newWritersView(pageSize),
			TabReader:        newReadersView(pageSize),
			TabTopics:        newTopicsView(pageSize),
			TabAbnormalities: newAbnormalitiesView(pageSize),
		},
	}
}

// Active returns the active tab.
func (t *Tabs) Active() Tab { return t.active }

// ActiveView returns the view of the active tab.
func (t *Tabs) ActiveView() View { return t.views[t.active] }

// View returns the view of tab.
func (t *Tabs) View(tab Tab) View { return t.views[tab.normalize()] }

// Next activates the following tab.
func (t *Tabs) Next() { t.active = t.active.Next() }

// Prev activates the preceding tab.
func (t *Tabs) Prev() { t.active = t.active.Prev() }

// Select activates tab.
func (t *Tabs) Select(tab Tab) { t.active = tab.normalize() }
