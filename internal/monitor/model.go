package monitor

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ddstop/ddstop/internal/logger"
	"github.com/ddstop/ddstop/internal/state"
)

// DefaultInterval is the redraw cadence when none is configured.
const DefaultInterval = 250 * time.Millisecond

// SnapshotSource supplies the state drawn on each tick.
type SnapshotSource interface {
	Snapshot() (state.Snapshot, error)
}

// Options configures a Model. Zero values fall back to defaults.
type Options struct {
	Interval time.Duration
	PageSize int
	Logger   logger.Logger

	// Clipboard receives the text copied with the copy key.
	Clipboard func(string) error
}

// counts are the entity totals shown in the header.
type counts struct {
	writers, readers, topics, abnormalities int
}

// Model is the Bubble Tea model for the dashboard.
//
// Frames are composed only on tick messages. Key messages change navigation
// state, and View returns the last composed frame, so their effect appears at
// the next tick.
type Model struct {
	source  SnapshotSource
	tabs    *Tabs
	keys    keyMap
	help    help.Model
	history *History
	log     logger.Logger
	copy    func(string) error
	now     func() time.Time

	interval time.Duration
	width    int
	height   int

	frame    string
	lastTick time.Time
	lastGood time.Time
	totals   counts

	storeErr error
	skipped  int
	status   string
	level    statusLevel

	showHelp bool
	quitting bool
}

// statusLevel picks how the status line draws the last action's outcome.
type statusLevel int

const (
	statusOK statusLevel = iota
	statusWarn
	statusFail
)

// tickMsg signals that the next frame is due.
type tickMsg time.Time

// NewModel creates a dashboard reading from source.
func NewModel(source SnapshotSource, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	return Model{
		source:   source,
		tabs:     NewTabs(opts.PageSize),
		keys:     defaultKeyMap(),
		help:     help.New(),
		history:  NewHistory(DefaultHistorySize),
		log:      opts.Logger,
		copy:     opts.Clipboard,
		now:      time.Now,
		interval: opts.Interval,
	}
}

// Init draws the first frame without waiting for the cadence.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.MouseMsg:
		// Captured so the terminal does not act on it; otherwise ignored.

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.draw()
		return m, m.tickCmd()
	}

	return m, nil
}

// View returns the frame composed at the last tick.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.frame
}

// tickCmd schedules the next frame one interval after this draw finished.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// draw takes a snapshot, refreshes the active view and composes the frame.
// A failed snapshot skips the refresh and shows a banner instead.
func (m *Model) draw() {
	snap, err := m.source.Snapshot()
	if err != nil {
		if m.storeErr == nil {
			m.log.Error("state unavailable, skipping frames: %v", err)
		}
		m.storeErr = err
		m.skipped++
	} else {
		if m.storeErr != nil {
			m.log.Info("state available again after %d skipped frames", m.skipped)
			m.storeErr = nil
			m.skipped = 0
		}
		m.refresh(snap)
	}

	m.frame = m.renderDashboard()
	m.lastTick = m.now()
}

func (m *Model) refresh(snap state.Snapshot) {
	m.tabs.ActiveView().Refresh(snap)

	m.totals = counts{
		writers:       len(snap.Writers),
		readers:       len(snap.Readers),
		topics:        len(snap.Topics),
		abnormalities: len(snap.Abnormalities),
	}
	m.history.Push(SeriesAbnormalities, float64(m.totals.abnormalities))
	m.history.Push(SeriesWriters, float64(m.totals.writers))
	m.history.Push(SeriesReaders, float64(m.totals.readers))
	m.lastGood = m.now()
}

// ActiveTab returns the tab that receives navigation keys.
func (m Model) ActiveTab() Tab { return m.tabs.Active() }

// ActiveView returns the view of the active tab.
func (m Model) ActiveView() View { return m.tabs.ActiveView() }

// SkippedFrames returns how many consecutive frames failed to get a snapshot.
func (m Model) SkippedFrames() int { return m.skipped }

// SecondsSinceUpdate returns the whole seconds since the last good frame.
func (m Model) SecondsSinceUpdate() int {
	if m.lastGood.IsZero() {
		return 0
	}
	return int(m.now().Sub(m.lastGood).Seconds())
}
