// Package monitor implements the ddstop dashboard: four tabbed tables over a
// live view of a DDS network, redrawn on a fixed cadence.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: tabs, per-view cursors, the last composed frame
//   - Update: key presses, window size, tick messages
//   - View: returns the frame composed at the last tick
//
// # Key Components
//
//	Cursor      - Saturating list navigation (item, page, first, last)
//	TableView   - Generic table over one record type with its own Cursor
//	Tabs        - Closed set of tabs, each mapped to exactly one view
//	History     - Ring buffers of entity counts for the header sparkline
//
// # Message Flow
//
//  1. Init sends a tickMsg at once so the first frame needs no wait
//  2. On tickMsg the model takes a state snapshot, refreshes the active
//     view, composes the frame and schedules the next tick
//  3. Key messages only move cursors, switch tabs or toggle help
//  4. View() returns the composed frame, so input shows up at the next tick
//
// A failed snapshot skips the refresh: the frame keeps the previous rows and
// shows a banner with the number of skipped frames.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C          - Quit
//	↑/↓                - Previous/next row
//	PgUp/PgDn          - Previous/next page
//	Home/End           - First/last row
//	Tab/Shift+Tab      - Next/previous tab
//	y                  - Copy the selected row
//	?                  - Toggle help overlay
package monitor
