// Package ui provides the styled building blocks shared by the ddstop
// dashboard and its one-shot CLI output.
//
// # Tables
//
// Table widths fit their content. ColumnWidths measures display width with
// go-runewidth, so wide glyphs and combining marks size correctly:
//
//	widths := ui.ColumnWidths([]string{"topic"}, [][]string{{"<none>"}}) // [6]
//
// NewSelectableTable builds a bubbles table whose cursor sits on the
// selected row. Without a selection nothing is highlighted.
//
// RenderSimpleTable prints the same tables for non-interactive output such
// as `ddstop dump`.
//
// # Sparkline
//
// RenderSparkline draws recent values as block characters. The color tracks
// the last sample: green when it is zero, yellow when steady or falling, red
// when rising.
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Healthy state
//	ColorError     (red)    - Failures and growing abnormality counts
//	ColorWarning   (yellow) - Abnormalities present
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text
//	ColorSecondary (blue)   - Borders of the active pane
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
package ui
