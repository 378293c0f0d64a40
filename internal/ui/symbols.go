package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Healthy / completed
	SymbolFail    = "✗" // Failed
	SymbolWarning = "⚠" // Abnormality present
	SymbolDivider = "•" // Tab strip separator
	SymbolPointer = ">" // Selected row marker in plain output
)
