// Package ui provides semantic text formatting for CLI diagnostics.
//
// Formatters render in color when the terminal supports it. When NO_COLOR
// is set or the terminal doesn't support colors, text decorations are used
// instead:
//
//	ui.Error.Sprint("✗")                   // error indicator
//	ui.Info.Sprint("→")                    // hint indicator
//	ui.Flag.Sprint("--in random")          // flags in hints
//	ui.Code.Sprint("seedtool config init") // `backticks` without color
//	ui.Highlight.Sprint("shade")           // 'quotes' without color
//
// The seed written to stdout is never formatted.
package ui
