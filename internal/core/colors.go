// Package core - Colors provides terminal color utilities for better output formatting.
//
// Color support detection and styling are delegated to termenv, which
// understands NO_COLOR/FORCE_COLOR/COLORTERM and degrades gracefully on
// terminals with only ANSI or no color support at all, rather than the
// single-bit TTY check a hand-rolled detector would need.
//
// Example usage:
//
//	fmt.Println(core.Success("Operation completed successfully"))
//	fmt.Println(core.Warning("This is a warning message"))
//	fmt.Println(core.Error("An error occurred"))
//	fmt.Println(core.Info("Informational message"))
package core

import (
	"os"

	"github.com/muesli/termenv"
)

var output = termenv.NewOutput(os.Stdout)

// colorEnabled reports whether output should be styled, honoring NO_COLOR
// and the detected color profile of the current terminal.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return output.Profile != termenv.Ascii
}

func colorize(color termenv.Color, text string) string {
	if !colorEnabled() {
		return text
	}
	return termenv.String(text).Foreground(color).String()
}

func style(text string, s termenv.Style) string {
	if !colorEnabled() {
		return text
	}
	return s.String()
}

// Success returns green colored text for success messages
func Success(text string) string {
	return colorize(output.Color("2"), text)
}

// Warning returns yellow colored text for warning messages
func Warning(text string) string {
	return colorize(output.Color("3"), text)
}

// Error returns red colored text for error messages
func Error(text string) string {
	return colorize(output.Color("1"), text)
}

// Info returns blue colored text for informational messages
func Info(text string) string {
	return colorize(output.Color("4"), text)
}

// DimText returns dimmed text for secondary information
func DimText(text string) string {
	return style(text, termenv.String(text).Faint())
}

// BoldText returns bold text for emphasis
func BoldText(text string) string {
	return style(text, termenv.String(text).Bold())
}

// Bright returns bright colored text for highlights
func Bright(text string) string {
	return colorize(output.Color("15"), text)
}

// CyanText returns cyan colored text for special highlights
func CyanText(text string) string {
	return colorize(output.Color("6"), text)
}

// MagentaText returns magenta colored text for special highlights
func MagentaText(text string) string {
	return colorize(output.Color("5"), text)
}
