// Package cli holds plain terminal output helpers for the non-TUI commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const width = 80

var (
	// Colors.
	titleColor   = color.New(color.FgGreen)
	fieldColor   = color.New(color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	mutedColor   = color.New(color.FgHiBlack)
)

// Separator printed to cli.
func Separator() {
	separator := strings.Repeat("-", width)
	titleColor.Println(separator)
}

// Title printed to cli.
func Title(text string, args ...any) {
	title := "      " + fmt.Sprintf(text, args...) + "      "
	leftWidth := (width - len(title)) / 2
	if leftWidth < 0 {
		leftWidth = 0
	}
	separator1 := strings.Repeat("-", leftWidth)
	separator2 := strings.Repeat("-", max(width-len(title)-len(separator1), 0))
	titleColor.Printf("%s%s%s\n", separator1, title, separator2)
}

// Field prints a labeled value.
func Field(label string, value any) {
	fieldColor.Printf("%s: ", label)
	fmt.Printf("%v\n", value)
}

// Success printed to cli.
func Success(text string, args ...any) {
	successColor.Printf(text+"\n", args...)
}

// Error printed to cli.
func Error(text string, args ...any) {
	errorColor.Printf(text+"\n", args...)
}

// Muted printed to cli.
func Muted(text string, args ...any) {
	mutedColor.Printf(text+"\n", args...)
}
