package main

import (
	"fmt"

	lipgloss "github.com/charmbracelet/lipgloss/v2"
)

var (
	colorPrimary = lipgloss.Color("#7C71F9")
	colorSuccess = lipgloss.Color("#34D399")
	colorError   = lipgloss.Color("#F87171")
	colorDim     = lipgloss.Color("#6B7280")
	colorAccent  = lipgloss.Color("#60A5FA")
)

var (
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)

	styleLabel = styleDim
	styleValue = lipgloss.NewStyle()

	stylePrompt = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleReply  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleBanner = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
)

func kvLine(key, value string) string {
	return fmt.Sprintf("  %s %s", styleLabel.Render(key+":"), styleValue.Render(value))
}

func styledError(msg string, hints ...string) string {
	out := styleError.Render(msg)
	for _, h := range hints {
		out += "\n  " + styleDim.Render(h)
	}
	return out
}

func banner(mode string) string {
	return styleBanner.Render(mode) + "\n" + styleDim.Render(fmt.Sprintf("(use %q to exit)", exitWord))
}
