package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (teal #2DD4BF): identifiers, URLs, highlights
// - Muted (gray): secondary info, hints
// - No colored success/error/warning - unicode symbols only

var (
	// Accent style for dataset IDs, server URLs, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF")).Bold(true)
)
