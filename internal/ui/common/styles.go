// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/king-of-montenegro/internal/game/card"
)

// Icon constants
const (
	KingIcon   = "👑"
	SwordIcon  = "⚔"
	ArmyIcon   = "🛡"
	TurnIcon   = "👉"
	TrophyIcon = "🏆"
)

// Lipgloss Styles - shared across the TUI, the console and the spectator client
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	RedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	GrayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	ActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	HintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// CardStyle returns the face style for a card.
func CardStyle(c card.Card) lipgloss.Style {
	if c.Suit.IsRed() {
		return RedStyle
	}
	return BlackStyle
}
