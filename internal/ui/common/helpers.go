// Package common provides shared utilities for the UI.
package common

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/king-of-montenegro/internal/game/card"
)

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// RenderCard renders a single card face such as "10♥".
func RenderCard(c card.Card) string {
	return CardStyle(c).Render(c.String())
}

// RenderCardRow renders cards side by side: ranks on the first line and suits on the second.
// With indexed set, a third line shows each card's hand index.
func RenderCardRow(cards []card.Card, indexed bool) string {
	if len(cards) == 0 {
		return ""
	}

	var rankStr, suitStr, idxStr strings.Builder
	for i, c := range cards {
		style := CardStyle(c).Align(lipgloss.Center).Margin(0, 1)
		rankStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Rank.String())))
		suitStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Suit.Symbol())))
		idxStr.WriteString(lipgloss.NewStyle().Margin(0, 1).Render(fmt.Sprintf("%-2d", i)))
	}

	rows := []string{rankStr.String(), suitStr.String()}
	if indexed {
		rows = append(rows, HintStyle.Render(idxStr.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
