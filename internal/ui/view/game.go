// Package view provides UI rendering functions.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/king-of-montenegro/internal/ui/common"
)

// Re-export styles for use in this package
var (
	BoxStyle    = common.BoxStyle
	RedStyle    = common.RedStyle
	BlackStyle  = common.BlackStyle
	TitleStyle  = common.TitleStyle
	PromptStyle = common.PromptStyle
)

// RenderGameRules renders the game rules.
func RenderGameRules() string {
	var sb string

	sb += "[Goal]\n"
	sb += "Hold at least one army card in every suit while your opponent\n"
	sb += "is missing at least one suit.\n\n"

	sb += "[Duel]\n"
	sb += "• A card is revealed; kings drawn on the way are set aside\n"
	sb += "• play <i>: claim the reveal with a card of its suit and higher value\n"
	sb += "• wild <k> <c>: play a king together with another card\n"
	sb += "• call: challenge the last play; an honest play wins, a bluff loses\n"
	sb += "• concede: give the reveal (and aside king) to your opponent\n"
	sb += "• The winner adds the reveal plus a bonus card to that suit's army\n\n"

	sb += "[War]\n"
	sb += "• war <suit> [<suit> ...]: attack an army both players hold\n"
	sb += "• Strength is army size plus matching hand cards\n"
	sb += "• Each reinforcing suit swaps its army size for its hand count\n"
	sb += "• The loser's armies in play are discarded\n"
	sb += "• pass: skip the war\n\n"

	sb += "[Keys]\n"
	sb += "• Enter: submit command\n"
	sb += "• H: show/hide help\n"
	sb += "• ESC / Ctrl+C: quit\n"

	return BoxStyle.Render(sb)
}

// RulesView renders the full rules view.
func RulesView(width, height int) string {
	var sb string

	title := TitleStyle("📖 Rules")
	sb += lipgloss.PlaceHorizontal(width, lipgloss.Center, title)
	sb += "\n\n"

	rules := RenderGameRules()
	sb += lipgloss.PlaceHorizontal(width, lipgloss.Center, rules)
	sb += "\n\n"

	hint := "Press H to return"
	sb += lipgloss.PlaceHorizontal(width, lipgloss.Center, hint)

	return lipgloss.PlaceVertical(height, lipgloss.Top, sb)
}
