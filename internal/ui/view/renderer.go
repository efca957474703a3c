// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/duel"
	"github.com/palemoky/king-of-montenegro/internal/game/player"
	"github.com/palemoky/king-of-montenegro/internal/ui/common"
)

// Spectator is the viewer index that sees every hand and every play face up.
const Spectator = -1

// TableView renders the full table for the TUI, as seen by viewer.
func TableView(s game.Snapshot, viewer, width int) string {
	me, opp := seats(viewer)

	var sb strings.Builder

	title := common.TitleStyle(fmt.Sprintf("%s King of Montenegro · round %d · %s", common.KingIcon, s.Round, s.Phase))
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	// Top section - opponent
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderPlayerBox(s, opp, viewer)))
	sb.WriteString("\n")

	// Middle section - reveal, aside king, pile and deck counters
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderMiddleSection(s, viewer)))
	sb.WriteString("\n")

	// Bottom section - the viewer
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderPlayerBox(s, me, viewer)))

	if s.Message != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.ActiveStyle.Render(s.Message)))
	}

	return sb.String()
}

// TextView renders a compact table for line-oriented output.
func TextView(s game.Snapshot, viewer int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "── round %d · %s ──\n", s.Round, s.Phase)
	for i, p := range s.Players {
		marker := "  "
		if i == s.Acting && s.Phase != game.PhaseOver {
			marker = common.TurnIcon
		}
		fmt.Fprintf(&sb, "%s %s  hand %d\n", marker, p.Name, p.HandSize)
		sb.WriteString(renderArmies(p.Armies, "     "))
	}
	if s.Reveal != nil {
		fmt.Fprintf(&sb, "reveal: %s", common.RenderCard(*s.Reveal))
		if s.AsideKing != nil {
			fmt.Fprintf(&sb, "  aside: %s", common.RenderCard(*s.AsideKing))
		}
		sb.WriteString("\n")
	}
	if len(s.Pile) > 0 {
		fmt.Fprintf(&sb, "pile: %s\n", renderPile(s.Pile, s.Players, viewer))
	}
	fmt.Fprintf(&sb, "deck %d · discard %d\n", s.DeckSize, s.DiscardSize)
	if s.Message != "" {
		sb.WriteString(s.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// PromptView renders what a human needs to answer a prompt on a console.
func PromptView(p game.Prompt) string {
	var sb strings.Builder

	if p.Error != nil {
		sb.WriteString(common.ErrorStyle.Render("✗ " + p.Error.Error()))
		sb.WriteString("\n")
	}
	if !p.IsWarPhase() {
		fmt.Fprintf(&sb, "reveal: %s\n", common.RenderCard(*p.Reveal))
	}
	if len(p.Self.Hand) > 0 {
		sb.WriteString(common.RenderCardRow(p.Self.Hand, true))
		sb.WriteString("\n")
	} else {
		sb.WriteString("(no cards in hand)\n")
	}
	fmt.Fprintf(&sb, "%s: %s\n> ", p.Self.Name, PromptHint(p))
	return sb.String()
}

// PromptHint lists the commands accepted for a prompt.
func PromptHint(p game.Prompt) string {
	if p.IsWarPhase() {
		return "war <suit> [<suit> ...] | pass"
	}
	if len(p.Pile) == 0 {
		return "play <i> | wild <k> <c> | concede"
	}
	return "play <i> | wild <k> <c> | call | concede"
}

// GameOverView renders the final result.
func GameOverView(res game.Result, width int) string {
	var sb strings.Builder

	if res.HasWinner() {
		fmt.Fprintf(&sb, "%s %s wins!\n\n", common.TrophyIcon, res.Players[res.Winner].Name)
	} else {
		fmt.Fprintf(&sb, "Game over (%s)\n\n", res.Reason)
	}
	fmt.Fprintf(&sb, "rounds: %d\n", res.Rounds)
	for _, p := range res.Players {
		fmt.Fprintf(&sb, "%-12s duels %-3d wars %d/%d  army cards %d\n",
			common.TruncateName(p.Name, 12), p.DuelsWon, p.WarsWon, p.WarsDeclared, p.ArmyCards)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(common.BoxStyle.Render(sb.String()))
}

// --- Helper rendering functions ---

func seats(viewer int) (me, opp int) {
	if viewer == 1 {
		return 1, 0
	}
	return 0, 1
}

func renderPlayerBox(s game.Snapshot, seat, viewer int) string {
	p := s.Players[seat]

	nameStyle := lipgloss.NewStyle()
	marker := ""
	if s.Acting == seat && s.Phase != game.PhaseOver {
		nameStyle = common.ActiveStyle
		marker = common.TurnIcon + " "
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s  🃏 %d\n", marker, nameStyle.Render(p.Name), p.HandSize)
	sb.WriteString(renderArmies(p.Armies, ""))

	if seat == viewer || viewer == Spectator {
		if len(p.Hand) > 0 {
			sb.WriteString(common.RenderCardRow(p.Hand, seat == viewer))
		} else {
			sb.WriteString("(no cards in hand)")
		}
	} else {
		sb.WriteString(renderBacks(p.HandSize))
	}

	return common.BoxStyle.Width(44).Render(sb.String())
}

func renderArmies(armies player.Armies, indent string) string {
	var sb strings.Builder
	for _, suit := range card.Suits {
		army := armies[suit]
		fmt.Fprintf(&sb, "%s%s %s %-2d", indent, common.ArmyIcon, suit.Symbol(), len(army))
		for _, c := range army {
			sb.WriteString(" ")
			sb.WriteString(common.RenderCard(c))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderBacks(n int) string {
	if n == 0 {
		return "(no cards in hand)"
	}
	backs := make([]string, n)
	for i := range backs {
		backs[i] = common.GrayStyle.Render("▒▒")
	}
	return strings.Join(backs, " ")
}

func renderMiddleSection(s game.Snapshot, viewer int) string {
	var parts []string

	reveal := "(no reveal)"
	if s.Reveal != nil {
		reveal = "reveal\n" + common.RenderCardRow([]card.Card{*s.Reveal}, false)
	}
	if s.AsideKing != nil {
		reveal += "\n" + common.KingIcon + " " + common.RenderCard(*s.AsideKing)
	}
	parts = append(parts, common.BoxStyle.Width(12).Render(reveal))

	pile := "(waiting for a play...)"
	if len(s.Pile) > 0 {
		pile = renderPile(s.Pile, s.Players, viewer)
	}
	parts = append(parts, common.BoxStyle.Width(24).Render(pile))

	counters := fmt.Sprintf("deck    %2d\ndiscard %2d", s.DeckSize, s.DiscardSize)
	parts = append(parts, common.BoxStyle.Render(counters))

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderPile 对手的出牌背面朝上
func renderPile(pile []duel.PileEntry, players [2]game.PlayerState, viewer int) string {
	lines := make([]string, 0, len(pile))
	for _, e := range pile {
		name := players[e.Player].Name
		if e.Player == viewer || viewer == Spectator {
			lines = append(lines, fmt.Sprintf("%s: %s", name, renderPlay(e.Play)))
			continue
		}
		switch e.Play.(type) {
		case duel.KingPair:
			lines = append(lines, fmt.Sprintf("%s: %s + %s", name, common.KingIcon, renderBacks(1)))
		default:
			lines = append(lines, fmt.Sprintf("%s: %s", name, renderBacks(1)))
		}
	}
	return strings.Join(lines, "\n")
}

func renderPlay(p duel.Play) string {
	switch p := p.(type) {
	case duel.KingPair:
		return common.RenderCard(p.King) + "+" + common.RenderCard(p.Card)
	case duel.SingleCard:
		return common.RenderCard(p.Card)
	}
	return ""
}
