package rule

import (
	"fmt"

	"github.com/palemoky/king-of-montenegro/internal/apperrors"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/player"
	"github.com/palemoky/king-of-montenegro/internal/game/table"
)

// WarDeclaration 宣战内容
type WarDeclaration struct {
	Attacker       int
	Suit           card.Suit
	Reinforcements []card.Suit
}

// WarResult 战争结果
type WarResult struct {
	Attacker    int
	Defender    int
	Suit        card.Suit
	AttackTotal int
	DefendTotal int
	Winner      int
	Discarded   []card.Card // 败方被解散的军队
}

// AttackerWon 进攻方是否获胜
func (r WarResult) AttackerWon() bool {
	return r.Winner == r.Attacker
}

// CanDeclareWar 双方在该花色上都至少有一张军队牌
func CanDeclareWar(attacker, defender *player.Player, s card.Suit) bool {
	return attacker.HasArmy(s) && defender.HasArmy(s)
}

// AttackStrength 进攻强度；每个增援花色用手牌张数换掉该花色已有的军队张数
func AttackStrength(attacker *player.Player, s card.Suit, reinforcements []card.Suit) int {
	total := attacker.ArmySize(s) + attacker.CountInHand(s)
	for _, r := range reinforcements {
		total += attacker.CountInHand(r) - attacker.ArmySize(r)
	}
	return total
}

// DefendStrength 防守强度
func DefendStrength(defender *player.Player, s card.Suit) int {
	return defender.ArmySize(s) + defender.CountInHand(s)
}

// ResolveWar 结算一次宣战；任何一方在目标花色上没有军队时拒绝且不做任何修改
func ResolveWar(t *table.Table, decl WarDeclaration) (WarResult, error) {
	if !decl.Suit.Valid() {
		return WarResult{}, fmt.Errorf("suit %d: %w", decl.Suit, apperrors.ErrUnrecognizedAction)
	}

	defenderIdx := table.Opponent(decl.Attacker)
	attacker := t.Players[decl.Attacker]
	defender := t.Players[defenderIdx]

	if !CanDeclareWar(attacker, defender, decl.Suit) {
		return WarResult{}, fmt.Errorf("war %s: %w", decl.Suit, apperrors.ErrWarUnavailable)
	}

	result := WarResult{
		Attacker:    decl.Attacker,
		Defender:    defenderIdx,
		Suit:        decl.Suit,
		AttackTotal: AttackStrength(attacker, decl.Suit, decl.Reinforcements),
		DefendTotal: DefendStrength(defender, decl.Suit),
	}

	if result.AttackTotal > result.DefendTotal {
		result.Winner = decl.Attacker
		result.Discarded = defender.Disband(decl.Suit)
	} else {
		result.Winner = defenderIdx
		result.Discarded = attacker.Disband(decl.Suit)
		for _, r := range decl.Reinforcements {
			result.Discarded = append(result.Discarded, attacker.Disband(r)...)
		}
	}

	t.DiscardCards(result.Discarded...)
	t.MaintainHands()
	return result, nil
}
