package rule

import (
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/player"
)

// HoldsAllSuits 四个花色的军队都不为空
func HoldsAllSuits(p *player.Player) bool {
	for _, s := range card.Suits {
		if !p.HasArmy(s) {
			return false
		}
	}
	return true
}

// MissingAnySuit 至少有一个花色的军队为空
func MissingAnySuit(p *player.Player) bool {
	return !HoldsAllSuits(p)
}

// CheckVictory 按座位顺序检查胜者，无人获胜时 ok 为 false
func CheckVictory(players [2]*player.Player) (winner int, ok bool) {
	for i, p := range players {
		if HoldsAllSuits(p) && MissingAnySuit(players[1-i]) {
			return i, true
		}
	}
	return -1, false
}
