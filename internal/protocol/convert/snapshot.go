package convert

import (
	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/duel"
	"github.com/palemoky/king-of-montenegro/internal/protocol"
)

// SnapshotToPayload 观战快照；手牌只保留张数
func SnapshotToPayload(s game.Snapshot) protocol.SnapshotPayload {
	p := protocol.SnapshotPayload{
		MatchID:     s.MatchID,
		Round:       s.Round,
		Phase:       s.Phase.String(),
		Acting:      s.Acting,
		Reveal:      CardPtrToInfo(s.Reveal),
		AsideKing:   CardPtrToInfo(s.AsideKing),
		Pile:        make([]protocol.PlayInfo, 0, len(s.Pile)),
		DeckSize:    s.DeckSize,
		DiscardSize: s.DiscardSize,
		Message:     s.Message,
	}
	for i, ps := range s.Players {
		p.Players[i] = protocol.PlayerInfo{
			Name:     ps.Name,
			HandSize: ps.HandSize,
		}
		for suit, army := range ps.Armies {
			p.Players[i].Armies[suit] = CardsToInfos(army)
		}
	}
	for _, e := range s.Pile {
		p.Pile = append(p.Pile, PlayToInfo(e))
	}
	return p
}

// PayloadToSnapshot 观战客户端把快照还原成可渲染的状态
func PayloadToSnapshot(p protocol.SnapshotPayload) game.Snapshot {
	phase, _ := game.ParsePhase(p.Phase)
	s := game.Snapshot{
		MatchID:     p.MatchID,
		Round:       p.Round,
		Phase:       phase,
		Acting:      p.Acting,
		Reveal:      InfoPtrToCard(p.Reveal),
		AsideKing:   InfoPtrToCard(p.AsideKing),
		DeckSize:    p.DeckSize,
		DiscardSize: p.DiscardSize,
		Message:     p.Message,
	}
	for i, pi := range p.Players {
		s.Players[i] = game.PlayerState{
			Seat:     i,
			Name:     pi.Name,
			HandSize: pi.HandSize,
		}
		for suit := range card.NumSuits {
			if len(pi.Armies[suit]) > 0 {
				s.Players[i].Armies[suit] = InfosToCards(pi.Armies[suit])
			}
		}
	}
	for _, play := range p.Pile {
		s.Pile = append(s.Pile, InfoToPlay(play))
	}
	return s
}

// PlayToInfo 出牌堆条目转换
func PlayToInfo(e duel.PileEntry) protocol.PlayInfo {
	info := protocol.PlayInfo{Player: e.Player}
	switch p := e.Play.(type) {
	case duel.KingPair:
		king := CardToInfo(p.King)
		info.King = &king
		info.Card = CardToInfo(p.Card)
	case duel.SingleCard:
		info.Card = CardToInfo(p.Card)
	}
	return info
}

// InfoToPlay PlayToInfo 的逆转换
func InfoToPlay(info protocol.PlayInfo) duel.PileEntry {
	e := duel.PileEntry{Player: info.Player}
	if info.King != nil {
		e.Play = duel.KingPair{King: InfoToCard(*info.King), Card: InfoToCard(info.Card)}
	} else {
		e.Play = duel.SingleCard{Card: InfoToCard(info.Card)}
	}
	return e
}

// ResultToPayload 对局结束消息
func ResultToPayload(res game.Result) protocol.GameOverPayload {
	p := protocol.GameOverPayload{
		MatchID: res.MatchID,
		Winner:  res.Winner,
		Reason:  string(res.Reason),
		Rounds:  res.Rounds,
	}
	if res.HasWinner() {
		p.WinnerName = res.Players[res.Winner].Name
	}
	return p
}
