// Package sound plays short audio cues for game events.
package sound

import (
	"sync"

	"github.com/palemoky/king-of-montenegro/internal/game"
)

// Cue names a game event with a sound. Files in the sound directory are
// matched by cue name, e.g. "war.wav".
type Cue string

const (
	CuePlay    Cue = "play"     // a card went onto the duel pile
	CueDuelWon Cue = "duel_won" // someone took a duel
	CueWar     Cue = "war"      // a war was fought
	CueVictory Cue = "victory"  // the game ended with a winner
	CueDraw    Cue = "draw"     // the game ended without a winner
)

// Player plays cues. *SoundManager implements it.
type Player interface {
	Play(cue Cue)
}

// CueSink turns snapshot transitions into sound cues. It implements game.RenderSink.
type CueSink struct {
	player Player

	mu   sync.Mutex
	prev *game.Snapshot
}

func NewCueSink(p Player) *CueSink {
	return &CueSink{player: p}
}

// Render implements game.RenderSink
func (s *CueSink) Render(snap game.Snapshot) {
	s.mu.Lock()
	prev := s.prev
	s.prev = &snap
	s.mu.Unlock()

	if cue, ok := cueFor(prev, snap); ok {
		s.player.Play(cue)
	}
}

// cueFor picks at most one cue for the transition prev -> next.
func cueFor(prev *game.Snapshot, next game.Snapshot) (Cue, bool) {
	if next.Phase == game.PhaseOver {
		if prev != nil && prev.Phase == game.PhaseOver {
			return "", false
		}
		if next.Result != nil && next.Result.HasWinner() {
			return CueVictory, true
		}
		return CueDraw, true
	}
	if prev == nil || prev.MatchID != next.MatchID {
		return "", false
	}

	// Armies only change when a duel or a war is resolved.
	if armiesDiffer(prev, &next) {
		if prev.Phase == game.PhaseWar {
			return CueWar, true
		}
		return CueDuelWon, true
	}

	if next.Phase == game.PhaseDuel && prev.Phase == game.PhaseDuel &&
		prev.Round == next.Round && len(next.Pile) > len(prev.Pile) {
		return CuePlay, true
	}
	return "", false
}

func armiesDiffer(a, b *game.Snapshot) bool {
	for i := range a.Players {
		for suit := range a.Players[i].Armies {
			if len(a.Players[i].Armies[suit]) != len(b.Players[i].Armies[suit]) {
				return true
			}
		}
	}
	return false
}
