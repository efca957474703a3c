package sound

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/king-of-montenegro/internal/game"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
	"github.com/palemoky/king-of-montenegro/internal/game/duel"
)

type recordingPlayer struct {
	mu     sync.Mutex
	played []Cue
}

func (p *recordingPlayer) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, cue)
}

func (p *recordingPlayer) Cues() []Cue {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Cue(nil), p.played...)
}

func snap(phase game.Phase, round int) game.Snapshot {
	return game.Snapshot{MatchID: "m", Phase: phase, Round: round}
}

func TestCueFor(t *testing.T) {
	t.Parallel()

	duelStart := snap(game.PhaseDuel, 1)
	withPlay := snap(game.PhaseDuel, 1)
	withPlay.Pile = []duel.PileEntry{{Player: 0, Play: duel.SingleCard{Card: card.New(card.Hearts, card.Rank5)}}}

	nextWar := snap(game.PhaseWar, 2)
	nextWar.Players[0].Armies[card.Hearts] = []card.Card{card.New(card.Hearts, card.Rank5), card.New(card.Hearts, card.Rank3)}

	afterWar := snap(game.PhaseDuel, 2)
	afterWar.Players[1].Armies[card.Hearts] = nextWar.Players[0].Armies[card.Hearts]

	won := snap(game.PhaseOver, 5)
	won.Result = &game.Result{Winner: 0}
	drawn := snap(game.PhaseOver, 5)
	drawn.Result = &game.Result{Winner: -1}

	tests := []struct {
		name string
		prev *game.Snapshot
		next game.Snapshot
		want Cue
		ok   bool
	}{
		{"first snapshot", nil, duelStart, "", false},
		{"card played", &duelStart, withPlay, CuePlay, true},
		{"duel won", &withPlay, nextWar, CueDuelWon, true},
		{"war fought", &nextWar, afterWar, CueWar, true},
		{"nothing changed", &duelStart, duelStart, "", false},
		{"victory", &afterWar, won, CueVictory, true},
		{"draw", &afterWar, drawn, CueDraw, true},
		{"game over repeated", &won, won, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := cueFor(tt.prev, tt.next)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCueSink_Render(t *testing.T) {
	t.Parallel()

	p := &recordingPlayer{}
	sink := NewCueSink(p)

	first := snap(game.PhaseDuel, 1)
	second := snap(game.PhaseDuel, 1)
	second.Pile = []duel.PileEntry{{Player: 1, Play: duel.SingleCard{Card: card.New(card.Clubs, card.Rank9)}}}
	over := snap(game.PhaseOver, 1)

	sink.Render(first)
	sink.Render(second)
	sink.Render(over)

	assert.Equal(t, []Cue{CuePlay, CueDraw}, p.Cues())
}

func TestSoundManager_PlayBeforeInit(t *testing.T) {
	t.Parallel()

	sm := NewSoundManager(t.TempDir())
	assert.NotPanics(t, func() {
		sm.Play(CueWar)
		sm.Close()
	})
}
