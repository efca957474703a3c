package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/king-of-montenegro/internal/apperrors"
	"github.com/palemoky/king-of-montenegro/internal/game/card"
)

func TestParseAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Action
		wantErr  error
	}{
		{"play", "play 2", Action{Kind: Play, Index: 2}, nil},
		{"play extra spaces", "  play   0 ", Action{Kind: Play, Index: 0}, nil},
		{"wild", "wild 0 2", Action{Kind: Wild, KingIndex: 0, CardIndex: 2}, nil},
		{"call", "call", CallAction, nil},
		{"concede", "concede", ConcedeAction, nil},
		{"pass", "pass", PassAction, nil},
		{"war single suit", "war hearts", Action{Kind: War, Suit: card.Hearts, Reinforcements: []card.Suit{}}, nil},
		{
			"war with reinforcements", "war spades clubs diamonds",
			Action{Kind: War, Suit: card.Spades, Reinforcements: []card.Suit{card.Clubs, card.Diamonds}}, nil,
		},
		{"play without index", "play", Action{}, apperrors.ErrInvalidIndex},
		{"play non numeric", "play x", Action{}, apperrors.ErrInvalidIndex},
		{"wild missing index", "wild 1", Action{}, apperrors.ErrInvalidIndex},
		{"war unknown suit", "war stars", Action{}, apperrors.ErrUnrecognizedAction},
		{"war without suit", "war", Action{}, apperrors.ErrUnrecognizedAction},
		{"case sensitive", "CALL", Action{}, apperrors.ErrUnrecognizedAction},
		{"call with args", "call now", Action{}, apperrors.ErrUnrecognizedAction},
		{"empty", "", Action{}, apperrors.ErrUnrecognizedAction},
		{"garbage", "dance", Action{}, apperrors.ErrUnrecognizedAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := ParseAction(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestAction_String(t *testing.T) {
	t.Parallel()

	inputs := []string{"play 1", "wild 0 2", "call", "concede", "pass", "war spades hearts"}
	for _, in := range inputs {
		a, err := ParseAction(in)
		require.NoError(t, err)
		assert.Equal(t, in, a.String())
	}
}

func TestActionKind_Phases(t *testing.T) {
	t.Parallel()

	for _, k := range []ActionKind{Play, Wild, Call, Concede} {
		assert.True(t, k.IsDuelAction(), k.String())
		assert.False(t, k.IsWarAction(), k.String())
	}
	for _, k := range []ActionKind{War, Pass} {
		assert.True(t, k.IsWarAction(), k.String())
		assert.False(t, k.IsDuelAction(), k.String())
	}
	assert.Equal(t, "invalid", Invalid.String())
}

func TestParseAction_ErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", "empty input: unknown command"},
		{"ply 0", `"ply": unknown command`},
		{"war", "war needs at least one suit: unknown command"},
		{"war swords", `unknown suit "swords": unknown command`},
		{"call now", "call takes no arguments: unknown command"},
		{"play x", `index "x" is not a number: index out of range`},
		{"wild 0", "expected 2 indices: index out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			_, err := ParseAction(tt.input)
			require.Error(t, err)
			assert.EqualError(t, err, tt.expected)
		})
	}
}
