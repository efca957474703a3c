package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgSnapshot, SnapshotPayload{MatchID: "m-1", Round: 2, Phase: "war"})
	require.NoError(t, err)

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgSnapshot, decoded.Type)

	payload, err := ParsePayload[SnapshotPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "m-1", payload.MatchID)
	assert.Equal(t, 2, payload.Round)
	assert.Equal(t, "war", payload.Phase)
}

func TestNewMessage_NilPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgPing, nil)
	require.NoError(t, err)
	assert.Nil(t, msg.Payload)

	data, err := msg.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ping"}`, string(data))
}

func TestMustNewMessage_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNewMessage(MsgSnapshot, make(chan int)) })
	assert.NotPanics(t, func() { MustNewMessage(MsgPong, PongPayload{ServerTimestamp: 1}) })
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeInvalidMsg)
	require.NotNil(t, msg)
	assert.Equal(t, MsgError, msg.Type)

	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeInvalidMsg, payload.Code)
	assert.Equal(t, "invalid message", payload.Message)
}

func TestErrorMessages_Complete(t *testing.T) {
	t.Parallel()

	codes := []int{
		ErrCodeUnknown, ErrCodeInvalidMsg, ErrCodeInvalidIndex, ErrCodeInvalidKing, ErrCodeEmptyPile,
		ErrCodeUnrecognizedAction, ErrCodeWarUnavailable, ErrCodeProviderFailure, ErrCodeDeckExhausted,
	}
	for _, code := range codes {
		assert.NotEmpty(t, ErrorMessages[code], "code %d", code)
	}
}
