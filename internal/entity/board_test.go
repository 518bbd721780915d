package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromBytes(t *testing.T) {
	t.Run("Accepts exactly 32 bytes", func(t *testing.T) {
		raw := make([]byte, IdentityLength)
		raw[0] = 0xAB

		identity, err := IdentityFromBytes(raw)

		require.NoError(t, err)
		assert.Equal(t, byte(0xAB), identity[0])
	})

	t.Run("Rejects other lengths", func(t *testing.T) {
		_, err := IdentityFromBytes(make([]byte, 16))

		require.Error(t, err)
	})
}

func TestIdentity_TextRoundTrip(t *testing.T) {
	// Given: a player holding a non-trivial identity
	player := Cross(Identity{0xDE, 0xAD, 0xBE, 0xEF})

	// When: the player passes through JSON
	raw, err := json.Marshal(player)
	require.NoError(t, err)

	var decoded Player
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Then: mark and identity both survive
	assert.Equal(t, player, decoded)
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		board := Board{}

		assert.False(t, board.IsFull())
	})

	t.Run("Board with one open cell is not full", func(t *testing.T) {
		board := Board{}
		for i := 0; i < BoardSize-1; i++ {
			board[i] = Cross(Identity{0x01}).Cell()
		}

		assert.False(t, board.IsFull())
	})

	t.Run("Fully occupied board is full", func(t *testing.T) {
		board := Board{}
		for i := 0; i < BoardSize; i++ {
			board[i] = Cross(Identity{0x01}).Cell()
		}

		assert.True(t, board.IsFull())
	})
}
