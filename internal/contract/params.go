package contract

import (
	"encoding/binary"
	"fmt"

	"github.com/playgrid/tictactoe-engine/internal/apperror"
)

// Parameter payloads are fixed-width little-endian structs. The layouts
// are part of the external byte contract and must not change.
const (
	joinParamsLength     = 8
	makeMoveParamsLength = 16
)

type joinParams struct {
	GameID uint64
}

type makeMoveParams struct {
	GameID  uint64
	TheMove uint64
}

func decodeJoinParams(raw []byte) (joinParams, error) {
	if len(raw) != joinParamsLength {
		return joinParams{}, fmt.Errorf("%w: want %d bytes, got %d", apperror.ErrParseParams, joinParamsLength, len(raw))
	}

	return joinParams{
		GameID: binary.LittleEndian.Uint64(raw[0:8]),
	}, nil
}

func decodeMakeMoveParams(raw []byte) (makeMoveParams, error) {
	if len(raw) != makeMoveParamsLength {
		return makeMoveParams{}, fmt.Errorf("%w: want %d bytes, got %d", apperror.ErrParseParams, makeMoveParamsLength, len(raw))
	}

	return makeMoveParams{
		GameID:  binary.LittleEndian.Uint64(raw[0:8]),
		TheMove: binary.LittleEndian.Uint64(raw[8:16]),
	}, nil
}

// EncodeJoinParams - the join_game/game_view/game_view_players payload for
// a game id.
func EncodeJoinParams(gameID uint64) []byte {
	raw := make([]byte, joinParamsLength)
	binary.LittleEndian.PutUint64(raw, gameID)

	return raw
}

// EncodeMakeMoveParams - the make_move payload for a game id and cell.
func EncodeMakeMoveParams(gameID, theMove uint64) []byte {
	raw := make([]byte, makeMoveParamsLength)
	binary.LittleEndian.PutUint64(raw[0:8], gameID)
	binary.LittleEndian.PutUint64(raw[8:16], theMove)

	return raw
}
