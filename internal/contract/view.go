package contract

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/playgrid/tictactoe-engine/internal/entity"
	"github.com/playgrid/tictactoe-engine/internal/registry"
)

// GameRecord pairs a game with its id in the full view payload.
type GameRecord struct {
	ID   registry.GameID `json:"id"`
	Game *entity.Game    `json:"game"`
}

// view encodes every game, ordered by ascending id.
func (that *Contract) view() ([]byte, error) {
	records := make([]GameRecord, 0, len(that.state.Games))
	for _, id := range that.state.GameIDs() {
		game, err := that.state.Game(id)
		if err != nil {
			return nil, err
		}

		records = append(records, GameRecord{ID: id, Game: game})
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("could not marshal view: %w", err)
	}

	return payload, nil
}

// gameView encodes one game as 4 little-endian bytes of the packed 32-bit
// view value.
func (that *Contract) gameView(params []byte) ([]byte, error) {
	lookup, err := decodeJoinParams(params)
	if err != nil {
		return nil, err
	}

	game, err := that.state.Game(lookup.GameID)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, packGame(game))

	return payload, nil
}

// gameViewPlayers encodes the raw cross account bytes, followed by the raw
// circle account bytes once an opponent has joined. The payload is 32 or
// 64 bytes long.
func (that *Contract) gameViewPlayers(params []byte) ([]byte, error) {
	lookup, err := decodeJoinParams(params)
	if err != nil {
		return nil, err
	}

	game, err := that.state.Game(lookup.GameID)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, 2*entity.IdentityLength)
	payload = append(payload, game.Cross.Account[:]...)
	if game.Circle != nil {
		payload = append(payload, game.Circle.Account[:]...)
	}

	return payload, nil
}

// Packed view layout: bits 0-3 hold the lifecycle tag, then 2 bits per
// cell starting at bit 4+2*index (empty=0, cross=1, circle=2). External
// consumers depend on these exact offsets.
const (
	stateAwaiting     = 0
	stateTurnOfCross  = 1
	stateTurnOfCircle = 2
	stateDraw         = 3
	stateCrossWon     = 4
	stateCircleWon    = 5

	cellBitsOffset = 4
	cellBitsWidth  = 2
)

func packGame(game *entity.Game) uint32 {
	bits := stateTag(game)

	for index, cell := range game.Board {
		bits |= markBits(cell.Mark) << (cellBitsOffset + cellBitsWidth*index)
	}

	return bits
}

func stateTag(game *entity.Game) uint32 {
	switch {
	case game.IsAwaiting():
		return stateAwaiting
	case game.IsInProgress():
		if game.State.Turn.Mark == entity.PlayerX {
			return stateTurnOfCross
		}
		return stateTurnOfCircle
	default:
		switch {
		case game.State.Winner == nil:
			return stateDraw
		case game.State.Winner.Mark == entity.PlayerX:
			return stateCrossWon
		default:
			return stateCircleWon
		}
	}
}

func markBits(mark string) uint32 {
	switch mark {
	case entity.PlayerX:
		return 1
	case entity.PlayerO:
		return 2
	default:
		return 0
	}
}
