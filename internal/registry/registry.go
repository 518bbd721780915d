package registry

import (
	"sort"

	"github.com/playgrid/tictactoe-engine/internal/apperror"
	"github.com/playgrid/tictactoe-engine/internal/entity"
)

// GameID is a stable, monotonically assigned game identifier.
type GameID = uint64

// Registry owns every game. GameIDs are arena indices: assigned once,
// never removed, never reused, always below Counter. The fields are
// exported for snapshot (de)serialization only; all mutation goes through
// the methods.
type Registry struct {
	Counter uint64                  `json:"counter"`
	Games   map[GameID]*entity.Game `json:"games"`
}

func New() *Registry {
	return &Registry{
		Counter: 0,
		Games:   make(map[GameID]*entity.Game),
	}
}

// CreateGame opens a new game with initiator on cross. It always succeeds.
func (that *Registry) CreateGame(initiator entity.Identity) GameID {
	id := that.Counter
	that.Games[id] = entity.NewGame(initiator)
	that.Counter++

	return id
}

// Join seats newPlayer in the identified game.
func (that *Registry) Join(id GameID, newPlayer entity.Player) error {
	game, ok := that.Games[id]
	if !ok {
		return apperror.ErrInvalidGameID
	}

	return game.Join(newPlayer)
}

// MakeMove resolves the seat currently holding the turn and plays the move
// on its behalf, provided the mover's account is the turn holder's.
func (that *Registry) MakeMove(id GameID, mover entity.Identity, move int) error {
	game, ok := that.Games[id]
	if !ok {
		return apperror.ErrInvalidGameID
	}

	holder, ok := game.TurnHolder()
	if !ok {
		return apperror.ErrInvalidGameState
	}

	if holder.Account != mover {
		return apperror.ErrNotMyTurn
	}

	return game.MakeMove(holder, move)
}

// Game - the identified game, for the read-only views.
func (that *Registry) Game(id GameID) (*entity.Game, error) {
	game, ok := that.Games[id]
	if !ok {
		return nil, apperror.ErrInvalidGameID
	}

	return game, nil
}

// GameIDs - every assigned id in ascending order.
func (that *Registry) GameIDs() []GameID {
	ids := make([]GameID, 0, len(that.Games))
	for id := range that.Games {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
