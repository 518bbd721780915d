package contract

import (
	"fmt"
	"log/slog"

	"github.com/playgrid/tictactoe-engine/internal/apperror"
	"github.com/playgrid/tictactoe-engine/internal/entity"
	"github.com/playgrid/tictactoe-engine/internal/registry"
)

// Operation names the entry points of the engine. The set is closed:
// Invoke matches it exhaustively.
type Operation string

const (
	OpInitialize      Operation = "initialize"
	OpCreateGame      Operation = "create_game"
	OpJoinGame        Operation = "join_game"
	OpMakeMove        Operation = "make_move"
	OpView            Operation = "view"
	OpGameView        Operation = "game_view"
	OpGameViewPlayers Operation = "game_view_players"
)

// IsMutating reports whether the operation may change registry state and
// therefore needs its result persisted by the host.
func (that Operation) IsMutating() bool {
	switch that {
	case OpInitialize, OpCreateGame, OpJoinGame, OpMakeMove:
		return true
	case OpView, OpGameView, OpGameViewPlayers:
		return false
	default:
		return false
	}
}

// Sender identifies the origin of an invocation as authenticated by the
// host: either an end-user account or another contract. Only accounts may
// play.
type Sender struct {
	Account    entity.Identity `json:"account"`
	IsContract bool            `json:"is_contract,omitempty"`
}

// Contract dispatches invocations onto the game registry. Each call runs
// to completion as one atomic step; the host serializes invocations, so
// there is no locking here.
type Contract struct {
	logger *slog.Logger
	state  *registry.Registry
}

func New(logger *slog.Logger, state *registry.Registry) *Contract {
	return &Contract{
		logger: logger.With("component", "contract"),
		state:  state,
	}
}

// State - the owned registry, for host-side snapshotting.
func (that *Contract) State() *registry.Registry {
	return that.state
}

// Invoke decodes params, runs the operation and encodes its result. Any
// returned error means the registry was left untouched.
func (that *Contract) Invoke(op Operation, sender Sender, params []byte) ([]byte, error) {
	switch op {
	case OpInitialize:
		return nil, that.initialize()
	case OpCreateGame:
		return nil, that.createGame(sender)
	case OpJoinGame:
		return nil, that.joinGame(sender, params)
	case OpMakeMove:
		return nil, that.makeMove(sender, params)
	case OpView:
		return that.view()
	case OpGameView:
		return that.gameView(params)
	case OpGameViewPlayers:
		return that.gameViewPlayers(params)
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", apperror.ErrParseParams, op)
	}
}

func (that *Contract) initialize() error {
	that.state = registry.New()
	that.logger.Info("registry initialized")

	return nil
}

func (that *Contract) createGame(sender Sender) error {
	if sender.IsContract {
		return apperror.ErrNotAHuman
	}

	id := that.state.CreateGame(sender.Account)
	that.logger.Info("game created", "game_id", id, "cross", sender.Account)

	return nil
}

func (that *Contract) joinGame(sender Sender, params []byte) error {
	if sender.IsContract {
		return apperror.ErrNotAHuman
	}

	join, err := decodeJoinParams(params)
	if err != nil {
		return err
	}

	if err = that.state.Join(join.GameID, entity.Circle(sender.Account)); err != nil {
		return err
	}

	that.logger.Info("player joined", "game_id", join.GameID, "circle", sender.Account)

	return nil
}

func (that *Contract) makeMove(sender Sender, params []byte) error {
	if sender.IsContract {
		return apperror.ErrNotAHuman
	}

	move, err := decodeMakeMoveParams(params)
	if err != nil {
		return err
	}

	// Range-check before the int conversion so oversized values can never
	// reach board indexing.
	if move.TheMove >= entity.BoardSize {
		return apperror.ErrInvalidMove
	}

	if err = that.state.MakeMove(move.GameID, sender.Account, int(move.TheMove)); err != nil {
		return err
	}

	that.logger.Info("move made", "game_id", move.GameID, "cell", move.TheMove)

	return nil
}
