package entity

import (
	"github.com/playgrid/tictactoe-engine/internal/apperror"
)

const (
	StatusAwaiting   = "awaiting_opponent"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// GameState is the lifecycle phase of a game. Turn is set only while the
// game is in progress; Winner only once it is finished, and a nil Winner on
// a finished game means a draw.
type GameState struct {
	Status string  `json:"status"`
	Turn   *Player `json:"turn,omitempty"`
	Winner *Player `json:"winner,omitempty"`
}

// Game holds one match. Cross is fixed at creation; Circle is nil until
// exactly one join succeeds and fixed afterwards. The two accounts are
// always distinct.
type Game struct {
	State  GameState `json:"state"`
	Board  Board     `json:"board"`
	Cross  Player    `json:"cross"`
	Circle *Player   `json:"circle,omitempty"`
}

// NewGame - a fresh game awaiting an opponent, with the initiator on cross.
func NewGame(initiator Identity) *Game {
	return &Game{
		State: GameState{Status: StatusAwaiting},
		Board: Board{},
		Cross: Cross(initiator),
	}
}

func (that *Game) IsAwaiting() bool {
	return that.State.Status == StatusAwaiting
}

func (that *Game) IsInProgress() bool {
	return that.State.Status == StatusInProgress
}

func (that *Game) IsFinished() bool {
	return that.State.Status == StatusFinished
}

// TurnHolder - the player whose turn it is, if the game is in progress.
func (that *Game) TurnHolder() (Player, bool) {
	if !that.IsInProgress() || that.State.Turn == nil {
		return Player{}, false
	}

	return *that.State.Turn, true
}

// Join seats newPlayer on circle. Only one join ever succeeds, the
// initiator cannot join their own game, and the initiator moves first.
func (that *Game) Join(newPlayer Player) error {
	if !that.IsAwaiting() {
		return apperror.ErrInvalidJoin
	}

	if newPlayer.Account == that.Cross.Account {
		return apperror.ErrInvalidJoin
	}

	that.Circle = &newPlayer

	turn := that.Cross
	that.State = GameState{Status: StatusInProgress, Turn: &turn}

	return nil
}

// MakeMove places player's mark on cell 'move' and settles the outcome.
// Every validation runs before the board is touched; a failed move leaves
// the game unchanged.
func (that *Game) MakeMove(player Player, move int) error {
	holder, ok := that.TurnHolder()
	if !ok || holder != player {
		return apperror.ErrNotMyTurn
	}

	if move < 0 || move >= BoardSize {
		return apperror.ErrInvalidMove
	}

	if !that.Board[move].IsEmpty() {
		return apperror.ErrInvalidMove
	}

	that.Board[move] = player.Cell()

	if finished, winner := that.settle(player, move); finished {
		that.State = GameState{Status: StatusFinished, Winner: winner}
		return nil
	}

	next := that.otherPlayer(player)
	that.State = GameState{Status: StatusInProgress, Turn: &next}

	return nil
}

func (that *Game) otherPlayer(player Player) Player {
	if player.Mark == PlayerX {
		return *that.Circle
	}
	return that.Cross
}

// settle reports whether the move ended the game and, if it was decisive,
// the winner. Only the affected row, column and (when eligible) the
// diagonals are examined; a line win takes priority over a draw.
func (that *Game) settle(player Player, move int) (bool, *Player) {
	if that.rowWin(player, move) || that.columnWin(player, move) || that.diagonalWin(player) {
		winner := player
		return true, &winner
	}

	if that.Board.IsFull() {
		return true, nil
	}

	return false, nil
}

func (that *Game) rowWin(player Player, move int) bool {
	row := (move / 3) * 3
	return that.holds(player, row) && that.holds(player, row+1) && that.holds(player, row+2)
}

func (that *Game) columnWin(player Player, move int) bool {
	column := move % 3
	return that.holds(player, column) && that.holds(player, column+3) && that.holds(player, column+6)
}

// Every diagonal line passes through the center, so a diagonal win is
// impossible unless the mover also holds cell 4.
func (that *Game) diagonalWin(player Player) bool {
	if !that.holds(player, 4) {
		return false
	}

	return (that.holds(player, 0) && that.holds(player, 8)) ||
		(that.holds(player, 2) && that.holds(player, 6))
}

func (that *Game) holds(player Player, cell int) bool {
	return that.Board[cell] == player.Cell()
}
