package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// BoardSize is the number of cells on the board. The board is never resized.
const BoardSize = 9

// Player binds a game seat (cross or circle) to one account. Two Player
// values are the same player only when both the mark and the account match.
type Player struct {
	Mark    string   `json:"mark"`
	Account Identity `json:"account"`
}

// Cross - the seat of the game initiator.
func Cross(account Identity) Player {
	return Player{Mark: PlayerX, Account: account}
}

// Circle - the seat of the joining opponent.
func Circle(account Identity) Player {
	return Player{Mark: PlayerO, Account: account}
}

// Cell is one board slot: empty, or occupied by a player.
type Cell struct {
	Mark    string   `json:"mark"`
	Account Identity `json:"account"`
}

func (that Cell) IsEmpty() bool {
	return that.Mark == EmptyCell
}

// Cell - the board slot this player's mark produces.
func (that Player) Cell() Cell {
	return Cell{Mark: that.Mark, Account: that.Account}
}

// Board is the 9-cell grid, row-major: index = row*3 + col.
type Board [BoardSize]Cell

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}
