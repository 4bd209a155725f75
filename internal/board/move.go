package board

import "strings"

// CheckType classifies the game state produced by applying a move.
type CheckType uint8

const (
	NoCheck CheckType = iota
	Check
	Checkmate
	Stalemate
	NoMaterialDraw
)

// String returns the classification name.
func (ct CheckType) String() string {
	switch ct {
	case NoCheck:
		return "none"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case NoMaterialDraw:
		return "no-material-draw"
	default:
		return "?"
	}
}

// Terminal returns true if the classification ends the game.
func (ct CheckType) Terminal() bool {
	return ct == Checkmate || ct == Stalemate || ct == NoMaterialDraw
}

// Move is an immutable record of a single transition. Moves are produced by
// the board's move generation; applying one never alters its exported fields,
// only board and piece state.
type Move struct {
	From  Square
	To    Square
	Piece *Piece

	// Captured is the removed piece, nil for quiet moves. For en passant
	// captures it sits behind To, not on it.
	Captured *Piece

	// Promotion is the piece type a pawn becomes on the last rank,
	// NoPieceType otherwise.
	Promotion PieceType

	EnPassant  bool
	Castle     bool
	DoubleStep bool

	// CancelsKingside/CancelsQueenside record the castling rights this move
	// actually removes from the mover's king, so undo restores exactly those.
	CancelsKingside  bool
	CancelsQueenside bool

	// CancelsEnemyKingside/CancelsEnemyQueenside record the opponent rights
	// removed by capturing their never-moved rook on its home corner.
	CancelsEnemyKingside  bool
	CancelsEnemyQueenside bool

	// CheckType is the post-move classification, computed at construction
	// only for consumer-facing moves (see Board.LegalMoves).
	CheckType CheckType

	// prevDoubleStep is the enemy pawn whose en passant window this move
	// closed. Written by MakeMove, read back by undo.
	prevDoubleStep *Piece
}

// IsCapture returns true if the move removes an enemy piece.
func (m *Move) IsCapture() bool {
	return m.Captured != nil
}

// Coord returns the coordinate notation of the move (e.g., "e2e4", "e7e8q").
func (m *Move) Coord() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += strings.ToLower(m.Promotion.Letter())
	}
	return s
}

// String returns the debug notation of the move: piece letter (omitted for
// pawns), "x" for captures, destination square, "=Q" for promotions and
// "+"/"#" for check/checkmate. Castling renders as "O-O" or "O-O-O".
// This is a human-readable rendering, not a machine-parseable protocol.
func (m *Move) String() string {
	var sb strings.Builder

	if m.Castle {
		if m.To.File() > m.From.File() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		sb.WriteString(m.Piece.Type.Letter())
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promotion != NoPieceType {
			sb.WriteByte('=')
			sb.WriteString(m.Promotion.Letter())
		}
	}

	switch m.CheckType {
	case Check:
		sb.WriteByte('+')
	case Checkmate:
		sb.WriteByte('#')
	}

	return sb.String()
}
