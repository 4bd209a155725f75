package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Letter returns the algebraic letter for the piece type ("" for pawns).
func (pt PieceType) Letter() string {
	switch pt {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return ""
	}
}

// Piece is a piece on the board. The tag (Type) selects the move geometry;
// the mutable flags travel with the piece and are maintained exclusively by
// Board.MakeMove/UndoLastMove.
//
// DoubleStep is true on a pawn only for the single ply following its
// two-square advance. CanCastleKingside/CanCastleQueenside are meaningful
// only on kings and stay true until the king or the relevant home-corner
// rook first moves.
type Piece struct {
	Type  PieceType
	Color Color

	DoubleStep         bool
	CanCastleKingside  bool
	CanCastleQueenside bool
}

// NewPiece creates a piece of the given type and color with all flags clear.
func NewPiece(pt PieceType, c Color) *Piece {
	return &Piece{Type: pt, Color: c}
}

// Char returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p *Piece) Char() byte {
	chars := "PNBRQK"
	if p.Type >= NoPieceType {
		return ' '
	}
	c := chars[p.Type]
	if p.Color == Black {
		c += 'a' - 'A'
	}
	return c
}

// PieceFromChar converts a FEN character to a new Piece, or nil if the
// character names no piece.
func PieceFromChar(c byte) *Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return NewPiece(Pawn, color)
	case 'N':
		return NewPiece(Knight, color)
	case 'B':
		return NewPiece(Bishop, color)
	case 'R':
		return NewPiece(Rook, color)
	case 'Q':
		return NewPiece(Queen, color)
	case 'K':
		return NewPiece(King, color)
	default:
		return nil
	}
}
