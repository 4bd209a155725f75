package board

import (
	"fmt"
	"strings"
)

// Tile is one square of the board grid plus its occupant (nil when empty).
type Tile struct {
	Square Square
	Piece  *Piece
}

// Board holds the 8x8 tile grid, the side to move, the tile currently
// occupied by each king and the append-only move history used for undo.
//
// A Board is built once from an externally supplied position (see
// internal/fen) and then mutated in place through MakeMove/UndoLastMove.
// It is not safe for concurrent use.
type Board struct {
	tiles   [64]Tile
	turn    Color
	kings   [2]*Tile
	history []*Move
}

// New creates an empty board with White to move.
func New() *Board {
	b := &Board{}
	for sq := A1; sq <= H8; sq++ {
		b.tiles[sq].Square = sq
	}
	return b
}

// Place puts a piece on a square during position setup. It must not be used
// once play has started; MakeMove is the only mutation during play.
func (b *Board) Place(p *Piece, sq Square) {
	t := &b.tiles[sq]
	t.Piece = p
	if p != nil && p.Type == King {
		b.kings[p.Color] = t
	}
}

// SetTurn sets the side to move during position setup.
func (b *Board) SetTurn(c Color) {
	b.turn = c
}

// Turn returns the side to move.
func (b *Board) Turn() Color {
	return b.turn
}

// GetTile returns the tile at the given square, or nil if the square is
// invalid.
func (b *Board) GetTile(sq Square) *Tile {
	if !sq.IsValid() {
		return nil
	}
	return &b.tiles[sq]
}

// KingTile returns the tile currently holding the given color's king.
func (b *Board) KingTile(c Color) *Tile {
	return b.kings[c]
}

// LastMove returns the most recently applied move, or nil if none.
func (b *Board) LastMove() *Move {
	if len(b.history) == 0 {
		return nil
	}
	return b.history[len(b.history)-1]
}

// HistoryLen returns the number of currently applied moves.
func (b *Board) HistoryLen() int {
	return len(b.history)
}

// MakeMove applies a move drawn from LegalMoves. Every sub-effect is exactly
// reversed by UndoLastMove.
func (b *Board) MakeMove(m *Move) {
	// The en passant window closes the instant the opponent moves. At this
	// point only an enemy pawn can carry the flag; remember it for undo.
	m.prevDoubleStep = b.doubleStepPawn(m.Piece.Color.Other())
	if m.prevDoubleStep != nil {
		m.prevDoubleStep.DoubleStep = false
	}

	if m.EnPassant {
		// The captured pawn sits behind the destination, on the mover's rank.
		b.tiles[NewSquare(m.To.File(), m.From.Rank())].Piece = nil
	}

	b.tiles[m.To].Piece = m.Piece
	b.tiles[m.From].Piece = nil

	if m.DoubleStep {
		m.Piece.DoubleStep = true
	}
	if m.Promotion != NoPieceType {
		m.Piece.Type = m.Promotion
	}
	if m.Piece.Type == King {
		b.kings[m.Piece.Color] = &b.tiles[m.To]
	}
	if m.Castle {
		rookFrom, rookTo := castleRookSquares(m.To)
		b.tiles[rookTo].Piece = b.tiles[rookFrom].Piece
		b.tiles[rookFrom].Piece = nil
	}
	if m.CancelsKingside {
		b.kings[m.Piece.Color].Piece.CanCastleKingside = false
	}
	if m.CancelsQueenside {
		b.kings[m.Piece.Color].Piece.CanCastleQueenside = false
	}
	if m.CancelsEnemyKingside {
		b.kings[m.Piece.Color.Other()].Piece.CanCastleKingside = false
	}
	if m.CancelsEnemyQueenside {
		b.kings[m.Piece.Color.Other()].Piece.CanCastleQueenside = false
	}

	b.turn = b.turn.Other()
	b.history = append(b.history, m)
}

// UndoLastMove reverses the most recently applied move and pops it from the
// history. It is a no-op when no move has been applied. Only this
// stack-disciplined form is exported: undoing anything but the latest move
// would corrupt the position.
func (b *Board) UndoLastMove() {
	n := len(b.history)
	if n == 0 {
		return
	}
	m := b.history[n-1]
	b.history = b.history[:n-1]
	b.undoMove(m)
}

// undoMove reverses every sub-effect of MakeMove for m, which must be the
// move most recently applied.
func (b *Board) undoMove(m *Move) {
	b.turn = b.turn.Other()

	if m.CancelsKingside {
		b.kings[m.Piece.Color].Piece.CanCastleKingside = true
	}
	if m.CancelsQueenside {
		b.kings[m.Piece.Color].Piece.CanCastleQueenside = true
	}
	if m.CancelsEnemyKingside {
		b.kings[m.Piece.Color.Other()].Piece.CanCastleKingside = true
	}
	if m.CancelsEnemyQueenside {
		b.kings[m.Piece.Color.Other()].Piece.CanCastleQueenside = true
	}
	if m.Castle {
		rookFrom, rookTo := castleRookSquares(m.To)
		b.tiles[rookFrom].Piece = b.tiles[rookTo].Piece
		b.tiles[rookTo].Piece = nil
	}
	if m.Promotion != NoPieceType {
		m.Piece.Type = Pawn
	}
	if m.DoubleStep {
		m.Piece.DoubleStep = false
	}

	b.tiles[m.From].Piece = m.Piece
	b.tiles[m.To].Piece = nil

	if m.EnPassant {
		// The victim returns behind the destination, never onto it.
		b.tiles[NewSquare(m.To.File(), m.From.Rank())].Piece = m.Captured
	} else if m.Captured != nil {
		b.tiles[m.To].Piece = m.Captured
	}

	if m.Piece.Type == King {
		b.kings[m.Piece.Color] = &b.tiles[m.From]
	}

	// Reopen the en passant window this move had closed.
	if m.prevDoubleStep != nil {
		m.prevDoubleStep.DoubleStep = true
	}
}

// doubleStepPawn returns the pawn of the given color currently carrying the
// double-step flag, if any. At most one pawn per side can carry it.
func (b *Board) doubleStepPawn(c Color) *Piece {
	for sq := A1; sq <= H8; sq++ {
		p := b.tiles[sq].Piece
		if p != nil && p.Type == Pawn && p.Color == c && p.DoubleStep {
			return p
		}
	}
	return nil
}

// castleRookSquares returns the rook's origin and destination for a castling
// move given the king's destination square.
func castleRookSquares(kingTo Square) (from, to Square) {
	rank := kingTo.Rank()
	if kingTo.File() == 6 {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// EnPassantTarget returns the square a pawn may capture onto en passant, or
// NoSquare when no pawn double-stepped on the previous ply. Derived from the
// pawn flags rather than any process-wide state, so independent boards never
// interfere.
func (b *Board) EnPassantTarget() Square {
	for sq := A1; sq <= H8; sq++ {
		p := b.tiles[sq].Piece
		if p == nil || p.Type != Pawn || !p.DoubleStep {
			continue
		}
		if p.Color == White {
			return sq.Add(0, -1)
		}
		return sq.Add(0, 1)
	}
	return NoSquare
}

// Validate checks the structural invariants of a freshly built position.
func (b *Board) Validate() error {
	var kings [2]int
	for sq := A1; sq <= H8; sq++ {
		p := b.tiles[sq].Piece
		if p == nil {
			continue
		}
		if p.Type == King {
			kings[p.Color]++
		}
		if p.Type == Pawn && (sq.Rank() == 0 || sq.Rank() == 7) {
			return fmt.Errorf("pawn on back rank at %s", sq)
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("white must have exactly one king, got %d", kings[White])
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black must have exactly one king, got %d", kings[Black])
	}
	return nil
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			p := b.tiles[NewSquare(file, rank)].Piece
			if p == nil {
				sb.WriteString(". ")
			} else {
				sb.WriteByte(p.Char())
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.turn)
	fmt.Fprintf(&sb, "Castling: %s\n", b.castlingString())
	fmt.Fprintf(&sb, "En passant: %s\n", b.EnPassantTarget())
	return sb.String()
}

func (b *Board) castlingString() string {
	s := ""
	if wk := b.kings[White]; wk != nil {
		if wk.Piece.CanCastleKingside {
			s += "K"
		}
		if wk.Piece.CanCastleQueenside {
			s += "Q"
		}
	}
	if bk := b.kings[Black]; bk != nil {
		if bk.Piece.CanCastleKingside {
			s += "k"
		}
		if bk.Piece.CanCastleQueenside {
			s += "q"
		}
	}
	if s == "" {
		return "-"
	}
	return s
}
