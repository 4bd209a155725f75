// Package fen materializes boards from Forsyth-Edwards Notation and formats
// them back. It is the position-input collaborator of the rules engine: the
// engine itself never parses notation and consumes only fully built boards.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

// StartingPosition is the FEN string for the standard initial position.
const StartingPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"

// Parse parses a FEN string and returns a fully materialized board: grid,
// side to move, king tracking, castling flags and any pending double-step
// flag. The half-move clock and full-move number fields are accepted and
// ignored.
func Parse(fen string) (*board.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	b := board.New()

	if err := parsePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		b.SetTurn(board.White)
	case "b":
		b.SetTurn(board.Black)
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid position: %w", err)
	}

	if err := parseCastling(b, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		if err := parseEnPassant(b, parts[3]); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func parsePlacement(b *board.Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := board.PieceFromChar(byte(c))
			if piece == nil {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			b.Place(piece, board.NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

func parseCastling(b *board.Board, castling string) error {
	if castling == "-" {
		return nil
	}

	for _, c := range castling {
		var color board.Color
		switch c {
		case 'K', 'Q':
			color = board.White
		case 'k', 'q':
			color = board.Black
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}

		// A right is only coherent with the king still on its home square.
		kt := b.KingTile(color)
		home := board.E1
		if color == board.Black {
			home = board.E8
		}
		if kt.Square != home {
			return fmt.Errorf("castling right %c but the %s king is on %s", c, color, kt.Square)
		}

		switch c {
		case 'K', 'k':
			kt.Piece.CanCastleKingside = true
		case 'Q', 'q':
			kt.Piece.CanCastleQueenside = true
		}
	}

	return nil
}

// parseEnPassant marks the pawn standing in front of the target square as
// having just double-stepped, which is how the engine tracks en passant
// eligibility.
func parseEnPassant(b *board.Board, s string) error {
	sq, err := board.ParseSquare(s)
	if err != nil {
		return fmt.Errorf("invalid en passant square: %s", s)
	}

	var pawnSq board.Square
	var pawnColor board.Color
	switch sq.Rank() {
	case 2:
		pawnSq = sq.Add(0, 1)
		pawnColor = board.White
	case 5:
		pawnSq = sq.Add(0, -1)
		pawnColor = board.Black
	default:
		return fmt.Errorf("invalid en passant square: %s", s)
	}

	// The capture belongs to the side to move, so the double-stepped pawn
	// must be the opponent's.
	if b.Turn() == pawnColor {
		return fmt.Errorf("en passant square %s belongs to the side to move", s)
	}

	p := b.GetTile(pawnSq).Piece
	if p == nil || p.Type != board.Pawn || p.Color != pawnColor {
		return fmt.Errorf("en passant square %s has no matching pawn", s)
	}
	p.DoubleStep = true

	return nil
}

// Format returns the FEN representation of the board: placement, side to
// move, castling rights and en passant target.
func Format(b *board.Board) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.GetTile(board.NewSquare(file, rank)).Piece
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.Turn() == board.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(castlingString(b))

	sb.WriteByte(' ')
	sb.WriteString(b.EnPassantTarget().String())

	return sb.String()
}

func castlingString(b *board.Board) string {
	s := ""
	if wk := b.KingTile(board.White); wk != nil {
		if wk.Piece.CanCastleKingside {
			s += "K"
		}
		if wk.Piece.CanCastleQueenside {
			s += "Q"
		}
	}
	if bk := b.KingTile(board.Black); bk != nil {
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
