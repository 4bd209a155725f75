package board

// IsInCheck reports whether the given color's king is attacked by the other
// side.
func (b *Board) IsInCheck(c Color) bool {
	kt := b.kings[c]
	if kt == nil {
		return false
	}
	return b.isAttacked(kt.Square, c.Other())
}

// isAttacked reports whether any piece of the given color attacks sq. The
// scan runs outward from sq, so it works equally for occupied squares
// (check detection) and empty ones (castling transit safety).
func (b *Board) isAttacked(sq Square, by Color) bool {
	// Pawns attack diagonally forward, so the attacker sits diagonally
	// behind sq from its own point of view.
	dr := -1
	if by == Black {
		dr = 1
	}
	for _, df := range [2]int{-1, 1} {
		if b.hasPiece(sq.Add(df, dr), Pawn, by) {
			return true
		}
	}

	for _, off := range knightOffsets {
		if b.hasPiece(sq.Add(off[0], off[1]), Knight, by) {
			return true
		}
	}
	for _, off := range kingOffsets {
		if b.hasPiece(sq.Add(off[0], off[1]), King, by) {
			return true
		}
	}

	return b.rayAttacked(sq, by, rookDirs[:], Rook) ||
		b.rayAttacked(sq, by, bishopDirs[:], Bishop)
}

// rayAttacked scans each direction for the first occupied square and checks
// it for an enemy slider of the given type or a queen.
func (b *Board) rayAttacked(sq Square, by Color, dirs [][2]int, slider PieceType) bool {
	for _, dir := range dirs {
		for to := sq.Add(dir[0], dir[1]); to.IsValid(); to = to.Add(dir[0], dir[1]) {
			p := b.tiles[to].Piece
			if p == nil {
				continue
			}
			if p.Color == by && (p.Type == slider || p.Type == Queen) {
				return true
			}
			break
		}
	}
	return false
}

func (b *Board) hasPiece(sq Square, pt PieceType, c Color) bool {
	if !sq.IsValid() {
		return false
	}
	p := b.tiles[sq].Piece
	return p != nil && p.Type == pt && p.Color == c
}

// Classify tentatively applies m and classifies the resulting game state
// for the side then to move. The trial is always unwound before returning.
func (b *Board) Classify(m *Move) CheckType {
	b.MakeMove(m)
	defer b.UndoLastMove()

	if b.onlyKingsRemain() {
		return NoMaterialDraw
	}

	opponent := b.turn
	inCheck := b.IsInCheck(opponent)
	hasReply := b.hasLegalMove(opponent)

	switch {
	case inCheck && !hasReply:
		return Checkmate
	case inCheck:
		return Check
	case !hasReply:
		return Stalemate
	default:
		return NoCheck
	}
}

// hasLegalMove reports whether the given color has at least one legal move.
// Candidates are generated without classification to avoid recursive
// simulation.
func (b *Board) hasLegalMove(c Color) bool {
	cfg := genConfig{castleCalc: true}
	for sq := A1; sq <= H8; sq++ {
		t := &b.tiles[sq]
		if t.Piece == nil || t.Piece.Color != c {
			continue
		}
		if len(b.legalMoves(t, cfg)) > 0 {
			return true
		}
	}
	return false
}

// onlyKingsRemain reports whether neither side has any non-king piece left.
func (b *Board) onlyKingsRemain() bool {
	for sq := A1; sq <= H8; sq++ {
		if p := b.tiles[sq].Piece; p != nil && p.Type != King {
			return false
		}
	}
	return true
}
