package board

// genConfig controls the optional derived work done while building moves.
// Bulk candidate generation for legality filtering and reply search runs
// with checkCalc off to avoid recursive simulation; only consumer-facing
// generation pays for classification.
type genConfig struct {
	checkCalc  bool
	castleCalc bool
}

var (
	knightOffsets = [8][2]int{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingOffsets = [8][2]int{
		{0, 1}, {1, 1}, {1, 0}, {1, -1},
		{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
	}
	rookDirs   = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	queenDirs  = [8][2]int{
		{0, 1}, {1, 1}, {1, 0}, {1, -1},
		{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
	}
)

// promotionOrder lists promotion pieces queen-first.
var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// LegalMoves returns the legal moves for the occupant of the given tile,
// with post-move classification filled in. It returns nil for empty or
// invalid tiles. A move not present in this list does not exist as a value:
// that is the only guard against illegal move application.
func (b *Board) LegalMoves(t *Tile) []*Move {
	return b.legalMoves(t, genConfig{checkCalc: true, castleCalc: true})
}

// AllLegalMoves returns the union of LegalMoves over every tile occupied by
// the side to move.
func (b *Board) AllLegalMoves() []*Move {
	return b.allLegalMoves(genConfig{checkCalc: true, castleCalc: true})
}

// FindMove returns the legal move matching the given endpoints and promotion
// piece (NoPieceType for non-promotions), or nil if no such move is legal.
func (b *Board) FindMove(from, to Square, promo PieceType) *Move {
	for _, m := range b.LegalMoves(b.GetTile(from)) {
		if m.To == to && m.Promotion == promo {
			return m
		}
	}
	return nil
}

func (b *Board) legalMoves(t *Tile, cfg genConfig) []*Move {
	if t == nil || t.Piece == nil {
		return nil
	}
	moves := b.pseudoMoves(t, cfg)
	legal := moves[:0]
	for _, m := range moves {
		if !b.leavesKingInCheck(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (b *Board) allLegalMoves(cfg genConfig) []*Move {
	var moves []*Move
	for sq := A1; sq <= H8; sq++ {
		t := &b.tiles[sq]
		if t.Piece == nil || t.Piece.Color != b.turn {
			continue
		}
		moves = append(moves, b.legalMoves(t, cfg)...)
	}
	return moves
}

// leavesKingInCheck tentatively applies m and reports whether the mover's
// own king ends up attacked. The undo is deferred so the trial is fully
// unwound on every path.
func (b *Board) leavesKingInCheck(m *Move) bool {
	b.MakeMove(m)
	defer b.UndoLastMove()
	return b.IsInCheck(m.Piece.Color)
}

// pseudoMoves generates the moves satisfying the occupant's movement
// geometry and occupancy rules, without king-safety filtering.
func (b *Board) pseudoMoves(t *Tile, cfg genConfig) []*Move {
	switch t.Piece.Type {
	case Pawn:
		return b.pawnMoves(t, cfg)
	case Knight:
		return b.stepMoves(t, knightOffsets[:], cfg)
	case Bishop:
		return b.rayMoves(t, bishopDirs[:], cfg)
	case Rook:
		return b.rayMoves(t, rookDirs[:], cfg)
	case Queen:
		return b.rayMoves(t, queenDirs[:], cfg)
	case King:
		moves := b.stepMoves(t, kingOffsets[:], cfg)
		return append(moves, b.castleMoves(t, cfg)...)
	default:
		return nil
	}
}

// finishMove derives the optional move metadata: rights cancellation when
// castleCalc is set, post-move classification when checkCalc is set.
func (b *Board) finishMove(m *Move, cfg genConfig) *Move {
	if cfg.castleCalc {
		b.deriveRightsCancellation(m)
	}
	if cfg.checkCalc {
		m.CheckType = b.Classify(m)
	}
	return m
}

// deriveRightsCancellation marks the castling rights m removes: any king
// move cancels both remaining rights, a rook's move off its home corner
// cancels the corresponding wing, and capturing the opponent's never-moved
// rook on its home corner cancels theirs. Only rights that are currently set
// are recorded, so undo restores exactly the pre-move state.
func (b *Board) deriveRightsCancellation(m *Move) {
	kt := b.kings[m.Piece.Color]
	if kt == nil {
		return
	}
	king := kt.Piece

	switch m.Piece.Type {
	case King:
		m.CancelsKingside = king.CanCastleKingside
		m.CancelsQueenside = king.CanCastleQueenside
	case Rook:
		homeRank := m.From.RelativeRank(m.Piece.Color) // 0 iff on own back rank
		if homeRank == 0 {
			if m.From.File() == 7 && king.CanCastleKingside {
				m.CancelsKingside = true
			}
			if m.From.File() == 0 && king.CanCastleQueenside {
				m.CancelsQueenside = true
			}
		}
	}

	// A rook captured on its home corner never moved; the wing it guarded
	// dies with it.
	if m.Captured != nil && m.Captured.Type == Rook &&
		m.To.RelativeRank(m.Captured.Color) == 0 {
		if ekt := b.kings[m.Captured.Color]; ekt != nil {
			if m.To.File() == 7 && ekt.Piece.CanCastleKingside {
				m.CancelsEnemyKingside = true
			}
			if m.To.File() == 0 && ekt.Piece.CanCastleQueenside {
				m.CancelsEnemyQueenside = true
			}
		}
	}
}

func (b *Board) pawnMoves(t *Tile, cfg genConfig) []*Move {
	var moves []*Move
	p := t.Piece
	from := t.Square

	dir := 1
	startRank, promoRank, epRank := 1, 7, 4
	if p.Color == Black {
		dir = -1
		startRank, promoRank, epRank = 6, 0, 3
	}

	appendTo := func(m *Move) {
		if m.To.Rank() == promoRank {
			for _, promo := range promotionOrder {
				pm := *m
				pm.Promotion = promo
				moves = append(moves, b.finishMove(&pm, cfg))
			}
			return
		}
		moves = append(moves, b.finishMove(m, cfg))
	}

	// Single push, only onto an empty square.
	one := from.Add(0, dir)
	if one.IsValid() && b.tiles[one].Piece == nil {
		appendTo(&Move{From: from, To: one, Piece: p, Promotion: NoPieceType})

		// Double push from the starting rank, through the empty single-push
		// square.
		if from.Rank() == startRank {
			two := from.Add(0, 2*dir)
			if two.IsValid() && b.tiles[two].Piece == nil {
				moves = append(moves, b.finishMove(&Move{
					From: from, To: two, Piece: p,
					Promotion: NoPieceType, DoubleStep: true,
				}, cfg))
			}
		}
	}

	// Diagonal captures, ordinary and en passant.
	for _, df := range [2]int{-1, 1} {
		to := from.Add(df, dir)
		if !to.IsValid() {
			continue
		}
		if occ := b.tiles[to].Piece; occ != nil {
			if occ.Color != p.Color {
				appendTo(&Move{
					From: from, To: to, Piece: p,
					Captured: occ, Promotion: NoPieceType,
				})
			}
			continue
		}
		// En passant: attacker on its fifth rank, empty diagonal target,
		// adjacent-file enemy pawn still carrying the double-step flag.
		if from.Rank() != epRank {
			continue
		}
		adj := b.tiles[from.Add(df, 0)].Piece
		if adj != nil && adj.Type == Pawn && adj.Color != p.Color && adj.DoubleStep {
			moves = append(moves, b.finishMove(&Move{
				From: from, To: to, Piece: p,
				Captured: adj, Promotion: NoPieceType, EnPassant: true,
			}, cfg))
		}
	}

	return moves
}

// stepMoves generates fixed-offset moves for knights and kings.
func (b *Board) stepMoves(t *Tile, offsets [][2]int, cfg genConfig) []*Move {
	var moves []*Move
	p := t.Piece
	for _, off := range offsets {
		to := t.Square.Add(off[0], off[1])
		if !to.IsValid() {
			continue
		}
		occ := b.tiles[to].Piece
		if occ != nil && occ.Color == p.Color {
			continue
		}
		moves = append(moves, b.finishMove(&Move{
			From: t.Square, To: to, Piece: p,
			Captured: occ, Promotion: NoPieceType,
		}, cfg))
	}
	return moves
}

// rayMoves casts along each direction one square at a time. A ray ends at
// the first occupied square, included as a capture only when enemy-colored.
func (b *Board) rayMoves(t *Tile, dirs [][2]int, cfg genConfig) []*Move {
	var moves []*Move
	p := t.Piece
	for _, dir := range dirs {
		for to := t.Square.Add(dir[0], dir[1]); to.IsValid(); to = to.Add(dir[0], dir[1]) {
			occ := b.tiles[to].Piece
			if occ != nil {
				if occ.Color != p.Color {
					moves = append(moves, b.finishMove(&Move{
						From: t.Square, To: to, Piece: p,
						Captured: occ, Promotion: NoPieceType,
					}, cfg))
				}
				break
			}
			moves = append(moves, b.finishMove(&Move{
				From: t.Square, To: to, Piece: p, Promotion: NoPieceType,
			}, cfg))
		}
	}
	return moves
}

// castleMoves generates castling candidates for the king on t. A candidate
// requires the right flag, the rook on its home corner, empty squares
// between king and rook, and an unattacked origin, transit and destination
// for the king.
func (b *Board) castleMoves(t *Tile, cfg genConfig) []*Move {
	if !cfg.castleCalc {
		return nil
	}
	var moves []*Move
	king := t.Piece
	them := king.Color.Other()
	rank := t.Square.Rank()
	from := t.Square

	if king.CanCastleKingside &&
		b.hasHomeRook(king.Color, NewSquare(7, rank)) &&
		b.tiles[NewSquare(5, rank)].Piece == nil &&
		b.tiles[NewSquare(6, rank)].Piece == nil &&
		!b.isAttacked(from, them) &&
		!b.isAttacked(NewSquare(5, rank), them) &&
		!b.isAttacked(NewSquare(6, rank), them) {
		moves = append(moves, b.finishMove(&Move{
			From: from, To: NewSquare(6, rank), Piece: king,
			Promotion: NoPieceType, Castle: true,
		}, cfg))
	}

	if king.CanCastleQueenside &&
		b.hasHomeRook(king.Color, NewSquare(0, rank)) &&
		b.tiles[NewSquare(1, rank)].Piece == nil &&
		b.tiles[NewSquare(2, rank)].Piece == nil &&
		b.tiles[NewSquare(3, rank)].Piece == nil &&
		!b.isAttacked(from, them) &&
		!b.isAttacked(NewSquare(3, rank), them) &&
		!b.isAttacked(NewSquare(2, rank), them) {
		moves = append(moves, b.finishMove(&Move{
			From: from, To: NewSquare(2, rank), Piece: king,
			Promotion: NoPieceType, Castle: true,
		}, cfg))
	}

	return moves
}

func (b *Board) hasHomeRook(c Color, sq Square) bool {
	p := b.tiles[sq].Piece
	return p != nil && p.Type == Rook && p.Color == c
}
