package board

import "testing"

func TestSquareFileRank(t *testing.T) {
	tests := []struct {
		sq   Square
		file int
		rank int
		str  string
	}{
		{A1, 0, 0, "a1"},
		{H1, 7, 0, "h1"},
		{E4, 4, 3, "e4"},
		{A8, 0, 7, "a8"},
		{H8, 7, 7, "h8"},
	}

	for _, tc := range tests {
		if got := tc.sq.File(); got != tc.file {
			t.Errorf("%s.File() = %d, want %d", tc.str, got, tc.file)
		}
		if got := tc.sq.Rank(); got != tc.rank {
			t.Errorf("%s.Rank() = %d, want %d", tc.str, got, tc.rank)
		}
		if got := tc.sq.String(); got != tc.str {
			t.Errorf("String() = %q, want %q", got, tc.str)
		}
	}
}

func TestSquareAdd(t *testing.T) {
	tests := []struct {
		sq     Square
		df, dr int
		want   Square
	}{
		{E4, 0, 1, E5},
		{E4, -1, -1, D3},
		{A1, -1, 0, NoSquare},
		{A1, 0, -1, NoSquare},
		{H8, 1, 0, NoSquare},
		{H8, 0, 1, NoSquare},
		{H1, -7, 7, A8},
		{NoSquare, 1, 1, NoSquare},
	}

	for _, tc := range tests {
		if got := tc.sq.Add(tc.df, tc.dr); got != tc.want {
			t.Errorf("%v.Add(%d, %d) = %v, want %v", tc.sq, tc.df, tc.dr, got, tc.want)
		}
	}
}

func TestParseSquare(t *testing.T) {
	sq, err := ParseSquare("e4")
	if err != nil {
		t.Fatalf("ParseSquare(e4): %v", err)
	}
	if sq != E4 {
		t.Errorf("ParseSquare(e4) = %v, want e4", sq)
	}

	for _, bad := range []string{"", "e", "e44", "i4", "e9", "44"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) should fail", bad)
		}
	}
}

func TestRelativeRank(t *testing.T) {
	if got := E2.RelativeRank(White); got != 1 {
		t.Errorf("e2 relative rank for White = %d, want 1", got)
	}
	if got := E7.RelativeRank(Black); got != 1 {
		t.Errorf("e7 relative rank for Black = %d, want 1", got)
	}
}
