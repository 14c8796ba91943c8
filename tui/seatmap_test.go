package tui

import (
	"testing"

	"cinema-checkout-cli/model"
)

func TestBuildSeatRows_NumericRowOrdering(t *testing.T) {
	seats := []model.Seat{
		{Id: 1, RowNumber: "2", SeatNumber: 1},
		{Id: 2, RowNumber: "10", SeatNumber: 1},
		{Id: 3, RowNumber: "1", SeatNumber: 1},
	}

	rows := buildSeatRows(seats)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	got := []string{rows[0].label, rows[1].label, rows[2].label}
	want := []string{"1", "2", "10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected row order %v, got %v", want, got)
		}
	}
}

func TestBuildSeatRows_NonNumericRowsSortLast(t *testing.T) {
	seats := []model.Seat{
		{Id: 1, RowNumber: "B", SeatNumber: 1},
		{Id: 2, RowNumber: "3", SeatNumber: 1},
		{Id: 3, RowNumber: "A", SeatNumber: 1},
	}

	rows := buildSeatRows(seats)
	got := []string{rows[0].label, rows[1].label, rows[2].label}
	want := []string{"3", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected row order %v, got %v", want, got)
		}
	}
}

func TestBuildSeatRows_SeatsOrderedWithinRow(t *testing.T) {
	seats := []model.Seat{
		{Id: 1, RowNumber: "1", SeatNumber: 3},
		{Id: 2, RowNumber: "1", SeatNumber: 1},
		{Id: 3, RowNumber: "1", SeatNumber: 2},
	}

	rows := buildSeatRows(seats)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	for i, seat := range rows[0].seats {
		if seat.SeatNumber != i+1 {
			t.Fatalf("expected seat %d at position %d, got %d", i+1, i, seat.SeatNumber)
		}
	}
}

func TestMoveCursor_ClampsToGrid(t *testing.T) {
	m := appModel{
		rows: buildSeatRows([]model.Seat{
			{Id: 1, RowNumber: "1", SeatNumber: 1},
			{Id: 2, RowNumber: "1", SeatNumber: 2},
			{Id: 3, RowNumber: "2", SeatNumber: 1},
		}),
	}

	m.moveCursor(-1, -1)
	if m.cursorRow != 0 || m.cursorCol != 0 {
		t.Fatalf("expected cursor at origin, got (%d,%d)", m.cursorRow, m.cursorCol)
	}

	m.moveCursor(0, 5)
	if m.cursorCol != 1 {
		t.Fatalf("expected column clamped to 1, got %d", m.cursorCol)
	}

	// Moving down into a shorter row pulls the column back in bounds.
	m.moveCursor(1, 0)
	if m.cursorRow != 1 || m.cursorCol != 0 {
		t.Fatalf("expected cursor at (1,0), got (%d,%d)", m.cursorRow, m.cursorCol)
	}

	m.moveCursor(5, 0)
	if m.cursorRow != 1 {
		t.Fatalf("expected row clamped to 1, got %d", m.cursorRow)
	}
}

func TestSeatToken_PerState(t *testing.T) {
	cases := []struct {
		state model.SeatState
		want  string
	}{
		{model.SeatStateAisle, "  "},
		{model.SeatStateSelected, "()"},
		{model.SeatStatePaid, "XX"},
		{model.SeatStateReserved, "##"},
		{model.SeatStateAvailable, "[]"},
	}
	for _, tc := range cases {
		if got := seatToken(tc.state); got != tc.want {
			t.Fatalf("token for %v: expected %q, got %q", tc.state, tc.want, got)
		}
	}
}
