package model

import "testing"

func testCatalog() []Concession {
	return []Concession{
		{Id: 1, Name: "Popcorn", Price: 150},
		{Id: 2, Name: "Cola", Price: 400},
	}
}

func TestComputeTotals_TicketsAndConcessions(t *testing.T) {
	selection := ConcessionSelection{1: 2, 2: 1}

	result := ComputeTotals(300, 3, selection, testCatalog(), false, 0)
	if result.TicketsTotal != 900 {
		t.Fatalf("expected tickets total 900, got %v", result.TicketsTotal)
	}
	if result.ConcessionsTotal != 700 {
		t.Fatalf("expected concessions total 700, got %v", result.ConcessionsTotal)
	}
	if result.Total != 1600 {
		t.Fatalf("expected total 1600, got %v", result.Total)
	}
}

func TestComputeTotals_UnknownConcessionContributesZero(t *testing.T) {
	selection := ConcessionSelection{99: 5}

	result := ComputeTotals(300, 1, selection, testCatalog(), false, 0)
	if result.ConcessionsTotal != 0 {
		t.Fatalf("expected unknown item to contribute 0, got %v", result.ConcessionsTotal)
	}
	if result.Total != 300 {
		t.Fatalf("expected total 300, got %v", result.Total)
	}
}

func TestComputeTotals_BonusFloorsAtZero(t *testing.T) {
	result := ComputeTotals(300, 1, nil, nil, true, 5000)
	if result.Total != 0 {
		t.Fatalf("expected total floored at 0, got %v", result.Total)
	}
}

func TestClampBonus_BoundedByBalanceAndSubtotal(t *testing.T) {
	// Entered 2000 against balance 500 and subtotal 1600: effective 500.
	clamped := ClampBonus(2000, 500, 1600)
	if clamped != 500 {
		t.Fatalf("expected clamp to 500, got %v", clamped)
	}

	result := ComputeTotals(300, 3, ConcessionSelection{1: 2, 2: 1}, testCatalog(), true, clamped)
	if result.Total != 1100 {
		t.Fatalf("expected total 1100 after bonus, got %v", result.Total)
	}

	if got := ClampBonus(100, 500, 60); got != 60 {
		t.Fatalf("expected clamp to subtotal 60, got %v", got)
	}
	if got := ClampBonus(-10, 500, 1600); got != 0 {
		t.Fatalf("expected negative input clamped to 0, got %v", got)
	}
	if got := ClampBonus(40, 500, 1600); got != 40 {
		t.Fatalf("expected in-range amount unchanged, got %v", got)
	}
}

func TestConcessionSelection_AdjustRemovesAtZero(t *testing.T) {
	selection := NewConcessionSelection()
	selection.Adjust(1, 1)
	selection.Adjust(1, 1)
	if selection.Quantity(1) != 2 {
		t.Fatalf("expected quantity 2, got %d", selection.Quantity(1))
	}

	selection.Adjust(1, -1)
	selection.Adjust(1, -1)
	if _, ok := selection[1]; ok {
		t.Fatal("expected entry removed at zero quantity")
	}

	selection.Adjust(2, -1)
	if len(selection) != 0 {
		t.Fatalf("expected decrement on absent id to stay empty, got %v", selection)
	}
}

func TestOrderDraft_BookingRequest(t *testing.T) {
	draft := NewOrderDraft(12)
	draft.Seats.Toggle(Seat{Id: 3, SeatType: SeatTypeNormal})
	draft.Seats.Toggle(Seat{Id: 1, SeatType: SeatTypeNormal})
	draft.Concessions.Adjust(2, 1)
	draft.PromoCode = "SUMMER"
	draft.UseBonuses = true

	req := draft.BookingRequest(250)
	if req.SessionId != 12 {
		t.Fatalf("unexpected session id: %d", req.SessionId)
	}
	if len(req.SeatIds) != 2 || req.SeatIds[0] != 1 || req.SeatIds[1] != 3 {
		t.Fatalf("unexpected seat ids: %v", req.SeatIds)
	}
	if len(req.ConcessionItems) != 1 || req.ConcessionItems[0].Quantity != 1 {
		t.Fatalf("unexpected concession items: %v", req.ConcessionItems)
	}
	if req.PromoCode != "SUMMER" || !req.UseBonuses || req.BonusAmount != 250 {
		t.Fatalf("unexpected request: %+v", req)
	}

	draft.UseBonuses = false
	req = draft.BookingRequest(250)
	if req.BonusAmount != 0 {
		t.Fatalf("expected zero bonus when bonuses disabled, got %v", req.BonusAmount)
	}
}
