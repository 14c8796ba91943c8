package model

import "sort"

type SeatType string

const (
	SeatTypeNormal SeatType = "normal"
	SeatTypeAisle  SeatType = "aisle"
)

type TicketStatus string

const (
	TicketStatusNone     TicketStatus = "none"
	TicketStatusReserved TicketStatus = "reserved"
	TicketStatusPaid     TicketStatus = "paid"
)

type Seat struct {
	Id           int64        `json:"id"`
	RowNumber    string       `json:"row_number"`
	SeatNumber   int          `json:"seat_number"`
	SeatType     SeatType     `json:"seat_type"`
	TicketStatus TicketStatus `json:"ticket_status,omitempty"`
	// IsBooked predates ticket_status. It is only consulted when the newer
	// field is absent from the payload.
	IsBooked *bool `json:"is_booked,omitempty"`
}

// Occupancy is the canonical occupancy of a seat, with the legacy is_booked
// flag already folded in.
type Occupancy string

const (
	OccupancyAvailable Occupancy = "available"
	OccupancyReserved  Occupancy = "reserved"
	OccupancyPaid      Occupancy = "paid"
)

func (s Seat) Occupancy() Occupancy {
	switch s.TicketStatus {
	case TicketStatusPaid:
		return OccupancyPaid
	case TicketStatusReserved:
		return OccupancyReserved
	case TicketStatusNone:
		return OccupancyAvailable
	}
	if s.IsBooked != nil && *s.IsBooked {
		return OccupancyReserved
	}
	return OccupancyAvailable
}

// SeatState is what the seat map shows for one seat. A seat is in exactly
// one state at a time.
type SeatState int

const (
	SeatStateAisle SeatState = iota
	SeatStateSelected
	SeatStatePaid
	SeatStateReserved
	SeatStateAvailable
)

// Interactive reports whether activating the seat changes the selection.
func (s SeatState) Interactive() bool {
	return s == SeatStateSelected || s == SeatStateAvailable
}

// Classify maps a seat to its display state. Precedence, first match wins:
// aisle, selected, paid, reserved, available. A seat the user already picked
// stays selected even when a stale payload also marks it booked.
func Classify(seat Seat, selection Selection) SeatState {
	if seat.SeatType == SeatTypeAisle {
		return SeatStateAisle
	}
	if selection.Has(seat.Id) {
		return SeatStateSelected
	}
	switch seat.Occupancy() {
	case OccupancyPaid:
		return SeatStatePaid
	case OccupancyReserved:
		return SeatStateReserved
	}
	return SeatStateAvailable
}

// Selection is the set of seat ids the customer picked for the current
// order draft.
type Selection map[int64]struct{}

func NewSelection() Selection {
	return Selection{}
}

func (s Selection) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Toggle adds or removes the seat. Aisle and occupied seats are ignored,
// using the same precedence as Classify so the map and the toggle can never
// disagree.
func (s Selection) Toggle(seat Seat) {
	switch Classify(seat, s) {
	case SeatStateSelected:
		delete(s, seat.Id)
	case SeatStateAvailable:
		s[seat.Id] = struct{}{}
	}
}

// Ids returns the selected seat ids in ascending order.
func (s Selection) Ids() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
