package model

import "sort"

type Concession struct {
	Id         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	ImageUrl   string  `json:"image_url,omitempty"`
	CategoryId int64   `json:"category_id,omitempty"`
}

// ConcessionSelection maps a concession id to a strictly positive quantity.
// Entries are removed when the quantity reaches zero, never stored as zero.
type ConcessionSelection map[int64]int

func NewConcessionSelection() ConcessionSelection {
	return ConcessionSelection{}
}

func (s ConcessionSelection) Quantity(id int64) int {
	return s[id]
}

// Adjust changes the quantity for id by delta, dropping the entry when it
// falls to zero or below.
func (s ConcessionSelection) Adjust(id int64, delta int) {
	next := s[id] + delta
	if next <= 0 {
		delete(s, id)
		return
	}
	s[id] = next
}

// Items returns the selection as booking line items ordered by id.
func (s ConcessionSelection) Items() []BookingConcession {
	items := make([]BookingConcession, 0, len(s))
	for id, qty := range s {
		items = append(items, BookingConcession{ConcessionId: id, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ConcessionId < items[j].ConcessionId })
	return items
}
