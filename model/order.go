package model

const PaymentMethodCard = "card"

// OrderDraft is the customer's in-progress order for one checkout. It lives
// only for the duration of the checkout screen and is never persisted.
type OrderDraft struct {
	SessionId   int64
	Seats       Selection
	Concessions ConcessionSelection
	PromoCode   string
	UseBonuses  bool
	BonusAmount float64
}

func NewOrderDraft(sessionId int64) *OrderDraft {
	return &OrderDraft{
		SessionId:   sessionId,
		Seats:       NewSelection(),
		Concessions: NewConcessionSelection(),
	}
}

// BookingRequest renders the draft as the create-booking payload. The promo
// code goes out verbatim; the server validates it and computes any discount.
func (d *OrderDraft) BookingRequest(bonusAmount float64) BookingRequest {
	if !d.UseBonuses {
		bonusAmount = 0
	}
	return BookingRequest{
		SessionId:       d.SessionId,
		SeatIds:         d.Seats.Ids(),
		ConcessionItems: d.Concessions.Items(),
		PromoCode:       d.PromoCode,
		UseBonuses:      d.UseBonuses,
		BonusAmount:     bonusAmount,
	}
}

type BookingConcession struct {
	ConcessionId int64 `json:"concession_id"`
	Quantity     int   `json:"quantity"`
}

type BookingRequest struct {
	SessionId       int64               `json:"session_id"`
	SeatIds         []int64             `json:"seat_ids"`
	ConcessionItems []BookingConcession `json:"concession_items"`
	PromoCode       string              `json:"promo_code,omitempty"`
	UseBonuses      bool                `json:"use_bonuses"`
	BonusAmount     float64             `json:"bonus_amount"`
}

type Booking struct {
	Id     int64   `json:"id"`
	Total  float64 `json:"total"`
	Status string  `json:"status,omitempty"`
}

type PaymentRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

type Payment struct {
	Id     int64  `json:"id"`
	Status string `json:"status,omitempty"`
}
