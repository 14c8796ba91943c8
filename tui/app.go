package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinema-checkout-cli/model"
	"cinema-checkout-cli/service"
	"cinema-checkout-cli/store"
)

type appState int

const (
	stateLoading appState = iota
	stateReady
	stateSubmitting
	stateCompleted
	stateLoadError
	stateLoginRedirect
)

type focusArea int

const (
	focusSeats focusArea = iota
	focusConcessions
)

type editField int

const (
	editNone editField = iota
	editPromo
	editBonus
)

// Backend is the slice of the booking API the checkout screen needs.
type Backend interface {
	GetSession(ctx context.Context, sessionID int64) (model.Session, error)
	GetSessionSeats(ctx context.Context, sessionID int64) ([]model.Seat, error)
	GetConcessions(ctx context.Context, cinemaID int64) ([]model.Concession, error)
	CreateBooking(ctx context.Context, req model.BookingRequest) (model.Booking, error)
	CreatePayment(ctx context.Context, bookingID int64, req model.PaymentRequest) (model.Payment, error)
}

// Auth tells the checkout whether a user is signed in and how much loyalty
// balance they can redeem.
type Auth interface {
	Authenticated() bool
	BonusBalance() float64
}

type appModel struct {
	backend Backend
	auth    Auth
	nav     Navigator

	sessionID int64

	state appState
	err   error

	width  int
	height int

	session model.Session
	rows    []seatRow
	catalog []model.Concession

	draft          *model.OrderDraft
	pricing        model.PricingResult
	effectiveBonus float64

	loadedParts int

	focus           focusArea
	cursorRow       int
	cursorCol       int
	showSeatNumbers bool

	concessionList list.Model
	promoInput     textinput.Model
	bonusInput     textinput.Model
	editing        editField

	statusMsg string
	notice    string

	lastBooking model.Booking

	spinner spinner.Model
}

type sessionMsg struct {
	session model.Session
	err     error
}

type seatsMsg struct {
	seats []model.Seat
	err   error
}

type concessionsMsg struct {
	items []model.Concession
	err   error
}

type bookingMsg struct {
	booking model.Booking
	err     error
}

type paymentMsg struct {
	booking model.Booking
	payment model.Payment
	err     error
}

// New builds the checkout screen for one screening. Collaborators are
// injected so tests can run against stubs.
func New(backend Backend, auth Auth, nav Navigator, sessionID int64) tea.Model {
	m := appModel{
		backend:   backend,
		auth:      auth,
		nav:       nav,
		sessionID: sessionID,
		state:     stateLoading,
		draft:     model.NewOrderDraft(sessionID),
	}

	m.concessionList = newConcessionList()

	m.promoInput = textinput.New()
	m.promoInput.Placeholder = "promo code"
	m.promoInput.CharLimit = 32

	m.bonusInput = textinput.New()
	m.bonusInput.Placeholder = "bonus amount"
	m.bonusInput.CharLimit = 10

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		m.fetchSessionCmd(),
		m.fetchSeatsCmd(),
		m.fetchConcessionsCmd(),
		m.spinner.Tick,
	)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == stateLoading || m.state == stateSubmitting {
			return m, cmd
		}
		return m, nil

	case sessionMsg:
		if m.state != stateLoading {
			return m, nil
		}
		if msg.err != nil {
			return m.loadFailed(msg.err), nil
		}
		m.session = msg.session
		return m.markLoaded(), nil

	case seatsMsg:
		if m.state != stateLoading {
			return m, nil
		}
		if msg.err != nil {
			return m.loadFailed(msg.err), nil
		}
		m.rows = buildSeatRows(msg.seats)
		return m.markLoaded(), nil

	case concessionsMsg:
		if m.state != stateLoading {
			return m, nil
		}
		if msg.err != nil {
			return m.loadFailed(msg.err), nil
		}
		m.catalog = msg.items
		return m.markLoaded(), nil

	case bookingMsg:
		if m.state != stateSubmitting {
			return m, nil
		}
		if msg.err != nil {
			m.state = stateReady
			m.statusMsg = errorMessage(msg.err, "Could not create the booking. Please try again.")
			return m, nil
		}
		m.lastBooking = msg.booking
		return m, m.submitPaymentCmd(msg.booking)

	case paymentMsg:
		if m.state != stateSubmitting {
			return m, nil
		}
		if msg.err != nil {
			// The booking exists server-side with no payment. There is no
			// compensating cancel call; the user retries or contacts support.
			m.state = stateReady
			m.statusMsg = errorMessage(msg.err, "The payment was declined. Please try again.")
			m.notice = fmt.Sprintf("Booking #%d was created but has not been paid.", msg.booking.Id)
			return m, nil
		}
		m.state = stateCompleted
		return m, m.navigateCmd(RouteTickets)
	}

	if m.state == stateReady && m.focus == focusConcessions && m.editing == editNone {
		var cmd tea.Cmd
		m.concessionList, cmd = m.concessionList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) loadFailed(err error) appModel {
	m.err = err
	m.state = stateLoadError
	return m
}

func (m appModel) markLoaded() appModel {
	m.loadedParts++
	if m.loadedParts < 3 {
		return m
	}
	m.state = stateReady
	m.cursorRow, m.cursorCol = 0, 0
	m.snapCursor()
	m.refreshConcessionList()
	m.recompute()
	return m
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing != editNone {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		switch m.state {
		case stateLoadError, stateCompleted, stateLoginRedirect:
			return m, tea.Quit
		}
		return m, nil
	case "enter":
		if m.state == stateCompleted || m.state == stateLoginRedirect {
			return m, tea.Quit
		}
	}

	if m.state != stateReady {
		return m, nil
	}

	switch msg.String() {
	case "tab":
		if m.focus == focusSeats {
			m.focus = focusConcessions
		} else {
			m.focus = focusSeats
		}
		return m, nil
	case "up", "k":
		if m.focus == focusSeats {
			m.moveCursor(-1, 0)
			return m, nil
		}
	case "down", "j":
		if m.focus == focusSeats {
			m.moveCursor(1, 0)
			return m, nil
		}
	case "left", "h":
		if m.focus == focusSeats {
			m.moveCursor(0, -1)
			return m, nil
		}
	case "right", "l":
		if m.focus == focusSeats {
			m.moveCursor(0, 1)
			return m, nil
		}
	case "enter", " ":
		if m.focus == focusSeats {
			m.toggleSeatAtCursor()
			return m, nil
		}
		return m, m.adjustConcession(1)
	case "+", "=":
		if m.focus == focusConcessions {
			return m, m.adjustConcession(1)
		}
	case "-", "_":
		if m.focus == focusConcessions {
			return m, m.adjustConcession(-1)
		}
	case "n":
		if m.focus == focusSeats {
			m.showSeatNumbers = !m.showSeatNumbers
			return m, nil
		}
	case "p":
		m.editing = editPromo
		m.promoInput.SetValue(m.draft.PromoCode)
		m.promoInput.Focus()
		return m, textinput.Blink
	case "b":
		m.draft.UseBonuses = !m.draft.UseBonuses
		m.statusMsg = ""
		m.recompute()
		return m, nil
	case "a":
		if !m.draft.UseBonuses {
			m.statusMsg = "Enable bonuses first (press b)."
			return m, nil
		}
		m.editing = editBonus
		m.bonusInput.SetValue(strconv.FormatFloat(m.draft.BonusAmount, 'f', -1, 64))
		m.bonusInput.Focus()
		return m, textinput.Blink
	case "s":
		return m.submit()
	}

	if m.focus == focusConcessions {
		var cmd tea.Cmd
		m.concessionList, cmd = m.concessionList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.editing == editPromo {
			m.draft.PromoCode = strings.TrimSpace(m.promoInput.Value())
		} else {
			m.applyBonusInput()
		}
		m.editing = editNone
		m.promoInput.Blur()
		m.bonusInput.Blur()
		m.statusMsg = ""
		m.recompute()
		return m, nil
	case tea.KeyEsc:
		m.editing = editNone
		m.promoInput.Blur()
		m.bonusInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	if m.editing == editPromo {
		m.promoInput, cmd = m.promoInput.Update(msg)
	} else {
		m.bonusInput, cmd = m.bonusInput.Update(msg)
	}
	return m, cmd
}

// applyBonusInput clamps whatever the user typed into [0, min(balance,
// subtotal)]. Unparseable input leaves the previous amount in place.
func (m *appModel) applyBonusInput() {
	raw := strings.TrimSpace(m.bonusInput.Value())
	if raw == "" {
		m.draft.BonusAmount = 0
		return
	}
	entered, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return
	}
	subtotal := model.ComputeTotals(m.session.BasePrice, len(m.draft.Seats), m.draft.Concessions, m.catalog, false, 0).Total
	m.draft.BonusAmount = model.ClampBonus(entered, m.auth.BonusBalance(), subtotal)
}

// recompute reprices the draft. The bonus actually applied is re-clamped on
// every call because seat and concession changes move the subtotal.
func (m *appModel) recompute() {
	base := m.session.BasePrice
	seatCount := len(m.draft.Seats)
	result := model.ComputeTotals(base, seatCount, m.draft.Concessions, m.catalog, false, 0)
	m.effectiveBonus = 0
	if m.draft.UseBonuses {
		m.effectiveBonus = model.ClampBonus(m.draft.BonusAmount, m.auth.BonusBalance(), result.Total)
		result = model.ComputeTotals(base, seatCount, m.draft.Concessions, m.catalog, true, m.effectiveBonus)
	}
	m.pricing = result
}

func (m *appModel) toggleSeatAtCursor() {
	seat, ok := m.seatAtCursor()
	if !ok {
		return
	}
	m.draft.Seats.Toggle(seat)
	m.statusMsg = ""
	m.recompute()
}

func (m appModel) submit() (tea.Model, tea.Cmd) {
	if m.state != stateReady {
		return m, nil
	}
	if !m.auth.Authenticated() {
		m.state = stateLoginRedirect
		return m, m.navigateCmd(RouteLogin)
	}
	if len(m.draft.Seats) == 0 {
		m.statusMsg = "Select at least one seat to continue."
		return m, nil
	}
	m.state = stateSubmitting
	m.statusMsg = ""
	m.notice = ""
	return m, tea.Batch(m.submitBookingCmd(), m.spinner.Tick)
}

func (m appModel) fetchSessionCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		session, err := m.backend.GetSession(ctx, m.sessionID)
		if err == nil {
			_ = store.RememberSession(session)
		}
		return sessionMsg{session: session, err: err}
	}
}

func (m appModel) fetchSeatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		seats, err := m.backend.GetSessionSeats(ctx, m.sessionID)
		return seatsMsg{seats: seats, err: err}
	}
}

func (m appModel) fetchConcessionsCmd() tea.Cmd {
	return func() tea.Msg {
		if cached, fresh, err := store.LoadConcessionCache(0); err == nil && fresh && len(cached) > 0 {
			return concessionsMsg{items: cached}
		}
		ctx := context.Background()
		items, err := m.backend.GetConcessions(ctx, 0)
		if err == nil && len(items) > 0 {
			_ = store.SaveConcessionCache(0, items)
		}
		return concessionsMsg{items: items, err: err}
	}
}

func (m appModel) submitBookingCmd() tea.Cmd {
	req := m.draft.BookingRequest(m.effectiveBonus)
	return func() tea.Msg {
		ctx := context.Background()
		booking, err := m.backend.CreateBooking(ctx, req)
		return bookingMsg{booking: booking, err: err}
	}
}

func (m appModel) submitPaymentCmd(booking model.Booking) tea.Cmd {
	amount := m.pricing.Total
	return func() tea.Msg {
		ctx := context.Background()
		payment, err := m.backend.CreatePayment(ctx, booking.Id, model.PaymentRequest{
			Amount:        amount,
			PaymentMethod: model.PaymentMethodCard,
		})
		return paymentMsg{booking: booking, payment: payment, err: err}
	}
}

func (m appModel) navigateCmd(route string) tea.Cmd {
	return func() tea.Msg {
		_ = m.nav.GoTo(route)
		return nil
	}
}

func (m *appModel) resizePanels() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 12
	if h < 6 {
		h = 6
	}
	m.concessionList.SetSize(m.width, h)
}

func errorMessage(err error, fallback string) string {
	if detail := service.ErrorDetail(err); detail != "" {
		return detail
	}
	return fallback
}
