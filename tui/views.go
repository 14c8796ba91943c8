package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoading, stateSubmitting:
		return header + "\n\n" + m.loadingView()
	case stateLoadError:
		body := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("Could not load the checkout: " + m.err.Error())
		return header + "\n\n" + body + "\n\n" + hint("Relaunch to retry. Press esc or ctrl+c to quit.")
	case stateLoginRedirect:
		return header + "\n\n" + "Sign in required. Opening the login page in your browser." +
			"\n\n" + hint("Sign in, then relaunch the checkout. Press enter to quit.")
	case stateCompleted:
		return header + "\n\n" + m.completedView()
	case stateReady:
		return header + "\n\n" + m.readyView()
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Cinema Checkout")

	sub := []string{}
	if m.session.Film.Title != "" {
		sub = append(sub, m.session.Film.Title)
	}
	if m.session.Hall.Cinema.Name != "" {
		sub = append(sub, m.session.Hall.Cinema.Name)
	}
	if m.session.Hall.Name != "" {
		sub = append(sub, m.session.Hall.Name)
	}
	if !m.session.StartTime.IsZero() {
		sub = append(sub, m.session.StartTime.Format("Mon 02 Jan 15:04"))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit"
	switch {
	case m.editing == editPromo:
		hints = "enter apply promo code • esc cancel"
	case m.editing == editBonus:
		hints = "enter apply amount • esc cancel"
	case m.state == stateReady && m.focus == focusSeats:
		hints = "ctrl+c quit • tab concessions • arrows move • enter toggle seat • n numbers • p promo • b bonuses • a amount • s pay"
	case m.state == stateReady && m.focus == focusConcessions:
		hints = "ctrl+c quit • tab seat map • arrows move • +/- quantity • p promo • b bonuses • a amount • s pay"
	}

	return title + meta + "\n" + hint(hints)
}

func (m appModel) loadingView() string {
	title := "Loading checkout"
	if m.state == stateSubmitting {
		title = "Processing your order"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Talking to the cinema..."))
}

func (m appModel) readyView() string {
	var pane string
	if m.focus == focusSeats {
		pane = m.renderSeatMap()
	} else {
		pane = m.concessionList.View()
	}
	return pane + "\n\n" + m.summaryView()
}

func (m appModel) summaryView() string {
	seatCount := len(m.draft.Seats)

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Order"),
		fmt.Sprintf("Tickets: %d × %s = %s", seatCount, formatAmount(m.session.BasePrice), formatAmount(m.pricing.TicketsTotal)),
		fmt.Sprintf("Concessions: %s", formatAmount(m.pricing.ConcessionsTotal)),
	}

	promo := m.draft.PromoCode
	if m.editing == editPromo {
		lines = append(lines, "Promo: "+m.promoInput.View())
	} else if promo != "" {
		lines = append(lines, fmt.Sprintf("Promo: %s %s", promo, hint("(validated at checkout)")))
	}

	if m.draft.UseBonuses {
		if m.editing == editBonus {
			lines = append(lines, "Bonuses: "+m.bonusInput.View())
		} else {
			lines = append(lines, fmt.Sprintf("Bonuses: −%s %s", formatAmount(m.effectiveBonus),
				hint(fmt.Sprintf("(balance %s)", formatAmount(m.auth.BonusBalance())))))
		}
	}

	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Total: "+formatAmount(m.pricing.Total)))

	if m.notice != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(m.notice))
	}
	if m.statusMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.statusMsg))
	}

	return strings.Join(lines, "\n")
}

func (m appModel) completedView() string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render("Payment confirmed"),
		fmt.Sprintf("Booking #%d • %s", m.lastBooking.Id, formatAmount(m.pricing.Total)),
		"",
		hint("Opening your tickets in the browser. Press enter to quit."),
	}
	return strings.Join(lines, "\n")
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}
