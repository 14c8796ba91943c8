package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cinema-checkout-cli/model"
)

type concessionItem struct {
	item model.Concession
	qty  int
}

func (c concessionItem) Title() string {
	if c.qty > 0 {
		return fmt.Sprintf("%s ×%d", c.item.Name, c.qty)
	}
	return c.item.Name
}

func (c concessionItem) Description() string {
	if c.qty > 0 {
		return fmt.Sprintf("%s each • %s in order", formatAmount(c.item.Price), formatAmount(c.item.Price*float64(c.qty)))
	}
	return formatAmount(c.item.Price)
}

func (c concessionItem) FilterValue() string {
	return strings.ToLower(c.item.Name)
}

func newConcessionList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Concessions"
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func (m *appModel) refreshConcessionList() {
	items := make([]list.Item, 0, len(m.catalog))
	for _, item := range m.catalog {
		items = append(items, concessionItem{item: item, qty: m.draft.Concessions.Quantity(item.Id)})
	}
	m.concessionList.SetItems(items)
}

// adjustConcession changes the quantity of the highlighted catalog item and
// rewrites its list entry in place.
func (m *appModel) adjustConcession(delta int) tea.Cmd {
	item, ok := m.concessionList.SelectedItem().(concessionItem)
	if !ok {
		return nil
	}
	m.draft.Concessions.Adjust(item.item.Id, delta)
	m.statusMsg = ""
	m.recompute()

	updated := concessionItem{item: item.item, qty: m.draft.Concessions.Quantity(item.item.Id)}
	return m.concessionList.SetItem(m.concessionList.Index(), updated)
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
