package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cinema-checkout-cli/model"
)

type seatRow struct {
	label string
	order int
	seats []model.Seat
}

// buildSeatRows groups seats by row and orders rows numerically, so row
// "10" lands after row "9" instead of after row "1". Rows with non-numeric
// labels sort after the numeric ones, by label. Seats within a row are
// ordered by seat number.
func buildSeatRows(seats []model.Seat) []seatRow {
	index := map[string]int{}
	var rows []seatRow
	for _, seat := range seats {
		key := strings.TrimSpace(seat.RowNumber)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, seatRow{label: key, order: rowOrder(key)})
		}
		rows[i].seats = append(rows[i].seats, seat)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].order != rows[j].order {
			return rows[i].order < rows[j].order
		}
		return rows[i].label < rows[j].label
	})
	for i := range rows {
		row := rows[i].seats
		sort.SliceStable(row, func(a, b int) bool { return row[a].SeatNumber < row[b].SeatNumber })
	}
	return rows
}

const nonNumericRowOrder = 1 << 30

func rowOrder(label string) int {
	if n, err := strconv.Atoi(label); err == nil {
		return n
	}
	return nonNumericRowOrder
}

func (m *appModel) moveCursor(dRow int, dCol int) {
	if len(m.rows) == 0 {
		return
	}
	r := m.cursorRow + dRow
	if r < 0 {
		r = 0
	}
	if r >= len(m.rows) {
		r = len(m.rows) - 1
	}
	m.cursorRow = r

	c := m.cursorCol + dCol
	if c < 0 {
		c = 0
	}
	if last := len(m.rows[r].seats) - 1; c > last {
		c = last
	}
	m.cursorCol = c
}

func (m *appModel) snapCursor() {
	m.moveCursor(0, 0)
}

func (m appModel) seatAtCursor() (model.Seat, bool) {
	if m.cursorRow < 0 || m.cursorRow >= len(m.rows) {
		return model.Seat{}, false
	}
	row := m.rows[m.cursorRow]
	if m.cursorCol < 0 || m.cursorCol >= len(row.seats) {
		return model.Seat{}, false
	}
	return row.seats[m.cursorCol], true
}

func seatToken(state model.SeatState) string {
	switch state {
	case model.SeatStateAisle:
		return "  "
	case model.SeatStateSelected:
		return "()"
	case model.SeatStatePaid:
		return "XX"
	case model.SeatStateReserved:
		return "##"
	default:
		return "[]"
	}
}

func (m appModel) renderSeatMap() string {
	if len(m.rows) == 0 {
		return "No seats in this hall."
	}

	rowWidth := 2
	for _, row := range m.rows {
		if len(row.label) > rowWidth {
			rowWidth = len(row.label)
		}
	}

	cellWidth := 2
	if m.showSeatNumbers {
		for _, row := range m.rows {
			for _, seat := range row.seats {
				if l := len(strconv.Itoa(seat.SeatNumber)); l > cellWidth {
					cellWidth = l
				}
			}
		}
	}

	styleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	styleReserved := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	stylePaid := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleCursor := lipgloss.NewStyle().Reverse(true)

	maxCols := 0
	for _, row := range m.rows {
		if len(row.seats) > maxCols {
			maxCols = len(row.seats)
		}
	}
	gridWidth := maxCols*(cellWidth+1) - 1

	var b strings.Builder

	screen := screenBarBlock(gridWidth, "SCREEN")
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	indent := strings.Repeat(" ", rowWidth+1)
	b.WriteString(indent + screenBorderStyle.Render(screen.top) + "\n")
	b.WriteString(indent + screenStyle.Render(screen.mid) + "\n")
	b.WriteString(indent + screenBorderStyle.Render(screen.bot) + "\n\n")

	var available, selected, reserved, paid, total int

	for r, row := range m.rows {
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, row.label))
		for c, seat := range row.seats {
			state := model.Classify(seat, m.draft.Seats)
			switch state {
			case model.SeatStateAvailable:
				available++
				total++
			case model.SeatStateSelected:
				selected++
				total++
			case model.SeatStateReserved:
				reserved++
				total++
			case model.SeatStatePaid:
				paid++
				total++
			}

			text := seatToken(state)
			if m.showSeatNumbers && state != model.SeatStateAisle {
				text = strconv.Itoa(seat.SeatNumber)
			}
			rendered := padCell(text, cellWidth)
			switch state {
			case model.SeatStateAvailable:
				rendered = styleAvailable.Render(rendered)
			case model.SeatStateSelected:
				rendered = styleSelected.Render(rendered)
			case model.SeatStateReserved:
				rendered = styleReserved.Render(rendered)
			case model.SeatStatePaid:
				rendered = stylePaid.Render(rendered)
			}
			if m.focus == focusSeats && r == m.cursorRow && c == m.cursorCol {
				rendered = styleCursor.Render(padCell(text, cellWidth))
			}
			b.WriteString(rendered)
			if c < len(row.seats)-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString(fmt.Sprintf(" %*s\n", rowWidth, row.label))
	}

	legend := "Legend: [] available • () selected • ## reserved • XX paid"
	if m.showSeatNumbers {
		legend = "Legend: color shows status • numbers are seat labels"
	}
	counts := fmt.Sprintf("Available: %d • Selected: %d • Reserved: %d • Paid: %d • Total: %d",
		available, selected, reserved, paid, total)
	return b.String() + "\n" + hint(legend) + "\n" + hint(counts)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
