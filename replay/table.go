package replay

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/OpticalFlyer/teeforge/placement"
	"github.com/OpticalFlyer/teeforge/proj"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	hiddenStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Headers are the columns of the placement table.
var Headers = []string{"", "Element", "X", "Y", "W", "H", "Rotation", "Pixels"}

// Rows reports one row per stored element, in element order. The first
// column marks the active element; hidden elements say so in the Pixels
// column.
func (p *Player) Rows() [][]string {
	c := p.Controller
	active, hasActive := c.Active()

	var rows [][]string
	for _, k := range placement.Kinds {
		e, ok := c.Store().Get(k)
		if !ok {
			continue
		}
		mark := ""
		if hasActive && active == k {
			mark = "*"
		}
		h := "auto"
		if e.Rect.H != nil {
			h = fmt.Sprintf("%.4f", *e.Rect.H)
		}
		px := "hidden"
		if r, ok := c.PixelRect(k); ok && c.Visible(k) {
			px = fmt.Sprintf("%.0fx%.0f @ %.0f,%.0f", r.Width, r.Height, r.X, r.Y)
		}
		rows = append(rows, []string{
			mark,
			k.String(),
			fmt.Sprintf("%.4f", e.Rect.X),
			fmt.Sprintf("%.4f", e.Rect.Y),
			fmt.Sprintf("%.4f", e.Rect.W),
			h,
			fmt.Sprintf("%.0f°", proj.NormalizeDegrees(e.RotationDeg)),
			px,
		})
	}
	return rows
}

// Render writes the placement table followed by the controller state.
func (p *Player) Render(w io.Writer) error {
	rows := p.Rows()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if rows[row][0] == "*" {
				return activeStyle
			}
			if rows[row][7] == "hidden" {
				return hiddenStyle
			}
			return lipgloss.NewStyle()
		})

	d := p.Controller.Dimensions()
	_, err := fmt.Fprintf(w, "%s\ncontainer %.0fx%.0f, grid %.0f, %s\n",
		t, d.Width, d.Height, p.Controller.Grid(), p.Controller.State().Gesture)
	return err
}
