package styles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/floatdock/internal/domain/entity"
)

const emptyCell = '.'

// DeskPanel is what the desk renderer needs to know about one panel.
type DeskPanel struct {
	ID       entity.PanelID
	Kind     entity.PanelKind
	Rect     entity.Rect
	Visible  bool
	Selected bool
	Dragging bool
}

// DeskGrid rasterizes the visible panels onto a cols x rows character grid
// covering area. Panels are drawn as boxes labelled with their id, later
// panels over earlier ones and the selected panel last.
func DeskGrid(area entity.Rect, panels []DeskPanel, cols, rows int) []string {
	cells, _ := rasterize(area, panels, cols, rows)
	out := make([]string, len(cells))
	for i, row := range cells {
		out[i] = string(row)
	}
	return out
}

// RenderDesk draws the desk with every panel colored by kind.
func (t *Theme) RenderDesk(area entity.Rect, panels []DeskPanel, cols, rows int) string {
	cells, owners := rasterize(area, panels, cols, rows)
	if len(cells) == 0 {
		return ""
	}

	empty := lipgloss.NewStyle().Foreground(t.Border)
	var sb strings.Builder
	for y, row := range cells {
		x := 0
		for x < len(row) {
			owner := owners[y][x]
			end := x
			for end < len(row) && owners[y][end] == owner {
				end++
			}
			style := empty
			if owner >= 0 {
				style = t.panelStyle(panels[owner])
			}
			sb.WriteString(style.Render(string(row[x:end])))
			x = end
		}
		if y < len(cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (t *Theme) panelStyle(p DeskPanel) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(t.KindColor(p.Kind))
	if p.Selected {
		s = s.Bold(true).Background(t.SurfaceVariant)
	}
	if p.Dragging {
		s = s.Foreground(t.Warning)
	}
	return s
}

func rasterize(area entity.Rect, panels []DeskPanel, cols, rows int) ([][]rune, [][]int) {
	if cols <= 0 || rows <= 0 || !area.HasArea() {
		return nil, nil
	}
	cells := make([][]rune, rows)
	owners := make([][]int, rows)
	for y := range rows {
		cells[y] = []rune(strings.Repeat(string(emptyCell), cols))
		owners[y] = make([]int, cols)
		for x := range owners[y] {
			owners[y][x] = -1
		}
	}

	sx := float64(cols) / area.Width
	sy := float64(rows) / area.Height

	order := make([]int, 0, len(panels))
	selected := -1
	for i, p := range panels {
		if !p.Visible || !p.Rect.HasArea() {
			continue
		}
		if p.Selected {
			selected = i
			continue
		}
		order = append(order, i)
	}
	if selected >= 0 {
		order = append(order, selected)
	}

	for _, i := range order {
		p := panels[i]
		x0 := clampCell(int(math.Floor((p.Rect.Left-area.Left)*sx)), cols)
		x1 := clampCell(int(math.Ceil((p.Rect.Right()-area.Left)*sx))-1, cols)
		y0 := clampCell(int(math.Floor((p.Rect.Top-area.Top)*sy)), rows)
		y1 := clampCell(int(math.Ceil((p.Rect.Bottom()-area.Top)*sy))-1, rows)
		if x1 < x0 || y1 < y0 {
			continue
		}

		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				cells[y][x] = boxRune(x, y, x0, x1, y0, y1)
				owners[y][x] = i
			}
		}

		label := []rune(string(p.ID))
		for j, r := range label {
			x := x0 + 1 + j
			if x >= x1 {
				break
			}
			cells[y0][x] = r
		}
	}
	return cells, owners
}

func boxRune(x, y, x0, x1, y0, y1 int) rune {
	edgeY := y == y0 || y == y1
	edgeX := x == x0 || x == x1
	switch {
	case edgeX && edgeY:
		return '+'
	case edgeY:
		return '-'
	case edgeX:
		return '|'
	default:
		return ' '
	}
}

func clampCell(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
