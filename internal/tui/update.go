package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"quadmap/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2) // provisional; refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					m.status = "paste: empty"
					return m, nil
				}
				pts, err := geom.ParseWKT(w)
				if err != nil {
					m.status = "wkt error: " + err.Error()
					return m, nil
				}
				m.selPath = ""
				m.setPoints(pts)
				m.status = fmt.Sprintf("indexed WKT  pts=%d dropped=%d", m.accepted, m.dropped)
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showOutlines = !m.showOutlines
			m.status = fmt.Sprintf("outlines: %v", m.showOutlines)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(28-2, m.height-1-2)
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "c":
			if m.capacity > 1 {
				m.capacity--
				m.rebuildTree()
				m.status = fmt.Sprintf("capacity: %d (rebuilt)", m.capacity)
			}
		case "C":
			m.capacity++
			m.rebuildTree()
			m.status = fmt.Sprintf("capacity: %d (rebuilt)", m.capacity)
		case "s":
			if m.tree == nil {
				m.status = "no index loaded"
				break
			}
			if m.queryActive {
				m.clearQuery()
				m.status = "query off"
				break
			}
			cx, cy := m.bounds.X, m.bounds.Y
			if m.hoverHasXY {
				cx, cy = m.hoverX, m.hoverY
			}
			m.queryActive = true
			m.query = geom.Rect{X: cx, Y: cy, W: m.bounds.W / 4, H: m.bounds.H / 4}
			m.runQuery()
			m.status = fmt.Sprintf("query: %d hit(s)", len(m.found))
		case "[":
			if m.queryActive {
				m.query.W *= 0.8
				m.query.H *= 0.8
				m.runQuery()
				m.status = fmt.Sprintf("query: %d hit(s)", len(m.found))
			}
		case "]":
			if m.queryActive {
				m.query.W *= 1.25
				m.query.H *= 1.25
				m.runQuery()
				m.status = fmt.Sprintf("query: %d hit(s)", len(m.found))
			}
		case "x", "esc":
			if m.queryActive {
				m.clearQuery()
				m.status = "query cleared"
			}
		case "a":
			if !m.queryActive {
				m.status = "no query to tabulate (press s)"
				break
			}
			m.showHits = !m.showHits
			if m.showHits {
				m.refreshHitsTable()
			}
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				break
			}
			m.inspectPopup = m.inspectNode()
			if m.inspectPopup == "" {
				m.status = "nothing to inspect"
			} else {
				m.status = "inspect popup (i to close)"
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		// track hover over map area; layout math must match View
		sidebarWidth := 0
		if m.showSidebar {
			sidebarWidth = 28
		}
		headerHeight := 1
		footerHeight := 2
		contentHeight := m.height - headerHeight - footerHeight
		if contentHeight < 4 {
			contentHeight = 4
		}
		contentWidth := max(10, m.width)

		if m.showSidebar {
			m.l.SetSize(28-2, contentHeight-2)
		}

		mapWidth := contentWidth - sidebarWidth - 1
		if mapWidth < 10 {
			mapWidth = 10
		}
		mapHeight := contentHeight
		mapOriginX := sidebarWidth
		if m.showSidebar {
			mapOriginX++
		}
		mapOriginY := headerHeight
		cx, cy := msg.X, msg.Y
		if cx >= mapOriginX && cx < mapOriginX+mapWidth && cy >= mapOriginY && cy < mapOriginY+mapHeight {
			m.hovering = true
			m.hoverCellX = cx - mapOriginX
			m.hoverCellY = cy - mapOriginY
			if x, y, ok := m.cellToXY(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight); ok {
				m.hoverHasXY = true
				m.hoverX = x
				m.hoverY = y
				// the query rectangle follows the cursor
				if m.queryActive {
					m.query.X = x
					m.query.Y = y
					m.runQuery()
				}
			} else {
				m.hoverHasXY = false
			}
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showHits {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

// inspectNode describes the deepest tree node containing the cursor (or
// the boundary center when the mouse is elsewhere).
func (m *Model) inspectNode() string {
	if m.tree == nil {
		return ""
	}
	x, y := m.bounds.X, m.bounds.Y
	if m.hoverHasXY {
		x, y = m.hoverX, m.hoverY
	}
	node := m.tree.Leaf(geom.Point{X: x, Y: y})
	if node == nil {
		return "cursor outside the index boundary"
	}
	b := node.Boundary()
	lines := []string{
		fmt.Sprintf("node: center=(%.5g, %.5g) half=(%.5g, %.5g)", b.X, b.Y, b.W, b.H),
		fmt.Sprintf("held here: %d / cap %d", len(node.Points()), node.Capacity()),
		fmt.Sprintf("divided: %v", node.Divided()),
		fmt.Sprintf("subtree points: %d", node.Len()),
	}
	for _, p := range node.Points() {
		label := p.Label
		if label == "" {
			label = "-"
		}
		lines = append(lines, fmt.Sprintf("  %s (%.5g, %.5g)", label, p.X, p.Y))
	}
	return strings.Join(lines, "\n")
}
