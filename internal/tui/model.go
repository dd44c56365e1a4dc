// Package tui is the terminal explorer for the quadtree index. It owns no
// geometry logic: the canvas pulls node boundaries and stored points from
// the tree through its read-only accessors and draws them on a braille
// microgrid, the way the original system's renderer pulled outlines from
// the structure it displayed.
package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"quadmap/internal/geom"
	"quadmap/internal/quadtree"
)

// defaultCapacity matches the index's historical default node capacity.
const defaultCapacity = 4

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	// Data and index. points is the raw load order, kept so the tree can
	// be rebuilt from scratch when the capacity changes; everything drawn
	// on the canvas comes from the tree itself.
	points   []geom.Point
	bounds   geom.Rect
	tree     *quadtree.QuadTree
	capacity uint
	accepted int
	dropped  int

	// Range query
	queryActive bool
	query       geom.Rect
	found       []geom.Point

	// last rendered map size (for inspect and mouse math)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints   bool
	showOutlines bool

	// inspect popup
	inspectPopup string

	// query hits table
	showHits bool
	tbl      table.Model

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverHasXY bool
	hoverX     float64
	hoverY     float64
}

func New() Model {
	m := Model{
		showSidebar:  false,
		helpVisible:  true,
		zoom:         1.0,
		status:       "quadmap ready",
		capacity:     defaultCapacity,
		showPoints:   true,
		showOutlines: true,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, MULTIPOINT). Press Enter to index; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// query hits table (columns are fixed, rows follow the current query)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads and indexes a file's points at launch.
func NewWithPath(path string) Model {
	m := New()
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setPoints replaces the dataset and rebuilds the index over it.
func (m *Model) setPoints(pts []geom.Point) {
	m.points = pts
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.clearQuery()
	m.rebuildTree()
}

// rebuildTree constructs a fresh tree over the current points. The tree
// itself never changes capacity; adjusting it here means building a new
// root and re-inserting everything in load order.
func (m *Model) rebuildTree() {
	m.tree = nil
	m.accepted, m.dropped = 0, 0
	if len(m.points) == 0 {
		return
	}
	bounds, err := geom.Bounds(m.points)
	if err != nil {
		m.status = "bounds error: " + err.Error()
		return
	}
	tree, err := quadtree.NewQuadTree(bounds, m.capacity)
	if err != nil {
		m.status = "index error: " + err.Error()
		return
	}
	for _, p := range m.points {
		if tree.InsertPoint(p) {
			m.accepted++
		} else {
			m.dropped++
		}
	}
	m.bounds = bounds
	m.tree = tree
	m.runQuery()
}

// runQuery re-evaluates the active query rectangle against the tree. Each
// evaluation gets a fresh result slice from QueryRegion.
func (m *Model) runQuery() {
	if !m.queryActive || m.tree == nil {
		m.found = nil
		return
	}
	m.found = m.tree.QueryRegion(m.query)
	if m.showHits {
		m.refreshHitsTable()
	}
}

func (m *Model) clearQuery() {
	m.queryActive = false
	m.found = nil
	m.showHits = false
}
