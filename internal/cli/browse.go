package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	duerr "github.com/Koranir/dumap/pkg/errors"
	"github.com/Koranir/dumap/pkg/render"
	"github.com/Koranir/dumap/pkg/scan"
	"github.com/Koranir/dumap/pkg/treemap"
)

// browseCommand creates the browse command for interactive exploration.
func (c *CLI) browseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Explore disk usage interactively in the terminal",
		Long: `Explore disk usage interactively in the terminal.

Keys:
  arrows / hjkl   move between tiles
  enter           descend into the selected directory
  backspace, esc  go back up
  r               rescan
  q               quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(args[0])
		},
	}

	return cmd
}

func (c *CLI) runBrowse(root string) error {
	if err := duerr.ValidateScanRoot(root); err != nil {
		return err
	}

	m := newBrowseModel(root)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if bm, ok := final.(browseModel); ok && bm.err != nil {
		return bm.err
	}
	return nil
}

// =============================================================================
// Model
// =============================================================================

// browseBlock is one tile of the character treemap.
type browseBlock struct {
	node *scan.Node // nil for the aggregate tile
	dir  *scan.Node // directory the tile belongs to
	size int64
	x, y int
	w, h int
}

type scanDoneMsg struct {
	node *scan.Node
	err  error
}

// browseModel is the bubbletea model for the interactive treemap.
type browseModel struct {
	root string

	sp       spinner.Model
	scanning bool
	err      error

	tree   *scan.Node
	stack  []*scan.Node // focus path, last element is the focused dir
	blocks []browseBlock
	sel    int

	pal    *render.Palette
	width  int
	height int
}

func newBrowseModel(root string) browseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleIconSpinner

	return browseModel{
		root:     root,
		sp:       sp,
		scanning: true,
		pal:      render.NewPalette(),
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, scanTree(m.root))
}

func scanTree(root string) tea.Cmd {
	return func() tea.Msg {
		node, err := scan.Scan(root, scan.Options{})
		return scanDoneMsg{node: node, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.tree = msg.node
		m.stack = []*scan.Node{m.tree}
		m.layout()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.moveTo(-1, 0)
		case "right", "l":
			m.moveTo(1, 0)
		case "up", "k":
			m.moveTo(0, -1)
		case "down", "j":
			m.moveTo(0, 1)
		case "enter":
			m.zoomIn()
		case "backspace", "esc":
			m.zoomOut()
		case "r":
			if !m.scanning {
				m.scanning = true
				return m, tea.Batch(m.sp.Tick, scanTree(m.root))
			}
		}
		return m, nil
	}

	return m, nil
}

// =============================================================================
// Navigation
// =============================================================================

func (m *browseModel) focused() *scan.Node {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *browseModel) zoomIn() {
	if m.sel < 0 || m.sel >= len(m.blocks) {
		return
	}
	n := m.blocks[m.sel].node
	if n == nil || !n.IsDir() || len(n.Children) == 0 {
		return
	}
	m.stack = append(m.stack, n)
	m.layout()
}

func (m *browseModel) zoomOut() {
	if len(m.stack) < 2 {
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.layout()
}

// moveTo moves the selection to the nearest tile in the given direction,
// comparing tile centers.
func (m *browseModel) moveTo(dx, dy int) {
	if len(m.blocks) == 0 {
		return
	}
	if m.sel < 0 || m.sel >= len(m.blocks) {
		m.sel = 0
		return
	}

	cur := m.blocks[m.sel]
	cx := cur.x + cur.w/2
	cy := cur.y + cur.h/2

	best := -1
	bestDist := -1
	for i, b := range m.blocks {
		if i == m.sel {
			continue
		}
		bx := b.x + b.w/2
		by := b.y + b.h/2

		if dx > 0 && bx <= cx {
			continue
		}
		if dx < 0 && bx >= cx {
			continue
		}
		if dy > 0 && by <= cy {
			continue
		}
		if dy < 0 && by >= cy {
			continue
		}

		dist := abs(bx-cx) + abs(by-cy)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = i
		}
	}

	if best >= 0 {
		m.sel = best
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// =============================================================================
// Layout
// =============================================================================

// layout tiles the focused directory's children into the content area.
// One header row and one footer row stay reserved for status lines.
func (m *browseModel) layout() {
	m.blocks = nil

	dir := m.focused()
	contentW, contentH := m.contentSize()
	if dir == nil || contentW < 2 || contentH < 2 {
		return
	}

	elems := treemap.Partition(dir, float64(contentW), float64(contentH), 4)
	rects := treemap.Squarify(elems, treemap.Rect{W: float64(contentW), H: float64(contentH)})

	for i, e := range elems {
		r := rects[i]
		b := browseBlock{
			node: e.Node,
			dir:  dir,
			size: e.Weight,
			x:    int(math.Round(r.X)),
			y:    int(math.Round(r.Y)),
			w:    int(math.Round(r.X+r.W)) - int(math.Round(r.X)),
			h:    int(math.Round(r.Y+r.H)) - int(math.Round(r.Y)),
		}
		if b.w < 1 || b.h < 1 {
			continue
		}
		m.blocks = append(m.blocks, b)
	}

	if m.sel >= len(m.blocks) {
		m.sel = 0
	}
}

func (m *browseModel) contentSize() (int, int) {
	return m.width, m.height - 2
}

// =============================================================================
// View
// =============================================================================

func (m browseModel) View() string {
	if m.err != nil {
		return ""
	}
	if m.scanning || m.tree == nil {
		return "\n  " + m.sp.View() + StyleDim.Render(" scanning "+m.root+"...")
	}

	contentW, contentH := m.contentSize()
	if contentW < 2 || contentH < 2 {
		return StyleDim.Render("window too small")
	}

	grid := make([][]rune, contentH)
	styles := make([][]lipgloss.Style, contentH)
	for y := range grid {
		grid[y] = make([]rune, contentW)
		styles[y] = make([]lipgloss.Style, contentW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for i, b := range m.blocks {
		m.drawBlock(grid, styles, b, i == m.sel, contentW, contentH)
	}

	var sb strings.Builder
	sb.WriteString(m.headerLine())
	sb.WriteString("\n")
	for y := 0; y < contentH; y++ {
		for x := 0; x < contentW; x++ {
			sb.WriteString(styles[y][x].Render(string(grid[y][x])))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.footerLine())

	return sb.String()
}

func (m browseModel) headerLine() string {
	dir := m.focused()
	title := fmt.Sprintf("%s  %s", dir.Path, humanize.IBytes(uint64(dir.Size)))
	return " " + StyleTitle.Render(title)
}

func (m browseModel) footerLine() string {
	help := "hjkl move · enter open · esc back · r rescan · q quit"
	if m.sel >= 0 && m.sel < len(m.blocks) {
		b := m.blocks[m.sel]
		sel := blockLabel(b)
		size := blockSize(b)
		return " " + StyleHighlight.Render(sel) + StyleDim.Render("  "+humanize.IBytes(uint64(size))+"  ·  "+help)
	}
	return " " + StyleDim.Render(help)
}

func blockLabel(b browseBlock) string {
	if b.node == nil {
		return "<files>"
	}
	return b.node.Name()
}

func blockSize(b browseBlock) int64 {
	return b.size
}

// drawBlock paints one tile onto the grid with a border and, when the
// tile is large enough, a name and size label.
func (m browseModel) drawBlock(grid [][]rune, styles [][]lipgloss.Style, b browseBlock, selected bool, gridW, gridH int) {
	bg := lipgloss.Color(m.pal.For(treemap.Box{Node: b.node, Dir: b.dir}).Hex())
	fg := lipgloss.Color("255")

	blockStyle := lipgloss.NewStyle().Background(bg).Foreground(fg)
	borderStyle := lipgloss.NewStyle().Background(bg).Foreground(colorDim)
	if selected {
		blockStyle = blockStyle.Bold(true).Foreground(colorCyan)
		borderStyle = borderStyle.Foreground(colorCyan)
	}

	x1 := min(b.x+b.w, gridW)
	y1 := min(b.y+b.h, gridH)

	for y := b.y; y < y1; y++ {
		for x := b.x; x < x1; x++ {
			grid[y][x] = ' '
			styles[y][x] = blockStyle
		}
	}

	// Border, drawn only when the tile spans more than one cell each way.
	if b.w > 1 && b.h > 1 {
		for x := b.x; x < x1; x++ {
			grid[b.y][x] = '─'
			styles[b.y][x] = borderStyle
			grid[y1-1][x] = '─'
			styles[y1-1][x] = borderStyle
		}
		for y := b.y; y < y1; y++ {
			grid[y][b.x] = '│'
			styles[y][b.x] = borderStyle
			grid[y][x1-1] = '│'
			styles[y][x1-1] = borderStyle
		}
		grid[b.y][b.x] = '┌'
		grid[b.y][x1-1] = '┐'
		grid[y1-1][b.x] = '└'
		grid[y1-1][x1-1] = '┘'
	}

	if b.w > 4 && b.h > 2 {
		writeLabel(grid, styles, blockLabel(b), b.x+2, b.y+1, x1-2, blockStyle)
		if b.h > 3 {
			writeLabel(grid, styles, humanize.IBytes(uint64(blockSize(b))), b.x+2, b.y+2, x1-2, blockStyle)
		}
	}
}

func writeLabel(grid [][]rune, styles [][]lipgloss.Style, label string, x, y, maxX int, style lipgloss.Style) {
	if y >= len(grid) {
		return
	}
	for i, ch := range label {
		cx := x + i
		if cx >= maxX || cx >= len(grid[y]) {
			return
		}
		grid[y][cx] = ch
		styles[y][cx] = style
	}
}
