// Package canvas is the terminal host for editors: an immediate-mode
// implementation of editor.Surface on top of bubbletea.
//
// Each Frame runs one full draw pass. Controls register in draw order and
// are focused by index, so focus survives passes as long as the document
// keeps its shape. The message that triggered the frame is delivered to
// the focused control while it is being drawn, and whatever the control
// returns (a new popup index, a parsed value written through the field)
// takes effect in the same pass.
package canvas

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"

	"github.com/zjrosen/polyslot/internal/editor"
	"github.com/zjrosen/polyslot/internal/keys"
	"github.com/zjrosen/polyslot/internal/layout"
	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/ui/dropdown"
	"github.com/zjrosen/polyslot/internal/ui/overlay"
	"github.com/zjrosen/polyslot/internal/ui/styles"
)

var _ editor.Surface = (*Canvas)(nil)

// Drawer takes over drawing for field types it matches.
type Drawer interface {
	Match(t reflect.Type) bool
	editor.Editor
}

// DrawFunc draws a document onto the surface for one pass.
type DrawFunc func(s editor.Surface, area layout.Rect)

// Config controls layout.
type Config struct {
	// IndentWidth is the number of columns per indent level.
	IndentWidth int
	// LabelWidth is the column at which values start at indent zero.
	LabelWidth int
}

// DefaultConfig returns the default layout.
func DefaultConfig() Config {
	return Config{IndentWidth: 2, LabelWidth: 18}
}

type controlKind int

const (
	kindPopup controlKind = iota
	kindText
	kindToggle
)

type control struct {
	id     string
	kind   controlKind
	area   layout.Rect
	label  string
	path   string
	action *action
}

type action struct {
	label string
	link  string
	fn    func()
}

type commit struct {
	control int
	index   int
}

// activate is delivered to a control clicked with the mouse.
type activate struct{}

// Canvas implements editor.Surface for the terminal.
type Canvas struct {
	cfg     Config
	keys    keys.KeyMap
	drawers []Drawer

	width  int
	height int
	offset int

	focus    int
	controls []control

	input   textinput.Model
	editing string

	drop    *dropdown.Model
	dropFor int
	dropAt  layout.Rect
	commit  *commit

	// per pass
	pending tea.Msg
	rows    []string
	indent  int

	err  error
	view string
}

// New returns a canvas. Drawers are consulted in order for every field.
func New(cfg Config, km keys.KeyMap, drawers ...Drawer) *Canvas {
	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = DefaultConfig().IndentWidth
	}
	if cfg.LabelWidth <= 0 {
		cfg.LabelWidth = DefaultConfig().LabelWidth
	}
	ti := textinput.New()
	ti.Prompt = ""
	return &Canvas{
		cfg:     cfg,
		keys:    km,
		drawers: drawers,
		width:   80,
		input:   ti,
	}
}

// SetSize sets the viewport. A height of zero disables scrolling.
func (c *Canvas) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Frame routes msg and runs one draw pass.
func (c *Canvas) Frame(msg tea.Msg, draw DrawFunc) {
	c.pending = c.route(msg)
	c.pass(draw)
}

// View returns the output of the last pass.
func (c *Canvas) View() string { return c.view }

// Capturing reports whether keys currently go to a text input or an open
// dropdown, so the host should not treat them as shortcuts.
func (c *Canvas) Capturing() bool { return c.editing != "" || c.drop != nil }

// Editing reports whether a text field is being edited.
func (c *Canvas) Editing() bool { return c.editing != "" }

// DropdownOpen reports whether a popup's option list is showing.
func (c *Canvas) DropdownOpen() bool { return c.drop != nil }

// Controls is the number of focusable controls drawn in the last pass.
func (c *Canvas) Controls() int { return len(c.controls) }

// Focus is the index of the focused control.
func (c *Canvas) Focus() int { return c.focus }

// SetFocus focuses control i of the next pass.
func (c *Canvas) SetFocus(i int) {
	c.focus = max(i, 0)
	c.editing = ""
}

// Focused describes the focused control: its field path, or the popup
// label for choosers.
func (c *Canvas) Focused() string {
	if c.focus < len(c.controls) {
		ctl := c.controls[c.focus]
		if ctl.path != "" {
			return ctl.path
		}
		return ctl.label
	}
	return ""
}

// Err is the last error writing an edited value, cleared by the next
// successful write.
func (c *Canvas) Err() error { return c.err }

func (c *Canvas) route(msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.SetSize(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		if c.drop != nil {
			c.routeDropdown(msg)
			return nil
		}
		if c.editing != "" {
			return msg
		}
		switch {
		case key.Matches(msg, c.keys.Down):
			c.moveFocus(1)
			return nil
		case key.Matches(msg, c.keys.Up):
			c.moveFocus(-1)
			return nil
		}
		return msg

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		for i, ctl := range c.controls {
			if z := zone.Get(ctl.id); z != nil && z.InBounds(msg) {
				c.drop = nil
				c.SetFocus(i)
				return activate{}
			}
		}
		return nil
	}
	return msg
}

func (c *Canvas) routeDropdown(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, c.keys.Enter):
		c.commit = &commit{control: c.dropFor, index: c.drop.Selected()}
		c.drop = nil
	case key.Matches(msg, c.keys.Escape):
		c.drop = nil
	default:
		d, _ := c.drop.Update(msg)
		c.drop = &d
	}
}

func (c *Canvas) moveFocus(delta int) {
	if len(c.controls) == 0 {
		return
	}
	c.focus = (c.focus + delta + len(c.controls)) % len(c.controls)
}

func (c *Canvas) pass(draw DrawFunc) {
	c.rows = c.rows[:0]
	c.controls = c.controls[:0]
	c.indent = 0

	draw(c, layout.Rect{W: c.width, H: max(c.height-1, 1)})

	if c.focus >= len(c.controls) {
		c.focus = max(len(c.controls)-1, 0)
	}
	if c.editing != "" && c.Focused() != c.editing {
		c.stopEditing()
	}
	if c.pending != nil {
		log.Debug(log.CatUI, "message not handled by any control", "msg", fmt.Sprintf("%T", c.pending))
	}
	c.pending = nil
	c.commit = nil

	c.scroll()
	c.view = c.compose()
}

func (c *Canvas) scroll() {
	contentH := c.height - 1
	if contentH <= 0 || c.focus >= len(c.controls) {
		c.offset = 0
		return
	}
	y := c.controls[c.focus].area.Y
	if y < c.offset {
		c.offset = y
	}
	if y >= c.offset+contentH {
		c.offset = y - contentH + 1
	}
	c.offset = max(min(c.offset, len(c.rows)-contentH), 0)
}

func (c *Canvas) compose() string {
	contentH := len(c.rows)
	if c.height > 1 {
		contentH = c.height - 1
	}
	visible := make([]string, contentH)
	for i := range visible {
		if r := c.offset + i; r < len(c.rows) {
			visible[i] = c.rows[r]
		}
	}
	body := strings.Join(visible, "\n")

	if c.drop != nil {
		body = overlay.Place(overlay.Config{
			Width:    c.width,
			Height:   contentH,
			Position: overlay.Anchor,
			X:        c.dropAt.X,
			Y:        c.dropAt.Y - c.offset + 1,
		}, c.drop.View(), body)
	}
	return body + "\n" + c.hint()
}

func (c *Canvas) hint() string {
	switch {
	case c.drop != nil:
		return styles.HintStyle.Render("↑/↓ choose · enter select · esc cancel")
	case c.editing != "":
		return styles.HintStyle.Render("enter apply · esc cancel")
	case c.err != nil:
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render(c.err.Error())
	}
	if c.focus < len(c.controls) {
		if a := c.controls[c.focus].action; a != nil {
			h := styles.HintStyle.Render(c.keys.Docs.Help().Key + " " + a.label + ": ")
			if a.link != "" {
				return h + termenv.Hyperlink(a.link, styles.LinkStyle.Render(a.link))
			}
			return h
		}
	}
	return ""
}

// put splices s into row y starting at column x.
func (c *Canvas) put(x, y int, s string) {
	for len(c.rows) <= y {
		c.rows = append(c.rows, "")
	}
	c.rows[y] = overlay.Place(overlay.Config{
		Width:    max(c.width, x+lipgloss.Width(s)),
		Height:   1,
		Position: overlay.Anchor,
		X:        x,
	}, s, c.rows[y])
}

func (c *Canvas) register(kind controlKind, area layout.Rect, label, path string) (int, bool) {
	idx := len(c.controls)
	c.controls = append(c.controls, control{
		id:    fmt.Sprintf("polyslot-ctl-%d", idx),
		kind:  kind,
		area:  area,
		label: label,
		path:  path,
	})
	return idx, idx == c.focus
}

func (c *Canvas) drawerFor(t reflect.Type) Drawer {
	if t == nil {
		return nil
	}
	for _, d := range c.drawers {
		if d.Match(t) {
			return d
		}
	}
	return nil
}

func (c *Canvas) stopEditing() {
	c.editing = ""
	c.input.Blur()
}
