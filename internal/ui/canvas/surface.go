package canvas

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/members"
	"github.com/zjrosen/polyslot/internal/ui/dropdown"
	"github.com/zjrosen/polyslot/internal/ui/styles"
)

func (c *Canvas) LineHeight() int { return 1 }

func (c *Canvas) FieldHeight(p field.Property) int {
	t := p.Type()
	if d := c.drawerFor(t); d != nil {
		return d.Height(c, p)
	}
	if names, ok := childNames(p); ok {
		h := 1
		for _, n := range names {
			h += c.FieldHeight(p.Child(n))
		}
		return h
	}
	if n, ok := length(p); ok {
		h := 1
		for i := range n {
			h += c.FieldHeight(p.Index(i))
		}
		return h
	}
	return 1
}

func (c *Canvas) Field(area layout.Rect, p field.Property) {
	t := p.Type()
	if d := c.drawerFor(t); d != nil {
		d.Render(c, area, p)
		return
	}

	switch {
	case t == nil:
		c.Label(area, p.DisplayName()+": unreachable")
	case t.Kind() == reflect.Bool:
		c.toggle(area, p)
	case field.IsScalar(t):
		c.text(area, p)
	default:
		if names, ok := childNames(p); ok {
			c.composite(area, p, names)
			return
		}
		if n, ok := length(p); ok {
			c.collection(area, p, n)
			return
		}
		c.readonly(area, p)
	}
}

func (c *Canvas) Popup(area layout.Rect, label string, selected int, options []string) int {
	idx, focused := c.register(kindPopup, area, label, "")
	if len(options) == 0 {
		c.drawControl(idx, area, label, styles.PlaceholderStyle.Render("(no options)"), focused)
		return selected
	}

	if c.commit != nil && c.commit.control == idx {
		selected = c.commit.index
		c.commit = nil
	}
	if focused {
		selected = c.popupInput(idx, label, selected, options)
	}
	selected = max(min(selected, len(options)-1), 0)

	st := styles.PopupStyle
	if focused {
		st = styles.PopupFocusedStyle
	}
	x := c.drawControl(idx, area, label, st.Render("‹ "+options[selected]+" ›"), focused)
	if c.drop != nil && c.dropFor == idx {
		c.dropAt = layout.Rect{X: x, Y: area.Y}
	}
	return selected
}

func (c *Canvas) popupInput(idx int, label string, selected int, options []string) int {
	switch msg := c.pending.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, c.keys.Left):
			c.pending = nil
			return (selected - 1 + len(options)) % len(options)
		case key.Matches(msg, c.keys.Right):
			c.pending = nil
			return (selected + 1) % len(options)
		case key.Matches(msg, c.keys.Enter), key.Matches(msg, c.keys.Toggle):
			c.pending = nil
			c.openDropdown(idx, label, selected, options)
		}
	case activate:
		c.pending = nil
		c.openDropdown(idx, label, selected, options)
	}
	return selected
}

func (c *Canvas) openDropdown(idx int, label string, selected int, options []string) {
	d := dropdown.New(label, options).SetSelected(selected)
	c.drop = &d
	c.dropFor = idx
}

func (c *Canvas) Label(area layout.Rect, text string) {
	x := area.X + c.indent*c.cfg.IndentWidth
	c.put(x, area.Y, c.fit(styles.MessageStyle.Render(text), area, x))
}

func (c *Canvas) Indent() { c.indent++ }

func (c *Canvas) Outdent() {
	if c.indent > 0 {
		c.indent--
	}
}

func (c *Canvas) ContextAction(area layout.Rect, label, link string, fn func()) {
	idx := -1
	for i := len(c.controls) - 1; i >= 0; i-- {
		if c.controls[i].area.Y == area.Y {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	c.controls[idx].action = &action{label: label, link: link, fn: fn}

	if idx != c.focus || c.editing != "" {
		return
	}
	if msg, ok := c.pending.(tea.KeyMsg); ok && key.Matches(msg, c.keys.Docs) {
		c.pending = nil
		log.Debug(log.CatUI, "context action", "label", label, "link", link)
		fn()
	}
}

func (c *Canvas) text(area layout.Rect, p field.Property) {
	path := p.PathString()
	idx, focused := c.register(kindText, area, p.DisplayName(), path)
	editing := focused && c.editing == path
	if focused {
		editing = c.textInput(p, editing, area)
	}

	var value string
	if editing {
		value = c.input.View()
	} else {
		st := styles.ValueStyle
		if focused {
			st = styles.ValueFocusedStyle
		}
		if text := field.Format(p.Value()); text != "" {
			value = st.Render(text)
		} else {
			value = styles.PlaceholderStyle.Render("empty")
		}
	}
	c.drawControl(idx, area, p.DisplayName(), value, focused)
}

func (c *Canvas) textInput(p field.Property, editing bool, area layout.Rect) bool {
	if c.pending == nil {
		return editing
	}

	if !editing {
		k, isKey := c.pending.(tea.KeyMsg)
		_, clicked := c.pending.(activate)
		if clicked || (isKey && key.Matches(k, c.keys.Enter)) {
			c.pending = nil
			c.input.SetValue(field.Format(p.Value()))
			c.input.Width = max(area.W-c.cfg.LabelWidth-1, 8)
			c.input.CursorEnd()
			c.input.Focus()
			c.editing = p.PathString()
			return true
		}
		return false
	}

	if k, ok := c.pending.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, c.keys.Enter):
			c.pending = nil
			c.write(p, func() error { return p.SetString(c.input.Value()) })
			c.stopEditing()
			return false
		case key.Matches(k, c.keys.Escape):
			c.pending = nil
			c.stopEditing()
			return false
		}
	}
	c.input, _ = c.input.Update(c.pending)
	c.pending = nil
	return true
}

func (c *Canvas) toggle(area layout.Rect, p field.Property) {
	idx, focused := c.register(kindToggle, area, p.DisplayName(), p.PathString())
	on, _ := p.Value().(bool)

	if focused && c.pending != nil {
		k, isKey := c.pending.(tea.KeyMsg)
		_, clicked := c.pending.(activate)
		if clicked || (isKey && (key.Matches(k, c.keys.Toggle) || key.Matches(k, c.keys.Enter))) {
			c.pending = nil
			on = !on
			c.write(p, func() error { return p.Set(on) })
		}
	}

	box := "[ ]"
	if on {
		box = "[x]"
	}
	st := styles.ValueStyle
	if focused {
		st = styles.ValueFocusedStyle
	}
	c.drawControl(idx, area, p.DisplayName(), st.Render(box), focused)
}

func (c *Canvas) composite(area layout.Rect, p field.Property, names []string) {
	c.header(area, p, typeLabel(p))
	c.Indent()
	y := area.Y + 1
	for _, n := range names {
		child := p.Child(n)
		h := c.FieldHeight(child)
		c.Field(layout.Rect{X: area.X, Y: y, W: area.W, H: h}, child)
		y += h
	}
	c.Outdent()
}

func (c *Canvas) collection(area layout.Rect, p field.Property, n int) {
	c.header(area, p, fmt.Sprintf("%d items", n))
	c.Indent()
	y := area.Y + 1
	for i := range n {
		child := p.Index(i)
		h := c.FieldHeight(child)
		c.Field(layout.Rect{X: area.X, Y: y, W: area.W, H: h}, child)
		y += h
	}
	c.Outdent()
}

func (c *Canvas) readonly(area layout.Rect, p field.Property) {
	var text string
	if v := p.Value(); v == nil {
		text = styles.PlaceholderStyle.Render("none")
	} else {
		text = styles.HintStyle.Render(fmt.Sprint(v))
	}
	x := area.X + c.indent*c.cfg.IndentWidth
	c.put(x, area.Y, c.fit(c.labelText(p.DisplayName(), false)+text, area, x))
}

func (c *Canvas) header(area layout.Rect, p field.Property, detail string) {
	x := area.X + c.indent*c.cfg.IndentWidth
	line := styles.LabelFocusedStyle.Render(p.DisplayName())
	if detail != "" {
		line += " " + styles.HintStyle.Render(detail)
	}
	c.put(x, area.Y, c.fit(line, area, x))
}

// drawControl draws label and value for control idx and returns the column
// where the value starts.
func (c *Canvas) drawControl(idx int, area layout.Rect, label, value string, focused bool) int {
	x := area.X + c.indent*c.cfg.IndentWidth
	lbl := c.labelText(label, focused)
	line := c.fit(lbl+value, area, x)
	c.put(x, area.Y, zone.Mark(c.controls[idx].id, line))
	return x + lipgloss.Width(lbl)
}

func (c *Canvas) labelText(text string, focused bool) string {
	w := max(c.cfg.LabelWidth-c.indent*c.cfg.IndentWidth, 6)
	text = styles.TruncateString(text, w-1)
	st := styles.LabelStyle
	if focused {
		st = styles.LabelFocusedStyle
	}
	return st.Render(text) + strings.Repeat(" ", w-lipgloss.Width(text))
}

func (c *Canvas) fit(s string, area layout.Rect, x int) string {
	w := area.W - (x - area.X)
	if area.W <= 0 {
		w = c.width - x
	}
	return styles.TruncateString(s, w)
}

func (c *Canvas) write(p field.Property, set func() error) {
	if err := set(); err != nil {
		c.err = err
		log.Warn(log.CatUI, "field write rejected", "path", p.PathString(), "error", err.Error())
		return
	}
	c.err = nil
}

// childNames returns the serializable members to draw under p when p holds
// a struct, directly or through a non-nil pointer or interface.
func childNames(p field.Property) ([]string, bool) {
	t := p.Type()
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Interface || t.Kind() == reflect.Pointer {
		v := p.Value()
		if v == nil {
			return nil, false
		}
		t = reflect.TypeOf(v)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	return members.SerializableNames(t), true
}

func length(p field.Property) (int, bool) {
	t := p.Type()
	if t == nil || (t.Kind() != reflect.Slice && t.Kind() != reflect.Array) {
		return 0, false
	}
	v := reflect.ValueOf(p.Value())
	if !v.IsValid() {
		return 0, true
	}
	return v.Len(), true
}

func typeLabel(p field.Property) string {
	t := p.Type()
	if t != nil && (t.Kind() == reflect.Interface || t.Kind() == reflect.Pointer) {
		if v := p.Value(); v != nil {
			return reflect.TypeOf(v).String()
		}
	}
	return ""
}
