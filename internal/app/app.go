// Package app contains the root application model.
package app

import (
	"context"
	"path/filepath"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/polyslot/internal/browser"
	"github.com/zjrosen/polyslot/internal/config"
	"github.com/zjrosen/polyslot/internal/dispatch"
	"github.com/zjrosen/polyslot/internal/document"
	"github.com/zjrosen/polyslot/internal/editor"
	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/keys"
	"github.com/zjrosen/polyslot/internal/layout"
	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/members"
	"github.com/zjrosen/polyslot/internal/pubsub"
	"github.com/zjrosen/polyslot/internal/registry"
	"github.com/zjrosen/polyslot/internal/scene"
	"github.com/zjrosen/polyslot/internal/ui/canvas"
	helpview "github.com/zjrosen/polyslot/internal/ui/help"
	"github.com/zjrosen/polyslot/internal/ui/logpanel"
	"github.com/zjrosen/polyslot/internal/ui/styles"
	"github.com/zjrosen/polyslot/internal/ui/toaster"
	"github.com/zjrosen/polyslot/internal/watcher"
)

const (
	toastDuration = 3 * time.Second
	// saveMute keeps our own write from coming back as an external change.
	saveMute = time.Second
)

// DocumentChangedMsg is sent when the watcher sees the document change on
// disk.
type DocumentChangedMsg struct{}

// loadedMsg carries the result of reading the document from disk.
type loadedMsg struct {
	scene    *scene.Scene
	err      error
	external bool
}

// Model is the root application state.
type Model struct {
	ctx  context.Context
	cfg  config.Config
	reg  *registry.Registry
	keys keys.KeyMap
	path string

	scene  *scene.Scene
	canvas *canvas.Canvas

	width  int
	height int

	toaster  toaster.Model
	help     helpview.Model
	helpLine help.Model
	showHelp bool

	// Debug mode only.
	logs      logpanel.Model
	logEvents <-chan log.Event

	watcher *watcher.Watcher
	changes <-chan struct{}
}

// New creates the application model editing doc, which was loaded from
// path. opener handles the docs context action.
func New(ctx context.Context, cfg config.Config, reg *registry.Registry, path string, doc *scene.Scene, opener browser.Opener) Model {
	km := keys.DefaultKeyMap()
	km.Logs.SetEnabled(cfg.Debug)
	d := dispatch.New(reg, opener)
	c := canvas.New(canvas.Config{
		IndentWidth: cfg.UI.IndentWidth,
		LabelWidth:  cfg.UI.LabelWidth,
	}, km, dispatch.NewSlotEditor(d))

	m := Model{
		ctx:      ctx,
		cfg:      cfg,
		reg:      reg,
		keys:     km,
		path:     path,
		scene:    doc,
		canvas:   c,
		toaster:  toaster.New(),
		help:     helpview.New(km),
		helpLine: help.New(),
		logs:     logpanel.New(),
	}
	if cfg.Debug {
		m.logEvents = log.Subscribe(ctx)
	}
	m = m.resize(80, 24)
	c.Frame(nil, m.draw)
	return m
}

// WithWatcher reloads the document whenever changes delivers. w is muted
// around saves.
func (m Model) WithWatcher(w *watcher.Watcher, changes <-chan struct{}) Model {
	m.watcher = w
	m.changes = changes
	return m
}

// Scene is the document being edited.
func (m Model) Scene() *scene.Scene { return m.scene }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.listenLogs())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
		m.canvas.Frame(nil, m.draw)
		return m, nil

	case log.Event:
		m.logs, _ = m.logs.Update(msg)
		return m, m.listenLogs()

	case tea.KeyMsg:
		if m.logs.Visible() {
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			m.logs, _ = m.logs.Update(msg)
			return m, nil
		}
		if key.Matches(msg, m.keys.Logs) {
			m.logs = m.logs.Toggle()
			return m, nil
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if !m.canvas.Capturing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.showHelp = true
				return m, nil
			case key.Matches(msg, m.keys.Save):
				return m.save()
			case key.Matches(msg, m.keys.Reload):
				return m, m.load(false)
			}
		}

	case tea.MouseMsg:
		if m.showHelp || m.logs.Visible() {
			return m, nil
		}

	case DocumentChangedMsg:
		log.Info(log.CatUI, "document changed on disk, reloading", "path", m.path)
		return m, tea.Batch(m.load(true), m.listen())

	case loadedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "reload failed", msg.err, "path", m.path)
			return m.toast("Reload failed: "+msg.err.Error(), toaster.StyleError)
		}
		m.scene = msg.scene
		m.canvas.Frame(nil, m.draw)
		text := "Reloaded " + filepath.Base(m.path)
		if msg.external {
			text += " (changed on disk)"
		}
		return m.toast(text, toaster.StyleInfo)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	m.canvas.Frame(msg, m.draw)
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	title := filepath.Base(m.path)
	if m.scene != nil && m.scene.Name != "" {
		title += " · " + m.scene.Name
	}
	view := styles.RenderPanel(m.canvas.View(), title, m.width, m.panelHeight(), true)
	if m.cfg.UI.ShowHelp {
		view += "\n" + m.helpLine.View(m.keys)
	}

	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.logs.Visible() {
		view = m.logs.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return zone.Scan(view)
}

// Close stops the watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Stop()
}

func (m Model) draw(s editor.Surface, area layout.Rect) {
	if m.scene == nil {
		s.Label(area, "no document")
		return
	}
	root := field.Root(m.scene)
	editor.RelativeFields(s, root, members.SerializableNames(reflect.TypeOf(m.scene)), area)
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.helpLine.Width = width
	m.help = m.help.SetSize(width, height)
	m.logs = m.logs.SetSize(width, height)
	// Panel border takes two rows and two columns.
	m.canvas.SetSize(max(width-2, 1), max(m.panelHeight()-2, 1))
	return m
}

func (m Model) panelHeight() int {
	if m.cfg.UI.ShowHelp {
		return max(m.height-1, 3)
	}
	return max(m.height, 3)
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.watcher != nil {
		m.watcher.Mute(saveMute)
	}
	if err := document.Save(m.ctx, m.path, m.scene); err != nil {
		log.ErrorErr(log.CatUI, "save failed", err, "path", m.path)
		return m.toast("Save failed: "+err.Error(), toaster.StyleError)
	}
	return m.toast("Saved "+filepath.Base(m.path), toaster.StyleSuccess)
}

func (m Model) load(external bool) tea.Cmd {
	ctx, path, reg := m.ctx, m.path, m.reg
	return func() tea.Msg {
		next := &scene.Scene{}
		err := document.Load(ctx, path, next, reg)
		return loadedMsg{scene: next, err: err, external: external}
	}
}

func (m Model) listen() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return DocumentChangedMsg{}
	}
}

func (m Model) listenLogs() tea.Cmd {
	if m.logEvents == nil {
		return nil
	}
	return pubsub.Listen(m.logEvents)
}

func (m Model) toast(text string, style toaster.Style) (tea.Model, tea.Cmd) {
	m.toaster = m.toaster.Show(text, style)
	return m, m.toaster.ScheduleDismiss(toastDuration)
}
