// Package tui is the terminal shell around the editor core: it
// translates terminal key messages into engine events, renders the map
// as an outline, and hosts the insert-mode editor, palette, search and
// help overlays.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"arbor/internal/application"
	"arbor/internal/input/engine"
	"arbor/internal/input/key"
	"arbor/internal/input/keymap"
	"arbor/internal/input/palette"
	"arbor/internal/mode"
	"arbor/internal/ports"
)

// overlay identifies which surface currently owns non-command input.
type overlay int

const (
	overlayNone overlay = iota
	overlayPalette
	overlaySearch
	overlayHelp
)

// Config wires the app's collaborators.
type Config struct {
	Session         *application.Session
	Searcher        ports.Searcher
	Clipboard       ports.Clipboard
	SequenceTimeout time.Duration // 0 means the engine default
	ExportPath      string
}

// App is the root bubbletea model.
type App struct {
	session  *application.Session
	modes    *mode.Machine
	registry *keymap.Registry
	engine   *engine.Engine
	palette  *palette.Palette
	searcher ports.Searcher
	clip     ports.Clipboard
	hooks    *ports.ViewHooks

	overlay      overlay
	editor       textinput.Model
	paletteInput textinput.Model
	searchInput  textinput.Model
	results      []ports.Match
	resultCursor int

	panX, panY float64
	zoom       float64

	exportPath string
	width      int
	height     int
	quitting   bool
}

// NewApp builds the TUI model and wires the shared dispatch core: one
// registry, one engine, one context factory used by both the keyboard
// path and the palette.
func NewApp(cfg Config) (*App, error) {
	a := &App{
		session:    cfg.Session,
		modes:      mode.NewMachine(),
		registry:   keymap.NewRegistry(),
		searcher:   cfg.Searcher,
		clip:       cfg.Clipboard,
		hooks:      &ports.ViewHooks{},
		zoom:       1.0,
		exportPath: cfg.ExportPath,
	}

	if err := a.registry.RegisterAll(keymap.DefaultCommands()); err != nil {
		return nil, err
	}
	a.palette = palette.New(a.registry)

	a.editor = textinput.New()
	a.editor.Prompt = ""
	a.paletteInput = textinput.New()
	a.paletteInput.Placeholder = "Run a command..."
	a.searchInput = textinput.New()
	a.searchInput.Placeholder = "Search nodes..."

	a.registerHooks()

	var opts []engine.Option
	if cfg.SequenceTimeout > 0 {
		opts = append(opts, engine.WithTimeout(cfg.SequenceTimeout))
	}
	a.engine = engine.New(a.registry, a.modes, a.newContext, opts...)

	// The editor follows the mode: entering insert seeds it with the
	// selected node's content, leaving insert blurs it.
	a.modes.Subscribe(func(m mode.Mode) {
		if m == mode.Normal {
			a.editor.Blur()
		}
	})

	return a, nil
}

// registerHooks populates the view-control capability object. These
// are the hooks commands invoke; anything not registered here stays a
// no-op.
func (a *App) registerHooks() {
	a.hooks.PanBy = func(dx, dy float64) {
		a.panX += dx
		a.panY += dy
	}
	a.hooks.ZoomIn = func() {
		a.zoom *= 1.2
	}
	a.hooks.ZoomOut = func() {
		a.zoom /= 1.2
	}
	a.hooks.FitToView = func() {
		a.panX, a.panY, a.zoom = 0, 0, 1.0
	}
	a.hooks.ExportSVG = func() error {
		return a.exportSVG()
	}
	a.hooks.FocusEditor = func() {
		node := a.session.SelectedNode(context.Background())
		if node != nil {
			a.editor.SetValue(node.Content)
			a.editor.CursorEnd()
		} else {
			a.editor.SetValue("")
		}
		a.editor.Focus()
	}
}

// newContext captures a fresh command context. Called once per key
// event and per palette execution.
func (a *App) newContext() *keymap.Context {
	return &keymap.Context{
		Ctx:       context.Background(),
		Session:   a.session,
		Modes:     a.modes,
		Hooks:     a.hooks,
		Clipboard: a.clip,
		OpenPalette: func() {
			a.overlay = overlayPalette
			a.paletteInput.SetValue("")
			a.paletteInput.Focus()
			a.palette.Open(a.newContext())
		},
		OpenSearch: func() {
			a.overlay = overlaySearch
			a.searchInput.SetValue("")
			a.searchInput.Focus()
			a.results = nil
			a.resultCursor = 0
		},
		OpenHelp: func() {
			a.overlay = overlayHelp
		},
		Dismiss: func() {
			a.closeOverlay()
		},
		CommitEdit: func() {
			a.session.FinishEdit(context.Background(), a.editor.Value())
			a.editor.SetValue("")
		},
		Quit: func() {
			a.quitting = true
		},
	}
}

func (a *App) closeOverlay() {
	switch a.overlay {
	case overlayPalette:
		a.palette.Close()
		a.paletteInput.Blur()
	case overlaySearch:
		a.searchInput.Blur()
		a.results = nil
		a.resultCursor = 0
	}
	a.overlay = overlayNone
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}
	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.overlay {
	case overlayPalette:
		return a.updatePalette(msg)
	case overlaySearch:
		return a.updateSearch(msg)
	case overlayHelp:
		a.overlay = overlayNone
		return a, nil
	}

	editing := a.modes.Current() == mode.Insert && a.editor.Focused()
	ev := translateKey(msg, editing)

	if a.engine.HandleKey(ev) {
		if a.quitting {
			return a, tea.Quit
		}
		return a, nil
	}

	// Unconsumed keys while editing belong to the text editor.
	if editing {
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev := translateKey(msg, false)
	switch {
	case ev.IsEscape():
		a.closeOverlay()
		return a, nil
	case ev.Key == key.KeyEnter:
		ctx := a.newContext()
		a.paletteInput.Blur()
		a.overlay = overlayNone
		// Execute closes the palette itself; the command may open
		// another overlay.
		a.palette.Execute(ctx)
		if a.quitting {
			return a, tea.Quit
		}
		return a, nil
	case ev.Key == key.KeyUp:
		a.palette.Move(-1)
		return a, nil
	case ev.Key == key.KeyDown:
		a.palette.Move(1)
		return a, nil
	}

	var cmd tea.Cmd
	a.paletteInput, cmd = a.paletteInput.Update(msg)
	a.palette.SetQuery(a.paletteInput.Value(), a.newContext())
	return a, cmd
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev := translateKey(msg, false)
	switch {
	case ev.IsEscape():
		a.closeOverlay()
		return a, nil
	case ev.Key == key.KeyEnter:
		if a.resultCursor >= 0 && a.resultCursor < len(a.results) {
			a.session.Select(a.results[a.resultCursor].NodeID)
		}
		a.closeOverlay()
		return a, nil
	case ev.Key == key.KeyUp:
		if a.resultCursor > 0 {
			a.resultCursor--
		}
		return a, nil
	case ev.Key == key.KeyDown:
		if a.resultCursor < len(a.results)-1 {
			a.resultCursor++
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.refreshSearch()
	return a, cmd
}

func (a *App) refreshSearch() {
	nodes, err := a.session.Tree().Store().All(context.Background())
	if err != nil {
		return
	}
	a.results = a.searcher.Search(a.searchInput.Value(), nodes)
	if a.resultCursor >= len(a.results) {
		a.resultCursor = 0
	}
}
