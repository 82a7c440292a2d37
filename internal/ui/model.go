package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/gallery-tui/internal/backend"
	"github.com/atomicstack/gallery-tui/internal/data/dispatcher"
	"github.com/atomicstack/gallery-tui/internal/gallery"
	"github.com/atomicstack/gallery-tui/internal/state"
	"github.com/atomicstack/gallery-tui/internal/theme"
	"github.com/atomicstack/gallery-tui/internal/ui/command"
	uistate "github.com/atomicstack/gallery-tui/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Gallery is the remote collaborator the view drives. *backend.Client
// satisfies it.
type Gallery interface {
	AllImages(ctx context.Context) ([]gallery.Image, error)
	SimilarImages(ctx context.Context, caption string, topK int) ([]gallery.SearchResult, error)
	Upload(ctx context.Context, files []backend.UploadFile) error
}

type focusTarget int

const (
	focusGrid focusTarget = iota
	focusQuery
	focusUpload
)

func (f focusTarget) String() string {
	switch f {
	case focusQuery:
		return "query"
	case focusUpload:
		return "upload"
	default:
		return "grid"
	}
}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Limit      int
	Title      string
	Watcher    *backend.Watcher
	Context    context.Context
}

// Model implements the Bubble Tea model for the gallery browser.
type Model struct {
	client     Gallery
	catalog    state.CatalogStore
	session    *uistate.SearchSession
	pager      uistate.Pager
	viewport   uistate.Viewport
	upload     uistate.UploadJob
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	backend    *backend.Watcher

	limit       int
	title       string
	focus       focusTarget
	query       textinput.Model
	uploadInput textinput.Model
	spinner     spinner.Model
	help        help.Model
	keys        keyMap
	showHelp    bool
	showFooter  bool

	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the stores and widgets around client.
func NewModel(client Gallery, opts Options) *Model {
	catalog := state.NewCatalogStore()
	limit := opts.Limit
	if limit == 0 {
		limit = uistate.DefaultLimit
	}
	m := &Model{
		client:      client,
		catalog:     catalog,
		session:     uistate.NewSearchSession(),
		pager:       uistate.NewPager(),
		dispatcher:  dispatcher.New(catalog),
		bus:         command.New(opts.Context),
		backend:     opts.Watcher,
		limit:       clampLimit(limit),
		title:       opts.Title,
		query:       newInput("search: ", "describe an image…"),
		uploadInput: newInput("upload: ", "paths or globs, space separated"),
		spinner:     spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		help:        help.New(),
		keys:        defaultKeyMap(),
		showFooter:  opts.ShowFooter,
	}
	if m.title == "" {
		m.title = "gallery"
	}
	if styles.Loading != nil {
		m.spinner.Style = *styles.Loading
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.Prompt != nil {
		ti.PromptStyle = *styles.Prompt
	}
	if styles.Input != nil {
		ti.TextStyle = *styles.Input
	}
	if styles.Placeholder != nil {
		ti.PlaceholderStyle = *styles.Placeholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	return ti
}

func clampLimit(n int) int {
	if n < uistate.MinLimit {
		return uistate.MinLimit
	}
	if n > uistate.MaxLimit {
		return uistate.MaxLimit
	}
	return n
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCatalog()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):    m.handleSpinnerTickMsg,
		reflect.TypeOf(catalogLoadedMsg{}):   m.handleCatalogLoadedMsg,
		reflect.TypeOf(searchResultMsg{}):    m.handleSearchResultMsg,
		reflect.TypeOf(uploadDoneMsg{}):      m.handleUploadDoneMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.clearInfo()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// busy reports whether any collaborator call is outstanding.
func (m *Model) busy() bool {
	return m.catalog.Loading() || m.session.Pending() || m.upload.InFlight()
}

// startSpinner returns a tick only when the spinner is not already running.
func (m *Model) startSpinner(wasBusy bool) tea.Cmd {
	if wasBusy {
		return nil
	}
	return m.spinner.Tick
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !m.busy() {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}
