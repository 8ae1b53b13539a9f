package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"moms-kitchen/storefront/backend"
	"moms-kitchen/storefront/cart"
	"moms-kitchen/storefront/checkout"
	"moms-kitchen/storefront/connection"
	"moms-kitchen/storefront/tracking"
	"moms-kitchen/storefront/types"
)

type screen int

const (
	screenMenu screen = iota
	screenCart
	screenCheckout
	screenConfirmation
	screenTrack
)

// checkout form fields, in focus order
const (
	fieldName = iota
	fieldPhone
	fieldAddress
	fieldNotes
	fieldCount
)

var fieldKeys = [fieldCount]string{"name", "phone", "address", "notes"}

// Deps are the collaborators the TUI is built from.
type Deps struct {
	Store   *cart.Store
	Backend backend.Backend
	// Monitor is optional; without it the banner never shows.
	Monitor        *connection.Monitor
	HealthInterval time.Duration
	Logger         *zap.Logger
}

type (
	menuLoadedMsg struct {
		items []types.MenuItem
		err   error
	}
	orderPlacedMsg struct {
		order types.Order
		lines []cart.Line
		err   error
	}
	lookupDoneMsg struct {
		result tracking.Result
		err    error
	}
	healthMsg     struct{ err error }
	healthTickMsg struct{}
)

// Model is the bubbletea model of the storefront.
type Model struct {
	store    *cart.Store
	backend  backend.Backend
	checkout *checkout.Service
	tracker  *tracking.Service
	monitor  *connection.Monitor
	interval time.Duration
	logger   *zap.Logger
	styles   Styles

	screen screen
	width  int
	flash  string

	menu        []types.MenuItem
	menuLoading bool
	menuErr     error
	menuCursor  int
	cartCursor  int

	form       [fieldCount]textinput.Model
	formFocus  int
	fieldErrs  checkout.FieldErrors
	submitting bool
	submitErr  error

	order   *types.Order
	receipt string

	trackInput  textinput.Model
	looking     bool
	trackResult *tracking.Result
	trackErr    error

	spinner spinner.Model
}

// New builds the storefront model.
func New(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		store:    deps.Store,
		backend:  deps.Backend,
		checkout: checkout.NewService(deps.Store, deps.Backend, logger),
		tracker:  tracking.NewService(deps.Backend, logger),
		monitor:  deps.Monitor,
		interval: deps.HealthInterval,
		logger:   logger.Named("tui"),
		styles:   DefaultStyles(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	placeholders := [fieldCount]string{"Full name", "+1 555 010 2030", "Delivery address", "Anything we should know?"}
	for i := range m.form {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		m.form[i] = ti
	}
	m.trackInput = textinput.New()
	m.trackInput.Placeholder = "Order number"
	m.trackInput.CharLimit = 20

	m.menuLoading = true
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadMenu(), m.checkHealth()}
	return tea.Batch(cmds...)
}

// Commands

func (m Model) loadMenu() tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		items, err := b.GetMenu(context.Background())
		return menuLoadedMsg{items: items, err: err}
	}
}

func (m Model) checkHealth() tea.Cmd {
	if m.monitor == nil {
		return nil
	}
	mon := m.monitor
	return func() tea.Msg {
		return healthMsg{err: mon.Check(context.Background())}
	}
}

func (m Model) retry() tea.Cmd {
	if m.monitor == nil {
		return m.loadMenu()
	}
	mon := m.monitor
	return func() tea.Msg {
		return healthMsg{err: mon.Retry(context.Background())}
	}
}

func (m Model) scheduleHealth() tea.Cmd {
	if m.monitor == nil || m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return healthTickMsg{} })
}

func (m Model) submit(form checkout.Form) tea.Cmd {
	svc, store := m.checkout, m.store
	return func() tea.Msg {
		lines := store.State().Lines()
		order, err := svc.Submit(context.Background(), form)
		return orderPlacedMsg{order: order, lines: lines, err: err}
	}
}

func (m Model) lookup(id uint64) tea.Cmd {
	svc := m.tracker
	return func() tea.Msg {
		result, err := svc.Lookup(context.Background(), id)
		return lookupDoneMsg{result: result, err: err}
	}
}

func (m Model) observe(err error) {
	if m.monitor != nil {
		m.monitor.Observe(err)
	}
}

func (m Model) showBanner() bool {
	return m.monitor != nil && m.monitor.ShowBanner()
}

// Update

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case menuLoadedMsg:
		m.observe(msg.err)
		m.menuLoading = false
		m.menuErr = msg.err
		if msg.err == nil {
			m.menu = msg.items
		} else {
			m.logger.Warn("failed to load menu", zap.Error(msg.err))
		}
		m.menuCursor = clamp(m.menuCursor, len(m.menu))
		return m, nil

	case orderPlacedMsg:
		m.observe(msg.err)
		m.submitting = false
		if msg.err != nil {
			m.submitErr = msg.err
			return m, nil
		}
		order := msg.order
		m.order = &order
		m.receipt = renderMarkdown(ReceiptMarkdown(order, msg.lines), m.width)
		m.resetForm()
		m.screen = screenConfirmation
		return m, nil

	case lookupDoneMsg:
		m.observe(msg.err)
		m.looking = false
		if msg.err != nil {
			m.trackErr = msg.err
			m.trackResult = nil
			return m, nil
		}
		result := msg.result
		m.trackResult = &result
		m.trackErr = nil
		return m, nil

	case healthMsg:
		cmds := []tea.Cmd{m.scheduleHealth()}
		if msg.err == nil && m.menu == nil && !m.menuLoading {
			m.menuLoading = true
			cmds = append(cmds, m.loadMenu())
		}
		return m, tea.Batch(cmds...)

	case healthTickMsg:
		return m, m.checkHealth()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenCart:
			return m.updateCart(msg)
		case screenCheckout:
			return m.updateCheckout(msg)
		case screenConfirmation:
			return m.updateConfirmation(msg)
		case screenTrack:
			return m.updateTrack(msg)
		}
	}
	return m, nil
}

// globalKey handles keys shared by the screens without text input.
func (m Model) globalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "m":
		m.screen = screenMenu
		return m, nil, true
	case "c":
		m.screen = screenCart
		m.cartCursor = clamp(m.cartCursor, m.store.State().Len())
		return m, nil, true
	case "t":
		cmd := m.openTrack()
		return m, cmd, true
	case "r":
		if m.showBanner() || m.menuErr != nil {
			m.menuErr = nil
			if m.monitor == nil {
				m.menuLoading = true
			}
			return m, m.retry(), true
		}
	}
	return m, nil, false
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.globalKey(msg); ok {
		return next, cmd
	}
	m.flash = ""
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(m.menu)-1 {
			m.menuCursor++
		}
	case "enter", "a", " ":
		if len(m.menu) == 0 {
			return m, nil
		}
		item := m.menu[m.menuCursor]
		if !item.Available {
			m.flash = item.Name + " is not available right now."
			return m, nil
		}
		m.store.AddItem(item)
		m.flash = "Added " + item.Name + " to your cart."
	case "R":
		m.menuLoading = true
		return m, m.loadMenu()
	}
	return m, nil
}

func (m Model) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.globalKey(msg); ok {
		return next, cmd
	}
	lines := m.store.State().Lines()
	if len(lines) == 0 {
		if msg.String() == "esc" {
			m.screen = screenMenu
		}
		return m, nil
	}
	m.cartCursor = clamp(m.cartCursor, len(lines))
	line := lines[m.cartCursor]

	switch msg.String() {
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
	case "+", "=":
		m.store.UpdateQuantity(line.Item.ID, line.Quantity+1)
	case "-":
		m.store.UpdateQuantity(line.Item.ID, line.Quantity-1)
	case "d", "delete", "backspace":
		m.store.RemoveItem(line.Item.ID)
	case "x":
		m.store.ClearCart()
	case "enter", "o":
		cmd := m.openCheckout()
		return m, cmd
	case "esc":
		m.screen = screenMenu
	}
	m.cartCursor = clamp(m.cartCursor, m.store.State().Len())
	return m, nil
}

func (m *Model) openCheckout() tea.Cmd {
	m.screen = screenCheckout
	m.submitErr = nil
	m.fieldErrs = nil
	return m.focusField(fieldName)
}

func (m *Model) focusField(i int) tea.Cmd {
	m.formFocus = i
	for j := range m.form {
		m.form[j].Blur()
	}
	return m.form[i].Focus()
}

func (m *Model) resetForm() {
	for i := range m.form {
		m.form[i].Reset()
		m.form[i].Blur()
	}
	m.formFocus = fieldName
	m.fieldErrs = nil
	m.submitErr = nil
}

func (m Model) formValues() checkout.Form {
	return checkout.Form{
		Name:    m.form[fieldName].Value(),
		Phone:   m.form[fieldPhone].Value(),
		Address: m.form[fieldAddress].Value(),
		Notes:   m.form[fieldNotes].Value(),
	}
}

func (m Model) updateCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.screen = screenCart
		return m, nil
	case "tab", "down":
		cmd := m.focusField((m.formFocus + 1) % fieldCount)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.focusField((m.formFocus + fieldCount - 1) % fieldCount)
		return m, cmd
	case "enter":
		if m.formFocus < fieldCount-1 {
			cmd := m.focusField(m.formFocus + 1)
			return m, cmd
		}
		form := m.formValues()
		if errs := form.Validate(); errs != nil {
			m.fieldErrs = errs
			return m, nil
		}
		if m.store.State().Empty() {
			m.submitErr = checkout.ErrEmptyCart
			return m, nil
		}
		m.fieldErrs = nil
		m.submitErr = nil
		m.submitting = true
		return m, tea.Batch(m.spinner.Tick, m.submit(form))
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m Model) updateConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.globalKey(msg); ok {
		return next, cmd
	}
	if msg.String() == "enter" || msg.String() == "esc" {
		m.screen = screenMenu
	}
	return m, nil
}

func (m *Model) openTrack() tea.Cmd {
	m.screen = screenTrack
	m.trackErr = nil
	if m.order != nil && m.trackInput.Value() == "" {
		m.trackInput.SetValue(formatID(m.order.ID))
	}
	return m.trackInput.Focus()
}

func (m Model) updateTrack(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.trackInput.Blur()
		m.screen = screenMenu
		return m, nil
	case "enter":
		if m.looking {
			return m, nil
		}
		id, err := tracking.ParseOrderID(m.trackInput.Value())
		if err != nil {
			m.trackErr = err
			m.trackResult = nil
			return m, nil
		}
		m.looking = true
		m.trackErr = nil
		return m, tea.Batch(m.spinner.Tick, m.lookup(id))
	}

	var cmd tea.Cmd
	m.trackInput, cmd = m.trackInput.Update(msg)
	return m, cmd
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func isUnavailable(err error) bool {
	return errors.Is(err, types.ErrBackendUnavailable)
}
