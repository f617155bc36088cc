package tui

import (
	"context"
	"fmt"
	"strings"

	"coin-converter/internal/converter"
	"coin-converter/internal/domain"
	"coin-converter/internal/provider"
	"coin-converter/internal/registry"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const unsupportedNotice = "Cannot convert between these two."

// Controller is the converter state machine as the terminal UI drives it.
type Controller interface {
	Updated() <-chan struct{}
	Snapshot() converter.Snapshot
	EditFrom(value string) bool
	EditTo(value string) bool
	Select(side converter.Side, symbol string)
	Refresh()
	SetSearch(side converter.Side, term string)
	Close()
}

type updatedMsg struct{}

// Model renders one converter session. It owns the controller and closes it on quit.
type Model struct {
	ctx  context.Context
	ctrl Controller

	fromInput   textinput.Model
	toInput     textinput.Model
	searchInput textinput.Model

	focus     converter.Side
	searching bool
	cursor    int

	snap   converter.Snapshot
	width  int
	height int
}

// NewModel wraps ctrl. ctx bounds the goroutine that waits for controller updates
// and should end with the session.
func NewModel(ctx context.Context, ctrl Controller) *Model {
	from := textinput.New()
	from.Prompt = "> "
	from.CharLimit = 32
	from.Focus()

	to := textinput.New()
	to.Prompt = "> "
	to.CharLimit = 32

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "symbol prefix"
	search.CharLimit = 16

	m := &Model{
		ctx:         ctx,
		ctrl:        ctrl,
		fromInput:   from,
		toInput:     to,
		searchInput: search,
		focus:       converter.SideFrom,
	}
	m.sync()
	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForUpdate())
}

func (m *Model) waitForUpdate() tea.Cmd {
	updated := m.ctrl.Updated()
	done := m.ctx.Done()
	return func() tea.Msg {
		select {
		case <-updated:
			return updatedMsg{}
		case <-done:
			return nil
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case updatedMsg:
		m.sync()
		return m, m.waitForUpdate()
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.ctrl.Close()
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateFields(msg)
	}
	return m, nil
}

func (m *Model) updateFields(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Switch):
		m.setFocus(1 - m.focus)
		return m, nil
	case key.Matches(msg, keys.Search):
		m.openSearch()
		return m, textinput.Blink
	case key.Matches(msg, keys.Refresh):
		m.ctrl.Refresh()
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == converter.SideFrom {
		before := m.fromInput.Value()
		m.fromInput, cmd = m.fromInput.Update(msg)
		if v := m.fromInput.Value(); v != before {
			m.ctrl.EditFrom(v)
		}
	} else {
		before := m.toInput.Value()
		m.toInput, cmd = m.toInput.Update(msg)
		if v := m.toInput.Value(); v != before {
			m.ctrl.EditTo(v)
		}
	}
	m.snap = m.ctrl.Snapshot()
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.closeSearch()
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.choices())-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, keys.Select):
		if choices := m.choices(); m.cursor < len(choices) {
			m.choose(choices[m.cursor].Symbol)
		}
		return m, nil
	}

	if m.searchInput.Value() == "" {
		if i, ok := popularIndex(msg.String(), len(domain.PopularChoices)); ok {
			m.choose(domain.PopularChoices[i])
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != before {
		m.cursor = 0
		m.ctrl.SetSearch(m.focus, v)
		m.snap = m.ctrl.Snapshot()
	}
	return m, cmd
}

// choices is what the picker lists: search results, or the popular choices while
// the term is empty.
func (m *Model) choices() []domain.Asset {
	if strings.TrimSpace(m.searchInput.Value()) == "" {
		assets := make([]domain.Asset, 0, len(domain.PopularChoices))
		for _, symbol := range domain.PopularChoices {
			asset, _ := registry.Lookup(symbol)
			assets = append(assets, asset)
		}
		return assets
	}
	return m.snap.Search.Results
}

func (m *Model) choose(symbol string) {
	m.ctrl.Select(m.focus, symbol)
	m.searching = false
	m.searchInput.Reset()
	m.searchInput.Blur()
	m.setFocus(m.focus)
	m.sync()
}

func (m *Model) openSearch() {
	m.searching = true
	m.cursor = 0
	m.searchInput.Reset()
	m.searchInput.Focus()
	m.fromInput.Blur()
	m.toInput.Blur()
}

func (m *Model) closeSearch() {
	m.searching = false
	m.searchInput.Reset()
	m.searchInput.Blur()
	m.ctrl.SetSearch(m.focus, "")
	m.setFocus(m.focus)
	m.snap = m.ctrl.Snapshot()
}

func (m *Model) setFocus(side converter.Side) {
	m.focus = side
	if side == converter.SideFrom {
		m.fromInput.Focus()
		m.toInput.Blur()
	} else {
		m.toInput.Focus()
		m.fromInput.Blur()
	}
}

// sync pulls the controller state into the text fields.
func (m *Model) sync() {
	m.snap = m.ctrl.Snapshot()
	if m.fromInput.Value() != m.snap.FromField {
		m.fromInput.SetValue(m.snap.FromField)
	}
	if m.toInput.Value() != m.snap.ToField {
		m.toInput.SetValue(m.snap.ToField)
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.snap.Meta.Title))
	b.WriteString("\n\n")

	fromPanel := m.panel(converter.SideFrom, m.snap.Inputs.From, m.fromInput.View())
	toPanel := m.panel(converter.SideTo, m.snap.Inputs.To, m.toInput.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, fromPanel, " ", toPanel))
	b.WriteString("\n")

	quote := m.snap.Quote
	switch {
	case quote != nil && !quote.Supported():
		b.WriteString(noticeStyle.Render(unsupportedNotice))
		b.WriteString("\n")
	case quote.HasChart():
		b.WriteString(dimStyle.Render("Chart: " + quote.Chart.Link))
		b.WriteString("\n")
	}

	if m.snap.Err != nil {
		b.WriteString(errorStyle.Render("Conversion unavailable: " + m.snap.Err.Error()))
		b.WriteString("\n")
	}

	if m.searching {
		b.WriteString("\n")
		b.WriteString(m.pickerView())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Share: " + m.snap.Meta.ShareURL))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) panel(side converter.Side, symbol, field string) string {
	var b strings.Builder
	b.WriteString(symbolStyle.Render(symbol))
	b.WriteString(" ")
	b.WriteString(dimStyle.Render(registry.NameFor(symbol)))
	b.WriteString("\n")
	b.WriteString(field)
	if pending := m.pending(side); pending {
		b.WriteString("\n")
		b.WriteString(pendingStyle.Render("updating..."))
	}
	if link := m.coinLink(side); link != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(link))
	}

	style := panelStyle
	if side == m.focus {
		style = focusedPanelStyle
	}
	return style.Render(b.String())
}

func (m *Model) pending(side converter.Side) bool {
	switch m.snap.State {
	case converter.StateEditingFrom:
		return side == converter.SideTo
	case converter.StateEditingTo:
		return side == converter.SideFrom
	}
	return false
}

func (m *Model) coinLink(side converter.Side) string {
	if m.snap.Quote == nil {
		return ""
	}
	if side == converter.SideFrom {
		return provider.HrefFromLink(m.snap.Quote.FromCoinLink)
	}
	return provider.HrefFromLink(m.snap.Quote.ToCoinLink)
}

func (m *Model) pickerView() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Select %s asset\n", m.focus))
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")

	choices := m.choices()
	if len(choices) == 0 {
		b.WriteString(dimStyle.Render("No matches"))
		b.WriteString("\n")
		return b.String()
	}
	popular := strings.TrimSpace(m.searchInput.Value()) == ""
	for i, asset := range choices {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		label := asset.Symbol + " " + dimStyle.Render(asset.Name)
		if popular {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		b.WriteString(prefix + label + "\n")
	}
	return b.String()
}

func (m *Model) helpLine() string {
	if m.searching {
		return "type to search • 1-9 popular • enter select • esc back • ctrl+c quit"
	}
	return "tab switch side • / pick asset • ctrl+r refresh • ctrl+c quit"
}
