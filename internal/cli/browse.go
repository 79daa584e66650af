package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rcpsp/internal/cli/formatter"
	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type browseKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Quit key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Prev: key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h", "prev")),
		Next: key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/l", "next")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Quit}
}

// browseViewportKeyMap leaves letter keys free for paging between solutions.
func browseViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// solutionBrowser pages through the ranked solutions of one stored run.
type solutionBrowser struct {
	run       *domain.Run
	solutions []domain.RankedSolution
	current   int
	keys      browseKeyMap
	vp        viewport.Model
	ready     bool
	quitting  bool
}

func newSolutionBrowser(run *domain.Run, solutions []domain.RankedSolution) *solutionBrowser {
	vp := viewport.New(0, 0)
	vp.KeyMap = browseViewportKeyMap()
	vp.MouseWheelEnabled = true
	return &solutionBrowser{
		run:       run,
		solutions: solutions,
		keys:      newBrowseKeyMap(),
		vp:        vp,
	}
}

func (m *solutionBrowser) Init() tea.Cmd { return nil }

func (m *solutionBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-lipgloss.Height(m.header())-1, 1)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if m.current < len(m.solutions)-1 {
				m.current++
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			if m.current > 0 {
				m.current--
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *solutionBrowser) refresh() {
	m.vp.SetContent(m.body())
	m.vp.GotoTop()
}

func (m *solutionBrowser) header() string {
	title := fmt.Sprintf("Run %s · %s", m.run.ShortID(), m.run.Dataset)
	if len(m.solutions) == 0 {
		return formatter.Header(title)
	}
	rs := m.solutions[m.current]
	status := fmt.Sprintf("solution %d/%d · makespan %d · score %d",
		m.current+1, len(m.solutions), rs.Solution.Makespan, rs.TieBreakScore)
	return formatter.Header(title) + "\n" + formatter.Dim(status)
}

func (m *solutionBrowser) body() string {
	if len(m.solutions) == 0 {
		return formatter.Dim(fmt.Sprintf("Run has no stored solutions (status %s).", m.run.Status))
	}
	return formatter.FormatGantt(m.solutions[m.current].Solution)
}

func (m *solutionBrowser) helpLine() string {
	parts := make([]string, 0, 3)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " • "))
}

func (m *solutionBrowser) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.header() + "\n" + m.body() + "\n" + m.helpLine()
	}
	return m.header() + "\n" + m.vp.View() + "\n" + m.helpLine()
}
