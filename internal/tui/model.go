// internal/tui/model.go
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pipdeck/pipdeck"
	"github.com/pipdeck/pipdeck/pkg/catalog"
	"github.com/pipdeck/pipdeck/pkg/core"
	"github.com/pipdeck/pipdeck/pkg/view"
)

type screen int

const (
	screenPackages screen = iota
	screenSearch
)

// coordinatorMsg wraps an outbound view-channel message for bubbletea
type coordinatorMsg struct {
	msg view.Msg
}

// channelClosedMsg signals the engine shut the view channel down
type channelClosedMsg struct{}

// Model renders catalog snapshots as they arrive from the view channel.
// All synchronization semantics live in the coordinator; the model only
// displays what it is pushed and routes key presses back as commands.
type Model struct {
	engine *pipdeck.Engine

	screen    screen
	packages  []core.Package
	cursor    int
	hasReq    bool
	loading   bool
	checking  bool
	progress  string
	status    string
	errText   string
	searching bool
	query     string
	results   []core.SearchItem
	page      int
	total     int
}

// New creates a model bound to engine. The first refresh starts on Init.
func New(engine *pipdeck.Engine) Model {
	return Model{engine: engine, page: 1, total: 1}
}

func (m Model) Init() tea.Cmd {
	m.engine.Coordinator.Refresh()
	return m.waitForMessage()
}

// waitForMessage blocks on the view channel and feeds the next outbound
// message into the bubbletea loop.
func (m Model) waitForMessage() tea.Cmd {
	ch := m.engine.Views.Messages()
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}
		return coordinatorMsg{msg: msg}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case channelClosedMsg:
		return m, tea.Quit
	case coordinatorMsg:
		return m.applyViewMsg(msg.msg)
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearchInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) applyViewMsg(msg view.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case view.LoadingMsg:
		m.loading = msg.Loading
		if msg.Loading {
			m.errText = ""
		}
	case view.PackagesMsg:
		m.packages = msg.Packages
		m.hasReq = msg.HasRequirementsFile
		if m.cursor >= len(m.packages) && len(m.packages) > 0 {
			m.cursor = len(m.packages) - 1
		}
	case view.ErrorMsg:
		m.errText = msg.Message
		if msg.NoInterpreter {
			m.errText += " (configure python_path or pass --python)"
		}
	case view.CheckingUpdatesMsg:
		m.checking = msg.Checking
		if !msg.Checking {
			m.status = "up to date with index"
		}
	case view.ProgressMsg:
		m.progress = fmt.Sprintf("updating %s (%d/%d)", msg.Name, msg.Current, msg.Total)
	case view.UpdateCompleteMsg:
		m.progress = ""
		m.status = fmt.Sprintf("updated %d, failed %d", len(msg.Updated), len(msg.Failed))
	case view.SearchResultsMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
		} else {
			m.screen = screenSearch
			m.results = msg.Result.Items
			m.page = msg.Page
			m.total = msg.Result.TotalPages
			m.cursor = 0
		}
	case view.VersionsMsg:
		if len(msg.Versions) > 0 {
			m.status = fmt.Sprintf("%s versions: %s", msg.Name, strings.Join(msg.Versions, " "))
		}
	}
	return m, m.waitForMessage()
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
	case "r":
		m.screen = screenPackages
		m.engine.Coordinator.Refresh()
	case "/":
		m.searching = true
		m.query = ""
	case "esc":
		m.screen = screenPackages
		m.cursor = 0
	case "left", "h":
		if m.screen == screenSearch && m.page > 1 {
			m.engine.Coordinator.Search(m.query, m.page-1)
		}
	case "right", "l":
		if m.screen == screenSearch && m.page < m.total {
			m.engine.Coordinator.Search(m.query, m.page+1)
		}
	case "u":
		if p, ok := m.selectedPackage(); ok && catalog.HasUpdate(p) {
			go m.engine.Coordinator.UpdateSingle(context.Background(), p.Name)
		}
	case "U":
		var names []string
		for _, p := range m.packages {
			if catalog.HasUpdate(p) {
				names = append(names, p.Name)
			}
		}
		if len(names) > 0 {
			go m.engine.Coordinator.UpdatePackages(context.Background(), names)
		}
	case "x":
		if p, ok := m.selectedPackage(); ok {
			go m.engine.Coordinator.Remove(context.Background(), p.Name)
		}
	case "v":
		if p, ok := m.selectedPackage(); ok {
			go m.engine.Coordinator.PickVersion(context.Background(), p.Name, p.Version)
		}
	case "enter":
		if m.screen == screenSearch && m.cursor < len(m.results) {
			item := m.results[m.cursor]
			if spec, ok := core.NewSpec(item.Name, ""); ok {
				go m.engine.Coordinator.Install(context.Background(), spec)
			}
			m.screen = screenPackages
		}
	}
	return m, nil
}

func (m Model) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.engine.Coordinator.Search(m.query, 1)
	case "esc":
		m.searching = false
	case "backspace":
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
		}
	}
	return m, nil
}

func (m Model) selectedPackage() (core.Package, bool) {
	if m.screen != screenPackages || m.cursor >= len(m.packages) {
		return core.Package{}, false
	}
	return m.packages[m.cursor], true
}

func (m Model) itemCount() int {
	if m.screen == screenSearch {
		return len(m.results)
	}
	return len(m.packages)
}
