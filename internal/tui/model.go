// Package tui provides the Bubble Tea viewer for streamed interpretations.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type deltaMsg string

type streamDoneMsg struct {
	err error
}

// Model shows a streamed reply as it arrives.
type Model struct {
	title   string
	content <-chan string
	errs    <-chan error

	spinner  spinner.Model
	viewport viewport.Model
	ready    bool

	text strings.Builder
	done bool
	err  error

	width  int
	height int
}

// NewModel reads deltas from content until it closes, then one value from
// errs.
func NewModel(title string, content <-chan string, errs <-chan error) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &Model{
		title:   title,
		content: content,
		errs:    errs,
		spinner: s,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForDelta)
}

func (m *Model) waitForDelta() tea.Msg {
	delta, ok := <-m.content
	if ok {
		return deltaMsg(delta)
	}
	return streamDoneMsg{err: <-m.errs}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case deltaMsg:
		m.text.WriteString(string(msg))
		m.refresh()
		return m, m.waitForDelta
	case streamDoneMsg:
		m.done = true
		m.err = msg.err
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *Model) resize() {
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = bodyHeight
	}
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(wrapText(m.text.String(), m.width))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	header := titleStyle.Render(m.title)
	if !m.done {
		header = m.spinner.View() + " " + header
	}
	if !m.ready {
		return header + "\n" + m.text.String()
	}
	return header + "\n" + m.viewport.View() + "\n" + m.renderFooter()
}

func (m *Model) renderFooter() string {
	if m.err != nil {
		return errorStyle.Render("错误: " + m.err.Error())
	}
	status := "接收中"
	if m.done {
		status = "完成"
	}
	chars := len([]rune(m.text.String()))
	return footerStyle.Render(fmt.Sprintf("%s · %d 字 · ↑/↓ 滚动 · q 退出", status, chars))
}

// Text returns everything received so far.
func (m *Model) Text() string {
	return m.text.String()
}

// Err returns the stream error once the stream has ended.
func (m *Model) Err() error {
	return m.err
}

// Run shows the viewer until the user quits and returns the received text
// and the stream error, if any.
func Run(ctx context.Context, title string, content <-chan string, errs <-chan error) (string, error) {
	m := NewModel(title, content, errs)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return m.Text(), err
	}
	return m.Text(), m.Err()
}
