package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func stream(deltas []string, err error) (<-chan string, <-chan error) {
	content := make(chan string, len(deltas))
	errs := make(chan error, 1)
	for _, d := range deltas {
		content <- d
	}
	close(content)
	errs <- err
	close(errs)
	return content, errs
}

// drain feeds the model until the stream reports completion.
func drain(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; i < 100; i++ {
		msg := m.waitForDelta()
		m.Update(msg)
		if _, ok := msg.(streamDoneMsg); ok {
			return
		}
	}
	t.Fatalf("stream did not finish")
}

func TestModelCollectsDeltas(t *testing.T) {
	content, errs := stream([]string{"日主", "甲木"}, nil)
	m := NewModel("AI解读", content, errs)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	drain(t, m)

	if m.Text() != "日主甲木" {
		t.Fatalf("unexpected text %q", m.Text())
	}
	if m.Err() != nil {
		t.Fatalf("unexpected error %v", m.Err())
	}
	view := m.View()
	if !containsAll(view, []string{"AI解读", "日主甲木", "完成", "4 字"}) {
		t.Fatalf("view missing expected segments: %s", view)
	}
}

func TestModelStreamError(t *testing.T) {
	content, errs := stream([]string{"半"}, errors.New("API错误: 500"))
	m := NewModel("AI解读", content, errs)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	drain(t, m)

	if m.Err() == nil {
		t.Fatalf("expected stream error")
	}
	if !strings.Contains(m.renderFooter(), "API错误: 500") {
		t.Fatalf("footer should show the error: %s", m.renderFooter())
	}
}

func TestModelBeforeResize(t *testing.T) {
	content, errs := stream([]string{"命"}, nil)
	m := NewModel("AI解读", content, errs)
	m.Update(m.waitForDelta())
	if !strings.Contains(m.View(), "命") {
		t.Fatalf("unsized view should show raw text: %s", m.View())
	}
}

func TestModelQuitKeys(t *testing.T) {
	content, errs := stream(nil, nil)
	m := NewModel("AI解读", content, errs)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
