package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagdo/internal/config"
	"tagdo/internal/storage"
	"tagdo/internal/task"
	"tagdo/internal/todo"
)

var today = task.NewDate(2026, time.October, 18)

func newTestModel(t *testing.T, seed ...task.Task) (Model, *todo.Controller) {
	t.Helper()
	store := storage.NewTaskStore(storage.NewMemory())
	if len(seed) > 0 {
		require.NoError(t, store.Save(seed))
	}
	clock := func() time.Time { return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC) }
	ctrl := todo.New(store, todo.Options{Now: clock})
	return newModel(ctrl, config.Default(), nil, func() task.Date { return today }), ctrl
}

var named = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	" ":         tea.KeySpace,
}

func key(s string) tea.KeyMsg {
	if kt, ok := named[s]; ok {
		if kt == tea.KeySpace {
			return tea.KeyMsg{Type: kt, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func texts(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

func seed() []task.Task {
	return []task.Task{
		{ID: 1, Text: "one", Tag: "Work"},
		{ID: 2, Text: "two", Tag: "Study"},
		{ID: 3, Text: "three", Tag: "Work"},
	}
}

func TestAddTask(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = press(m, "a", "Buy milk", "enter")

	require.Equal(t, 1, ctrl.Len())
	got := ctrl.Tasks()[0]
	assert.Equal(t, "Buy milk", got.Text)
	assert.Equal(t, "Work", got.Tag)
	assert.False(t, got.IsComplete)
	assert.Nil(t, got.Deadline)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Added task", m.status)
	assert.Empty(t, m.form.text.Value())
}

func TestAddBlankStaysInForm(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = press(m, "a", "   ", "enter")
	assert.Equal(t, 0, ctrl.Len())
	assert.Equal(t, modeAdd, m.mode)
	assert.Equal(t, "Task cannot be empty", m.status)

	m = press(m, "esc")
	assert.Equal(t, modeList, m.mode)
}

func TestAddWithCustomTag(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = press(m, "a", "water plants", "tab", "left")
	assert.Equal(t, todo.CustomTag, ctrl.Draft().Tag)

	m = press(m, "tab")
	assert.Equal(t, fieldCustom, m.form.field)
	m = press(m, "Garden", "enter")

	require.Equal(t, 1, ctrl.Len())
	assert.Equal(t, "Garden", ctrl.Tasks()[0].Tag)
	assert.Equal(t, todo.Draft{Tag: "Work"}, ctrl.Draft())
	assert.Empty(t, m.form.custom.Value())
}

func TestAddWithDeadline(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = press(m, "a", "Pay rent", "tab", "right", "tab")
	assert.Equal(t, fieldDeadline, m.form.field)
	m = press(m, "2026-10-19", "enter")

	require.Equal(t, 1, ctrl.Len())
	got := ctrl.Tasks()[0]
	assert.Equal(t, "Study", got.Tag)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, "2026-10-19", got.Deadline.String())
	assert.Contains(t, m.View(), "Due tomorrow")
}

func TestAddRejectsBadDeadline(t *testing.T) {
	for _, in := range []string{"2026-10-17", "tomorrow"} {
		m, ctrl := newTestModel(t)
		m = press(m, "a", "late", "tab", "tab", in, "enter")
		assert.Equal(t, 0, ctrl.Len(), in)
		assert.Contains(t, m.status, "deadline invalid", in)
		assert.Equal(t, modeAdd, m.mode)
	}
}

func TestTypingDoesNotTriggerListKeys(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = press(m, "a", "q", "d", "j", "enter")
	require.Equal(t, 1, ctrl.Len())
	assert.Equal(t, "qdj", ctrl.Tasks()[0].Text)
}

func TestToggleAndDeadlineBadge(t *testing.T) {
	due := today.AddDays(-3)
	m, ctrl := newTestModel(t, task.Task{ID: 1, Text: "file taxes", Tag: "Work", Deadline: &due})
	assert.Contains(t, m.View(), "Overdue by 3 days")

	m = press(m, " ")
	got, _ := ctrl.Get(1)
	assert.True(t, got.IsComplete)
	assert.Contains(t, m.View(), "[x]")
	assert.NotContains(t, m.View(), "Overdue")

	m = press(m, " ")
	got, _ = ctrl.Get(1)
	assert.False(t, got.IsComplete)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, ctrl := newTestModel(t, seed()...)
	m = press(m, "j", "d")
	assert.True(t, m.confirmDel)
	m = press(m, "n")
	assert.Equal(t, 3, ctrl.Len())

	m = press(m, "d", "y")
	assert.Equal(t, []string{"one", "three"}, texts(ctrl.Tasks()))
	assert.Equal(t, "Deleted task", m.status)
	assert.Equal(t, 1, m.cursor)
}

func TestRowEditCommit(t *testing.T) {
	m, ctrl := newTestModel(t, seed()...)
	m = press(m, "e")
	require.Equal(t, modeEdit, m.mode)
	assert.True(t, m.row.editing(1))

	m = press(m, " more", "enter")
	got, _ := ctrl.Get(1)
	assert.Equal(t, "one more", got.Text)
	assert.Equal(t, modeList, m.mode)
	assert.False(t, m.row.active())
}

func TestRowEditCancel(t *testing.T) {
	m, ctrl := newTestModel(t, seed()...)
	m = press(m, "e", "xyz", "esc")
	got, _ := ctrl.Get(1)
	assert.Equal(t, "one", got.Text)
	assert.Equal(t, "Edit cancelled", m.status)
	assert.False(t, m.row.active())
}

func TestRowEditUnchanged(t *testing.T) {
	m, _ := newTestModel(t, seed()...)
	m = press(m, "e", "enter")
	assert.Equal(t, "No changes", m.status)
}

func TestRowEditCommitsOnFocusLoss(t *testing.T) {
	m, ctrl := newTestModel(t, seed()...)
	m = press(m, "e", "!", "down")
	got, _ := ctrl.Get(1)
	assert.Equal(t, "one!", got.Text)
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, modeList, m.mode)
}

func TestFilterCycle(t *testing.T) {
	m, ctrl := newTestModel(t, seed()...)
	view := m.View()
	assert.Contains(t, view, "all (3)")
	assert.Contains(t, view, "Work (2)")
	assert.Contains(t, view, "Study (1)")

	m = press(m, "f")
	assert.Equal(t, "Work", ctrl.Filter())
	assert.NotContains(t, m.View(), "two")

	m = press(m, "f", "f")
	assert.Equal(t, todo.AllTags, ctrl.Filter())

	m = press(m, "f", "F")
	assert.Equal(t, todo.AllTags, ctrl.Filter())
}

func TestNextFilter(t *testing.T) {
	u := []string{"all", "Work", "Study"}
	assert.Equal(t, "Work", nextFilter(u, "all"))
	assert.Equal(t, "all", nextFilter(u, "Study"))
	assert.Equal(t, "all", nextFilter(u, "Gone"))
}

func TestGrabReorderUnderFilter(t *testing.T) {
	m, ctrl := newTestModel(t, seed()...)
	m = press(m, "f", "j", "m", "k", "enter")

	assert.Equal(t, []string{"three", "one", "two"}, texts(ctrl.Tasks()))
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "Moved task", m.status)
}

func TestGrabCancelIsNoop(t *testing.T) {
	m, ctrl := newTestModel(t, seed()...)
	m = press(m, "m", "j", "j")
	assert.Equal(t, modeGrab, m.mode)
	assert.Contains(t, m.View(), "Moving")

	m = press(m, "esc")
	assert.Equal(t, []string{"one", "two", "three"}, texts(ctrl.Tasks()))
	assert.Equal(t, "Move cancelled", m.status)
	assert.Equal(t, 0, m.cursor)
}

func TestPreviewMove(t *testing.T) {
	got := previewMove(seed(), 0, 2)
	assert.Equal(t, []string{"two", "three", "one"}, texts(got))
	assert.Equal(t, []string{"one", "two", "three"}, texts(previewMove(seed(), 0, 5)))
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEmptyView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "No tasks yet")
	assert.Contains(t, view, "No task selected")
}
