package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tagdo/internal/present"
	"tagdo/internal/task"
)

// rowEditor is the inline editor of one row. A row is in display state
// unless its id is the editor's id.
type rowEditor struct {
	id       int64
	original string
	input    textinput.Model
}

func newRowEditor() rowEditor {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = ""
	return rowEditor{input: ti}
}

func (r *rowEditor) active() bool {
	return r.id != 0
}

func (r *rowEditor) editing(id int64) bool {
	return r.active() && r.id == id
}

func (r *rowEditor) begin(t task.Task) tea.Cmd {
	r.id = t.ID
	r.original = t.Text
	r.input.SetValue(t.Text)
	r.input.CursorEnd()
	return r.input.Focus()
}

// commit leaves the editing state. It returns the trimmed draft and whether
// it should replace the stored text.
func (r *rowEditor) commit() (id int64, text string, changed bool) {
	id = r.id
	text = strings.TrimSpace(r.input.Value())
	changed = text != "" && text != r.original
	r.reset()
	return id, text, changed
}

// cancel leaves the editing state and drops the draft.
func (r *rowEditor) cancel() {
	r.reset()
}

func (r *rowEditor) reset() {
	r.id = 0
	r.original = ""
	r.input.SetValue("")
	r.input.Blur()
}

func (r rowEditor) update(msg tea.Msg) (rowEditor, tea.Cmd) {
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

type rowView struct {
	task     task.Task
	selected bool
	grabbed  bool
	today    task.Date
}

func (m Model) renderRow(v rowView) string {
	cursor := " "
	if v.selected {
		cursor = ">"
	}
	handle := "⠿"
	if m.row.editing(v.task.ID) {
		handle = " "
	}
	checkbox := "[ ]"
	if v.task.IsComplete {
		checkbox = "[x]"
	}

	var text string
	switch {
	case m.row.editing(v.task.ID):
		text = m.row.input.View()
	case v.task.IsComplete:
		text = doneStyle.Render(v.task.Text)
	default:
		text = v.task.Text
	}

	parts := []string{cursor, handle, checkbox, text}
	if !m.row.editing(v.task.ID) {
		if v.task.HasTag() {
			parts = append(parts, tagBadge(v.task.Tag))
		}
		if b, ok := present.DeadlineBadge(v.task, v.today); ok {
			parts = append(parts, deadlineBadge(b))
		}
	}
	line := strings.Join(parts, " ")
	if v.grabbed {
		line = grabStyle.Render(line)
	}
	return line
}
