package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tagdo/internal/task"
	"tagdo/internal/todo"
)

type formField int

const (
	fieldText formField = iota
	fieldTag
	fieldCustom
	fieldDeadline
)

func (f formField) label() string {
	switch f {
	case fieldText:
		return "Task"
	case fieldTag:
		return "Tag"
	case fieldCustom:
		return "Custom tag"
	default:
		return "Deadline"
	}
}

// addForm is the new-task form. Tag selection lives in the controller draft.
type addForm struct {
	field    formField
	text     textinput.Model
	custom   textinput.Model
	deadline textinput.Model
}

func newAddForm() addForm {
	text := textinput.New()
	text.Placeholder = "Add your task"
	text.CharLimit = 256
	text.Width = 40

	custom := textinput.New()
	custom.Placeholder = "Enter custom tag"
	custom.CharLimit = 32
	custom.Width = 20

	deadline := textinput.New()
	deadline.Placeholder = "YYYY-MM-DD (optional)"
	deadline.CharLimit = 10
	deadline.Width = 20

	return addForm{text: text, custom: custom, deadline: deadline}
}

func (f *addForm) input() *textinput.Model {
	switch f.field {
	case fieldText:
		return &f.text
	case fieldCustom:
		return &f.custom
	case fieldDeadline:
		return &f.deadline
	default:
		return nil
	}
}

func (f *addForm) focus(field formField) tea.Cmd {
	f.text.Blur()
	f.custom.Blur()
	f.deadline.Blur()
	f.field = field
	if in := f.input(); in != nil {
		return in.Focus()
	}
	return nil
}

// fields lists the reachable fields; the custom tag input only exists while
// the custom option is selected.
func fields(d todo.Draft) []formField {
	if d.Tag == todo.CustomTag {
		return []formField{fieldText, fieldTag, fieldCustom, fieldDeadline}
	}
	return []formField{fieldText, fieldTag, fieldDeadline}
}

func (f *addForm) step(d todo.Draft, delta int) tea.Cmd {
	fs := fields(d)
	i := slices.Index(fs, f.field)
	if i < 0 {
		i = 0
	}
	return f.focus(fs[wrapIndex(i+delta, len(fs))])
}

func (f *addForm) clear() {
	f.text.SetValue("")
	f.custom.SetValue("")
	f.deadline.SetValue("")
	f.text.Blur()
	f.custom.Blur()
	f.deadline.Blur()
	f.field = fieldText
}

// parseDeadline reads the deadline input. Blank means no deadline; dates
// before today are refused.
func parseDeadline(v string, today task.Date) (*task.Date, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	d, err := task.ParseDate(v)
	if err != nil {
		return nil, err
	}
	if d.Before(today) {
		return nil, fmt.Errorf("deadline %s is in the past", d)
	}
	return &d, nil
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	m.mode = modeAdd
	cmd := m.form.focus(fieldText)
	m.status = "Add mode: type a task, tab to pick tag/deadline, enter to add, esc to cancel"
	return m, cmd
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case m.cfg.Keys.Cancel:
		m.form.clear()
		m.mode = modeList
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		return m.submitAdd()
	case m.cfg.Keys.NextField, "down":
		return m, m.form.step(m.ctrl.Draft(), 1)
	case m.cfg.Keys.PrevField, "up":
		return m, m.form.step(m.ctrl.Draft(), -1)
	}

	if m.form.field == fieldTag {
		switch key {
		case "left", "h":
			m.cycleTag(-1)
		case "right", "l", " ":
			m.cycleTag(1)
		}
		return m, nil
	}

	in := m.form.input()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if m.form.field == fieldCustom {
		m.ctrl.SetCustomTag(m.form.custom.Value())
	}
	return m, cmd
}

func (m *Model) cycleTag(delta int) {
	choices := m.ctrl.TagChoices()
	i := slices.Index(choices, m.ctrl.Draft().Tag)
	if i < 0 {
		i = 0
		delta = 0
	}
	next := choices[wrapIndex(i+delta, len(choices))]
	m.ctrl.SelectTag(next)
	if next != todo.CustomTag {
		m.form.custom.SetValue("")
	}
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	due, err := parseDeadline(m.form.deadline.Value(), m.today())
	if err != nil {
		m.status = fmt.Sprintf("deadline invalid: %v", err)
		return m, nil
	}
	m.ctrl.SetCustomTag(m.form.custom.Value())
	m.ctrl.SetDeadline(due)

	added, ok, err := m.ctrl.Submit(m.form.text.Value())
	if !ok {
		m.status = "Task cannot be empty"
		return m, nil
	}
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	} else {
		m.status = "Added task"
	}
	m.form.clear()
	m.mode = modeList
	if i := indexOfID(m.ctrl.Filtered(), added.ID); i >= 0 {
		m.cursor = i
	}
	return m, nil
}

func (m Model) renderForm() string {
	d := m.ctrl.Draft()
	var b strings.Builder
	b.WriteString(titleStyle.Render("New task"))
	b.WriteString("\n")
	for _, f := range fields(d) {
		prefix := " "
		if f == m.form.field {
			prefix = ">"
		}
		var val string
		switch f {
		case fieldText:
			val = m.form.text.View()
		case fieldCustom:
			val = m.form.custom.View()
		case fieldDeadline:
			val = m.form.deadline.View()
		case fieldTag:
			val = m.renderTagChoices(d)
		}
		b.WriteString(fmt.Sprintf("%s %-10s : %s\n", prefix, f.label(), val))
	}
	return b.String()
}

func (m Model) renderTagChoices(d todo.Draft) string {
	choices := m.ctrl.TagChoices()
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		label := c
		if c == todo.CustomTag {
			label = "Custom"
		}
		if c == d.Tag {
			out = append(out, tagOn.Render(label))
		} else {
			out = append(out, filterOff.Render(label))
		}
	}
	return strings.Join(out, "")
}
