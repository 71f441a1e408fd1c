package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"tagdo/internal/config"
	"tagdo/internal/present"
	"tagdo/internal/task"
	"tagdo/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeGrab
)

// grabState tracks a row picked up for reordering. Indices refer to the
// filtered view.
type grabState struct {
	src int
	dst int
}

type Model struct {
	ctrl       *todo.Controller
	cfg        config.Config
	logger     *log.Logger
	today      func() task.Date
	cursor     int
	mode       mode
	form       addForm
	row        rowEditor
	grab       grabState
	status     string
	confirmDel bool
	pendingDel *task.Task
}

func Run(ctrl *todo.Controller, cfg config.Config, configPath string, firstLaunch bool, logger *log.Logger) error {
	m := newModel(ctrl, cfg, logger, func() task.Date { return task.DateOf(time.Now()) })
	if firstLaunch {
		m.status = fmt.Sprintf("Created %s. Press '%s' to add a task.", configPath, cfg.Keys.Add)
	}
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func newModel(ctrl *todo.Controller, cfg config.Config, logger *log.Logger, today func() task.Date) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		ctrl:   ctrl,
		cfg:    cfg,
		logger: logger,
		today:  today,
		mode:   modeList,
		form:   newAddForm(),
		row:    newRowEditor(),
		status: fmt.Sprintf("Press '%s' to add, space to toggle, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Delete),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.form.text.Width = msg.Width - 20
		m.row.input.Width = msg.Width - 20
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	case modeGrab:
		return m.updateGrabMode(key)
	}
	return m.updateListMode(key)
}

func (m Model) view() []task.Task {
	return m.ctrl.Filtered()
}

func (m Model) selected() (task.Task, bool) {
	v := m.view()
	if len(v) == 0 {
		return task.Task{}, false
	}
	return v[clampCursor(m.cursor, len(v))], true
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	n := len(m.view())
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, n)
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, n)
	case m.cfg.Keys.Add:
		return m.startAdd()
	case m.cfg.Keys.Toggle:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.ctrl.Toggle(t.ID); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = "Toggled task"
	case m.cfg.Keys.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Text)
	case m.cfg.Keys.Detail:
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		m.status = m.detailLine(t)
	case m.cfg.Keys.Edit:
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		m.mode = modeEdit
		m.status = "Editing: enter to save, esc to cancel"
		return m, m.row.begin(t)
	case m.cfg.Keys.Grab:
		if n == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, n)
		m.grab = grabState{src: m.cursor, dst: m.cursor}
		m.mode = modeGrab
		m.status = "Moving: up/down to choose a spot, enter to drop, esc to cancel"
	case m.cfg.Keys.Filter:
		m.ctrl.SetFilter(nextFilter(m.ctrl.TagUniverse(), m.ctrl.Filter()))
		m.logger.Debug("filter changed", "tag", m.ctrl.Filter())
		m.cursor = clampCursor(m.cursor, len(m.view()))
		m.status = "Filter: " + m.ctrl.Filter()
	case m.cfg.Keys.FilterReset:
		m.ctrl.SetFilter(todo.AllTags)
		m.cursor = clampCursor(m.cursor, len(m.view()))
		m.status = "Filter: " + todo.AllTags
	}
	return m, nil
}

// nextFilter returns the tag after current in universe, wrapping around. An
// unknown current tag restarts at the first entry.
func nextFilter(universe []string, current string) string {
	i := slices.Index(universe, current)
	if i < 0 {
		return universe[0]
	}
	return universe[wrapIndex(i+1, len(universe))]
}

// updateEditMode drives the row editor: confirm commits, cancel restores,
// and moving focus away commits like confirm.
func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case m.cfg.Keys.Confirm:
		return m.commitEdit(), nil
	case m.cfg.Keys.Cancel:
		m.row.cancel()
		m.mode = modeList
		m.status = "Edit cancelled"
		return m, nil
	case "up", m.cfg.Keys.PrevField:
		m = m.commitEdit()
		m.cursor = clampCursor(m.cursor-1, len(m.view()))
		return m, nil
	case "down", m.cfg.Keys.NextField:
		m = m.commitEdit()
		m.cursor = clampCursor(m.cursor+1, len(m.view()))
		return m, nil
	default:
		var cmd tea.Cmd
		m.row, cmd = m.row.update(msg)
		return m, cmd
	}
}

func (m Model) commitEdit() Model {
	id, text, changed := m.row.commit()
	m.mode = modeList
	if !changed {
		m.status = "No changes"
		return m
	}
	if err := m.ctrl.EditText(id, text); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m
	}
	m.status = "Saved task"
	return m
}

func (m Model) updateGrabMode(key string) (tea.Model, tea.Cmd) {
	n := len(m.view())
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.grab.dst = clampCursor(m.grab.dst+1, n)
	case m.cfg.Keys.Up, "up":
		m.grab.dst = clampCursor(m.grab.dst-1, n)
	case m.cfg.Keys.Confirm, m.cfg.Keys.Grab:
		return m.drop(m.grab.dst), nil
	case m.cfg.Keys.Cancel:
		return m.drop(-1), nil
	}
	return m, nil
}

// drop ends a grab. A negative dst means the row was released outside any
// target and nothing moves.
func (m Model) drop(dst int) Model {
	src := m.grab.src
	m.mode = modeList
	m.grab = grabState{}
	if dst < 0 {
		m.cursor = src
		m.status = "Move cancelled"
		m.logger.Debug("drop without target", "src", src)
		return m
	}
	if err := m.ctrl.Reorder(src, dst); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	} else {
		m.status = "Moved task"
	}
	m.cursor = dst
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo List"))
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	if m.ctrl.Len() == 0 {
		b.WriteString(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("---\n")
	if m.mode == modeAdd {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderDetailPanel())
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))

	return b.String()
}

func (m Model) renderFilterBar() string {
	counts := m.ctrl.TagCounts()
	tags := m.ctrl.TagUniverse()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		label := fmt.Sprintf("%s (%d)", tag, counts[tag])
		if tag == m.ctrl.Filter() {
			out = append(out, filterOn.Render(label))
		} else {
			out = append(out, filterOff.Render(label))
		}
	}
	return "Filter: " + strings.Join(out, "")
}

func (m Model) renderTaskList() string {
	tasks := m.view()
	if len(tasks) == 0 {
		return dimStyle.Render("No tasks tagged "+m.ctrl.Filter()) + "\n"
	}
	grabbed := -1
	if m.mode == modeGrab {
		tasks = previewMove(tasks, m.grab.src, m.grab.dst)
		grabbed = m.grab.dst
	}
	today := m.today()
	var b strings.Builder
	for i, t := range tasks {
		selected := m.cursor == i && m.mode != modeAdd && m.mode != modeGrab
		b.WriteString(m.renderRow(rowView{task: t, selected: selected || i == grabbed, grabbed: i == grabbed, today: today}))
		b.WriteString("\n")
	}
	return b.String()
}

// previewMove returns tasks as they would look after moving src to dst.
func previewMove(tasks []task.Task, src, dst int) []task.Task {
	if src < 0 || src >= len(tasks) || dst < 0 || dst >= len(tasks) {
		return tasks
	}
	out := slices.Clone(tasks)
	moved := out[src]
	out = slices.Delete(out, src, src+1)
	return slices.Insert(out, dst, moved)
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if err := m.ctrl.Delete(m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.status = "Deleted task"
		}
		m.cursor = clampCursor(m.cursor, len(m.view()))
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s toggle • %s delete • %s grab • %s/%s filter • %s detail • %s quit",
		k.Up, k.Down, k.Add, k.Edit, keyName(k.Toggle), k.Delete, k.Grab, k.Filter, k.FilterReset, k.Detail, k.Quit)
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (m Model) detailLine(t task.Task) string {
	info := fmt.Sprintf("Task #%d • %s • %s", t.ID, t.Text, humanDone(t.IsComplete))
	if t.HasTag() {
		info += " • tag:" + t.Tag
	}
	if t.Deadline != nil {
		info += " • due:" + t.Deadline.String()
	}
	return info
}

func (m Model) renderDetailPanel() string {
	t, ok := m.selected()
	if !ok {
		return "No task selected\n"
	}
	deadline := "(none)"
	if t.Deadline != nil {
		deadline = t.Deadline.String()
		if b, ok := present.DeadlineBadge(t, m.today()); ok {
			deadline += " (" + b.Label + ")"
		}
	}
	var b strings.Builder
	b.WriteString("Details\n")
	b.WriteString(fmt.Sprintf("Text     : %s\n", t.Text))
	b.WriteString(fmt.Sprintf("Status   : %s\n", humanDone(t.IsComplete)))
	b.WriteString(fmt.Sprintf("Tag      : %s\n", emptyPlaceholder(t.Tag)))
	b.WriteString(fmt.Sprintf("Deadline : %s\n", deadline))
	return b.String()
}

func indexOfID(tasks []task.Task, id int64) int {
	return slices.IndexFunc(tasks, func(t task.Task) bool { return t.ID == id })
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
