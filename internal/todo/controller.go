// Package todo owns the ordered task list, applies every mutation to it and
// writes the full list through to a Store after each change.
package todo

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tagdo/internal/task"
)

const (
	// AllTags is the filter value that selects every task.
	AllTags = "all"
	// CustomTag is the tag choice that takes the free-text custom tag.
	CustomTag = "custom"
)

// DefaultTags is the predefined tag set.
var DefaultTags = []string{"Work", "Study", "Personal", "Health", "Shopping"}

// Draft holds the new-task form selections.
type Draft struct {
	Tag       string
	CustomTag string
	Deadline  *task.Date
}

// ResolvedTag is the tag a task added from d would carry.
func (d Draft) ResolvedTag() string {
	if d.Tag == CustomTag {
		return strings.TrimSpace(d.CustomTag)
	}
	return d.Tag
}

type Options struct {
	// Tags is the predefined tag set offered by the form.
	Tags []string
	// DefaultTag is selected when the form resets. It falls back to the
	// first of Tags when it is not one of them.
	DefaultTag string
	// Filter is the initial filter tag.
	Filter string
	Now    func() time.Time
	Logger *log.Logger
}

type Controller struct {
	store      Store
	tasks      []task.Task
	filter     string
	draft      Draft
	tags       []string
	defaultTag string
	now        func() time.Time
	lastID     int64
	logger     *log.Logger
}

// New loads the task list from store. Unreadable or corrupt data is logged
// and replaced by an empty list.
func New(store Store, opts Options) *Controller {
	c := &Controller{
		store:  store,
		tags:   opts.Tags,
		now:    opts.Now,
		logger: opts.Logger,
	}
	if len(c.tags) == 0 {
		c.tags = DefaultTags
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.defaultTag = c.tags[0]
	if slices.Contains(c.tags, opts.DefaultTag) {
		c.defaultTag = opts.DefaultTag
	}
	c.SetFilter(opts.Filter)
	c.resetDraft()

	tasks, ok, err := store.Load()
	switch {
	case err != nil:
		c.logger.Warn("stored tasks unreadable, starting empty", "err", err)
		tasks = nil
	case !ok:
		c.logger.Debug("no stored tasks")
	}
	c.tasks = c.normalize(tasks)
	c.logger.Info("tasks loaded", "count", len(c.tasks))
	return c
}

// normalize drops records with blank text and gives missing or duplicate
// ids fresh values.
func (c *Controller) normalize(in []task.Task) []task.Task {
	out := make([]task.Task, 0, len(in))
	for _, t := range in {
		if t.ID > c.lastID {
			c.lastID = t.ID
		}
	}
	seen := make(map[int64]bool, len(in))
	for _, t := range in {
		if strings.TrimSpace(t.Text) == "" {
			c.logger.Warn("dropping stored task with empty text", "id", t.ID)
			continue
		}
		if t.ID <= 0 || seen[t.ID] {
			old := t.ID
			t.ID = c.nextID()
			c.logger.Warn("reassigned stored task id", "old", old, "new", t.ID)
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// nextID derives an id from the current time in milliseconds, bumped past
// every id handed out so far.
func (c *Controller) nextID() int64 {
	id := c.now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// Tasks returns a copy of the full list in display order.
func (c *Controller) Tasks() []task.Task {
	return slices.Clone(c.tasks)
}

func (c *Controller) Len() int {
	return len(c.tasks)
}

// Get returns the task with id.
func (c *Controller) Get(id int64) (task.Task, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}
	return c.tasks[i], true
}

// PredefinedTags returns the tag choices offered by the form, without CustomTag.
func (c *Controller) PredefinedTags() []string {
	return slices.Clone(c.tags)
}

func (c *Controller) indexOf(id int64) int {
	return slices.IndexFunc(c.tasks, func(t task.Task) bool { return t.ID == id })
}

// commit replaces the list and writes it through.
func (c *Controller) commit(next []task.Task, op string, id int64) error {
	c.tasks = next
	c.logger.Debug("tasks changed", "op", op, "id", id, "count", len(next))
	if err := c.store.Save(c.tasks); err != nil {
		c.logger.Error("save failed", "op", op, "err", err)
		return err
	}
	return nil
}

// Add appends a task built from text and d. Blank text is a no-op and
// returns false.
func (c *Controller) Add(text string, d Draft) (task.Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task.Task{}, false, nil
	}
	t := task.Task{
		ID:   c.nextID(),
		Text: text,
		Tag:  d.ResolvedTag(),
	}
	if d.Deadline != nil {
		due := *d.Deadline
		t.Deadline = &due
	}
	next := append(slices.Clone(c.tasks), t)
	return t, true, c.commit(next, "add", t.ID)
}

// Submit adds a task from the held form draft and resets the draft after a
// successful add.
func (c *Controller) Submit(text string) (task.Task, bool, error) {
	t, ok, err := c.Add(text, c.draft)
	if ok {
		c.resetDraft()
	}
	return t, ok, err
}

func (c *Controller) Delete(id int64) error {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(c.tasks), i, i+1)
	return c.commit(next, "delete", id)
}

func (c *Controller) Toggle(id int64) error {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	next := slices.Clone(c.tasks)
	next[i].IsComplete = !next[i].IsComplete
	return c.commit(next, "toggle", id)
}

// EditText replaces the text of task id. Blank text or text equal to the
// current one is a no-op.
func (c *Controller) EditText(id int64, text string) error {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" || text == c.tasks[i].Text {
		return nil
	}
	next := slices.Clone(c.tasks)
	next[i].Text = text
	return c.commit(next, "edit", id)
}
