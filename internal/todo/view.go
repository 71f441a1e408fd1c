package todo

import (
	"slices"
	"strings"

	"tagdo/internal/task"
)

// Filter returns the selected filter tag.
func (c *Controller) Filter() string {
	return c.filter
}

// SetFilter selects the filter tag. An empty tag selects AllTags.
func (c *Controller) SetFilter(tag string) {
	if strings.TrimSpace(tag) == "" {
		tag = AllTags
	}
	c.filter = tag
}

// Filtered returns the tasks matching the current filter, in list order.
func (c *Controller) Filtered() []task.Task {
	if c.filter == AllTags {
		return slices.Clone(c.tasks)
	}
	out := make([]task.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if t.Tag == c.filter {
			out = append(out, t)
		}
	}
	return out
}

// TagUniverse returns AllTags followed by each distinct non-empty tag in
// order of first appearance.
func (c *Controller) TagUniverse() []string {
	out := []string{AllTags}
	seen := map[string]bool{AllTags: true}
	for _, t := range c.tasks {
		if !t.HasTag() || seen[t.Tag] {
			continue
		}
		seen[t.Tag] = true
		out = append(out, t.Tag)
	}
	return out
}

// TagCounts returns the number of tasks per TagUniverse entry. AllTags
// counts the whole list.
func (c *Controller) TagCounts() map[string]int {
	counts := map[string]int{AllTags: len(c.tasks)}
	for _, t := range c.tasks {
		if t.HasTag() && t.Tag != AllTags {
			counts[t.Tag]++
		}
	}
	return counts
}

// Reorder moves the task shown at src in the filtered view to the position
// of the task shown at dst. Both indices refer to Filtered(); they are
// translated to the full list through task ids so a narrowed view never
// moves the wrong task. A dst outside the view means the drop had no target
// and is a no-op.
func (c *Controller) Reorder(src, dst int) error {
	view := c.Filtered()
	if src < 0 || src >= len(view) || dst < 0 || dst >= len(view) || src == dst {
		return nil
	}
	return c.Move(view[src].ID, view[dst].ID)
}

// Move takes task id out of the list and reinserts it at the index the
// task target occupied. Moving down lands after target, moving up before it.
func (c *Controller) Move(id, target int64) error {
	from, to := c.indexOf(id), c.indexOf(target)
	if from < 0 || to < 0 || from == to {
		return nil
	}
	next := slices.Clone(c.tasks)
	moved := next[from]
	next = slices.Delete(next, from, from+1)
	next = slices.Insert(next, to, moved)
	return c.commit(next, "reorder", id)
}

// Draft returns the current form selections.
func (c *Controller) Draft() Draft {
	return c.draft
}

// SelectTag picks a predefined tag or CustomTag for the next add. Picking a
// predefined tag clears the custom text.
func (c *Controller) SelectTag(tag string) {
	c.draft.Tag = tag
	if tag != CustomTag {
		c.draft.CustomTag = ""
	}
}

func (c *Controller) SetCustomTag(text string) {
	c.draft.CustomTag = text
}

// SetDeadline sets the deadline for the next add; nil clears it.
func (c *Controller) SetDeadline(d *task.Date) {
	if d == nil {
		c.draft.Deadline = nil
		return
	}
	due := *d
	c.draft.Deadline = &due
}

// TagChoices returns the predefined tags followed by CustomTag.
func (c *Controller) TagChoices() []string {
	return append(slices.Clone(c.tags), CustomTag)
}

func (c *Controller) resetDraft() {
	c.draft = Draft{Tag: c.defaultTag}
}
