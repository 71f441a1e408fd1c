package task

import (
	"encoding/json"
	"strings"
)

// Task is one entry of the todo list.
type Task struct {
	ID         int64
	Text       string
	IsComplete bool
	Tag        string
	Deadline   *Date
}

// record is the persisted shape of a Task. Older records may lack tag and
// deadline, and deadline may be null or an empty string.
type record struct {
	ID         int64   `json:"id"`
	Text       string  `json:"text"`
	IsComplete bool    `json:"isComplete"`
	Tag        string  `json:"tag"`
	Deadline   *string `json:"deadline"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	r := record{
		ID:         t.ID,
		Text:       t.Text,
		IsComplete: t.IsComplete,
		Tag:        t.Tag,
	}
	if t.Deadline != nil {
		s := t.Deadline.String()
		r.Deadline = &s
	}
	return json.Marshal(r)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*t = Task{
		ID:         r.ID,
		Text:       r.Text,
		IsComplete: r.IsComplete,
		Tag:        r.Tag,
	}
	if r.Deadline != nil && strings.TrimSpace(*r.Deadline) != "" {
		if d, err := ParseDate(*r.Deadline); err == nil {
			t.Deadline = &d
		}
	}
	return nil
}

// HasTag reports whether the task carries a tag usable for filtering.
func (t Task) HasTag() bool {
	return t.Tag != ""
}

// Encode serializes a task list. An empty or nil list encodes as "[]".
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses a serialized task list. A JSON null decodes to an empty list.
func Decode(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}
