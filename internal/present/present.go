// Package present derives how a single task row is displayed: the tag
// category that picks its badge color and the urgency and label of its
// deadline badge.
package present

import (
	"fmt"

	"tagdo/internal/task"
)

// TagCategory is the visual category of a tag badge.
type TagCategory int

const (
	TagDefault TagCategory = iota
	TagWork
	TagStudy
	TagPersonal
	TagHealth
	TagShopping
)

var tagCategories = map[string]TagCategory{
	"Work":     TagWork,
	"Study":    TagStudy,
	"Personal": TagPersonal,
	"Health":   TagHealth,
	"Shopping": TagShopping,
}

// ClassifyTag maps a predefined tag name to its category. Matching is exact;
// custom tags and anything else get TagDefault.
func ClassifyTag(tag string) TagCategory {
	if c, ok := tagCategories[tag]; ok {
		return c
	}
	return TagDefault
}

func (c TagCategory) String() string {
	switch c {
	case TagWork:
		return "work"
	case TagStudy:
		return "study"
	case TagPersonal:
		return "personal"
	case TagHealth:
		return "health"
	case TagShopping:
		return "shopping"
	default:
		return "default"
	}
}

// Urgency classifies a deadline relative to today.
type Urgency int

const (
	Overdue Urgency = iota
	DueToday
	DueTomorrow
	DueSoon
	DueLater
)

func (u Urgency) String() string {
	switch u {
	case Overdue:
		return "overdue"
	case DueToday:
		return "today"
	case DueTomorrow:
		return "tomorrow"
	case DueSoon:
		return "soon"
	default:
		return "future"
	}
}

// DaysUntil returns the whole number of days from today to deadline,
// negative when the deadline has passed.
func DaysUntil(deadline, today task.Date) int {
	return deadline.Sub(today)
}

func ClassifyDeadline(deadline, today task.Date) Urgency {
	return urgencyOf(DaysUntil(deadline, today))
}

func urgencyOf(diff int) Urgency {
	switch {
	case diff < 0:
		return Overdue
	case diff == 0:
		return DueToday
	case diff == 1:
		return DueTomorrow
	case diff <= 3:
		return DueSoon
	default:
		return DueLater
	}
}

// DeadlineLabel renders the human text of a deadline badge.
func DeadlineLabel(deadline, today task.Date) string {
	diff := DaysUntil(deadline, today)
	switch urgencyOf(diff) {
	case Overdue:
		return fmt.Sprintf("Overdue by %s", days(-diff))
	case DueToday:
		return "Due today"
	case DueTomorrow:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %s", days(diff))
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Badge is the deadline badge shown on a row.
type Badge struct {
	Urgency Urgency
	Label   string
}

// DeadlineBadge returns the badge for t, or false when t has no deadline or
// is already complete.
func DeadlineBadge(t task.Task, today task.Date) (Badge, bool) {
	if t.Deadline == nil || t.IsComplete {
		return Badge{}, false
	}
	return Badge{
		Urgency: ClassifyDeadline(*t.Deadline, today),
		Label:   DeadlineLabel(*t.Deadline, today),
	}, true
}
