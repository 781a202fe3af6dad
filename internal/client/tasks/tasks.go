// Package tasks implements the to-do list state transitions. Every function
// takes a list and returns a fresh one; the input slice is never modified.
// The boolean result reports whether anything changed, so callers can skip
// persisting no-ops.
package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// Add prepends a new active task. Blank text is a no-op.
func Add(list []models.Task, id, text string, now time.Time) ([]models.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return list, false
	}

	t := models.Task{ID: id, Text: text, CreatedAt: now}
	out := make([]models.Task, 0, len(list)+1)
	out = append(out, t)
	return append(out, list...), true
}

// Delete removes the task with id. Unknown ids are a no-op.
func Delete(list []models.Task, id string) ([]models.Task, bool) {
	out := make([]models.Task, 0, len(list))
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	if len(out) == len(list) {
		return list, false
	}
	return out, true
}

// Toggle flips the completion state of id, stamping or clearing CompletedAt.
func Toggle(list []models.Task, id string, now time.Time) ([]models.Task, bool) {
	return update(list, id, func(t *models.Task) bool {
		t.Completed = !t.Completed
		if t.Completed {
			at := now
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
		return true
	})
}

// Edit replaces the text of id. Blank or unchanged text is a no-op.
func Edit(list []models.Task, id, text string) ([]models.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return list, false
	}
	return update(list, id, func(t *models.Task) bool {
		if t.Text == text {
			return false
		}
		t.Text = text
		return true
	})
}

// ClearCompleted drops every completed task and keeps the rest in order.
func ClearCompleted(list []models.Task) ([]models.Task, bool) {
	out := make([]models.Task, 0, len(list))
	for _, t := range list {
		if !t.Completed {
			out = append(out, t)
		}
	}
	if len(out) == len(list) {
		return list, false
	}
	return out, true
}

// Visible returns the tasks selected by f in stored order.
func Visible(list []models.Task, f models.Filter) []models.Task {
	out := make([]models.Task, 0, len(list))
	for _, t := range list {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// ActiveCount is the number of tasks not yet completed.
func ActiveCount(list []models.Task) int {
	n := 0
	for _, t := range list {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Summary renders "1 task left" or "N tasks left" for the active count.
func Summary(list []models.Task) string {
	n := ActiveCount(list)
	if n == 1 {
		return "1 task left"
	}
	return fmt.Sprintf("%d tasks left", n)
}

// Resolve finds the id of the single task whose id equals or starts with
// prefix.
func Resolve(list []models.Task, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("task id: %w", common.ErrorNotFound)
	}

	for _, t := range list {
		if t.ID == prefix {
			return t.ID, nil
		}
	}

	var match string
	for _, t := range list {
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", common.ErrAmbiguousID, prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("task %q: %w", prefix, common.ErrorNotFound)
	}
	return match, nil
}

func update(list []models.Task, id string, fn func(t *models.Task) bool) ([]models.Task, bool) {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		t := list[i]
		if !fn(&t) {
			return list, false
		}
		out := make([]models.Task, len(list))
		copy(out, list)
		out[i] = t
		return out, true
	}
	return list, false
}
