// Package tasks stores each user's task list under "todo-tasks-<userId>".
package tasks

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// KeyPrefix is prepended to the user id to form the storage key.
const KeyPrefix = "todo-tasks-"

// Key returns the storage key of userID's task list.
func Key(userID string) string {
	return KeyPrefix + userID
}

type Repository interface {
	// Load returns an empty list when nothing is stored for userID.
	Load(ctx context.Context, userID string) ([]models.Task, error)
	// Save replaces userID's whole list.
	Save(ctx context.Context, userID string, list []models.Task) error
}
