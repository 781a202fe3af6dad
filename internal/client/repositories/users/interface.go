// Package users stores the local user table under the "todo-users" key.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// Key is the storage key of the user table.
const Key = "todo-users"

type Repository interface {
	All(ctx context.Context) ([]models.User, error)
	// FindByEmail returns common.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Add appends u, failing with common.ErrEmailTaken on a duplicate email.
	Add(ctx context.Context, u models.User) error
	// Update applies fn to the user with the given email and stores the
	// result. Nothing is stored if fn fails.
	Update(ctx context.Context, email string, fn func(u *models.User) error) error
}
