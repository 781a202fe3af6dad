// Package sessions keeps the current-user record in two tiers: a transient
// tier that lives as long as the process and a persistent "remember me" tier.
package sessions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophtodo/internal/client/schema"
	"github.com/dmitrijs2005/gophtodo/internal/common"
)

const (
	CurrentKey    = "todo-current-user"
	RememberedKey = "todo-remembered-user"
)

type Repository interface {
	// Current returns the transient session, falling back to the remembered
	// one and copying it into the transient tier. (nil, nil) if neither exists.
	Current(ctx context.Context) (*models.Session, error)
	// Save writes the transient tier, and the remembered tier when remember
	// is set. An existing remembered record is left alone otherwise.
	Save(ctx context.Context, s models.Session, remember bool) error
	// Clear removes both tiers.
	Clear(ctx context.Context) error
}

type TieredRepository struct {
	transient  kv.Repository
	persistent kv.Repository
}

func NewTieredRepository(transient, persistent kv.Repository) *TieredRepository {
	return &TieredRepository{transient: transient, persistent: persistent}
}

func read(ctx context.Context, store kv.Repository, key string) (*models.Session, []byte, error) {
	raw, err := store.Get(ctx, key)
	if err != nil || raw == nil {
		return nil, nil, err
	}
	if err := schema.Validate(schema.Session, raw); err != nil {
		return nil, nil, err
	}
	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, nil, fmt.Errorf("%w: session: %v", common.ErrCorruptDocument, err)
	}
	return &s, raw, nil
}

func (r *TieredRepository) Current(ctx context.Context) (*models.Session, error) {
	s, _, err := read(ctx, r.transient, CurrentKey)
	if err != nil || s != nil {
		return s, err
	}

	s, raw, err := read(ctx, r.persistent, RememberedKey)
	if err != nil || s == nil {
		return nil, err
	}
	if err := r.transient.Set(ctx, CurrentKey, raw); err != nil {
		return nil, fmt.Errorf("failed to restore remembered session: %w", err)
	}
	return s, nil
}

func (r *TieredRepository) Save(ctx context.Context, s models.Session, remember bool) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.transient.Set(ctx, CurrentKey, b); err != nil {
		return err
	}
	if remember {
		return r.persistent.Set(ctx, RememberedKey, b)
	}
	return nil
}

// Clear ends the session: the whole transient tier is dropped together with
// the remembered record.
func (r *TieredRepository) Clear(ctx context.Context) error {
	if err := r.transient.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session tier: %w", err)
	}
	return r.persistent.Delete(ctx, RememberedKey)
}
