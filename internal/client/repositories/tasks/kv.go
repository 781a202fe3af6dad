package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gophtodo/internal/client/schema"
	"github.com/dmitrijs2005/gophtodo/internal/common"
)

type KVRepository struct {
	store kv.Repository
}

func NewKVRepository(store kv.Repository) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) Load(ctx context.Context, userID string) ([]models.Task, error) {
	raw, err := r.store.Get(ctx, Key(userID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Task{}, nil
	}
	if err := schema.Validate(schema.Tasks, raw); err != nil {
		return nil, err
	}

	var list []models.Task
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: tasks: %v", common.ErrCorruptDocument, err)
	}
	return list, nil
}

func (r *KVRepository) Save(ctx context.Context, userID string, list []models.Task) error {
	if list == nil {
		list = []models.Task{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	return r.store.Set(ctx, Key(userID), b)
}
