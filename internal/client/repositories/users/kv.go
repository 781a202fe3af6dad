package users

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

func decode(raw []byte) ([]models.User, error) {
	if raw == nil {
		return []models.User{}, nil
	}
	if err := schema.Validate(schema.Users, raw); err != nil {
		return nil, err
	}
	var list []models.User
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: users: %v", common.ErrCorruptDocument, err)
	}
	return list, nil
}

func encode(list []models.User) ([]byte, error) {
	b, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to encode users: %w", err)
	}
	return b, nil
}

func indexOf(list []models.User, email string) int {
	for i := range list {
		if list[i].Email == email {
			return i
		}
	}
	return -1
}

func (r *KVRepository) All(ctx context.Context) ([]models.User, error) {
	raw, err := r.store.Get(ctx, Key)
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

func (r *KVRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	list, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(list, email)
	if i < 0 {
		return nil, common.ErrUserNotFound
	}
	return &list[i], nil
}

func (r *KVRepository) Add(ctx context.Context, u models.User) error {
	return r.store.Update(ctx, Key, func(old []byte) ([]byte, error) {
		list, err := decode(old)
		if err != nil {
			return nil, err
		}
		if indexOf(list, u.Email) >= 0 {
			return nil, common.ErrEmailTaken
		}
		return encode(append(list, u))
	})
}

func (r *KVRepository) Update(ctx context.Context, email string, fn func(u *models.User) error) error {
	return r.store.Update(ctx, Key, func(old []byte) ([]byte, error) {
		list, err := decode(old)
		if err != nil {
			return nil, err
		}
		i := indexOf(list, email)
		if i < 0 {
			return nil, common.ErrUserNotFound
		}
		if err := fn(&list[i]); err != nil {
			return nil, err
		}
		return encode(list)
	})
}
