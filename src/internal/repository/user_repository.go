package repository

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

type UserRepository struct {
	store *recordStore
}

func NewUserRepository(backend *storage.Store, validate *validator.Validate, logger log.Log) *UserRepository {
	return &UserRepository{store: newRecordStore(backend, storage.KindUser, validate, logger)}
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*entity.User, error) {
	return findRecord[entity.User](r.store, id, nil)
}

func (r *UserRepository) Save(ctx context.Context, user *entity.User) error {
	return r.store.write(ctx, user, time.Time{})
}

func (r *UserRepository) Exists(ctx context.Context, id int) (bool, error) {
	return r.store.exists(id)
}
