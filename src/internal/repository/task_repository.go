package repository

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

type TaskRepository struct {
	store *recordStore
}

func NewTaskRepository(backend *storage.Store, validate *validator.Validate, logger log.Log) *TaskRepository {
	return &TaskRepository{store: newRecordStore(backend, storage.KindTask, validate, logger)}
}

func (r *TaskRepository) FindByID(ctx context.Context, id int) (*entity.Task, error) {
	return findRecord[entity.Task](r.store, id, nil)
}

func (r *TaskRepository) Save(ctx context.Context, task *entity.Task) error {
	return r.store.write(ctx, task, time.Time{})
}

func (r *TaskRepository) Exists(ctx context.Context, id int) (bool, error) {
	return r.store.exists(id)
}
