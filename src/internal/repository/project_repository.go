package repository

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

type ProjectRepository struct {
	store *recordStore
}

func NewProjectRepository(backend *storage.Store, validate *validator.Validate, logger log.Log) *ProjectRepository {
	return &ProjectRepository{store: newRecordStore(backend, storage.KindProject, validate, logger)}
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int) (*entity.Project, error) {
	return findRecord[entity.Project](r.store, id, nil)
}

func (r *ProjectRepository) Save(ctx context.Context, project *entity.Project) error {
	return r.store.write(ctx, project, time.Time{})
}

func (r *ProjectRepository) Exists(ctx context.Context, id int) (bool, error) {
	return r.store.exists(id)
}
