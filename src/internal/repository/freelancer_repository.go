package repository

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

type FreelancerRepository struct {
	store *recordStore
}

func NewFreelancerRepository(backend *storage.Store, validate *validator.Validate, logger log.Log) *FreelancerRepository {
	return &FreelancerRepository{store: newRecordStore(backend, storage.KindFreelancer, validate, logger)}
}

func (r *FreelancerRepository) FindByID(ctx context.Context, id int) (*entity.Freelancer, error) {
	return findRecord[entity.Freelancer](r.store, id, nil)
}

func (r *FreelancerRepository) Save(ctx context.Context, freelancer *entity.Freelancer) error {
	return r.store.write(ctx, freelancer, time.Time{})
}

func (r *FreelancerRepository) Exists(ctx context.Context, id int) (bool, error) {
	return r.store.exists(id)
}
