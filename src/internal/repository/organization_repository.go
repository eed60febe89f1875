package repository

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/model/converter"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

// OrganizationRepository shards organizations by the signup date of
// the first associated commissioner, looked up through the user
// repository. If a later-added commissioner turns out to have signed
// up earlier, only FirstCommissionerID is updated; the shard stays
// where it is and stays reachable through the index.
type OrganizationRepository struct {
	store *recordStore
	users *UserRepository
}

func NewOrganizationRepository(backend *storage.Store, users *UserRepository, validate *validator.Validate, logger log.Log) *OrganizationRepository {
	return &OrganizationRepository{
		store: newRecordStore(backend, storage.KindOrganization, validate, logger),
		users: users,
	}
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id int) (*entity.Organization, error) {
	return findRecord[entity.Organization](r.store, id, converter.LegacyOrganizationToEntity)
}

func (r *OrganizationRepository) Save(ctx context.Context, org *entity.Organization) error {
	commissioner, err := r.users.FindByID(ctx, org.FirstCommissionerID)
	if err != nil {
		return fmt.Errorf("%w: organization %d: first commissioner %d: %v",
			storage.ErrInvalidRecord, org.ID, org.FirstCommissionerID, err)
	}
	shardAt, err := storage.ParseTimestamp(commissioner.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: organization %d: commissioner %d createdAt: %v",
			storage.ErrInvalidRecord, org.ID, org.FirstCommissionerID, err)
	}
	return r.store.write(ctx, org, shardAt)
}

func (r *OrganizationRepository) Exists(ctx context.Context, id int) (bool, error) {
	return r.store.exists(id)
}
