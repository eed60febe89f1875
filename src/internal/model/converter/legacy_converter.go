package converter

import (
	"encoding/json"
	"fmt"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

// legacyOrganization is the flat pre-migration shape: a single contact
// person instead of the commissioner set.
type legacyOrganization struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	ContactPersonID int    `json:"contactPersonId"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// LegacyOrganizationToEntity converts a legacy flat element to the
// canonical shape, synthesizing the commissioner set from the contact
// person.
func LegacyOrganizationToEntity(raw json.RawMessage) (*entity.Organization, error) {
	var legacy legacyOrganization
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("%w: legacy organization: %v", storage.ErrReadFailed, err)
	}
	return &entity.Organization{
		ID:                      legacy.ID,
		Name:                    legacy.Name,
		FirstCommissionerID:     legacy.ContactPersonID,
		AssociatedCommissioners: []int{legacy.ContactPersonID},
		CreatedAt:               legacy.CreatedAt,
		UpdatedAt:               legacy.UpdatedAt,
	}, nil
}
