package entity

import "strconv"

// Organization shards by the createdAt of its first associated
// commissioner, not by its own creation time. Legacy flat records
// carry only contactPersonId; the repository synthesizes
// AssociatedCommissioners = [contactPersonId] on conversion.
type Organization struct {
	ID                      int    `json:"id" validate:"required,gt=0"`
	Name                    string `json:"name" validate:"required"`
	FirstCommissionerID     int    `json:"firstCommissionerId" validate:"required,gt=0"`
	AssociatedCommissioners []int  `json:"associatedCommissioners" validate:"required,min=1"`
	CreatedAt               string `json:"createdAt" validate:"required"`
	UpdatedAt               string `json:"updatedAt,omitempty"`
}

func (o *Organization) RecordID() int        { return o.ID }
func (o *Organization) CreatedAtISO() string { return o.CreatedAt }
func (o *Organization) Touch(iso string)     { o.UpdatedAt = iso }

func (o *Organization) LookupFields() map[string]string {
	return map[string]string{
		"name":                o.Name,
		"firstCommissionerId": strconv.Itoa(o.FirstCommissionerID),
	}
}
