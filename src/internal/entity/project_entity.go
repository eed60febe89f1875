package entity

import "strconv"

type Project struct {
	ID             int    `json:"id" validate:"required,gt=0"`
	Title          string `json:"title" validate:"required"`
	OrganizationID int    `json:"organizationId" validate:"required,gt=0"`
	FreelancerID   int    `json:"freelancerId,omitempty"`
	Status         string `json:"status,omitempty"`
	CreatedAt      string `json:"createdAt" validate:"required"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

func (p *Project) RecordID() int        { return p.ID }
func (p *Project) CreatedAtISO() string { return p.CreatedAt }
func (p *Project) Touch(iso string)     { p.UpdatedAt = iso }

func (p *Project) LookupFields() map[string]string {
	return map[string]string{"organizationId": strconv.Itoa(p.OrganizationID)}
}
