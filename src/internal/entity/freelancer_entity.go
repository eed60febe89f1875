package entity

import "strconv"

// Freelancer carries a non-owning back-reference to its user record.
type Freelancer struct {
	ID        int      `json:"id" validate:"required,gt=0"`
	UserID    int      `json:"userId" validate:"required,gt=0"`
	Headline  string   `json:"headline,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	CreatedAt string   `json:"createdAt" validate:"required"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

func (f *Freelancer) RecordID() int        { return f.ID }
func (f *Freelancer) CreatedAtISO() string { return f.CreatedAt }
func (f *Freelancer) Touch(iso string)     { f.UpdatedAt = iso }

func (f *Freelancer) LookupFields() map[string]string {
	return map[string]string{"userId": strconv.Itoa(f.UserID)}
}
