package entity

// User is the canonical user record. CreatedAt is mandatory and
// immutable: it is the sole determinant of the record's shard path.
// Timestamps stay ISO-8601 strings end to end, matching the record
// files and the legacy flat store.
type User struct {
	ID        int    `json:"id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt" validate:"required"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (u *User) RecordID() int        { return u.ID }
func (u *User) CreatedAtISO() string { return u.CreatedAt }
func (u *User) Touch(iso string)     { u.UpdatedAt = iso }

func (u *User) LookupFields() map[string]string {
	return map[string]string{"name": u.Name, "email": u.Email}
}
